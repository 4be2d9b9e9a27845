package teacher

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/crpaedu/backstage/core"
)

var (
	// errors
	ErrNotFound    = errors.New("teacher not found")
	ErrEmailExists = errors.New("a teacher with this email already exists")
)

type (
	Repository interface {
		CheckEmailUniqueness(email string, excluded ...Teacher) error
		CreateTeacher(tch Teacher) (Teacher, error)
		QueryAllTeachers() ([]Teacher, error)
		GetTeacherByID(id string) (Teacher, error)
		// GetTeacherByEmail matches the stored (lowercased) email exactly.
		GetTeacherByEmail(email string) (Teacher, error)
		UpdateTeacher(tch Teacher) (Teacher, error)
		DeleteTeachersByID(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) checkEmailUniqueness(email string, excluded ...Teacher) error {
	if err := svc.repo.CheckEmailUniqueness(email, excluded...); err != nil {
		if errors.Is(err, ErrEmailExists) {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(nt NewTeacher) (Teacher, error) {
	now := time.Now().UTC()
	status := nt.Status
	if status == "" {
		status = StatusActive
	}
	tch := Teacher{
		ID:         uuid.NewString(),
		Name:       nt.Name,
		Email:      nt.Email,
		Department: nt.Department,
		Specialty:  nt.Specialty,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return svc.repo.CreateTeacher(tch)
}

func (svc *Service) QueryAll() ([]Teacher, error) {
	return svc.repo.QueryAllTeachers()
}

func (svc *Service) GetByID(id string) (Teacher, error) {
	return svc.repo.GetTeacherByID(id)
}

func (svc *Service) GetByEmail(email string) (Teacher, error) {
	return svc.repo.GetTeacherByEmail(core.CleanString(email, true /* lower */))
}

func (svc *Service) Update(orig Teacher, ut UpdateTeacher) (Teacher, error) {
	tch := orig
	if ut.Name != "" {
		tch.Name = ut.Name
	}
	if ut.Email != "" {
		tch.Email = ut.Email
	}
	if ut.Department != "" {
		tch.Department = ut.Department
	}
	if ut.Specialty != "" {
		tch.Specialty = ut.Specialty
	}
	if ut.Status != "" {
		tch.Status = ut.Status
	}
	tch.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateTeacher(tch)
}

// SetPhoto replaces the teacher's photo reference (a URL or data-URL).
func (svc *Service) SetPhoto(orig Teacher, photoURL string) (Teacher, error) {
	tch := orig
	tch.PhotoURL = photoURL
	tch.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateTeacher(tch)
}

// Delete permanently removes teachers; courses keep their stale TeacherID
// and readers resolve it defensively.
func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteTeachersByID(ids...)
}
