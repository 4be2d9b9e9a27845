package student

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/crpaedu/backstage/core"
)

var (
	// errors
	ErrNotFound    = errors.New("student not found")
	ErrEmailExists = errors.New("a student with this email already exists")
)

type (
	Repository interface {
		CheckEmailUniqueness(email string, excluded ...Student) error
		CreateStudent(std Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id string) (Student, error)
		// GetStudentByEmail matches the stored (lowercased) email exactly.
		GetStudentByEmail(email string) (Student, error)
		UpdateStudent(std Student) (Student, error)
		DeleteStudentsByID(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) checkEmailUniqueness(email string, excluded ...Student) error {
	if err := svc.repo.CheckEmailUniqueness(email, excluded...); err != nil {
		if errors.Is(err, ErrEmailExists) {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(ns NewStudent) (Student, error) {
	now := time.Now().UTC()
	status := ns.EnrollmentStatus
	if status == "" {
		status = StatusPending
	}
	std := Student{
		ID:               uuid.NewString(),
		Email:            ns.Email,
		FirstName:        ns.FirstName,
		MiddleName:       ns.MiddleName,
		LastName:         ns.LastName,
		DOB:              ns.DOB,
		Gender:           ns.Gender,
		Program:          ns.Program,
		EnrollmentStatus: status,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := std.SetPassword(ns.Password); err != nil {
		return Student{}, err
	}
	return svc.repo.CreateStudent(std)
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) GetByID(id string) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

func (svc *Service) GetByEmail(email string) (Student, error) {
	return svc.repo.GetStudentByEmail(core.CleanString(email, true /* lower */))
}

func (svc *Service) Update(orig Student, us UpdateStudent) (Student, error) {
	std := orig
	if us.Email != "" {
		std.Email = us.Email
	}
	if us.FirstName != "" {
		std.FirstName = us.FirstName
	}
	if us.MiddleName != "" {
		std.MiddleName = us.MiddleName
	}
	if us.LastName != "" {
		std.LastName = us.LastName
	}
	if us.DOB != "" {
		std.DOB = us.DOB
	}
	if us.Gender != "" {
		std.Gender = us.Gender
	}
	if us.Program != "" {
		std.Program = us.Program
	}
	if us.EnrollmentStatus != "" {
		std.EnrollmentStatus = us.EnrollmentStatus
	}
	if us.TranscriptNotes != nil {
		std.TranscriptNotes = *us.TranscriptNotes
	}
	if us.Password != "" {
		if err := std.SetPassword(us.Password); err != nil {
			return Student{}, err
		}
	}
	std.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStudent(std)
}

func (svc *Service) UpdateProfile(orig Student, up UpdateProfile) (Student, error) {
	return svc.Update(orig, UpdateStudent{
		Email:      up.Email,
		FirstName:  up.FirstName,
		MiddleName: up.MiddleName,
		LastName:   up.LastName,
		DOB:        up.DOB,
		Password:   up.Password,
	})
}

// SetPhoto replaces the student's photo reference (a URL or data-URL).
func (svc *Service) SetPhoto(orig Student, photoURL string) (Student, error) {
	std := orig
	std.PhotoURL = photoURL
	std.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStudent(std)
}

// Delete permanently removes students. Enrollments and grades referencing
// them are left behind on purpose; readers filter the dangling ids.
func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteStudentsByID(ids...)
}
