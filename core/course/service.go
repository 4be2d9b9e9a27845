package course

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/crpaedu/backstage/core"
)

var (
	// errors
	ErrNotFound   = errors.New("course not found")
	ErrCourseFull = errors.New("course is at capacity")
)

type (
	Repository interface {
		CreateCourse(crs Course) (Course, error)
		QueryAllCourses() ([]Course, error)
		GetCourseByID(id string) (Course, error)
		QueryCoursesByTeacherID(teacherID string) ([]Course, error)
		// QueryCoursesByStudentID returns the courses whose roster contains the student.
		QueryCoursesByStudentID(studentID string) ([]Course, error)
		UpdateCourse(crs Course) (Course, error)
		DeleteCoursesByID(ids ...string) error
	}

	Service struct {
		repo Repository
		conf *core.Config
	}
)

func NewService(repo Repository, conf *core.Config) *Service {
	return &Service{repo: repo, conf: conf}
}

func (svc *Service) Create(nc NewCourse) (Course, error) {
	now := time.Now().UTC()
	crs := Course{
		ID:         uuid.NewString(),
		Code:       nc.Code,
		Name:       nc.Name,
		Credits:    nc.Credits,
		TeacherID:  nc.TeacherID,
		StudentIDs: []string{},
		Capacity:   nc.Capacity,
		Day:        nc.Day,
		Time:       nc.Time,
		Syllabus:   nc.Syllabus,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return svc.repo.CreateCourse(crs)
}

func (svc *Service) QueryAll() ([]Course, error) {
	return svc.repo.QueryAllCourses()
}

func (svc *Service) GetByID(id string) (Course, error) {
	return svc.repo.GetCourseByID(id)
}

func (svc *Service) QueryByTeacher(teacherID string) ([]Course, error) {
	return svc.repo.QueryCoursesByTeacherID(teacherID)
}

func (svc *Service) QueryByStudent(studentID string) ([]Course, error) {
	return svc.repo.QueryCoursesByStudentID(studentID)
}

func (svc *Service) Update(orig Course, uc UpdateCourse) (Course, error) {
	crs := orig
	if uc.Code != "" {
		crs.Code = uc.Code
	}
	if uc.Name != "" {
		crs.Name = uc.Name
	}
	if uc.Credits != nil {
		crs.Credits = *uc.Credits
	}
	if uc.TeacherID != nil {
		crs.TeacherID = *uc.TeacherID
	}
	if uc.Capacity != nil {
		crs.Capacity = *uc.Capacity
	}
	if uc.Day != "" {
		crs.Day = uc.Day
	}
	if uc.Time != "" {
		crs.Time = uc.Time
	}
	if uc.Syllabus != nil {
		crs.Syllabus = *uc.Syllabus
	}
	crs.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateCourse(crs)
}

// UpdateSyllabus replaces the whole syllabus record.
func (svc *Service) UpdateSyllabus(orig Course, syl Syllabus) (Course, error) {
	crs := orig
	crs.Syllabus = syl
	crs.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateCourse(crs)
}

// Enroll adds the student to the course roster. Re-enrolling is a no-op,
// not an error. Capacity is advisory unless enforcement is configured.
func (svc *Service) Enroll(courseID, studentID string) (Course, error) {
	crs, err := svc.repo.GetCourseByID(courseID)
	if err != nil {
		return Course{}, err
	}
	if crs.HasStudent(studentID) {
		return crs, nil
	}
	if svc.conf.Academy.EnforceCourseCapacity && crs.Capacity > 0 && len(crs.StudentIDs) >= crs.Capacity {
		return Course{}, core.NewValidationError(ErrCourseFull)
	}
	crs.StudentIDs = append(crs.StudentIDs, studentID)
	crs.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateCourse(crs)
}

// Unenroll removes the student from the roster; removing a non-member is a no-op.
func (svc *Service) Unenroll(courseID, studentID string) (Course, error) {
	crs, err := svc.repo.GetCourseByID(courseID)
	if err != nil {
		return Course{}, err
	}
	if !crs.HasStudent(studentID) {
		return crs, nil
	}
	ids := make([]string, 0, len(crs.StudentIDs)-1)
	for _, id := range crs.StudentIDs {
		if id != studentID {
			ids = append(ids, id)
		}
	}
	crs.StudentIDs = ids
	crs.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateCourse(crs)
}

// Delete permanently removes courses. Grade entries keyed to them are not
// cascaded; transcript readers drop the orphans.
func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteCoursesByID(ids...)
}
