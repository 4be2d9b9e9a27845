package course

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/crpaedu/backstage/core"
)

type (
	// Syllabus is the free-text course outline, section by section.
	Syllabus struct {
		Description string `json:"desc"`
		Objectives  string `json:"obj"`
		Outcomes    string `json:"out"`
		Content     string `json:"content"`
		Strategies  string `json:"strat"`
		Assessment  string `json:"assess"`
		Resources   string `json:"res"`
	}

	Course struct {
		ID        string    `json:"id"`
		Code      string    `json:"code"`
		Name      string    `json:"name"`
		Credits   int       `json:"credits"`
		TeacherID string    `json:"teacher_id,omitempty"`
		// StudentIDs is the roster: a set, order not meaningful.
		StudentIDs []string  `json:"student_ids"`
		Capacity   int       `json:"capacity,omitempty"`
		Day        string    `json:"day,omitempty"`
		Time       string    `json:"time,omitempty"`
		Syllabus   Syllabus  `json:"syllabus"`
		CreatedAt  time.Time `json:"created_at"` // UTC
		UpdatedAt  time.Time `json:"updated_at"` // UTC
	}
)

// HasStudent reports roster membership.
func (c *Course) HasStudent(studentID string) bool {
	for _, id := range c.StudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}

// FillRate is enrollment over capacity. It may exceed 1.0: the roster
// admits beyond capacity and the UI renders it as over-capacity.
func (c *Course) FillRate() float64 {
	if c.Capacity <= 0 {
		return 0
	}
	return float64(len(c.StudentIDs)) / float64(c.Capacity)
}

// NewCourse contains information needed to open a new Course.
type NewCourse struct {
	Code      string   `json:"code" validate:"required"`
	Name      string   `json:"name" validate:"required"`
	Credits   int      `json:"credits" validate:"min=0"`
	TeacherID string   `json:"teacher_id"`
	Capacity  int      `json:"capacity" validate:"min=0"`
	Day       string   `json:"day"`
	Time      string   `json:"time"`
	Syllabus  Syllabus `json:"syllabus"`
}

func (nc *NewCourse) Validate(validate *validator.Validate, translator ut.Translator) error {
	nc.Code = core.CleanString(nc.Code)
	nc.Name = core.CleanString(nc.Name)
	return validate.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
type UpdateCourse struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Credits   *int      `json:"credits" validate:"omitempty,min=0"`
	TeacherID *string   `json:"teacher_id"`
	Capacity  *int      `json:"capacity" validate:"omitempty,min=0"`
	Day       string    `json:"day"`
	Time      string    `json:"time"`
	Syllabus  *Syllabus `json:"syllabus"`
}

func (uc *UpdateCourse) Validate(validate *validator.Validate, translator ut.Translator) error {
	uc.Code = core.CleanString(uc.Code)
	uc.Name = core.CleanString(uc.Name)
	return validate.Struct(uc)
}
