package teacher

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/crpaedu/backstage/core"
)

// Statuses
const (
	StatusActive  = "Active"
	StatusOnLeave = "On Leave"
)

type Teacher struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"dept,omitempty"`
	Specialty  string    `json:"specialty,omitempty"`
	Status     string    `json:"status"`
	PhotoURL   string    `json:"photo_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at"` // UTC
}

func (t *Teacher) IsActive() bool { return t.Status == StatusActive }

// NewTeacher contains information needed to add a new Teacher.
type NewTeacher struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"dept"`
	Specialty  string `json:"specialty"`
	Status     string `json:"status" validate:"omitempty,oneof=Active 'On Leave'"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate, translator ut.Translator, svc *Service) error {
	nt.Name = core.CleanString(nt.Name)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.Department = core.CleanString(nt.Department)
	nt.Specialty = core.CleanString(nt.Specialty)

	if err := validate.Struct(nt); err != nil {
		return err
	}
	return svc.checkEmailUniqueness(nt.Email)
}

// UpdateTeacher defines what information may be provided to modify an existing Teacher.
type UpdateTeacher struct {
	Name       string `json:"name"`
	Email      string `json:"email" validate:"omitempty,email"`
	Department string `json:"dept"`
	Specialty  string `json:"specialty"`
	Status     string `json:"status" validate:"omitempty,oneof=Active 'On Leave'"`
}

func (ut_ *UpdateTeacher) Validate(validate *validator.Validate, translator ut.Translator, orig Teacher, svc *Service) error {
	ut_.Name = core.CleanString(ut_.Name)
	ut_.Email = core.CleanString(ut_.Email, true /* lower */)
	ut_.Department = core.CleanString(ut_.Department)
	ut_.Specialty = core.CleanString(ut_.Specialty)

	if err := validate.Struct(ut_); err != nil {
		return err
	}
	if ut_.Email != "" && ut_.Email != orig.Email {
		return svc.checkEmailUniqueness(ut_.Email, orig)
	}
	return nil
}
