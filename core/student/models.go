package student

import (
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/crpaedu/backstage/core"
)

// Enrollment statuses
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
	StatusPending  = "Pending"
)

// Genders
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
)

type Student struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	FirstName        string    `json:"fname"`
	MiddleName       string    `json:"mname,omitempty"`
	LastName         string    `json:"lname"`
	DOB              string    `json:"dob,omitempty"` // YYYY-MM-DD
	Gender           string    `json:"gender,omitempty"`
	Program          string    `json:"prog,omitempty"`
	EnrollmentStatus string    `json:"enrollment_status"`
	PhotoURL         string    `json:"photo_url,omitempty"`
	TranscriptNotes  string    `json:"transcript_notes,omitempty"`
	PasswordHash     []byte    `json:"-"`
	CreatedAt        time.Time `json:"created_at"` // UTC
	UpdatedAt        time.Time `json:"updated_at"` // UTC
}

func (s *Student) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.FirstName, s.MiddleName, s.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func (s *Student) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.PasswordHash = hash
	return nil
}

func (s *Student) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(s.PasswordHash, []byte(pwd))
}

// NewStudent contains information needed to register a new Student.
type NewStudent struct {
	Email            string `json:"email" validate:"required,email"`
	FirstName        string `json:"fname" validate:"required"`
	MiddleName       string `json:"mname"`
	LastName         string `json:"lname" validate:"required"`
	DOB              string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Gender           string `json:"gender" validate:"omitempty,oneof=MALE FEMALE"`
	Program          string `json:"prog"`
	Password         string `json:"password" validate:"required"`
	EnrollmentStatus string `json:"enrollment_status" validate:"omitempty,oneof=Active Inactive Pending"`
}

func (ns *NewStudent) Validate(validate *validator.Validate, translator ut.Translator, svc *Service) error {
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.MiddleName = core.CleanString(ns.MiddleName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.Program = core.CleanString(ns.Program)

	if err := validate.Struct(ns); err != nil {
		return err
	}
	return svc.checkEmailUniqueness(ns.Email)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// Empty fields are left untouched.
type UpdateStudent struct {
	Email            string  `json:"email" validate:"omitempty,email"`
	FirstName        string  `json:"fname"`
	MiddleName       string  `json:"mname"`
	LastName         string  `json:"lname"`
	DOB              string  `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Gender           string  `json:"gender" validate:"omitempty,oneof=MALE FEMALE"`
	Program          string  `json:"prog"`
	Password         string  `json:"password"`
	EnrollmentStatus string  `json:"enrollment_status" validate:"omitempty,oneof=Active Inactive Pending"`
	TranscriptNotes  *string `json:"transcript_notes"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate, translator ut.Translator, orig Student, svc *Service) error {
	us.Email = core.CleanString(us.Email, true /* lower */)
	us.FirstName = core.CleanString(us.FirstName)
	us.MiddleName = core.CleanString(us.MiddleName)
	us.LastName = core.CleanString(us.LastName)
	us.Program = core.CleanString(us.Program)

	if err := validate.Struct(us); err != nil {
		return err
	}
	if us.Email != "" && us.Email != orig.Email {
		return svc.checkEmailUniqueness(us.Email, orig)
	}
	return nil
}

// UpdateProfile is the student's own profile edit; it cannot touch
// program, status or transcript notes.
type UpdateProfile struct {
	Email      string `json:"email" validate:"omitempty,email"`
	FirstName  string `json:"fname"`
	MiddleName string `json:"mname"`
	LastName   string `json:"lname"`
	DOB        string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Password   string `json:"password"`
}

func (up *UpdateProfile) Validate(validate *validator.Validate, translator ut.Translator, orig Student, svc *Service) error {
	up.Email = core.CleanString(up.Email, true /* lower */)
	up.FirstName = core.CleanString(up.FirstName)
	up.MiddleName = core.CleanString(up.MiddleName)
	up.LastName = core.CleanString(up.LastName)

	if err := validate.Struct(up); err != nil {
		return err
	}
	if up.Email != "" && up.Email != orig.Email {
		return svc.checkEmailUniqueness(up.Email, orig)
	}
	return nil
}
