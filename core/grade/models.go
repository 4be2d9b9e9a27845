package grade

import (
	"strconv"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/crpaedu/backstage/core"
)

// Entry is one recorded grade, keyed by the (course, student) pair.
// The ledger holds at most one Entry per key; setting a grade replaces
// any prior value for that key. There is no history.
type Entry struct {
	CourseID  string `json:"cid"`
	StudentID string `json:"sid"`
	// Value is a free-text grade token: a numeric score ("87.5")
	// or a letter grade ("A").
	Value string `json:"val"`
}

// Key identifies an Entry.
type Key struct {
	CourseID  string
	StudentID string
}

func (e Entry) Key() Key {
	return Key{CourseID: e.CourseID, StudentID: e.StudentID}
}

// Points converts a grade token to grade points on the 4.0 scale.
// Numeric tokens: >=90 -> 4.0, >=80 -> 3.0, >=70 -> 2.0, >=60 -> 1.0, else 0.0.
// Letter tokens (trimmed, case-insensitive): A/B/C/D -> 4.0/3.0/2.0/1.0;
// anything else, F and unrecognized tokens included, is 0.0.
func Points(token string) float64 {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0
	}
	if n, err := strconv.ParseFloat(token, 64); err == nil {
		switch {
		case n >= 90:
			return 4.0
		case n >= 80:
			return 3.0
		case n >= 70:
			return 2.0
		case n >= 60:
			return 1.0
		default:
			return 0.0
		}
	}
	switch strings.ToUpper(token) {
	case "A":
		return 4.0
	case "B":
		return 3.0
	case "C":
		return 2.0
	case "D":
		return 1.0
	default:
		return 0.0
	}
}

// SetGrade contains the information needed to record (or overwrite) a grade.
type SetGrade struct {
	CourseID  string `json:"cid" validate:"required"`
	StudentID string `json:"sid" validate:"required"`
	Value     string `json:"val" validate:"omitempty,gradetoken"`
}

func (sg *SetGrade) Validate(validate *validator.Validate, translator ut.Translator) error {
	sg.CourseID = core.CleanString(sg.CourseID)
	sg.StudentID = core.CleanString(sg.StudentID)
	sg.Value = core.CleanString(sg.Value)
	return validate.Struct(sg)
}
