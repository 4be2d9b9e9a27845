package payment

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/crpaedu/backstage/core"
)

// Statuses
const (
	StatusPending = "Pending"
	StatusPaid    = "Paid"
	StatusOverdue = "Overdue"
)

type Payment struct {
	ID        string `json:"id"`
	StudentID string `json:"student_id"`
	// StudentName is denormalized at creation so the record stays
	// renderable after the student is deleted.
	StudentName string    `json:"student_name"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Status      string    `json:"status"`
	Method      string    `json:"method,omitempty"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

// NewPayment contains information needed to record a payment.
type NewPayment struct {
	StudentID   string  `json:"student_id" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Status      string  `json:"status" validate:"omitempty,oneof=Pending Paid Overdue"`
	Method      string  `json:"method"`
}

func (np *NewPayment) Validate(validate *validator.Validate, translator ut.Translator) error {
	np.StudentID = core.CleanString(np.StudentID)
	np.Description = core.CleanString(np.Description)
	np.Method = core.CleanString(np.Method)
	return validate.Struct(np)
}

// UpdatePayment defines what may change on an existing payment.
type UpdatePayment struct {
	Amount      *float64 `json:"amount" validate:"omitempty,gt=0"`
	Description string   `json:"description"`
	Date        string   `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status      string   `json:"status" validate:"omitempty,oneof=Pending Paid Overdue"`
	Method      string   `json:"method"`
}

func (up *UpdatePayment) Validate(validate *validator.Validate, translator ut.Translator) error {
	up.Description = core.CleanString(up.Description)
	up.Method = core.CleanString(up.Method)
	return validate.Struct(up)
}

// Summary aggregates payment amounts by status.
type Summary struct {
	Collected   float64 `json:"collected"`
	Outstanding float64 `json:"outstanding"`
	Overdue     float64 `json:"overdue"`
}
