package payment

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/crpaedu/backstage/core"
	"github.com/crpaedu/backstage/core/student"
)

var (
	// errors
	ErrNotFound       = errors.New("payment not found")
	ErrUnknownStudent = errors.New("unknown student")
)

type (
	Repository interface {
		CreatePayment(p Payment) (Payment, error)
		QueryAllPayments() ([]Payment, error)
		GetPaymentByID(id string) (Payment, error)
		QueryPaymentsByStudentID(studentID string) ([]Payment, error)
		UpdatePayment(p Payment) (Payment, error)
		DeletePaymentsByID(ids ...string) error
	}

	Service struct {
		repo     Repository
		students student.Repository
	}
)

func NewService(repo Repository, students student.Repository) *Service {
	return &Service{repo: repo, students: students}
}

func (svc *Service) Create(np NewPayment) (Payment, error) {
	std, err := svc.students.GetStudentByID(np.StudentID)
	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			return Payment{}, core.NewValidationError(ErrUnknownStudent,
				core.FieldError{Field: "student_id", Error: ErrUnknownStudent.Error()})
		}
		return Payment{}, err
	}

	now := time.Now().UTC()
	status := np.Status
	if status == "" {
		status = StatusPending
	}
	p := Payment{
		ID:          uuid.NewString(),
		StudentID:   std.ID,
		StudentName: std.FullName(),
		Amount:      np.Amount,
		Description: np.Description,
		Date:        np.Date,
		Status:      status,
		Method:      np.Method,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreatePayment(p)
}

func (svc *Service) QueryAll() ([]Payment, error) {
	return svc.repo.QueryAllPayments()
}

func (svc *Service) GetByID(id string) (Payment, error) {
	return svc.repo.GetPaymentByID(id)
}

func (svc *Service) QueryByStudent(studentID string) ([]Payment, error) {
	return svc.repo.QueryPaymentsByStudentID(studentID)
}

func (svc *Service) Update(orig Payment, up UpdatePayment) (Payment, error) {
	p := orig
	if up.Amount != nil {
		p.Amount = *up.Amount
	}
	if up.Description != "" {
		p.Description = up.Description
	}
	if up.Date != "" {
		p.Date = up.Date
	}
	if up.Status != "" {
		p.Status = up.Status
	}
	if up.Method != "" {
		p.Method = up.Method
	}
	p.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdatePayment(p)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeletePaymentsByID(ids...)
}

// Summarize totals payment amounts by status across all records.
func (svc *Service) Summarize() (Summary, error) {
	all, err := svc.repo.QueryAllPayments()
	if err != nil {
		return Summary{}, err
	}
	var sum Summary
	for _, p := range all {
		switch p.Status {
		case StatusPaid:
			sum.Collected += p.Amount
		case StatusOverdue:
			sum.Overdue += p.Amount
		default:
			sum.Outstanding += p.Amount
		}
	}
	return sum, nil
}
