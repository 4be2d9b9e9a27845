package student_test

import (
	"errors"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/crpaedu/backstage/core"
	"github.com/crpaedu/backstage/core/student"
	inmemdb "github.com/crpaedu/backstage/storage/database/inmem"
)

func setup(t *testing.T) *student.Service {
	t.Helper()
	return student.NewService(inmemdb.NewStudentRepository(inmemdb.Open()))
}

func newValidator(t *testing.T) (*validator.Validate, ut.Translator) {
	t.Helper()
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	return validate, translator
}

func TestService_Create(t *testing.T) {
	svc := setup(t)

	std, err := svc.Create(student.NewStudent{
		Email:     "chad@test.cd",
		FirstName: "Chad",
		LastName:  "Welsh",
		Password:  "s3cret",
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if std.ID == "" {
		t.Error("no ID assigned")
	}
	if std.EnrollmentStatus != student.StatusPending {
		t.Errorf("EnrollmentStatus = %q, want %q", std.EnrollmentStatus, student.StatusPending)
	}
	if err = std.CheckPassword("s3cret"); err != nil {
		t.Errorf("CheckPassword() failed: %v", err)
	}
	if std.CheckPassword("wrong") == nil {
		t.Error("CheckPassword() accepted a wrong password")
	}
}

func TestService_GetByEmail_caseInsensitive(t *testing.T) {
	svc := setup(t)
	if _, err := svc.Create(student.NewStudent{
		Email: "rose@test.cd", FirstName: "Rose", LastName: "Fraser", Password: "pwd",
	}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	std, err := svc.GetByEmail("  ROSE@Test.CD ")
	if err != nil {
		t.Fatalf("GetByEmail() failed: %v", err)
	}
	if std.Email != "rose@test.cd" {
		t.Errorf("Email = %q", std.Email)
	}
}

func TestNewStudent_Validate_duplicateEmail(t *testing.T) {
	svc := setup(t)
	validate, translator := newValidator(t)

	if _, err := svc.Create(student.NewStudent{
		Email: "rose@test.cd", FirstName: "Rose", LastName: "Fraser", Password: "pwd",
	}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	dup := student.NewStudent{Email: "Rose@Test.CD", FirstName: "Rosa", LastName: "F", Password: "pwd"}
	err := dup.Validate(validate, translator, svc)
	var vErr *core.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Validate() error = %v, want a validation error", err)
	}
	if !errors.Is(err, student.ErrEmailExists) {
		t.Errorf("Validate() error = %v, want %v", err, student.ErrEmailExists)
	}
}

func TestService_Update_preservesUntouchedFields(t *testing.T) {
	svc := setup(t)
	std, err := svc.Create(student.NewStudent{
		Email: "tracy@test.cd", FirstName: "Tracy", MiddleName: "Jenelle", LastName: "Francois",
		Program: "Drama", Password: "pwd",
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	got, err := svc.Update(std, student.UpdateStudent{FirstName: "Trace"})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if got.FirstName != "Trace" {
		t.Errorf("FirstName = %q", got.FirstName)
	}
	if got.MiddleName != "Jenelle" || got.Program != "Drama" || got.Email != "tracy@test.cd" {
		t.Errorf("untouched fields changed: %+v", got)
	}

	// notes are pointer-gated: nil leaves them, empty string clears them
	notes := "excellent stage presence"
	got, err = svc.Update(got, student.UpdateStudent{TranscriptNotes: &notes})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if got.TranscriptNotes != notes {
		t.Errorf("TranscriptNotes = %q", got.TranscriptNotes)
	}
	empty := ""
	got, err = svc.Update(got, student.UpdateStudent{TranscriptNotes: &empty})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if got.TranscriptNotes != "" {
		t.Errorf("TranscriptNotes = %q, want cleared", got.TranscriptNotes)
	}
}

func TestService_Delete(t *testing.T) {
	svc := setup(t)
	std, err := svc.Create(student.NewStudent{
		Email: "lisa@test.cd", FirstName: "Lisa", LastName: "Alexis", Password: "pwd",
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if err = svc.Delete(std.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err = svc.GetByID(std.ID); !errors.Is(err, student.ErrNotFound) {
		t.Errorf("GetByID() after delete = %v, want %v", err, student.ErrNotFound)
	}
}
