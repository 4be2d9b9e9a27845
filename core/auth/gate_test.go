package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/crpaedu/backstage/core"
	"github.com/crpaedu/backstage/core/auth"
	"github.com/crpaedu/backstage/core/student"
	"github.com/crpaedu/backstage/core/teacher"
	inmemdb "github.com/crpaedu/backstage/storage/database/inmem"
)

func setup(t *testing.T) *auth.Gate {
	t.Helper()
	db := inmemdb.Open()
	stdRepo := inmemdb.NewStudentRepository(db)
	tchRepo := inmemdb.NewTeacherRepository(db)

	now := time.Now().UTC()
	std := student.Student{
		ID:        "s1",
		Email:     "selenanoel11@gmail.com",
		FirstName: "Selena",
		LastName:  "Noel",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := std.SetPassword("s3cret"); err != nil {
		t.Fatalf("SetPassword() failed: %v", err)
	}
	if _, err := stdRepo.CreateStudent(std); err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	if _, err := tchRepo.CreateTeacher(teacher.Teacher{
		ID:        "t1",
		Name:      "Marvin Stewart",
		Email:     "marvin@test.cd",
		Status:    teacher.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("CreateTeacher() failed: %v", err)
	}

	conf := &core.Config{}
	conf.Auth.AdminUsername = "admin"
	conf.Auth.AdminPassword = "adm1n"
	conf.Auth.TeacherSharedPassword = "staffroom"
	return auth.NewGate(stdRepo, tchRepo, conf)
}

func TestGate_Login(t *testing.T) {
	gate := setup(t)

	tests := []struct {
		name    string
		creds   auth.Credentials
		wantErr error
		wantID  string
	}{
		{
			name:   "admin ok",
			creds:  auth.Credentials{Role: "ADMIN", Identifier: "admin", Secret: "adm1n"},
			wantID: "admin",
		},
		{
			name:   "role is case-insensitive",
			creds:  auth.Credentials{Role: "admin", Identifier: "admin", Secret: "adm1n"},
			wantID: "admin",
		},
		{
			name:    "admin wrong password",
			creds:   auth.Credentials{Role: "ADMIN", Identifier: "admin", Secret: "nope"},
			wantErr: auth.ErrAdminRejected,
		},
		{
			name:    "admin wrong username",
			creds:   auth.Credentials{Role: "ADMIN", Identifier: "root", Secret: "adm1n"},
			wantErr: auth.ErrAdminRejected,
		},
		{
			name:   "teacher ok",
			creds:  auth.Credentials{Role: "TEACHER", Identifier: "marvin@test.cd", Secret: "staffroom"},
			wantID: "t1",
		},
		{
			name:   "teacher email is case-insensitive",
			creds:  auth.Credentials{Role: "TEACHER", Identifier: "MARVIN@Test.CD", Secret: "staffroom"},
			wantID: "t1",
		},
		{
			name:    "teacher wrong shared password",
			creds:   auth.Credentials{Role: "TEACHER", Identifier: "marvin@test.cd", Secret: "s3cret"},
			wantErr: auth.ErrTeacherRejected,
		},
		{
			name:    "teacher unknown email",
			creds:   auth.Credentials{Role: "TEACHER", Identifier: "ghost@test.cd", Secret: "staffroom"},
			wantErr: auth.ErrTeacherRejected,
		},
		{
			name:   "student ok",
			creds:  auth.Credentials{Role: "STUDENT", Identifier: "selenanoel11@gmail.com", Secret: "s3cret"},
			wantID: "s1",
		},
		{
			name:   "student email is case-insensitive",
			creds:  auth.Credentials{Role: "STUDENT", Identifier: "SelenaNoel11@Gmail.com", Secret: "s3cret"},
			wantID: "s1",
		},
		{
			name:    "student wrong password",
			creds:   auth.Credentials{Role: "STUDENT", Identifier: "selenanoel11@gmail.com", Secret: "staffroom"},
			wantErr: auth.ErrStudentRejected,
		},
		{
			name:    "student unknown email",
			creds:   auth.Credentials{Role: "STUDENT", Identifier: "ghost@test.cd", Secret: "s3cret"},
			wantErr: auth.ErrStudentRejected,
		},
		{
			name:    "unknown role",
			creds:   auth.Credentials{Role: "JANITOR", Identifier: "admin", Secret: "adm1n"},
			wantErr: auth.ErrUnknownRole,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, err := gate.Login(tt.creds)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Login() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() failed: %v", err)
			}
			if sess.Handle == "" {
				t.Error("session has no handle")
			}
			if sess.Identity.ID() != tt.wantID {
				t.Errorf("identity ID = %q, want %q", sess.Identity.ID(), tt.wantID)
			}
		})
	}
}

func TestGate_sessions(t *testing.T) {
	gate := setup(t)

	sess, err := gate.Login(auth.Credentials{Role: "ADMIN", Identifier: "admin", Secret: "adm1n"})
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}

	got, err := gate.Get(sess.Handle)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got.Identity.Role() != auth.RoleAdmin {
		t.Errorf("role = %q, want %q", got.Identity.Role(), auth.RoleAdmin)
	}

	gate.Logout(sess.Handle)
	if _, err = gate.Get(sess.Handle); err != auth.ErrNoSession {
		t.Errorf("Get() after Logout() = %v, want %v", err, auth.ErrNoSession)
	}

	// logging out an unknown handle is a no-op
	gate.Logout("ghost")

	if _, err = gate.Get("ghost"); err != auth.ErrNoSession {
		t.Errorf("Get() of unknown handle = %v, want %v", err, auth.ErrNoSession)
	}
}

func TestGate_Refresh(t *testing.T) {
	gate := setup(t)

	sess, err := gate.Login(auth.Credentials{Role: "STUDENT", Identifier: "selenanoel11@gmail.com", Secret: "s3cret"})
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}

	ident := sess.Identity.(auth.StudentIdentity)
	ident.Student.FirstName = "Lena"
	gate.Refresh(sess.Handle, ident)

	got, err := gate.Get(sess.Handle)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got.Identity.DisplayName() != "Lena Noel" {
		t.Errorf("DisplayName = %q, want %q", got.Identity.DisplayName(), "Lena Noel")
	}
}
