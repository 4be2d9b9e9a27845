package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/crpaedu/backstage/core"
	"github.com/crpaedu/backstage/core/auth"
	"github.com/crpaedu/backstage/core/bulletin"
	"github.com/crpaedu/backstage/core/course"
	"github.com/crpaedu/backstage/core/grade"
	"github.com/crpaedu/backstage/core/payment"
	"github.com/crpaedu/backstage/core/student"
	"github.com/crpaedu/backstage/core/teacher"
	emailsvc "github.com/crpaedu/backstage/services/email"
	logsvc "github.com/crpaedu/backstage/services/logger"
	photosvc "github.com/crpaedu/backstage/services/photo"
	reportsvc "github.com/crpaedu/backstage/services/report"
	inmemdb "github.com/crpaedu/backstage/storage/database/inmem"
)

// editorStub hands back a fixed image for any instruction.
type editorStub struct {
	result string
}

func (e editorStub) EditImage(_ context.Context, _, _, _ string) (string, error) {
	return e.result, nil
}

type testApp struct {
	server Server
	gate   *auth.Gate

	studentSvc *student.Service
	teacherSvc *teacher.Service
	courseSvc  *course.Service
	ledger     *grade.Ledger
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithEditor(t, nil)
}

func newTestAppWithEditor(t *testing.T, editor photosvc.Editor) *testApp {
	t.Helper()

	conf := &core.Config{
		Env:              "test",
		TestMode:         true,
		AppName:          "Backstage",
		DefaultFromEmail: "noreply@test.cd",
	}
	conf.Auth.AdminUsername = "admin"
	conf.Auth.AdminPassword = "adm1n"
	conf.Auth.TeacherSharedPassword = "staffroom"

	db := inmemdb.Open()
	stdRepo := inmemdb.NewStudentRepository(db)
	tchRepo := inmemdb.NewTeacherRepository(db)
	crsRepo := inmemdb.NewCourseRepository(db)

	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	stdSvc := student.NewService(stdRepo)
	tchSvc := teacher.NewService(tchRepo)
	crsSvc := course.NewService(crsRepo, conf)
	ledger := grade.NewLedger(inmemdb.NewGradeRepository(db))
	gate := auth.NewGate(stdRepo, tchRepo, conf)

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)

	server := NewServer(ServerDeps{
		Conf:          conf,
		Logger:        logsvc.NewStdLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags)),
		Validate:      validate,
		Translator:    translator,
		Gate:          gate,
		StudentSvc:    stdSvc,
		TeacherSvc:    tchSvc,
		CourseSvc:     crsSvc,
		Ledger:        ledger,
		TranscriptSvc: grade.NewTranscriptService(ledger, crsRepo, stdRepo, mailSvc, conf),
		PaymentSvc:    payment.NewService(inmemdb.NewPaymentRepository(db), stdRepo),
		BulletinSvc:   bulletin.NewService(inmemdb.NewBulletinRepository(db)),
		ReportSvc:     reportsvc.NewService(crsRepo, stdRepo, ledger),
		PhotoEditor:   editor,
	})

	return &testApp{
		server:     server,
		gate:       gate,
		studentSvc: stdSvc,
		teacherSvc: tchSvc,
		courseSvc:  crsSvc,
		ledger:     ledger,
	}
}

func (app *testApp) do(t *testing.T, method, path, handle string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if handle != "" {
		req.Header.Set("Authorization", "Session "+handle)
	}
	rec := httptest.NewRecorder()
	app.server.ServeHTTP(rec, req)
	return rec
}

func (app *testApp) login(t *testing.T, role, user, pass string) string {
	t.Helper()
	sess, err := app.gate.Login(auth.Credentials{Role: role, Identifier: user, Secret: pass})
	if err != nil {
		t.Fatalf("login(%s) failed: %v", role, err)
	}
	return sess.Handle
}

func (app *testApp) createStudent(t *testing.T, email, fname, lname, pwd string) student.Student {
	t.Helper()
	std, err := app.studentSvc.Create(student.NewStudent{
		Email: email, FirstName: fname, LastName: lname, Password: pwd,
	})
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	return std
}

func (app *testApp) createTeacher(t *testing.T, name, email string) teacher.Teacher {
	t.Helper()
	tch, err := app.teacherSvc.Create(teacher.NewTeacher{Name: name, Email: email})
	if err != nil {
		t.Fatalf("createTeacher() failed: %v", err)
	}
	return tch
}

func (app *testApp) createCourse(t *testing.T, code, teacherID string, roster ...string) course.Course {
	t.Helper()
	crs, err := app.courseSvc.Create(course.NewCourse{
		Code: code, Name: code + " Title", Credits: 3, TeacherID: teacherID, Capacity: 20,
	})
	if err != nil {
		t.Fatalf("createCourse() failed: %v", err)
	}
	for _, sid := range roster {
		if crs, err = app.courseSvc.Enroll(crs.ID, sid); err != nil {
			t.Fatalf("enroll(%s) failed: %v", sid, err)
		}
	}
	return crs
}

func Test_authApi_login(t *testing.T) {
	app := newTestApp(t)
	std := app.createStudent(t, "chad@test.cd", "Chad", "Welsh", "s3cret")

	tests := []struct {
		name     string
		body     interface{}
		wantCode int
	}{
		{name: "admin ok", body: auth.Credentials{Role: "ADMIN", Identifier: "admin", Secret: "adm1n"}, wantCode: http.StatusOK},
		{name: "admin rejected", body: auth.Credentials{Role: "ADMIN", Identifier: "admin", Secret: "nope"}, wantCode: http.StatusBadRequest},
		{name: "student ok", body: auth.Credentials{Role: "STUDENT", Identifier: "CHAD@test.cd", Secret: "s3cret"}, wantCode: http.StatusOK},
		{name: "student rejected", body: auth.Credentials{Role: "STUDENT", Identifier: "chad@test.cd", Secret: "wrong"}, wantCode: http.StatusBadRequest},
		{name: "unknown role", body: auth.Credentials{Role: "JANITOR", Identifier: "x", Secret: "y"}, wantCode: http.StatusBadRequest},
		{name: "missing fields", body: map[string]string{"role": "ADMIN"}, wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, http.MethodPost, "/v1/login", "", tt.body)
			if rec.Code != tt.wantCode {
				t.Errorf("code = %d, want %d; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}

	// a successful login yields a usable session handle
	rec := app.do(t, http.MethodPost, "/v1/login", "", auth.Credentials{Role: "STUDENT", Identifier: std.Email, Secret: "s3cret"})
	var resp SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding login response: %v", err)
	}
	if resp.Role != auth.RoleStudent || resp.ID != std.ID {
		t.Errorf("session = %+v", resp)
	}
	if rec = app.do(t, http.MethodGet, "/v1/session", resp.Handle, nil); rec.Code != http.StatusOK {
		t.Errorf("GET /v1/session = %d; body %s", rec.Code, rec.Body.String())
	}
}

func Test_authApi_logout(t *testing.T) {
	app := newTestApp(t)
	handle := app.login(t, "ADMIN", "admin", "adm1n")

	if rec := app.do(t, http.MethodPost, "/v1/logout", handle, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("logout = %d", rec.Code)
	}
	// the handle is dead afterwards
	if rec := app.do(t, http.MethodGet, "/v1/session", handle, nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("GET /v1/session after logout = %d", rec.Code)
	}
}

func Test_studentApi_permissions(t *testing.T) {
	app := newTestApp(t)
	std := app.createStudent(t, "rose@test.cd", "Rose", "Fraser", "s3cret")
	other := app.createStudent(t, "tracy@test.cd", "Tracy", "Francois", "s3cret")

	adminHandle := app.login(t, "ADMIN", "admin", "adm1n")
	stdHandle := app.login(t, "STUDENT", std.Email, "s3cret")

	tests := []struct {
		name     string
		method   string
		path     string
		handle   string
		wantCode int
	}{
		{name: "list needs a session", method: http.MethodGet, path: "/v1/students", wantCode: http.StatusUnauthorized},
		{name: "list forbidden to students", method: http.MethodGet, path: "/v1/students", handle: stdHandle, wantCode: http.StatusForbidden},
		{name: "list ok for admin", method: http.MethodGet, path: "/v1/students", handle: adminHandle, wantCode: http.StatusOK},
		{name: "self detail ok", method: http.MethodGet, path: "/v1/students/" + std.ID, handle: stdHandle, wantCode: http.StatusOK},
		{name: "peer detail hidden", method: http.MethodGet, path: "/v1/students/" + other.ID, handle: stdHandle, wantCode: http.StatusNotFound},
		{name: "own transcript ok", method: http.MethodGet, path: "/v1/students/" + std.ID + "/transcript", handle: stdHandle, wantCode: http.StatusOK},
		{name: "delete needs confirmation", method: http.MethodDelete, path: "/v1/students/" + other.ID, handle: adminHandle, wantCode: http.StatusBadRequest},
		{name: "confirmed delete ok", method: http.MethodDelete, path: "/v1/students/" + other.ID + "?confirm=true", handle: adminHandle, wantCode: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, tt.method, tt.path, tt.handle, nil)
			if rec.Code != tt.wantCode {
				t.Errorf("code = %d, want %d; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

func Test_courseApi_enroll(t *testing.T) {
	app := newTestApp(t)
	std := app.createStudent(t, "lisa@test.cd", "Lisa", "Alexis", "s3cret")
	crs := app.createCourse(t, "DRAM101", "")
	adminHandle := app.login(t, "ADMIN", "admin", "adm1n")

	body := RosterRequest{StudentID: std.ID}
	rec := app.do(t, http.MethodPost, "/v1/courses/"+crs.ID+"/enroll", adminHandle, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("enroll = %d; body %s", rec.Code, rec.Body.String())
	}

	// idempotent
	rec = app.do(t, http.MethodPost, "/v1/courses/"+crs.ID+"/enroll", adminHandle, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("re-enroll = %d", rec.Code)
	}
	var got course.Course
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding course: %v", err)
	}
	if len(got.StudentIDs) != 1 {
		t.Errorf("roster = %v, want exactly one member", got.StudentIDs)
	}

	// unknown student is rejected
	rec = app.do(t, http.MethodPost, "/v1/courses/"+crs.ID+"/enroll", adminHandle, RosterRequest{StudentID: "ghost"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("enroll ghost = %d, want 404", rec.Code)
	}
}

func Test_gradeApi_set(t *testing.T) {
	app := newTestApp(t)
	std := app.createStudent(t, "beth@test.cd", "Beth", "Frederick", "s3cret")
	owner := app.createTeacher(t, "Marvin Stewart", "marvin@test.cd")
	outsider := app.createTeacher(t, "Alana Joseph", "alana@test.cd")
	crs := app.createCourse(t, "DRAM101", owner.ID, std.ID)

	ownerHandle := app.login(t, "TEACHER", owner.Email, "staffroom")
	outsiderHandle := app.login(t, "TEACHER", outsider.Email, "staffroom")
	stdHandle := app.login(t, "STUDENT", std.Email, "s3cret")

	body := grade.SetGrade{CourseID: crs.ID, StudentID: std.ID, Value: "92"}

	tests := []struct {
		name     string
		handle   string
		body     grade.SetGrade
		wantCode int
	}{
		{name: "students cannot grade", handle: stdHandle, body: body, wantCode: http.StatusForbidden},
		{name: "outsider teacher cannot grade", handle: outsiderHandle, body: body, wantCode: http.StatusForbidden},
		{name: "owning teacher grades", handle: ownerHandle, body: body, wantCode: http.StatusOK},
		{
			name: "bad token rejected", handle: ownerHandle,
			body: grade.SetGrade{CourseID: crs.ID, StudentID: std.ID, Value: "AB"}, wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, http.MethodPut, "/v1/grades", tt.handle, tt.body)
			if rec.Code != tt.wantCode {
				t.Errorf("code = %d, want %d; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}

	// the grade landed and feeds the transcript
	entry, err := app.ledger.Get(crs.ID, std.ID)
	if err != nil {
		t.Fatalf("ledger.Get() failed: %v", err)
	}
	if entry.Value != "92" {
		t.Errorf("Value = %q, want %q", entry.Value, "92")
	}
	rec := app.do(t, http.MethodGet, "/v1/students/"+std.ID+"/transcript", stdHandle, nil)
	var tr grade.Transcript
	if err := json.Unmarshal(rec.Body.Bytes(), &tr); err != nil {
		t.Fatalf("decoding transcript: %v", err)
	}
	if tr.GPA != "4.00" {
		t.Errorf("GPA = %q, want %q", tr.GPA, "4.00")
	}
}

func Test_courseApi_gradebookXLSX(t *testing.T) {
	app := newTestApp(t)
	std := app.createStudent(t, "kazia@test.cd", "Kazia", "Abraham", "s3cret")
	crs := app.createCourse(t, "DRAM101", "", std.ID)
	adminHandle := app.login(t, "ADMIN", "admin", "adm1n")

	rec := app.do(t, http.MethodGet, "/v1/courses/"+crs.ID+"/gradebook.xlsx", adminHandle, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("gradebook.xlsx = %d; body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty workbook body")
	}
}

func Test_photoApi_disabled(t *testing.T) {
	app := newTestApp(t)
	adminHandle := app.login(t, "ADMIN", "admin", "adm1n")

	rec := app.do(t, http.MethodPost, "/v1/photo/edit", adminHandle, EditPhotoRequest{
		ImageB64:    "aGVsbG8=",
		MimeType:    "image/png",
		Instruction: "remove the background",
	})
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("photo edit with no editor = %d, want 503", rec.Code)
	}
}

func Test_photoApi_apply(t *testing.T) {
	app := newTestAppWithEditor(t, editorStub{result: "ZWRpdGVk"})
	std := app.createStudent(t, "drew@test.cd", "Drew", "Barrett", "s3cret")
	adminHandle := app.login(t, "ADMIN", "admin", "adm1n")

	// a target without a role is rejected before anything is edited
	rec := app.do(t, http.MethodPost, "/v1/photo/edit", adminHandle, EditPhotoRequest{
		ImageB64:    "aGVsbG8=",
		MimeType:    "image/png",
		Instruction: "remove the background",
		ApplyTo:     std.ID,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("apply without role = %d, want 400; body %s", rec.Code, rec.Body.String())
	}
	if got, _ := app.studentSvc.GetByID(std.ID); got.PhotoURL != "" {
		t.Fatalf("PhotoURL = %q, want untouched", got.PhotoURL)
	}

	// with the role the result is saved and the response says so
	rec = app.do(t, http.MethodPost, "/v1/photo/edit", adminHandle, EditPhotoRequest{
		ImageB64:    "aGVsbG8=",
		MimeType:    "image/png",
		Instruction: "remove the background",
		ApplyTo:     std.ID,
		ApplyRole:   "student",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("apply = %d; body %s", rec.Code, rec.Body.String())
	}
	var resp EditPhotoResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.Edited || !resp.Applied {
		t.Errorf("response = %+v, want edited and applied", resp)
	}
	got, err := app.studentSvc.GetByID(std.ID)
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if want := "data:image/png;base64,ZWRpdGVk"; got.PhotoURL != want {
		t.Errorf("PhotoURL = %q, want %q", got.PhotoURL, want)
	}
}
