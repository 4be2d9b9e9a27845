package grade_test

import (
	"strings"
	"testing"
	"time"

	"github.com/crpaedu/backstage/core"
	"github.com/crpaedu/backstage/core/course"
	"github.com/crpaedu/backstage/core/grade"
	"github.com/crpaedu/backstage/core/student"
	emailsvc "github.com/crpaedu/backstage/services/email"
	inmemdb "github.com/crpaedu/backstage/storage/database/inmem"
)

func setup(t *testing.T) (*grade.TranscriptService, *grade.Ledger, student.Repository, course.Repository) {
	t.Helper()
	db := inmemdb.Open()
	stdRepo := inmemdb.NewStudentRepository(db)
	crsRepo := inmemdb.NewCourseRepository(db)
	ledger := grade.NewLedger(inmemdb.NewGradeRepository(db))
	conf := &core.Config{AppName: "Backstage", DefaultFromEmail: "noreply@test.cd"}
	svc := grade.NewTranscriptService(ledger, crsRepo, stdRepo, emailsvc.NewConsoleServiceMock(conf), conf)
	return svc, ledger, stdRepo, crsRepo
}

func createStudent(t *testing.T, repo student.Repository, id, fname, lname string) student.Student {
	t.Helper()
	now := time.Now().UTC()
	std, err := repo.CreateStudent(student.Student{
		ID:        id,
		Email:     strings.ToLower(fname) + "@test.cd",
		FirstName: fname,
		LastName:  lname,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	return std
}

func createCourse(t *testing.T, repo course.Repository, id, code string, credits int, roster ...string) course.Course {
	t.Helper()
	now := time.Now().UTC()
	crs, err := repo.CreateCourse(course.Course{
		ID:         id,
		Code:       code,
		Name:       code + " Title",
		Credits:    credits,
		StudentIDs: roster,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		t.Fatalf("createCourse() failed: %v", err)
	}
	return crs
}

func setGrade(t *testing.T, ledger *grade.Ledger, courseID, studentID, val string) {
	t.Helper()
	if _, err := ledger.Set(grade.SetGrade{CourseID: courseID, StudentID: studentID, Value: val}); err != nil {
		t.Fatalf("setGrade() failed: %v", err)
	}
}

func TestTranscriptService_ForStudent(t *testing.T) {
	svc, ledger, stdRepo, crsRepo := setup(t)

	std := createStudent(t, stdRepo, "s1", "Dexena", "Dharangit")
	createCourse(t, crsRepo, "c1", "DRAM101", 3, "s1")
	createCourse(t, crsRepo, "c2", "DRAM102", 3, "s1")
	createCourse(t, crsRepo, "c3", "DRAM201", 0, "s1") // zero-credit workshop
	setGrade(t, ledger, "c1", "s1", "95")
	setGrade(t, ledger, "c3", "s1", "A")

	tr, err := svc.ForStudent(std.ID)
	if err != nil {
		t.Fatalf("ForStudent() failed: %v", err)
	}

	if len(tr.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(tr.Rows))
	}
	// c2 is ungraded: shown, excluded from the GPA
	// c3 is graded but carries no credits: shown, excluded from the GPA
	if tr.GPA != "4.00" {
		t.Errorf("GPA = %q, want %q", tr.GPA, "4.00")
	}
	if tr.TotalCredits != 3 {
		t.Errorf("TotalCredits = %d, want 3", tr.TotalCredits)
	}
	for _, row := range tr.Rows {
		switch row.CourseID {
		case "c1":
			if row.Grade != "95" || row.Points != 4 {
				t.Errorf("c1 row = %+v", row)
			}
		case "c2":
			if row.Grade != grade.UnsetGrade || row.Points != 0 {
				t.Errorf("c2 row = %+v", row)
			}
		case "c3":
			if row.Grade != "A" || row.Points != 4 {
				t.Errorf("c3 row = %+v", row)
			}
		}
	}
}

func TestTranscriptService_ForStudent_mixedGrades(t *testing.T) {
	svc, ledger, stdRepo, crsRepo := setup(t)

	std := createStudent(t, stdRepo, "s1", "Chad", "Welsh")
	createCourse(t, crsRepo, "c1", "DRAM101", 3, "s1")
	createCourse(t, crsRepo, "c2", "DRAM102", 1, "s1")
	setGrade(t, ledger, "c1", "s1", "85") // 3.0 * 3
	setGrade(t, ledger, "c2", "s1", "D")  // 1.0 * 1

	tr, err := svc.ForStudent(std.ID)
	if err != nil {
		t.Fatalf("ForStudent() failed: %v", err)
	}
	// (9 + 1) / 4
	if tr.GPA != "2.50" {
		t.Errorf("GPA = %q, want %q", tr.GPA, "2.50")
	}
	if tr.TotalCredits != 4 {
		t.Errorf("TotalCredits = %d, want 4", tr.TotalCredits)
	}
}

func TestTranscriptService_ForStudent_noContributingCourses(t *testing.T) {
	svc, _, stdRepo, crsRepo := setup(t)

	std := createStudent(t, stdRepo, "s1", "Selena", "Noel")
	createCourse(t, crsRepo, "c1", "DRAM101", 3, "s1")

	tr, err := svc.ForStudent(std.ID)
	if err != nil {
		t.Fatalf("ForStudent() failed: %v", err)
	}
	if tr.GPA != "0.00" {
		t.Errorf("GPA = %q, want the %q fallback", tr.GPA, "0.00")
	}
	if tr.TotalCredits != 0 {
		t.Errorf("TotalCredits = %d, want 0", tr.TotalCredits)
	}
}

// grades keyed to a deleted course never join into the transcript
func TestTranscriptService_ForStudent_orphanedGrade(t *testing.T) {
	svc, ledger, stdRepo, crsRepo := setup(t)

	std := createStudent(t, stdRepo, "s1", "Rose", "Fraser")
	createCourse(t, crsRepo, "c1", "DRAM101", 3, "s1")
	setGrade(t, ledger, "c1", "s1", "90")
	setGrade(t, ledger, "ghost", "s1", "F") // course never existed

	tr, err := svc.ForStudent(std.ID)
	if err != nil {
		t.Fatalf("ForStudent() failed: %v", err)
	}
	if len(tr.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(tr.Rows))
	}
	if tr.GPA != "4.00" {
		t.Errorf("GPA = %q, want %q", tr.GPA, "4.00")
	}
}

func TestTranscriptService_ForStudent_unknownStudent(t *testing.T) {
	svc, _, _, _ := setup(t)
	if _, err := svc.ForStudent("nope"); err != student.ErrNotFound {
		t.Errorf("ForStudent() error = %v, want %v", err, student.ErrNotFound)
	}
}

func TestTranscript_RenderText(t *testing.T) {
	svc, ledger, stdRepo, crsRepo := setup(t)

	std := createStudent(t, stdRepo, "s1", "Esther", "Marrast")
	createCourse(t, crsRepo, "c1", "DRAM101", 3, "s1")
	setGrade(t, ledger, "c1", "s1", "A")

	tr, err := svc.ForStudent(std.ID)
	if err != nil {
		t.Fatalf("ForStudent() failed: %v", err)
	}
	text := tr.RenderText()
	for _, want := range []string{"Esther Marrast", "DRAM101", "Cumulative GPA: 4.00", "Credits Earned: 3"} {
		if !strings.Contains(text, want) {
			t.Errorf("RenderText() missing %q:\n%s", want, text)
		}
	}
}

func TestLedger_upsert(t *testing.T) {
	_, ledger, _, _ := setup(t)

	setGrade(t, ledger, "c1", "s1", "70")
	setGrade(t, ledger, "c1", "s1", "95") // overwrite, same key

	entry, err := ledger.Get("c1", "s1")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if entry.Value != "95" {
		t.Errorf("Value = %q, want %q", entry.Value, "95")
	}
	all, err := ledger.QueryAll()
	if err != nil {
		t.Fatalf("QueryAll() failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("ledger holds %d entries, want 1", len(all))
	}
}

func TestLedger_deleteUnset(t *testing.T) {
	_, ledger, _, _ := setup(t)
	if err := ledger.Delete("c1", "s1"); err != nil {
		t.Errorf("Delete() on unset grade = %v, want nil", err)
	}
}
