package inmemdb

import "testing"

func TestSeed(t *testing.T) {
	db := Open()
	if err := Seed(db); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}

	students, err := NewStudentRepository(db).QueryAllStudents()
	if err != nil {
		t.Fatalf("QueryAllStudents() failed: %v", err)
	}
	if len(students) != 24 {
		t.Errorf("got %d students, want 24", len(students))
	}
	for _, std := range students {
		if err = std.CheckPassword("password"); err != nil {
			t.Errorf("seed password rejected for %s: %v", std.Email, err)
		}
		break // one bcrypt check is enough
	}

	teachers, err := NewTeacherRepository(db).QueryAllTeachers()
	if err != nil {
		t.Fatalf("QueryAllTeachers() failed: %v", err)
	}
	if len(teachers) != 5 {
		t.Errorf("got %d teachers, want 5", len(teachers))
	}

	courses, err := NewCourseRepository(db).QueryAllCourses()
	if err != nil {
		t.Fatalf("QueryAllCourses() failed: %v", err)
	}
	if len(courses) != 2 {
		t.Fatalf("got %d courses, want 2", len(courses))
	}
	for _, crs := range courses {
		if crs.Code == "DRAM101" && len(crs.StudentIDs) != 4 {
			t.Errorf("DRAM101 roster = %v", crs.StudentIDs)
		}
	}
}
