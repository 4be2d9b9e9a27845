package inmemdb

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/crpaedu/backstage/core/bulletin"
	"github.com/crpaedu/backstage/core/course"
	"github.com/crpaedu/backstage/core/payment"
	"github.com/crpaedu/backstage/core/student"
	"github.com/crpaedu/backstage/core/teacher"
)

const dramaProgram = "Cape Performing Arts Drama"

type seedStudent struct {
	id, email, fname, mname, lname, dob, gender string
}

var seedStudents = []seedStudent{
	{"101", "msrdharangit23@gmail.com", "Dexena", "Tina", "Dharangit", "1998-09-23", student.GenderFemale},
	{"102", "lilleennedd@gmail.com", "Lilleen", "J.Y.N", "Nedd", "1991-02-07", student.GenderFemale},
	{"103", "tracy.fshsdacc@gmail.com", "Tracy", "Jenelle", "Francois", "1979-07-29", student.GenderFemale},
	{"104", "roservfraser@gmail.com", "Rose", "Raquel", "Fraser", "1979-09-14", student.GenderFemale},
	{"105", "selenanoel11@gmail.com", "Selena", "Kristie", "Noel", "2007-10-12", student.GenderFemale},
	{"106", "yoggie758@gmail.com", "Yoggie", "Nichola", "Brizan", "1983-04-17", student.GenderFemale},
	{"107", "milindad.work@gmail.com", "Milinda", "Dianne Deslyn", "Mc Intosh", "2003-11-25", student.GenderFemale},
	{"108", "liscarale1@gmail.com", "Lisa", "Carona", "Alexis", "1987-01-07", student.GenderFemale},
	{"109", "leisaalexander6@gmail.com", "Leisa", "Monica", "Alexander-Francis", "1971-10-29", student.GenderFemale},
	{"110", "kysemef@gmail.com", "Chad", "Kyseme", "Welsh", "1999-07-17", student.GenderMale},
	{"111", "akrholuwork@gmail.com", "Aklemia", "Ronda", "Lucas", "1985-03-23", student.GenderFemale},
	{"112", "rockeljosephjohn@gmail.com", "Rockel", "C.", "Joseph John", "1991-04-07", student.GenderFemale},
	{"113", "nakrysprwilliams@gmail.com", "Nakrys", "Roger Peter", "Williams", "2010-02-16", student.GenderMale},
	{"114", "karisalexander6@gmail.com", "Karisa", "Kanilla and Sarah", "Alexander", "2015-04-20", student.GenderFemale},
	{"115", "cassidyfarray102@gmail.com", "Cassidy", "Elizabeth Kimora", "Farray", "2009-04-02", student.GenderFemale},
	{"116", "naethaniel.felix10@gmail.com", "Naethaniel", "Michael", "Alexander Felix", "2010-12-30", student.GenderMale},
	{"117", "roniquea8@gmail.com", "Ronique", "Adiesha Naomi Karina", "Alexander", "2013-03-19", student.GenderFemale},
	{"118", "natanya.gidharry@placeholder.com", "Natanya", "Mackada Abigail", "Gidharry", "2013-11-25", student.GenderFemale},
	{"119", "sabra.rose27@gmail.com", "Beth", "Sabra Tracyanna", "Frederick", "2008-10-20", student.GenderFemale},
	{"120", "gisellealexander965@gmail.com", "Giselle", "Tarisha", "Alexander", "1996-01-02", student.GenderFemale},
	{"121", "sylvesterchris1988@gmail.com", "Andre", "Christopher", "Sylvester", "1988-10-31", student.GenderMale},
	{"122", "esthermarrast247@gmail.com", "Esther", "Kamel", "Marrast", "2000-11-13", student.GenderFemale},
	{"123", "abrahamkazia05@gmail.com", "Kazia", "Akiva Danielle", "Abraham", "2005-06-19", student.GenderFemale},
	{"124", "bbrathwa29@gmail.com", "Brandon", "Isaiah", "Brathwaite", "1997-12-29", student.GenderMale},
}

// Seed loads the demo academy into an empty DB: the drama class roster,
// the teaching staff, two courses, and sample payments, announcements and
// shows. Every seeded account's password is "password".
func Seed(db *DB) error {
	now := time.Now().UTC()

	// all demo accounts share one password; hash it once
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	students := NewStudentRepository(db)
	for _, s := range seedStudents {
		if _, err := students.CreateStudent(student.Student{
			ID:               s.id,
			Email:            s.email,
			FirstName:        s.fname,
			MiddleName:       s.mname,
			LastName:         s.lname,
			DOB:              s.dob,
			Gender:           s.gender,
			Program:          dramaProgram,
			EnrollmentStatus: student.StatusActive,
			PasswordHash:     hash,
			CreatedAt:        now,
			UpdatedAt:        now,
		}); err != nil {
			return err
		}
	}

	teachers := NewTeacherRepository(db)
	for _, t := range []teacher.Teacher{
		{ID: "1", Name: "Mrs. C.R. Williams", Email: "director@academy.com", Department: "Drama", Specialty: "Drama", Status: teacher.StatusActive},
		{ID: "2", Name: "Mme. Dubois", Email: "dubois@crpa.edu", Specialty: "Ballet", Status: teacher.StatusActive},
		{ID: "3", Name: "Mr. Rogers", Email: "rogers@crpa.edu", Specialty: "Jazz", Status: teacher.StatusActive},
		{ID: "4", Name: "Sarah J.", Email: "sarahj@crpa.edu", Specialty: "Acting", Status: teacher.StatusActive},
		{ID: "5", Name: "Prof. Alighieri", Email: "dante@crpa.edu", Specialty: "Voice", Status: teacher.StatusOnLeave},
	} {
		t.CreatedAt, t.UpdatedAt = now, now
		if _, err := teachers.CreateTeacher(t); err != nil {
			return err
		}
	}

	courses := NewCourseRepository(db)
	for _, c := range []course.Course{
		{
			ID:         "1",
			Code:       "DRAM101",
			Name:       "Intro Acting",
			Credits:    3,
			TeacherID:  "1",
			StudentIDs: []string{"101", "102", "110", "124"},
			Capacity:   20,
			Syllabus: course.Syllabus{
				Description: "An introduction to the fundamental principles of acting.",
				Objectives:  "To understand the basics of stage presence and voice projection.",
				Outcomes:    "Students will be able to perform a 2-minute monologue.",
				Content:     "Week 1: Breath\nWeek 2: Movement\nWeek 3: Voice\nWeek 4: Text Analysis",
				Strategies:  "Workshops, rehearsals, and peer review.",
				Assessment:  "40% Practical, 60% Final Performance",
				Resources:   "Acting Handbook Vol 1",
			},
		},
		{
			ID:         "2",
			Code:       "DRAM102",
			Name:       "Voice & Speech",
			Credits:    3,
			TeacherID:  "1",
			StudentIDs: []string{"103", "104", "105"},
			Capacity:   20,
		},
	} {
		c.CreatedAt, c.UpdatedAt = now, now
		if _, err := courses.CreateCourse(c); err != nil {
			return err
		}
	}

	payments := NewPaymentRepository(db)
	for _, p := range []payment.Payment{
		{ID: "1", StudentID: "101", StudentName: "Dexena Dharangit", Amount: 450.00, Description: "Fall Semester Tuition", Date: "2024-09-01", Status: payment.StatusPaid, Method: "Bank Transfer"},
		{ID: "2", StudentID: "102", StudentName: "Lilleen Nedd", Amount: 450.00, Description: "Fall Semester Tuition", Date: "2024-09-01", Status: payment.StatusPending, Method: "Credit Card"},
		{ID: "3", StudentID: "103", StudentName: "Tracy Francois", Amount: 150.00, Description: "Uniform Fee", Date: "2024-09-15", Status: payment.StatusOverdue, Method: "Cash"},
	} {
		p.CreatedAt, p.UpdatedAt = now, now
		if _, err := payments.CreatePayment(p); err != nil {
			return err
		}
	}

	bulletins := NewBulletinRepository(db)
	for _, a := range []bulletin.Announcement{
		{
			ID:       "1",
			Title:    "Spring Recital Auditions",
			Content:  "Auditions for the main roles will be held next Friday in Studio A. Please prepare a 2-minute monologue.",
			Date:     "2024-03-10",
			Audience: bulletin.AudienceAll,
			Author:   "Admin",
		},
		{
			ID:       "2",
			Title:    "Facility Maintenance",
			Content:  "Studio B will be closed for floor maintenance on Wednesday afternoon.",
			Date:     "2024-03-12",
			Audience: bulletin.AudienceAll,
			Author:   "Admin",
		},
	} {
		a.CreatedAt, a.UpdatedAt = now, now
		if _, err := bulletins.CreateAnnouncement(a); err != nil {
			return err
		}
	}

	if _, err := bulletins.CreateShow(bulletin.Show{
		ID:       "1",
		Title:    "Spring Showcase: Awakening",
		Date:     "2024-04-15",
		Location: "Main Auditorium",
		Description: "Join us for an evening of contemporary dance and drama featuring our senior students. " +
			"This year's theme explores the concept of rebirth and new beginnings through movement and spoken word.",
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return err
	}

	return nil
}
