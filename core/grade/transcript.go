package grade

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/pkg/errors"

	"github.com/crpaedu/backstage/core"
	"github.com/crpaedu/backstage/core/course"
	"github.com/crpaedu/backstage/core/student"
)

// UnsetGrade is how an ungraded enrollment renders on a transcript.
const UnsetGrade = "-"

type (
	// TranscriptRow is one enrolled course on the transcript.
	TranscriptRow struct {
		CourseID string  `json:"course_id"`
		Code     string  `json:"code"`
		Title    string  `json:"title"`
		Credits  int     `json:"credits"`
		Grade    string  `json:"grade"`
		Points   float64 `json:"points"`
	}

	// Transcript is the derived, read-only academic record of one student.
	Transcript struct {
		StudentID   string          `json:"student_id"`
		StudentName string          `json:"student_name"`
		Program     string          `json:"program,omitempty"`
		Notes       string          `json:"notes,omitempty"`
		Rows        []TranscriptRow `json:"rows"`
		// GPA is pre-formatted to two decimals; "0.00" when no course contributes.
		GPA          string `json:"gpa"`
		TotalCredits int    `json:"total_credits"`
	}

	// TranscriptService derives transcripts by joining roster memberships
	// with the grade ledger. It never mutates anything.
	TranscriptService struct {
		ledger   *Ledger
		courses  course.Repository
		students student.Repository
		mailSvc  core.EmailService
		conf     *core.Config
	}
)

func NewTranscriptService(
	ledger *Ledger,
	courses course.Repository,
	students student.Repository,
	mailSvc core.EmailService,
	conf *core.Config,
) *TranscriptService {
	return &TranscriptService{
		ledger:   ledger,
		courses:  courses,
		students: students,
		mailSvc:  mailSvc,
		conf:     conf,
	}
}

// ForStudent computes the student's transcript. Courses with no recorded
// grade, or with zero credits, appear as rows but contribute to neither
// the GPA numerator nor its denominator: ungraded is not failing.
// Grades keyed to deleted courses simply never join in.
func (svc *TranscriptService) ForStudent(studentID string) (Transcript, error) {
	std, err := svc.students.GetStudentByID(studentID)
	if err != nil {
		return Transcript{}, err
	}

	enrolled, err := svc.courses.QueryCoursesByStudentID(studentID)
	if err != nil {
		return Transcript{}, errors.Wrap(err, "querying enrolled courses")
	}

	var totalPoints float64
	var totalCredits int
	rows := make([]TranscriptRow, 0, len(enrolled))
	for _, crs := range enrolled {
		row := TranscriptRow{
			CourseID: crs.ID,
			Code:     crs.Code,
			Title:    crs.Name,
			Credits:  crs.Credits,
			Grade:    UnsetGrade,
		}
		entry, err := svc.ledger.Get(crs.ID, studentID)
		if err == nil {
			if entry.Value != "" {
				row.Grade = entry.Value
			}
			row.Points = Points(entry.Value)
			if crs.Credits > 0 {
				totalPoints += row.Points * float64(crs.Credits)
				totalCredits += crs.Credits
			}
		} else if !errors.Is(err, ErrNotFound) {
			return Transcript{}, errors.Wrap(err, "reading grade ledger")
		}
		rows = append(rows, row)
	}

	gpa := "0.00"
	if totalCredits > 0 {
		gpa = fmt.Sprintf("%.2f", totalPoints/float64(totalCredits))
	}

	return Transcript{
		StudentID:    std.ID,
		StudentName:  std.FullName(),
		Program:      std.Program,
		Notes:        std.TranscriptNotes,
		Rows:         rows,
		GPA:          gpa,
		TotalCredits: totalCredits,
	}, nil
}

// Email renders the transcript and sends it to the student,
// with administration in copy.
func (svc *TranscriptService) Email(studentID string) error {
	std, err := svc.students.GetStudentByID(studentID)
	if err != nil {
		return err
	}
	tr, err := svc.ForStudent(studentID)
	if err != nil {
		return err
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:          []mail.Address{{Name: std.FullName(), Address: std.Email}},
		Cc:          []mail.Address{svc.conf.FromEmail()},
		Subject:     "Official Transcript - " + tr.StudentName,
		TextContent: tr.RenderText(),
	})
	return nil
}

// RenderText formats the transcript as plain text.
func (tr Transcript) RenderText() string {
	b := new(strings.Builder)
	fmt.Fprintf(b, "Official Transcript\n\n")
	fmt.Fprintf(b, "Student: %s (%s)\n", tr.StudentName, tr.StudentID)
	if tr.Program != "" {
		fmt.Fprintf(b, "Program: %s\n", tr.Program)
	}
	fmt.Fprintf(b, "\n%-10s %-30s %8s %8s %8s\n", "Code", "Title", "Credits", "Grade", "Points")
	for _, row := range tr.Rows {
		fmt.Fprintf(b, "%-10s %-30s %8d %8s %8.1f\n", row.Code, row.Title, row.Credits, row.Grade, row.Points)
	}
	fmt.Fprintf(b, "\nCumulative GPA: %s\n", tr.GPA)
	fmt.Fprintf(b, "Credits Earned: %d\n", tr.TotalCredits)
	if tr.Notes != "" {
		fmt.Fprintf(b, "\nNotes: %s\n", tr.Notes)
	}
	return b.String()
}
