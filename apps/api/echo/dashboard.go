package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/crpaedu/backstage/core/auth"
	"github.com/crpaedu/backstage/core/course"
	"github.com/crpaedu/backstage/core/payment"
)

type dashboardApi struct {
	deps ServerDeps
}

// registerDashboardAPI serves the landing-page stats. The payload shape
// depends on the caller's role.
func registerDashboardAPI(g *echo.Group, sess echo.MiddlewareFunc, deps ServerDeps) {
	api := dashboardApi{deps: deps}
	g.GET("/dashboard", api.retrieve, sess)
}

func (api *dashboardApi) retrieve(ctx echo.Context) error {
	identity := contextIdentity(ctx)
	if identity == nil {
		return errSessionMissing
	}

	switch identity.Role() {
	case auth.RoleAdmin:
		return api.adminDashboard(ctx)
	case auth.RoleTeacher:
		return api.teacherDashboard(ctx, identity.ID())
	default:
		return api.studentDashboard(ctx, identity.ID())
	}
}

func (api *dashboardApi) adminDashboard(ctx echo.Context) error {
	students, err := api.deps.StudentSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	teachers, err := api.deps.TeacherSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	courses, err := api.deps.CourseSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	sum, err := api.deps.PaymentSvc.Summarize()
	if err != nil {
		return errors.Wrap(err, "summarizing payments")
	}
	shows, err := api.deps.BulletinSvc.QueryShows()
	if err != nil {
		return errors.Wrap(err, "querying shows")
	}

	return ctx.JSON(http.StatusOK, AdminDashboard{
		StudentCount: len(students),
		TeacherCount: len(teachers),
		CourseCount:  len(courses),
		ShowCount:    len(shows),
		Payments:     sum,
		Courses:      courseStats(courses),
	})
}

func (api *dashboardApi) teacherDashboard(ctx echo.Context, teacherID string) error {
	courses, err := api.deps.CourseSvc.QueryByTeacher(teacherID)
	if err != nil {
		return errors.Wrap(err, "querying teacher courses")
	}
	return ctx.JSON(http.StatusOK, TeacherDashboard{
		CourseCount: len(courses),
		Courses:     courseStats(courses),
	})
}

func (api *dashboardApi) studentDashboard(ctx echo.Context, studentID string) error {
	tr, err := api.deps.TranscriptSvc.ForStudent(studentID)
	if err != nil {
		return errors.Wrap(err, "computing transcript")
	}
	payments, err := api.deps.PaymentSvc.QueryByStudent(studentID)
	if err != nil {
		return errors.Wrap(err, "querying student payments")
	}
	var outstanding float64
	for _, p := range payments {
		if p.Status != payment.StatusPaid {
			outstanding += p.Amount
		}
	}
	return ctx.JSON(http.StatusOK, StudentDashboard{
		EnrolledCourses:    len(tr.Rows),
		GPA:                tr.GPA,
		CreditsEarned:      tr.TotalCredits,
		OutstandingBalance: outstanding,
	})
}

func courseStats(courses []course.Course) []CourseStat {
	stats := make([]CourseStat, 0, len(courses))
	for _, crs := range courses {
		stats = append(stats, CourseStat{
			CourseID: crs.ID,
			Code:     crs.Code,
			Name:     crs.Name,
			Enrolled: len(crs.StudentIDs),
			Capacity: crs.Capacity,
			FillRate: crs.FillRate(),
		})
	}
	return stats
}

type (
	CourseStat struct {
		CourseID string  `json:"course_id"`
		Code     string  `json:"code"`
		Name     string  `json:"name"`
		Enrolled int     `json:"enrolled"`
		Capacity int     `json:"capacity"`
		FillRate float64 `json:"fill_rate"`
	}

	AdminDashboard struct {
		StudentCount int             `json:"student_count"`
		TeacherCount int             `json:"teacher_count"`
		CourseCount  int             `json:"course_count"`
		ShowCount    int             `json:"show_count"`
		Payments     payment.Summary `json:"payments"`
		Courses      []CourseStat    `json:"courses"`
	}

	TeacherDashboard struct {
		CourseCount int          `json:"course_count"`
		Courses     []CourseStat `json:"courses"`
	}

	StudentDashboard struct {
		EnrolledCourses    int     `json:"enrolled_courses"`
		GPA                string  `json:"gpa"`
		CreditsEarned      int     `json:"credits_earned"`
		OutstandingBalance float64 `json:"outstanding_balance"`
	}
)
