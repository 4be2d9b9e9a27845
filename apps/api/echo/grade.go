package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/crpaedu/backstage/core/auth"
	"github.com/crpaedu/backstage/core/course"
	"github.com/crpaedu/backstage/core/grade"
)

type gradeApi struct {
	ledger     *grade.Ledger
	courseSvc  *course.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerGradeAPI(g *echo.Group, sess echo.MiddlewareFunc, deps ServerDeps) {
	api := gradeApi{
		ledger:     deps.Ledger,
		courseSvc:  deps.CourseSvc,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	gg := g.Group("/grades", sess, staffMiddleware())

	gg.GET("", api.query)
	gg.PUT("", api.set)
	gg.DELETE("", api.destroy)
}

// mayGrade admits the admin and the teacher assigned to the course.
func (api *gradeApi) mayGrade(identity auth.Identity, courseID string) error {
	if identity.Role() == auth.RoleAdmin {
		return nil
	}
	crs, err := api.courseSvc.GetByID(courseID)
	if err != nil {
		return errors.Wrap(err, "resolving graded course")
	}
	if crs.TeacherID != identity.ID() {
		return errHttpForbidden
	}
	return nil
}

// Handlers

func (api *gradeApi) query(ctx echo.Context) error {
	var (
		entries []grade.Entry
		err     error
	)
	switch {
	case ctx.QueryParam("course_id") != "":
		entries, err = api.ledger.QueryByCourse(ctx.QueryParam("course_id"))
	case ctx.QueryParam("student_id") != "":
		entries, err = api.ledger.QueryByStudent(ctx.QueryParam("student_id"))
	default:
		entries, err = api.ledger.QueryAll()
	}
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	if entries == nil {
		entries = []grade.Entry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *gradeApi) set(ctx echo.Context) error {
	var data grade.SetGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SetGrade")
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	identity := contextIdentity(ctx)
	if identity == nil {
		return errSessionMissing
	}
	if err := api.mayGrade(identity, data.CourseID); err != nil {
		return err
	}

	entry, err := api.ledger.Set(data)
	if err != nil {
		return errors.Wrap(err, "recording grade")
	}
	return ctx.JSON(http.StatusOK, entry)
}

func (api *gradeApi) destroy(ctx echo.Context) error {
	courseID, studentID := ctx.QueryParam("course_id"), ctx.QueryParam("student_id")
	if courseID == "" || studentID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "course_id and student_id are required")
	}

	identity := contextIdentity(ctx)
	if identity == nil {
		return errSessionMissing
	}
	if err := api.mayGrade(identity, courseID); err != nil {
		return err
	}

	if err := api.ledger.Delete(courseID, studentID); err != nil {
		return errors.Wrap(err, "deleting grade")
	}
	return ctx.NoContent(http.StatusNoContent)
}
