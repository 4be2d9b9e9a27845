package echoapi

import (
	"fmt"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/crpaedu/backstage/core/auth"
	"github.com/crpaedu/backstage/core/course"
	"github.com/crpaedu/backstage/core/grade"
	"github.com/crpaedu/backstage/core/student"
	reportsvc "github.com/crpaedu/backstage/services/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var errCrsNotFoundInCtx = errors.New("course object not found in echo.Context")

type courseApi struct {
	svc        *course.Service
	studentSvc *student.Service
	ledger     *grade.Ledger
	reportSvc  *reportsvc.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerCourseAPI(g *echo.Group, sess echo.MiddlewareFunc, deps ServerDeps) {
	api := courseApi{
		svc:        deps.CourseSvc,
		studentSvc: deps.StudentSvc,
		ledger:     deps.Ledger,
		reportSvc:  deps.ReportSvc,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	cg := g.Group("/courses", sess)

	cg.POST("", api.create, adminMiddleware())
	cg.GET("", api.query)
	cg.DELETE("", api.destroyMultiple, adminMiddleware())

	dg := cg.Group("/:id", ctxCourseMiddleware(api.svc))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, adminMiddleware())
	dg.DELETE("", api.destroy, adminMiddleware())
	dg.POST("/enroll", api.enroll, adminMiddleware())
	dg.POST("/unenroll", api.unenroll, adminMiddleware())
	dg.PUT("/syllabus", api.updateSyllabus, courseOwnerMiddleware())
	dg.GET("/gradebook", api.gradebook, courseOwnerMiddleware())
	dg.GET("/gradebook.xlsx", api.gradebookXLSX, courseOwnerMiddleware())
}

func ctxCourseMiddleware(svc *course.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			crs, err := svc.GetByID(ctx.Param("id"))
			if err != nil {
				if errors.Cause(err) == course.ErrNotFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding course by ID")
			}
			ctx.Set("object", crs)
			return next(ctx)
		}
	}
}

// courseOwnerMiddleware admits the admin and the teacher assigned to the
// context course.
func courseOwnerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			identity := contextIdentity(ctx)
			if identity == nil {
				return errSessionMissing
			}
			if identity.Role() == auth.RoleAdmin {
				return next(ctx)
			}
			crs, ok := ctx.Get("object").(course.Course)
			if ok && identity.Role() == auth.RoleTeacher && crs.TeacherID == identity.ID() {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// Handlers

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	crs, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *courseApi) query(ctx echo.Context) error {
	courses, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	crs, ok := ctx.Get("object").(course.Course)
	if !ok {
		return errors.Wrap(errCrsNotFoundInCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) update(ctx echo.Context) error {
	crs, ok := ctx.Get("object").(course.Course)
	if !ok {
		return errors.Wrap(errCrsNotFoundInCtx, "retrieving object from context")
	}

	var data course.UpdateCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	crs, err := api.svc.Update(crs, data)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	crs, ok := ctx.Get("object").(course.Course)
	if !ok {
		return errors.Wrap(errCrsNotFoundInCtx, "retrieving object from context")
	}
	if !confirmed(ctx) {
		return errConfirmRequired
	}

	if err := api.svc.Delete(crs.ID); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *courseApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if !confirmed(ctx) {
		return errConfirmRequired
	}

	if err := api.svc.Delete(query.IDs...); err != nil {
		return errors.Wrap(err, "deleting courses")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *courseApi) enroll(ctx echo.Context) error {
	crs, ok := ctx.Get("object").(course.Course)
	if !ok {
		return errors.Wrap(errCrsNotFoundInCtx, "retrieving object from context")
	}

	var data RosterRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RosterRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}
	if _, err := api.studentSvc.GetByID(data.StudentID); err != nil {
		return errors.Wrap(err, "resolving student")
	}

	crs, err := api.svc.Enroll(crs.ID, data.StudentID)
	if err != nil {
		return errors.Wrap(err, "enrolling student")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) unenroll(ctx echo.Context) error {
	crs, ok := ctx.Get("object").(course.Course)
	if !ok {
		return errors.Wrap(errCrsNotFoundInCtx, "retrieving object from context")
	}

	var data RosterRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RosterRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	crs, err := api.svc.Unenroll(crs.ID, data.StudentID)
	if err != nil {
		return errors.Wrap(err, "unenrolling student")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) updateSyllabus(ctx echo.Context) error {
	crs, ok := ctx.Get("object").(course.Course)
	if !ok {
		return errors.Wrap(errCrsNotFoundInCtx, "retrieving object from context")
	}

	var data course.Syllabus
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Syllabus")
	}

	crs, err := api.svc.UpdateSyllabus(crs, data)
	if err != nil {
		return errors.Wrap(err, "updating syllabus")
	}
	return ctx.JSON(http.StatusOK, crs)
}

// gradebook joins the roster with the ledger. Roster ids pointing at
// deleted students are dropped.
func (api *courseApi) gradebook(ctx echo.Context) error {
	crs, ok := ctx.Get("object").(course.Course)
	if !ok {
		return errors.Wrap(errCrsNotFoundInCtx, "retrieving object from context")
	}

	rows := make([]GradebookRow, 0, len(crs.StudentIDs))
	for _, sid := range crs.StudentIDs {
		std, err := api.studentSvc.GetByID(sid)
		if err != nil {
			continue
		}
		row := GradebookRow{StudentID: std.ID, StudentName: std.FullName(), Grade: grade.UnsetGrade}
		if entry, err := api.ledger.Get(crs.ID, sid); err == nil && entry.Value != "" {
			row.Grade = entry.Value
			row.Points = grade.Points(entry.Value)
		}
		rows = append(rows, row)
	}

	return ctx.JSON(http.StatusOK, GradebookResponse{
		CourseID:   crs.ID,
		CourseCode: crs.Code,
		Rows:       rows,
	})
}

func (api *courseApi) gradebookXLSX(ctx echo.Context) error {
	crs, ok := ctx.Get("object").(course.Course)
	if !ok {
		return errors.Wrap(errCrsNotFoundInCtx, "retrieving object from context")
	}

	f, err := api.reportSvc.CourseGradebook(crs.ID)
	if err != nil {
		return errors.Wrap(err, "building gradebook workbook")
	}

	ctx.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="gradebook-%s.xlsx"`, crs.Code))
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response())
}

type (
	RosterRequest struct {
		StudentID string `json:"student_id" validate:"required"`
	}

	GradebookRow struct {
		StudentID   string  `json:"student_id"`
		StudentName string  `json:"student_name"`
		Grade       string  `json:"grade"`
		Points      float64 `json:"points"`
	}

	GradebookResponse struct {
		CourseID   string         `json:"course_id"`
		CourseCode string         `json:"course_code"`
		Rows       []GradebookRow `json:"rows"`
	}
)
