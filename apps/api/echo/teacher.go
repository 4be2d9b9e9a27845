package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/crpaedu/backstage/core/course"
	"github.com/crpaedu/backstage/core/teacher"
)

var errTchNotFoundInCtx = errors.New("teacher object not found in echo.Context")

type teacherApi struct {
	svc        *teacher.Service
	courseSvc  *course.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerTeacherAPI(g *echo.Group, sess echo.MiddlewareFunc, deps ServerDeps) {
	api := teacherApi{
		svc:        deps.TeacherSvc,
		courseSvc:  deps.CourseSvc,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	tg := g.Group("/teachers", sess)

	tg.POST("", api.create, adminMiddleware())
	tg.GET("", api.query, staffMiddleware())
	tg.DELETE("", api.destroyMultiple, adminMiddleware())

	dg := tg.Group("/:id", ctxTeacherMiddleware(api.svc))
	dg.GET("", api.retrieve, staffMiddleware())
	dg.PUT("", api.update, adminMiddleware())
	dg.DELETE("", api.destroy, adminMiddleware())
	dg.GET("/courses", api.courses, staffMiddleware())
}

func ctxTeacherMiddleware(svc *teacher.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			tch, err := svc.GetByID(ctx.Param("id"))
			if err != nil {
				if errors.Cause(err) == teacher.ErrNotFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding teacher by ID")
			}
			ctx.Set("object", tch)
			return next(ctx)
		}
	}
}

// Handlers

func (api *teacherApi) create(ctx echo.Context) error {
	var data teacher.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(api.validate, api.translator, api.svc); err != nil {
		return err
	}

	tch, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating teacher")
	}
	return ctx.JSON(http.StatusCreated, tch)
}

func (api *teacherApi) query(ctx echo.Context) error {
	teachers, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	if teachers == nil {
		teachers = []teacher.Teacher{}
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *teacherApi) retrieve(ctx echo.Context) error {
	tch, ok := ctx.Get("object").(teacher.Teacher)
	if !ok {
		return errors.Wrap(errTchNotFoundInCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, tch)
}

func (api *teacherApi) update(ctx echo.Context) error {
	tch, ok := ctx.Get("object").(teacher.Teacher)
	if !ok {
		return errors.Wrap(errTchNotFoundInCtx, "retrieving object from context")
	}

	var data teacher.UpdateTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTeacher")
	}
	if err := data.Validate(api.validate, api.translator, tch, api.svc); err != nil {
		return err
	}

	tch, err := api.svc.Update(tch, data)
	if err != nil {
		return errors.Wrap(err, "updating teacher")
	}
	return ctx.JSON(http.StatusOK, tch)
}

func (api *teacherApi) destroy(ctx echo.Context) error {
	tch, ok := ctx.Get("object").(teacher.Teacher)
	if !ok {
		return errors.Wrap(errTchNotFoundInCtx, "retrieving object from context")
	}
	if !confirmed(ctx) {
		return errConfirmRequired
	}

	if err := api.svc.Delete(tch.ID); err != nil {
		return errors.Wrap(err, "deleting teacher")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *teacherApi) destroyMultiple(ctx echo.Context) error {
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
		return errors.Wrap(err, "deleting teachers")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *teacherApi) courses(ctx echo.Context) error {
	tch, ok := ctx.Get("object").(teacher.Teacher)
	if !ok {
		return errors.Wrap(errTchNotFoundInCtx, "retrieving object from context")
	}

	courses, err := api.courseSvc.QueryByTeacher(tch.ID)
	if err != nil {
		return errors.Wrap(err, "querying teacher courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}
