package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/crpaedu/backstage/core/auth"
	"github.com/crpaedu/backstage/core/grade"
	"github.com/crpaedu/backstage/core/payment"
	"github.com/crpaedu/backstage/core/student"
)

var errStdNotFoundInCtx = errors.New("student object not found in echo.Context")

type studentApi struct {
	svc           *student.Service
	transcriptSvc *grade.TranscriptService
	paymentSvc    *payment.Service
	validate      *validator.Validate
	translator    ut.Translator
}

func registerStudentAPI(g *echo.Group, sess echo.MiddlewareFunc, deps ServerDeps) {
	api := studentApi{
		svc:           deps.StudentSvc,
		transcriptSvc: deps.TranscriptSvc,
		paymentSvc:    deps.PaymentSvc,
		validate:      deps.Validate,
		translator:    deps.Translator,
	}

	sg := g.Group("/students", sess)

	sg.POST("", api.create, adminMiddleware())
	sg.GET("", api.query, staffMiddleware())
	sg.DELETE("", api.destroyMultiple, adminMiddleware())

	// detail endpoints: admin, any teacher, or the student themselves
	dg := sg.Group("/:id", ctxStudentMiddleware(api.svc))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, adminMiddleware())
	dg.DELETE("", api.destroy, adminMiddleware())
	dg.GET("/transcript", api.transcript)
	dg.POST("/transcript/email", api.emailTranscript, staffMiddleware())
	dg.GET("/payments", api.payments)
}

// ctxStudentMiddleware loads the addressed student into the context.
// Students may only address themselves; staff may address anyone.
func ctxStudentMiddleware(svc *student.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			identity := contextIdentity(ctx)
			if identity == nil {
				return errSessionMissing
			}
			if identity.Role() == auth.RoleStudent && identity.ID() != ctx.Param("id") {
				return errHttpNotFound
			}

			std, err := svc.GetByID(ctx.Param("id"))
			if err != nil {
				if errors.Cause(err) == student.ErrNotFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding student by ID")
			}
			ctx.Set("object", std)
			return next(ctx)
		}
	}
}

// Handlers

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate, api.translator, api.svc); err != nil {
		return err
	}

	std, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, std)
}

func (api *studentApi) query(ctx echo.Context) error {
	students, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	std, ok := ctx.Get("object").(student.Student)
	if !ok {
		return errors.Wrap(errStdNotFoundInCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) update(ctx echo.Context) error {
	std, ok := ctx.Get("object").(student.Student)
	if !ok {
		return errors.Wrap(errStdNotFoundInCtx, "retrieving object from context")
	}

	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err := data.Validate(api.validate, api.translator, std, api.svc); err != nil {
		return err
	}

	std, err := api.svc.Update(std, data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	std, ok := ctx.Get("object").(student.Student)
	if !ok {
		return errors.Wrap(errStdNotFoundInCtx, "retrieving object from context")
	}
	if !confirmed(ctx) {
		return errConfirmRequired
	}

	if err := api.svc.Delete(std.ID); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) destroyMultiple(ctx echo.Context) error {
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
		return errors.Wrap(err, "deleting students")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) transcript(ctx echo.Context) error {
	std, ok := ctx.Get("object").(student.Student)
	if !ok {
		return errors.Wrap(errStdNotFoundInCtx, "retrieving object from context")
	}

	tr, err := api.transcriptSvc.ForStudent(std.ID)
	if err != nil {
		return errors.Wrap(err, "computing transcript")
	}
	return ctx.JSON(http.StatusOK, tr)
}

func (api *studentApi) emailTranscript(ctx echo.Context) error {
	std, ok := ctx.Get("object").(student.Student)
	if !ok {
		return errors.Wrap(errStdNotFoundInCtx, "retrieving object from context")
	}

	if err := api.transcriptSvc.Email(std.ID); err != nil {
		return errors.Wrap(err, "emailing transcript")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Transcript sent to " + std.Email})
}

func (api *studentApi) payments(ctx echo.Context) error {
	std, ok := ctx.Get("object").(student.Student)
	if !ok {
		return errors.Wrap(errStdNotFoundInCtx, "retrieving object from context")
	}

	payments, err := api.paymentSvc.QueryByStudent(std.ID)
	if err != nil {
		return errors.Wrap(err, "querying student payments")
	}
	if payments == nil {
		payments = []payment.Payment{}
	}
	return ctx.JSON(http.StatusOK, payments)
}

type (
	SuccessResponse struct {
		Success string `json:"success"`
	}

	DestroyMultipleRequest struct {
		IDs []string `query:"id"`
	}
)
