package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/crpaedu/backstage/core/payment"
)

var errPmtNotFoundInCtx = errors.New("payment object not found in echo.Context")

type paymentApi struct {
	svc        *payment.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerPaymentAPI(g *echo.Group, sess echo.MiddlewareFunc, deps ServerDeps) {
	api := paymentApi{
		svc:        deps.PaymentSvc,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	pg := g.Group("/payments", sess, adminMiddleware())

	pg.POST("", api.create)
	pg.GET("", api.query)
	pg.GET("/summary", api.summary)

	dg := pg.Group("/:id", ctxPaymentMiddleware(api.svc))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

func ctxPaymentMiddleware(svc *payment.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			p, err := svc.GetByID(ctx.Param("id"))
			if err != nil {
				if errors.Cause(err) == payment.ErrNotFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding payment by ID")
			}
			ctx.Set("object", p)
			return next(ctx)
		}
	}
}

// Handlers

func (api *paymentApi) create(ctx echo.Context) error {
	var data payment.NewPayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPayment")
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	p, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "recording payment")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *paymentApi) query(ctx echo.Context) error {
	var (
		payments []payment.Payment
		err      error
	)
	if sid := ctx.QueryParam("student_id"); sid != "" {
		payments, err = api.svc.QueryByStudent(sid)
	} else {
		payments, err = api.svc.QueryAll()
	}
	if err != nil {
		return errors.Wrap(err, "querying payments")
	}
	if payments == nil {
		payments = []payment.Payment{}
	}
	return ctx.JSON(http.StatusOK, payments)
}

func (api *paymentApi) summary(ctx echo.Context) error {
	sum, err := api.svc.Summarize()
	if err != nil {
		return errors.Wrap(err, "summarizing payments")
	}
	return ctx.JSON(http.StatusOK, sum)
}

func (api *paymentApi) retrieve(ctx echo.Context) error {
	p, ok := ctx.Get("object").(payment.Payment)
	if !ok {
		return errors.Wrap(errPmtNotFoundInCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *paymentApi) update(ctx echo.Context) error {
	p, ok := ctx.Get("object").(payment.Payment)
	if !ok {
		return errors.Wrap(errPmtNotFoundInCtx, "retrieving object from context")
	}

	var data payment.UpdatePayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdatePayment")
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	p, err := api.svc.Update(p, data)
	if err != nil {
		return errors.Wrap(err, "updating payment")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *paymentApi) destroy(ctx echo.Context) error {
	p, ok := ctx.Get("object").(payment.Payment)
	if !ok {
		return errors.Wrap(errPmtNotFoundInCtx, "retrieving object from context")
	}
	if !confirmed(ctx) {
		return errConfirmRequired
	}

	if err := api.svc.Delete(p.ID); err != nil {
		return errors.Wrap(err, "deleting payment")
	}
	return ctx.NoContent(http.StatusNoContent)
}
