package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/crpaedu/backstage/core/auth"
	"github.com/crpaedu/backstage/core/bulletin"
)

var (
	errAnnNotFoundInCtx  = errors.New("announcement object not found in echo.Context")
	errShowNotFoundInCtx = errors.New("show object not found in echo.Context")
)

type bulletinApi struct {
	svc        *bulletin.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerBulletinAPI(g *echo.Group, sess echo.MiddlewareFunc, deps ServerDeps) {
	api := bulletinApi{
		svc:        deps.BulletinSvc,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	ag := g.Group("/announcements", sess)
	ag.POST("", api.publish, adminMiddleware())
	ag.GET("", api.queryAnnouncements)

	adg := ag.Group("/:id", adminMiddleware(), ctxAnnouncementMiddleware(api.svc))
	adg.GET("", api.retrieveAnnouncement)
	adg.PUT("", api.updateAnnouncement)
	adg.DELETE("", api.destroyAnnouncement)

	shg := g.Group("/shows", sess)
	shg.POST("", api.createShow, adminMiddleware())
	shg.GET("", api.queryShows)

	sdg := shg.Group("/:id", ctxShowMiddleware(api.svc))
	sdg.GET("", api.retrieveShow)
	sdg.PUT("", api.updateShow, adminMiddleware())
	sdg.DELETE("", api.destroyShow, adminMiddleware())
}

func ctxAnnouncementMiddleware(svc *bulletin.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			a, err := svc.GetAnnouncementByID(ctx.Param("id"))
			if err != nil {
				if errors.Cause(err) == bulletin.ErrAnnouncementNotFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding announcement by ID")
			}
			ctx.Set("object", a)
			return next(ctx)
		}
	}
}

func ctxShowMiddleware(svc *bulletin.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			s, err := svc.GetShowByID(ctx.Param("id"))
			if err != nil {
				if errors.Cause(err) == bulletin.ErrShowNotFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding show by ID")
			}
			ctx.Set("object", s)
			return next(ctx)
		}
	}
}

// audienceFor maps the caller's role to the bulletin audience it reads.
// The admin reads everything.
func audienceFor(identity auth.Identity) string {
	switch identity.Role() {
	case auth.RoleStudent:
		return bulletin.AudienceStudents
	case auth.RoleTeacher:
		return bulletin.AudienceTeachers
	default:
		return ""
	}
}

// Handlers

func (api *bulletinApi) publish(ctx echo.Context) error {
	var data bulletin.NewAnnouncement
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAnnouncement")
	}
	if identity := contextIdentity(ctx); identity != nil && data.Author == "" {
		data.Author = identity.DisplayName()
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	a, err := api.svc.PublishAnnouncement(data)
	if err != nil {
		return errors.Wrap(err, "publishing announcement")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *bulletinApi) queryAnnouncements(ctx echo.Context) error {
	identity := contextIdentity(ctx)
	if identity == nil {
		return errSessionMissing
	}

	announcements, err := api.svc.QueryAnnouncements(audienceFor(identity))
	if err != nil {
		return errors.Wrap(err, "querying announcements")
	}
	if announcements == nil {
		announcements = []bulletin.Announcement{}
	}
	return ctx.JSON(http.StatusOK, announcements)
}

func (api *bulletinApi) retrieveAnnouncement(ctx echo.Context) error {
	a, ok := ctx.Get("object").(bulletin.Announcement)
	if !ok {
		return errors.Wrap(errAnnNotFoundInCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *bulletinApi) updateAnnouncement(ctx echo.Context) error {
	a, ok := ctx.Get("object").(bulletin.Announcement)
	if !ok {
		return errors.Wrap(errAnnNotFoundInCtx, "retrieving object from context")
	}

	var data bulletin.UpdateAnnouncement
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAnnouncement")
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	a, err := api.svc.UpdateAnnouncement(a, data)
	if err != nil {
		return errors.Wrap(err, "updating announcement")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *bulletinApi) destroyAnnouncement(ctx echo.Context) error {
	a, ok := ctx.Get("object").(bulletin.Announcement)
	if !ok {
		return errors.Wrap(errAnnNotFoundInCtx, "retrieving object from context")
	}
	if !confirmed(ctx) {
		return errConfirmRequired
	}

	if err := api.svc.DeleteAnnouncements(a.ID); err != nil {
		return errors.Wrap(err, "deleting announcement")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *bulletinApi) createShow(ctx echo.Context) error {
	var data bulletin.NewShow
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewShow")
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	s, err := api.svc.CreateShow(data)
	if err != nil {
		return errors.Wrap(err, "creating show")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *bulletinApi) queryShows(ctx echo.Context) error {
	shows, err := api.svc.QueryShows()
	if err != nil {
		return errors.Wrap(err, "querying shows")
	}
	if shows == nil {
		shows = []bulletin.Show{}
	}
	return ctx.JSON(http.StatusOK, shows)
}

func (api *bulletinApi) retrieveShow(ctx echo.Context) error {
	s, ok := ctx.Get("object").(bulletin.Show)
	if !ok {
		return errors.Wrap(errShowNotFoundInCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *bulletinApi) updateShow(ctx echo.Context) error {
	s, ok := ctx.Get("object").(bulletin.Show)
	if !ok {
		return errors.Wrap(errShowNotFoundInCtx, "retrieving object from context")
	}

	var data bulletin.UpdateShow
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateShow")
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	s, err := api.svc.UpdateShow(s, data)
	if err != nil {
		return errors.Wrap(err, "updating show")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *bulletinApi) destroyShow(ctx echo.Context) error {
	s, ok := ctx.Get("object").(bulletin.Show)
	if !ok {
		return errors.Wrap(errShowNotFoundInCtx, "retrieving object from context")
	}
	if !confirmed(ctx) {
		return errConfirmRequired
	}

	if err := api.svc.DeleteShows(s.ID); err != nil {
		return errors.Wrap(err, "deleting show")
	}
	return ctx.NoContent(http.StatusNoContent)
}
