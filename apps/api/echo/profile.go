package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/crpaedu/backstage/core/auth"
	"github.com/crpaedu/backstage/core/student"
	"github.com/crpaedu/backstage/core/teacher"
)

// registerProfileAPI exposes self-service profile editing. The refreshed
// identity is swapped into the live session so subsequent requests see it.
func registerProfileAPI(g *echo.Group, sess echo.MiddlewareFunc, deps ServerDeps) {
	g.GET("/profile", func(ctx echo.Context) error {
		identity := contextIdentity(ctx)
		if identity == nil {
			return errSessionMissing
		}
		return ctx.JSON(http.StatusOK, identity)
	}, sess)

	g.PUT("/profile", func(ctx echo.Context) error {
		session, ok := contextSession(ctx)
		if !ok {
			return errSessionMissing
		}

		switch identity := session.Identity.(type) {
		case auth.StudentIdentity:
			var data student.UpdateProfile
			if err := ctx.Bind(&data); err != nil {
				return errors.Wrap(err, "binding to UpdateProfile")
			}
			if err := data.Validate(deps.Validate, deps.Translator, identity.Student, deps.StudentSvc); err != nil {
				return err
			}
			std, err := deps.StudentSvc.UpdateProfile(identity.Student, data)
			if err != nil {
				return errors.Wrap(err, "updating student profile")
			}
			deps.Gate.Refresh(session.Handle, auth.StudentIdentity{Student: std})
			return ctx.JSON(http.StatusOK, std)

		case auth.TeacherIdentity:
			var data teacher.UpdateTeacher
			if err := ctx.Bind(&data); err != nil {
				return errors.Wrap(err, "binding to UpdateTeacher")
			}
			// teachers cannot move themselves on or off leave
			data.Status = ""
			if err := data.Validate(deps.Validate, deps.Translator, identity.Teacher, deps.TeacherSvc); err != nil {
				return err
			}
			tch, err := deps.TeacherSvc.Update(identity.Teacher, data)
			if err != nil {
				return errors.Wrap(err, "updating teacher profile")
			}
			deps.Gate.Refresh(session.Handle, auth.TeacherIdentity{Teacher: tch})
			return ctx.JSON(http.StatusOK, tch)

		default:
			return errHttpForbidden
		}
	}, sess)
}
