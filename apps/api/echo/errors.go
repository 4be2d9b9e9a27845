package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/crpaedu/backstage/core"
	"github.com/crpaedu/backstage/core/auth"
	"github.com/crpaedu/backstage/core/bulletin"
	"github.com/crpaedu/backstage/core/course"
	"github.com/crpaedu/backstage/core/grade"
	"github.com/crpaedu/backstage/core/payment"
	"github.com/crpaedu/backstage/core/student"
	"github.com/crpaedu/backstage/core/teacher"
)

var (
	errHttpForbidden    = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHttpNotFound     = echo.NewHTTPError(http.StatusNotFound, "not found")
	errConfirmRequired  = echo.NewHTTPError(http.StatusBadRequest, "confirmation required: retry with confirm=true")
	errPhotoDisabled    = echo.NewHTTPError(http.StatusServiceUnavailable, "photo studio disabled")
	errPhotoUnavailable = echo.NewHTTPError(http.StatusBadGateway, "image service unavailable")
	errSessionMissing   = echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default:
			switch origErr {
			case student.ErrNotFound, teacher.ErrNotFound, course.ErrNotFound,
				grade.ErrNotFound, payment.ErrNotFound,
				bulletin.ErrAnnouncementNotFound, bulletin.ErrShowNotFound:
				code = http.StatusNotFound
				message = origErr.Error()
			case course.ErrCourseFull:
				code = http.StatusConflict
				message = origErr.Error()
			case auth.ErrAdminRejected, auth.ErrTeacherRejected,
				auth.ErrStudentRejected, auth.ErrUnknownRole, auth.ErrNoSession:
				code = http.StatusUnauthorized
				message = origErr.Error()
			default: // any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg
				logger.Error(msg, errors.Wrap(err, msg), contextIdentity(ctx))

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
