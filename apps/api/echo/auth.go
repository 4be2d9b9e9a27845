package echoapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/crpaedu/backstage/core/auth"
)

const sessionContextKey = "session"

// sessionMiddleware resolves the session handle carried in the
// Authorization header ("Session <handle>", bare handles accepted too)
// and stashes the session in the request context.
func sessionMiddleware(gate *auth.Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			handle := strings.TrimSpace(ctx.Request().Header.Get(echo.HeaderAuthorization))
			if strings.HasPrefix(strings.ToLower(handle), "session ") {
				handle = strings.TrimSpace(handle[len("session "):])
			}
			if handle == "" {
				return errSessionMissing
			}

			sess, err := gate.Get(handle)
			if err != nil {
				return errors.Wrap(err, "resolving session handle")
			}
			ctx.Set(sessionContextKey, sess)
			return next(ctx)
		}
	}
}

// roleMiddleware rejects identities whose role is not in the allowed set.
func roleMiddleware(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			identity := contextIdentity(ctx)
			if identity == nil {
				return errSessionMissing
			}
			for _, role := range roles {
				if identity.Role() == role {
					return next(ctx)
				}
			}
			return errHttpForbidden
		}
	}
}

func adminMiddleware() echo.MiddlewareFunc {
	return roleMiddleware(auth.RoleAdmin)
}

func staffMiddleware() echo.MiddlewareFunc {
	return roleMiddleware(auth.RoleAdmin, auth.RoleTeacher)
}

func contextSession(ctx echo.Context) (auth.Session, bool) {
	sess, ok := ctx.Get(sessionContextKey).(auth.Session)
	return sess, ok
}

func contextIdentity(ctx echo.Context) auth.Identity {
	if sess, ok := contextSession(ctx); ok {
		return sess.Identity
	}
	return nil
}

// confirmed reports whether the request carries the confirm=true query
// parameter. Destructive endpoints refuse to act without it.
func confirmed(ctx echo.Context) bool {
	return strings.EqualFold(ctx.QueryParam("confirm"), "true")
}

type authApi struct {
	gate *auth.Gate
}

func registerAuthAPI(g *echo.Group, sess echo.MiddlewareFunc, deps ServerDeps) {
	api := authApi{gate: deps.Gate}

	g.POST("/login", func(ctx echo.Context) error {
		var creds auth.Credentials
		if err := ctx.Bind(&creds); err != nil {
			return errors.Wrap(err, "binding to Credentials")
		}
		if err := creds.Validate(deps.Validate, deps.Translator); err != nil {
			return err
		}

		session, err := api.gate.Login(creds)
		if err != nil {
			return errors.Wrap(err, "logging in")
		}
		return ctx.JSON(http.StatusOK, sessionResponse(session))
	})

	g.POST("/logout", func(ctx echo.Context) error {
		if session, ok := contextSession(ctx); ok {
			api.gate.Logout(session.Handle)
		}
		return ctx.NoContent(http.StatusNoContent)
	}, sess)

	g.GET("/session", func(ctx echo.Context) error {
		session, ok := contextSession(ctx)
		if !ok {
			return errSessionMissing
		}
		return ctx.JSON(http.StatusOK, sessionResponse(session))
	}, sess)
}

type SessionResponse struct {
	Handle      string      `json:"handle"`
	Role        string      `json:"role"`
	ID          string      `json:"id"`
	DisplayName string      `json:"display_name"`
	Identity    interface{} `json:"identity"`
}

func sessionResponse(sess auth.Session) SessionResponse {
	return SessionResponse{
		Handle:      sess.Handle,
		Role:        sess.Identity.Role(),
		ID:          sess.Identity.ID(),
		DisplayName: sess.Identity.DisplayName(),
		Identity:    sess.Identity,
	}
}
