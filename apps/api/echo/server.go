// Package echoapi presents the portal over HTTP. It is a thin adapter:
// every rule about rosters, grades, transcripts and access lives in the
// core packages; handlers only bind, validate, authorize and render.
package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/crpaedu/backstage/core"
	"github.com/crpaedu/backstage/core/auth"
	"github.com/crpaedu/backstage/core/bulletin"
	"github.com/crpaedu/backstage/core/course"
	"github.com/crpaedu/backstage/core/grade"
	"github.com/crpaedu/backstage/core/payment"
	"github.com/crpaedu/backstage/core/student"
	"github.com/crpaedu/backstage/core/teacher"
	photosvc "github.com/crpaedu/backstage/services/photo"
	reportsvc "github.com/crpaedu/backstage/services/report"
)

type (
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		Gate          *auth.Gate
		StudentSvc    *student.Service
		TeacherSvc    *teacher.Service
		CourseSvc     *course.Service
		Ledger        *grade.Ledger
		TranscriptSvc *grade.TranscriptService
		PaymentSvc    *payment.Service
		BulletinSvc   *bulletin.Service
		ReportSvc     *reportsvc.Service
		PhotoEditor   photosvc.Editor // nil when the feature is disabled
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps       ServerDeps
		app        *echo.Echo
		errCh      chan error
		shutdownCh chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:       deps,
		app:        echo.New(),
		errCh:      make(chan error, 1),
		shutdownCh: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdownCh, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	sess := sessionMiddleware(s.deps.Gate)

	registerAuthAPI(v1, sess, s.deps)
	registerProfileAPI(v1, sess, s.deps)
	registerStudentAPI(v1, sess, s.deps)
	registerTeacherAPI(v1, sess, s.deps)
	registerCourseAPI(v1, sess, s.deps)
	registerGradeAPI(v1, sess, s.deps)
	registerPaymentAPI(v1, sess, s.deps)
	registerBulletinAPI(v1, sess, s.deps)
	registerPhotoAPI(v1, sess, s.deps)
	registerDashboardAPI(v1, sess, s.deps)
}

func (s *server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Addr); err != nil && err != http.ErrServerClosed {
		s.errCh <- err
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errCh
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdownCh
}

func (s *server) signalShutdown() {
	s.shutdownCh <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the Backstage API!")
}
