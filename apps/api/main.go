package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/crpaedu/backstage/apps/api/echo"
	"github.com/crpaedu/backstage/core"
	"github.com/crpaedu/backstage/core/auth"
	"github.com/crpaedu/backstage/core/bulletin"
	"github.com/crpaedu/backstage/core/course"
	"github.com/crpaedu/backstage/core/grade"
	"github.com/crpaedu/backstage/core/payment"
	"github.com/crpaedu/backstage/core/student"
	"github.com/crpaedu/backstage/core/teacher"
	emailsvc "github.com/crpaedu/backstage/services/email"
	logsvc "github.com/crpaedu/backstage/services/logger"
	photosvc "github.com/crpaedu/backstage/services/photo"
	reportsvc "github.com/crpaedu/backstage/services/report"
	inmemdb "github.com/crpaedu/backstage/storage/database/inmem"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up logger
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up storage; everything lives in process memory and is rebuilt
	// from the seed on every start
	db := inmemdb.Open()
	if err := inmemdb.Seed(db); err != nil {
		logger.Fatal(fmt.Sprintf("seeding database: %v", err), err)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	stdRepo := inmemdb.NewStudentRepository(db)
	tchRepo := inmemdb.NewTeacherRepository(db)
	crsRepo := inmemdb.NewCourseRepository(db)

	stdSvc := student.NewService(stdRepo)
	tchSvc := teacher.NewService(tchRepo)
	crsSvc := course.NewService(crsRepo, conf)
	ledger := grade.NewLedger(inmemdb.NewGradeRepository(db))
	trSvc := grade.NewTranscriptService(ledger, crsRepo, stdRepo, mailSvc, conf)
	pmtSvc := payment.NewService(inmemdb.NewPaymentRepository(db), stdRepo)
	blnSvc := bulletin.NewService(inmemdb.NewBulletinRepository(db))
	rptSvc := reportsvc.NewService(crsRepo, stdRepo, ledger)
	gate := auth.NewGate(stdRepo, tchRepo, conf)

	var editor photosvc.Editor
	if conf.GeminiAPIKey != "" {
		var err error
		if editor, err = photosvc.NewGeminiEditor(context.Background(), conf); err != nil {
			logger.Fatal(fmt.Sprintf("setting up image editor: %v", err), err)
		}
	}

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugAddr, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:          conf,
			Logger:        logger,
			Validate:      validate,
			Translator:    translator,
			Gate:          gate,
			StudentSvc:    stdSvc,
			TeacherSvc:    tchSvc,
			CourseSvc:     crsSvc,
			Ledger:        ledger,
			TranscriptSvc: trSvc,
			PaymentSvc:    pmtSvc,
			BulletinSvc:   blnSvc,
			ReportSvc:     rptSvc,
			PhotoEditor:   editor,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
