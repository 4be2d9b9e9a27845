package core

import (
	"log"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env      string
		Debug    bool
		TestMode bool
		AppName  string
		Build    string

		DefaultFromEmail string
		SendgridAPIKey   string
		GeminiAPIKey     string
		RollbarToken     string

		Server  ServerConfig
		Auth    AuthConfig
		Academy AcademyConfig
	}

	ServerConfig struct {
		Host            string
		Addr            string
		DebugAddr       string
		ShutdownTimeout time.Duration
	}

	// AuthConfig holds the portal credentials. The admin pair and the shared
	// teacher password are demo placeholders carried over from the seeded
	// deployment; students authenticate against their own stored password.
	AuthConfig struct {
		AdminUsername         string
		AdminPassword         string
		TeacherSharedPassword string
	}

	AcademyConfig struct {
		// EnforceCourseCapacity rejects enrollments into a full course.
		// Off by default: the academy overbooks and lets the office sort it out.
		EnforceCourseCapacity bool
	}
)

// NewConfig loads the app configuration from the environment,
// with a .env file (if any) loaded first.
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("env", "DEV") // DEV (local; default), TEST, QA, PROD
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Backstage")
	v.SetDefault("build", "dev")
	v.SetDefault("defaultFromEmail", "noreply@crpa.edu")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("geminiApiKey", "")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("serverDebugAddr", ":8001")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("adminUsername", "admin")
	v.SetDefault("adminPassword", "password")
	v.SetDefault("teacherSharedPassword", "password")
	v.SetDefault("enforceCourseCapacity", false)

	// load .env if it exists (ignore if it does not)
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Fatalf("config.godotenv: %v", err)
		}
	}
	v.AutomaticEnv()

	env := strings.ToUpper(v.GetString("env"))
	return &Config{
		Env:              env,
		Debug:            v.GetBool("debug"),
		TestMode:         env == "TEST" || v.GetBool("testMode"),
		AppName:          v.GetString("appName"),
		Build:            v.GetString("build"),
		DefaultFromEmail: v.GetString("defaultFromEmail"),
		SendgridAPIKey:   v.GetString("sendgridApiKey"),
		GeminiAPIKey:     v.GetString("geminiApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:            v.GetString("serverHost"),
			Addr:            v.GetString("serverAddr"),
			DebugAddr:       v.GetString("serverDebugAddr"),
			ShutdownTimeout: v.GetDuration("serverShutdownTimeout"),
		},
		Auth: AuthConfig{
			AdminUsername:         v.GetString("adminUsername"),
			AdminPassword:         v.GetString("adminPassword"),
			TeacherSharedPassword: v.GetString("teacherSharedPassword"),
		},
		Academy: AcademyConfig{
			EnforceCourseCapacity: v.GetBool("enforceCourseCapacity"),
		},
	}
}

// FromEmail returns the default sender address.
func (c *Config) FromEmail() mail.Address {
	return mail.Address{Name: c.AppName, Address: c.DefaultFromEmail}
}
