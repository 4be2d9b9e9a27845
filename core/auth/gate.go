package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
	"sync"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/crpaedu/backstage/core"
	"github.com/crpaedu/backstage/core/student"
	"github.com/crpaedu/backstage/core/teacher"
)

var (
	// role-specific rejections; a failed login never partially authenticates
	ErrAdminRejected   = errors.New("invalid administrator credentials")
	ErrTeacherRejected = errors.New("invalid teacher credentials; use your directory email")
	ErrStudentRejected = errors.New("invalid student credentials; use your directory email")
	ErrUnknownRole     = errors.New("select a valid role")

	ErrNoSession = errors.New("not authenticated")
)

type (
	// Credentials is a submitted (role, identifier, secret) triple.
	Credentials struct {
		Role       string `json:"role" validate:"required"`
		Identifier string `json:"user" validate:"required"`
		Secret     string `json:"pass" validate:"required"`
	}

	// Session is an authenticated identity. Sessions live in process memory
	// only: no token, no expiry, all gone on restart.
	Session struct {
		Handle   string    `json:"handle"`
		Identity Identity  `json:"identity"`
		LoginAt  time.Time `json:"login_at"` // UTC
	}

	// Gate is the portal's access control: Anonymous until a credential
	// triple passes its role-specific check, Anonymous again on logout.
	Gate struct {
		students student.Repository
		teachers teacher.Repository
		conf     *core.Config

		mu       sync.RWMutex
		sessions map[string]Session
	}
)

func (c *Credentials) Validate(validate *validator.Validate, translator ut.Translator) error {
	c.Role = core.CleanString(c.Role)
	c.Identifier = core.CleanString(c.Identifier)
	return validate.Struct(c)
}

func NewGate(students student.Repository, teachers teacher.Repository, conf *core.Config) *Gate {
	return &Gate{
		students: students,
		teachers: teachers,
		conf:     conf,
		sessions: make(map[string]Session),
	}
}

// Login checks the triple against its role's rule and, on success, opens a
// session. On failure the gate state is untouched and a role-specific
// rejection is returned as a ValidationError.
func (g *Gate) Login(creds Credentials) (Session, error) {
	var identity Identity

	switch strings.ToUpper(core.CleanString(creds.Role)) {
	case RoleAdmin:
		if !equals(creds.Identifier, g.conf.Auth.AdminUsername) || !equals(creds.Secret, g.conf.Auth.AdminPassword) {
			return Session{}, core.NewValidationError(ErrAdminRejected)
		}
		identity = AdminIdentity{Name: "Administrator"}

	case RoleTeacher:
		tch, err := g.teachers.GetTeacherByEmail(core.CleanString(creds.Identifier, true /* lower */))
		if err != nil || !equals(creds.Secret, g.conf.Auth.TeacherSharedPassword) {
			return Session{}, core.NewValidationError(ErrTeacherRejected)
		}
		identity = TeacherIdentity{Teacher: tch}

	case RoleStudent:
		std, err := g.students.GetStudentByEmail(core.CleanString(creds.Identifier, true /* lower */))
		if err != nil || std.CheckPassword(creds.Secret) != nil {
			return Session{}, core.NewValidationError(ErrStudentRejected)
		}
		identity = StudentIdentity{Student: std}

	default:
		return Session{}, core.NewValidationError(ErrUnknownRole)
	}

	sess := Session{
		Handle:   uuid.NewString(),
		Identity: identity,
		LoginAt:  time.Now().UTC(),
	}
	g.mu.Lock()
	g.sessions[sess.Handle] = sess
	g.mu.Unlock()
	return sess, nil
}

// Get resolves a session handle; ErrNoSession when absent.
func (g *Gate) Get(handle string) (Session, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if sess, ok := g.sessions[handle]; ok {
		return sess, nil
	}
	return Session{}, ErrNoSession
}

// Refresh swaps the identity carried by an existing session, e.g. after a
// profile update. Unknown handles are ignored.
func (g *Gate) Refresh(handle string, identity Identity) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if sess, ok := g.sessions[handle]; ok {
		sess.Identity = identity
		g.sessions[handle] = sess
	}
}

// Logout returns the session to Anonymous. Logging out an unknown handle
// is a no-op.
func (g *Gate) Logout(handle string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.sessions, handle)
}

func equals(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
