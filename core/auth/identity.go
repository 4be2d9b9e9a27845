package auth

import (
	"github.com/crpaedu/backstage/core/student"
	"github.com/crpaedu/backstage/core/teacher"
)

// Roles
const (
	RoleAdmin   = "ADMIN"
	RoleTeacher = "TEACHER"
	RoleStudent = "STUDENT"
)

// Identity is a tagged union over the three portal roles, so role-specific
// fields are statically distinguished instead of probed on a loose map.
type Identity interface {
	Role() string
	ID() string
	DisplayName() string
}

type AdminIdentity struct {
	Name string `json:"name"`
}

func (AdminIdentity) Role() string          { return RoleAdmin }
func (AdminIdentity) ID() string            { return "admin" }
func (i AdminIdentity) DisplayName() string { return i.Name }

type TeacherIdentity struct {
	Teacher teacher.Teacher `json:"teacher"`
}

func (TeacherIdentity) Role() string          { return RoleTeacher }
func (i TeacherIdentity) ID() string          { return i.Teacher.ID }
func (i TeacherIdentity) DisplayName() string { return i.Teacher.Name }

type StudentIdentity struct {
	Student student.Student `json:"student"`
}

func (StudentIdentity) Role() string          { return RoleStudent }
func (i StudentIdentity) ID() string          { return i.Student.ID }
func (i StudentIdentity) DisplayName() string { return i.Student.FullName() }
