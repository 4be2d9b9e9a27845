// Package inmemdb is the portal's only storage backend: plain map tables in
// process memory. Nothing is persisted; every restart begins from the seed
// fixtures. Tables are guarded by RWMutexes so the API surface can read
// concurrently, but the data model assumes a single logical writer.
package inmemdb

import (
	"sync"

	"github.com/crpaedu/backstage/core/bulletin"
	"github.com/crpaedu/backstage/core/course"
	"github.com/crpaedu/backstage/core/grade"
	"github.com/crpaedu/backstage/core/payment"
	"github.com/crpaedu/backstage/core/student"
	"github.com/crpaedu/backstage/core/teacher"
)

type (
	DB struct {
		students      *studentTable
		teachers      *teacherTable
		courses       *courseTable
		grades        *gradeTable
		payments      *paymentTable
		announcements *announcementTable
		shows         *showTable
	}

	studentTable struct {
		table map[string]*student.Student
		mutex sync.RWMutex
	}
	teacherTable struct {
		table map[string]*teacher.Teacher
		mutex sync.RWMutex
	}
	courseTable struct {
		table map[string]*course.Course
		mutex sync.RWMutex
	}
	gradeTable struct {
		table map[grade.Key]*grade.Entry
		mutex sync.RWMutex
	}
	paymentTable struct {
		table map[string]*payment.Payment
		mutex sync.RWMutex
	}
	announcementTable struct {
		table map[string]*bulletin.Announcement
		mutex sync.RWMutex
	}
	showTable struct {
		table map[string]*bulletin.Show
		mutex sync.RWMutex
	}
)

func Open() *DB {
	return &DB{
		students:      &studentTable{table: make(map[string]*student.Student)},
		teachers:      &teacherTable{table: make(map[string]*teacher.Teacher)},
		courses:       &courseTable{table: make(map[string]*course.Course)},
		grades:        &gradeTable{table: make(map[grade.Key]*grade.Entry)},
		payments:      &paymentTable{table: make(map[string]*payment.Payment)},
		announcements: &announcementTable{table: make(map[string]*bulletin.Announcement)},
		shows:         &showTable{table: make(map[string]*bulletin.Show)},
	}
}
