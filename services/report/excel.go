// Package reportsvc renders office exports of the academic records.
package reportsvc

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/crpaedu/backstage/core/course"
	"github.com/crpaedu/backstage/core/grade"
	"github.com/crpaedu/backstage/core/student"
)

const gradebookSheet = "Gradebook"

type Service struct {
	courses  course.Repository
	students student.Repository
	ledger   *grade.Ledger
}

func NewService(courses course.Repository, students student.Repository, ledger *grade.Ledger) *Service {
	return &Service{courses: courses, students: students, ledger: ledger}
}

// CourseGradebook builds an .xlsx workbook of the course roster with each
// student's recorded grade. Roster ids that no longer resolve to a student
// are skipped; ungraded students show an empty grade cell.
func (svc *Service) CourseGradebook(courseID string) (*excelize.File, error) {
	crs, err := svc.courses.GetCourseByID(courseID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet, err := f.NewSheet(gradebookSheet)
	if err != nil {
		return nil, errors.Wrap(err, "creating sheet")
	}
	f.SetActiveSheet(sheet)
	if err = f.DeleteSheet("Sheet1"); err != nil {
		return nil, errors.Wrap(err, "dropping default sheet")
	}

	headers := []struct {
		cell string
		val  interface{}
	}{
		{"A1", fmt.Sprintf("%s - %s", crs.Code, crs.Name)},
		{"A2", "Student ID"}, {"B2", "Name"}, {"C2", "Email"}, {"D2", "Grade"}, {"E2", "Points"},
	}
	for _, h := range headers {
		if err = f.SetCellValue(gradebookSheet, h.cell, h.val); err != nil {
			return nil, errors.Wrap(err, "writing header")
		}
	}

	row := 3
	for _, sid := range crs.StudentIDs {
		std, err := svc.students.GetStudentByID(sid)
		if err != nil {
			continue // deleted student still on the roster
		}

		var val string
		if entry, err := svc.ledger.Get(crs.ID, sid); err == nil {
			val = entry.Value
		}

		cells := []interface{}{std.ID, std.FullName(), std.Email, val, grade.Points(val)}
		for i, cell := range cells {
			axis, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return nil, errors.Wrap(err, "computing cell name")
			}
			if err = f.SetCellValue(gradebookSheet, axis, cell); err != nil {
				return nil, errors.Wrap(err, "writing row")
			}
		}
		row++
	}

	return f, nil
}
