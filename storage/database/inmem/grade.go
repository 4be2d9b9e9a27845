package inmemdb

import (
	"github.com/crpaedu/backstage/core/grade"
)

type gradeRepository struct {
	db *gradeTable
}

var _ grade.Repository = (*gradeRepository)(nil)

func NewGradeRepository(db *DB) grade.Repository {
	return &gradeRepository{db: db.grades}
}

// UpsertEntry keys the table by the (course, student) pair, so a second
// write for the same pair replaces the first. The table can never hold
// two entries for one key.
func (repo *gradeRepository) UpsertEntry(e grade.Entry) (grade.Entry, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table[e.Key()] = &e
	return e, nil
}

func (repo *gradeRepository) GetEntry(key grade.Key) (grade.Entry, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if e, ok := repo.db.table[key]; ok {
		return *e, nil
	}
	return grade.Entry{}, grade.ErrNotFound
}

func (repo *gradeRepository) QueryAllEntries() ([]grade.Entry, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	entries := make([]grade.Entry, 0, len(repo.db.table))
	for _, e := range repo.db.table {
		entries = append(entries, *e)
	}
	return entries, nil
}

func (repo *gradeRepository) QueryEntriesByCourseID(courseID string) ([]grade.Entry, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	entries := make([]grade.Entry, 0)
	for _, e := range repo.db.table {
		if e.CourseID == courseID {
			entries = append(entries, *e)
		}
	}
	return entries, nil
}

func (repo *gradeRepository) QueryEntriesByStudentID(studentID string) ([]grade.Entry, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	entries := make([]grade.Entry, 0)
	for _, e := range repo.db.table {
		if e.StudentID == studentID {
			entries = append(entries, *e)
		}
	}
	return entries, nil
}

func (repo *gradeRepository) DeleteEntry(key grade.Key) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[key]; !ok {
		return grade.ErrNotFound
	}
	delete(repo.db.table, key)
	return nil
}
