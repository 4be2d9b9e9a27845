package grade

import "errors"

var (
	// ErrNotFound marks an unset grade. Readers treat it as "no grade yet",
	// never as a failure.
	ErrNotFound = errors.New("grade not set")
)

type (
	Repository interface {
		// UpsertEntry inserts the entry, replacing any existing one with the
		// same (CourseID, StudentID) key.
		UpsertEntry(e Entry) (Entry, error)
		GetEntry(key Key) (Entry, error)
		QueryAllEntries() ([]Entry, error)
		QueryEntriesByCourseID(courseID string) ([]Entry, error)
		QueryEntriesByStudentID(studentID string) ([]Entry, error)
		DeleteEntry(key Key) error
	}

	// Ledger records grades, one per (course, student) pair.
	Ledger struct {
		repo Repository
	}
)

func NewLedger(repo Repository) *Ledger {
	return &Ledger{repo: repo}
}

// Set records a grade, overwriting the previous value for the same key.
// The prior value is destroyed; the ledger keeps no audit trail.
func (l *Ledger) Set(sg SetGrade) (Entry, error) {
	return l.repo.UpsertEntry(Entry{
		CourseID:  sg.CourseID,
		StudentID: sg.StudentID,
		Value:     sg.Value,
	})
}

// Get returns the current grade for the key, or ErrNotFound when unset.
func (l *Ledger) Get(courseID, studentID string) (Entry, error) {
	return l.repo.GetEntry(Key{CourseID: courseID, StudentID: studentID})
}

func (l *Ledger) QueryAll() ([]Entry, error) {
	return l.repo.QueryAllEntries()
}

func (l *Ledger) QueryByCourse(courseID string) ([]Entry, error) {
	return l.repo.QueryEntriesByCourseID(courseID)
}

func (l *Ledger) QueryByStudent(studentID string) ([]Entry, error) {
	return l.repo.QueryEntriesByStudentID(studentID)
}

// Delete removes a grade; deleting an unset grade is a no-op.
func (l *Ledger) Delete(courseID, studentID string) error {
	err := l.repo.DeleteEntry(Key{CourseID: courseID, StudentID: studentID})
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
