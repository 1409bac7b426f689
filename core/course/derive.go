package course

import "time"

// SubmissionRow is a submission flattened for display, denormalized with its
// parent assignment's title, due date and max marks.
type SubmissionRow struct {
	Submission
	AssignmentID      string    `json:"assignment_id"`
	AssignmentTitle   string    `json:"assignment_title"`
	AssignmentDueDate time.Time `json:"assignment_due_date"`
	MaxMarks          int       `json:"max_marks"`
}

type SubmissionTables struct {
	Graded   []SubmissionRow `json:"graded"`
	Ungraded []SubmissionRow `json:"ungraded"`
}

// DeriveSubmissionTables flattens a snapshot's assignments into the graded
// and ungraded sequences. Classification is by grade presence on the source
// record only; each submission lands in exactly one sequence. Assignment
// order, then submission order within each assignment, is preserved with no
// re-sorting. The result is recomputed on every call, never cached.
func DeriveSubmissionTables(snap Snapshot) SubmissionTables {
	tables := SubmissionTables{
		Graded:   make([]SubmissionRow, 0),
		Ungraded: make([]SubmissionRow, 0),
	}
	for _, a := range snap.Assignments {
		for _, s := range a.GradedSubmissions {
			tables.add(a, s)
		}
		for _, s := range a.UngradedSubmissions {
			tables.add(a, s)
		}
	}
	return tables
}

func (t *SubmissionTables) add(a Assignment, s Submission) {
	row := SubmissionRow{
		Submission:        s,
		AssignmentID:      a.ID,
		AssignmentTitle:   a.Title,
		AssignmentDueDate: a.DueDate,
		MaxMarks:          a.Marks,
	}
	if s.Graded() {
		t.Graded = append(t.Graded, row)
	} else {
		t.Ungraded = append(t.Ungraded, row)
	}
}
