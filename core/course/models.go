package course

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/participant"
)

var (
	// errors
	ErrNotFound       = errors.New("course not found")
	ErrAlreadyPresent = errors.New("participant already in course")
)

// Submission is a student's hand-in for an assignment. A submission is
// graded iff it carries a grade; Grade, Marks, GradedBy and CheckedDate are
// absent until then.
type Submission struct {
	ID            string                  `json:"id"`
	Student       participant.Participant `json:"student"`
	Grade         null.String             `json:"grade,omitempty"`
	Marks         null.Int                `json:"marks,omitempty"`
	GradedBy      null.String             `json:"graded_by,omitempty"`
	SubmittedDate time.Time               `json:"submitted_date"`
	CheckedDate   null.Time               `json:"checked_date,omitempty"`
}

// Graded reports whether the submission carries a grade. This is the sole
// classification criterion; it is derived, never stored.
func (s Submission) Graded() bool {
	return s.Grade.Valid
}

type Assignment struct {
	ID                  string       `json:"id"`
	Title               string       `json:"title"`
	Description         string       `json:"description"`
	URL                 string       `json:"url"`
	DueDate             time.Time    `json:"due_date"`
	Marks               int          `json:"marks"`
	FacultyID           string       `json:"faculty_id"`
	GradedSubmissions   []Submission `json:"graded_submissions"`
	UngradedSubmissions []Submission `json:"ungraded_submissions"`
}

// Snapshot is a point-in-time read-only projection of a course, fetched per
// view. The core treats it purely as input.
type Snapshot struct {
	ID          string                    `json:"id"`
	Name        string                    `json:"name"`
	FacultyID   string                    `json:"faculty_id"`
	Students    []participant.Participant `json:"students"`
	TAs         []participant.Participant `json:"tas"`
	Assignments []Assignment              `json:"assignments"`
}

// Registry is the remote course-registry collaborator. It is the single
// source of truth for the course→participant half of the enrollment edge;
// duplicate membership is signalled by the registry, never pre-checked here.
type Registry interface {
	// AddMember adds the participant to the course's member list for the
	// given role. Adding an already-present member returns ErrAlreadyPresent.
	AddMember(ctx context.Context, courseID, role, participantID string) error
	// FetchSnapshot returns the course projection for the viewer's role.
	FetchSnapshot(ctx context.Context, courseID, viewerRole string) (Snapshot, error)
}
