package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/participant"
)

type registryRepository struct {
	db *sqlx.DB
}

var _ course.Registry = (*registryRepository)(nil) // interface compliance check

func NewRegistry(db *sqlx.DB) course.Registry {
	return &registryRepository{db: db}
}

func (repo registryRepository) AddMember(ctx context.Context, courseID, role, participantID string) error {
	if err := repo.courseExists(ctx, courseID); err != nil {
		return err
	}

	res, err := repo.db.ExecContext(ctx,
		`INSERT INTO course_member (course_id, participant_id, role)
		 VALUES ($1, $2, $3)
		 ON CONFLICT DO NOTHING`,
		courseID, participantID, role)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqForeignKeyViolation {
			return participant.ErrNotFound
		}
		return errors.Wrap(err, "attaching participant to course")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "attaching participant to course")
	}
	if n == 0 {
		return course.ErrAlreadyPresent
	}
	return nil
}

func (repo registryRepository) FetchSnapshot(ctx context.Context, courseID, viewerRole string) (course.Snapshot, error) {
	var snap course.Snapshot

	if _, err := uuid.Parse(courseID); err != nil {
		return snap, course.ErrNotFound
	}

	var row struct {
		ID        string `db:"id"`
		Name      string `db:"name"`
		FacultyID string `db:"faculty_id"`
	}
	err := repo.db.GetContext(ctx, &row,
		`SELECT id, name, faculty_id FROM course WHERE id = $1`, courseID)
	if err != nil {
		if err == sql.ErrNoRows {
			return snap, course.ErrNotFound
		}
		return snap, errors.Wrap(err, "finding course")
	}
	snap.ID = row.ID
	snap.Name = row.Name
	snap.FacultyID = row.FacultyID

	if snap.Students, err = repo.members(ctx, courseID, participant.RoleStudent); err != nil {
		return snap, err
	}
	if snap.TAs, err = repo.members(ctx, courseID, participant.RoleTA); err != nil {
		return snap, err
	}
	if snap.Assignments, err = repo.assignments(ctx, courseID, row.FacultyID); err != nil {
		return snap, err
	}
	return snap, nil
}

func (repo registryRepository) courseExists(ctx context.Context, courseID string) error {
	if _, err := uuid.Parse(courseID); err != nil {
		return course.ErrNotFound
	}
	var id string
	err := repo.db.GetContext(ctx, &id, `SELECT id FROM course WHERE id = $1`, courseID)
	if err != nil {
		if err == sql.ErrNoRows {
			return course.ErrNotFound
		}
		return errors.Wrap(err, "finding course")
	}
	return nil
}

func (repo registryRepository) members(ctx context.Context, courseID, role string) ([]participant.Participant, error) {
	var rows []participantRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT p.id, p.name, p.email, p.password_hash
		 FROM participant p
		 JOIN course_member m ON m.participant_id = p.id AND m.role = p.role
		 WHERE m.course_id = $1 AND m.role = $2
		 ORDER BY m.position`,
		courseID, role)
	if err != nil {
		return nil, errors.Wrap(err, "listing course members")
	}

	members := make([]participant.Participant, 0, len(rows))
	for _, row := range rows {
		members = append(members, row.participant())
	}
	return members, nil
}

type submissionRow struct {
	ID            string      `db:"id"`
	Grade         null.String `db:"grade"`
	Marks         null.Int    `db:"marks"`
	GradedBy      null.String `db:"graded_by"`
	SubmittedDate time.Time   `db:"submitted_date"`
	CheckedDate   null.Time   `db:"checked_date"`
	StudentID     string      `db:"student_id"`
	StudentName   string      `db:"student_name"`
	StudentEmail  string      `db:"student_email"`
}

func (r submissionRow) submission() course.Submission {
	return course.Submission{
		ID:            r.ID,
		Student:       participant.Participant{ID: r.StudentID, Name: r.StudentName, Email: r.StudentEmail},
		Grade:         r.Grade,
		Marks:         r.Marks,
		GradedBy:      r.GradedBy,
		SubmittedDate: r.SubmittedDate,
		CheckedDate:   r.CheckedDate,
	}
}

func (repo registryRepository) assignments(ctx context.Context, courseID, facultyID string) ([]course.Assignment, error) {
	var rows []struct {
		ID          string    `db:"id"`
		Title       string    `db:"title"`
		Description string    `db:"description"`
		URL         string    `db:"url"`
		DueDate     time.Time `db:"due_date"`
		Marks       int       `db:"marks"`
	}
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT id, title, description, url, due_date, marks
		 FROM assignment
		 WHERE course_id = $1
		 ORDER BY position`,
		courseID)
	if err != nil {
		return nil, errors.Wrap(err, "listing assignments")
	}

	assignments := make([]course.Assignment, 0, len(rows))
	for _, row := range rows {
		a := course.Assignment{
			ID:                  row.ID,
			Title:               row.Title,
			Description:         row.Description,
			URL:                 row.URL,
			DueDate:             row.DueDate,
			Marks:               row.Marks,
			FacultyID:           facultyID,
			GradedSubmissions:   []course.Submission{},
			UngradedSubmissions: []course.Submission{},
		}

		var subs []submissionRow
		err = repo.db.SelectContext(ctx, &subs,
			`SELECT s.id, s.grade, s.marks, s.graded_by, s.submitted_date, s.checked_date,
			        p.id AS student_id, p.name AS student_name, p.email AS student_email
			 FROM submission s
			 JOIN participant p ON p.id = s.student_id
			 WHERE s.assignment_id = $1
			 ORDER BY s.position`,
			a.ID)
		if err != nil {
			return nil, errors.Wrap(err, "listing submissions")
		}
		for _, sr := range subs {
			sub := sr.submission()
			if sub.Graded() {
				a.GradedSubmissions = append(a.GradedSubmissions, sub)
			} else {
				a.UngradedSubmissions = append(a.UngradedSubmissions, sub)
			}
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}
