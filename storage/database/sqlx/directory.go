package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/participant"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

type directoryRepository struct {
	db *sqlx.DB
}

var _ participant.Directory = (*directoryRepository)(nil) // interface compliance check

func NewDirectory(db *sqlx.DB) participant.Directory {
	return &directoryRepository{db: db}
}

type participantRow struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash []byte `db:"password_hash"`
}

func (r participantRow) participant() participant.Participant {
	return participant.Participant{ID: r.ID, Name: r.Name, Email: r.Email, PasswordHash: r.PasswordHash}
}

func (repo directoryRepository) ResolveID(ctx context.Context, email, role string) (string, error) {
	var id string
	err := repo.db.GetContext(ctx, &id,
		`SELECT id FROM participant WHERE email = $1 AND role = $2`, email, role)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", participant.ErrNotFound
		}
		return "", errors.Wrap(err, "resolving participant id")
	}
	return id, nil
}

func (repo directoryRepository) AddCourse(ctx context.Context, participantID, role, courseID string) error {
	res, err := repo.db.ExecContext(ctx,
		`INSERT INTO participant_course (participant_id, role, course_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT DO NOTHING`,
		participantID, role, courseID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqForeignKeyViolation {
			return participant.ErrNotFound
		}
		return errors.Wrap(err, "attaching course to participant")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "attaching course to participant")
	}
	if n == 0 {
		return participant.ErrAlreadyPresent
	}
	return nil
}

func (repo directoryRepository) Authenticate(ctx context.Context, email, password, role string) (participant.Participant, error) {
	var row participantRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT id, name, email, password_hash FROM participant WHERE email = $1 AND role = $2`, email, role)
	if err != nil {
		if err == sql.ErrNoRows {
			return participant.Participant{}, participant.ErrNotFound
		}
		return participant.Participant{}, errors.Wrap(err, "finding participant by email")
	}

	p := row.participant()
	if err = p.CheckPassword(password); err != nil {
		return participant.Participant{}, participant.ErrNotFound
	}
	return p, nil
}

func (repo directoryRepository) Register(ctx context.Context, np participant.NewParticipant) (participant.Participant, error) {
	p := participant.Participant{
		ID:    uuid.New().String(),
		Name:  np.Name,
		Email: np.Email,
	}
	if err := p.SetPassword(np.Password); err != nil {
		return participant.Participant{}, err
	}

	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO participant (id, name, email, role, password_hash)
		 VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.Name, p.Email, np.Role, p.PasswordHash)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqUniqueViolation {
			return participant.Participant{}, participant.ErrEmailExists
		}
		return participant.Participant{}, errors.Wrap(err, "inserting participant")
	}
	return p, nil
}

func (repo directoryRepository) GetByID(ctx context.Context, id, role string) (participant.Participant, error) {
	if _, err := uuid.Parse(id); err != nil {
		return participant.Participant{}, participant.ErrNotFound
	}

	var row participantRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT id, name, email, password_hash FROM participant WHERE id = $1 AND role = $2`, id, role)
	if err != nil {
		if err == sql.ErrNoRows {
			return participant.Participant{}, participant.ErrNotFound
		}
		return participant.Participant{}, errors.Wrap(err, "finding participant by id")
	}
	return row.participant(), nil
}
