package dummydb

import (
	"context"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core/participant"
)

type directory struct {
	db *participantTable
}

var _ participant.Directory = (*directory)(nil) // interface compliance check

func NewDirectory(db *DB) participant.Directory {
	return &directory{db: db.participants}
}

func (dir *directory) ResolveID(ctx context.Context, email, role string) (string, error) {
	dir.db.RLock()
	defer dir.db.RUnlock()

	for _, rec := range dir.db.table {
		if rec.Email == email && rec.role == role {
			return rec.ID, nil
		}
	}
	return "", participant.ErrNotFound
}

func (dir *directory) AddCourse(ctx context.Context, participantID, role, courseID string) error {
	dir.db.Lock()
	defer dir.db.Unlock()

	rec, ok := dir.db.table[participantID]
	if !ok || rec.role != role {
		return participant.ErrNotFound
	}
	for _, id := range rec.courses {
		if id == courseID {
			return participant.ErrAlreadyPresent
		}
	}
	rec.courses = append(rec.courses, courseID)
	return nil
}

func (dir *directory) Authenticate(ctx context.Context, email, password, role string) (participant.Participant, error) {
	dir.db.RLock()
	defer dir.db.RUnlock()

	for _, rec := range dir.db.table {
		if rec.Email == email && rec.role == role {
			if err := rec.CheckPassword(password); err != nil {
				return participant.Participant{}, participant.ErrNotFound
			}
			return rec.Participant, nil
		}
	}
	return participant.Participant{}, participant.ErrNotFound
}

func (dir *directory) Register(ctx context.Context, np participant.NewParticipant) (participant.Participant, error) {
	dir.db.Lock()
	defer dir.db.Unlock()

	for _, rec := range dir.db.table {
		if rec.Email == np.Email && rec.role == np.Role {
			return participant.Participant{}, participant.ErrEmailExists
		}
	}

	p := participant.Participant{
		ID:    uuid.New().String(),
		Name:  np.Name,
		Email: np.Email,
	}
	if err := p.SetPassword(np.Password); err != nil {
		return participant.Participant{}, err
	}
	dir.db.table[p.ID] = &participantRecord{Participant: p, role: np.Role}
	return p, nil
}

func (dir *directory) GetByID(ctx context.Context, id, role string) (participant.Participant, error) {
	dir.db.RLock()
	defer dir.db.RUnlock()

	if rec, ok := dir.db.table[id]; ok && rec.role == role {
		return rec.Participant, nil
	}
	return participant.Participant{}, participant.ErrNotFound
}
