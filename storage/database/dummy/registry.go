package dummydb

import (
	"context"

	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/participant"
)

type registry struct {
	participants *participantTable
	courses      *courseTable
}

var _ course.Registry = (*registry)(nil) // interface compliance check

func NewRegistry(db *DB) course.Registry {
	return &registry{participants: db.participants, courses: db.courses}
}

func (reg *registry) AddMember(ctx context.Context, courseID, role, participantID string) error {
	reg.courses.Lock()
	defer reg.courses.Unlock()

	rec, ok := reg.courses.table[courseID]
	if !ok {
		return course.ErrNotFound
	}
	for _, id := range rec.members[role] {
		if id == participantID {
			return course.ErrAlreadyPresent
		}
	}
	if rec.members == nil {
		rec.members = make(map[string][]string)
	}
	rec.members[role] = append(rec.members[role], participantID)
	return nil
}

func (reg *registry) FetchSnapshot(ctx context.Context, courseID, viewerRole string) (course.Snapshot, error) {
	reg.courses.RLock()
	defer reg.courses.RUnlock()

	rec, ok := reg.courses.table[courseID]
	if !ok {
		return course.Snapshot{}, course.ErrNotFound
	}

	snap := rec.snap
	snap.Students = reg.resolveMembers(rec.members[participant.RoleStudent])
	snap.TAs = reg.resolveMembers(rec.members[participant.RoleTA])
	return snap, nil
}

func (reg *registry) resolveMembers(ids []string) []participant.Participant {
	reg.participants.RLock()
	defer reg.participants.RUnlock()

	members := make([]participant.Participant, 0, len(ids))
	for _, id := range ids {
		if rec, ok := reg.participants.table[id]; ok {
			members = append(members, rec.Participant)
		} else {
			members = append(members, participant.Participant{ID: id})
		}
	}
	return members
}
