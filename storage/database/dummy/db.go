package dummydb

import (
	"sync"

	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/participant"
)

type (
	participantRecord struct {
		participant.Participant
		role    string
		courses []string // course ids, insertion order
	}

	courseRecord struct {
		snap course.Snapshot
		// member lists per role; the snapshot's Students/TAs are
		// materialized from these on fetch
		members map[string][]string
	}

	participantTable struct {
		sync.RWMutex
		table map[string]*participantRecord
	}

	courseTable struct {
		sync.RWMutex
		table map[string]*courseRecord
	}

	DB struct {
		participants *participantTable
		courses      *courseTable
	}
)

func Open() (*DB, error) {
	return &DB{
		participants: &participantTable{table: make(map[string]*participantRecord)},
		courses:      &courseTable{table: make(map[string]*courseRecord)},
	}, nil
}

// SeedCourse installs a course projection for tests. Member lists start from
// the snapshot's Students/TAs.
func (db *DB) SeedCourse(snap course.Snapshot) {
	db.courses.Lock()
	defer db.courses.Unlock()

	members := map[string][]string{
		participant.RoleStudent: make([]string, 0, len(snap.Students)),
		participant.RoleTA:      make([]string, 0, len(snap.TAs)),
	}
	for _, p := range snap.Students {
		members[participant.RoleStudent] = append(members[participant.RoleStudent], p.ID)
	}
	for _, p := range snap.TAs {
		members[participant.RoleTA] = append(members[participant.RoleTA], p.ID)
	}
	db.courses.table[snap.ID] = &courseRecord{snap: snap, members: members}
}

// ParticipantCourses returns the participant's course list, for tests
// asserting the participant→course edge.
func (db *DB) ParticipantCourses(id string) []string {
	db.participants.RLock()
	defer db.participants.RUnlock()

	if rec, ok := db.participants.table[id]; ok {
		cp := make([]string, len(rec.courses))
		copy(cp, rec.courses)
		return cp
	}
	return nil
}

// CourseMembers returns the course's member ids for a role, for tests
// asserting the course→participant edge.
func (db *DB) CourseMembers(courseID, role string) []string {
	db.courses.RLock()
	defer db.courses.RUnlock()

	if rec, ok := db.courses.table[courseID]; ok {
		cp := make([]string, len(rec.members[role]))
		copy(cp, rec.members[role])
		return cp
	}
	return nil
}
