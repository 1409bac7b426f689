package course_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/participant"
	testutil "github.com/trezcool/darasa/tests"
)

var (
	amina = participant.Participant{ID: "s1", Name: "Amina", Email: "amina@test.cd"}
	beni  = participant.Participant{ID: "s2", Name: "Beni", Email: "beni@test.cd"}
	chris = participant.Participant{ID: "s3", Name: "Chris", Email: "chris@test.cd"}
)

func snapshotFixture(t *testing.T) course.Snapshot {
	due1 := time.Date(2021, 3, 12, 23, 59, 0, 0, time.UTC)
	due2 := due1.AddDate(0, 0, 14)
	return course.Snapshot{
		ID:        "c1",
		Name:      "Distributed Systems",
		FacultyID: "f1",
		Students:  []participant.Participant{amina, beni, chris},
		Assignments: []course.Assignment{
			{
				ID: "a1", Title: "Vector Clocks", DueDate: due1, Marks: 20, FacultyID: "f1",
				GradedSubmissions: []course.Submission{
					testutil.GradedSubmission("sub1", amina, "A", 18, "f1"),
					testutil.GradedSubmission("sub2", beni, "B", 14, "f1"),
				},
				UngradedSubmissions: []course.Submission{
					testutil.UngradedSubmission("sub3", chris),
				},
			},
			{
				ID: "a2", Title: "Consensus", DueDate: due2, Marks: 30, FacultyID: "f1",
				GradedSubmissions: []course.Submission{},
				UngradedSubmissions: []course.Submission{
					testutil.UngradedSubmission("sub4", amina),
				},
			},
			{
				ID: "a3", Title: "Sharding", DueDate: due2, Marks: 10, FacultyID: "f1",
				GradedSubmissions:   []course.Submission{},
				UngradedSubmissions: []course.Submission{},
			},
		},
	}
}

func TestDeriveSubmissionTables(t *testing.T) {
	snap := snapshotFixture(t)

	tables := course.DeriveSubmissionTables(snap)

	assert.Len(t, tables.Graded, 2)
	assert.Len(t, tables.Ungraded, 2)

	// assignment order, then submission order, is preserved
	assert.Equal(t, "sub1", tables.Graded[0].ID)
	assert.Equal(t, "sub2", tables.Graded[1].ID)
	assert.Equal(t, "sub3", tables.Ungraded[0].ID)
	assert.Equal(t, "sub4", tables.Ungraded[1].ID)

	// each row carries its parent assignment's fields
	row := tables.Graded[0]
	assert.Equal(t, "a1", row.AssignmentID)
	assert.Equal(t, "Vector Clocks", row.AssignmentTitle)
	assert.Equal(t, snap.Assignments[0].DueDate, row.AssignmentDueDate)
	assert.Equal(t, 20, row.MaxMarks)
	assert.Equal(t, amina, row.Student)
	assert.Equal(t, "A", row.Grade.String)

	ungraded := tables.Ungraded[1]
	assert.Equal(t, "a2", ungraded.AssignmentID)
	assert.Equal(t, 30, ungraded.MaxMarks)
	assert.False(t, ungraded.Grade.Valid)
}

func TestDeriveSubmissionTables_disjointUnion(t *testing.T) {
	tables := course.DeriveSubmissionTables(snapshotFixture(t))

	seen := make(map[string]int)
	for _, row := range tables.Graded {
		seen[row.ID]++
	}
	for _, row := range tables.Ungraded {
		seen[row.ID]++
	}
	assert.Len(t, seen, 4)
	for id, n := range seen {
		assert.Equal(t, 1, n, "submission %s must land in exactly one table", id)
	}
}

func TestDeriveSubmissionTables_classifiesByGradePresenceOnly(t *testing.T) {
	// a graded submission misfiled in the ungraded source list still lands
	// in the graded table
	snap := course.Snapshot{
		ID: "c1",
		Assignments: []course.Assignment{
			{
				ID: "a1", Title: "Misfiled", Marks: 20,
				UngradedSubmissions: []course.Submission{
					testutil.GradedSubmission("sub1", amina, "C", 10, "f1"),
				},
			},
		},
	}

	tables := course.DeriveSubmissionTables(snap)
	assert.Len(t, tables.Graded, 1)
	assert.Empty(t, tables.Ungraded)
}

func TestDeriveSubmissionTables_emptySnapshot(t *testing.T) {
	tables := course.DeriveSubmissionTables(course.Snapshot{})

	assert.NotNil(t, tables.Graded)
	assert.NotNil(t, tables.Ungraded)
	assert.Empty(t, tables.Graded)
	assert.Empty(t, tables.Ungraded)
}
