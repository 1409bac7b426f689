package dummydb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/participant"
	dummydb "github.com/trezcool/darasa/storage/database/dummy"
	testutil "github.com/trezcool/darasa/tests"
)

func TestDirectory(t *testing.T) {
	db, err := dummydb.Open()
	assert.NoError(t, err)
	directory := dummydb.NewDirectory(db)
	ctx := context.Background()

	amina := testutil.RegisterParticipant(t, directory, "Amina", "amina@test.cd", participant.RoleStudent, "Str0ng&Scary")

	t.Run("duplicate email per role", func(t *testing.T) {
		_, err := directory.Register(ctx, participant.NewParticipant{
			Name: "Imposter", Email: "amina@test.cd", Role: participant.RoleStudent, Password: "Wh4tever!",
		})
		assert.Equal(t, participant.ErrEmailExists, err)

		// same email under another role is a distinct account
		_, err = directory.Register(ctx, participant.NewParticipant{
			Name: "Amina", Email: "amina@test.cd", Role: participant.RoleTA, Password: "Wh4tever!",
		})
		assert.NoError(t, err)
	})

	t.Run("resolve id", func(t *testing.T) {
		id, err := directory.ResolveID(ctx, "amina@test.cd", participant.RoleStudent)
		assert.NoError(t, err)
		assert.Equal(t, amina.ID, id)

		_, err = directory.ResolveID(ctx, "ghost@test.cd", participant.RoleStudent)
		assert.Equal(t, participant.ErrNotFound, err)
	})

	t.Run("authenticate", func(t *testing.T) {
		p, err := directory.Authenticate(ctx, "amina@test.cd", "Str0ng&Scary", participant.RoleStudent)
		assert.NoError(t, err)
		assert.Equal(t, amina.ID, p.ID)

		_, err = directory.Authenticate(ctx, "amina@test.cd", "wrong", participant.RoleStudent)
		assert.Equal(t, participant.ErrNotFound, err)

		// wrong role does not match either
		_, err = directory.Authenticate(ctx, "amina@test.cd", "Str0ng&Scary", participant.RoleFaculty)
		assert.Equal(t, participant.ErrNotFound, err)
	})

	t.Run("add course", func(t *testing.T) {
		assert.NoError(t, directory.AddCourse(ctx, amina.ID, participant.RoleStudent, "c1"))
		assert.Equal(t, participant.ErrAlreadyPresent, directory.AddCourse(ctx, amina.ID, participant.RoleStudent, "c1"))
		assert.NoError(t, directory.AddCourse(ctx, amina.ID, participant.RoleStudent, "c2"))
		assert.Equal(t, []string{"c1", "c2"}, db.ParticipantCourses(amina.ID))

		assert.Equal(t, participant.ErrNotFound, directory.AddCourse(ctx, "nope", participant.RoleStudent, "c1"))
	})

	t.Run("get by id", func(t *testing.T) {
		p, err := directory.GetByID(ctx, amina.ID, participant.RoleStudent)
		assert.NoError(t, err)
		assert.Equal(t, "Amina", p.Name)

		_, err = directory.GetByID(ctx, amina.ID, participant.RoleFaculty)
		assert.Equal(t, participant.ErrNotFound, err)
	})
}

func TestRegistry(t *testing.T) {
	db, err := dummydb.Open()
	assert.NoError(t, err)
	directory := dummydb.NewDirectory(db)
	registry := dummydb.NewRegistry(db)
	ctx := context.Background()

	amina := testutil.RegisterParticipant(t, directory, "Amina", "amina@test.cd", participant.RoleStudent, "")
	db.SeedCourse(course.Snapshot{ID: "c1", Name: "Algorithms", FacultyID: "f1"})

	t.Run("add member", func(t *testing.T) {
		assert.NoError(t, registry.AddMember(ctx, "c1", participant.RoleStudent, amina.ID))
		assert.Equal(t, course.ErrAlreadyPresent, registry.AddMember(ctx, "c1", participant.RoleStudent, amina.ID))
		assert.Equal(t, course.ErrNotFound, registry.AddMember(ctx, "nope", participant.RoleStudent, amina.ID))
		assert.Equal(t, []string{amina.ID}, db.CourseMembers("c1", participant.RoleStudent))
	})

	t.Run("fetch snapshot materializes members", func(t *testing.T) {
		snap, err := registry.FetchSnapshot(ctx, "c1", participant.RoleFaculty)
		assert.NoError(t, err)
		assert.Equal(t, "Algorithms", snap.Name)
		assert.Len(t, snap.Students, 1)
		assert.Equal(t, "Amina", snap.Students[0].Name)
		assert.Empty(t, snap.TAs)

		_, err = registry.FetchSnapshot(ctx, "nope", participant.RoleFaculty)
		assert.Equal(t, course.ErrNotFound, err)
	})
}
