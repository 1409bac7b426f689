package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/darasa/core/access"
	"github.com/trezcool/darasa/core/session"
)

func readySession(role string) session.Session {
	return session.Session{
		Ready:    true,
		Identity: &session.Identity{ID: "p1", Name: "Alice", Email: "alice@test.cd", Role: role},
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		sess  session.Session
		roles []string
		want  access.Decision
	}{
		{
			name: "not ready yet",
			sess: session.Session{},
			want: access.Decision{State: access.Pending},
		},
		{
			name: "not ready with roles",
			sess: session.Session{}, roles: []string{"faculty"},
			want: access.Decision{State: access.Pending},
		},
		{
			name: "ready unauthenticated",
			sess: session.Session{Ready: true},
			want: access.Decision{State: access.Redirect, Target: access.UnauthorizedTarget, Navigate: true},
		},
		{
			name: "role mismatch",
			sess: readySession("student"), roles: []string{"faculty", "ta"},
			want: access.Decision{State: access.Redirect, Target: access.UnauthorizedTarget, Navigate: true},
		},
		{
			name: "role match",
			sess: readySession("ta"), roles: []string{"faculty", "ta"},
			want: access.Decision{State: access.Allow},
		},
		{
			name: "no roles admits any authenticated identity",
			sess: readySession("student"),
			want: access.Decision{State: access.Allow},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := access.Evaluate(tt.sess, tt.roles...)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGuard_navigatesOncePerTransition(t *testing.T) {
	guard := access.NewGuard()
	denied := readySession("student")

	d := guard.Check(denied, "faculty")
	assert.Equal(t, access.Redirect, d.State)
	assert.True(t, d.Navigate, "first denial navigates")

	d = guard.Check(denied, "faculty")
	assert.Equal(t, access.Redirect, d.State)
	assert.False(t, d.Navigate, "same failing inputs must not re-navigate")

	// a different identity is a new transition
	other := readySession("student")
	other.Identity.ID = "p2"
	d = guard.Check(other, "faculty")
	assert.True(t, d.Navigate)

	// so are different required roles
	d = guard.Check(other, "ta")
	assert.True(t, d.Navigate)
}

func TestGuard_allowResetsTheTransition(t *testing.T) {
	guard := access.NewGuard()
	denied := readySession("student")

	assert.True(t, guard.Check(denied, "faculty").Navigate)
	assert.False(t, guard.Check(denied, "faculty").Navigate)

	// an Allow in between resets; the next denial navigates again
	d := guard.Check(readySession("faculty"), "faculty")
	assert.Equal(t, access.Allow, d.State)

	assert.True(t, guard.Check(denied, "faculty").Navigate)
}

func TestGuard_pendingDoesNotNavigate(t *testing.T) {
	guard := access.NewGuard()

	d := guard.Check(session.Session{}, "faculty")
	assert.Equal(t, access.Pending, d.State)
	assert.False(t, d.Navigate)
	assert.Empty(t, d.Target)
}
