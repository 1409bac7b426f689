// Package access decides whether a protected view may be shown to the
// current session. The decision is pure; the redirect side effect is owned
// by the caller.
package access

import (
	"strings"
	"sync"

	"github.com/trezcool/darasa/core/session"
)

// UnauthorizedTarget is where failing sessions are redirected.
const UnauthorizedTarget = "/unauthorized"

type State int

const (
	// Pending: the session is not ready yet; render a neutral placeholder
	// and perform no redirect.
	Pending State = iota
	// Allow: the identity carries one of the required roles.
	Allow
	// Redirect: the session is ready and the identity is absent or lacks
	// the required roles; navigate to Target.
	Redirect
)

type Decision struct {
	State  State
	Target string
	// Navigate reports whether the caller should actually issue the
	// redirect. A Guard clears it on repeated evaluations of the same
	// failing inputs so navigation is triggered once per transition.
	Navigate bool
}

// Evaluate is the pure gate decision. An empty role list admits any
// authenticated identity. Protected content must never be released before
// this returns Allow; Pending and Redirect both withhold it.
func Evaluate(sess session.Session, requiredRoles ...string) Decision {
	if !sess.Ready {
		return Decision{State: Pending}
	}
	if sess.Identity == nil || !hasAnyRole(sess.Identity.Role, requiredRoles) {
		return Decision{State: Redirect, Target: UnauthorizedTarget, Navigate: true}
	}
	return Decision{State: Allow}
}

func hasAnyRole(role string, required []string) bool {
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if r == role {
			return true
		}
	}
	return false
}

// Guard adds idempotent gating on top of Evaluate: the redirect is issued
// once per failing (session, requiredRoles) transition, and re-evaluating
// with unchanged inputs does not re-trigger navigation.
type Guard struct {
	mu         sync.Mutex
	lastDenied string
}

func NewGuard() *Guard {
	return &Guard{}
}

func (g *Guard) Check(sess session.Session, requiredRoles ...string) Decision {
	d := Evaluate(sess, requiredRoles...)

	g.mu.Lock()
	defer g.mu.Unlock()

	if d.State != Redirect {
		g.lastDenied = ""
		return d
	}
	key := fingerprint(sess, requiredRoles)
	if key == g.lastDenied {
		d.Navigate = false
		return d
	}
	g.lastDenied = key
	return d
}

func fingerprint(sess session.Session, roles []string) string {
	var b strings.Builder
	if sess.Identity != nil {
		b.WriteString(sess.Identity.ID)
		b.WriteByte('/')
		b.WriteString(sess.Identity.Role)
	}
	b.WriteByte('|')
	b.WriteString(strings.Join(roles, ","))
	return b.String()
}
