package session

// Identity is the authenticated user record held by the Store.
// It is created on login and destroyed on logout.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session is the Store's observable state. Ready becomes true exactly once,
// after the initial restore attempt from persisted storage completes.
// No access decision may be made while Ready is false.
type Session struct {
	Identity *Identity
	Ready    bool
}

func (s Session) LoggedIn() bool {
	return s.Identity != nil
}
