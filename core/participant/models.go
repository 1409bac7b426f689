package participant

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/darasa/core"
)

// Roles
const (
	RoleFaculty = "faculty"
	RoleTA      = "ta"
	RoleStudent = "student"
)

var (
	AllRoles = []string{RoleFaculty, RoleTA, RoleStudent}

	rolePriorities = map[string]int{
		RoleFaculty: 3,
		RoleTA:      2,
		RoleStudent: 1,
	}
)

func ValidRole(role string) bool {
	_, ok := rolePriorities[role]
	return ok
}

func RolePriority(role string) int {
	return rolePriorities[role]
}

var (
	// errors
	ErrNotFound       = errors.New("participant not found")
	ErrEmailExists    = errors.New("a participant with this email is already registered for this role")
	ErrAlreadyPresent = errors.New("course already in participant's course list")
)

// Participant is a person attached (or attachable) to a course roster.
type Participant struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash []byte `json:"-"`
}

func (p *Participant) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.PasswordHash = hash
	return nil
}

func (p *Participant) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(p.PasswordHash, []byte(pwd))
}

// NewParticipant contains information needed to register a Participant.
type NewParticipant struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,role"`
	Password string `json:"password" validate:"required"`
}

func (np *NewParticipant) Validate(validate *validator.Validate) error {
	np.Name = core.CleanString(np.Name)
	np.Email = core.CleanString(np.Email, true /* lower */)
	np.Role = core.CleanString(np.Role, true /* lower */)
	return validate.Struct(np)
}

// Directory is the remote participant-directory collaborator. It is the
// single source of truth for participant identity and for the
// participant→course half of the enrollment edge.
type Directory interface {
	// ResolveID looks up a participant id by email for the given role.
	ResolveID(ctx context.Context, email, role string) (string, error)
	// AddCourse attaches courseID to the participant's course list for the
	// given role. Attaching an already-present course returns ErrAlreadyPresent.
	AddCourse(ctx context.Context, participantID, role, courseID string) error
	// Authenticate checks the credentials and returns the matching Participant.
	Authenticate(ctx context.Context, email, password, role string) (Participant, error)
	// Register creates a new Participant for the given role.
	Register(ctx context.Context, np NewParticipant) (Participant, error)
	GetByID(ctx context.Context, id, role string) (Participant, error)
}
