// Package roster keeps the course-registry and the participant-directory in
// agreement when a participant is enrolled into a course. The two writes have
// no shared transaction; the enrollment is modeled as a saga with a named
// partial-failure state instead of pretending atomicity.
package roster

import (
	"context"
	"fmt"
	"net/mail"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/participant"
	"github.com/trezcool/darasa/core/session"
)

var (
	// ErrNotRegistered: only previously-registered identities may be
	// enrolled; there is no implicit account creation.
	ErrNotRegistered = errors.New("participant has not registered yet")
	// ErrAlreadyEnrolled is a user-visible notice, not an error state.
	ErrAlreadyEnrolled = errors.New("participant is already enrolled in this course")
)

// PartialEnrollmentError reports an inconsistent cross-registry state: the
// course holds the participant, but the participant's course list was not
// updated. Re-invoking AddParticipant with the same arguments repairs it.
type PartialEnrollmentError struct {
	CourseID      string
	ParticipantID string
	Role          string
	Err           error
}

func (e *PartialEnrollmentError) Error() string {
	return fmt.Sprintf(
		"partial enrollment of %s %s in course %s: course attached but reverse edge failed: %v",
		e.Role, e.ParticipantID, e.CourseID, e.Err,
	)
}

func (e *PartialEnrollmentError) Unwrap() error { return e.Err }

type enrollment struct {
	courseID      string
	participantID string
	role          string
}

// Service orchestrates the two-phase enrollment protocol against the
// participant-directory and the course-registry.
type Service struct {
	directory participant.Directory
	registry  course.Registry
	logger    core.Logger
	mail      core.EmailService // optional

	mu      sync.Mutex
	pending map[enrollment]struct{} // enrollments whose reverse edge is missing
}

func NewService(directory participant.Directory, registry course.Registry, logger core.Logger, mailSvc core.EmailService) *Service {
	return &Service{
		directory: directory,
		registry:  registry,
		logger:    logger,
		mail:      mailSvc,
		pending:   make(map[enrollment]struct{}),
	}
}

// AddParticipant enrolls the participant registered under email into the
// course for the given role. Steps run strictly in order:
//
//  1. resolve the participant id by email (hard precondition);
//  2. attach course→participant in the registry;
//  3. attach participant→course in the directory.
//
// Success is reported only after step 3. An "already present" signal from
// step 2 normally means the enrollment is complete from a prior run and
// yields ErrAlreadyEnrolled without running step 3, unless this Service
// recorded a partial failure for the same enrollment, in which case step 3
// runs once more to repair the reverse edge. There is no compensating
// rollback; a step-3 failure is surfaced as *PartialEnrollmentError and is
// safe to retry.
//
// Concurrent duplicate calls for the same (course, participant) pair are not
// safe: the caller is expected to disable the triggering control while a
// call is in flight.
func (svc *Service) AddParticipant(ctx context.Context, courseID, email, role string) error {
	email = core.CleanString(email, true /* lower */)

	id, err := svc.directory.ResolveID(ctx, email, role)
	if err != nil {
		if errors.Cause(err) == participant.ErrNotFound {
			return ErrNotRegistered
		}
		return errors.Wrap(err, "resolving participant id")
	}

	enr := enrollment{courseID: courseID, participantID: id, role: role}

	if err = svc.registry.AddMember(ctx, courseID, role, id); err != nil {
		if errors.Cause(err) != course.ErrAlreadyPresent {
			return errors.Wrap(err, "attaching participant to course")
		}
		if !svc.isPending(enr) {
			// reverse edge is assumed consistent from a prior successful run
			return ErrAlreadyEnrolled
		}
		// a prior run attached the member but lost the reverse edge; fall
		// through and repair it
	}

	if err = svc.directory.AddCourse(ctx, id, role, courseID); err != nil && errors.Cause(err) != participant.ErrAlreadyPresent {
		svc.setPending(enr)
		perr := &PartialEnrollmentError{CourseID: courseID, ParticipantID: id, Role: role, Err: err}
		svc.logger.Error(perr.Error(), perr)
		return perr
	}

	svc.clearPending(enr)
	svc.notifyEnrolled(email, role, courseID)
	return nil
}

// CourseSnapshot fetches the course projection for the viewer. A faculty
// viewer must own the course.
func (svc *Service) CourseSnapshot(ctx context.Context, courseID string, viewer session.Identity) (course.Snapshot, error) {
	snap, err := svc.registry.FetchSnapshot(ctx, courseID, viewer.Role)
	if err != nil {
		return course.Snapshot{}, errors.Wrap(err, "fetching course snapshot")
	}
	if viewer.Role == participant.RoleFaculty && snap.FacultyID != viewer.ID {
		return course.Snapshot{}, core.ErrForbidden
	}
	return snap, nil
}

func (svc *Service) isPending(enr enrollment) bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	_, ok := svc.pending[enr]
	return ok
}

func (svc *Service) setPending(enr enrollment) {
	svc.mu.Lock()
	svc.pending[enr] = struct{}{}
	svc.mu.Unlock()
}

func (svc *Service) clearPending(enr enrollment) {
	svc.mu.Lock()
	delete(svc.pending, enr)
	svc.mu.Unlock()
}

// notifyEnrolled sends a best-effort enrollment notice; failures never
// affect the enrollment result.
func (svc *Service) notifyEnrolled(email, role, courseID string) {
	if svc.mail == nil {
		return
	}
	body := "You have been enrolled in a course."
	if role == participant.RoleTA {
		body = "You have been added to a course as a teaching assistant."
	}
	svc.mail.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Address: email}},
		Subject: "Course enrollment",
		BodyStr: fmt.Sprintf("%s (course %s)", body, courseID),
	})
}
