package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/participant"
)

// PrepareConfig makes sure core.Conf is set for components that read it.
func PrepareConfig(t *testing.T) *core.Config {
	t.Helper()
	if core.Conf == nil {
		core.NewConfig()
	}
	core.Conf.TestMode = true
	core.Conf.Debug = false // keep error payloads stable
	return core.Conf
}

// RegisterParticipant registers a participant through the directory.
func RegisterParticipant(t *testing.T, directory participant.Directory, name, email, role, pwd string) participant.Participant {
	t.Helper()
	if pwd == "" {
		pwd = "Str0ng&Scary"
	}
	p, err := directory.Register(context.Background(), participant.NewParticipant{
		Name:     name,
		Email:    email,
		Role:     role,
		Password: pwd,
	})
	if err != nil {
		t.Fatalf("RegisterParticipant() failed: %v", err)
	}
	return p
}

// GradedSubmission returns a graded submission for snapshot fixtures.
func GradedSubmission(id string, student participant.Participant, grade string, marks int, gradedBy string) course.Submission {
	now := time.Now().UTC()
	return course.Submission{
		ID:            id,
		Student:       student,
		Grade:         null.StringFrom(grade),
		Marks:         null.IntFrom(marks),
		GradedBy:      null.StringFrom(gradedBy),
		SubmittedDate: now.Add(-48 * time.Hour),
		CheckedDate:   null.TimeFrom(now),
	}
}

// UngradedSubmission returns an ungraded submission for snapshot fixtures.
func UngradedSubmission(id string, student participant.Participant) course.Submission {
	return course.Submission{
		ID:            id,
		Student:       student,
		SubmittedDate: time.Now().UTC().Add(-24 * time.Hour),
	}
}

// TestLogger is a core.Logger that writes through testing.T.
type TestLogger struct {
	T *testing.T
}

var _ core.Logger = (*TestLogger)(nil)

func NewLogger(t *testing.T) *TestLogger { return &TestLogger{T: t} }

func (l TestLogger) log(level, msg string, args []interface{}) {
	l.T.Helper()
	l.T.Logf("%s: %s %v", level, msg, args)
}

func (l TestLogger) Debug(msg string, args ...interface{}) { l.log("DEBUG", msg, args) }
func (l TestLogger) Info(msg string, args ...interface{})  { l.log("INFO", msg, args) }
func (l TestLogger) Warn(msg string, args ...interface{})  { l.log("WARN", msg, args) }
func (l TestLogger) Error(msg string, args ...interface{}) { l.log("ERROR", msg, args) }
func (l TestLogger) Fatal(msg string, args ...interface{}) { l.log("FATAL", msg, args) }
