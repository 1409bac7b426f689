package remotesvc

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/participant"
)

type directoryService struct {
	client
}

var _ participant.Directory = (*directoryService)(nil)

// NewDirectory returns a Directory backed by the participant-directory API
// at core.Conf.Remote.DirectoryURL.
func NewDirectory() participant.Directory {
	return &directoryService{client: newClient(core.Conf.Remote.DirectoryURL)}
}

func (svc directoryService) ResolveID(ctx context.Context, email, role string) (string, error) {
	query := url.Values{"email": {email}, "role": {role}}
	var res struct {
		ID string `json:"id"`
	}
	err := svc.do(ctx, "directory.resolve", http.MethodGet, "/participants/resolve", query, nil, &res)
	if err != nil {
		if status(err) == http.StatusNotFound {
			return "", participant.ErrNotFound
		}
		return "", err
	}
	return res.ID, nil
}

func (svc directoryService) AddCourse(ctx context.Context, participantID, role, courseID string) error {
	body := struct {
		Role     string `json:"role"`
		CourseID string `json:"course_id"`
	}{Role: role, CourseID: courseID}

	err := svc.do(ctx, "directory.addCourse", http.MethodPost, "/participants/"+participantID+"/courses", nil, body, nil)
	switch status(err) {
	case http.StatusNotFound:
		return participant.ErrNotFound
	case http.StatusConflict:
		return participant.ErrAlreadyPresent
	case http.StatusForbidden:
		return core.ErrForbidden
	}
	return err
}

func (svc directoryService) Authenticate(ctx context.Context, email, password, role string) (participant.Participant, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}{Email: email, Password: password, Role: role}

	var p participant.Participant
	err := svc.do(ctx, "directory.authenticate", http.MethodPost, "/auth/login", nil, body, &p)
	if err != nil {
		switch status(err) {
		case http.StatusUnauthorized, http.StatusNotFound:
			return participant.Participant{}, participant.ErrNotFound
		}
		return participant.Participant{}, err
	}
	return p, nil
}

func (svc directoryService) Register(ctx context.Context, np participant.NewParticipant) (participant.Participant, error) {
	var p participant.Participant
	err := svc.do(ctx, "directory.register", http.MethodPost, "/participants", nil, np, &p)
	if err != nil {
		sErr, ok := errors.Cause(err).(statusError)
		if !ok {
			return participant.Participant{}, err
		}
		switch sErr.code {
		case http.StatusConflict:
			return participant.Participant{}, participant.ErrEmailExists
		case http.StatusBadRequest:
			flds := make([]core.FieldError, 0, len(sErr.apiErr.Fields))
			for fld, msg := range sErr.apiErr.Fields {
				flds = append(flds, core.FieldError{Field: fld, Error: msg})
			}
			return participant.Participant{}, core.NewValidationError(errors.New(sErr.apiErr.Error), flds...)
		}
		return participant.Participant{}, err
	}
	return p, nil
}

func (svc directoryService) GetByID(ctx context.Context, id, role string) (participant.Participant, error) {
	query := url.Values{"role": {role}}
	var p participant.Participant
	err := svc.do(ctx, "directory.getByID", http.MethodGet, "/participants/"+id, query, nil, &p)
	if err != nil {
		if status(err) == http.StatusNotFound {
			return participant.Participant{}, participant.ErrNotFound
		}
		return participant.Participant{}, err
	}
	return p, nil
}
