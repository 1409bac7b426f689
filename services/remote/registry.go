package remotesvc

import (
	"context"
	"net/http"
	"net/url"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/course"
)

type registryService struct {
	client
}

var _ course.Registry = (*registryService)(nil)

// NewRegistry returns a Registry backed by the course-registry API at
// core.Conf.Remote.RegistryURL.
func NewRegistry() course.Registry {
	return &registryService{client: newClient(core.Conf.Remote.RegistryURL)}
}

func (svc registryService) AddMember(ctx context.Context, courseID, role, participantID string) error {
	body := struct {
		Role          string `json:"role"`
		ParticipantID string `json:"participant_id"`
	}{Role: role, ParticipantID: participantID}

	err := svc.do(ctx, "registry.addMember", http.MethodPost, "/courses/"+courseID+"/members", nil, body, nil)
	switch status(err) {
	case http.StatusNotFound:
		return course.ErrNotFound
	case http.StatusConflict:
		return course.ErrAlreadyPresent
	case http.StatusForbidden:
		return core.ErrForbidden
	}
	return err
}

func (svc registryService) FetchSnapshot(ctx context.Context, courseID, viewerRole string) (course.Snapshot, error) {
	query := url.Values{"viewer_role": {viewerRole}}
	var snap course.Snapshot
	err := svc.do(ctx, "registry.fetchSnapshot", http.MethodGet, "/courses/"+courseID, query, nil, &snap)
	if err != nil {
		switch status(err) {
		case http.StatusNotFound:
			return course.Snapshot{}, course.ErrNotFound
		case http.StatusForbidden:
			return course.Snapshot{}, core.ErrForbidden
		}
		return course.Snapshot{}, err
	}
	return snap, nil
}
