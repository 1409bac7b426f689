package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/participant"
)

type registryApi struct {
	registry course.Registry
}

// registerRegistryAPI exposes the course registry backing the remote
// Registry collaborator.
func registerRegistryAPI(g *echo.Group, registry course.Registry) {
	api := registryApi{registry: registry}

	rg := g.Group("/registry")
	rg.GET("/courses/:id", api.retrieve)
	rg.POST("/courses/:id/members", api.addMember)
}

// Handlers

func (api *registryApi) retrieve(ctx echo.Context) error {
	viewerRole := core.CleanString(ctx.QueryParam("viewer_role"), true /* lower */)
	snap, err := api.registry.FetchSnapshot(ctx.Request().Context(), ctx.Param("id"), viewerRole)
	if err != nil {
		return errors.Wrap(err, "fetching course snapshot")
	}
	return ctx.JSON(http.StatusOK, snap)
}

func (api *registryApi) addMember(ctx echo.Context) error {
	var data struct {
		Role          string `json:"role"`
		ParticipantID string `json:"participant_id"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding member payload")
	}
	data.Role = core.CleanString(data.Role, true /* lower */)
	if !participant.ValidRole(data.Role) || data.ParticipantID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "role and participant_id are required")
	}

	err := api.registry.AddMember(ctx.Request().Context(), ctx.Param("id"), data.Role, data.ParticipantID)
	switch errors.Cause(err) {
	case nil:
		return ctx.NoContent(http.StatusNoContent)
	case course.ErrAlreadyPresent:
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return errors.Wrap(err, "attaching participant to course")
}
