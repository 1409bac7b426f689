package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/participant"
	"github.com/trezcool/darasa/core/roster"
)

type courseApi struct {
	roster   *roster.Service
	validate *validator.Validate
}

func registerCourseAPI(g *echo.Group, jwt echo.MiddlewareFunc, rosterSvc *roster.Service, validate *validator.Validate) {
	api := courseApi{
		roster:   rosterSvc,
		validate: validate,
	}

	cg := g.Group("/courses", jwt)
	cg.GET("/:id", api.retrieve,
		roleMiddleware(participant.RoleFaculty, participant.RoleTA, participant.RoleStudent))
	cg.GET("/:id/submissions", api.submissions,
		roleMiddleware(participant.RoleFaculty, participant.RoleTA))
	cg.POST("/:id/participants", api.addParticipant,
		roleMiddleware(participant.RoleFaculty))
}

// Handlers

func (api *courseApi) retrieve(ctx echo.Context) error {
	viewer, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	snap, err := api.roster.CourseSnapshot(ctx.Request().Context(), ctx.Param("id"), viewer)
	if err != nil {
		return errors.Wrap(err, "fetching course")
	}
	return ctx.JSON(http.StatusOK, snap)
}

// submissions returns the course's submissions denormalized into graded and
// ungraded tables.
func (api *courseApi) submissions(ctx echo.Context) error {
	viewer, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	snap, err := api.roster.CourseSnapshot(ctx.Request().Context(), ctx.Param("id"), viewer)
	if err != nil {
		return errors.Wrap(err, "fetching course")
	}
	return ctx.JSON(http.StatusOK, course.DeriveSubmissionTables(snap))
}

func (api *courseApi) addParticipant(ctx echo.Context) error {
	viewer, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	var data AddParticipantRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AddParticipantRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	courseID := ctx.Param("id")

	// only the owning faculty may grow the roster
	if _, err = api.roster.CourseSnapshot(ctx.Request().Context(), courseID, viewer); err != nil {
		return errors.Wrap(err, "checking course ownership")
	}

	if err = api.roster.AddParticipant(ctx.Request().Context(), courseID, data.Email, data.Role); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, SuccessResponse{
		Success: data.Email + " has been enrolled as " + data.Role + ".",
	})
}

type (
	AddParticipantRequest struct {
		Email string `json:"email" validate:"required,email"`
		Role  string `json:"role" validate:"required,role"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)

func (ar *AddParticipantRequest) Validate(validate *validator.Validate) error {
	ar.Email = core.CleanString(ar.Email, true /* lower */)
	ar.Role = core.CleanString(ar.Role, true /* lower */)
	return validate.Struct(ar)
}
