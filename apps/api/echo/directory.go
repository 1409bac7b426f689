package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/participant"
)

type directoryApi struct {
	directory participant.Directory
	validate  *validator.Validate
}

// registerDirectoryAPI exposes the participant directory. These endpoints
// back the remote Directory collaborator and the portal's login form.
func registerDirectoryAPI(g *echo.Group, directory participant.Directory, validate *validator.Validate) {
	api := directoryApi{
		directory: directory,
		validate:  validate,
	}

	dg := g.Group("/directory")
	dg.POST("/auth/login", api.login)
	dg.POST("/participants", api.register)
	dg.GET("/participants/resolve", api.resolve)
	dg.GET("/participants/:id", api.retrieve)
	dg.POST("/participants/:id/courses", api.addCourse)
}

// Handlers

func (api *directoryApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := authenticate(ctx.Request().Context(), data.Email, data.Password, data.Role, api.directory)
	if err != nil {
		return err
	}
	token, err := GenerateToken(claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{
		Participant: participant.Participant{
			ID:    claims.Subject,
			Name:  claims.Name,
			Email: claims.Email,
		},
		Role:  claims.Role,
		Token: token,
	})
}

func (api *directoryApi) register(ctx echo.Context) error {
	var data participant.NewParticipant
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewParticipant")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	p, err := api.directory.Register(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering participant")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *directoryApi) resolve(ctx echo.Context) error {
	email := core.CleanString(ctx.QueryParam("email"), true /* lower */)
	role := core.CleanString(ctx.QueryParam("role"), true /* lower */)
	if email == "" || !participant.ValidRole(role) {
		return errHttpNotFound
	}

	id, err := api.directory.ResolveID(ctx.Request().Context(), email, role)
	if err != nil {
		return errors.Wrap(err, "resolving participant id")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"id": id})
}

func (api *directoryApi) retrieve(ctx echo.Context) error {
	role := core.CleanString(ctx.QueryParam("role"), true /* lower */)
	p, err := api.directory.GetByID(ctx.Request().Context(), ctx.Param("id"), role)
	if err != nil {
		return errors.Wrap(err, "finding participant by id")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *directoryApi) addCourse(ctx echo.Context) error {
	var data AddCourseRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AddCourseRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	err := api.directory.AddCourse(ctx.Request().Context(), ctx.Param("id"), data.Role, data.CourseID)
	switch errors.Cause(err) {
	case nil:
		return ctx.NoContent(http.StatusNoContent)
	case participant.ErrAlreadyPresent:
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return errors.Wrap(err, "attaching course to participant")
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
		Role     string `json:"role" validate:"required,role"`
	}

	LoginResponse struct {
		participant.Participant
		Role  string `json:"role"`
		Token string `json:"token"`
	}

	AddCourseRequest struct {
		Role     string `json:"role" validate:"required,role"`
		CourseID string `json:"course_id" validate:"required"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	lr.Role = core.CleanString(lr.Role, true /* lower */)
	return validate.Struct(lr)
}

func (ar *AddCourseRequest) Validate(validate *validator.Validate) error {
	ar.Role = core.CleanString(ar.Role, true /* lower */)
	ar.CourseID = core.CleanString(ar.CourseID)
	return validate.Struct(ar)
}
