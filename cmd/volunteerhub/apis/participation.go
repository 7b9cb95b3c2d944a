package apis

import (
	"context"
	"errors"
	"net/http"
	"time"

	"volunteerhub-backend/cmd/volunteerhub/model"

	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
)

type IParticipationRepo interface {
	Register(ctx context.Context, userID, eventID, notes string) (*model.Participation, error)
	Cancel(ctx context.Context, userID, eventID string) error
	ChangeStatus(ctx context.Context, userID, eventID string, to model.ParticipationStatus, volunteerHours *int) (*model.Participation, error)
	GetParticipation(ctx context.Context, userID, eventID string) (*model.Participation, error)
	ListParticipants(ctx context.Context, eventID string, statuses []model.ParticipationStatus) ([]model.Participation, error)
	ListByUser(ctx context.Context, userID string, status *model.ParticipationStatus) ([]model.Participation, error)
	AdminDelete(ctx context.Context, userID, eventID string) error
}

type ICapacityCounter interface {
	Reconcile(ctx context.Context, eventID string) (int, error)
}

type ParticipationAPI struct {
	participations IParticipationRepo
	counter        ICapacityCounter
	validate       *validator.Validate
}

func NewParticipationAPI(participations IParticipationRepo, counter ICapacityCounter) *ParticipationAPI {
	return &ParticipationAPI{
		participations: participations,
		counter:        counter,
		validate:       validator.New(),
	}
}

func (a *ParticipationAPI) Setup(g *echo.Group, auth *AuthMiddleware) {

	g.POST("/events/:id/register", a.register, auth.RequireAuth)
	g.POST("/events/:id/cancel", a.cancel, auth.RequireAuth)
	g.GET("/events/:id/participation", a.getParticipation, auth.RequireAuth)
	g.GET("/events/:id/participants", a.listParticipants)
	g.GET("/my/participations", a.listMine, auth.RequireAuth)

	organizer := auth.RequireRole(model.RoleNKORepresentative, model.RoleModerator, model.RoleAdmin)
	g.POST("/events/:id/participants/:userId/status", a.changeStatus, auth.RequireAuth, organizer)
	g.DELETE("/events/:id/participants/:userId", a.deleteParticipation, auth.RequireAuth, organizer)
	g.GET("/events/:id/participants/export", a.exportParticipants, auth.RequireAuth, organizer)
	g.POST("/events/:id/reconcile", a.reconcile, auth.RequireAuth, organizer)
}

// policyStatus maps the engine's expected rejections to HTTP codes. Anything
// outside the taxonomy is an infrastructure failure.
func policyStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrRegistrationClosed),
		errors.Is(err, model.ErrEventFull),
		errors.Is(err, model.ErrAlreadyRegistered),
		errors.Is(err, model.ErrNotRegistered):
		return http.StatusConflict
	case errors.Is(err, model.ErrEventNotFound),
		errors.Is(err, model.ErrUserNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (a *ParticipationAPI) register(c echo.Context) error {

	ctx := c.Request().Context()

	var req model.RegistrationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}
	if err := a.validate.Struct(&req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	participation, err := a.participations.Register(ctx, currentUserID(c), c.Param("id"), req.Notes)
	if err != nil {
		return c.JSON(
			policyStatus(err),
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    participation,
		},
	)
}

func (a *ParticipationAPI) cancel(c echo.Context) error {

	ctx := c.Request().Context()

	err := a.participations.Cancel(ctx, currentUserID(c), c.Param("id"))
	if err != nil {
		return c.JSON(
			policyStatus(err),
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
		},
	)
}

func (a *ParticipationAPI) getParticipation(c echo.Context) error {

	ctx := c.Request().Context()

	participation, err := a.participations.GetParticipation(ctx, currentUserID(c), c.Param("id"))
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}
	if participation == nil {
		return c.JSON(
			http.StatusNotFound,
			model.BaseResponse{
				Message: model.ErrNotRegistered.Error(),
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    participation,
		},
	)
}

func (a *ParticipationAPI) listParticipants(c echo.Context) error {

	ctx := c.Request().Context()

	statuses := activeStatuses
	if raw := c.QueryParams()["status"]; len(raw) > 0 {
		statuses = make([]model.ParticipationStatus, 0, len(raw))
		for _, s := range raw {
			statuses = append(statuses, model.ParticipationStatus(s))
		}
	}

	participants, err := a.participations.ListParticipants(ctx, c.Param("id"), statuses)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    participants,
		},
	)
}

// activeStatuses is the default participant listing: everyone still holding
// or having used a slot.
var activeStatuses = []model.ParticipationStatus{
	model.ParticipationRegistered,
	model.ParticipationConfirmed,
	model.ParticipationAttended,
}

func (a *ParticipationAPI) listMine(c echo.Context) error {

	ctx := c.Request().Context()

	var status *model.ParticipationStatus
	if raw := c.QueryParam("status"); raw != "" {
		s := model.ParticipationStatus(raw)
		status = &s
	}

	participations, err := a.participations.ListByUser(ctx, currentUserID(c), status)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    participations,
		},
	)
}

func (a *ParticipationAPI) changeStatus(c echo.Context) error {

	ctx := c.Request().Context()

	var req model.ParticipantStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}
	if err := a.validate.Struct(&req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	participation, err := a.participations.ChangeStatus(
		ctx,
		c.Param("userId"),
		c.Param("id"),
		model.ParticipationStatus(req.Status),
		req.VolunteerHours,
	)

	if err != nil {
		return c.JSON(
			policyStatus(err),
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    participation,
		},
	)
}

func (a *ParticipationAPI) deleteParticipation(c echo.Context) error {

	ctx := c.Request().Context()

	err := a.participations.AdminDelete(ctx, c.Param("userId"), c.Param("id"))
	if err != nil {
		return c.JSON(
			policyStatus(err),
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
		},
	)
}

type participantCSVRow struct {
	UserID         string `csv:"user_id"`
	Status         string `csv:"status"`
	Notes          string `csv:"notes"`
	VolunteerHours int    `csv:"volunteer_hours"`
	RegisteredAt   string `csv:"registered_at"`
}

func (a *ParticipationAPI) exportParticipants(c echo.Context) error {

	ctx := c.Request().Context()

	participants, err := a.participations.ListParticipants(ctx, c.Param("id"), nil)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	rows := make([]participantCSVRow, 0, len(participants))
	for _, p := range participants {
		row := participantCSVRow{
			UserID:       p.UserID,
			Status:       string(p.Status),
			Notes:        p.Notes,
			RegisteredAt: p.RegisteredAt.Format(time.RFC3339),
		}
		if p.VolunteerHours != nil {
			row.VolunteerHours = *p.VolunteerHours
		}
		rows = append(rows, row)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="participants.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	return gocsv.Marshal(&rows, c.Response())
}

func (a *ParticipationAPI) reconcile(c echo.Context) error {

	ctx := c.Request().Context()

	drift, err := a.counter.Reconcile(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(
			policyStatus(err),
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data: map[string]int{
				"drift": drift,
			},
		},
	)
}
