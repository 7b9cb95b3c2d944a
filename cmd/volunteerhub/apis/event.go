package apis

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"volunteerhub-backend/cmd/volunteerhub/model"
	"volunteerhub-backend/cmd/volunteerhub/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type IEventRepo interface {
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	ListEvents(ctx context.Context, filter repository.EventFilter) ([]model.Event, error)
	UpcomingEvents(ctx context.Context, limit int) ([]model.Event, error)
	CreateEvent(ctx context.Context, event *model.Event) error
	UpdateEvent(ctx context.Context, event *model.Event) error
	SetEventStatus(ctx context.Context, id string, status model.EventStatus) error
}

type IViewRecorder interface {
	RecordView(ctx context.Context, ref model.ContentRef, userID *string, ip string) error
}

type EventAPI struct {
	eventRepo IEventRepo
	views     IViewRecorder
	validate  *validator.Validate
}

func NewEventAPI(eventRepo IEventRepo, views IViewRecorder) *EventAPI {
	return &EventAPI{
		eventRepo: eventRepo,
		views:     views,
		validate:  validator.New(),
	}
}

func (a *EventAPI) Setup(g *echo.Group, auth *AuthMiddleware) {
	g.GET("/events", a.listEvents)
	g.GET("/events/upcoming", a.upcomingEvents)
	g.GET("/events/:id", a.getEvent)
	g.POST("/events", a.createEvent, auth.RequireAuth)
	g.PUT("/events/:id", a.updateEvent, auth.RequireAuth)
	g.POST("/events/:id/status", a.setEventStatus, auth.RequireAuth,
		auth.RequireRole(model.RoleNKORepresentative, model.RoleModerator, model.RoleAdmin))
}

func (a *EventAPI) listEvents(c echo.Context) error {

	ctx := c.Request().Context()

	filter := repository.EventFilter{
		City:      c.QueryParam("city"),
		EventType: model.EventType(c.QueryParam("event_type")),
		Timeframe: c.QueryParam("timeframe"),
	}
	if filter.Timeframe == "" {
		filter.Timeframe = "upcoming"
	}

	events, err := a.eventRepo.ListEvents(ctx, filter)
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
			Data:    events,
		},
	)
}

func (a *EventAPI) upcomingEvents(c echo.Context) error {

	ctx := c.Request().Context()

	limit := 5
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			return c.JSON(
				http.StatusBadRequest,
				model.BaseResponse{
					Message: "limit must be between 1 and 100",
				},
			)
		}
		limit = parsed
	}

	events, err := a.eventRepo.UpcomingEvents(ctx, limit)
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
			Data:    events,
		},
	)
}

func (a *EventAPI) getEvent(c echo.Context) error {

	ctx := c.Request().Context()

	event, err := a.eventRepo.GetEvent(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, model.ErrEventNotFound) {
			return c.JSON(
				http.StatusNotFound,
				model.BaseResponse{
					Message: err.Error(),
				},
			)
		}
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	ref, _ := model.NewContentRef(model.KindEvent, event.ID)

	var viewer *string
	if id := currentUserID(c); id != "" {
		viewer = &id
	}

	// view tracking is best effort, the page still renders on failure
	_ = a.views.RecordView(ctx, ref, viewer, c.RealIP())

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    event,
		},
	)
}

func (a *EventAPI) createEvent(c echo.Context) error {

	ctx := c.Request().Context()

	var req model.EventCreateRequest
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

	if req.RegistrationDeadline != nil && req.RegistrationDeadline.After(req.StartDate) {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: "registration deadline must not be after the event start",
			},
		)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	now := time.Now()
	event := model.Event{
		ID:                   id.String(),
		Title:                req.Title,
		Description:          req.Description,
		EventType:            model.EventType(req.EventType),
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		RegistrationDeadline: req.RegistrationDeadline,
		City:                 req.City,
		Address:              req.Address,
		Online:               req.Online,
		OnlineLink:           req.OnlineLink,
		NKOID:                req.NKOID,
		CreatedBy:            currentUserID(c),
		MaxParticipants:      req.MaxParticipants,
		Status:               model.EventDraft,
		Requirements:         req.Requirements,
		WhatToBring:          req.WhatToBring,
		ContactInfo:          req.ContactInfo,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	err = a.eventRepo.CreateEvent(ctx, &event)
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
			Data:    event,
		},
	)
}

func (a *EventAPI) updateEvent(c echo.Context) error {

	ctx := c.Request().Context()

	event, err := a.eventRepo.GetEvent(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, model.ErrEventNotFound) {
			return c.JSON(
				http.StatusNotFound,
				model.BaseResponse{
					Message: err.Error(),
				},
			)
		}
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	if event.CreatedBy != currentUserID(c) && currentRole(c) != model.RoleAdmin && currentRole(c) != model.RoleModerator {
		return c.JSON(
			http.StatusForbidden,
			model.BaseResponse{
				Message: "only the creator or a moderator may edit an event",
			},
		)
	}

	var req model.EventCreateRequest
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

	if req.RegistrationDeadline != nil && req.RegistrationDeadline.After(req.StartDate) {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: "registration deadline must not be after the event start",
			},
		)
	}

	event.Title = req.Title
	event.Description = req.Description
	event.EventType = model.EventType(req.EventType)
	event.StartDate = req.StartDate
	event.EndDate = req.EndDate
	event.RegistrationDeadline = req.RegistrationDeadline
	event.City = req.City
	event.Address = req.Address
	event.Online = req.Online
	event.OnlineLink = req.OnlineLink
	event.MaxParticipants = req.MaxParticipants
	event.Requirements = req.Requirements
	event.WhatToBring = req.WhatToBring
	event.ContactInfo = req.ContactInfo
	event.UpdatedAt = time.Now()

	err = a.eventRepo.UpdateEvent(ctx, event)
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
			Data:    event,
		},
	)
}

func (a *EventAPI) setEventStatus(c echo.Context) error {

	ctx := c.Request().Context()

	var req model.EventStatusRequest
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

	err := a.eventRepo.SetEventStatus(ctx, c.Param("id"), model.EventStatus(req.Status))
	if err != nil {
		if errors.Is(err, model.ErrEventNotFound) {
			return c.JSON(
				http.StatusNotFound,
				model.BaseResponse{
					Message: err.Error(),
				},
			)
		}
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
		},
	)
}
