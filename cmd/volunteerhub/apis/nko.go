package apis

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"volunteerhub-backend/cmd/volunteerhub/model"
	"volunteerhub-backend/cmd/volunteerhub/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type INKORepo interface {
	CreateNKO(ctx context.Context, nko *model.NKO) error
	GetNKO(ctx context.Context, id string) (*model.NKO, error)
	ListNKOs(ctx context.Context, city string, category model.NKOCategory) ([]model.NKO, error)
	CreateMembership(ctx context.Context, membership *model.NKOMembership) error
	GetMembership(ctx context.Context, userID, nkoID string) (*model.NKOMembership, error)
	SetMembershipStatus(ctx context.Context, userID, nkoID string, status model.MembershipStatus) error
	ListMemberships(ctx context.Context, nkoID string) ([]model.NKOMembership, error)
}

type NKOAPI struct {
	nkoRepo  INKORepo
	validate *validator.Validate
}

func NewNKOAPI(nkoRepo INKORepo) *NKOAPI {
	return &NKOAPI{
		nkoRepo:  nkoRepo,
		validate: validator.New(),
	}
}

func (a *NKOAPI) Setup(g *echo.Group, auth *AuthMiddleware) {
	g.GET("/nkos", a.listNKOs)
	g.GET("/nkos/:id", a.getNKO)
	g.POST("/nkos", a.createNKO, auth.RequireAuth)
	g.POST("/nkos/:id/join", a.join, auth.RequireAuth)
	g.GET("/nkos/:id/members", a.listMembers)
	g.POST("/nkos/:id/members/:userId/status", a.setMemberStatus, auth.RequireAuth,
		auth.RequireRole(model.RoleNKORepresentative, model.RoleModerator, model.RoleAdmin))
}

func (a *NKOAPI) listNKOs(c echo.Context) error {

	ctx := c.Request().Context()

	nkos, err := a.nkoRepo.ListNKOs(ctx, c.QueryParam("city"), model.NKOCategory(c.QueryParam("category")))
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
			Data:    nkos,
		},
	)
}

func (a *NKOAPI) getNKO(c echo.Context) error {

	ctx := c.Request().Context()

	nko, err := a.nkoRepo.GetNKO(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNKONotFound) {
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
			Data:    nko,
		},
	)
}

func (a *NKOAPI) createNKO(c echo.Context) error {

	ctx := c.Request().Context()

	var req model.NKOCreateRequest
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

	id, err := uuid.NewV7()
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	links, err := json.Marshal(req.SocialLinks)
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	now := time.Now()
	nko := model.NKO{
		ID:          id.String(),
		Name:        req.Name,
		Description: req.Description,
		Mission:     req.Mission,
		Category:    model.NKOCategory(req.Category),
		Email:       req.Email,
		Phone:       req.Phone,
		Website:     req.Website,
		SocialLinks: links,
		City:        req.City,
		Address:     req.Address,
		OwnerID:     currentUserID(c),
		Status:      model.NKODraft,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = a.nkoRepo.CreateNKO(ctx, &nko)
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
			Data:    nko,
		},
	)
}

func (a *NKOAPI) join(c echo.Context) error {

	ctx := c.Request().Context()
	nkoID := c.Param("id")
	userID := currentUserID(c)

	existing, err := a.nkoRepo.GetMembership(ctx, userID, nkoID)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}
	if existing != nil {
		return c.JSON(
			http.StatusConflict,
			model.BaseResponse{
				Message: "membership already exists",
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

	membership := model.NKOMembership{
		ID:       id.String(),
		UserID:   userID,
		NKOID:    nkoID,
		Role:     model.MemberRoleMember,
		Status:   model.MembershipPending,
		JoinedAt: time.Now(),
	}

	err = a.nkoRepo.CreateMembership(ctx, &membership)
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
			Data:    membership,
		},
	)
}

func (a *NKOAPI) listMembers(c echo.Context) error {

	ctx := c.Request().Context()

	memberships, err := a.nkoRepo.ListMemberships(ctx, c.Param("id"))
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
			Data:    memberships,
		},
	)
}

func (a *NKOAPI) setMemberStatus(c echo.Context) error {

	ctx := c.Request().Context()

	var req struct {
		Status string `json:"status" validate:"required,oneof=pending approved rejected banned"`
	}
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

	err := a.nkoRepo.SetMembershipStatus(ctx, c.Param("userId"), c.Param("id"), model.MembershipStatus(req.Status))
	if err != nil {
		return c.JSON(
			http.StatusNotFound,
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
