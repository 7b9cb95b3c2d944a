package apis

import (
	"context"
	"net/http"
	"time"

	"volunteerhub-backend/cmd/volunteerhub/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type IEngagementRepo interface {
	ToggleLike(ctx context.Context, ref model.ContentRef, userID string) (bool, error)
	CountLikes(ctx context.Context, ref model.ContentRef) (int64, error)
	CreateComment(ctx context.Context, comment *model.Comment) error
	ListComments(ctx context.Context, ref model.ContentRef) ([]model.Comment, error)
}

type EngagementAPI struct {
	engagement IEngagementRepo
	validate   *validator.Validate
}

func NewEngagementAPI(engagement IEngagementRepo) *EngagementAPI {
	return &EngagementAPI{
		engagement: engagement,
		validate:   validator.New(),
	}
}

func (a *EngagementAPI) Setup(g *echo.Group, auth *AuthMiddleware) {
	g.POST("/likes/toggle", a.toggleLike, auth.RequireAuth)
	g.GET("/likes/count", a.likeCount)
	g.GET("/comments", a.listComments)
	g.POST("/comments", a.createComment, auth.RequireAuth)
}

func (a *EngagementAPI) toggleLike(c echo.Context) error {

	ctx := c.Request().Context()

	var req model.LikeRequest
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

	ref, err := model.NewContentRef(model.ContentKind(req.Kind), req.TargetID)
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	liked, err := a.engagement.ToggleLike(ctx, ref, currentUserID(c))
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
			Data: map[string]bool{
				"liked": liked,
			},
		},
	)
}

func (a *EngagementAPI) likeCount(c echo.Context) error {

	ctx := c.Request().Context()

	ref, err := model.NewContentRef(
		model.ContentKind(c.QueryParam("content_kind")),
		c.QueryParam("content_id"),
	)
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	count, err := a.engagement.CountLikes(ctx, ref)
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
			Data: map[string]int64{
				"count": count,
			},
		},
	)
}

func (a *EngagementAPI) listComments(c echo.Context) error {

	ctx := c.Request().Context()

	ref, err := model.NewContentRef(
		model.ContentKind(c.QueryParam("content_kind")),
		c.QueryParam("content_id"),
	)
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	comments, err := a.engagement.ListComments(ctx, ref)
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
			Data:    comments,
		},
	)
}

func (a *EngagementAPI) createComment(c echo.Context) error {

	ctx := c.Request().Context()

	var req model.CommentCreateRequest
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

	ref, err := model.NewContentRef(model.ContentKind(req.Kind), req.TargetID)
	if err != nil {
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

	now := time.Now()
	comment := model.Comment{
		ID:         id.String(),
		Ref:        ref,
		AuthorID:   currentUserID(c),
		Text:       req.Text,
		ParentID:   req.ParentID,
		IsApproved: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = a.engagement.CreateComment(ctx, &comment)
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
			Data:    comment,
		},
	)
}
