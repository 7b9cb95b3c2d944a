package apis

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"volunteerhub-backend/cmd/volunteerhub/model"
	"volunteerhub-backend/cmd/volunteerhub/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type IContentRepo interface {
	CreateNews(ctx context.Context, news *model.News) error
	GetNewsBySlug(ctx context.Context, slug string) (*model.News, error)
	ListNews(ctx context.Context, city string, limit int) ([]model.News, error)
	PopularNews(ctx context.Context, limit int) ([]model.News, error)
	FeaturedNews(ctx context.Context, limit int) ([]model.News, error)
	CreateKnowledge(ctx context.Context, material *model.KnowledgeBase) error
	GetKnowledge(ctx context.Context, id string) (*model.KnowledgeBase, error)
	ListKnowledge(ctx context.Context, category model.KnowledgeCategory, difficulty string) ([]model.KnowledgeBase, error)
	PopularKnowledge(ctx context.Context, limit int) ([]model.KnowledgeBase, error)
	IncrementDownloadCount(ctx context.Context, id string) error
}

type ContentAPI struct {
	contentRepo IContentRepo
	views       IViewRecorder
	validate    *validator.Validate
}

func NewContentAPI(contentRepo IContentRepo, views IViewRecorder) *ContentAPI {
	return &ContentAPI{
		contentRepo: contentRepo,
		views:       views,
		validate:    validator.New(),
	}
}

func (a *ContentAPI) Setup(g *echo.Group, auth *AuthMiddleware) {
	g.GET("/news", a.listNews)
	g.GET("/news/popular", a.popularNews)
	g.GET("/news/featured", a.featuredNews)
	g.GET("/news/:slug", a.getNews)
	g.POST("/news", a.createNews, auth.RequireAuth,
		auth.RequireRole(model.RoleNKORepresentative, model.RoleModerator, model.RoleAdmin))

	g.GET("/knowledge", a.listKnowledge)
	g.GET("/knowledge/popular", a.popularKnowledge)
	g.GET("/knowledge/:id", a.getKnowledge)
	g.POST("/knowledge", a.createKnowledge, auth.RequireAuth,
		auth.RequireRole(model.RoleNKORepresentative, model.RoleModerator, model.RoleAdmin))
}

// slugify is intentionally crude: lowercase, spaces to dashes. Uniqueness is
// guaranteed by the id suffix, not the text.
func slugify(title, id string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = strings.Join(strings.Fields(s), "-")
	if len(s) > 180 {
		s = s[:180]
	}
	return s + "-" + id[len(id)-8:]
}

func (a *ContentAPI) listNews(c echo.Context) error {

	ctx := c.Request().Context()

	news, err := a.contentRepo.ListNews(ctx, c.QueryParam("city"), 0)
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
			Data:    news,
		},
	)
}

func listLimit(c echo.Context, fallback int) (int, error) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 1 || parsed > 100 {
		return 0, errors.New("limit must be between 1 and 100")
	}
	return parsed, nil
}

func (a *ContentAPI) popularNews(c echo.Context) error {

	ctx := c.Request().Context()

	limit, err := listLimit(c, 10)
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	news, err := a.contentRepo.PopularNews(ctx, limit)
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
			Data:    news,
		},
	)
}

func (a *ContentAPI) featuredNews(c echo.Context) error {

	ctx := c.Request().Context()

	limit, err := listLimit(c, 10)
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	news, err := a.contentRepo.FeaturedNews(ctx, limit)
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
			Data:    news,
		},
	)
}

func (a *ContentAPI) popularKnowledge(c echo.Context) error {

	ctx := c.Request().Context()

	limit, err := listLimit(c, 10)
	if err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	materials, err := a.contentRepo.PopularKnowledge(ctx, limit)
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
			Data:    materials,
		},
	)
}

func (a *ContentAPI) getNews(c echo.Context) error {

	ctx := c.Request().Context()

	news, err := a.contentRepo.GetNewsBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrNewsNotFound) {
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

	ref, _ := model.NewContentRef(model.KindNews, news.ID)

	var viewer *string
	if id := currentUserID(c); id != "" {
		viewer = &id
	}

	_ = a.views.RecordView(ctx, ref, viewer, c.RealIP())

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    news,
		},
	)
}

func (a *ContentAPI) createNews(c echo.Context) error {

	ctx := c.Request().Context()

	var req model.NewsCreateRequest
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

	now := time.Now()
	news := model.News{
		ID:            id.String(),
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		AuthorID:      currentUserID(c),
		NKOID:         req.NKOID,
		Status:        model.NewsPublished,
		AllowComments: true,
		City:          req.City,
		Slug:          slugify(req.Title, id.String()),
		CreatedAt:     now,
		UpdatedAt:     now,
		PublishedAt:   &now,
	}

	err = a.contentRepo.CreateNews(ctx, &news)
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
			Data:    news,
		},
	)
}

func (a *ContentAPI) listKnowledge(c echo.Context) error {

	ctx := c.Request().Context()

	materials, err := a.contentRepo.ListKnowledge(
		ctx,
		model.KnowledgeCategory(c.QueryParam("category")),
		c.QueryParam("difficulty"),
	)

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
			Data:    materials,
		},
	)
}

func (a *ContentAPI) getKnowledge(c echo.Context) error {

	ctx := c.Request().Context()

	material, err := a.contentRepo.GetKnowledge(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrKnowledgeNotFound) {
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

	ref, _ := model.NewContentRef(model.KindKnowledge, material.ID)

	var viewer *string
	if id := currentUserID(c); id != "" {
		viewer = &id
	}

	_ = a.views.RecordView(ctx, ref, viewer, c.RealIP())

	if c.QueryParam("download") != "" {
		_ = a.contentRepo.IncrementDownloadCount(ctx, material.ID)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    material,
		},
	)
}

func (a *ContentAPI) createKnowledge(c echo.Context) error {

	ctx := c.Request().Context()

	var req model.KnowledgeCreateRequest
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

	difficulty := req.DifficultyLevel
	if difficulty == "" {
		difficulty = "beginner"
	}

	now := time.Now()
	material := model.KnowledgeBase{
		ID:              id.String(),
		Title:           req.Title,
		Content:         req.Content,
		Excerpt:         req.Excerpt,
		Category:        model.KnowledgeCategory(req.Category),
		IsPublic:        req.IsPublic,
		DifficultyLevel: difficulty,
		AuthorID:        currentUserID(c),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = a.contentRepo.CreateKnowledge(ctx, &material)
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
			Data:    material,
		},
	)
}
