package apis

import (
	"context"
	"errors"
	"net/http"
	"time"

	"volunteerhub-backend/cmd/volunteerhub/model"
	"volunteerhub-backend/cmd/volunteerhub/repository"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

type IUserRepo interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	TouchActivity(ctx context.Context, id string) error
}

type AuthAPI struct {
	userRepo IUserRepo
	secret   []byte
	tokenTTL time.Duration
	validate *validator.Validate
}

func NewAuthAPI(userRepo IUserRepo, secret string) *AuthAPI {
	return &AuthAPI{
		userRepo: userRepo,
		secret:   []byte(secret),
		tokenTTL: 24 * time.Hour,
		validate: validator.New(),
	}
}

func (a *AuthAPI) Setup(g *echo.Group, auth *AuthMiddleware) {
	g.POST("/auth/signup", a.signup)
	g.POST("/auth/login", a.login)
	g.GET("/me", a.me, auth.RequireAuth)
}

func (a *AuthAPI) signup(c echo.Context) error {

	ctx := c.Request().Context()

	var req model.SignupRequest
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

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
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

	role := model.RoleVolunteer
	if req.Role != "" {
		role = model.UserRole(req.Role)
	}

	now := time.Now()
	user := model.User{
		ID:           id.String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		City:         req.City,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		LastActivity: now,
	}

	err = a.userRepo.CreateUser(ctx, &user)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return c.JSON(
				http.StatusConflict,
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
			Data:    user,
		},
	)
}

func (a *AuthAPI) login(c echo.Context) error {

	ctx := c.Request().Context()

	var req model.LoginRequest
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

	user, err := a.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return c.JSON(
			http.StatusUnauthorized,
			model.BaseResponse{
				Message: "invalid credentials",
			},
		)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if err != nil || !user.IsActive {
		return c.JSON(
			http.StatusUnauthorized,
			model.BaseResponse{
				Message: "invalid credentials",
			},
		)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(a.tokenTTL).Unix(),
	})

	signed, err := token.SignedString(a.secret)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	_ = a.userRepo.TouchActivity(ctx, user.ID)

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data: model.LoginResponse{
				Token: signed,
				User:  *user,
			},
		},
	)
}

func (a *AuthAPI) me(c echo.Context) error {

	ctx := c.Request().Context()

	user, err := a.userRepo.GetUser(ctx, currentUserID(c))
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
			Data:    user,
		},
	)
}
