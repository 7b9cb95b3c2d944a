package apis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"volunteerhub-backend/cmd/volunteerhub/model"
	"volunteerhub-backend/cmd/volunteerhub/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepo implements IUserRepo for testing
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) CreateUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetUser(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) TouchActivity(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func authContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return c, rec
}

func TestAuthAPI_Signup_Success(t *testing.T) {
	body := `{
		"username": "masha",
		"email": "masha@example.com",
		"password": "s3cret-pass",
		"first_name": "Maria",
		"city": "Moscow"
	}`

	c, rec := authContext(t, http.MethodPost, "/api/v1/auth/signup", body)

	mockRepo := new(MockUserRepo)
	api := NewAuthAPI(mockRepo, "test-secret")

	mockRepo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Username == "masha" &&
			u.Role == model.RoleVolunteer &&
			u.IsActive &&
			u.PasswordHash != "" &&
			u.PasswordHash != "s3cret-pass" &&
			u.ID != ""
	})).Return(nil)

	err := api.signup(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	// the hash never leaves the server
	assert.NotContains(t, rec.Body.String(), "password_hash")

	mockRepo.AssertExpectations(t)
}

func TestAuthAPI_Signup_DuplicateUsername(t *testing.T) {
	body := `{
		"username": "masha",
		"email": "masha@example.com",
		"password": "s3cret-pass"
	}`

	c, rec := authContext(t, http.MethodPost, "/api/v1/auth/signup", body)

	mockRepo := new(MockUserRepo)
	api := NewAuthAPI(mockRepo, "test-secret")

	mockRepo.On("CreateUser", mock.Anything, mock.Anything).Return(repository.ErrUserExists)

	err := api.signup(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var response model.BaseResponse
	err = json.Unmarshal(rec.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, repository.ErrUserExists.Error(), response.Message)

	mockRepo.AssertExpectations(t)
}

func TestAuthAPI_Signup_WeakPasswordRejected(t *testing.T) {
	body := `{
		"username": "masha",
		"email": "masha@example.com",
		"password": "short"
	}`

	c, rec := authContext(t, http.MethodPost, "/api/v1/auth/signup", body)

	mockRepo := new(MockUserRepo)
	api := NewAuthAPI(mockRepo, "test-secret")

	err := api.signup(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	mockRepo.AssertExpectations(t)
}

func TestAuthAPI_Login_IssuesVerifiableToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	assert.NoError(t, err)

	user := &model.User{
		ID:           "user-1",
		Username:     "masha",
		PasswordHash: string(hash),
		Role:         model.RoleNKORepresentative,
		IsActive:     true,
	}

	c, rec := authContext(t, http.MethodPost, "/api/v1/auth/login", `{"username":"masha","password":"s3cret-pass"}`)

	mockRepo := new(MockUserRepo)
	api := NewAuthAPI(mockRepo, "test-secret")

	mockRepo.On("GetUserByUsername", mock.Anything, "masha").Return(user, nil)
	mockRepo.On("TouchActivity", mock.Anything, "user-1").Return(nil)

	err = api.login(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var response model.BaseResponse
	err = json.Unmarshal(rec.Body.Bytes(), &response)
	assert.NoError(t, err)

	loginData, err := json.Marshal(response.Data)
	assert.NoError(t, err)

	var login model.LoginResponse
	err = json.Unmarshal(loginData, &login)
	assert.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(login.Token, claims, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "user-1", claims["sub"])
	assert.Equal(t, "nko_representative", claims["role"])

	mockRepo.AssertExpectations(t)
}

func TestAuthAPI_Login_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	assert.NoError(t, err)

	user := &model.User{
		ID:           "user-1",
		Username:     "masha",
		PasswordHash: string(hash),
		Role:         model.RoleVolunteer,
		IsActive:     true,
	}

	c, rec := authContext(t, http.MethodPost, "/api/v1/auth/login", `{"username":"masha","password":"wrong"}`)

	mockRepo := new(MockUserRepo)
	api := NewAuthAPI(mockRepo, "test-secret")

	mockRepo.On("GetUserByUsername", mock.Anything, "masha").Return(user, nil)

	err = api.login(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	mockRepo.AssertExpectations(t)
}

func TestAuthAPI_Login_DeactivatedUser(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	assert.NoError(t, err)

	user := &model.User{
		ID:           "user-1",
		Username:     "masha",
		PasswordHash: string(hash),
		Role:         model.RoleVolunteer,
		IsActive:     false,
	}

	c, rec := authContext(t, http.MethodPost, "/api/v1/auth/login", `{"username":"masha","password":"s3cret-pass"}`)

	mockRepo := new(MockUserRepo)
	api := NewAuthAPI(mockRepo, "test-secret")

	mockRepo.On("GetUserByUsername", mock.Anything, "masha").Return(user, nil)

	err = api.login(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	mockRepo.AssertExpectations(t)
}

func issueToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)

	return signed
}

func TestAuthMiddleware_RequireAuth_SetsIdentity(t *testing.T) {
	e := echo.New()

	signed := issueToken(t, "test-secret", jwt.MapClaims{
		"sub":  "user-1",
		"role": "moderator",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	auth := NewAuthMiddleware("test-secret")

	handler := auth.RequireAuth(func(c echo.Context) error {
		assert.Equal(t, "user-1", currentUserID(c))
		assert.Equal(t, model.RoleModerator, currentRole(c))
		return c.NoContent(http.StatusOK)
	})

	err := handler(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_RequireAuth_Rejections(t *testing.T) {
	expired := issueToken(t, "test-secret", jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := issueToken(t, "other-secret", jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	noSubject := issueToken(t, "test-secret", jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"expired token", "Bearer " + expired},
		{"wrong key", "Bearer " + wrongKey},
		{"no subject", "Bearer " + noSubject},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()

			req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
			if tc.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			auth := NewAuthMiddleware("test-secret")

			called := false
			handler := auth.RequireAuth(func(c echo.Context) error {
				called = true
				return c.NoContent(http.StatusOK)
			})

			err := handler(c)

			assert.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called)
		})
	}
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	e := echo.New()
	auth := NewAuthMiddleware("test-secret")

	gate := auth.RequireRole(model.RoleModerator, model.RoleAdmin)
	handler := gate(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	t.Run("allowed role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/events/event-1/status", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set(ctxRole, model.RoleAdmin)

		err := handler(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("denied role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/events/event-1/status", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set(ctxRole, model.RoleVolunteer)

		err := handler(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
