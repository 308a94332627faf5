// AngelaMos | 2026
// handler_test.go

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/holidays-api/internal/middleware"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

type authFixture struct {
	router http.Handler
	users  *fakeUsers
	jwt    *JWTManager
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	users := newFakeUsers(t)
	jwt := newTestJWT(t)

	r := chi.NewRouter()
	NewHandler(NewService(jwt, users)).RegisterRoutes(
		r,
		middleware.Authenticator(jwt, users),
		middleware.OptionalAuth(jwt, users),
	)

	return &authFixture{router: r, users: users, jwt: jwt}
}

func (f *authFixture) tokenFor(t *testing.T, u *UserInfo) string {
	t.Helper()
	issued, err := f.jwt.CreateAccessToken(TokenClaims{UserID: u.ID, Email: u.Email, Role: u.Role})
	require.NoError(t, err)
	return issued.Token
}

func (f *authFixture) do(t *testing.T, method, target, token, body string) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestHandlerLogin(t *testing.T) {
	f := newAuthFixture(t)
	f.users.add(t, "admin@holidays.local", "teste", middleware.RoleAdmin, true)

	code, env := f.do(t, http.MethodPost, "/auth/login", "", `{"email":"admin@holidays.local","password":"teste"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Login successful", env.Message)

	var tok TokenResponse
	require.NoError(t, json.Unmarshal(env.Data, &tok))
	assert.NotEmpty(t, tok.Token)
	assert.Equal(t, "admin@holidays.local", tok.User.Email)

	code, env = f.do(t, http.MethodPost, "/auth/login", "", `{"email":"admin@holidays.local","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password", env.Error)

	code, env = f.do(t, http.MethodPost, "/auth/login", "", `{"email":"not-an-email","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Valid email is required", env.Error)
}

func TestHandlerLogin_Deactivated(t *testing.T) {
	f := newAuthFixture(t)
	f.users.add(t, "old@holidays.local", "teste123", middleware.RoleUser, false)

	code, env := f.do(t, http.MethodPost, "/auth/login", "", `{"email":"old@holidays.local","password":"teste123"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "User account is deactivated.", env.Error)

	// The password is checked first, so a wrong guess does not reveal that
	// the account exists but is deactivated.
	code, env = f.do(t, http.MethodPost, "/auth/login", "", `{"email":"old@holidays.local","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password", env.Error)
}

func TestHandlerRegister(t *testing.T) {
	f := newAuthFixture(t)
	admin := f.users.add(t, "admin@holidays.local", "teste", middleware.RoleAdmin, true)

	code, env := f.do(t, http.MethodPost, "/auth/register", "", `{"email":"new@x.io","password":"secret","name":"New","role":"admin"}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "User registered successfully", env.Message)

	var u UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &u))
	assert.Equal(t, middleware.RoleUser, u.Role)

	code, env = f.do(t, http.MethodPost, "/auth/register", f.tokenFor(t, admin), `{"email":"boss@x.io","password":"secret","name":"Boss","role":"admin"}`)
	require.Equal(t, http.StatusCreated, code)
	require.NoError(t, json.Unmarshal(env.Data, &u))
	assert.Equal(t, middleware.RoleAdmin, u.Role)

	code, env = f.do(t, http.MethodPost, "/auth/register", "", `{"email":"new@x.io","password":"secret","name":"Again"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Email already registered", env.Error)

	code, env = f.do(t, http.MethodPost, "/auth/register", "", `{"email":"short@x.io","password":"123","name":"S"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Password must be at least 6 characters", env.Error)
}

func TestHandlerProfile(t *testing.T) {
	f := newAuthFixture(t)
	u := f.users.add(t, "user@holidays.local", "teste123", middleware.RoleUser, true)
	f.users.add(t, "taken@holidays.local", "teste123", middleware.RoleUser, true)
	token := f.tokenFor(t, u)

	code, env := f.do(t, http.MethodGet, "/auth/profile", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Access denied. No token provided.", env.Error)

	code, env = f.do(t, http.MethodGet, "/auth/profile", token, "")
	require.Equal(t, http.StatusOK, code)
	var got UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, u.ID, got.ID)

	code, env = f.do(t, http.MethodPut, "/auth/profile", token, `{"name":"Renamed"}`)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Renamed", got.Name)

	code, _ = f.do(t, http.MethodPut, "/auth/profile", token, `{"email":"taken@holidays.local"}`)
	assert.Equal(t, http.StatusConflict, code)
}

func TestHandlerChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	u := f.users.add(t, "user@holidays.local", "teste123", middleware.RoleUser, true)
	token := f.tokenFor(t, u)

	code, env := f.do(t, http.MethodPost, "/auth/change-password", token, `{"currentPassword":"bad","newPassword":"another"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Current password is incorrect", env.Error)

	code, env = f.do(t, http.MethodPost, "/auth/change-password", token, `{"currentPassword":"teste123","newPassword":"another"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Password changed successfully", env.Message)
}

func TestHandlerRefresh(t *testing.T) {
	f := newAuthFixture(t)
	u := f.users.add(t, "user@holidays.local", "teste123", middleware.RoleUser, true)

	code, env := f.do(t, http.MethodPost, "/auth/refresh", f.tokenFor(t, u), "")
	require.Equal(t, http.StatusOK, code)

	var tok TokenResponse
	require.NoError(t, json.Unmarshal(env.Data, &tok))
	_, err := f.jwt.VerifyAccessToken(t.Context(), tok.Token)
	assert.NoError(t, err)
}

func TestHandlerDeactivatedTokenRejected(t *testing.T) {
	f := newAuthFixture(t)
	u := f.users.add(t, "user@holidays.local", "teste123", middleware.RoleUser, true)
	token := f.tokenFor(t, u)
	u.Active = false

	code, env := f.do(t, http.MethodGet, "/auth/profile", token, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "User account is deactivated.", env.Error)
}
