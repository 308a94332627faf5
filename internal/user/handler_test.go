// AngelaMos | 2026
// handler_test.go

package user

import (
	"encoding/json"
	"fmt"
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

func newTestRouter(repo Repository, identity *middleware.Identity) http.Handler {
	authenticate := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithIdentity(r.Context(), identity)))
		})
	}

	r := chi.NewRouter()
	NewHandler(NewService(repo)).RegisterRoutes(
		r,
		authenticate,
		middleware.RequireAdmin,
		middleware.RequireSelfOrAdmin("userID"),
	)
	return r
}

func call(t *testing.T, h http.Handler, method, target, body string) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestHandler_NonAdminForbidden(t *testing.T) {
	router := newTestRouter(newFakeRepo(), &middleware.Identity{ID: 2, Role: RoleUser, Active: true})

	code, env := call(t, router, http.MethodGet, "/users", "")
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Access denied. Admin privileges required.", env.Error)
}

func TestHandler_GetSelfOrAdmin(t *testing.T) {
	repo := newFakeRepo()
	admin := repo.seed(User{Email: "admin@b.c", Role: RoleAdmin, Active: true})
	member := repo.seed(User{Email: "m@b.c", Role: RoleUser, Active: true})
	self := &middleware.Identity{ID: member.ID, Role: RoleUser, Active: true}
	router := newTestRouter(repo, self)

	code, env := call(t, router, http.MethodGet, fmt.Sprintf("/users/%d", member.ID), "")
	require.Equal(t, http.StatusOK, code)
	var got UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "m@b.c", got.Email)

	code, env = call(t, router, http.MethodGet, fmt.Sprintf("/users/%d", admin.ID), "")
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Access denied. You can only access your own data.", env.Error)

	code, _ = call(t, router, http.MethodPut, fmt.Sprintf("/users/%d", member.ID), `{"name":"Me"}`)
	assert.Equal(t, http.StatusForbidden, code)

	adminRouter := newTestRouter(repo, &middleware.Identity{ID: admin.ID, Role: RoleAdmin, Active: true})
	code, _ = call(t, adminRouter, http.MethodGet, fmt.Sprintf("/users/%d", member.ID), "")
	assert.Equal(t, http.StatusOK, code)
}

func TestHandler_ListPageOutOfRange(t *testing.T) {
	router := newTestRouter(newFakeRepo(), &middleware.Identity{ID: 1, Role: RoleAdmin, Active: true})

	code, env := call(t, router, http.MethodGet, "/users?page=4611686018427387904", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Page is out of range", env.Error)
}

func TestHandler_CreateAndList(t *testing.T) {
	repo := newFakeRepo()
	admin := repo.seed(User{Email: "admin@b.c", Role: RoleAdmin, Active: true})
	router := newTestRouter(repo, &middleware.Identity{ID: admin.ID, Role: RoleAdmin, Active: true})

	code, env := call(t, router, http.MethodPost, "/users", `{"email":"u@b.c","password":"secret","name":"U"}`)
	require.Equal(t, http.StatusCreated, code)

	var created UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, RoleUser, created.Role)
	assert.NotContains(t, string(env.Data), "password")

	code, env = call(t, router, http.MethodPost, "/users", `{"email":"u@b.c","password":"secret","name":"U"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Email already registered", env.Error)

	code, env = call(t, router, http.MethodGet, "/users?active=true", "")
	require.Equal(t, http.StatusOK, code)
	var list []UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 2)
}

func TestHandler_DeleteSelf(t *testing.T) {
	repo := newFakeRepo()
	admin := repo.seed(User{Email: "admin@b.c", Role: RoleAdmin, Active: true})
	router := newTestRouter(repo, &middleware.Identity{ID: admin.ID, Role: RoleAdmin, Active: true})

	code, env := call(t, router, http.MethodDelete, "/users/1", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Cannot delete your own account", env.Error)

	code, env = call(t, router, http.MethodDelete, "/users/77", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "User not found", env.Error)
}

func TestHandler_UpdateAndReset(t *testing.T) {
	repo := newFakeRepo()
	admin := repo.seed(User{Email: "admin@b.c", Role: RoleAdmin, Active: true})
	target := repo.seed(User{Email: "u@b.c", Name: "U", Role: RoleUser, Active: true})
	router := newTestRouter(repo, &middleware.Identity{ID: admin.ID, Role: RoleAdmin, Active: true})

	code, env := call(t, router, http.MethodPut, "/users/2", `{"role":"admin"}`)
	require.Equal(t, http.StatusOK, code)
	var got UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, RoleAdmin, got.Role)
	assert.Equal(t, "U", got.Name)

	code, _ = call(t, router, http.MethodPut, "/users/2", `{"role":"root"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = call(t, router, http.MethodPost, "/users/2/reset-password", `{"newPassword":"123"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "NewPassword must be at least 6 characters", env.Error)

	code, _ = call(t, router, http.MethodPost, "/users/2/reset-password", `{"newPassword":"123456"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, repo.pwUpdates[target.ID])
}
