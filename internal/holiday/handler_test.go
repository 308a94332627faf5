// AngelaMos | 2026
// handler_test.go

package holiday

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
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
	Message    string          `json:"message"`
	Pagination *struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
		Total int `json:"total"`
		Pages int `json:"pages"`
	} `json:"pagination"`
}

func newTestRouter(repo Repository, identity *middleware.Identity) http.Handler {
	authenticate := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithIdentity(r.Context(), identity)))
		})
	}

	r := chi.NewRouter()
	NewHandler(NewService(repo)).RegisterRoutes(r, authenticate, middleware.RequireAdmin)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

var (
	adminIdentity = &middleware.Identity{ID: 1, Role: middleware.RoleAdmin, Active: true}
	userIdentity  = &middleware.Identity{ID: 2, Role: middleware.RoleUser, Active: true}
)

func TestHandlerCreate_AdminOnly(t *testing.T) {
	body := `{"name":"Natal","date":"25/12/2025"}`

	rec, env := do(t, newTestRouter(newFakeRepo(), userIdentity), http.MethodPost, "/holidays", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied. Admin privileges required.", env.Error)

	rec, env = do(t, newTestRouter(newFakeRepo(), adminIdentity), http.MethodPost, "/holidays", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)

	var got HolidayResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "25/12/2025", got.Date)
	assert.Equal(t, "2025-12-25", got.DateISO)
	assert.Equal(t, TypeNational, got.Type)
	require.NotNil(t, got.CreatedBy)
	assert.Equal(t, adminIdentity.ID, *got.CreatedBy)
}

func TestHandlerCreate_Validation(t *testing.T) {
	router := newTestRouter(newFakeRepo(), adminIdentity)

	rec, env := do(t, router, http.MethodPost, "/holidays", `{"date":"25/12/2025"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name is required", env.Error)

	rec, env = do(t, router, http.MethodPost, "/holidays", `{"name":"X","date":"12/25/2025"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid date format. Use DD/MM/YYYY or YYYY-MM-DD", env.Error)

	rec, env = do(t, router, http.MethodPost, "/holidays", `{"name":"X","date":"2025-12-25","type":"federal"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Error, "Type must be one of")

	rec, _ = do(t, router, http.MethodPost, "/holidays", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerGet(t *testing.T) {
	router := newTestRouter(newFakeRepo(Holiday{ID: 4, Name: "Tiradentes", Date: "2025-04-21", Active: true}), userIdentity)

	rec, env := do(t, router, http.MethodGet, "/holidays/4", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got HolidayResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "21/04/2025", got.Date)

	rec, env = do(t, router, http.MethodGet, "/holidays/404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Holiday not found", env.Error)

	rec, env = do(t, router, http.MethodGet, "/holidays/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid holiday ID", env.Error)
}

func TestHandlerList_Pagination(t *testing.T) {
	repo := newFakeRepo(
		Holiday{ID: 1, Name: "A", Date: "2025-01-01", Active: true},
		Holiday{ID: 2, Name: "B", Date: "2025-02-01", Active: true},
		Holiday{ID: 3, Name: "C", Date: "2025-03-01", Active: false},
	)
	router := newTestRouter(repo, userIdentity)

	rec, env := do(t, router, http.MethodGet, "/holidays?active=true&page=1&limit=2&order_by=bogus", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 1, env.Pagination.Page)
	assert.Equal(t, 2, env.Pagination.Limit)
	assert.Equal(t, 2, env.Pagination.Total)
	assert.Equal(t, 1, env.Pagination.Pages)

	require.Len(t, repo.lists, 1)
	assert.Equal(t, "bogus", repo.lists[0].Field)
	require.NotNil(t, repo.lists[0].Active)
}

func TestHandlerUpdate_Description(t *testing.T) {
	desc := "Dia de Tiradentes"
	repo := newFakeRepo(Holiday{ID: 4, Name: "Tiradentes", Date: "2025-04-21", Description: &desc, Active: true, Type: TypeNational})
	router := newTestRouter(repo, adminIdentity)

	rec, env := do(t, router, http.MethodPut, "/holidays/4", `{"description":"`+strings.Repeat("x", 2001)+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Description must be at most 2000 characters", env.Error)

	rec, env = do(t, router, http.MethodPut, "/holidays/4", `{"description":null}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got HolidayResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Nil(t, got.Description)
}

func TestHandlerList_ClientCannotRequestUnpaged(t *testing.T) {
	repo := newFakeRepo(
		Holiday{ID: 1, Name: "A", Date: "2025-01-01", Active: true},
		Holiday{ID: 2, Name: "B", Date: "2025-02-01", Active: true},
	)
	router := newTestRouter(repo, userIdentity)

	rec, env := do(t, router, http.MethodGet, "/holidays?limit=-1&page=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 3, env.Pagination.Page)
	assert.Equal(t, DefaultPageLimit, env.Pagination.Limit)
	assert.Equal(t, 1, env.Pagination.Pages)

	require.Len(t, repo.lists, 1)
	assert.False(t, repo.lists[0].unpaged)
	assert.Equal(t, DefaultPageLimit, repo.lists[0].Limit)
	assert.Equal(t, 2*DefaultPageLimit, repo.lists[0].Offset())
}

func TestHandlerList_PageOutOfRange(t *testing.T) {
	repo := newFakeRepo()
	router := newTestRouter(repo, userIdentity)

	rec, env := do(t, router, http.MethodGet, "/holidays?page=4611686018427387904&limit=100", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Page is out of range", env.Error)
	assert.Empty(t, repo.lists)
}

func TestHandlerList_BadStartDate(t *testing.T) {
	rec, env := do(t, newTestRouter(newFakeRepo(), userIdentity), http.MethodGet, "/holidays?start_date=soon", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Error, "start_date")
}

func TestHandlerUpdateAndDelete(t *testing.T) {
	repo := newFakeRepo(Holiday{ID: 9, Name: "Old", Date: "2025-01-01", Active: true, Type: TypeNational})
	router := newTestRouter(repo, adminIdentity)

	rec, env := do(t, router, http.MethodPut, "/holidays/9", `{"name":"New","active":false}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got HolidayResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "New", got.Name)
	assert.False(t, got.Active)
	assert.Equal(t, "01/01/2025", got.Date)

	rec, env = do(t, router, http.MethodDelete, "/holidays/9", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Holiday deleted successfully", env.Message)

	rec, _ = do(t, router, http.MethodDelete, "/holidays/9", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerCheckDate(t *testing.T) {
	repo := newFakeRepo(Holiday{ID: 1, Name: "Natal", Date: "2025-12-25", Active: true})
	router := newTestRouter(repo, userIdentity)

	for _, target := range []string{
		"/holidays/check/25%2F12%2F2025",
		"/holidays/check/25/12/2025",
		"/holidays/check/2025-12-25",
	} {
		rec, env := do(t, router, http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, rec.Code, target)

		var got CheckDateResponse
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.True(t, got.IsHoliday, target)
		assert.Len(t, got.Holidays, 1, target)
	}

	rec, _ := do(t, router, http.MethodGet, "/holidays/check/31-12-2025", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerUpcoming_BadDays(t *testing.T) {
	router := newTestRouter(newFakeRepo(), userIdentity)

	rec, env := do(t, router, http.MethodGet, "/holidays/upcoming?days=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Days must be a non-negative integer", env.Error)

	rec, _ = do(t, router, http.MethodGet, "/holidays/upcoming?days=-3", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, router, http.MethodGet, "/holidays/upcoming", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlerByYearAndMonth(t *testing.T) {
	router := newTestRouter(newFakeRepo(), userIdentity)

	rec, _ := do(t, router, http.MethodGet, "/holidays/year/2025", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, router, http.MethodGet, "/holidays/year/2025/month/04", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := do(t, router, http.MethodGet, "/holidays/year/abcd", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid year", env.Error)

	rec, env = do(t, router, http.MethodGet, "/holidays/year/2025/month/13", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid month", env.Error)
}
