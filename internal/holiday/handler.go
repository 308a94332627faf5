// AngelaMos | 2026
// handler.go

package holiday

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/holidays-api/internal/core"
	"github.com/carterperez-dev/holidays-api/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	v := core.NewValidator()
	if err := RegisterValidation(v); err != nil {
		panic(err)
	}

	return &Handler{
		service:   service,
		validator: v,
	}
}

// RegisterRoutes mounts the holiday endpoints. Reads need any active
// account; writes need an admin.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/holidays", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Get("/upcoming", h.Upcoming)
		r.Get("/year/{year}", h.ByYear)
		r.Get("/year/{year}/month/{month}", h.ByMonth)
		r.Get("/check/*", h.CheckDate)
		r.Get("/{holidayID}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", h.Create)
			r.Put("/{holidayID}", h.Update)
			r.Delete("/{holidayID}", h.Delete)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := ListParams{
		Filter: Filter{
			Active:    core.ParseBoolQuery(r, "active"),
			Type:      q.Get("type"),
			Year:      core.ParseIntQuery(r, "year", 0),
			Month:     core.ParseIntQuery(r, "month", 0),
			StartDate: q.Get("start_date"),
			EndDate:   q.Get("end_date"),
			Search:    q.Get("search"),
		},
		Ordering: Ordering{
			Field:     q.Get("order_by"),
			Direction: q.Get("order_dir"),
		},
		Page:  core.ParseIntQuery(r, "page", 1),
		Limit: core.ParseIntQuery(r, "limit", DefaultPageLimit),
	}
	if err := params.Normalize(); err != nil {
		core.JSONError(w, err)
		return
	}

	holidays, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Paginated(
		w,
		ToHolidayResponseList(holidays),
		params.Page,
		params.Limit,
		total,
	)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseIDParam(r, "holidayID", "holiday")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	holiday, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeHolidayError(w, err)
		return
	}

	core.OK(w, ToHolidayResponse(holiday))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	holiday, err := h.service.Create(
		r.Context(),
		middleware.GetUserID(r.Context()),
		req,
	)
	if err != nil {
		writeHolidayError(w, err)
		return
	}

	core.Created(w, ToHolidayResponse(holiday))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseIDParam(r, "holidayID", "holiday")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	var req UpdateHolidayRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	holiday, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		writeHolidayError(w, err)
		return
	}

	core.OK(w, ToHolidayResponse(holiday))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseIDParam(r, "holidayID", "holiday")
	if err != nil {
		core.JSONError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeHolidayError(w, err)
		return
	}

	core.Message(w, "Holiday deleted successfully")
}

// CheckDate accepts the date either percent-encoded in one segment or as
// the raw DD/MM/YYYY path.
func (h *Handler) CheckDate(w http.ResponseWriter, r *http.Request) {
	date, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil {
		core.BadRequest(w, "Invalid date format. Use DD/MM/YYYY or YYYY-MM-DD")
		return
	}

	result, err := h.service.CheckDate(r.Context(), date)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, CheckDateResponse{
		Date:      result.Date,
		IsHoliday: result.IsHoliday,
		Holidays:  ToHolidayResponseList(result.Holidays),
	})
}

func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
	days := DefaultUpcomingDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			core.BadRequest(w, "Days must be a non-negative integer")
			return
		}
		days = parsed
	}

	holidays, err := h.service.Upcoming(r.Context(), days)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToHolidayResponseList(holidays))
}

func (h *Handler) ByYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		core.BadRequest(w, "Invalid year")
		return
	}

	holidays, err := h.service.ByYear(r.Context(), year)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToHolidayResponseList(holidays))
}

func (h *Handler) ByMonth(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		core.BadRequest(w, "Invalid year")
		return
	}

	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		core.BadRequest(w, "Invalid month")
		return
	}

	holidays, err := h.service.ByMonth(r.Context(), year, month)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToHolidayResponseList(holidays))
}

func writeHolidayError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "holiday")
	case errors.Is(err, core.ErrForeignKey):
		core.JSONError(w, core.InvalidReferenceError())
	default:
		core.JSONError(w, err)
	}
}
