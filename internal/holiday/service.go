// AngelaMos | 2026
// service.go

package holiday

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/holidays-api/internal/core"
)

const (
	DefaultUpcomingDays = 30
	yearPageLimit       = 366
	monthPageLimit      = 31
	minYear             = 1900
	maxYear             = 2100
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// List returns one page of holidays and the total matching the same filter.
func (s *Service) List(
	ctx context.Context,
	params ListParams,
) ([]Holiday, int, error) {
	if err := params.Filter.Normalize(); err != nil {
		return nil, 0, err
	}
	if err := params.Normalize(); err != nil {
		return nil, 0, err
	}

	holidays, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, params.Filter)
	if err != nil {
		return nil, 0, err
	}

	core.SetSpanAttributes(ctx,
		core.AttrQueryPage.Int(params.Page),
		core.AttrQueryLimit.Int(params.Limit),
		core.AttrQueryOrder.String(params.Ordering.clause()),
		core.AttrQueryTotal.Int(total),
	)

	return holidays, total, nil
}

func (s *Service) Count(ctx context.Context, filter Filter) (int, error) {
	if err := filter.Normalize(); err != nil {
		return 0, err
	}
	return s.repo.Count(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id int64) (*Holiday, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a holiday attributed to actorID and returns the row as read
// back from storage.
func (s *Service) Create(
	ctx context.Context,
	actorID int64,
	req CreateHolidayRequest,
) (*Holiday, error) {
	date, ok := ParseDate(req.Date)
	if !ok {
		return nil, core.ValidationError("Invalid date format. Use DD/MM/YYYY or YYYY-MM-DD")
	}

	h := &Holiday{
		Name:        req.Name,
		Date:        date,
		Type:        req.Type,
		Description: req.Description,
		Recurring:   true,
	}

	if h.Type == "" {
		h.Type = TypeNational
	}
	if req.Recurring != nil {
		h.Recurring = *req.Recurring
	}
	if actorID > 0 {
		h.CreatedBy = &actorID
	}

	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}

	core.AddSpanEvent(ctx, "holiday.created", holidayAttributes(h)...)

	return s.repo.GetByID(ctx, h.ID)
}

func (s *Service) Update(
	ctx context.Context,
	id int64,
	req UpdateHolidayRequest,
) (*Holiday, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	changes := Changes{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Recurring:   req.Recurring,
		Active:      req.Active,
	}

	if req.Date != nil {
		date, ok := ParseDate(*req.Date)
		if !ok {
			return nil, core.ValidationError("Invalid date format. Use DD/MM/YYYY or YYYY-MM-DD")
		}
		changes.Date = &date
	}

	if err := s.repo.Update(ctx, id, changes); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	core.AddSpanEvent(ctx, "holiday.updated", holidayAttributes(updated)...)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	core.AddSpanEvent(ctx, "holiday.deleted", core.AttrHolidayID.Int64(id))
	return nil
}

func holidayAttributes(h *Holiday) []attribute.KeyValue {
	return []attribute.KeyValue{
		core.AttrHolidayID.Int64(h.ID),
		core.AttrHolidayDate.String(h.Date),
		core.AttrHolidayType.String(h.Type),
	}
}

// FindByDate returns the active holidays on one calendar day.
func (s *Service) FindByDate(ctx context.Context, date string) ([]Holiday, error) {
	filter, err := dayFilter(date)
	if err != nil {
		return nil, err
	}

	return s.repo.List(ctx, ListParams{
		Filter:   filter,
		Ordering: Ordering{Field: "date", Direction: "ASC"},
		unpaged:  true,
	})
}

func (s *Service) IsHoliday(ctx context.Context, date string) (bool, error) {
	filter, err := dayFilter(date)
	if err != nil {
		return false, err
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return total > 0, nil
}

type CheckDateResult struct {
	Date      string
	IsHoliday bool
	Holidays  []Holiday
}

func (s *Service) CheckDate(ctx context.Context, date string) (*CheckDateResult, error) {
	isHoliday, err := s.IsHoliday(ctx, date)
	if err != nil {
		return nil, err
	}

	holidays, err := s.FindByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	return &CheckDateResult{
		Date:      date,
		IsHoliday: isHoliday,
		Holidays:  holidays,
	}, nil
}

// Upcoming returns active holidays from today through today+days inclusive,
// in ascending date order. Today is taken in UTC.
func (s *Service) Upcoming(ctx context.Context, days int) ([]Holiday, error) {
	if days < 0 {
		return nil, core.ValidationError("Days must be a non-negative integer")
	}

	today := s.now().UTC()
	active := true

	return s.repo.List(ctx, ListParams{
		Filter: Filter{
			Active:    &active,
			StartDate: today.Format(time.DateOnly),
			EndDate:   today.AddDate(0, 0, days).Format(time.DateOnly),
		},
		Ordering: Ordering{Field: "date", Direction: "ASC"},
		unpaged:  true,
	})
}

func (s *Service) ByYear(ctx context.Context, year int) ([]Holiday, error) {
	if year < minYear || year > maxYear {
		return nil, core.ValidationError("Invalid year")
	}

	active := true
	return s.repo.List(ctx, ListParams{
		Filter:   Filter{Active: &active, Year: year},
		Ordering: Ordering{Field: "date", Direction: "ASC"},
		Limit:    yearPageLimit,
	})
}

func (s *Service) ByMonth(ctx context.Context, year, month int) ([]Holiday, error) {
	if year < minYear || year > maxYear {
		return nil, core.ValidationError("Invalid year")
	}
	if month < 1 || month > 12 {
		return nil, core.ValidationError("Invalid month")
	}

	active := true
	return s.repo.List(ctx, ListParams{
		Filter:   Filter{Active: &active, Year: year, Month: month},
		Ordering: Ordering{Field: "date", Direction: "ASC"},
		Limit:    monthPageLimit,
	})
}

func dayFilter(date string) (Filter, error) {
	iso, ok := ParseDate(date)
	if !ok {
		return Filter{}, fmt.Errorf(
			"parse date %q: %w",
			date,
			core.ValidationError("Invalid date format. Use DD/MM/YYYY or YYYY-MM-DD"),
		)
	}

	active := true
	return Filter{Active: &active, StartDate: iso, EndDate: iso}, nil
}
