// AngelaMos | 2026
// query.go

package holiday

import (
	"fmt"
	"math"
	"strings"

	"github.com/carterperez-dev/holidays-api/internal/core"
)

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)

// Filter holds the optional, AND-combined holiday predicates. Zero values
// mean "no constraint".
type Filter struct {
	Active    *bool
	Type      string
	Year      int
	Month     int
	StartDate string
	EndDate   string
	Search    string
}

// Normalize rewrites StartDate and EndDate to YYYY-MM-DD.
func (f *Filter) Normalize() error {
	if f.StartDate != "" {
		iso, ok := ParseDate(f.StartDate)
		if !ok {
			return core.ValidationError("Invalid start_date. Use DD/MM/YYYY or YYYY-MM-DD")
		}
		f.StartDate = iso
	}

	if f.EndDate != "" {
		iso, ok := ParseDate(f.EndDate)
		if !ok {
			return core.ValidationError("Invalid end_date. Use DD/MM/YYYY or YYYY-MM-DD")
		}
		f.EndDate = iso
	}

	return nil
}

// where renders the filter as a WHERE clause with $n placeholders. List and
// Count both go through here.
func (f Filter) where() (string, []any) {
	var conditions []string
	var args []any

	add := func(format string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(format, len(args)))
	}

	if f.Active != nil {
		add("active = $%d", *f.Active)
	}

	if f.Type != "" {
		add("type = $%d", f.Type)
	}

	if f.Year != 0 {
		add("to_char(date, 'YYYY') = $%d", fmt.Sprintf("%04d", f.Year))
	}

	if f.Month != 0 {
		add("to_char(date, 'MM') = $%d", fmt.Sprintf("%02d", f.Month))
	}

	if f.StartDate != "" {
		add("date >= $%d::date", f.StartDate)
	}

	if f.EndDate != "" {
		add("date <= $%d::date", f.EndDate)
	}

	if f.Search != "" {
		add("(name ILIKE $%d OR description ILIKE $%[1]d)", "%"+escapeLike(f.Search)+"%")
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

var orderColumns = map[string]string{
	"date":       "date",
	"name":       "name",
	"type":       "type",
	"created_at": "created_at",
}

// Ordering is the caller-selected sort. Unknown fields or directions fall
// back to date ASC instead of failing.
type Ordering struct {
	Field     string
	Direction string
}

func (o Ordering) clause() string {
	column, ok := orderColumns[o.Field]
	if !ok {
		column = "date"
	}

	direction := strings.ToUpper(o.Direction)
	if direction != "ASC" && direction != "DESC" {
		direction = "ASC"
	}

	return fmt.Sprintf("ORDER BY %s %s, id ASC", column, direction)
}

type ListParams struct {
	Filter
	Ordering
	Page  int
	Limit int

	// unpaged is set by the service for calendar lookups that need every
	// matching row. Client input never reaches it.
	unpaged bool
}

// Normalize applies paging defaults and rejects pages whose offset would
// not fit in an int.
func (p *ListParams) Normalize() error {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.unpaged {
		p.Limit = 0
		return nil
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Page > math.MaxInt/p.Limit {
		return core.ValidationError("Page is out of range")
	}
	return nil
}

func (p *ListParams) Offset() int {
	if p.unpaged {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
