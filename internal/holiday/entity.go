// AngelaMos | 2026
// entity.go

package holiday

import (
	"time"
)

// Holiday mirrors a stored row. Date is always the canonical YYYY-MM-DD
// form.
type Holiday struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Date        string    `db:"date"`
	Type        string    `db:"type"`
	Description *string   `db:"description"`
	Recurring   bool      `db:"recurring"`
	Active      bool      `db:"active"`
	CreatedBy   *int64    `db:"created_by"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

const (
	TypeNational  = "national"
	TypeState     = "state"
	TypeMunicipal = "municipal"
	TypeOptional  = "optional"
)
