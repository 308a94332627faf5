// AngelaMos | 2026
// repository.go

package holiday

import (
	"context"
	"fmt"
	"strings"

	"github.com/carterperez-dev/holidays-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, h *Holiday) error
	GetByID(ctx context.Context, id int64) (*Holiday, error)
	Update(ctx context.Context, id int64, changes Changes) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, params ListParams) ([]Holiday, error)
	Count(ctx context.Context, filter Filter) (int, error)
	ExistsByNameAndDate(ctx context.Context, name, date string) (bool, error)
}

// Changes is a partial update. Only non-nil fields are written, and
// Description only when Set.
type Changes struct {
	Name        *string
	Date        *string
	Type        *string
	Description Optional[string]
	Recurring   *bool
	Active      *bool
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const holidayColumns = `id, name, to_char(date, 'YYYY-MM-DD') AS date, type,
		       description, recurring, active, created_by, created_at, updated_at`

func (r *repository) Create(ctx context.Context, h *Holiday) error {
	query := `
		INSERT INTO holidays (name, date, type, description, recurring, created_by)
		VALUES ($1, $2::date, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.GetContext(ctx, &h.ID, query,
		h.Name,
		h.Date,
		h.Type,
		h.Description,
		h.Recurring,
		h.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create holiday: %w", core.ClassifyStorageError(err))
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Holiday, error) {
	query := `SELECT ` + holidayColumns + ` FROM holidays WHERE id = $1`

	var h Holiday
	if err := r.db.GetContext(ctx, &h, query, id); err != nil {
		return nil, fmt.Errorf("get holiday: %w", core.ClassifyStorageError(err))
	}

	return &h, nil
}

func (r *repository) Update(ctx context.Context, id int64, changes Changes) error {
	var sets []string
	var args []any

	set := func(column string, arg any) {
		args = append(args, arg)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if changes.Name != nil {
		set("name", *changes.Name)
	}
	if changes.Date != nil {
		args = append(args, *changes.Date)
		sets = append(sets, fmt.Sprintf("date = $%d::date", len(args)))
	}
	if changes.Type != nil {
		set("type", *changes.Type)
	}
	if changes.Description.Set {
		set("description", changes.Description.Value)
	}
	if changes.Recurring != nil {
		set("recurring", *changes.Recurring)
	}
	if changes.Active != nil {
		set("active", *changes.Active)
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE holidays SET %s WHERE id = $%d",
		strings.Join(sets, ", "),
		len(args),
	)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update holiday: %w", core.ClassifyStorageError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update holiday: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update holiday: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete holiday: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete holiday: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete holiday: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
) ([]Holiday, error) {
	if err := params.Normalize(); err != nil {
		return nil, err
	}

	whereClause, args := params.Filter.where()

	query := fmt.Sprintf(`
		SELECT %s
		FROM holidays
		%s
		%s`,
		holidayColumns, whereClause, params.Ordering.clause())

	if !params.unpaged {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, params.Limit, params.Offset())
	}

	holidays := []Holiday{}
	if err := r.db.SelectContext(ctx, &holidays, query, args...); err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}

	return holidays, nil
}

func (r *repository) Count(ctx context.Context, filter Filter) (int, error) {
	whereClause, args := filter.where()

	var total int
	query := "SELECT COUNT(*) FROM holidays " + whereClause
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count holidays: %w", err)
	}

	return total, nil
}

func (r *repository) ExistsByNameAndDate(
	ctx context.Context,
	name, date string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM holidays WHERE name = $1 AND date = $2::date)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, name, date); err != nil {
		return false, fmt.Errorf("check holiday exists: %w", err)
	}

	return exists, nil
}
