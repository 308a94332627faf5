// AngelaMos | 2026
// dto.go

package holiday

import (
	"encoding/json"
	"reflect"
	"time"
)

type CreateHolidayRequest struct {
	Name        string  `json:"name"        validate:"required,min=1,max=255"`
	Date        string  `json:"date"        validate:"required,holidaydate"`
	Type        string  `json:"type"        validate:"omitempty,oneof=national state municipal optional"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Recurring   *bool   `json:"recurring"`
}

// Optional tells a JSON field that was left out apart from one sent as null.
type Optional[T any] struct {
	Value *T
	Set   bool
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// optionalStringValue exposes an Optional[string] to validator tags.
func optionalStringValue(field reflect.Value) any {
	o, ok := field.Interface().(Optional[string])
	if !ok || o.Value == nil {
		return nil
	}
	return *o.Value
}

// UpdateHolidayRequest carries only the supplied fields. Nil fields are left
// untouched. Description may be sent as null to clear it.
type UpdateHolidayRequest struct {
	Name        *string          `json:"name,omitempty"      validate:"omitempty,min=1,max=255"`
	Date        *string          `json:"date,omitempty"      validate:"omitempty,holidaydate"`
	Type        *string          `json:"type,omitempty"      validate:"omitempty,oneof=national state municipal optional"`
	Description Optional[string] `json:"description"         validate:"omitempty,max=2000"`
	Recurring   *bool            `json:"recurring,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

type HolidayResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Date        string    `json:"date"`
	DateISO     string    `json:"date_iso"`
	Type        string    `json:"type"`
	Description *string   `json:"description"`
	Recurring   bool      `json:"recurring"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CreatedBy   *int64    `json:"created_by"`
}

type CheckDateResponse struct {
	Date      string            `json:"date"`
	IsHoliday bool              `json:"is_holiday"`
	Holidays  []HolidayResponse `json:"holidays"`
}

func ToHolidayResponse(h *Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID,
		Name:        h.Name,
		Date:        FormatDate(h.Date),
		DateISO:     h.Date,
		Type:        h.Type,
		Description: h.Description,
		Recurring:   h.Recurring,
		Active:      h.Active,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
		CreatedBy:   h.CreatedBy,
	}
}

func ToHolidayResponseList(holidays []Holiday) []HolidayResponse {
	responses := make([]HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, ToHolidayResponse(&h))
	}
	return responses
}
