// AngelaMos | 2026
// dates.go

package holiday

import (
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	isoDatePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	localDatePattern = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
	isoPrefixPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
)

// ParseDate normalizes a YYYY-MM-DD or DD/MM/YYYY input to YYYY-MM-DD.
// It reports false for any other shape and for impossible calendar dates.
func ParseDate(input string) (string, bool) {
	var iso string

	switch {
	case isoDatePattern.MatchString(input):
		iso = input
	case localDatePattern.MatchString(input):
		m := localDatePattern.FindStringSubmatch(input)
		iso = fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1])
	default:
		return "", false
	}

	if _, err := time.Parse(time.DateOnly, iso); err != nil {
		return "", false
	}

	return iso, true
}

// FormatDate renders an ISO date, optionally followed by a time part, as
// DD/MM/YYYY. Input of any other shape is returned unchanged.
func FormatDate(iso string) string {
	m := isoPrefixPattern.FindStringSubmatch(iso)
	if m == nil {
		return iso
	}
	return fmt.Sprintf("%s/%s/%s", m[3], m[2], m[1])
}

// RegisterValidation adds the "holidaydate" tag to v and teaches it to
// validate the value inside an Optional[string].
func RegisterValidation(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(optionalStringValue, Optional[string]{})
	return v.RegisterValidation("holidaydate", func(fl validator.FieldLevel) bool {
		_, ok := ParseDate(fl.Field().String())
		return ok
	})
}
