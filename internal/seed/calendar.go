// AngelaMos | 2026
// calendar.go

package seed

import (
	"fmt"

	"github.com/carterperez-dev/holidays-api/internal/holiday"
)

type calendarEntry struct {
	name        string
	date        string
	description string
	recurring   bool
}

// brazilianNational lists the 2024-2026 national holidays, one row per
// yearly occurrence.
var brazilianNational = []calendarEntry{
	{"New Year", "01/01/2024", "New Year's Day", true},
	{"Carnival", "12/02/2024", "Carnival Monday", false},
	{"Carnival", "13/02/2024", "Carnival Tuesday (Shrove Tuesday)", false},
	{"Good Friday", "29/03/2024", "Good Friday", false},
	{"Tiradentes Day", "21/04/2024", "Tiradentes Day", true},
	{"Labor Day", "01/05/2024", "International Workers' Day", true},
	{"Corpus Christi", "30/05/2024", "Corpus Christi", false},
	{"Independence Day", "07/09/2024", "Brazilian Independence Day", true},
	{"Our Lady of Aparecida", "12/10/2024", "Patron Saint of Brazil", true},
	{"All Souls' Day", "02/11/2024", "Day of the Dead", true},
	{"Republic Day", "15/11/2024", "Proclamation of the Republic", true},
	{"National Day of Zumbi", "20/11/2024", "Black Consciousness Day", true},
	{"Christmas", "25/12/2024", "Christmas Day", true},
	{"New Year", "01/01/2025", "New Year's Day", true},
	{"Carnival", "03/03/2025", "Carnival Monday", false},
	{"Carnival", "04/03/2025", "Carnival Tuesday (Shrove Tuesday)", false},
	{"Good Friday", "18/04/2025", "Good Friday", false},
	{"Tiradentes Day", "21/04/2025", "Tiradentes Day", true},
	{"Labor Day", "01/05/2025", "International Workers' Day", true},
	{"Corpus Christi", "19/06/2025", "Corpus Christi", false},
	{"Independence Day", "07/09/2025", "Brazilian Independence Day", true},
	{"Our Lady of Aparecida", "12/10/2025", "Patron Saint of Brazil", true},
	{"All Souls' Day", "02/11/2025", "Day of the Dead", true},
	{"Republic Day", "15/11/2025", "Proclamation of the Republic", true},
	{"National Day of Zumbi", "20/11/2025", "Black Consciousness Day", true},
	{"Christmas", "25/12/2025", "Christmas Day", true},
	{"New Year", "01/01/2026", "New Year's Day", true},
	{"Carnival", "16/02/2026", "Carnival Monday", false},
	{"Carnival", "17/02/2026", "Carnival Tuesday (Shrove Tuesday)", false},
	{"Good Friday", "03/04/2026", "Good Friday", false},
	{"Tiradentes Day", "21/04/2026", "Tiradentes Day", true},
	{"Labor Day", "01/05/2026", "International Workers' Day", true},
	{"Corpus Christi", "04/06/2026", "Corpus Christi", false},
	{"Independence Day", "07/09/2026", "Brazilian Independence Day", true},
	{"Our Lady of Aparecida", "12/10/2026", "Patron Saint of Brazil", true},
	{"All Souls' Day", "02/11/2026", "Day of the Dead", true},
	{"Republic Day", "15/11/2026", "Proclamation of the Republic", true},
	{"National Day of Zumbi", "20/11/2026", "Black Consciousness Day", true},
	{"Christmas", "25/12/2026", "Christmas Day", true},
}

// BrazilianCalendar returns the national holiday rows in canonical form.
func BrazilianCalendar() ([]holiday.Holiday, error) {
	rows := make([]holiday.Holiday, 0, len(brazilianNational))

	for _, e := range brazilianNational {
		date, ok := holiday.ParseDate(e.date)
		if !ok {
			return nil, fmt.Errorf("calendar entry %s: bad date %q", e.name, e.date)
		}

		description := e.description
		rows = append(rows, holiday.Holiday{
			Name:        e.name,
			Date:        date,
			Type:        holiday.TypeNational,
			Description: &description,
			Recurring:   e.recurring,
			Active:      true,
		})
	}

	return rows, nil
}

// DefaultAccounts are the development logins created by the seed command.
func DefaultAccounts() []Account {
	return []Account{
		{
			Email:    "admin@holidays.local",
			Password: "teste",
			Name:     "Administrator",
			Role:     "admin",
		},
		{
			Email:    "salgadinho@holidays.local",
			Password: "teste123",
			Name:     "Salgadinho",
			Role:     "user",
		},
	}
}
