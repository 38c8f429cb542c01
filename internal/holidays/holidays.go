package holidays

import "strings"

// Default blocked dates (YYYY-MM-DD). Local public holidays for the studios'
// region; extend per deployment via EXTRA_HOLIDAYS.
var defaults = []string{
	"2026-01-01", // Año Nuevo
	"2026-03-19", // Fallas
	"2026-04-03", // Pascua
	"2026-04-06", // Pascua
	"2026-05-01", // Día del Trabajador
	"2026-06-24", // San Juan
	"2026-10-09", // 9 d'Octubre
	"2026-10-12", // Día de la Hispanidad
	"2026-11-01", // Todos los Santos
	"2026-12-06", // Día de la Constitución
	"2026-12-08", // Inmaculada Concepción
	"2026-12-24", // Navidad
	"2026-12-25", // Navidad
	"2026-12-31", // Nochevieja
}

type Calendar struct {
	dates map[string]struct{}
}

// New builds the holiday calendar from the built-in list plus extra
// comma-separated YYYY-MM-DD dates.
func New(extra string) *Calendar {
	cal := &Calendar{dates: make(map[string]struct{}, len(defaults))}
	for _, d := range defaults {
		cal.dates[d] = struct{}{}
	}
	for _, d := range strings.Split(extra, ",") {
		if d = strings.TrimSpace(d); d != "" {
			cal.dates[d] = struct{}{}
		}
	}
	return cal
}

// IsHoliday reports whether the YYYY-MM-DD date is blocked.
func (c *Calendar) IsHoliday(date string) bool {
	_, ok := c.dates[date]
	return ok
}
