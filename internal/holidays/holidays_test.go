package holidays

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultCalendar(t *testing.T) {
	cal := New("")

	assert.True(t, cal.IsHoliday("2026-01-01"))
	assert.True(t, cal.IsHoliday("2026-12-25"))
	assert.False(t, cal.IsHoliday("2026-09-01"))
	assert.False(t, cal.IsHoliday(""))
}

func TestExtraHolidays(t *testing.T) {
	cal := New("2026-09-01, 2026-09-02,")

	assert.True(t, cal.IsHoliday("2026-09-01"))
	assert.True(t, cal.IsHoliday("2026-09-02"))
	assert.False(t, cal.IsHoliday("2026-09-03"))

	// Defaults are kept alongside extras.
	assert.True(t, cal.IsHoliday("2026-05-01"))
}
