package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustClock(t *testing.T, hour int) time.Time {
	t.Helper()
	return time.Date(2025, 6, 1, hour, 0, 0, 0, time.UTC)
}

func TestEncodeDecodeJSON(t *testing.T) {
	encoded, err := EncodeJSON(JSONMap{"expected_qty": 36, "window": map[string]string{"start": "x"}})
	require.NoError(t, err)

	decoded, ok := DecodeJSON(encoded).(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, 36.0, decoded["expected_qty"].(float64), 1e-9)
}

func TestDecodeJSONMalformedReturnsRaw(t *testing.T) {
	// A blob that does not parse is surfaced as-is rather than dropped.
	raw := `{"signals": [truncated`
	assert.Equal(t, raw, DecodeJSON(raw))
}

func TestDecodeJSONEmpty(t *testing.T) {
	assert.Nil(t, DecodeJSON(""))
}

func TestTicketPriorityReason(t *testing.T) {
	ticket := &Ticket{PriorityReasonJSON: `{"signals":["vip_table"]}`}
	reason, ok := ticket.PriorityReason().(map[string]interface{})
	require.True(t, ok)
	signals := reason["signals"].([]interface{})
	assert.Equal(t, "vip_table", signals[0])
}

func TestTicketOpen(t *testing.T) {
	assert.True(t, (&Ticket{Status: string(TicketStatusQueued)}).Open())
	assert.True(t, (&Ticket{Status: string(TicketStatusFiring)}).Open())
	assert.False(t, (&Ticket{Status: string(TicketStatusPassed)}).Open())
}

func TestDaypartFor(t *testing.T) {
	assert.Equal(t, DaypartBreakfast, DaypartFor(mustClock(t, 8)))
	assert.Equal(t, DaypartLunch, DaypartFor(mustClock(t, 11)))
	assert.Equal(t, DaypartLunch, DaypartFor(mustClock(t, 16)))
	assert.Equal(t, DaypartDinner, DaypartFor(mustClock(t, 17)))
	assert.Equal(t, DaypartDinner, DaypartFor(mustClock(t, 23)))
}

func TestRecipeLineBinding(t *testing.T) {
	assert.True(t, RecipeLine{Qty: 0.5}.Binding())
	assert.False(t, RecipeLine{Qty: 0}.Binding())
	assert.False(t, RecipeLine{Qty: -1}.Binding())
}
