package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceCustom(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		start    string
		end      string
		duration float64
		amount   float64
	}{
		{"two and a half hours", 1000, "09:00", "11:30", 2.5, 2500},
		{"rounds fractional amount up", 999, "09:00", "11:30", 2.5, 2498},
		{"twelve hour cap is inclusive", 100, "06:00", "18:00", 12, 1200},
		{"seventy minutes stays exact", 1200, "10:00", "11:10", 70.0 / 60, 1400},
		{"single minute", 60, "10:00", "10:01", 1.0 / 60, 1},
		{"single digit hour", 500, "9:00", "10:00", 1, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Price(tt.price, TimeRange{Type: TypeCustom, StartTime: tt.start, EndTime: tt.end})
			require.NoError(t, err)
			assert.InDelta(t, tt.duration, q.Duration, 1e-9)
			assert.Equal(t, tt.amount, q.TotalAmount)
		})
	}
}

func TestPriceCustomInvalidRange(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"zero length", "10:00", "10:00"},
		{"end before start", "11:00", "10:00"},
		{"over twelve hours", "06:00", "18:01"},
		{"malformed start", "9am", "11:00"},
		{"hour out of range", "24:00", "11:00"},
		{"minute out of range", "10:60", "11:00"},
		{"missing end", "10:00", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Price(1000, TimeRange{Type: TypeCustom, StartTime: tt.start, EndTime: tt.end})
			assert.ErrorIs(t, err, ErrInvalidTimeRange)
		})
	}
}

func TestPriceSlot(t *testing.T) {
	for _, label := range []string{"06:00-08:00", "Evening", "x"} {
		q, err := Price(1500, TimeRange{Type: TypeSlot, TimeSlot: label})
		require.NoError(t, err)
		assert.Equal(t, float64(SlotDurationHours), q.Duration)
		assert.Equal(t, 3000.0, q.TotalAmount)
	}

	// slot amounts are exact, never rounded
	q, err := Price(999.5, TimeRange{Type: TypeSlot, TimeSlot: "morning"})
	require.NoError(t, err)
	assert.Equal(t, 1999.0, q.TotalAmount)

	_, err = Price(1500, TimeRange{Type: TypeSlot})
	assert.ErrorIs(t, err, ErrMissingTimeSlot)
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("")
	require.NoError(t, err)
	assert.Equal(t, TypeSlot, typ)

	typ, err = ParseType("custom")
	require.NoError(t, err)
	assert.Equal(t, TypeCustom, typ)

	_, err = ParseType("hourly")
	assert.ErrorIs(t, err, ErrInvalidBookingType)

	_, err = Price(100, TimeRange{Type: "hourly"})
	assert.ErrorIs(t, err, ErrInvalidBookingType)
}
