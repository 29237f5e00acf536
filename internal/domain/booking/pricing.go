package booking

import (
	"math"
	"strconv"
	"strings"
)

const (
	SlotDurationHours = 2
	MaxDurationHours  = 12
)

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case "", TypeSlot:
		return TypeSlot, nil
	case TypeCustom:
		return TypeCustom, nil
	default:
		return "", ErrInvalidBookingType
	}
}

// TimeRange is the booking window as given by the client.
type TimeRange struct {
	Type      Type
	TimeSlot  string
	StartTime string
	EndTime   string
}

type Quote struct {
	Duration    float64 // hours
	TotalAmount float64
}

// ClockMinutes parses a 24-hour "HH:MM" value into minutes after midnight.
func ClockMinutes(value string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, ErrInvalidTimeRange
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, ErrInvalidTimeRange
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, ErrInvalidTimeRange
	}
	return hour*60 + minute, nil
}

// customMinutes returns end-start in minutes, bounded to (0, 12h].
func customMinutes(start, end string) (int, error) {
	startMin, err := ClockMinutes(start)
	if err != nil {
		return 0, err
	}
	endMin, err := ClockMinutes(end)
	if err != nil {
		return 0, err
	}
	minutes := endMin - startMin
	if minutes <= 0 || minutes > MaxDurationHours*60 {
		return 0, ErrInvalidTimeRange
	}
	return minutes, nil
}

// Price derives duration and total amount for a turf priced per hour.
// Slot bookings are charged exactly; custom bookings round up to the next
// whole currency unit.
func Price(pricePerHour float64, tr TimeRange) (Quote, error) {
	switch tr.Type {
	case TypeSlot:
		if strings.TrimSpace(tr.TimeSlot) == "" {
			return Quote{}, ErrMissingTimeSlot
		}
		return Quote{
			Duration:    SlotDurationHours,
			TotalAmount: pricePerHour * SlotDurationHours,
		}, nil
	case TypeCustom:
		minutes, err := customMinutes(tr.StartTime, tr.EndTime)
		if err != nil {
			return Quote{}, err
		}
		// price*minutes/60 keeps whole results exact where price*(minutes/60)
		// can land a hair above them.
		return Quote{
			Duration:    float64(minutes) / 60,
			TotalAmount: math.Ceil(pricePerHour * float64(minutes) / 60),
		}, nil
	default:
		return Quote{}, ErrInvalidBookingType
	}
}
