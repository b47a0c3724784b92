package scheduling

import (
	"strings"
	"time"

	"github.com/incubyte/booking/internal/platform/apperr"
)

// WallClockLayout is the stored form of every start and end time. Values of
// this fixed width sort lexically in chronological order.
const WallClockLayout = "2006-01-02T15:04:05"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// NormalizeTimestamp parses an ISO-8601 datetime and returns its wall-clock
// form. A zone offset, when present, is dropped rather than converted.
// Fractional seconds are accepted only when they are zero.
func NormalizeTimestamp(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Nanosecond() != 0 {
				return "", apperr.Invalidf("timestamp %q has sub-second precision; use whole seconds", s)
			}
			return t.Format(WallClockLayout), nil
		}
	}
	return "", apperr.Invalidf("invalid timestamp %q", s)
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share any instant. Touching intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return !(aEnd <= bStart || aStart >= bEnd)
}

// Covers reports whether [start, end) lies within [slotStart, slotEnd).
func Covers(slotStart, slotEnd, start, end string) bool {
	return slotStart <= start && slotEnd >= end
}

// window is a validated, normalised booking interval.
type window struct {
	start, end, day string
}

func (r BookingRequest) window() (window, error) {
	start, err := NormalizeTimestamp(r.StartTime)
	if err != nil {
		return window{}, err
	}
	end, err := NormalizeTimestamp(r.EndTime)
	if err != nil {
		return window{}, err
	}
	if end <= start {
		return window{}, ErrEmptyInterval
	}
	day := strings.TrimSpace(r.DayOfWeek)
	if day == "" {
		return window{}, ErrDayOfWeekRequired
	}
	return window{start: start, end: end, day: day}, nil
}
