package models

import (
	"fmt"
	"strings"
	"time"
)

// DayLayout is the calendar-day format used everywhere: storage, import,
// export, and the HTTP surface.
const DayLayout = "2006-01-02"

// Day is a calendar day. Time-of-day is always zeroed, so comparisons and
// day arithmetic never see fractional days.
type Day struct {
	time.Time
}

func NewDay(value time.Time) Day {
	year, month, day := value.Date()
	return Day{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDay(raw string) (Day, error) {
	parsed, err := time.ParseInLocation(DayLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return Day{}, fmt.Errorf("parse day %q: %w", raw, err)
	}
	return Day{parsed}, nil
}

func (d Day) String() string {
	return d.Format(DayLayout)
}

func (d Day) AddDays(days int) Day {
	return Day{d.AddDate(0, 0, days)}
}

// DaysUntil returns the signed whole-day distance from d to other.
func (d Day) DaysUntil(other Day) int {
	return int(other.Sub(d.Time).Hours() / 24)
}

func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DayLayout) + `"`), nil
}

func (d *Day) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "null" || raw == "" {
		*d = Day{}
		return nil
	}
	parsed, err := ParseDay(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
