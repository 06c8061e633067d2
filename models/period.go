package models

// TimePeriod is the coarse, user-selectable time window that drives both the
// query range and its aggregation granularity. The constant values double as
// the query-string representation.
type TimePeriod string

const (
	PeriodOneYear     TimePeriod = "1y"
	PeriodThreeMonths TimePeriod = "3m"
	PeriodMonth       TimePeriod = "30d"
	PeriodTwoWeek     TimePeriod = "2w"
	PeriodWeek        TimePeriod = "7d"
	PeriodDay         TimePeriod = "24h"
)

// PeriodQueryKey is the single query-string key that mirrors the selected
// period, so a dashboard view stays linkable and bookmarkable.
const PeriodQueryKey = "period"

// DefaultPeriod is used when the query string carries no usable period.
const DefaultPeriod = PeriodWeek

// ParsePeriod maps a raw query value to a TimePeriod. The second return value
// reports whether the input was a known period, so callers can tell a
// deliberate selection apart from garbage in the query string.
func ParsePeriod(raw string) (TimePeriod, bool) {
	switch TimePeriod(raw) {
	case PeriodOneYear, PeriodThreeMonths, PeriodMonth, PeriodTwoWeek, PeriodWeek, PeriodDay:
		return TimePeriod(raw), true
	}
	return DefaultPeriod, false
}

// PeriodFromQuery reads the period out of a raw query value, falling back to
// DefaultPeriod when the value is absent or invalid. This is the read half of
// the query-string binding; QueryValue is the write half.
func PeriodFromQuery(raw string) TimePeriod {
	p, _ := ParsePeriod(raw)
	return p
}

// QueryValue returns the canonical query-string representation of p.
func (p TimePeriod) QueryValue() string {
	return string(p)
}
