package models

import "time"

// TimeUnit is a chart granularity: either the server-side aggregation bucket
// or the display-axis tick spacing.
type TimeUnit string

const (
	UnitHour TimeUnit = "hour"
	UnitDay  TimeUnit = "day"
)

// Duration returns the length of one unit.
func (u TimeUnit) Duration() time.Duration {
	if u == UnitDay {
		return 24 * time.Hour
	}
	return time.Hour
}

// DateRange is an absolute [Start, End) window. Start is always strictly
// before End.
type DateRange struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// Length returns End - Start.
func (r DateRange) Length() time.Duration {
	return r.End.Sub(r.Start)
}

// AxisBounds pins the rendered time axis. Min/Max mirror the fetched range so
// the axis never drifts from the data behind it.
type AxisBounds struct {
	Min  time.Time `json:"min"`
	Max  time.Time `json:"max"`
	Unit TimeUnit  `json:"unit"`
}

// ChartDescriptor is everything a renderer needs to lay out a chart before
// (and independent of) the data arriving: the fetched range, the axis
// geometry, the server bucket size and the gap threshold.
//
// GapThresholdMs is always one BucketUnit expressed in milliseconds: when two
// adjacent samples are further apart than this, the renderer must show a
// break in the line instead of interpolating across missing buckets.
type ChartDescriptor struct {
	Range          DateRange  `json:"range"`
	Axis           AxisBounds `json:"axis"`
	BucketUnit     TimeUnit   `json:"bucket_unit"`
	GapThresholdMs int64      `json:"gap_threshold_ms"`
}

// ChartState is the composed read-boundary view: the last committed
// descriptor and dataset plus the transient loading/error flags. Geometry
// only changes on a successful commit; IsLoading and Error can change
// independently at any time.
type ChartState struct {
	Descriptor ChartDescriptor `json:"descriptor"`
	Dataset    *MetricsResult  `json:"dataset,omitempty"`
	IsLoading  bool            `json:"is_loading"`
	Error      string          `json:"error,omitempty"`
}
