package services

import (
	"time"

	"l1board/models"
)

// ResolveChartDescriptor maps a selected period onto a concrete chart
// descriptor: the absolute date range ending at now, the server bucket
// granularity, the axis label granularity and the gap threshold derived from
// the bucket size.
//
// Pure function: same period and now always produce the same descriptor.
// Ranges are never cached across calls, so "now" really is now.
//
// Unknown period values resolve to the DAY row rather than failing. Invalid
// query-string input is already normalized to the WEEK default by
// models.ParsePeriod, so this branch only catches unknown constants built in
// code; it stays a silent default for those.
func ResolveChartDescriptor(period models.TimePeriod, now time.Time) models.ChartDescriptor {
	var (
		length time.Duration
		bucket models.TimeUnit
		label  models.TimeUnit
	)

	switch period {
	case models.PeriodOneYear:
		length, bucket, label = 365*24*time.Hour, models.UnitDay, models.UnitDay
	case models.PeriodThreeMonths:
		length, bucket, label = 90*24*time.Hour, models.UnitDay, models.UnitDay
	case models.PeriodMonth:
		length, bucket, label = 30*24*time.Hour, models.UnitDay, models.UnitDay
	case models.PeriodTwoWeek:
		length, bucket, label = 14*24*time.Hour, models.UnitHour, models.UnitDay
	case models.PeriodWeek:
		length, bucket, label = 7*24*time.Hour, models.UnitHour, models.UnitDay
	default: // models.PeriodDay
		length, bucket, label = 24*time.Hour, models.UnitHour, models.UnitHour
	}

	end := now.UTC()
	r := models.DateRange{Start: end.Add(-length), End: end}

	return models.ChartDescriptor{
		Range: r,
		Axis: models.AxisBounds{
			Min:  r.Start,
			Max:  r.End,
			Unit: label,
		},
		BucketUnit:     bucket,
		GapThresholdMs: bucket.Duration().Milliseconds(),
	}
}
