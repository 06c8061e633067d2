package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"l1board/models"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  models.TimePeriod
		known bool
	}{
		{"one year", "1y", models.PeriodOneYear, true},
		{"three months", "3m", models.PeriodThreeMonths, true},
		{"month", "30d", models.PeriodMonth, true},
		{"two weeks", "2w", models.PeriodTwoWeek, true},
		{"week", "7d", models.PeriodWeek, true},
		{"day", "24h", models.PeriodDay, true},
		{"empty", "", models.DefaultPeriod, false},
		{"garbage", "fortnight", models.DefaultPeriod, false},
		{"wrong case", "7D", models.DefaultPeriod, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, known := models.ParsePeriod(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, known)
		})
	}
}

func TestPeriodQueryRoundTrip(t *testing.T) {
	periods := []models.TimePeriod{
		models.PeriodOneYear,
		models.PeriodThreeMonths,
		models.PeriodMonth,
		models.PeriodTwoWeek,
		models.PeriodWeek,
		models.PeriodDay,
	}

	for _, p := range periods {
		assert.Equal(t, p, models.PeriodFromQuery(p.QueryValue()))
	}
}

func TestPeriodFromQueryFallsBack(t *testing.T) {
	assert.Equal(t, models.DefaultPeriod, models.PeriodFromQuery(""))
	assert.Equal(t, models.DefaultPeriod, models.PeriodFromQuery("90d"))
}
