package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"l1board/models"
	"l1board/services"
)

func TestDisplayStateZeroValue(t *testing.T) {
	store := services.NewDisplayState()

	state := store.Snapshot()
	assert.False(t, state.IsLoading)
	assert.Empty(t, state.Error)
	assert.Nil(t, state.Dataset)
}

func TestDisplayStateFlagsLeaveCommitUntouched(t *testing.T) {
	store := services.NewDisplayState()

	descriptor := services.ResolveChartDescriptor(models.PeriodWeek, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC))
	dataset := &models.MetricsResult{Nodes: models.NodeStateSummary{Active: 3}}
	store.Commit(descriptor, dataset)

	// Loading and error flip freely; the committed pair never moves with them.
	store.SetLoading(true)
	store.SetError("transient")

	state := store.Snapshot()
	assert.True(t, state.IsLoading)
	assert.Equal(t, "transient", state.Error)
	assert.Equal(t, descriptor, state.Descriptor)
	assert.Equal(t, dataset, state.Dataset)

	store.SetError("")
	store.SetLoading(false)

	state = store.Snapshot()
	assert.False(t, state.IsLoading)
	assert.Empty(t, state.Error)
	assert.Equal(t, dataset, state.Dataset)
}

func TestDisplayStateCommitReplacesBothTogether(t *testing.T) {
	store := services.NewDisplayState()
	now := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	first := services.ResolveChartDescriptor(models.PeriodWeek, now)
	store.Commit(first, &models.MetricsResult{Nodes: models.NodeStateSummary{Active: 1}})

	second := services.ResolveChartDescriptor(models.PeriodDay, now)
	replacement := &models.MetricsResult{Nodes: models.NodeStateSummary{Active: 2}}
	store.Commit(second, replacement)

	state := store.Snapshot()
	assert.Equal(t, second, state.Descriptor)
	assert.Equal(t, replacement, state.Dataset)
}
