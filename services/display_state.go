package services

import (
	"sync"

	"l1board/models"
)

// DisplayState holds exactly one committed {descriptor, dataset} pair plus
// the transient loading/error flags. The two halves are deliberately separate
// pieces of state: axis geometry is an immutable value replaced wholesale on
// Commit, while loading/error flip independently, so renderers never see the
// axis flicker ahead of the data during a load.
//
// Only the owning ChartSession writes here, and only from its success and
// failure paths; the lock exists for readers polling Snapshot.
type DisplayState struct {
	mu         sync.RWMutex
	descriptor models.ChartDescriptor
	dataset    *models.MetricsResult
	loading    bool
	errMsg     string
}

func NewDisplayState() *DisplayState {
	return &DisplayState{}
}

// Commit atomically replaces the committed descriptor and dataset. All
// Snapshot callers see both change together.
func (ds *DisplayState) Commit(descriptor models.ChartDescriptor, dataset *models.MetricsResult) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.descriptor = descriptor
	ds.dataset = dataset
}

func (ds *DisplayState) SetLoading(loading bool) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.loading = loading
}

// SetError records a user-visible failure. Committed data is left untouched
// so the view keeps showing the last good dataset.
func (ds *DisplayState) SetError(msg string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.errMsg = msg
}

// Snapshot composes the committed pair and the transient flags into one
// read-boundary value.
func (ds *DisplayState) Snapshot() models.ChartState {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return models.ChartState{
		Descriptor: ds.descriptor,
		Dataset:    ds.dataset,
		IsLoading:  ds.loading,
		Error:      ds.errMsg,
	}
}
