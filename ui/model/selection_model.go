package model

import (
	"sync"

	"github.com/soocke/cropframe/domain/selection"
)

// SelectionModel holds the drag in progress and the last completed result.
// Pointer callbacks run on the UI thread while export and reload may read
// from other goroutines, so access is guarded by a mutex.
// The zero value is idle and usable.
type SelectionModel struct {
	mu   sync.Mutex
	drag selection.Drag
	last selection.Result
	has  bool
}

// NewSelectionModel returns an idle model.
func NewSelectionModel() *SelectionModel { return &SelectionModel{} }

// Drag returns the current drag value.
func (m *SelectionModel) Drag() selection.Drag {
	if m == nil {
		return selection.Drag{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drag
}

// SetDrag replaces the drag value.
func (m *SelectionModel) SetDrag(d selection.Drag) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.drag = d
	m.mu.Unlock()
}

// Dragging reports whether a drag is in progress.
func (m *SelectionModel) Dragging() bool {
	return m.Drag().State == selection.StateDragging
}

// Last returns the most recent completed result.
func (m *SelectionModel) Last() (selection.Result, bool) {
	if m == nil {
		return selection.Result{}, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last, m.has
}

// SetLast records a completed result.
func (m *SelectionModel) SetLast(r selection.Result) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.last, m.has = r, true
	m.mu.Unlock()
}

// Reset returns the model to idle with no result.
func (m *SelectionModel) Reset() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.drag = selection.Drag{}
	m.last, m.has = selection.Result{}, false
	m.mu.Unlock()
}
