package model

import (
	"fmt"
	"time"

	"github.com/soocke/cropframe/domain/selection"
)

// StatsModel counts completed selections per mode and the time spent dragging.
// It is decoupled from the UI; presenters record results and read Summary().
// The zero value is ready to use. Not safe for concurrent use; callers stay on the UI thread.
type StatsModel struct {
	pro       int
	ultra     int
	dragStart time.Time
	dragging  bool
	dragTotal time.Duration
}

// NewStatsModel returns a pointer to a ready-to-use StatsModel.
func NewStatsModel() *StatsModel { return &StatsModel{} }

// BeginDrag marks the start of a gesture.
func (m *StatsModel) BeginDrag(now time.Time) {
	if m == nil {
		return
	}
	m.dragStart = now
	m.dragging = true
}

// EndDrag closes the current gesture; r is nil when the gesture was aborted.
func (m *StatsModel) EndDrag(now time.Time, r *selection.Result) {
	if m == nil {
		return
	}
	if m.dragging { // transition dragging -> idle
		m.dragTotal += now.Sub(m.dragStart)
		m.dragging = false
	}
	if r == nil {
		return
	}
	switch r.Mode {
	case selection.ModeUltra:
		m.ultra++
	default:
		m.pro++
	}
}

// Values returns the PRO and Ultra counts and the accumulated drag time.
func (m *StatsModel) Values() (pro, ultra int, dragging time.Duration) {
	if m == nil {
		return 0, 0, 0
	}
	return m.pro, m.ultra, m.dragTotal
}

// Summary renders the counters for a status line.
func (m *StatsModel) Summary() string {
	pro, ultra, _ := m.Values()
	return fmt.Sprintf("%d selections (%d PRO, %d Ultra)", pro+ultra, pro, ultra)
}
