package model

import (
	"sync/atomic"
)

// FlagModel is a concurrency-safe boolean toggle, used for the tint overlay.
// The zero value is off and usable.
type FlagModel struct{ on atomic.Bool }

// On reports the current state.
func (m *FlagModel) On() bool {
	if m == nil {
		return false
	}
	return m.on.Load()
}

// Set stores b and reports whether the value changed.
func (m *FlagModel) Set(b bool) bool {
	if m == nil {
		return false
	}
	return m.on.Swap(b) != b
}
