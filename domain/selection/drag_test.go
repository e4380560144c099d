package selection

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDrag_DownMoveUp(t *testing.T) {
	var d Drag
	require.Equal(t, StateIdle, d.State)

	d = d.Down(100, 80)
	require.Equal(t, StateDragging, d.State)

	d, live, ok := d.Move(40, 200)
	require.True(t, ok)
	require.Equal(t, Rect{X: 40, Y: 80, Width: 60, Height: 120}, live)

	d, final, ok := d.Up()
	require.True(t, ok)
	require.Equal(t, live, final)
	require.Equal(t, StateIdle, d.State)
}

func TestDrag_UpWithoutMoveHasNoResult(t *testing.T) {
	d := Drag{}.Down(10, 10)
	d, _, ok := d.Up()
	require.False(t, ok)
	require.Equal(t, StateIdle, d.State)
}

func TestDrag_LeaveAbandons(t *testing.T) {
	d := Drag{}.Down(10, 10)
	d, _, _ = d.Move(50, 50)
	d = d.Leave()
	require.Equal(t, StateIdle, d.State)

	_, _, ok := d.Up()
	require.False(t, ok, "up after leave must not produce a rectangle")
}

func TestDrag_IdleIgnoresMove(t *testing.T) {
	var d Drag
	next, _, ok := d.Move(5, 5)
	require.False(t, ok)
	require.Equal(t, d, next)
}

func TestDrag_ValueSemantics(t *testing.T) {
	start := Drag{}.Down(0, 0)
	moved, _, _ := start.Move(10, 10)
	require.False(t, start.Moved, "Move must not mutate the receiver")
	require.True(t, moved.Moved)
	require.Equal(t, "dragging", start.State.String())
}
