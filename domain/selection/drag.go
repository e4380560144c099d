package selection

// DragState enumerates the interaction states of a drag gesture.
type DragState int

const (
	StateIdle DragState = iota
	StateDragging
)

func (s DragState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Drag is the value object for one drag gesture. Methods return the next
// value and never mutate the receiver. The zero value is idle.
type Drag struct {
	State    DragState
	StartX   float64
	StartY   float64
	CurrentX float64
	CurrentY float64
	Moved    bool
}

// Down starts a new drag at (x, y), discarding any previous one.
func (d Drag) Down(x, y float64) Drag {
	return Drag{State: StateDragging, StartX: x, StartY: y, CurrentX: x, CurrentY: y}
}

// Move updates the current point. It returns the live rectangle and true
// while dragging; idle drags are returned unchanged.
func (d Drag) Move(x, y float64) (Drag, Rect, bool) {
	if d.State != StateDragging {
		return d, Rect{}, false
	}
	d.CurrentX, d.CurrentY = x, y
	d.Moved = true
	return d, d.Rect(), true
}

// Up finishes the drag. The rectangle is only reported when the pointer
// moved at least once after Down.
func (d Drag) Up() (Drag, Rect, bool) {
	if d.State != StateDragging {
		return d, Rect{}, false
	}
	r, ok := d.Rect(), d.Moved
	return Drag{}, r, ok
}

// Leave abandons the drag without producing a result.
func (d Drag) Leave() Drag { return Drag{} }

// Rect is the rectangle spanned by the start and current points.
func (d Drag) Rect() Rect {
	return FromPoints(d.StartX, d.StartY, d.CurrentX, d.CurrentY)
}
