package selectoverlay

import "math"

// epsilon is the tolerance for coordinate comparisons.
const epsilon = 1e-3

// Offset is a point or displacement in window coordinates.
type Offset struct {
	X, Y float64
}

// Add returns o translated by d.
func (o Offset) Add(d Offset) Offset { return Offset{o.X + d.X, o.Y + d.Y} }

// Sub returns o - d.
func (o Offset) Sub(d Offset) Offset { return Offset{o.X - d.X, o.Y - d.Y} }

// Distance returns the length of o.
func (o Offset) Distance() float64 { return math.Hypot(o.X, o.Y) }

// Rect is an axis-aligned rectangle in window coordinates.
type Rect struct {
	Left, Top, Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Center returns the center point.
func (r Rect) Center() Offset {
	return Offset{r.Left + r.Width/2, r.Top + r.Height/2}
}

// Offset returns r translated by d.
func (r Rect) Offset(d Offset) Rect {
	r.Left += d.X
	r.Top += d.Y
	return r
}

// Inflate grows r by d on every side.
func (r Rect) Inflate(d float64) Rect {
	return Rect{r.Left - d, r.Top - d, r.Width + 2*d, r.Height + 2*d}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Offset) bool {
	return p.X >= r.Left && p.X <= r.Right() && p.Y >= r.Top && p.Y <= r.Bottom()
}

// PointPair describes a handle drawn as a line between two points instead
// of a rectangle.
type PointPair struct {
	Start, End Offset
}

func (pp PointPair) bounds() Rect {
	l, r := math.Min(pp.Start.X, pp.End.X), math.Max(pp.Start.X, pp.End.X)
	t, b := math.Min(pp.Start.Y, pp.End.Y), math.Max(pp.Start.Y, pp.End.Y)
	return Rect{l, t, r - l, b - t}
}

// HandleInfo is the geometry of one selection handle.
type HandleInfo struct {
	IsShow    bool
	PaintRect Rect
	// PaintInfo, when set, replaces PaintRect for hit testing.
	PaintInfo *PointPair
}

// Equal reports whether h and o describe the same handle.
func (h HandleInfo) Equal(o HandleInfo) bool {
	if h.IsShow != o.IsShow || h.PaintRect != o.PaintRect {
		return false
	}
	if h.PaintInfo == nil || o.PaintInfo == nil {
		return h.PaintInfo == o.PaintInfo
	}
	return *h.PaintInfo == *o.PaintInfo
}

func (h HandleInfo) offset(d Offset) HandleInfo {
	h.PaintRect = h.PaintRect.Offset(d)
	if h.PaintInfo != nil {
		pp := PointPair{h.PaintInfo.Start.Add(d), h.PaintInfo.End.Add(d)}
		h.PaintInfo = &pp
	}
	return h
}

// hotZone returns the touch region of the handle.
func (h HandleInfo) hotZone(radius float64) Rect {
	if h.PaintInfo != nil {
		return h.PaintInfo.bounds().Inflate(radius)
	}
	return h.PaintRect.Inflate(radius)
}

// MenuInfo is the state of the selection context menu.
type MenuInfo struct {
	MenuIsShow  bool
	MenuDisable bool
	ShowCopy    bool
	ShowPaste   bool
	ShowCut     bool
	ShowCopyAll bool
	// MenuOffset, when set, pins the menu at a fixed position.
	MenuOffset *Offset
}

// Equal reports whether m and o describe the same menu.
func (m MenuInfo) Equal(o MenuInfo) bool {
	a, b := m, o
	a.MenuOffset, b.MenuOffset = nil, nil
	if a != b {
		return false
	}
	if m.MenuOffset == nil || o.MenuOffset == nil {
		return m.MenuOffset == o.MenuOffset
	}
	return *m.MenuOffset == *o.MenuOffset
}

// Info is the selection state shared between the host and the overlay.
type Info struct {
	First  HandleInfo
	Second HandleInfo
	Menu   MenuInfo

	SelectText string
	// ShowArea bounds dragged handles when ClipHandleToEdge is set.
	ShowArea         Rect
	ClipHandleToEdge bool
	// SelectionVisible reports whether the selected text is on screen.
	SelectionVisible bool
	// IsSingleHandle shows a caret handle; only Second takes touches.
	IsSingleHandle bool
	HandleReverse  bool
	// IsNewAvoid lets the menu show with both handles hidden.
	IsNewAvoid bool

	OnHandleMoveStart func(isFirst bool)
	OnHandleMove      func(rect Rect, isFirst bool)
	OnHandleMoveDone  func(rect Rect, isFirst bool)
	OnHandleReverse   func(reversed bool)
	OnMenuChange      func(visible bool)
	OnClose           func(closedByGlobalTouch bool)
}

// Theme holds the overlay's visual constants.
type Theme struct {
	// HandleHotZoneRadius extends each handle's touch region on every side.
	HandleHotZoneRadius float64
}

// DefaultTheme returns the stock theme.
func DefaultTheme() Theme {
	return Theme{HandleHotZoneRadius: 12}
}

// State is the interaction state of a Pattern.
type State int

// Interaction states.
const (
	StateIdle State = iota
	StateDraggingFirst
	StateDraggingSecond
	StateMenuVisible
	StateHiddenPendingTimeout
	StateHidden
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateDraggingFirst:
		return "DraggingFirst"
	case StateDraggingSecond:
		return "DraggingSecond"
	case StateMenuVisible:
		return "MenuVisible"
	case StateHiddenPendingTimeout:
		return "HiddenPendingTimeout"
	case StateHidden:
		return "Hidden"
	default:
		return "Unknown"
	}
}
