package selectoverlay

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func handle(left, top float64) HandleInfo {
	return HandleInfo{IsShow: true, PaintRect: Rect{Left: left, Top: top, Width: 4, Height: 20}}
}

func newTestPattern(info Info) (*Pattern, *manualScheduler) {
	s := newManualScheduler()
	return NewPattern(info, Theme{HandleHotZoneRadius: 8}, s), s
}

func TestHandleReverseSameLine(t *testing.T) {
	var calls []bool
	p, _ := newTestPattern(Info{
		First:           handle(10, 100),
		Second:          handle(50, 100),
		OnHandleReverse: func(r bool) { calls = append(calls, r) },
	})
	if p.Info().HandleReverse {
		t.Fatal("handles in reading order reported reversed")
	}

	p.UpdateFirstAndSecondHandleInfo(handle(50, 100), handle(10, 100))
	if !p.Info().HandleReverse {
		t.Error("swapped handles not reported reversed")
	}
	// Same geometry again is a no-op.
	p.UpdateFirstAndSecondHandleInfo(handle(50, 100), handle(10, 100))
	p.UpdateFirstSelectHandleInfo(handle(50, 100))

	if diff := cmp.Diff([]bool{true}, calls); diff != "" {
		t.Errorf("OnHandleReverse calls mismatch (-want +got):\n%s", diff)
	}

	p.UpdateSecondSelectHandleInfo(handle(60, 100))
	if diff := cmp.Diff([]bool{true, false}, calls); diff != "" {
		t.Errorf("OnHandleReverse calls mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleReverseDifferentLines(t *testing.T) {
	tests := []struct {
		name          string
		first, second HandleInfo
		want          bool
	}{
		{"second line below", handle(80, 0), handle(10, 40), false},
		{"first line below", handle(10, 40), handle(80, 0), true},
		{"same line", handle(80, 40), handle(10, 40), true},
		{"same position", handle(10, 40), handle(10, 40), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPattern(Info{First: tt.first, Second: tt.second})
			if got := p.Info().HandleReverse; got != tt.want {
				t.Errorf("HandleReverse = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHandleRegions(t *testing.T) {
	pp := PointPair{Start: Offset{30, 10}, End: Offset{20, 40}}
	p, _ := newTestPattern(Info{
		First:  handle(10, 100),
		Second: HandleInfo{IsShow: true, PaintInfo: &pp},
	})
	first, second := p.HandleRegions()
	if diff := cmp.Diff(Rect{Left: 2, Top: 92, Width: 20, Height: 36}, first); diff != "" {
		t.Errorf("first region mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Rect{Left: 12, Top: 2, Width: 26, Height: 46}, second); diff != "" {
		t.Errorf("second region mismatch (-want +got):\n%s", diff)
	}
}

func TestHiddenHandleTimeout(t *testing.T) {
	p, s := newTestPattern(Info{First: handle(10, 100), Second: handle(50, 100)})
	p.StartHiddenHandleTask()
	if got := p.State(); got != StateHiddenPendingTimeout {
		t.Fatalf("State() = %v, want %v", got, StateHiddenPendingTimeout)
	}

	s.Advance(HiddenHandleDelay - time.Millisecond)
	if p.HandlesHidden() {
		t.Fatal("handles hidden before the delay elapsed")
	}
	s.Advance(time.Millisecond)
	if got := p.State(); got != StateHidden {
		t.Fatalf("State() = %v, want %v", got, StateHidden)
	}

	// Gestures no longer reach the handles.
	p.HandleTouchDown(Offset{12, 110})
	p.HandlePanStart(Offset{12, 110})
	if got := p.State(); got != StateHidden {
		t.Errorf("State() after touch = %v, want %v", got, StateHidden)
	}

	p.ResetHiddenHandle()
	if p.HandlesHidden() {
		t.Error("ResetHiddenHandle left handles hidden")
	}
}

func TestDragStartCancelsHiddenHandleTask(t *testing.T) {
	p, s := newTestPattern(Info{First: handle(10, 100), Second: handle(50, 100)})
	p.StartHiddenHandleTask()

	s.Advance(3999 * time.Millisecond)
	p.HandleTouchDown(Offset{12, 110})
	p.HandlePanStart(Offset{12, 110})
	if got := p.State(); got != StateDraggingFirst {
		t.Fatalf("State() = %v, want %v", got, StateDraggingFirst)
	}

	s.Advance(time.Hour)
	if p.HandlesHidden() {
		t.Error("handles hidden during a drag")
	}
	if n := s.pending(); n != 0 {
		t.Errorf("pending tasks = %d, want 0", n)
	}

	p.HandlePanEnd()
	if got := p.State(); got != StateIdle {
		t.Errorf("State() after drag = %v, want %v", got, StateIdle)
	}
}

func TestSingleHandleTimerRestartsAfterDrag(t *testing.T) {
	p, s := newTestPattern(Info{
		Second:         handle(50, 100),
		IsSingleHandle: true,
	})
	if got := p.State(); got != StateHiddenPendingTimeout {
		t.Fatalf("State() = %v, want %v", got, StateHiddenPendingTimeout)
	}

	s.Advance(2 * time.Second)
	p.HandleTouchDown(Offset{52, 110})
	p.HandlePanStart(Offset{52, 110})
	if got := p.State(); got != StateDraggingSecond {
		t.Fatalf("State() = %v, want %v", got, StateDraggingSecond)
	}
	s.Advance(3 * time.Second)
	p.HandlePanEnd()

	s.Advance(HiddenHandleDelay - time.Millisecond)
	if p.HandlesHidden() {
		t.Fatal("handles hidden before the restarted delay elapsed")
	}
	s.Advance(time.Millisecond)
	if !p.HandlesHidden() {
		t.Error("handles not hidden after the restarted delay")
	}
}

func TestStopHiddenHandleTask(t *testing.T) {
	p, s := newTestPattern(Info{Second: handle(50, 100), IsSingleHandle: true})
	p.StopHiddenHandleTask()
	s.Advance(2 * HiddenHandleDelay)
	if p.HandlesHidden() {
		t.Error("stopped task still hid the handles")
	}
	if got := p.State(); got != StateIdle {
		t.Errorf("State() = %v, want %v", got, StateIdle)
	}
}

func TestBothTouchedPicksByX(t *testing.T) {
	tests := []struct {
		name      string
		first     HandleInfo
		second    HandleInfo
		touch     Offset
		wantFirst bool
	}{
		{
			// Euclidean distance favors the second handle; the X-only
			// centers favor the first.
			name:      "x only",
			first:     HandleInfo{IsShow: true, PaintRect: Rect{Left: 0, Top: 25, Width: 10, Height: 10}},
			second:    HandleInfo{IsShow: true, PaintRect: Rect{Left: 4, Top: 0, Width: 10, Height: 10}},
			touch:     Offset{5, 5},
			wantFirst: true,
		},
		{
			name:      "tie goes to second",
			first:     HandleInfo{IsShow: true, PaintRect: Rect{Left: 0, Top: 0, Width: 10, Height: 10}},
			second:    HandleInfo{IsShow: true, PaintRect: Rect{Left: 0, Top: 20, Width: 10, Height: 10}},
			touch:     Offset{5, 15},
			wantFirst: false,
		},
		{
			name:      "nearer second",
			first:     HandleInfo{IsShow: true, PaintRect: Rect{Left: 0, Top: 0, Width: 10, Height: 10}},
			second:    HandleInfo{IsShow: true, PaintRect: Rect{Left: 20, Top: 20, Width: 10, Height: 10}},
			touch:     Offset{22, 22},
			wantFirst: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var started []bool
			p := NewPattern(Info{
				First:             tt.first,
				Second:            tt.second,
				OnHandleMoveStart: func(isFirst bool) { started = append(started, isFirst) },
			}, Theme{HandleHotZoneRadius: 30}, newManualScheduler())

			p.HandleTouchDown(tt.touch)
			p.HandlePanStart(tt.touch)
			if diff := cmp.Diff([]bool{tt.wantFirst}, started); diff != "" {
				t.Errorf("OnHandleMoveStart mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPanWithoutTouchDown(t *testing.T) {
	p, _ := newTestPattern(Info{First: handle(10, 100), Second: handle(50, 100)})
	p.HandleTouchDown(Offset{300, 300})
	p.HandlePanStart(Offset{300, 300})
	p.HandlePanMove(Offset{10, 0})
	if got := p.State(); got != StateIdle {
		t.Errorf("State() = %v, want %v", got, StateIdle)
	}
	if got := p.Info().First.PaintRect.Left; got != 10 {
		t.Errorf("first handle moved to %v", got)
	}
}

func TestHiddenHandleIgnoresTouch(t *testing.T) {
	first := handle(10, 100)
	first.IsShow = false
	p, _ := newTestPattern(Info{First: first, Second: handle(50, 100)})
	p.HandleTouchDown(Offset{12, 110})
	p.HandlePanStart(Offset{12, 110})
	if got := p.State(); got != StateIdle {
		t.Errorf("State() = %v, want %v", got, StateIdle)
	}
}

func TestPanMove(t *testing.T) {
	var moves []Rect
	var reversals []bool
	p, _ := newTestPattern(Info{
		First:           handle(10, 100),
		Second:          handle(50, 100),
		OnHandleMove:    func(r Rect, isFirst bool) { moves = append(moves, r) },
		OnHandleReverse: func(r bool) { reversals = append(reversals, r) },
	})
	p.HandleTouchDown(Offset{12, 110})
	p.HandlePanStart(Offset{12, 110})
	p.HandlePanMove(Offset{30, 0})
	p.HandlePanMove(Offset{30, 0})

	want := []Rect{
		{Left: 40, Top: 100, Width: 4, Height: 20},
		{Left: 70, Top: 100, Width: 4, Height: 20},
	}
	if diff := cmp.Diff(want, moves); diff != "" {
		t.Errorf("OnHandleMove rects mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{true}, reversals); diff != "" {
		t.Errorf("reversals mismatch (-want +got):\n%s", diff)
	}
	first, _ := p.HandleRegions()
	if first.Left != 62 {
		t.Errorf("first region left = %v, want 62", first.Left)
	}
}

func TestPanMoveClipsToEdge(t *testing.T) {
	var moves []Rect
	p, _ := newTestPattern(Info{
		First:            handle(10, 100),
		Second:           handle(50, 100),
		ShowArea:         Rect{Left: 0, Top: 50, Width: 100, Height: 100},
		ClipHandleToEdge: true,
		OnHandleMove:     func(r Rect, isFirst bool) { moves = append(moves, r) },
	})
	p.HandleTouchDown(Offset{52, 110})
	p.HandlePanStart(Offset{52, 110})
	p.HandlePanMove(Offset{200, -200})
	p.HandlePanMove(Offset{-220, 0})

	want := []Rect{
		{Left: 96, Top: 50, Width: 4, Height: 20},
		{Left: 30, Top: 50, Width: 4, Height: 20},
	}
	if diff := cmp.Diff(want, moves); diff != "" {
		t.Errorf("clipped rects mismatch (-want +got):\n%s", diff)
	}
}

func TestPanEndRestoresMenu(t *testing.T) {
	var done []Rect
	var menu []bool
	p, _ := newTestPattern(Info{
		First:            handle(10, 100),
		Second:           handle(50, 100),
		Menu:             MenuInfo{MenuIsShow: true},
		OnHandleMoveDone: func(r Rect, isFirst bool) { done = append(done, r) },
		OnMenuChange:     func(v bool) { menu = append(menu, v) },
	})
	if got := p.State(); got != StateMenuVisible {
		t.Fatalf("State() = %v, want %v", got, StateMenuVisible)
	}

	p.HandleTouchDown(Offset{52, 110})
	p.HandlePanStart(Offset{52, 110})
	if p.MenuVisible() {
		t.Error("menu visible during drag")
	}
	p.HandlePanMove(Offset{5, 0})
	p.HandlePanEnd()

	if !p.MenuVisible() {
		t.Error("menu not restored after drag")
	}
	if diff := cmp.Diff([]Rect{{Left: 55, Top: 100, Width: 4, Height: 20}}, done); diff != "" {
		t.Errorf("OnHandleMoveDone mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{false, true}, menu); diff != "" {
		t.Errorf("menu changes mismatch (-want +got):\n%s", diff)
	}
}

func TestPanCancelRestoresHandle(t *testing.T) {
	var done []Rect
	p, _ := newTestPattern(Info{
		First:            handle(10, 100),
		Second:           handle(50, 100),
		OnHandleMoveDone: func(r Rect, isFirst bool) { done = append(done, r) },
	})
	p.HandleTouchDown(Offset{12, 110})
	p.HandlePanStart(Offset{12, 110})
	p.HandlePanMove(Offset{80, 0})
	if !p.Info().HandleReverse {
		t.Fatal("drag past the second handle did not reverse")
	}
	p.HandlePanCancel()

	if got := p.Info().First.PaintRect.Left; got != 10 {
		t.Errorf("first handle left = %v, want 10", got)
	}
	if p.Info().HandleReverse {
		t.Error("cancel left handles reversed")
	}
	if diff := cmp.Diff([]Rect{{Left: 10, Top: 100, Width: 4, Height: 20}}, done); diff != "" {
		t.Errorf("OnHandleMoveDone mismatch (-want +got):\n%s", diff)
	}
}

func TestShowOrHiddenMenu(t *testing.T) {
	hiddenHandle := handle(10, 100)
	hiddenHandle.IsShow = false

	tests := []struct {
		name string
		info Info
		want bool
	}{
		{"handle visible", Info{First: handle(10, 100), Second: hiddenHandle}, true},
		{"no handle no selection", Info{First: hiddenHandle, Second: hiddenHandle}, false},
		{"selection visible", Info{First: hiddenHandle, Second: hiddenHandle, SelectionVisible: true}, true},
		{"new avoid", Info{First: hiddenHandle, Second: hiddenHandle, IsNewAvoid: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPattern(tt.info)
			p.ShowOrHiddenMenu(false)
			if got := p.MenuVisible(); got != tt.want {
				t.Errorf("MenuVisible() = %v, want %v", got, tt.want)
			}
			p.ShowOrHiddenMenu(true)
			if p.MenuVisible() {
				t.Error("menu visible after hiding")
			}
		})
	}
}

func TestDisableMenu(t *testing.T) {
	p, _ := newTestPattern(Info{First: handle(10, 100), Menu: MenuInfo{MenuIsShow: true}})
	p.DisableMenu(true)
	if p.MenuVisible() {
		t.Error("disabled menu visible")
	}
	if !p.Info().Menu.MenuIsShow {
		t.Error("DisableMenu cleared MenuIsShow")
	}
	p.DisableMenu(false)
	if !p.MenuVisible() {
		t.Error("re-enabled menu not visible")
	}
}

func TestUpdateSelectMenuInfo(t *testing.T) {
	off := Offset{3, 4}
	p, _ := newTestPattern(Info{First: handle(10, 100)})
	before := p.Renders()

	m := MenuInfo{MenuIsShow: true, ShowCopy: true, MenuOffset: &off}
	p.UpdateSelectMenuInfo(m)
	same := Offset{3, 4}
	p.UpdateSelectMenuInfo(MenuInfo{MenuIsShow: true, ShowCopy: true, MenuOffset: &same})

	if got := p.Renders() - before; got != 1 {
		t.Errorf("renders = %d, want 1", got)
	}
	if !p.Info().Menu.ShowCopy || !p.MenuVisible() {
		t.Errorf("menu = %+v", p.Info().Menu)
	}
}

func TestHandleClick(t *testing.T) {
	p, s := newTestPattern(Info{Second: handle(50, 100), IsSingleHandle: true})

	s.Advance(3 * time.Second)
	p.HandleClick()
	if !p.MenuVisible() {
		t.Fatal("click did not show the menu")
	}
	s.Advance(3 * time.Second)
	if p.HandlesHidden() {
		t.Fatal("click did not restart the hidden-handle task")
	}
	p.HandleClick()
	if p.MenuVisible() {
		t.Error("second click did not hide the menu")
	}

	p.DisableMenu(true)
	p.HandleClick()
	if p.Info().Menu.MenuIsShow {
		t.Error("click toggled a disabled menu")
	}
}

func TestHandleClickTwoHandles(t *testing.T) {
	p, _ := newTestPattern(Info{First: handle(10, 100), Second: handle(50, 100)})
	p.HandleClick()
	if p.MenuVisible() {
		t.Error("click toggled the menu outside single-handle mode")
	}
}

func TestMenuOpacity(t *testing.T) {
	p, s := newTestPattern(Info{First: handle(10, 100)})
	if got := p.MenuOpacity(); got != 0 {
		t.Errorf("initial opacity = %v, want 0", got)
	}

	p.ShowOrHiddenMenu(false)
	steps := []struct {
		advance time.Duration
		want    float64
	}{
		{0, 0},
		{MenuFadeDuration / 2, 0.5},
		{MenuFadeDuration / 2, 1},
		{time.Second, 1},
	}
	for _, st := range steps {
		s.Advance(st.advance)
		if got := p.MenuOpacity(); math.Abs(got-st.want) > 1e-9 {
			t.Errorf("show opacity = %v, want %v", got, st.want)
		}
	}

	p.ShowOrHiddenMenu(true)
	s.Advance(MenuFadeDuration / 4)
	if got := p.MenuOpacity(); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("hide opacity = %v, want 0.75", got)
	}
}

func TestDetach(t *testing.T) {
	var closed []bool
	p, s := newTestPattern(Info{
		Second:         handle(50, 100),
		IsSingleHandle: true,
		OnClose:        func(g bool) { closed = append(closed, g) },
	})
	p.Detach(true)
	p.Detach(false)

	if diff := cmp.Diff([]bool{true}, closed); diff != "" {
		t.Errorf("OnClose mismatch (-want +got):\n%s", diff)
	}
	if n := s.pending(); n != 0 {
		t.Errorf("pending tasks = %d, want 0", n)
	}
	p.HandleTouchDown(Offset{52, 110})
	p.HandlePanStart(Offset{52, 110})
	if got := p.State(); got != StateIdle {
		t.Errorf("State() = %v, want %v", got, StateIdle)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StateIdle, "Idle"},
		{StateDraggingFirst, "DraggingFirst"},
		{StateDraggingSecond, "DraggingSecond"},
		{StateMenuVisible, "MenuVisible"},
		{StateHiddenPendingTimeout, "HiddenPendingTimeout"},
		{StateHidden, "Hidden"},
		{State(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestNilSchedulerQueuesTasks(t *testing.T) {
	p := NewPattern(Info{Second: handle(50, 100), IsSingleHandle: true}, DefaultTheme(), nil)
	defer p.Detach(false)
	if n := p.RunPending(); n != 0 {
		t.Errorf("RunPending() = %d before the delay, want 0", n)
	}
	if got := p.State(); got != StateHiddenPendingTimeout {
		t.Errorf("State() = %v, want %v", got, StateHiddenPendingTimeout)
	}
}
