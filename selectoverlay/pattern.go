package selectoverlay

import "time"

// HiddenHandleDelay is how long a single handle stays visible without
// interaction.
const HiddenHandleDelay = 4000 * time.Millisecond

// MenuFadeDuration is the length of the menu show and hide animation.
const MenuFadeDuration = 150 * time.Millisecond

// Pattern is the selection overlay state machine for one host component.
type Pattern struct {
	info  Info
	theme Theme
	sched Scheduler

	firstRegion  Rect
	secondRegion Rect

	firstTouchDown  bool
	secondTouchDown bool

	dragging       bool
	dragFirst      bool
	dragStart      HandleInfo
	dragRaw        HandleInfo
	menuBeforeDrag bool

	hiddenTimer Timer
	hiddenGen   uint64
	hidden      bool
	detached    bool

	menuAnimStart time.Time
	menuAnimShow  bool
	menuAnimated  bool

	renders int
}

// NewPattern returns an overlay for info. A nil scheduler uses
// NewTimeScheduler(nil), whose fired tasks run only from RunPending. In
// single-handle mode the hidden-handle timer starts immediately.
func NewPattern(info Info, theme Theme, sched Scheduler) *Pattern {
	if sched == nil {
		sched = NewTimeScheduler(nil)
	}
	p := &Pattern{info: info, theme: theme, sched: sched}
	p.updateHotZones()
	p.checkHandleReverse()
	if info.IsSingleHandle {
		p.StartHiddenHandleTask()
	}
	return p
}

// RunPending runs the fired timer tasks queued by the pattern's scheduler
// and returns how many ran. It does nothing for schedulers that deliver
// tasks themselves.
func (p *Pattern) RunPending() int {
	if r, ok := p.sched.(pendingRunner); ok {
		return r.RunPending()
	}
	return 0
}

// Info returns a copy of the current selection state.
func (p *Pattern) Info() Info { return p.info }

// HandleRegions returns the touch regions of the first and second handle.
func (p *Pattern) HandleRegions() (first, second Rect) {
	return p.firstRegion, p.secondRegion
}

// Renders returns how many times the overlay requested a repaint.
func (p *Pattern) Renders() int { return p.renders }

// HandlesHidden reports whether the hidden-handle timer has fired.
func (p *Pattern) HandlesHidden() bool { return p.hidden }

// Detached reports whether the overlay was closed.
func (p *Pattern) Detached() bool { return p.detached }

// State returns the current interaction state.
func (p *Pattern) State() State {
	switch {
	case p.dragging && p.dragFirst:
		return StateDraggingFirst
	case p.dragging:
		return StateDraggingSecond
	case p.hidden:
		return StateHidden
	case p.hiddenTimer != nil:
		return StateHiddenPendingTimeout
	case p.MenuVisible():
		return StateMenuVisible
	default:
		return StateIdle
	}
}

func (p *Pattern) markDirty() { p.renders++ }

func (p *Pattern) updateHotZones() {
	r := p.theme.HandleHotZoneRadius
	p.firstRegion = p.info.First.hotZone(r)
	p.secondRegion = p.info.Second.hotZone(r)
}

// checkHandleReverse recomputes HandleReverse and reports a change.
func (p *Pattern) checkHandleReverse() {
	f, s := p.info.First.PaintRect, p.info.Second.PaintRect
	var reversed bool
	if abs(f.Top-s.Top) < epsilon {
		reversed = f.Left-s.Left > epsilon
	} else {
		reversed = f.Top-s.Top > epsilon
	}
	if reversed == p.info.HandleReverse {
		return
	}
	p.info.HandleReverse = reversed
	if p.info.OnHandleReverse != nil {
		p.info.OnHandleReverse(reversed)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// UpdateFirstSelectHandleInfo replaces the first handle's geometry.
func (p *Pattern) UpdateFirstSelectHandleInfo(h HandleInfo) {
	if p.info.First.Equal(h) {
		return
	}
	p.info.First = h
	p.handlesChanged()
}

// UpdateSecondSelectHandleInfo replaces the second handle's geometry.
func (p *Pattern) UpdateSecondSelectHandleInfo(h HandleInfo) {
	if p.info.Second.Equal(h) {
		return
	}
	p.info.Second = h
	p.handlesChanged()
}

// UpdateFirstAndSecondHandleInfo replaces both handles at once.
func (p *Pattern) UpdateFirstAndSecondHandleInfo(first, second HandleInfo) {
	if p.info.First.Equal(first) && p.info.Second.Equal(second) {
		return
	}
	p.info.First = first
	p.info.Second = second
	p.handlesChanged()
}

func (p *Pattern) handlesChanged() {
	p.checkHandleReverse()
	p.updateHotZones()
	p.markDirty()
}

// UpdateSelectMenuInfo replaces the menu state.
func (p *Pattern) UpdateSelectMenuInfo(m MenuInfo) {
	if p.info.Menu.Equal(m) {
		return
	}
	was := p.MenuVisible()
	p.info.Menu = m
	p.menuChanged(was)
}

// ShowOrHiddenMenu hides or shows the menu. The menu is shown only while
// a handle or the selection is visible, unless IsNewAvoid is set.
func (p *Pattern) ShowOrHiddenMenu(isHidden bool) {
	was := p.MenuVisible()
	switch {
	case p.info.Menu.MenuIsShow && isHidden:
		p.info.Menu.MenuIsShow = false
	case !p.info.Menu.MenuIsShow && !isHidden && p.menuAllowed():
		p.info.Menu.MenuIsShow = true
	default:
		return
	}
	p.menuChanged(was)
}

// DisableMenu suppresses the menu regardless of MenuIsShow.
func (p *Pattern) DisableMenu(disabled bool) {
	if p.info.Menu.MenuDisable == disabled {
		return
	}
	was := p.MenuVisible()
	p.info.Menu.MenuDisable = disabled
	p.menuChanged(was)
}

func (p *Pattern) menuAllowed() bool {
	return p.info.First.IsShow || p.info.Second.IsShow || p.info.SelectionVisible || p.info.IsNewAvoid
}

// MenuVisible reports whether the menu is shown and enabled.
func (p *Pattern) MenuVisible() bool {
	return p.info.Menu.MenuIsShow && !p.info.Menu.MenuDisable
}

func (p *Pattern) menuChanged(was bool) {
	now := p.MenuVisible()
	if now != was {
		p.menuAnimStart = p.sched.Now()
		p.menuAnimShow = now
		p.menuAnimated = true
		if p.info.OnMenuChange != nil {
			p.info.OnMenuChange(now)
		}
	}
	p.markDirty()
}

// MenuOpacity returns the menu opacity in [0,1] at the scheduler's
// current time, following the last show or hide animation.
func (p *Pattern) MenuOpacity() float64 {
	if !p.menuAnimated {
		if p.MenuVisible() {
			return 1
		}
		return 0
	}
	t := float64(p.sched.Now().Sub(p.menuAnimStart)) / float64(MenuFadeDuration)
	t = min(max(t, 0), 1)
	if p.menuAnimShow {
		return t
	}
	return 1 - t
}

// interactive reports whether gestures are still routed to the handles.
func (p *Pattern) interactive() bool {
	return !p.hidden && !p.detached
}

// HandleTouchDown records which handles the touch point hits.
func (p *Pattern) HandleTouchDown(pt Offset) {
	if !p.interactive() {
		return
	}
	if p.info.IsSingleHandle {
		p.firstTouchDown = false
		p.secondTouchDown = p.info.Second.IsShow && p.secondRegion.Contains(pt)
		return
	}
	p.firstTouchDown = p.info.First.IsShow && p.firstRegion.Contains(pt)
	p.secondTouchDown = p.info.Second.IsShow && p.secondRegion.Contains(pt)
}

// isFirstHandleMoveStart picks the handle to drag when both were touched.
// Both centers use their X coordinate for both axes, so only horizontal
// distance separates the handles; ties go to the second handle.
func (p *Pattern) isFirstHandleMoveStart(pt Offset) bool {
	if p.firstTouchDown && p.secondTouchDown {
		fc := p.firstRegion.Center()
		sc := p.secondRegion.Center()
		first := Offset{fc.X, fc.X}.Sub(pt).Distance()
		second := Offset{sc.X, sc.X}.Sub(pt).Distance()
		return second-first > epsilon
	}
	return p.firstTouchDown
}

// HandlePanStart begins a drag on the touched handle.
func (p *Pattern) HandlePanStart(pt Offset) {
	if !p.interactive() || p.dragging {
		return
	}
	if !p.firstTouchDown && !p.secondTouchDown {
		return
	}
	p.dragFirst = p.isFirstHandleMoveStart(pt)
	p.dragging = true
	if p.dragFirst {
		p.dragStart = p.info.First
	} else {
		p.dragStart = p.info.Second
	}
	p.dragRaw = p.dragStart
	p.StopHiddenHandleTask()

	p.menuBeforeDrag = p.info.Menu.MenuIsShow
	if p.info.Menu.MenuIsShow {
		was := p.MenuVisible()
		p.info.Menu.MenuIsShow = false
		p.menuChanged(was)
	}
	Logger().Debug("selectoverlay: drag start", "first", p.dragFirst)
	if p.info.OnHandleMoveStart != nil {
		p.info.OnHandleMoveStart(p.dragFirst)
	}
}

// HandlePanMove moves the dragged handle by delta.
func (p *Pattern) HandlePanMove(delta Offset) {
	if !p.dragging {
		return
	}
	p.dragRaw = p.dragRaw.offset(delta)
	h := p.dragRaw
	if p.info.ClipHandleToEdge {
		h = p.clampToShowArea(h)
	}
	if p.dragFirst {
		p.info.First = h
	} else {
		p.info.Second = h
	}
	p.updateHotZones()
	if p.info.OnHandleMove != nil {
		p.info.OnHandleMove(h.PaintRect, p.dragFirst)
	}
	p.checkHandleReverse()
	p.markDirty()
}

// clampToShowArea keeps the handle rectangle inside ShowArea.
func (p *Pattern) clampToShowArea(h HandleInfo) HandleInfo {
	area := p.info.ShowArea
	r := h.PaintRect
	left := clamp(r.Left, area.Left, area.Right()-r.Width)
	top := clamp(r.Top, area.Top, area.Bottom()-r.Height)
	return h.offset(Offset{left - r.Left, top - r.Top})
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

// HandlePanEnd finishes the drag, restoring the menu to its state before
// the drag.
func (p *Pattern) HandlePanEnd() {
	if !p.dragging {
		return
	}
	p.finishDrag()
}

// HandlePanCancel aborts the drag and puts the handle back where it was.
func (p *Pattern) HandlePanCancel() {
	if !p.dragging {
		return
	}
	if p.dragFirst {
		p.info.First = p.dragStart
	} else {
		p.info.Second = p.dragStart
	}
	p.updateHotZones()
	p.checkHandleReverse()
	p.finishDrag()
}

func (p *Pattern) finishDrag() {
	isFirst := p.dragFirst
	rect := p.info.Second.PaintRect
	if isFirst {
		rect = p.info.First.PaintRect
	}
	p.dragging = false
	p.firstTouchDown = false
	p.secondTouchDown = false

	if p.menuBeforeDrag != p.info.Menu.MenuIsShow {
		was := p.MenuVisible()
		p.info.Menu.MenuIsShow = p.menuBeforeDrag
		p.menuChanged(was)
	} else {
		p.markDirty()
	}
	if p.info.IsSingleHandle {
		p.StartHiddenHandleTask()
	}
	Logger().Debug("selectoverlay: drag end", "first", isFirst)
	if p.info.OnHandleMoveDone != nil {
		p.info.OnHandleMoveDone(rect, isFirst)
	}
}

// HandleClick toggles the menu in single-handle mode and restarts the
// hidden-handle timer.
func (p *Pattern) HandleClick() {
	if !p.interactive() || !p.info.IsSingleHandle {
		return
	}
	if !p.info.Menu.MenuDisable {
		was := p.MenuVisible()
		p.info.Menu.MenuIsShow = !p.info.Menu.MenuIsShow
		p.menuChanged(was)
	}
	p.StopHiddenHandleTask()
	p.StartHiddenHandleTask()
}

// StartHiddenHandleTask schedules the handles to hide after
// HiddenHandleDelay. A pending task is left untouched.
func (p *Pattern) StartHiddenHandleTask() {
	if p.hiddenTimer != nil || !p.interactive() {
		return
	}
	p.hiddenGen++
	gen := p.hiddenGen
	p.hiddenTimer = p.sched.AfterFunc(HiddenHandleDelay, func() {
		if gen != p.hiddenGen {
			return
		}
		p.hiddenTimer = nil
		p.hideHandles()
	})
}

// StopHiddenHandleTask cancels a pending hidden-handle task.
func (p *Pattern) StopHiddenHandleTask() {
	if p.hiddenTimer == nil {
		return
	}
	p.hiddenTimer.Stop()
	p.hiddenTimer = nil
	p.hiddenGen++
}

// hideHandles detaches the gestures and repaints the handles as hidden.
func (p *Pattern) hideHandles() {
	if p.detached {
		return
	}
	p.hidden = true
	p.firstTouchDown = false
	p.secondTouchDown = false
	Logger().Debug("selectoverlay: handles hidden")
	p.markDirty()
}

// ResetHiddenHandle makes hidden handles visible and interactive again.
func (p *Pattern) ResetHiddenHandle() {
	if !p.hidden || p.detached {
		return
	}
	p.hidden = false
	p.markDirty()
	if p.info.IsSingleHandle {
		p.StartHiddenHandleTask()
	}
}

// Detach closes the overlay and reports to the host whether a touch
// outside the overlay closed it. Later events are ignored.
func (p *Pattern) Detach(closedByGlobalTouch bool) {
	if p.detached {
		return
	}
	p.StopHiddenHandleTask()
	p.dragging = false
	p.detached = true
	if p.info.OnClose != nil {
		p.info.OnClose(closedByGlobalTouch)
	}
}
