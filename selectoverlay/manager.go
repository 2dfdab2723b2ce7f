package selectoverlay

// ManagerOption configures a Manager during creation.
type ManagerOption func(*Manager)

// WithTheme sets the theme used by overlays the manager creates.
func WithTheme(t Theme) ManagerOption {
	return func(m *Manager) {
		m.theme = t
	}
}

// WithScheduler sets the scheduler shared by the manager's overlays.
func WithScheduler(s Scheduler) ManagerOption {
	return func(m *Manager) {
		if s != nil {
			m.sched = s
		}
	}
}

// Manager owns the overlays of a window, at most one per host component.
type Manager struct {
	theme    Theme
	sched    Scheduler
	overlays map[int64]*Pattern
}

// NewManager creates an empty Manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		theme:    DefaultTheme(),
		overlays: make(map[int64]*Pattern),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.sched == nil {
		m.sched = NewTimeScheduler(nil)
	}
	return m
}

// Show creates the overlay for host id. An overlay already open for id is
// closed first, without the global-touch flag.
func (m *Manager) Show(id int64, info Info) *Pattern {
	m.Close(id, false)
	p := NewPattern(info, m.theme, m.sched)
	m.overlays[id] = p
	Logger().Debug("selectoverlay: show", "host", id, "single", info.IsSingleHandle)
	return p
}

// Get returns the overlay for host id.
func (m *Manager) Get(id int64) (*Pattern, bool) {
	p, ok := m.overlays[id]
	return p, ok
}

// Close detaches and removes the overlay for host id. It reports whether
// one was open.
func (m *Manager) Close(id int64, closedByGlobalTouch bool) bool {
	p, ok := m.overlays[id]
	if !ok {
		return false
	}
	delete(m.overlays, id)
	p.Detach(closedByGlobalTouch)
	Logger().Debug("selectoverlay: close", "host", id, "globalTouch", closedByGlobalTouch)
	return true
}

// CloseAll closes every overlay, as a touch outside all of them does.
func (m *Manager) CloseAll(closedByGlobalTouch bool) {
	for id := range m.overlays {
		m.Close(id, closedByGlobalTouch)
	}
}

// RunPending runs the fired timer tasks of the manager's scheduler on the
// calling goroutine. Hosts using the default scheduler call it from their
// event loop, for example when Ready is signalled.
func (m *Manager) RunPending() int {
	if r, ok := m.sched.(pendingRunner); ok {
		return r.RunPending()
	}
	return 0
}

// Ready is signalled when a fired task waits for RunPending. It returns
// nil, which blocks forever, for schedulers that deliver tasks themselves.
func (m *Manager) Ready() <-chan struct{} {
	if s, ok := m.sched.(*TimeScheduler); ok {
		return s.Ready()
	}
	return nil
}

// Len returns the number of open overlays.
func (m *Manager) Len() int { return len(m.overlays) }
