// Package selectoverlay drives the handles and the context menu shown over
// a text selection.
//
// A host text component owns the selection and reports its geometry in
// window coordinates through the Update methods. A Pattern turns touch,
// pan and click events into handle drags, menu visibility changes and
// callbacks back to the host:
//
//	m := selectoverlay.NewManager()
//	p := m.Show(hostID, selectoverlay.Info{
//	    First:  selectoverlay.HandleInfo{IsShow: true, PaintRect: first},
//	    Second: selectoverlay.HandleInfo{IsShow: true, PaintRect: second},
//	    OnHandleMove: func(r selectoverlay.Rect, isFirst bool) {
//	        // move the selection endpoint
//	    },
//	})
//	p.HandleTouchDown(pt)
//	p.HandlePanStart(pt)
//
// In single-handle mode the handle hides itself after HiddenHandleDelay
// without interaction. Timers go through a Scheduler so hosts can deliver
// them on their UI goroutine and tests can drive them with a manual clock.
// The default scheduler never runs a task on a timer goroutine; the host
// drains fired tasks from its loop:
//
//	case <-m.Ready():
//	    m.RunPending()
//
// A Pattern is not safe for concurrent use.
package selectoverlay
