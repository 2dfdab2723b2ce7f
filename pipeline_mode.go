package canvas

// Pipeline selects how draw commands are executed. It is chosen once when
// the renderer is created.
type Pipeline int

const (
	// PipelineImmediate executes every command when it is issued.
	PipelineImmediate Pipeline = iota

	// PipelineDeferred queues commands in issue order and executes them
	// on Flush.
	PipelineDeferred
)

// String returns the pipeline name.
func (p Pipeline) String() string {
	switch p {
	case PipelineImmediate:
		return "Immediate"
	case PipelineDeferred:
		return "Deferred"
	default:
		return "Unknown"
	}
}

// task is a queued draw command.
type task func()

// taskQueue is the FIFO command queue of a deferred renderer.
type taskQueue struct {
	tasks []task
}

func (q *taskQueue) push(t task) {
	q.tasks = append(q.tasks, t)
}

func (q *taskQueue) len() int {
	return len(q.tasks)
}

// run executes all queued tasks in order and empties the queue. Tasks
// queued while running are executed in the same pass.
func (q *taskQueue) run() int {
	n := 0
	for len(q.tasks) > 0 {
		t := q.tasks[0]
		q.tasks[0] = nil
		q.tasks = q.tasks[1:]
		t()
		n++
	}
	q.tasks = nil
	return n
}
