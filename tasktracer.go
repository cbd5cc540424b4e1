package steptrace

// TaskTracer brackets the whole lifetime of a task with one OnEnter and one
// OnExit call.
type TaskTracer[T any] struct {
	task       Task[T]
	instrument Instrument
	started    bool
}

// Step steps the wrapped task. The first call invokes OnEnter before the
// task runs. The call that completes the task invokes OnExit after the task
// returns and before the output is handed back.
func (t *TaskTracer[T]) Step() (T, bool) {
	if !t.started {
		t.instrument.OnEnter()
		t.started = true
	}

	out, done := t.task.Step()
	if done {
		t.instrument.OnExit()
	}

	return out, done
}

// Started returns true if the task has been stepped at least once.
func (t *TaskTracer[T]) Started() bool {
	return t.started
}
