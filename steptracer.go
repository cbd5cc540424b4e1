package steptrace

// StepTracer brackets every step of a task with an OnEnter and an OnExit call,
// regardless of whether the step completes the task.
type StepTracer[T any] struct {
	task       Task[T]
	instrument Instrument
}

// Step steps the wrapped task between OnEnter and OnExit.
func (t *StepTracer[T]) Step() (T, bool) {
	t.instrument.OnEnter()
	out, done := t.task.Step()
	t.instrument.OnExit()

	return out, done
}
