package steptrace

// TaskAndStepTracer traces both the lifetime of a task and each of its steps.
// It is a TaskTracer stacked on a StepTracer, so the task instrument observes
// the outside of the step instrument:
//
//	task.OnEnter (first step only)
//	step.OnEnter
//	Step of the wrapped task
//	step.OnExit
//	task.OnExit (completing step only)
type TaskAndStepTracer[T any] struct {
	steps StepTracer[T]
	task  TaskTracer[T]
}

// Step steps the wrapped task.
func (t *TaskAndStepTracer[T]) Step() (T, bool) {
	return t.task.Step()
}
