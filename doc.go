// Package steptrace traces the execution of suspendable tasks.
//
// A Task is advanced by calling Step until it reports completion. The
// wrappers in this package forward every step to the wrapped task and call
// the hooks of an Instrument around it:
//
//   - TraceTask calls OnEnter when the task is stepped for the first time and
//     OnExit when the task completes. It measures the lifetime of a task.
//   - TraceStep calls OnEnter before and OnExit after every step. It measures
//     the cost of individual steps.
//   - TraceTaskAndStep does both with two separate instruments.
//
// Wrappers are tasks themselves, so they can be handed to any scheduler that
// drives tasks, or wrapped again.
//
//	pin := instruments.NewPin(led)
//	traced := steptrace.TraceTask[int](job, pin)
//
//	for {
//	    out, done := traced.Step()
//	    if done {
//	        fmt.Println(out)
//	        break
//	    }
//	}
//
// The wrappers never measure time and never recover panics. A panic raised by
// the task or by an instrument leaves the wrapper at the point it occurred and
// no later hook runs.
package steptrace
