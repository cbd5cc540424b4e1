package steptrace

// TraceTask wraps a task so that the instrument is entered on the first step
// and exited when the task completes. If the task never completes, OnExit is
// never called.
//
// The Trace constructors panic if the task or an instrument is a nil
// interface. A nil pointer of a concrete task or instrument type is
// not detected and panics on the first Step instead.
func TraceTask[T any](task Task[T], instrument Instrument) *TaskTracer[T] {
	taskMustNotBeNil(task)
	instrumentMustNotBeNil(instrument)

	return &TaskTracer[T]{
		task:       task,
		instrument: instrument,
	}
}

// TraceStep wraps a task so that the instrument is entered before and exited
// after every step.
func TraceStep[T any](task Task[T], instrument Instrument) *StepTracer[T] {
	taskMustNotBeNil(task)
	instrumentMustNotBeNil(instrument)

	return &StepTracer[T]{
		task:       task,
		instrument: instrument,
	}
}

// TraceTaskAndStep combines TraceTask and TraceStep. The taskInstrument acts
// as in TraceTask and the stepInstrument acts as in TraceStep. The two
// instruments must be different instances.
func TraceTaskAndStep[T any](
	task Task[T],
	taskInstrument Instrument,
	stepInstrument Instrument,
) *TaskAndStepTracer[T] {
	taskMustNotBeNil(task)
	instrumentMustNotBeNil(taskInstrument)
	instrumentMustNotBeNil(stepInstrument)

	t := &TaskAndStepTracer[T]{}
	t.steps = StepTracer[T]{
		task:       task,
		instrument: stepInstrument,
	}
	t.task = TaskTracer[T]{
		task:       &t.steps,
		instrument: taskInstrument,
	}

	return t
}

func taskMustNotBeNil[T any](task Task[T]) {
	if task == nil {
		panic("task must not be nil")
	}
}

func instrumentMustNotBeNil(instrument Instrument) {
	if instrument == nil {
		panic("instrument must not be nil")
	}
}
