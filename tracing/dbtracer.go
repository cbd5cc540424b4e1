package tracing

import (
	"sync"

	"github.com/sarchlab/steptrace/hooking"
	"github.com/tebeka/atexit"
)

// DBTracer is a tracer that stores spans through a TraceWriter. A span is
// written when it is exited. Spans that are never exited are not written.
type DBTracer struct {
	mu            sync.Mutex
	timeTeller    hooking.TimeTeller
	filter        hooking.SpanFilter
	backend       TraceWriter
	inflightSpans map[string]Span
	terminated    bool
}

// NewDBTracer creates a new DBTracer. It initializes the backend and makes
// sure the backend is flushed when the program exits through atexit.Exit.
func NewDBTracer(
	timeTeller hooking.TimeTeller,
	backend TraceWriter,
) *DBTracer {
	if backend == nil {
		panic("backend must not be nil")
	}

	backend.Init()

	t := &DBTracer{
		timeTeller:    timeTeller,
		backend:       backend,
		inflightSpans: make(map[string]Span),
	}

	atexit.Register(func() {
		t.Terminate()
	})

	return t
}

// SetFilter sets the filter that selects the spans to store.
func (t *DBTracer) SetFilter(filter hooking.SpanFilter) {
	t.mu.Lock()
	t.filter = filter
	t.mu.Unlock()
}

// Func records the enter and exit of a span.
func (t *DBTracer) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case hooking.HookPosSpanEnter:
		t.EnterSpan(ctx.Item.(hooking.SpanEnter))
	case hooking.HookPosSpanExit:
		t.ExitSpan(ctx.Item.(hooking.SpanExit))
	}
}

// EnterSpan marks the start of a span.
func (t *DBTracer) EnterSpan(enter hooking.SpanEnter) {
	t.mu.Lock()
	defer t.mu.Unlock()

	enteringSpanMustBeValid(enter)

	if t.terminated || !accepts(t.filter, enter) {
		return
	}

	t.inflightSpans[enter.ID] = spanFromEnter(enter, t.timeTeller.Now())
}

func enteringSpanMustBeValid(enter hooking.SpanEnter) {
	if enter.ID == "" {
		panic("span ID must be set")
	}

	if enter.Kind == "" {
		panic("span kind must be set")
	}

	if enter.What == "" {
		panic("span what must be set")
	}
}

// ExitSpan marks the end of a span and writes it.
func (t *DBTracer) ExitSpan(exit hooking.SpanExit) {
	t.mu.Lock()
	defer t.mu.Unlock()

	span, ok := t.inflightSpans[exit.ID]
	if !ok {
		return
	}

	span.EndTime = t.timeTeller.Now()
	delete(t.inflightSpans, exit.ID)

	t.backend.Write(span)
}

// InflightSpans returns the number of spans that are entered but not exited.
func (t *DBTracer) InflightSpans() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.inflightSpans)
}

// Terminate drops the spans that are still open and flushes the backend.
// Spans entered after Terminate are ignored.
func (t *DBTracer) Terminate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.terminated {
		return
	}

	t.terminated = true
	t.inflightSpans = make(map[string]Span)
	t.backend.Flush()
}
