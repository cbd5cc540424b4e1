package tracing

import (
	"sync"

	"github.com/sarchlab/steptrace/hooking"
)

// TotalTimeTracer can collect the total time spent in a certain type of span.
// If two spans overlap, this tracer simply adds the two durations together.
type TotalTimeTracer struct {
	timeTeller    hooking.TimeTeller
	filter        hooking.SpanFilter
	lock          sync.Mutex
	totalTime     float64
	inflightSpans map[string]float64
}

// NewTotalTimeTracer creates a new TotalTimeTracer. The filter is optional.
func NewTotalTimeTracer(
	timeTeller hooking.TimeTeller,
	filter hooking.SpanFilter,
) *TotalTimeTracer {
	t := &TotalTimeTracer{
		timeTeller:    timeTeller,
		filter:        filter,
		inflightSpans: make(map[string]float64),
	}

	return t
}

// Func records the enter and exit of a span.
func (t *TotalTimeTracer) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case hooking.HookPosSpanEnter:
		t.EnterSpan(ctx.Item.(hooking.SpanEnter))
	case hooking.HookPosSpanExit:
		t.ExitSpan(ctx.Item.(hooking.SpanExit))
	}
}

// TotalTime returns the total time spent in the spans.
func (t *TotalTimeTracer) TotalTime() float64 {
	t.lock.Lock()
	time := t.totalTime
	t.lock.Unlock()

	return time
}

// EnterSpan records the span enter time.
func (t *TotalTimeTracer) EnterSpan(enter hooking.SpanEnter) {
	if !accepts(t.filter, enter) {
		return
	}

	now := t.timeTeller.Now()

	t.lock.Lock()
	t.inflightSpans[enter.ID] = now
	t.lock.Unlock()
}

// ExitSpan adds the duration of the span to the total time.
func (t *TotalTimeTracer) ExitSpan(exit hooking.SpanExit) {
	t.lock.Lock()
	defer t.lock.Unlock()

	start, ok := t.inflightSpans[exit.ID]
	if !ok {
		return
	}

	t.totalTime += t.timeTeller.Now() - start
	delete(t.inflightSpans, exit.ID)
}
