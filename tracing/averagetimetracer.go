package tracing

import (
	"sync"

	"github.com/sarchlab/steptrace/hooking"
)

// AverageTimeTracer can collect the average duration of a certain type of
// span. Only spans that have been exited are counted.
type AverageTimeTracer struct {
	timeTeller    hooking.TimeTeller
	filter        hooking.SpanFilter
	lock          sync.Mutex
	inflightSpans map[string]float64
	totalTime     float64
	spanCount     uint64
}

// NewAverageTimeTracer creates a new AverageTimeTracer. The filter is
// optional.
func NewAverageTimeTracer(
	timeTeller hooking.TimeTeller,
	filter hooking.SpanFilter,
) *AverageTimeTracer {
	t := &AverageTimeTracer{
		timeTeller:    timeTeller,
		filter:        filter,
		inflightSpans: make(map[string]float64),
	}

	return t
}

// Func records the enter and exit of a span.
func (t *AverageTimeTracer) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case hooking.HookPosSpanEnter:
		t.EnterSpan(ctx.Item.(hooking.SpanEnter))
	case hooking.HookPosSpanExit:
		t.ExitSpan(ctx.Item.(hooking.SpanExit))
	}
}

// AverageTime returns the average duration of the exited spans. It returns 0
// if no span has been exited.
func (t *AverageTimeTracer) AverageTime() float64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.spanCount == 0 {
		return 0
	}

	return t.totalTime / float64(t.spanCount)
}

// SpanCount returns the number of exited spans.
func (t *AverageTimeTracer) SpanCount() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.spanCount
}

// EnterSpan records the span enter time.
func (t *AverageTimeTracer) EnterSpan(enter hooking.SpanEnter) {
	if !accepts(t.filter, enter) {
		return
	}

	now := t.timeTeller.Now()

	t.lock.Lock()
	t.inflightSpans[enter.ID] = now
	t.lock.Unlock()
}

// ExitSpan records the span duration.
func (t *AverageTimeTracer) ExitSpan(exit hooking.SpanExit) {
	t.lock.Lock()
	defer t.lock.Unlock()

	start, ok := t.inflightSpans[exit.ID]
	if !ok {
		return
	}

	t.totalTime += t.timeTeller.Now() - start
	t.spanCount++
	delete(t.inflightSpans, exit.ID)
}
