package tracing

import (
	"sync"

	"github.com/sarchlab/steptrace/hooking"
)

// SpanCountTracer counts the spans that have been entered and exited,
// grouped by what they trace.
type SpanCountTracer struct {
	filter        hooking.SpanFilter
	lock          sync.Mutex
	inflightSpans map[string]string
	names         []string
	enterCount    map[string]uint64
	exitCount     map[string]uint64
}

// NewSpanCountTracer creates a new SpanCountTracer. The filter is optional.
func NewSpanCountTracer(filter hooking.SpanFilter) *SpanCountTracer {
	t := &SpanCountTracer{
		filter:        filter,
		inflightSpans: make(map[string]string),
		enterCount:    make(map[string]uint64),
		exitCount:     make(map[string]uint64),
	}

	return t
}

// Func records the enter and exit of a span.
func (t *SpanCountTracer) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case hooking.HookPosSpanEnter:
		t.EnterSpan(ctx.Item.(hooking.SpanEnter))
	case hooking.HookPosSpanExit:
		t.ExitSpan(ctx.Item.(hooking.SpanExit))
	}
}

// Names returns the names of the spans seen, in the order of first
// appearance.
func (t *SpanCountTracer) Names() []string {
	t.lock.Lock()
	defer t.lock.Unlock()

	names := make([]string, len(t.names))
	copy(names, t.names)

	return names
}

// EnterCount returns how many spans with the given name were entered.
func (t *SpanCountTracer) EnterCount(what string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.enterCount[what]
}

// ExitCount returns how many spans with the given name were exited.
func (t *SpanCountTracer) ExitCount(what string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.exitCount[what]
}

// EnterSpan counts the span enter.
func (t *SpanCountTracer) EnterSpan(enter hooking.SpanEnter) {
	if !accepts(t.filter, enter) {
		return
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	if _, ok := t.enterCount[enter.What]; !ok {
		t.names = append(t.names, enter.What)
	}

	t.enterCount[enter.What]++
	t.inflightSpans[enter.ID] = enter.What
}

// ExitSpan counts the span exit.
func (t *SpanCountTracer) ExitSpan(exit hooking.SpanExit) {
	t.lock.Lock()
	defer t.lock.Unlock()

	what, ok := t.inflightSpans[exit.ID]
	if !ok {
		return
	}

	t.exitCount[what]++
	delete(t.inflightSpans, exit.ID)
}
