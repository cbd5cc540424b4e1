package tracing

import (
	"container/list"
	"sort"
	"sync"

	"github.com/sarchlab/steptrace/hooking"
)

type spanTimeStartEnd struct {
	start, end float64
	completed  bool
}

// BusyTimeTracer traces the time that a domain is inside a kind of span. If
// spans overlap, this tracer only considers one instance of the overlapped
// time.
type BusyTimeTracer struct {
	lock          sync.Mutex
	timeTeller    hooking.TimeTeller
	filter        hooking.SpanFilter
	inflightSpans map[string]*list.Element
	spanTimes     *list.List
	busyTime      float64
}

// NewBusyTimeTracer creates a new BusyTimeTracer. The filter is optional.
func NewBusyTimeTracer(
	timeTeller hooking.TimeTeller,
	filter hooking.SpanFilter,
) *BusyTimeTracer {
	t := &BusyTimeTracer{
		timeTeller:    timeTeller,
		filter:        filter,
		inflightSpans: make(map[string]*list.Element),
		spanTimes:     list.New(),
	}

	return t
}

// Func records the enter and exit of a span.
func (t *BusyTimeTracer) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case hooking.HookPosSpanEnter:
		t.EnterSpan(ctx.Item.(hooking.SpanEnter))
	case hooking.HookPosSpanExit:
		t.ExitSpan(ctx.Item.(hooking.SpanExit))
	}
}

// BusyTime returns the total time has been spent inside the spans.
func (t *BusyTimeTracer) BusyTime() float64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.busyTime
}

// TerminateAllSpans marks all the open spans as exited at the current time.
func (t *BusyTimeTracer) TerminateAllSpans() {
	t.lock.Lock()
	defer t.lock.Unlock()

	now := t.timeTeller.Now()

	for e := t.spanTimes.Front(); e != nil; e = e.Next() {
		span := e.Value.(*spanTimeStartEnd)
		if !span.completed {
			span.completed = true
			span.end = now
		}
	}

	t.inflightSpans = make(map[string]*list.Element)
	t.collapse(now)
}

// EnterSpan records the span enter time.
func (t *BusyTimeTracer) EnterSpan(enter hooking.SpanEnter) {
	if !accepts(t.filter, enter) {
		return
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	now := t.timeTeller.Now()
	spanTime := &spanTimeStartEnd{start: now}

	elem := t.spanTimes.PushBack(spanTime)
	t.inflightSpans[enter.ID] = elem
}

// ExitSpan records the span exit time.
func (t *BusyTimeTracer) ExitSpan(exit hooking.SpanExit) {
	t.lock.Lock()
	defer t.lock.Unlock()

	elem, ok := t.inflightSpans[exit.ID]
	if !ok {
		return
	}

	now := t.timeTeller.Now()
	spanTime := elem.Value.(*spanTimeStartEnd)
	spanTime.end = now
	spanTime.completed = true

	delete(t.inflightSpans, exit.ID)

	t.collapse(now)
}

func (t *BusyTimeTracer) collapse(now float64) {
	start, found := t.startTimeOfFirstIncompleteSpan()
	if found && start < now {
		return
	}

	finished := make([]*spanTimeStartEnd, 0)

	var next *list.Element
	for e := t.spanTimes.Front(); e != nil; e = next {
		next = e.Next()

		span := e.Value.(*spanTimeStartEnd)
		if !span.completed {
			break
		}

		if span.end <= now {
			finished = append(finished, span)
			t.spanTimes.Remove(e)
		}
	}

	t.busyTime += busyTimeOf(finished)
}

func (t *BusyTimeTracer) startTimeOfFirstIncompleteSpan() (float64, bool) {
	for e := t.spanTimes.Front(); e != nil; e = e.Next() {
		span := e.Value.(*spanTimeStartEnd)
		if !span.completed {
			return span.start, true
		}
	}

	return 0, false
}

func busyTimeOf(spans []*spanTimeStartEnd) float64 {
	if len(spans) == 0 {
		return 0
	}

	sorted := make([]*spanTimeStartEnd, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].start < sorted[j].start
	})

	busyTime := 0.0
	current := *sorted[0]

	for _, s := range sorted[1:] {
		if s.start <= current.end {
			if s.end > current.end {
				current.end = s.end
			}

			continue
		}

		busyTime += current.end - current.start
		current = *s
	}

	busyTime += current.end - current.start

	return busyTime
}
