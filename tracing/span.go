package tracing

import "github.com/sarchlab/steptrace/hooking"

// A Span is a completed or in-flight span, as recorded by a tracer.
type Span struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	What      string  `json:"what"`
	Where     string  `json:"where"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// Duration returns the time between the start and the end of the span.
func (s Span) Duration() float64 {
	return s.EndTime - s.StartTime
}

func spanFromEnter(enter hooking.SpanEnter, now float64) Span {
	return Span{
		ID:        enter.ID,
		Kind:      enter.Kind,
		What:      enter.What,
		Where:     enter.Where,
		StartTime: now,
	}
}

func accepts(filter hooking.SpanFilter, enter hooking.SpanEnter) bool {
	return filter == nil || filter(enter)
}
