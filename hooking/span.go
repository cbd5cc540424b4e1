package hooking

// A list of hook poses for the hooks to apply to.
var (
	HookPosSpanEnter = &HookPos{Name: "HookPosSpanEnter"}
	HookPosSpanExit  = &HookPos{Name: "HookPosSpanExit"}
)

// Span kinds.
const (
	KindTask = "task"
	KindStep = "step"
)

// SpanEnter is data that is passed to the hook when a span is entered.
type SpanEnter struct {
	ID    string
	Kind  string
	What  string
	Where string
}

// SpanExit is data that is passed to the hook when a span is exited. The
// other information of the span is carried by the matching SpanEnter.
type SpanExit struct {
	ID string
}

// SpanFilter is a function that can filter interesting spans. If this
// function returns true, the span is considered useful.
type SpanFilter func(s SpanEnter) bool

// A TimeTeller can tell the current time.
type TimeTeller interface {
	Now() float64
}
