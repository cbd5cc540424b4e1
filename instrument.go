package steptrace

// An Instrument is notified when a traced span is entered or exited.
//
// The wrappers decide when the hooks are called, the instrument decides what
// happens. Hooks run synchronously inside Step, so they should be fast and
// must not block.
type Instrument interface {
	// OnEnter is called when execution is about to enter the span.
	OnEnter()

	// OnExit is called when execution has just left the span.
	OnExit()
}
