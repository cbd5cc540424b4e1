package instruments

import (
	"github.com/rs/xid"
	"github.com/sarchlab/steptrace"
	"github.com/sarchlab/steptrace/hooking"
)

// HookInstrument publishes spans to a hooking domain. Every time the span is
// entered, a new span ID is generated and the hooks of the domain receive a
// hooking.SpanEnter. When the span is exited, they receive a
// hooking.SpanExit with the same ID.
//
// If the domain has no hooks when the span is entered, the span is not
// published, and its exit is not published either, even if a hook is attached
// in between.
type HookInstrument struct {
	domain hooking.NamedHookable
	kind   string
	what   string

	entered   bool
	currentID string
}

// NewHookInstrument creates a HookInstrument. The kind is usually
// hooking.KindTask or hooking.KindStep, and what names the traced task.
func NewHookInstrument(
	domain hooking.NamedHookable,
	kind string,
	what string,
) *HookInstrument {
	allRequiredFieldsMustBeNotEmpty(domain, kind, what)

	return &HookInstrument{
		domain: domain,
		kind:   kind,
		what:   what,
	}
}

func allRequiredFieldsMustBeNotEmpty(
	domain hooking.NamedHookable,
	kind string,
	what string,
) {
	if domain == nil {
		panic("domain must not be nil")
	}

	if domain.Name() == "" {
		panic("domain must have a name")
	}

	if kind == "" {
		panic("kind must not be empty")
	}

	if what == "" {
		panic("what must not be empty")
	}
}

// OnEnter starts a new span.
func (i *HookInstrument) OnEnter() {
	i.entered = true

	if i.domain.NumHooks() == 0 {
		return
	}

	i.currentID = xid.New().String()

	i.domain.InvokeHook(hooking.HookCtx{
		Domain: i.domain,
		Pos:    hooking.HookPosSpanEnter,
		Item: hooking.SpanEnter{
			ID:    i.currentID,
			Kind:  i.kind,
			What:  i.what,
			Where: i.domain.Name(),
		},
	})
}

// OnExit ends the current span.
func (i *HookInstrument) OnExit() {
	if i.domain.NumHooks() == 0 {
		i.entered = false
		i.currentID = ""

		return
	}

	if !i.entered {
		panic("exiting a span that was never entered")
	}

	i.entered = false

	if i.currentID == "" {
		return
	}

	i.domain.InvokeHook(hooking.HookCtx{
		Domain: i.domain,
		Pos:    hooking.HookPosSpanExit,
		Item:   hooking.SpanExit{ID: i.currentID},
	})

	i.currentID = ""
}

// SpanID returns the ID of the open span, or an empty string if no span is
// open.
func (i *HookInstrument) SpanID() string {
	return i.currentID
}

var _ steptrace.Instrument = (*HookInstrument)(nil)
