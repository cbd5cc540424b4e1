package hooking

import (
	"log"
)

// LogHookBase provides the common logic for all hooks that write to a logger.
type LogHookBase struct {
	*log.Logger
}

// SpanLogger is a hook that prints span enter and exit events.
type SpanLogger struct {
	LogHookBase

	timeTeller TimeTeller
}

// NewSpanLogger returns a new SpanLogger that writes into the logger. The
// timeTeller is optional.
func NewSpanLogger(logger *log.Logger, timeTeller TimeTeller) *SpanLogger {
	h := new(SpanLogger)
	h.Logger = logger
	h.timeTeller = timeTeller

	return h
}

// Func writes the span information into the logger.
func (h *SpanLogger) Func(ctx HookCtx) {
	now := 0.0
	if h.timeTeller != nil {
		now = h.timeTeller.Now()
	}

	switch item := ctx.Item.(type) {
	case SpanEnter:
		h.Logger.Printf("%.10f, enter %s %s@%s [%s]",
			now, item.Kind, item.What, item.Where, item.ID)
	case SpanExit:
		h.Logger.Printf("%.10f, exit [%s]", now, item.ID)
	}
}
