package instruments

import (
	"log"

	"github.com/sarchlab/steptrace"
)

// Logger is an instrument that prints a line when a span is entered or
// exited.
type Logger struct {
	*log.Logger

	name string
}

// NewLogger creates a Logger that writes into the logger under the given span
// name.
func NewLogger(logger *log.Logger, name string) *Logger {
	return &Logger{
		Logger: logger,
		name:   name,
	}
}

// OnEnter prints the enter line.
func (l *Logger) OnEnter() {
	l.Printf("enter %s", l.name)
}

// OnExit prints the exit line.
func (l *Logger) OnExit() {
	l.Printf("exit %s", l.name)
}

var _ steptrace.Instrument = (*Logger)(nil)
