package instruments

import (
	"github.com/sarchlab/steptrace"
)

// OutputPin is a digital output, such as a GPIO pin.
type OutputPin interface {
	SetHigh() error
	SetLow() error
}

// Pin sets an OutputPin high when a span is entered and low when it is
// exited.
//
// Errors reported by the pin do not interrupt the traced task. The first one
// is kept and can be retrieved with Err.
type Pin struct {
	pin OutputPin
	err error
}

// NewPin creates a Pin that drives the given output.
func NewPin(pin OutputPin) *Pin {
	if pin == nil {
		panic("pin must not be nil")
	}

	return &Pin{pin: pin}
}

// OnEnter sets the pin high.
func (p *Pin) OnEnter() {
	p.keepFirstError(p.pin.SetHigh())
}

// OnExit sets the pin low.
func (p *Pin) OnExit() {
	p.keepFirstError(p.pin.SetLow())
}

func (p *Pin) keepFirstError(err error) {
	if err != nil && p.err == nil {
		p.err = err
	}
}

// Err returns the first error reported by the pin, if any.
func (p *Pin) Err() error {
	return p.err
}

// Free returns the underlying pin. The Pin must not be used afterwards.
func (p *Pin) Free() OutputPin {
	pin := p.pin
	p.pin = nil

	return pin
}

var _ steptrace.Instrument = (*Pin)(nil)
