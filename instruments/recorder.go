package instruments

import (
	"sync"

	"github.com/sarchlab/steptrace"
)

// Recorder keeps an ordered log of the hooks called on its instruments. All
// the instruments created from the same Recorder share the log, so the
// relative order of different spans is preserved.
type Recorder struct {
	mu     sync.Mutex
	events []string
}

// NewRecorder creates a new Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Instrument returns an instrument that records "<name>.enter" and
// "<name>.exit".
func (r *Recorder) Instrument(name string) steptrace.Instrument {
	return &recordingInstrument{
		recorder: r,
		enter:    name + ".enter",
		exit:     name + ".exit",
	}
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := make([]string, len(r.events))
	copy(events, r.events)

	return events
}

// Reset drops all the recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

func (r *Recorder) record(event string) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

type recordingInstrument struct {
	recorder    *Recorder
	enter, exit string
}

func (i *recordingInstrument) OnEnter() {
	i.recorder.record(i.enter)
}

func (i *recordingInstrument) OnExit() {
	i.recorder.record(i.exit)
}
