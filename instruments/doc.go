// Package instruments provides ready-made steptrace.Instrument
// implementations.
//
// A Pin drives an output pin high while a span is open, which makes spans
// visible on an oscilloscope or a logic analyzer. Counter and Recorder are
// useful in tests. HookInstrument publishes spans to a hooking.Domain so that
// the tracers in package tracing can measure them. Metrics exports span
// counts to Prometheus.
package instruments
