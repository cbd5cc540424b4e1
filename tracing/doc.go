// Package tracing provides hooks that collect the spans published by
// instruments.HookInstrument.
//
// Tracers are hooking.Hook implementations. Register them on the domain the
// instruments publish to:
//
//	domain := hooking.NewDomain("MCU")
//	busy := tracing.NewBusyTimeTracer(clock, nil)
//	domain.AcceptHook(busy)
//
//	inst := instruments.NewHookInstrument(domain, hooking.KindTask, "blink")
//	traced := steptrace.TraceTask[int](task, inst)
//
// The tracers read the time from a hooking.TimeTeller when a span is entered
// or exited. Tracing never happens inside the steptrace wrappers themselves.
package tracing
