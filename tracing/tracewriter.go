package tracing

// A TraceWriter stores spans, typically in a file or a database.
type TraceWriter interface {
	// Init prepares the storage. It must be called before Write.
	Init()

	// Write stores a span. Writers may buffer spans until Flush is called.
	Write(span Span)

	// Flush stores all the buffered spans.
	Flush()
}
