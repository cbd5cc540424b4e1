package tracing

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// CSVTraceWriter is a writer that stores spans into a CSV file.
type CSVTraceWriter struct {
	path   string
	file   *os.File
	writer *csv.Writer

	spans      []Span
	bufferSize int
	closed     bool
}

// NewCSVTraceWriter creates a new CSVTraceWriter. The file is created at path
// with the ".csv" extension appended. If path is empty, a unique name is
// generated.
func NewCSVTraceWriter(path string) *CSVTraceWriter {
	return &CSVTraceWriter{
		path:       path,
		bufferSize: 1000,
	}
}

// FileName returns the name of the CSV file.
func (t *CSVTraceWriter) FileName() string {
	return t.path + ".csv"
}

// Init creates the CSV file and writes the header. It panics if the file
// already exists.
func (t *CSVTraceWriter) Init() {
	if t.path == "" {
		t.path = "steptrace_" + xid.New().String()
	}

	filename := t.FileName()
	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	file, err := os.Create(filename)
	if err != nil {
		panic(err)
	}

	t.file = file
	t.writer = csv.NewWriter(file)
	t.mustWrite([]string{"ID", "Kind", "What", "Where", "Start", "End"})

	atexit.Register(func() {
		t.Close()
	})
}

// Write buffers a span. The buffer is flushed once it is full.
func (t *CSVTraceWriter) Write(span Span) {
	t.spans = append(t.spans, span)
	if len(t.spans) >= t.bufferSize {
		t.Flush()
	}
}

// Flush writes the buffered spans to the file. Flushing an empty buffer or a
// closed writer is a no-op.
func (t *CSVTraceWriter) Flush() {
	if t.closed || len(t.spans) == 0 {
		return
	}

	if t.writer == nil {
		panic("trace writer is not initialized")
	}

	for _, span := range t.spans {
		t.mustWrite([]string{
			span.ID,
			span.Kind,
			span.What,
			span.Where,
			strconv.FormatFloat(span.StartTime, 'f', 10, 64),
			strconv.FormatFloat(span.EndTime, 'f', 10, 64),
		})
	}

	t.spans = nil
	t.flushFile()
}

func (t *CSVTraceWriter) flushFile() {
	t.writer.Flush()
	if err := t.writer.Error(); err != nil {
		panic(err)
	}
}

// Close flushes the buffered spans and closes the file. Closing twice is a
// no-op.
func (t *CSVTraceWriter) Close() {
	if t.file == nil {
		return
	}

	t.Flush()
	t.flushFile()

	err := t.file.Close()
	if err != nil {
		panic(err)
	}

	t.closed = true
	t.file = nil
	t.writer = nil
}

func (t *CSVTraceWriter) mustWrite(record []string) {
	if err := t.writer.Write(record); err != nil {
		panic(err)
	}
}
