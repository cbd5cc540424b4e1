package tracing

import (
	"encoding/csv"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var spansToWrite = []Span{
	{
		ID: "a", Kind: "task", What: "job-0", Where: "Executor",
		StartTime: 0, EndTime: 3,
	},
	{
		ID: "b", Kind: "step", What: "job-0", Where: "Executor",
		StartTime: 0, EndTime: 1,
	},
	{
		ID: "c", Kind: "step", What: "job-0", Where: "Executor",
		StartTime: 1, EndTime: 2,
	},
}

var _ = Describe("SQLiteTraceWriter", func() {
	var (
		dir string
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "steptrace")
		Expect(err).NotTo(HaveOccurred())

		DeferCleanup(func() { os.RemoveAll(dir) })
	})

	It("should write spans that can be read back", func() {
		w := NewSQLiteTraceWriter(filepath.Join(dir, "trace"))
		w.Init()
		defer w.Close()

		for _, s := range spansToWrite {
			w.Write(s)
		}
		w.Flush()

		r := NewSQLiteTraceReader(w.FileName())
		r.Init()
		defer r.Close()

		Expect(r.ListSpans(SpanQuery{})).To(HaveLen(3))
		Expect(r.ListSpans(SpanQuery{Kind: "task"})).
			To(Equal([]Span{spansToWrite[0]}))
		Expect(r.ListSpans(SpanQuery{Kind: "step", What: "job-0"})).
			To(Equal(spansToWrite[1:]))
		Expect(r.ListSpans(SpanQuery{Where: "nowhere"})).To(BeEmpty())
	})

	It("should refuse to overwrite an existing database", func() {
		path := filepath.Join(dir, "trace")
		Expect(os.WriteFile(path+".sqlite3", nil, 0o644)).To(Succeed())

		w := NewSQLiteTraceWriter(path)
		Expect(w.Init).To(Panic())
	})
})

var _ = Describe("CSVTraceWriter", func() {
	It("should write a header and the spans", func() {
		dir, err := os.MkdirTemp("", "steptrace")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { os.RemoveAll(dir) })

		w := NewCSVTraceWriter(filepath.Join(dir, "trace"))
		w.Init()
		for _, s := range spansToWrite {
			w.Write(s)
		}
		w.Close()
		w.Close()

		f, err := os.Open(w.FileName())
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		records, err := csv.NewReader(f).ReadAll()
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(4))
		Expect(records[0]).To(Equal(
			[]string{"ID", "Kind", "What", "Where", "Start", "End"}))
		Expect(records[1]).To(Equal([]string{
			"a", "task", "job-0", "Executor", "0.0000000000", "3.0000000000",
		}))
	})

	It("should ignore flushes after close", func() {
		dir, err := os.MkdirTemp("", "steptrace")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { os.RemoveAll(dir) })

		w := NewCSVTraceWriter(filepath.Join(dir, "trace"))
		w.Init()
		w.Close()

		Expect(w.Flush).NotTo(Panic())
	})

	It("should not panic when closed before the tracer terminates", func() {
		dir, err := os.MkdirTemp("", "steptrace")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { os.RemoveAll(dir) })

		w := NewCSVTraceWriter(filepath.Join(dir, "trace"))
		tracer := NewDBTracer(fixedTime(2), w)
		tracer.EnterSpan(enter("1"))
		tracer.ExitSpan(exit("1"))

		w.Close()
		Expect(tracer.Terminate).NotTo(Panic())

		f, err := os.Open(w.FileName())
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		records, err := csv.NewReader(f).ReadAll()
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(2))
		Expect(records[1][0]).To(Equal("1"))
	})
})

type fixedTime float64

func (t fixedTime) Now() float64 {
	return float64(t)
}
