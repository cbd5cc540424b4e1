package tracing

import (
	"github.com/sarchlab/steptrace/hooking"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("TotalTimeTracer", func() {
	var (
		mockCtrl   *gomock.Controller
		timeTeller *MockTimeTeller
		t          *TotalTimeTracer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		timeTeller = NewMockTimeTeller(mockCtrl)
		t = NewTotalTimeTracer(timeTeller, nil)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should add overlapping spans together", func() {
		timeTeller.EXPECT().Now().Return(1.0)
		t.Func(hooking.HookCtx{Pos: hooking.HookPosSpanEnter, Item: enter("1")})
		timeTeller.EXPECT().Now().Return(1.5)
		t.Func(hooking.HookCtx{Pos: hooking.HookPosSpanEnter, Item: enter("2")})
		timeTeller.EXPECT().Now().Return(2.0)
		t.Func(hooking.HookCtx{Pos: hooking.HookPosSpanExit, Item: exit("1")})
		timeTeller.EXPECT().Now().Return(2.5)
		t.Func(hooking.HookCtx{Pos: hooking.HookPosSpanExit, Item: exit("2")})

		Expect(t.TotalTime()).To(Equal(2.0))
	})

	It("should ignore exits of unknown spans", func() {
		t.ExitSpan(exit("unknown"))

		Expect(t.TotalTime()).To(Equal(0.0))
	})
})

var _ = Describe("AverageTimeTracer", func() {
	var (
		mockCtrl   *gomock.Controller
		timeTeller *MockTimeTeller
		t          *AverageTimeTracer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		timeTeller = NewMockTimeTeller(mockCtrl)
		t = NewAverageTimeTracer(timeTeller, nil)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should return 0 when no span is exited", func() {
		timeTeller.EXPECT().Now().Return(1.0)
		t.EnterSpan(enter("1"))

		Expect(t.AverageTime()).To(Equal(0.0))
		Expect(t.SpanCount()).To(Equal(uint64(0)))
	})

	It("should average the exited spans", func() {
		timeTeller.EXPECT().Now().Return(1.0)
		t.EnterSpan(enter("1"))
		timeTeller.EXPECT().Now().Return(2.0)
		t.ExitSpan(exit("1"))

		timeTeller.EXPECT().Now().Return(2.0)
		t.EnterSpan(enter("2"))
		timeTeller.EXPECT().Now().Return(5.0)
		t.ExitSpan(exit("2"))

		Expect(t.AverageTime()).To(Equal(2.0))
		Expect(t.SpanCount()).To(Equal(uint64(2)))
	})
})

var _ = Describe("SpanCountTracer", func() {
	It("should count enters and exits per name", func() {
		t := NewSpanCountTracer(nil)

		a := hooking.SpanEnter{ID: "1", Kind: hooking.KindTask, What: "a"}
		b := hooking.SpanEnter{ID: "2", Kind: hooking.KindTask, What: "b"}
		a2 := hooking.SpanEnter{ID: "3", Kind: hooking.KindTask, What: "a"}

		t.EnterSpan(a)
		t.EnterSpan(b)
		t.EnterSpan(a2)
		t.ExitSpan(exit("1"))
		t.ExitSpan(exit("3"))

		Expect(t.Names()).To(Equal([]string{"a", "b"}))
		Expect(t.EnterCount("a")).To(Equal(uint64(2)))
		Expect(t.ExitCount("a")).To(Equal(uint64(2)))
		Expect(t.EnterCount("b")).To(Equal(uint64(1)))
		Expect(t.ExitCount("b")).To(Equal(uint64(0)))
	})

	It("should only count the spans accepted by the filter", func() {
		t := NewSpanCountTracer(func(s hooking.SpanEnter) bool {
			return s.Kind == hooking.KindTask
		})

		t.EnterSpan(enter("1"))
		t.ExitSpan(exit("1"))

		Expect(t.Names()).To(BeEmpty())
		Expect(t.EnterCount("job")).To(Equal(uint64(0)))
	})
})
