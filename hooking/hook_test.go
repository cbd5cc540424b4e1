package hooking

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("Domain", func() {
	var (
		mockCtrl *gomock.Controller
		domain   *Domain
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		domain = NewDomain("Domain")
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should have a name", func() {
		Expect(domain.Name()).To(Equal("Domain"))
	})

	It("should refuse an empty name", func() {
		Expect(func() { NewDomain("") }).To(PanicWith("domain must have a name"))
	})

	It("should accept hooks", func() {
		hook1 := NewMockHook(mockCtrl)
		hook2 := NewMockHook(mockCtrl)

		domain.AcceptHook(hook1)
		domain.AcceptHook(hook2)

		Expect(domain.NumHooks()).To(Equal(2))
		Expect(domain.Hooks()).To(ConsistOf(hook1, hook2))
	})

	It("should panic on duplicated hooks", func() {
		hook := NewMockHook(mockCtrl)
		domain.AcceptHook(hook)

		Expect(func() { domain.AcceptHook(hook) }).
			To(PanicWith("duplicated hook"))
	})

	It("should invoke hooks in registration order", func() {
		hook1 := NewMockHook(mockCtrl)
		hook2 := NewMockHook(mockCtrl)
		domain.AcceptHook(hook1)
		domain.AcceptHook(hook2)

		ctx := HookCtx{
			Domain: domain,
			Pos:    HookPosSpanExit,
			Item:   SpanExit{ID: "1"},
		}

		gomock.InOrder(
			hook1.EXPECT().Func(ctx),
			hook2.EXPECT().Func(ctx),
		)

		domain.InvokeHook(ctx)
	})
})
