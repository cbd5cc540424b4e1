package instruments

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Metrics", func() {
	var (
		reg *prometheus.Registry
		vec *MetricsVec
	)

	BeforeEach(func() {
		var err error

		reg = prometheus.NewRegistry()
		vec, err = NewMetricsVec(reg, "steptrace")
		Expect(err).NotTo(HaveOccurred())
	})

	It("should count enters, exits and active spans", func() {
		m := vec.Instrument("blink")

		m.OnEnter()
		m.OnExit()
		m.OnEnter()

		Expect(testutil.ToFloat64(m.enters)).To(Equal(2.0))
		Expect(testutil.ToFloat64(m.exits)).To(Equal(1.0))
		Expect(testutil.ToFloat64(m.active)).To(Equal(1.0))
	})

	It("should label spans separately", func() {
		vec.Instrument("a").OnEnter()
		vec.Instrument("b").OnEnter()
		vec.Instrument("b").OnEnter()

		Expect(testutil.ToFloat64(vec.enters.WithLabelValues("a"))).
			To(Equal(1.0))
		Expect(testutil.ToFloat64(vec.enters.WithLabelValues("b"))).
			To(Equal(2.0))
	})

	It("should fail to register twice", func() {
		_, err := NewMetricsVec(reg, "steptrace")

		Expect(err).To(HaveOccurred())
	})
})
