package planner_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sbanszky/advancedcalculator6/pkg/planner"
)

func TestPlanner(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Planner Suite")
}

var _ = Describe("Summarize", func() {
	var p *planner.Planner

	BeforeEach(func() {
		p = planner.New(planner.Config{})
	})

	It("should merge sibling halves into the parent prefix", func() {
		out := p.Summarize([]string{"2001:db8::/33", "2001:db8:8000::/33"})
		Expect(out).To(Equal([]string{"2001:db8::/32"}))
	})

	It("should merge prefixes one bit apart", func() {
		out := p.Summarize([]string{"2001:db8::/32", "2001:db9::/32"})
		Expect(out).To(Equal([]string{"2001:db8::/31"}))
	})

	It("should not merge non-adjacent prefixes", func() {
		out := p.Summarize([]string{"2001:db8::/32", "2001:dba::/32"})
		Expect(out).To(Equal([]string{"2001:db8::/32", "2001:dba::/32"}))
	})

	It("should sort input before merging", func() {
		out := p.Summarize([]string{"2001:db9::/32", "2001:db8::/32"})
		Expect(out).To(Equal([]string{"2001:db8::/31"}))
	})

	It("should drop invalid entries without failing", func() {
		out := p.Summarize([]string{"2001:db8::/33", "not-an-address", "2001:db8:8000::/33"})
		Expect(out).To(Equal([]string{"2001:db8::/32"}))
	})

	It("should return nil when nothing parses", func() {
		Expect(p.Summarize([]string{"bogus", "::1::2"})).To(BeNil())
	})

	It("should pass through a single prefix unchanged", func() {
		Expect(p.Summarize([]string{"2001:db8::/64"})).To(Equal([]string{"2001:db8::/64"}))
	})

	It("should normalize host bits to the network address", func() {
		out := p.Summarize([]string{"2001:db8::dead/64"})
		Expect(out).To(Equal([]string{"2001:db8::/64"}))
	})

	It("should continue merging a merged entry with its successor", func() {
		// Greedy left-to-right: the /33 pair collapses to a /32 which
		// then absorbs the neighboring /32.
		out := p.Summarize([]string{
			"2001:db8::/33",
			"2001:db8:8000::/33",
			"2001:db9::/32",
		})
		Expect(out).To(Equal([]string{"2001:db8::/31"}))
	})

	It("should use the shorter prefix when lengths differ", func() {
		out := p.Summarize([]string{"2001:db8::/32", "2001:db9::/33"})
		Expect(out).To(Equal([]string{"2001:db8::/31"}))
	})

	It("should flush non-mergeable entries in order", func() {
		out := p.Summarize([]string{
			"2001:db8::/32",
			"3fff::/20",
			"fd00::/8",
		})
		Expect(out).To(Equal([]string{"2001:db8::/32", "3fff::/20", "fd00::/8"}))
	})
})
