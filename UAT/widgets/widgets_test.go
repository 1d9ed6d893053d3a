package widgets_test

//go:generate standgen widgets.WidgetService

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive // Dot import intentional for Gomega matcher DSL

	"github.com/toejough/standin"
	"github.com/toejough/standin/UAT/widgets"
	"github.com/toejough/standin/match"
)

var (
	errBoom     = errors.New("boom")
	errNotFound = errors.New("widget not found")
)

func TestRestocker_ToReorder(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	svc := NewWidgetServiceStandIn(t)

	svc.Arrange().MinimumQuantity().Returns(10).MustBeCalled()
	svc.Arrange().FetchWidget(standin.Any(), "a").Returns(widgets.Widget{ID: "a", Quantity: 3})
	svc.Arrange().FetchWidget(standin.Any(), "b").Returns(widgets.Widget{ID: "b", Quantity: 20})
	svc.Arrange().FetchWidget(standin.Any(), "c").Throws(errNotFound)

	low, err := widgets.NewRestocker(svc).ToReorder(context.Background(), "a", "b", "c")

	g.Expect(low).To(Equal([]string{"a"}))
	g.Expect(err).To(MatchError(errNotFound))
	g.Expect(err).To(MatchError(ContainSubstring("fetch c")))

	standin.AssertExpectations(t, svc)
}

// Both expectations match "gear": both are counted, and the earliest registered one answers.
func TestRestocker_EarliestRegisteredResponseWins(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	svc := NewWidgetServiceStandIn(t)

	catchAll := svc.Arrange().GetWidgetDescription(standin.Any(), standin.Any()).Returns("generic")
	specific := svc.Arrange().GetWidgetDescription("gear", true).Returns("specific")

	g.Expect(widgets.NewRestocker(svc).Describe("gear")).To(Equal([]string{"generic"}))
	g.Expect(catchAll.Expectation().Calls()).To(Equal(1))
	g.Expect(specific.Expectation().Calls()).To(Equal(1))
}

func TestRestocker_LaterThrowShortCircuits(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	svc := NewWidgetServiceStandIn(t)

	svc.Arrange().MinimumQuantity().Returns(5)
	earlier := svc.Arrange().FetchWidget(standin.Any(), standin.Any()).Returns(widgets.Widget{ID: "x"})
	later := svc.Arrange().FetchWidget(standin.Any(), "x").Throws(errBoom)

	_, err := widgets.NewRestocker(svc).ToReorder(context.Background(), "x")

	g.Expect(err).To(MatchError(errBoom))
	g.Expect(later.Expectation().Calls()).To(Equal(1))
	g.Expect(earlier.Expectation().Calls()).To(BeZero())
}

func TestRestocker_Raise_Property(t *testing.T) {
	t.Parallel()

	t.Run("read once", func(t *testing.T) {
		t.Parallel()

		svc := NewWidgetServiceStandIn(t, standin.WithAutoVerify())

		svc.Arrange().MinimumQuantity().Returns(7).MustBeCalled()
		svc.Arrange().SetMinimumQuantity(8).OccursOnce()

		widgets.NewRestocker(svc).Raise(1)
	})

	t.Run("never read", func(t *testing.T) {
		t.Parallel()

		g := NewWithT(t)
		svc := NewWidgetServiceStandIn(t)

		standin.ArrangeProperty[int](svc, "MinimumQuantity").Returns(7).MustBeCalled()

		err := standin.Verify(svc)
		g.Expect(err).To(MatchError(standin.ErrNotCalled))
		g.Expect(err).To(MatchError(ContainSubstring("WidgetService: MinimumQuantity() was not called")))
	})
}

func TestRestocker_Audit_ThrowsSameInstance(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	svc := NewWidgetServiceStandIn(t)

	svc.Arrange().ValidateWidgets(match.BeAnyOf[time.Time]()).Throws(errBoom)

	g.Expect(svc.ValidateWidgets(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))).To(BeIdenticalTo(errBoom))
	g.Expect(svc.ValidateWidgets(time.Time{})).To(BeIdenticalTo(errBoom))
	g.Expect(widgets.NewRestocker(svc).Audit(time.Now())).To(MatchError(errBoom))
}

func TestRestocker_Describe_GomegaMatcher(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	svc := NewWidgetServiceStandIn(t)

	svc.Arrange().GetWidgetDescription(HavePrefix("g"), true).ReturnsFromArgs(func(args []any) string {
		name, _ := args[0].(string)

		return "a " + name
	}).Occurs(2)
	svc.Arrange().GetWidgetDescription(standin.AnyString(), standin.Any()).Returns("unknown")

	g.Expect(widgets.NewRestocker(svc).Describe("gear", "bolt", "gizmo")).
		To(Equal([]string{"a gear", "unknown", "a gizmo"}))

	standin.AssertExpectations(t, svc)
}

func TestRestocker_LowestLevel_Deferred(t *testing.T) {
	t.Parallel()

	t.Run("arranged", func(t *testing.T) {
		t.Parallel()

		g := NewWithT(t)
		svc := NewWidgetServiceStandIn(t)

		levels := make(chan int, 3)
		levels <- 9
		levels <- 2
		levels <- 4
		close(levels)

		svc.Arrange().WatchInventory("gear").Returns(levels).OccursOnce()

		lowest, seen := widgets.NewRestocker(svc).LowestLevel("gear")
		g.Expect(seen).To(BeTrue())
		g.Expect(lowest).To(Equal(2))

		standin.AssertExpectations(t, svc)
	})

	t.Run("not arranged", func(t *testing.T) {
		t.Parallel()

		g := NewWithT(t)
		svc := NewWidgetServiceStandIn(t)

		g.Expect(func() { widgets.NewRestocker(svc).LowestLevel("gear") }).
			To(PanicWith(MatchError(standin.ErrMissingExpectation)))
	})
}

func TestWidgetServiceStandIn_ZeroValues(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	svc := NewWidgetServiceStandIn(t)

	g.Expect(svc.MinimumQuantity()).To(BeZero())
	g.Expect(svc.GetWidgetDescription("gear", false)).To(BeEmpty())

	widget, err := svc.FetchWidget(context.Background(), "gear")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(widget).To(BeZero())

	g.Expect(func() { svc.SetMinimumQuantity(3) }).NotTo(Panic())
	g.Expect(svc.ValidateWidgets(time.Now())).To(Succeed())

	g.Expect(standin.Verify(svc)).To(MatchError(standin.ErrNoExpectations))
}

func TestRestocker_Raise_OccursNever(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	svc := NewWidgetServiceStandIn(t)

	svc.Arrange().MinimumQuantity().Returns(1)
	svc.Arrange().SetMinimumQuantity(match.BeAnyInt).OccursNever()

	widgets.NewRestocker(svc).Raise(1)

	err := standin.Verify(svc)
	g.Expect(err).To(MatchError(standin.ErrForbiddenCall))

	var verr *standin.VerificationError

	g.Expect(errors.As(err, &verr)).To(BeTrue())
	g.Expect(verr.Actual).To(Equal(1))
}
