// Package widgets is a small inventory service used to exercise generated stand-ins end to end.
package widgets

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Widget is an item of inventory.
type Widget struct {
	ID       string
	Quantity int
}

// WidgetService is the inventory backend the Restocker depends on.
type WidgetService interface {
	// MinimumQuantity is a property: the stock level below which widgets are reordered.
	MinimumQuantity() int
	SetMinimumQuantity(quantity int)
	GetWidgetDescription(name string, verbose bool) string
	ValidateWidgets(at time.Time) error
	FetchWidget(ctx context.Context, id string) (Widget, error)
	// WatchInventory streams stock levels for the named widget until the channel is closed.
	WatchInventory(name string) <-chan int
}

// Restocker decides which widgets need reordering.
type Restocker struct {
	svc WidgetService
}

// NewRestocker returns a Restocker backed by svc.
func NewRestocker(svc WidgetService) *Restocker {
	return &Restocker{svc: svc}
}

// Audit validates the inventory as of at.
func (r *Restocker) Audit(at time.Time) error {
	err := r.svc.ValidateWidgets(at)
	if err != nil {
		return fmt.Errorf("audit at %s: %w", at.Format(time.RFC3339), err)
	}

	return nil
}

// Describe returns the verbose description of each named widget.
func (r *Restocker) Describe(names ...string) []string {
	descriptions := make([]string, 0, len(names))

	for _, name := range names {
		descriptions = append(descriptions, r.svc.GetWidgetDescription(name, true))
	}

	return descriptions
}

// LowestLevel consumes the stock levels streamed for name and returns the lowest one seen.
func (r *Restocker) LowestLevel(name string) (int, bool) {
	lowest, seen := 0, false

	for level := range r.svc.WatchInventory(name) {
		if !seen || level < lowest {
			lowest, seen = level, true
		}
	}

	return lowest, seen
}

// Raise lifts the minimum quantity by delta.
func (r *Restocker) Raise(delta int) {
	r.svc.SetMinimumQuantity(r.svc.MinimumQuantity() + delta)
}

// ToReorder returns the ids of widgets stocked below the minimum quantity. Widgets that cannot be fetched are
// skipped, and their errors joined.
func (r *Restocker) ToReorder(ctx context.Context, ids ...string) ([]string, error) {
	minimum := r.svc.MinimumQuantity()

	var (
		low  []string
		errs []error
	)

	for _, id := range ids {
		widget, err := r.svc.FetchWidget(ctx, id)
		if err != nil {
			errs = append(errs, fmt.Errorf("fetch %s: %w", id, err))

			continue
		}

		if widget.Quantity < minimum {
			low = append(low, widget.ID)
		}
	}

	return low, errors.Join(errs...)
}
