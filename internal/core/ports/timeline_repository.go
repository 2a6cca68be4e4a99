package ports

import (
	"context"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
)

// TimelineRepository stores the status events of orders.
type TimelineRepository interface {
	// Get loads the timeline of an order, empty when it has no events.
	Get(ctx context.Context, orderID kernel.UUID) (*order.Timeline, error)

	// Add stores a single event, typically the creation event.
	Add(ctx context.Context, event *order.TimelineEvent) error

	// Apply persists a transition: events with status change.Removed are
	// deleted and change.Added are inserted.
	Apply(ctx context.Context, orderID kernel.UUID, change order.TimelineChange) error
}
