// Package ports defines the contracts between the order lifecycle core and
// its infrastructure: repositories, the push notifier and the realtime
// broadcaster. Adapters under internal/adapters implement them.
package ports

import (
	"context"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
)

// OrderFilter narrows bulk reads of orders. Nil fields do not filter.
type OrderFilter struct {
	CompanyID  *kernel.UUID
	DeliveryID *kernel.UUID
	Status     *order.Status
	From       *time.Time
	To         *time.Time
}

// OrderRepository defines the persistence contract for order aggregates.
// Soft-deleted orders are invisible to every read.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. The write is conditioned
	// on the version the order was loaded with; a lost race returns a
	// ConflictError.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id or returns ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetManyForUpdate locks and returns the orders with the given ids in
	// the order of ids. Ids that do not exist are reported through an
	// ObjectsNotFoundError listing exactly the missing ids.
	//
	// Example:
	//   orders, err := repo.GetManyForUpdate(ctx, kernel.DistinctUUIDs(ids))
	//   var missing *errs.ObjectsNotFoundError
	//   if errors.As(err, &missing) {
	//       log.Printf("unknown orders: %v", missing.IDs)
	//   }
	GetManyForUpdate(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error)

	// ListForUpdate locks and returns every order matching filter.
	ListForUpdate(ctx context.Context, filter OrderFilter) ([]*order.Order, error)
}
