package ports

import (
	"context"

	"medrush/internal/core/domain/model/kernel"
	"medrush/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and
// their event log. AddEvent must be called inside the same unit of work as
// the order mutation it describes so both commit or roll back together.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByIDs retrieves the orders with the given identifiers.
	// Missing ids are not an error; absent orders are simply not returned.
	GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error)

	// GetPendingUnassigned retrieves all Pending orders without a courier in
	// the given region. When postalCodes is non-empty the result is further
	// restricted to those delivery postal codes.
	GetPendingUnassigned(ctx context.Context, region string, postalCodes []string) ([]*order.Order, error)

	// AddEvent appends an order event record to the persisted event log.
	AddEvent(ctx context.Context, event *order.Event) error

	// GetEvents retrieves the event log for an order, oldest first.
	GetEvents(ctx context.Context, orderID kernel.UUID) ([]*order.Event, error)
}
