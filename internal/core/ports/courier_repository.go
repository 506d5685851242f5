package ports

import (
	"context"

	"medrush/internal/core/domain/model/courier"
	"medrush/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for the courier
// directory.
type CourierRepository interface {
	// Add persists a new courier.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetByRegion retrieves up to limit couriers registered in the region.
	// The selection is a plain bounded query with no fairness or rotation
	// guarantee.
	GetByRegion(ctx context.Context, region string, limit int) ([]*courier.Courier, error)
}
