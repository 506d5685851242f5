package queries

import (
	"context"

	"medrush/internal/core/domain/model/kernel"
	"medrush/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingOrdersQueryHandler reads a region's unassigned backlog straight
// from the orders table.
type GetPendingOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingOrdersQueryHandler creates a handler for pending order queries.
// Requires a GORM database connection for query execution.
func NewGetPendingOrdersQueryHandler(db *gorm.DB) GetPendingOrdersQueryHandler {
	return GetPendingOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by order ID for consistent
// output between runs.
func (h GetPendingOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingOrdersQuery,
) ([]GetPendingOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetPendingOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			pickup_lat,
			pickup_lng,
			delivery_lat,
			delivery_lng,
			postal_code
		FROM orders
		WHERE status = ? AND courier_id IS NULL AND region = ?
		ORDER BY id
	`, int(order.StatusPending), query.Region()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var pickupLat, pickupLng, deliveryLat, deliveryLng float64
		var postalCode string

		err = rows.Scan(&id, &pickupLat, &pickupLng, &deliveryLat, &deliveryLng, &postalCode)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		pickup, pointErr := kernel.NewGeoPoint(pickupLat, pickupLng)
		if pointErr != nil {
			return nil, pointErr
		}
		delivery, pointErr := kernel.NewGeoPoint(deliveryLat, deliveryLng)
		if pointErr != nil {
			return nil, pointErr
		}

		orders = append(orders, GetPendingOrdersQueryResponse{
			ID:               orderID,
			PickupLocation:   pickup,
			DeliveryLocation: delivery,
			PostalCode:       postalCode,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
