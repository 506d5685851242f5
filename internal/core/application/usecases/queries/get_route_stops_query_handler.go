package queries

import (
	"context"

	"medrush/internal/core/domain/model/kernel"
	"medrush/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRouteStopsQueryHandler reads a route's stop sequence joined with order
// statuses from the database.
type GetRouteStopsQueryHandler struct {
	db *gorm.DB
}

// NewGetRouteStopsQueryHandler creates a handler for route stop queries.
func NewGetRouteStopsQueryHandler(db *gorm.DB) GetRouteStopsQueryHandler {
	return GetRouteStopsQueryHandler{db: db}
}

// Handle executes the query. Stops come back ordered by custom position,
// the order the courier serves them in.
func (h GetRouteStopsQueryHandler) Handle(
	ctx context.Context,
	query GetRouteStopsQuery,
) ([]GetRouteStopsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stops := make([]GetRouteStopsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.order_id,
			o.status,
			s.custom_position,
			s.optimized_position,
			s.pickup_position,
			s.is_optimized
		FROM route_stops s
		JOIN orders o ON o.id = s.order_id
		WHERE s.route_id = ?
		ORDER BY s.custom_position
	`, query.RouteID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var stopID, orderID uuid.UUID
		var status int
		var customPosition int
		var optimizedPosition, pickupPosition *int
		var isOptimized bool

		err = rows.Scan(&stopID, &orderID, &status, &customPosition, &optimizedPosition, &pickupPosition, &isOptimized)
		if err != nil {
			return nil, err
		}

		stopUUID, idErr := kernel.UUIDFromBytes(stopID[:])
		if idErr != nil {
			return nil, idErr
		}
		orderUUID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}

		stops = append(stops, GetRouteStopsQueryResponse{
			StopID:            stopUUID,
			OrderID:           orderUUID,
			OrderStatus:       order.Status(status).String(),
			CustomPosition:    customPosition,
			OptimizedPosition: optimizedPosition,
			PickupPosition:    pickupPosition,
			IsOptimized:       isOptimized,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stops, nil
}
