// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations, including the
// append-only order event log.
package orderrepo

import (
	"encoding/json"
	"time"

	"medrush/internal/core/domain/model/kernel"
	"medrush/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by status, region and courier assignment, the access paths the
// batch assigner queries by.
type OrderDTO struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Status     int         `gorm:"index"`
	Region     string      `gorm:"index"`
	PostalCode string      `gorm:"index"`
	CourierID  *uuid.UUID  `gorm:"type:uuid;index"`
	Pickup     GeoPointDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Delivery   GeoPointDTO `gorm:"embedded;embeddedPrefix:delivery_"`

	AssignedAt  *time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time

	FailureReason string
	FailureNotes  string
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// GeoPointDTO represents embedded geographic coordinates.
type GeoPointDTO struct {
	Lat float64 `gorm:"type:double precision"`
	Lng float64 `gorm:"type:double precision"`
}

// OrderEventDTO represents one row of the append-only order event log.
// Rows are only ever inserted, in the same transaction as the order
// mutation they describe.
type OrderEventDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID  `gorm:"type:uuid;index"`
	ActorID     *uuid.UUID `gorm:"type:uuid"`
	EventType   int
	Description string
	Metadata    string `gorm:"type:jsonb"`
	LocationLat *float64
	LocationLng *float64
	CreatedAt   time.Time `gorm:"index"`
}

// TableName specifies the database table name for order event records.
func (OrderEventDTO) TableName() string {
	return "order_events"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	return OrderDTO{
		ID:         aggregate.ID().Bytes(),
		Status:     int(aggregate.Status()),
		Region:     aggregate.Region(),
		PostalCode: aggregate.PostalCode(),
		CourierID:  courierID,
		Pickup: GeoPointDTO{
			Lat: aggregate.PickupLocation().Latitude(),
			Lng: aggregate.PickupLocation().Longitude(),
		},
		Delivery: GeoPointDTO{
			Lat: aggregate.DeliveryLocation().Latitude(),
			Lng: aggregate.DeliveryLocation().Longitude(),
		},
		AssignedAt:    aggregate.AssignedAt(),
		PickedUpAt:    aggregate.PickedUpAt(),
		DeliveredAt:   aggregate.DeliveredAt(),
		FailureReason: aggregate.FailureReason(),
		FailureNotes:  aggregate.FailureNotes(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status, courier assignment
// and lifecycle timestamps using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}

		courierID = &cID
	}

	pickup, err := kernel.NewGeoPoint(dto.Pickup.Lat, dto.Pickup.Lng)
	if err != nil {
		return nil, err
	}
	delivery, err := kernel.NewGeoPoint(dto.Delivery.Lat, dto.Delivery.Lng)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		pickup,
		delivery,
		dto.Region,
		dto.PostalCode,
		order.Status(dto.Status),
		courierID,
		dto.AssignedAt,
		dto.PickedUpAt,
		dto.DeliveredAt,
		dto.FailureReason,
		dto.FailureNotes,
	)
}

// eventFromDomain converts an order event to its database representation.
func eventFromDomain(event *order.Event) (OrderEventDTO, error) {
	var actorID *uuid.UUID
	if id := event.ActorID(); id != nil {
		raw := id.Bytes()
		actorID = &raw
	}

	var locationLat, locationLng *float64
	if location := event.Location(); location != nil {
		lat := location.Latitude()
		lng := location.Longitude()
		locationLat = &lat
		locationLng = &lng
	}

	metadata := "{}"
	if len(event.Metadata()) > 0 {
		raw, err := json.Marshal(event.Metadata())
		if err != nil {
			return OrderEventDTO{}, err
		}
		metadata = string(raw)
	}

	return OrderEventDTO{
		ID:          event.ID().Bytes(),
		OrderID:     event.OrderID().Bytes(),
		ActorID:     actorID,
		EventType:   int(event.Type()),
		Description: event.Description(),
		Metadata:    metadata,
		LocationLat: locationLat,
		LocationLng: locationLng,
		CreatedAt:   event.CreatedAt(),
	}, nil
}

// eventToDomain converts an event log row back to its domain record.
func eventToDomain(dto OrderEventDTO) (*order.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var actorID *kernel.UUID
	if dto.ActorID != nil {
		aID, actorErr := kernel.UUIDFromBytes((*dto.ActorID)[:])
		if actorErr != nil {
			return nil, actorErr
		}
		actorID = &aID
	}

	var location *kernel.GeoPoint
	if dto.LocationLat != nil && dto.LocationLng != nil {
		point, geoErr := kernel.NewGeoPoint(*dto.LocationLat, *dto.LocationLng)
		if geoErr != nil {
			return nil, geoErr
		}
		location = &point
	}

	metadata := map[string]string{}
	if dto.Metadata != "" {
		if err := json.Unmarshal([]byte(dto.Metadata), &metadata); err != nil {
			return nil, err
		}
	}

	return order.RestoreEvent(
		id,
		orderID,
		actorID,
		order.EventType(dto.EventType),
		dto.Description,
		metadata,
		location,
		dto.CreatedAt,
	)
}
