// Package routerepo provides data transfer objects and mapping functions for
// route and route stop persistence.
package routerepo

import (
	"time"

	"medrush/internal/core/domain/model/kernel"
	"medrush/internal/core/domain/model/route"

	"github.com/google/uuid"
)

// RouteDTO represents the database structure for persisting routes.
type RouteDTO struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	CourierID uuid.UUID   `gorm:"type:uuid;index"`
	Start     GeoPointDTO `gorm:"embedded;embeddedPrefix:start_"`
	End       GeoPointDTO `gorm:"embedded;embeddedPrefix:end_"`

	TotalDistanceMeters  float64
	TotalDurationSeconds int64
	StopCount            int
	Polyline             string `gorm:"type:text"`

	ComputedAt  time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// TableName specifies the database table name for route entities.
func (RouteDTO) TableName() string {
	return "routes"
}

// GeoPointDTO represents embedded geographic coordinates.
type GeoPointDTO struct {
	Lat float64 `gorm:"type:double precision"`
	Lng float64 `gorm:"type:double precision"`
}

// RouteStopDTO represents one stop of a route. Custom position is the
// serving order; the optimized and pickup positions survive manual edits so
// the optimizer's last answer stays visible.
type RouteStopDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	RouteID uuid.UUID `gorm:"type:uuid;index"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`

	OptimizedPosition *int
	CustomPosition    int
	PickupPosition    *int
	IsOptimized       bool
}

// TableName specifies the database table name for route stops.
func (RouteStopDTO) TableName() string {
	return "route_stops"
}

// fromDomain converts a route domain aggregate to its database representation.
func fromDomain(aggregate *route.Route) RouteDTO {
	metrics := aggregate.RouteMetrics()

	return RouteDTO{
		ID:        aggregate.ID().Bytes(),
		CourierID: aggregate.CourierID().Bytes(),
		Start: GeoPointDTO{
			Lat: aggregate.StartPoint().Latitude(),
			Lng: aggregate.StartPoint().Longitude(),
		},
		End: GeoPointDTO{
			Lat: aggregate.EndPoint().Latitude(),
			Lng: aggregate.EndPoint().Longitude(),
		},
		TotalDistanceMeters:  metrics.TotalDistanceMeters,
		TotalDurationSeconds: metrics.TotalDurationSeconds,
		StopCount:            metrics.StopCount,
		Polyline:             aggregate.Polyline(),
		ComputedAt:           aggregate.ComputedAt(),
		StartedAt:            aggregate.StartedAt(),
		CompletedAt:          aggregate.CompletedAt(),
	}
}

// toDomain converts a database DTO to a route domain aggregate.
func toDomain(dto RouteDTO) (*route.Route, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	startPoint, err := kernel.NewGeoPoint(dto.Start.Lat, dto.Start.Lng)
	if err != nil {
		return nil, err
	}
	endPoint, err := kernel.NewGeoPoint(dto.End.Lat, dto.End.Lng)
	if err != nil {
		return nil, err
	}

	return route.RestoreRoute(
		id,
		courierID,
		startPoint,
		endPoint,
		route.Metrics{
			TotalDistanceMeters:  dto.TotalDistanceMeters,
			TotalDurationSeconds: dto.TotalDurationSeconds,
			StopCount:            dto.StopCount,
		},
		dto.Polyline,
		dto.ComputedAt,
		dto.StartedAt,
		dto.CompletedAt,
	)
}

// stopFromDomain converts a route stop to its database representation.
func stopFromDomain(stop *route.Stop) RouteStopDTO {
	return RouteStopDTO{
		ID:                stop.ID().Bytes(),
		RouteID:           stop.RouteID().Bytes(),
		OrderID:           stop.OrderID().Bytes(),
		OptimizedPosition: stop.OptimizedPosition(),
		CustomPosition:    stop.CustomPosition(),
		PickupPosition:    stop.PickupPosition(),
		IsOptimized:       stop.IsOptimized(),
	}
}

// stopToDomain converts a database DTO to a route stop.
func stopToDomain(dto RouteStopDTO) (*route.Stop, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	routeID, err := kernel.UUIDFromBytes(dto.RouteID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return route.RestoreStop(
		id,
		routeID,
		orderID,
		dto.OptimizedPosition,
		dto.CustomPosition,
		dto.PickupPosition,
		dto.IsOptimized,
	)
}
