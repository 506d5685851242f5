package http

import (
	"time"

	"medrush/internal/core/domain/model/kernel"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type locationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r locationRequest) toDomain() (kernel.GeoPoint, error) {
	return kernel.NewGeoPoint(r.Latitude, r.Longitude)
}

type createOrderRequest struct {
	PickupLocation   locationRequest `json:"pickupLocation"`
	DeliveryLocation locationRequest `json:"deliveryLocation"`
	Region           string          `json:"region"`
	PostalCode       string          `json:"postalCode"`
}

type createCourierRequest struct {
	Name   string `json:"name"`
	Region string `json:"region"`
}

type createdResponse struct {
	ID string `json:"id"`
}

type orderActionRequest struct {
	ActorID   string           `json:"actorId,omitempty"`
	CourierID string           `json:"courierId,omitempty"`
	Reason    string           `json:"reason,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	Location  *locationRequest `json:"location,omitempty"`
}

type reorderStopsRequest struct {
	// Positions maps stop id to its requested new custom position.
	Positions map[string]int `json:"positions"`
}

type dispatchAssignmentsRequest struct {
	Region         string    `json:"region"`
	CourierMinLoad int       `json:"courierMinLoad"`
	CourierMaxLoad int       `json:"courierMaxLoad"`
	WindowStart    time.Time `json:"windowStart"`
	WindowEnd      time.Time `json:"windowEnd"`
	PostalCodes    []string  `json:"postalCodes,omitempty"`
}

type reoptimizeRouteRequest struct {
	WindowStart time.Time `json:"windowStart"`
	WindowEnd   time.Time `json:"windowEnd"`
}

type jobAcceptedResponse struct {
	Job string `json:"job"`
}

type pendingOrderResponse struct {
	ID               string           `json:"id"`
	PickupLocation   locationResponse `json:"pickupLocation"`
	DeliveryLocation locationResponse `json:"deliveryLocation"`
	PostalCode       string           `json:"postalCode,omitempty"`
}

type locationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type routeStopResponse struct {
	StopID            string `json:"stopId"`
	OrderID           string `json:"orderId"`
	OrderStatus       string `json:"orderStatus"`
	CustomPosition    int    `json:"customPosition"`
	OptimizedPosition *int   `json:"optimizedPosition,omitempty"`
	PickupPosition    *int   `json:"pickupPosition,omitempty"`
	IsOptimized       bool   `json:"isOptimized"`
}
