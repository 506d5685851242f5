package optimizer

import (
	"fmt"
	"time"

	"medrush/internal/core/ports"
)

type optimizeRequest struct {
	Vehicles        []vehicleDTO  `json:"vehicles"`
	Shipments       []shipmentDTO `json:"shipments"`
	GlobalStartTime string        `json:"globalStartTime"`
	GlobalEndTime   string        `json:"globalEndTime"`
}

type vehicleDTO struct {
	Label      string `json:"label"`
	TravelMode string `json:"travelMode"`
}

type shipmentDTO struct {
	Label         string   `json:"label"`
	PickupVisit   visitDTO `json:"pickupVisit"`
	DeliveryVisit visitDTO `json:"deliveryVisit"`
}

type visitDTO struct {
	Location               locationDTO `json:"location"`
	ServiceDurationSeconds int64       `json:"serviceDurationSeconds,omitempty"`
}

type locationDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type optimizeResponse struct {
	Routes             []routeDTO `json:"routes"`
	ValidationWarnings []string   `json:"validationWarnings"`
}

type routeDTO struct {
	VehicleLabel          string         `json:"vehicleLabel"`
	Visits                []visitStepDTO `json:"visits"`
	TravelDistanceMeters  float64        `json:"travelDistanceMeters"`
	TravelDurationSeconds int64          `json:"travelDurationSeconds"`
	RoutePolyline         string         `json:"routePolyline"`
}

type visitStepDTO struct {
	ShipmentLabel string `json:"shipmentLabel"`
	IsPickup      bool   `json:"isPickup"`
	StartTime     string `json:"startTime"`
}

func requestFromDomain(
	vehicles []ports.Vehicle,
	shipments []ports.Shipment,
	globalStart time.Time,
	globalEnd time.Time,
) optimizeRequest {
	vehicleDTOs := make([]vehicleDTO, 0, len(vehicles))
	for _, v := range vehicles {
		vehicleDTOs = append(vehicleDTOs, vehicleDTO{
			Label:      v.Label,
			TravelMode: string(v.TravelMode),
		})
	}

	shipmentDTOs := make([]shipmentDTO, 0, len(shipments))
	for _, s := range shipments {
		shipmentDTOs = append(shipmentDTOs, shipmentDTO{
			Label:         s.Label,
			PickupVisit:   visitFromDomain(s.PickupVisit),
			DeliveryVisit: visitFromDomain(s.DeliveryVisit),
		})
	}

	return optimizeRequest{
		Vehicles:        vehicleDTOs,
		Shipments:       shipmentDTOs,
		GlobalStartTime: globalStart.UTC().Format(time.RFC3339),
		GlobalEndTime:   globalEnd.UTC().Format(time.RFC3339),
	}
}

func visitFromDomain(visit ports.Visit) visitDTO {
	return visitDTO{
		Location: locationDTO{
			Latitude:  visit.Location.Latitude(),
			Longitude: visit.Location.Longitude(),
		},
		ServiceDurationSeconds: int64(visit.ServiceDuration / time.Second),
	}
}

func (r optimizeResponse) toDomain() (*ports.OptimizationResult, error) {
	routes := make([]ports.VehicleRoute, 0, len(r.Routes))
	for _, rt := range r.Routes {
		visits := make([]ports.VisitStep, 0, len(rt.Visits))
		for _, step := range rt.Visits {
			startTime, err := time.Parse(time.RFC3339, step.StartTime)
			if err != nil {
				return nil, fmt.Errorf("parse visit start time %q: %w", step.StartTime, err)
			}
			visits = append(visits, ports.VisitStep{
				ShipmentLabel: step.ShipmentLabel,
				IsPickup:      step.IsPickup,
				StartTime:     startTime,
			})
		}

		routes = append(routes, ports.VehicleRoute{
			VehicleLabel:               rt.VehicleLabel,
			Visits:                     visits,
			TotalTravelDistanceMeters:  rt.TravelDistanceMeters,
			TotalTravelDurationSeconds: rt.TravelDurationSeconds,
			RoutePolyline:              rt.RoutePolyline,
		})
	}

	return &ports.OptimizationResult{
		Routes:             routes,
		ValidationWarnings: r.ValidationWarnings,
	}, nil
}
