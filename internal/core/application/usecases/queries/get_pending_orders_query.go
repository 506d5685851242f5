// Package queries contains read-only operations against the persistence
// layer. Queries bypass the domain model and read projections directly,
// the read side of the CQRS split.
package queries

import (
	"errors"

	"medrush/internal/core/domain/model/kernel"
	"medrush/internal/pkg/guard"
)

var (
	ErrGetPendingOrdersQueryIsNotConstructed = errors.New(
		"GetPendingOrdersQuery must be created via NewGetPendingOrdersQuery constructor",
	)
	ErrQueryRegionIsRequired = errors.New("region is required")
)

// GetPendingOrdersQuery retrieves the unassigned order backlog of a region,
// the set the next batch assignment run would pick up.
//
// Example:
//
//	query, err := NewGetPendingOrdersQuery("warsaw")
//	if err != nil {
//	    return err
//	}
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get pending orders: %w", err)
//	}
//	fmt.Printf("%d orders awaiting assignment\n", len(orders))
type GetPendingOrdersQuery struct {
	region string

	guard guard.ConstructorGuard
}

// NewGetPendingOrdersQuery creates a query for a region's pending backlog.
func NewGetPendingOrdersQuery(region string) (GetPendingOrdersQuery, error) {
	if region == "" {
		return GetPendingOrdersQuery{}, ErrQueryRegionIsRequired
	}

	return GetPendingOrdersQuery{
		region: region,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPendingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingOrdersQueryIsNotConstructed)
}

// Region returns the dispatch region being queried.
func (q GetPendingOrdersQuery) Region() string {
	return q.region
}

// GetPendingOrdersQueryResponse represents one pending unassigned order.
type GetPendingOrdersQueryResponse struct {
	ID               kernel.UUID
	PickupLocation   kernel.GeoPoint
	DeliveryLocation kernel.GeoPoint
	PostalCode       string
}
