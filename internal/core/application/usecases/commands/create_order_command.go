package commands

import (
	"errors"

	"medrush/internal/core/domain/model/kernel"
	"medrush/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrRegionIsRequired = errors.New("region is required")
)

// CreateOrderCommand represents a request to register a new delivery order.
// Encapsulates pickup and delivery coordinates plus the routing attributes
// (region, postal code) used later by batch assignment.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, pickup, delivery, "warsaw", "00-001")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	pickupLocation   kernel.GeoPoint
	deliveryLocation kernel.GeoPoint
	region           string
	postalCode       string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// Validates the order ID, both locations and the region.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	pickupLocation kernel.GeoPoint,
	deliveryLocation kernel.GeoPoint,
	region string,
	postalCode string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setLocations(pickupLocation, deliveryLocation),
		orderCommand.setRegion(region),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	orderCommand.postalCode = postalCode
	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PickupLocation returns the coordinates the package is collected from.
func (c CreateOrderCommand) PickupLocation() kernel.GeoPoint {
	return c.pickupLocation
}

// DeliveryLocation returns the coordinates the package is delivered to.
func (c CreateOrderCommand) DeliveryLocation() kernel.GeoPoint {
	return c.deliveryLocation
}

// Region returns the dispatch region the order belongs to.
func (c CreateOrderCommand) Region() string {
	return c.region
}

// PostalCode returns the delivery postal code, possibly empty.
func (c CreateOrderCommand) PostalCode() string {
	return c.postalCode
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setLocations(pickup kernel.GeoPoint, delivery kernel.GeoPoint) error {
	if err := errors.Join(pickup.Validate(), delivery.Validate()); err != nil {
		return err
	}

	c.pickupLocation = pickup
	c.deliveryLocation = delivery
	return nil
}

func (c *CreateOrderCommand) setRegion(region string) error {
	if region == "" {
		return ErrRegionIsRequired
	}

	c.region = region
	return nil
}
