package commands

import (
	"errors"

	"medrush/internal/core/domain/model/kernel"
	"medrush/internal/core/domain/model/order"
	"medrush/internal/pkg/guard"
)

var ErrApplyOrderEventCommandIsNotConstructed = errors.New(
	"ApplyOrderEventCommand must be created via NewApplyOrderEventCommand constructor",
)

// ApplyOrderEventCommand represents a request to drive one order through a
// lifecycle transition: assignment, pickup, departure, delivery, failure,
// cancellation or assignment withdrawal.
//
// Example:
//
//	cmd, err := NewApplyOrderEventCommand(orderID, order.EventPickedUp)
//	if err != nil {
//	    return err
//	}
//	cmd = cmd.WithActor(courierID).WithLocation(scanPoint)
//
//	handler := NewApplyOrderEventCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    var transitionErr *order.InvalidTransitionError
//	    if errors.As(err, &transitionErr) {
//	        // reject the request, the order state did not allow it
//	    }
//	}
type ApplyOrderEventCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	eventType order.EventType

	actorID      *kernel.UUID
	metadata     map[string]string
	location     *kernel.GeoPoint
	courierID    *kernel.UUID
	clearCourier bool

	guard guard.ConstructorGuard
}

// NewApplyOrderEventCommand creates a transition command for the given order
// and event type. Optional attributes are attached with the With* builders.
func NewApplyOrderEventCommand(orderID kernel.UUID, eventType order.EventType) (ApplyOrderEventCommand, error) {
	eventCommand := ApplyOrderEventCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		eventType.Validate(),
	); err != nil {
		return ApplyOrderEventCommand{}, err
	}

	eventCommand.orderID = orderID
	eventCommand.eventType = eventType
	return eventCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyOrderEventCommand) Validate() error {
	return c.guard.Validate(ErrApplyOrderEventCommandIsNotConstructed)
}

// WithActor attaches the identity performing the transition.
func (c ApplyOrderEventCommand) WithActor(actorID kernel.UUID) ApplyOrderEventCommand {
	c.actorID = &actorID
	return c
}

// WithMetadata attaches free-form event metadata, such as a failure reason.
func (c ApplyOrderEventCommand) WithMetadata(metadata map[string]string) ApplyOrderEventCommand {
	c.metadata = metadata
	return c
}

// WithLocation attaches the geographic point the transition happened at.
func (c ApplyOrderEventCommand) WithLocation(location kernel.GeoPoint) ApplyOrderEventCommand {
	c.location = &location
	return c
}

// WithCourier attaches the courier the order is being assigned to.
func (c ApplyOrderEventCommand) WithCourier(courierID kernel.UUID) ApplyOrderEventCommand {
	c.courierID = &courierID
	return c
}

// WithClearCourier marks the transition as withdrawing the current
// assignment, resetting the courier reference and its timestamps.
func (c ApplyOrderEventCommand) WithClearCourier() ApplyOrderEventCommand {
	c.clearCourier = true
	return c
}

// OrderID returns the identifier of the order being transitioned.
func (c ApplyOrderEventCommand) OrderID() kernel.UUID {
	return c.orderID
}

// EventType returns the lifecycle event driving the transition.
func (c ApplyOrderEventCommand) EventType() order.EventType {
	return c.eventType
}

// ActorID returns the identity performing the transition, or nil.
func (c ApplyOrderEventCommand) ActorID() *kernel.UUID {
	return c.actorID
}

// Metadata returns the event metadata, or nil.
func (c ApplyOrderEventCommand) Metadata() map[string]string {
	return c.metadata
}

// Location returns the point the transition happened at, or nil.
func (c ApplyOrderEventCommand) Location() *kernel.GeoPoint {
	return c.location
}

// CourierID returns the courier being assigned, or nil.
func (c ApplyOrderEventCommand) CourierID() *kernel.UUID {
	return c.courierID
}

// ClearCourier reports whether the transition withdraws the assignment.
func (c ApplyOrderEventCommand) ClearCourier() bool {
	return c.clearCourier
}
