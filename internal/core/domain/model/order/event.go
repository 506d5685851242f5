package order

import (
	"errors"
	"fmt"
	"time"

	"medrush/internal/core/domain/model/kernel"
	"medrush/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel for rejected status changes.
// Use errors.Is to classify an InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid order status transition")

// InvalidTransitionError reports an attempted status change that is not
// present in the adjacency table. The order is left unchanged.
type InvalidTransitionError struct {
	From  Status
	Event EventType
}

// NewInvalidTransitionError creates an InvalidTransitionError for an event
// applied in status from.
func NewInvalidTransitionError(from Status, event EventType) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, Event: event}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: event %s is not applicable in status %s", ErrInvalidTransition, e.Event, e.From)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// EventType identifies the business action driving an order status change.
// Each event type maps to exactly one target status via eventTargets.
type EventType int

const (
	// EventUnknown represents an invalid or undefined event type.
	EventUnknown EventType = iota

	// EventCreated records order creation. Emitted only by NewOrder;
	// applying it to an existing order is always an invalid transition.
	EventCreated

	// EventCourierAssigned records assignment of the order to a courier.
	EventCourierAssigned

	// EventCourierReassigned records assignment to a different courier.
	EventCourierReassigned

	// EventPickedUp records collection of the order at the pickup point.
	EventPickedUp

	// EventDeparted records the courier leaving for the delivery point.
	EventDeparted

	// EventDelivered records a successful delivery.
	EventDelivered

	// EventDeliveryFailed records a failed delivery attempt.
	EventDeliveryFailed

	// EventCancelled records cancellation of the order.
	EventCancelled

	// EventAssignmentFailed records an automatic assignment run that could
	// not place the order; the order returns to Pending.
	EventAssignmentFailed

	// EventAssignmentWithdrawn records a dispatcher pulling the order off
	// its courier; the order returns to Pending.
	EventAssignmentWithdrawn
)

// eventTargets is the fixed table mapping each event type to its single
// target status.
var eventTargets = map[EventType]Status{
	EventCreated:             StatusPending,
	EventCourierAssigned:     StatusAssigned,
	EventCourierReassigned:   StatusAssigned,
	EventPickedUp:            StatusPickedUp,
	EventDeparted:            StatusEnRoute,
	EventDelivered:           StatusDelivered,
	EventDeliveryFailed:      StatusFailed,
	EventCancelled:           StatusCancelled,
	EventAssignmentFailed:    StatusPending,
	EventAssignmentWithdrawn: StatusPending,
}

// eventDescriptions provides the human-readable description persisted with
// each event record.
var eventDescriptions = map[EventType]string{
	EventCreated:             "order created",
	EventCourierAssigned:     "courier assigned to order",
	EventCourierReassigned:   "order reassigned to another courier",
	EventPickedUp:            "order picked up at pharmacy",
	EventDeparted:            "courier en route to delivery point",
	EventDelivered:           "order delivered",
	EventDeliveryFailed:      "delivery attempt failed",
	EventCancelled:           "order cancelled",
	EventAssignmentFailed:    "automatic courier assignment failed",
	EventAssignmentWithdrawn: "courier assignment withdrawn",
}

func getEventTypeStrings() map[EventType]string {
	return map[EventType]string{
		EventUnknown:             "Unknown",
		EventCreated:             "Created",
		EventCourierAssigned:     "CourierAssigned",
		EventCourierReassigned:   "CourierReassigned",
		EventPickedUp:            "PickedUp",
		EventDeparted:            "Departed",
		EventDelivered:           "Delivered",
		EventDeliveryFailed:      "DeliveryFailed",
		EventCancelled:           "Cancelled",
		EventAssignmentFailed:    "AssignmentFailed",
		EventAssignmentWithdrawn: "AssignmentWithdrawn",
	}
}

// TargetStatus returns the status this event type transitions an order to.
// Returns an error for unknown event types.
func (t EventType) TargetStatus() (Status, error) {
	target, ok := eventTargets[t]
	if !ok {
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"event type is invalid",
			fmt.Errorf("%d has no target status", t),
		)
	}
	return target, nil
}

// Validate checks if the EventType value is valid.
func (t EventType) Validate() error {
	if _, ok := eventTargets[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"event type is invalid",
			fmt.Errorf("%d is not a valid event type", t),
		)
	}
	return nil
}

// String returns the name of the event type. Implements fmt.Stringer.
func (t EventType) String() string {
	if str, ok := getEventTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}

// Description returns the human-readable description recorded for this event type.
func (t EventType) Description() string {
	return eventDescriptions[t]
}

// Event is the persisted record of a single order status transition.
// Events are written in the same transaction as the order mutation they
// describe, so the log never disagrees with the order row.
type Event struct {
	id          kernel.UUID
	orderID     kernel.UUID
	actorID     *kernel.UUID
	eventType   EventType
	description string
	metadata    map[string]string
	location    *kernel.GeoPoint
	createdAt   time.Time
}

// newEvent builds an event record for a transition that just happened.
func newEvent(
	orderID kernel.UUID,
	eventType EventType,
	actorID *kernel.UUID,
	metadata map[string]string,
	location *kernel.GeoPoint,
	createdAt time.Time,
) *Event {
	return &Event{
		id:          kernel.NewUUID(),
		orderID:     orderID,
		actorID:     actorID,
		eventType:   eventType,
		description: eventType.Description(),
		metadata:    metadata,
		location:    location,
		createdAt:   createdAt,
	}
}

// RestoreEvent reconstructs an event record from persistence.
func RestoreEvent(
	id kernel.UUID,
	orderID kernel.UUID,
	actorID *kernel.UUID,
	eventType EventType,
	description string,
	metadata map[string]string,
	location *kernel.GeoPoint,
	createdAt time.Time,
) (*Event, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), eventType.Validate()); err != nil {
		return nil, err
	}

	return &Event{
		id:          id,
		orderID:     orderID,
		actorID:     actorID,
		eventType:   eventType,
		description: description,
		metadata:    metadata,
		location:    location,
		createdAt:   createdAt,
	}, nil
}

// ID returns the event's unique identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// OrderID returns the identifier of the order the event belongs to.
func (e *Event) OrderID() kernel.UUID {
	return e.orderID
}

// ActorID returns the identifier of the user who triggered the event,
// or nil for system-generated events.
func (e *Event) ActorID() *kernel.UUID {
	return e.actorID
}

// Type returns the event type.
func (e *Event) Type() EventType {
	return e.eventType
}

// Description returns the human-readable description of the event.
func (e *Event) Description() string {
	return e.description
}

// Metadata returns the free-form key/value payload attached to the event.
func (e *Event) Metadata() map[string]string {
	return e.metadata
}

// Location returns where the event happened, or nil when not reported.
func (e *Event) Location() *kernel.GeoPoint {
	return e.location
}

// CreatedAt returns when the event was recorded.
func (e *Event) CreatedAt() time.Time {
	return e.createdAt
}
