package order

import (
	"errors"
	"time"

	"medrush/internal/core/domain/model/kernel"
	"medrush/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Metadata keys read by the Failed side effect.
const (
	MetadataKeyReason = "reason"
	MetadataKeyNotes  = "notes"
)

// Order is the aggregate root for a medicine delivery order. It owns the
// status state machine: every status change goes through ApplyEvent, which
// validates the transition against the adjacency table, applies the
// documented side effects, and returns the event record to persist
// alongside the mutation.
//
// Invariants:
//   - status is always reachable from the previous status via the
//     adjacency table
//   - assignedAt/pickedUpAt/deliveredAt are set only by their matching
//     transitions
//   - failureReason is set only on a Failed transition
//   - a courier reference is present exactly while the order is on a route
type Order struct {
	id kernel.UUID

	status Status

	// pickupLocation is where the courier collects the order (pharmacy).
	pickupLocation kernel.GeoPoint

	// deliveryLocation is the customer's address.
	deliveryLocation kernel.GeoPoint

	region     string
	postalCode string

	courierID *kernel.UUID

	assignedAt  *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time

	failureReason string
	failureNotes  string

	isConstructed bool
}

// NewOrder creates a Pending order and its creation event record.
// All status changes after construction go through ApplyEvent.
func NewOrder(
	id kernel.UUID,
	pickupLocation kernel.GeoPoint,
	deliveryLocation kernel.GeoPoint,
	region string,
	postalCode string,
) (*Order, *Event, error) {
	o := &Order{
		status:        StatusPending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setPickupLocation(pickupLocation),
		o.setDeliveryLocation(deliveryLocation),
		o.setRegion(region),
	); err != nil {
		return nil, nil, err
	}
	o.postalCode = postalCode

	evt := newEvent(o.id, EventCreated, nil, nil, nil, time.Now().UTC())
	return o, evt, nil
}

// RestoreOrder reconstructs an order aggregate from persistence.
func RestoreOrder(
	id kernel.UUID,
	pickupLocation kernel.GeoPoint,
	deliveryLocation kernel.GeoPoint,
	region string,
	postalCode string,
	status Status,
	courierID *kernel.UUID,
	assignedAt *time.Time,
	pickedUpAt *time.Time,
	deliveredAt *time.Time,
	failureReason string,
	failureNotes string,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setPickupLocation(pickupLocation),
		o.setDeliveryLocation(deliveryLocation),
		o.setRegion(region),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	o.postalCode = postalCode
	o.status = status
	o.courierID = courierID
	o.assignedAt = assignedAt
	o.pickedUpAt = pickedUpAt
	o.deliveredAt = deliveredAt
	o.failureReason = failureReason
	o.failureNotes = failureNotes

	return o, nil
}

// Validate ensures the Order was constructed through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// PickupLocation returns where the order is collected.
func (o *Order) PickupLocation() kernel.GeoPoint {
	return o.pickupLocation
}

// DeliveryLocation returns the customer's delivery point.
func (o *Order) DeliveryLocation() kernel.GeoPoint {
	return o.deliveryLocation
}

// Region returns the dispatch region the order belongs to.
func (o *Order) Region() string {
	return o.region
}

// PostalCode returns the delivery postal code (may be empty).
func (o *Order) PostalCode() string {
	return o.postalCode
}

// Courier returns the assigned courier's ID, or nil if unassigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// AssignedAt returns when the order was last assigned, or nil.
func (o *Order) AssignedAt() *time.Time {
	return o.assignedAt
}

// PickedUpAt returns when the order was picked up, or nil.
func (o *Order) PickedUpAt() *time.Time {
	return o.pickedUpAt
}

// DeliveredAt returns when the order was delivered, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// FailureReason returns the reason recorded by the last failed delivery attempt.
func (o *Order) FailureReason() string {
	return o.failureReason
}

// FailureNotes returns free-form notes recorded by the last failed delivery attempt.
func (o *Order) FailureNotes() string {
	return o.failureNotes
}

// ApplyEvent validates and applies a status transition driven by eventType.
//
// The transition is checked against the adjacency table for the order's
// current status; an attempt outside the table fails with
// InvalidTransitionError and performs no mutation. Reassigning an Assigned
// order to the courier it already belongs to is a no-op: both return values
// are nil and no event is recorded. The no-op never bypasses the adjacency
// check, so assignment events on later statuses still fail.
//
// Side effects by target status: Assigned sets the courier and assignment
// timestamp; PickedUp sets the pickup timestamp; Delivered sets the delivery
// timestamp; Failed stores the failure reason and notes from metadata.
// When clearCourier is set the courier reference, assignment timestamp and
// pickup timestamp are reset, independent of the status change.
//
// On success the returned event must be persisted in the same transaction
// as the order update.
func (o *Order) ApplyEvent(
	eventType EventType,
	actorID *kernel.UUID,
	metadata map[string]string,
	location *kernel.GeoPoint,
	courierID *kernel.UUID,
	clearCourier bool,
) (*Event, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := eventType.Validate(); err != nil {
		return nil, err
	}

	// Creation events exist only at construction time. The adjacency table
	// would otherwise admit them from Assigned and Failed, since their
	// target is Pending.
	if eventType == EventCreated {
		return nil, NewInvalidTransitionError(o.status, eventType)
	}

	target, err := eventType.TargetStatus()
	if err != nil {
		return nil, err
	}

	if !o.status.CanTransitionTo(target) {
		return nil, NewInvalidTransitionError(o.status, eventType)
	}

	// Idempotency guard: reassignment to the identical courier must not
	// generate duplicate events. Checked only after the transition itself
	// is known to be legal, so the same courier ID on a PickedUp or
	// Delivered order still fails above instead of silently no-opping.
	if target == StatusAssigned && courierID != nil && o.courierID != nil && o.courierID.IsEqual(*courierID) {
		return nil, nil
	}

	if target == StatusAssigned {
		if courierID == nil {
			return nil, errs.NewValueIsRequiredError("courierID")
		}
		if err = courierID.Validate(); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()

	o.status = target

	switch target {
	case StatusAssigned:
		o.courierID = courierID
		o.assignedAt = &now
	case StatusPickedUp:
		o.pickedUpAt = &now
	case StatusDelivered:
		o.deliveredAt = &now
	case StatusFailed:
		o.failureReason = metadata[MetadataKeyReason]
		o.failureNotes = metadata[MetadataKeyNotes]
	case StatusUnknown, StatusPending, StatusEnRoute, StatusCancelled:
		// no timestamp side effects
	}

	if clearCourier {
		o.courierID = nil
		o.assignedAt = nil
		o.pickedUpAt = nil
	}

	return newEvent(o.id, eventType, actorID, metadata, location, now), nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setPickupLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.pickupLocation = location
	return nil
}

func (o *Order) setDeliveryLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.deliveryLocation = location
	return nil
}

func (o *Order) setRegion(region string) error {
	if region == "" {
		return errs.NewValueIsRequiredError("region")
	}
	o.region = region
	return nil
}
