package order

import (
	"fmt"

	"medrush/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery order.
// It implements a state machine with a fixed transition table so that
// orders always follow the documented business workflow.
//
// State transitions:
//
//	Pending ──> Assigned ──> PickedUp ──> EnRoute ──> Delivered
//	   ^            │            │            │
//	   │            │            └──> Failed <┘
//	   │            │                    │
//	   └────────────┴────────────────────┘
//	   (withdrawal, auto-assign failure, retry after failure)
//
//	any non-terminal status ──> Cancelled
//
// Delivered and Cancelled are terminal. Assigned orders may be reassigned
// (Assigned -> Assigned); Failed orders may return to Pending for another
// assignment attempt.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status of a newly created order.
	// Pending orders have no courier and wait for batch assignment.
	StatusPending

	// StatusAssigned indicates the order belongs to a courier's route.
	// Reassignment to a different courier is allowed in this status.
	StatusAssigned

	// StatusPickedUp indicates the courier collected the order at the pickup point.
	StatusPickedUp

	// StatusEnRoute indicates the courier is travelling to the delivery point.
	StatusEnRoute

	// StatusDelivered indicates a successful delivery. Terminal.
	StatusDelivered

	// StatusFailed indicates a failed delivery attempt.
	// Failed orders keep their failure reason and may re-enter Pending.
	StatusFailed

	// StatusCancelled indicates the order was cancelled. Terminal.
	StatusCancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "Unknown",
		StatusPending:   "Pending",
		StatusAssigned:  "Assigned",
		StatusPickedUp:  "PickedUp",
		StatusEnRoute:   "EnRoute",
		StatusDelivered: "Delivered",
		StatusFailed:    "Failed",
		StatusCancelled: "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:   "Pending",
		StatusAssigned:  "Assigned",
		StatusPickedUp:  "PickedUp",
		StatusEnRoute:   "EnRoute",
		StatusDelivered: "Delivered",
		StatusFailed:    "Failed",
		StatusCancelled: "Cancelled",
	}
}

// allowedTransitions is the fixed adjacency table of the order state machine,
// keyed by current status. A transition not present here is rejected with
// InvalidTransitionError. Terminal statuses map to an empty set.
var allowedTransitions = map[Status][]Status{
	StatusPending:   {StatusAssigned, StatusCancelled},
	StatusAssigned:  {StatusPending, StatusAssigned, StatusPickedUp, StatusCancelled},
	StatusPickedUp:  {StatusEnRoute, StatusFailed, StatusCancelled},
	StatusEnRoute:   {StatusDelivered, StatusFailed, StatusCancelled},
	StatusFailed:    {StatusPending, StatusCancelled},
	StatusDelivered: {},
	StatusCancelled: {},
}

// Validate checks if the Status value is valid.
// StatusUnknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible from s.
func (s Status) IsTerminal() bool {
	return s.Validate() == nil && len(allowedTransitions[s]) == 0
}

// CanTransitionTo reports whether the adjacency table permits moving from s
// to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AllowedTransitions returns a copy of the permitted target statuses for s.
// Exposed so the transition table can be inspected exhaustively in tests.
func (s Status) AllowedTransitions() []Status {
	targets := make([]Status, len(allowedTransitions[s]))
	copy(targets, allowedTransitions[s])
	return targets
}
