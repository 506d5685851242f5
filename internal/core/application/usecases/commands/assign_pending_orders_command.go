package commands

import (
	"errors"
	"time"

	"medrush/internal/pkg/guard"
)

var (
	ErrAssignPendingOrdersCommandIsNotConstructed = errors.New(
		"AssignPendingOrdersCommand must be created via NewAssignPendingOrdersCommand constructor",
	)
	ErrCourierLoadIsInvalid = errors.New("courier load bounds must satisfy 0 < min <= max")
	ErrWindowIsInvalid      = errors.New("window end must be after window start")
)

// AssignPendingOrdersCommand represents a request to batch-assign every
// pending unassigned order of a region onto optimized courier routes.
//
// Example:
//
//	cmd, err := NewAssignPendingOrdersCommand("warsaw", 120, 150, shiftStart, shiftEnd, nil)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("batch assignment failed: %v", err)
//	}
type AssignPendingOrdersCommand struct { //nolint:recvcheck //using for validation
	region         string
	courierMinLoad int
	courierMaxLoad int
	windowStart    time.Time
	windowEnd      time.Time
	postalCodes    []string

	guard guard.ConstructorGuard
}

// NewAssignPendingOrdersCommand creates a batch assignment command.
// The postal code filter is optional; an empty slice means the whole region.
func NewAssignPendingOrdersCommand(
	region string,
	courierMinLoad int,
	courierMaxLoad int,
	windowStart time.Time,
	windowEnd time.Time,
	postalCodes []string,
) (AssignPendingOrdersCommand, error) {
	assignCommand := AssignPendingOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		assignCommand.setRegion(region),
		assignCommand.setLoads(courierMinLoad, courierMaxLoad),
		assignCommand.setWindow(windowStart, windowEnd),
	); err != nil {
		return AssignPendingOrdersCommand{}, err
	}

	assignCommand.postalCodes = postalCodes
	return assignCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignPendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAssignPendingOrdersCommandIsNotConstructed)
}

// Region returns the dispatch region being processed.
func (c AssignPendingOrdersCommand) Region() string {
	return c.region
}

// CourierMinLoad returns the lower bound of orders per courier.
func (c AssignPendingOrdersCommand) CourierMinLoad() int {
	return c.courierMinLoad
}

// CourierMaxLoad returns the upper bound of orders per courier.
func (c AssignPendingOrdersCommand) CourierMaxLoad() int {
	return c.courierMaxLoad
}

// WindowStart returns the start of the delivery window.
func (c AssignPendingOrdersCommand) WindowStart() time.Time {
	return c.windowStart
}

// WindowEnd returns the end of the delivery window.
func (c AssignPendingOrdersCommand) WindowEnd() time.Time {
	return c.windowEnd
}

// PostalCodes returns the optional delivery postal code filter.
func (c AssignPendingOrdersCommand) PostalCodes() []string {
	return c.postalCodes
}

func (c *AssignPendingOrdersCommand) setRegion(region string) error {
	if region == "" {
		return ErrRegionIsRequired
	}

	c.region = region
	return nil
}

func (c *AssignPendingOrdersCommand) setLoads(minLoad, maxLoad int) error {
	if minLoad <= 0 || maxLoad < minLoad {
		return ErrCourierLoadIsInvalid
	}

	c.courierMinLoad = minLoad
	c.courierMaxLoad = maxLoad
	return nil
}

func (c *AssignPendingOrdersCommand) setWindow(start, end time.Time) error {
	if !end.After(start) {
		return ErrWindowIsInvalid
	}

	c.windowStart = start
	c.windowEnd = end
	return nil
}
