package commands

import (
	"context"
)

// ApplyOrderEventCommandHandler executes order lifecycle transitions.
// The order mutation and its event-log insert commit as one unit, so a
// recorded event always corresponds to a persisted state change.
//
// Example:
//
//	handler := NewApplyOrderEventCommandHandler(uowFactory)
//	cmd, _ := NewApplyOrderEventCommand(orderID, order.EventDelivered)
//	if err := handler.Handle(ctx, cmd.WithActor(courierID)); err != nil {
//	    log.Printf("transition rejected: %v", err)
//	}
type ApplyOrderEventCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewApplyOrderEventCommandHandler creates a handler for order transitions.
func NewApplyOrderEventCommandHandler(uowFactory OrderUoWFactory) ApplyOrderEventCommandHandler {
	return ApplyOrderEventCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order, applies the transition and persists both the
// updated order and the event record. A transition the adjacency table does
// not allow surfaces as *order.InvalidTransitionError with no writes.
// Reassignment to the courier the order already belongs to is a silent
// no-op: nothing is written and no event is recorded.
func (h *ApplyOrderEventCommandHandler) Handle(ctx context.Context, cmd ApplyOrderEventCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	target, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	event, err := target.ApplyEvent(
		cmd.EventType(),
		cmd.ActorID(),
		cmd.Metadata(),
		cmd.Location(),
		cmd.CourierID(),
		cmd.ClearCourier(),
	)
	if err != nil {
		return err
	}
	if event == nil {
		// Idempotent reassignment. Nothing changed, nothing to write.
		return nil
	}

	if err = orderRepo.Update(ctx, target); err != nil {
		return err
	}
	if err = orderRepo.AddEvent(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
