package commands

import (
	"errors"

	"courierhub/internal/core/domain/model/actor"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand applies a partial update, possibly a status change, to
// one order.
//
// Example:
//
//	status := order.Delivered
//	shipping := 25.0
//	cmd, err := NewUpdateOrderCommand(caller, orderID, order.Patch{
//	    Status:   &status,
//	    Shipping: &shipping,
//	})
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	caller  actor.Actor
	orderID kernel.UUID
	patch   order.Patch

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(caller actor.Actor, orderID kernel.UUID, patch order.Patch) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		caller.Validate(),
		orderID.Validate(),
		patch.Validate(),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	cmd.caller = caller
	cmd.orderID = orderID
	cmd.patch = patch
	return cmd, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) Caller() actor.Actor {
	return c.caller
}

func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateOrderCommand) Patch() order.Patch {
	return c.patch
}
