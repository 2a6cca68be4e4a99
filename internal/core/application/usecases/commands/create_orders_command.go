package commands

import (
	"errors"
	"fmt"

	"courierhub/internal/core/domain/model/actor"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

var (
	ErrCreateOrdersCommandIsNotConstructed = errors.New(
		"CreateOrdersCommand must be created via NewCreateOrdersCommand constructor",
	)
	ErrNoOrderItems = errors.New("at least one order is required")
)

// OrderItem is one order of a staff batch. Status may only be left unset or
// name Started; later statuses are reached through updates.
type OrderItem struct {
	ClientID   *kernel.UUID
	DeliveryID *kernel.UUID
	Status     order.Status
	Total      float64
	Shipping   float64
	Notes      string
	From       string
	To         string
}

// CreateOrdersCommand represents a staff member registering one or more
// orders for a company in a single transaction.
//
// Platform admins must name the target company; company admins and agents
// always create orders for their own company.
//
// Example:
//
//	cmd, err := NewCreateOrdersCommand(caller, nil, []OrderItem{
//	    {ClientID: &clientID, Total: 120, Shipping: 20},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid orders: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrdersCommand struct { //nolint:recvcheck //using for validation
	caller    actor.Actor
	companyID *kernel.UUID
	items     []OrderItem

	guard guard.ConstructorGuard
}

// NewCreateOrdersCommand validates the caller and every item.
func NewCreateOrdersCommand(caller actor.Actor, companyID *kernel.UUID, items []OrderItem) (CreateOrdersCommand, error) {
	cmd := CreateOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCaller(caller),
		cmd.setCompanyID(companyID),
		cmd.setItems(items),
	); err != nil {
		return CreateOrdersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrdersCommandIsNotConstructed)
}

func (c CreateOrdersCommand) Caller() actor.Actor {
	return c.caller
}

// CompanyID returns the explicitly requested company, if any.
func (c CreateOrdersCommand) CompanyID() *kernel.UUID {
	return c.companyID
}

func (c CreateOrdersCommand) Items() []OrderItem {
	return c.items
}

func (c *CreateOrdersCommand) setCaller(caller actor.Actor) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	c.caller = caller
	return nil
}

func (c *CreateOrdersCommand) setCompanyID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	c.companyID = id
	return nil
}

func (c *CreateOrdersCommand) setItems(items []OrderItem) error {
	if len(items) == 0 {
		return ErrNoOrderItems
	}

	var err error
	for i, item := range items {
		name := fmt.Sprintf("orders[%d]", i)
		if item.Total < 0 {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(name+".total", fmt.Errorf("%v is negative", item.Total)))
		}
		if item.Shipping < 0 {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(name+".shipping", fmt.Errorf("%v is negative", item.Shipping)))
		}
		if item.Status != order.Unknown && item.Status != order.Started {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
				name+".status",
				fmt.Errorf("new orders start at %s, got %s", order.Started, item.Status),
			))
		}
	}
	if err != nil {
		return err
	}

	c.items = append([]OrderItem(nil), items...)
	return nil
}
