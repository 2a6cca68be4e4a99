package commands

import (
	"context"

	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/ports"
)

// RemoveOrdersCommandHandler soft-deletes orders. A batch with missing ids
// fails as a whole.
type RemoveOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	effects    SideEffects
}

func NewRemoveOrdersCommandHandler(uowFactory OrderUoWFactory, effects SideEffects) RemoveOrdersCommandHandler {
	return RemoveOrdersCommandHandler{
		uowFactory: uowFactory,
		effects:    effects,
	}
}

// Handle returns the number of removed orders.
func (h *RemoveOrdersCommandHandler) Handle(ctx context.Context, cmd RemoveOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	scope, err := companyScope(ctx, uow.AgentRepository(), cmd.Caller())
	if err != nil {
		return 0, err
	}

	var orders []*order.Order
	if cmd.single {
		o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.IDs()[0])
		if err != nil {
			return 0, err
		}
		orders = []*order.Order{o}
	} else if orders, err = uow.OrderRepository().GetManyForUpdate(ctx, cmd.IDs()); err != nil {
		return 0, err
	}

	for _, o := range orders {
		if err = ensureInScope(scope, o); err != nil {
			return 0, err
		}
		o.MarkDeleted()
		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	if cmd.single {
		h.effects.broadcast(ctx, orders[0].CompanyID(), ports.EventUpdateOrder, newOrderEvent(orders[0], ""))
	} else {
		for companyID, ids := range idsByCompany(orders) {
			h.effects.broadcast(ctx, companyID, ports.EventUpdateOrder, OrdersEvent{IDs: ids, Deleted: true})
		}
	}

	return len(orders), nil
}
