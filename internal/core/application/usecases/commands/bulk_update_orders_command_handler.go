package commands

import (
	"context"

	"courierhub/internal/core/domain/model/agent"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/notification"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/domain/services"
	"courierhub/internal/core/ports"
)

// BulkUpdateOrdersCommandHandler applies one settlement to a batch of orders
// in a single transaction.
//
// When any id is missing the whole batch fails with an ObjectsNotFoundError
// naming the missing ids and nothing is modified. A company settlement with a
// shipping value stores one fee, computed with the rate of the first order's
// company, on every order. After the commit each order is announced to its
// assigned agent, or to the online agents of its company.
type BulkUpdateOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	effects    SideEffects
}

func NewBulkUpdateOrdersCommandHandler(uowFactory OrderUoWFactory, effects SideEffects) BulkUpdateOrdersCommandHandler {
	return BulkUpdateOrdersCommandHandler{
		uowFactory: uowFactory,
		effects:    effects,
	}
}

// Handle returns the number of updated orders.
func (h *BulkUpdateOrdersCommandHandler) Handle(ctx context.Context, cmd BulkUpdateOrdersCommand) (int, error) {
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

	orders, err := uow.OrderRepository().GetManyForUpdate(ctx, cmd.IDs())
	if err != nil {
		return 0, err
	}
	for _, o := range orders {
		if err = ensureInScope(scope, o); err != nil {
			return 0, err
		}
	}

	patch := cmd.Patch()
	fee := 0.0
	if !patch.DeliveryConfirm && patch.Shipping != nil {
		c, err := uow.CompanyRepository().Get(ctx, orders[0].CompanyID())
		if err != nil {
			return 0, err
		}
		fee = c.DeliveryFee(*patch.Shipping)
	}

	for _, o := range orders {
		if patch.DeliveryConfirm {
			o.ConfirmByDelivery()
		} else if err = o.SettleByCompany(patch.Total, patch.Shipping, fee); err != nil {
			return 0, err
		}

		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.announce(ctx, uow, orders)
	for companyID, ids := range idsByCompany(orders) {
		h.effects.broadcast(ctx, companyID, ports.EventUpdateOrder, OrdersEvent{IDs: ids})
	}

	return len(orders), nil
}

// announce notifies per order. Lookups are cached for the batch.
func (h *BulkUpdateOrdersCommandHandler) announce(ctx context.Context, uow OrderUoW, orders []*order.Order) {
	online := make(map[kernel.UUID][]*agent.Agent)
	assigned := make(map[kernel.UUID]*agent.Agent)
	clientNames := make(map[kernel.UUID]string)

	for _, o := range orders {
		var (
			target *agent.Agent
			agents []*agent.Agent
			msg    notification.Message
		)

		if deliveryID := o.DeliveryID(); deliveryID != nil {
			a, ok := assigned[*deliveryID]
			if !ok {
				var err error
				if a, err = uow.AgentRepository().Get(ctx, *deliveryID); err != nil {
					h.effects.failed("get_assigned_agent", err)
				}
				assigned[*deliveryID] = a
			}
			target = a
			msg = services.OrderAssigned(o.ID())
		} else {
			list, ok := online[o.CompanyID()]
			if !ok {
				var err error
				if list, err = uow.AgentRepository().ListOnline(ctx, o.CompanyID()); err != nil {
					h.effects.failed("list_online_agents", err)
				}
				online[o.CompanyID()] = list
			}
			agents = list
			msg = services.NewOrdersFromClient(h.clientName(ctx, uow, clientNames, o.ClientID()))
		}

		h.effects.announce(ctx, h.effects.Resolver.ForOrder(o, target, agents), msg)
	}
}

func (h *BulkUpdateOrdersCommandHandler) clientName(
	ctx context.Context,
	uow OrderUoW,
	cache map[kernel.UUID]string,
	clientID *kernel.UUID,
) string {
	if clientID == nil {
		return ""
	}
	if name, ok := cache[*clientID]; ok {
		return name
	}
	name := ""
	if cl, err := uow.ClientRepository().Get(ctx, *clientID); err != nil {
		h.effects.failed("get_client", err)
	} else {
		name = cl.Name()
	}
	cache[*clientID] = name
	return name
}

// idsByCompany groups order ids by the room they are broadcast to.
func idsByCompany(orders []*order.Order) map[kernel.UUID][]string {
	out := make(map[kernel.UUID][]string)
	for _, o := range orders {
		out[o.CompanyID()] = append(out[o.CompanyID()], o.ID().String())
	}
	return out
}
