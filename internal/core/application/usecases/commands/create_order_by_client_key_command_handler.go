package commands

import (
	"context"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/domain/services"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/metrics"
)

// CreateOrderByClientKeyCommandHandler creates a self-service order.
//
// A client with active shipping gets its configured shipping value and a
// confirmed order that is announced to every online agent of the company.
// Otherwise the order is unpriced, unconfirmed and silent until the company
// settles it.
type CreateOrderByClientKeyCommandHandler struct {
	uowFactory OrderUoWFactory
	effects    SideEffects
}

func NewCreateOrderByClientKeyCommandHandler(
	uowFactory OrderUoWFactory,
	effects SideEffects,
) CreateOrderByClientKeyCommandHandler {
	return CreateOrderByClientKeyCommandHandler{
		uowFactory: uowFactory,
		effects:    effects,
	}
}

func (h *CreateOrderByClientKeyCommandHandler) Handle(
	ctx context.Context,
	cmd CreateOrderByClientKeyCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cl, err := uow.ClientRepository().GetByKey(ctx, cmd.Key())
	if err != nil {
		return nil, err
	}

	c, err := uow.CompanyRepository().Get(ctx, cl.CompanyID())
	if err != nil {
		return nil, err
	}

	pricing := cl.SelfServicePricing(c.DeliveryPercent())
	clientID := cl.ID()
	now := time.Now().UTC()

	o, err := order.NewOrder(kernel.NewUUID(), c.ID(), order.Draft{
		ClientID:       &clientID,
		Shipping:       pricing.Shipping,
		Notes:          cmd.Notes(),
		From:           cmd.From(),
		To:             cmd.To(),
		Confirmed:      pricing.Confirmed,
		CompanyConfirm: pricing.Confirmed,
	}, c.DeliveryPercent(), now)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = recordCreation(ctx, uow.TimelineRepository(), o, nil, now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.OrdersCreatedTotal.WithLabelValues("self_service").Inc()

	if h.effects.Resolver.AnnounceSelfServiceCreation(cl) {
		recipients := h.effects.onlineAgents(ctx, uow.AgentRepository(), c.ID(), nil)
		h.effects.announce(ctx, recipients, services.NewOrderFromClient(cl.Name()))
	}
	h.effects.broadcast(ctx, c.ID(), ports.EventNewOrder, newOrderEvent(o, cl.Name()))

	return o, nil
}
