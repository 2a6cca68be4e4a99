package commands

import (
	"context"
	"time"

	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/domain/services"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/metrics"
)

// UpdateOrderCommandHandler runs the order state machine for one patch.
//
// The order row is locked and version checked, so of two concurrent updates
// one fails with a ConflictError instead of overwriting the other. The order
// and its timeline change are committed together. A staff member naming an
// agent on a confirmed order notifies that agent after the commit.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	effects    SideEffects
}

func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory, effects SideEffects) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		effects:    effects,
	}
}

func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
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

	scope, err := companyScope(ctx, uow.AgentRepository(), cmd.Caller())
	if err != nil {
		return nil, err
	}

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = ensureInScope(scope, o); err != nil {
		return nil, err
	}

	c, err := uow.CompanyRepository().Get(ctx, o.CompanyID())
	if err != nil {
		return nil, err
	}

	timeline, err := uow.TimelineRepository().Get(ctx, o.ID())
	if err != nil {
		return nil, err
	}

	upd, err := o.Apply(cmd.Patch(), c.DeliveryPercent(), timeline, cmd.Caller().Ref(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	if !upd.Timeline.IsEmpty() {
		if err = uow.TimelineRepository().Apply(ctx, o.ID(), upd.Timeline); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if upd.StatusChanged() {
		metrics.OrderTransitionsTotal.WithLabelValues(upd.To.String()).Inc()
	}

	if h.effects.Resolver.AnnounceReassignment(cmd.Caller(), upd) {
		assigned, err := uow.AgentRepository().Get(ctx, *o.DeliveryID())
		if err != nil {
			h.effects.failed("get_assigned_agent", err)
		} else {
			h.effects.announce(ctx, h.effects.Resolver.ForAssigned(assigned), services.OrderAssigned(o.ID()))
		}
	}
	h.effects.broadcast(ctx, o.CompanyID(), ports.EventUpdateOrder, newOrderEvent(o, ""))

	return o, nil
}
