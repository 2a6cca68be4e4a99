package commands

import (
	"context"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/domain/services"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/metrics"
)

// CreateOrdersCommandHandler registers a staff batch of orders.
//
// Every order gets a creation event in its timeline. Orders created by an
// agent, or for a company that confirms orders, start confirmed. After the
// commit the batch is announced to the company's online agents (narrowed to
// the agent named by the first order) unless an agent created it or the
// company leaves confirmation to its admins.
type CreateOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	effects    SideEffects
}

func NewCreateOrdersCommandHandler(uowFactory OrderUoWFactory, effects SideEffects) CreateOrdersCommandHandler {
	return CreateOrdersCommandHandler{
		uowFactory: uowFactory,
		effects:    effects,
	}
}

// Handle persists all orders atomically and returns them in item order.
func (h *CreateOrdersCommandHandler) Handle(ctx context.Context, cmd CreateOrdersCommand) ([]*order.Order, error) {
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

	companyID, err := h.targetCompany(ctx, uow.AgentRepository(), cmd)
	if err != nil {
		return nil, err
	}

	c, err := uow.CompanyRepository().Get(ctx, companyID)
	if err != nil {
		return nil, err
	}

	items := cmd.Items()
	clientName := ""
	if first := items[0].ClientID; first != nil {
		cl, err := uow.ClientRepository().Get(ctx, *first)
		if err != nil {
			return nil, err
		}
		if !cl.CompanyID().IsEqual(companyID) {
			return nil, errs.NewObjectNotFoundError("client", first.String())
		}
		clientName = cl.Name()
	}

	caller := cmd.Caller()
	confirmed := caller.IsAgent() || c.ConfirmOrders()
	now := time.Now().UTC()

	created := make([]*order.Order, 0, len(items))
	for _, item := range items {
		o, err := order.NewOrder(kernel.NewUUID(), companyID, order.Draft{
			ClientID:   item.ClientID,
			DeliveryID: item.DeliveryID,
			Total:      item.Total,
			Shipping:   item.Shipping,
			Notes:      item.Notes,
			From:       item.From,
			To:         item.To,
			Confirmed:  confirmed,
		}, c.DeliveryPercent(), now)
		if err != nil {
			return nil, err
		}

		if err = uow.OrderRepository().Add(ctx, o); err != nil {
			return nil, err
		}

		if err = recordCreation(ctx, uow.TimelineRepository(), o, caller.Ref(), now); err != nil {
			return nil, err
		}

		created = append(created, o)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.OrdersCreatedTotal.WithLabelValues("staff").Add(float64(len(created)))

	if h.effects.Resolver.AnnounceStaffCreation(caller, c) {
		recipients := h.effects.onlineAgents(ctx, uow.AgentRepository(), companyID, items[0].DeliveryID)
		h.effects.announce(ctx, recipients, services.NewOrderFromClient(clientName))
	}
	for _, o := range created {
		h.effects.broadcast(ctx, companyID, ports.EventNewOrder, newOrderEvent(o, clientName))
	}

	return created, nil
}

func (h *CreateOrdersCommandHandler) targetCompany(
	ctx context.Context,
	agents ports.AgentRepository,
	cmd CreateOrdersCommand,
) (kernel.UUID, error) {
	scope, err := companyScope(ctx, agents, cmd.Caller())
	if err != nil {
		return kernel.UUID{}, err
	}

	requested := cmd.CompanyID()
	switch {
	case scope == nil && requested == nil:
		return kernel.UUID{}, errs.NewValueIsRequiredError("companyId")
	case scope == nil:
		return *requested, nil
	case requested != nil && !requested.IsEqual(*scope):
		return kernel.UUID{}, errs.NewObjectNotFoundError("company", requested.String())
	default:
		return *scope, nil
	}
}

// recordCreation writes the first timeline entry of a new order.
func recordCreation(ctx context.Context, repo ports.TimelineRepository, o *order.Order, by *kernel.UUID, at time.Time) error {
	timeline, err := order.NewTimeline(o.ID(), nil)
	if err != nil {
		return err
	}
	event, err := timeline.RecordCreation(o.Status(), by, at)
	if err != nil {
		return err
	}
	return repo.Add(ctx, event)
}
