package commands

import (
	"context"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/notification"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/domain/services"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/metrics"

	"go.uber.org/zap"
)

// Announcer starts a notification batch without waiting for it.
type Announcer interface {
	Go(ctx context.Context, recipients []kernel.UUID, msg notification.Message)
}

// SideEffects bundles the collaborators an order command uses after its
// transaction committed. Their failures are logged and never returned.
type SideEffects struct {
	Resolver    services.RecipientResolver
	Announcer   Announcer
	Broadcaster ports.Broadcaster
	Log         *zap.Logger
}

// OrderEvent is the realtime payload describing one order.
type OrderEvent struct {
	ID      string  `json:"id"`
	Status  string  `json:"status"`
	Total   float64 `json:"total"`
	Name    string  `json:"name,omitempty"`
	Deleted bool    `json:"deleted,omitempty"`
}

// OrdersEvent is the realtime payload of a bulk change.
type OrdersEvent struct {
	IDs     []string `json:"ids"`
	Deleted bool     `json:"deleted,omitempty"`
}

func newOrderEvent(o *order.Order, name string) OrderEvent {
	return OrderEvent{
		ID:      o.ID().String(),
		Status:  o.Status().String(),
		Total:   o.Total(),
		Name:    name,
		Deleted: o.IsDeleted(),
	}
}

func (e SideEffects) logger() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

func (e SideEffects) announce(ctx context.Context, recipients []kernel.UUID, msg notification.Message) {
	if e.Announcer == nil || len(recipients) == 0 {
		return
	}
	e.Announcer.Go(ctx, recipients, msg)
}

func (e SideEffects) broadcast(ctx context.Context, companyID kernel.UUID, kind ports.EventKind, payload any) {
	if e.Broadcaster == nil {
		return
	}
	if err := e.Broadcaster.Publish(ctx, companyID, kind, payload); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("broadcast").Inc()
		e.logger().Warn("realtime publish failed",
			zap.String("company_id", companyID.String()),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	}
}

// failed records an error that happened after the commit.
func (e SideEffects) failed(operation string, err error) {
	metrics.OperationErrorsTotal.WithLabelValues(operation).Inc()
	e.logger().Error("post-commit step failed", zap.String("operation", operation), zap.Error(err))
}

// onlineAgents resolves the company-wide recipients of an order event.
func (e SideEffects) onlineAgents(
	ctx context.Context,
	agents ports.AgentRepository,
	companyID kernel.UUID,
	narrowTo *kernel.UUID,
) []kernel.UUID {
	online, err := agents.ListOnline(ctx, companyID)
	if err != nil {
		e.failed("list_online_agents", err)
		return nil
	}
	return e.Resolver.ForCompany(companyID, online, narrowTo)
}
