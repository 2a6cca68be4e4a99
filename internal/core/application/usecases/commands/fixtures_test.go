package commands_test

import (
	"testing"
	"time"

	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/core/domain/model/actor"
	"courierhub/internal/core/domain/model/agent"
	"courierhub/internal/core/domain/model/client"
	"courierhub/internal/core/domain/model/company"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/domain/services"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCompany(t *testing.T, confirmOrders bool) *company.Company {
	t.Helper()
	c, err := company.NewCompany(kernel.NewUUID(), "Acme", 10, confirmOrders)
	require.NoError(t, err)
	return c
}

func newTestClient(t *testing.T, companyID kernel.UUID, activeShipping bool) *client.Client {
	t.Helper()
	cl, err := client.NewClient(kernel.NewUUID(), companyID, "Bakery", "bakery-key", activeShipping, 15)
	require.NoError(t, err)
	return cl
}

func newTestAgent(t *testing.T, companyID kernel.UUID, online bool) *agent.Agent {
	t.Helper()
	a, err := agent.NewAgent(kernel.NewUUID(), kernel.NewUUID(), companyID, online)
	require.NoError(t, err)
	return a
}

func companyAdmin(t *testing.T, companyID kernel.UUID) actor.Actor {
	t.Helper()
	a, err := actor.New(kernel.NewUUID(), actor.RoleCompanyAdmin, &companyID)
	require.NoError(t, err)
	return a
}

func platformAdmin(t *testing.T) actor.Actor {
	t.Helper()
	a, err := actor.New(kernel.NewUUID(), actor.RoleAdmin, nil)
	require.NoError(t, err)
	return a
}

func agentActor(t *testing.T, a *agent.Agent) actor.Actor {
	t.Helper()
	caller, err := actor.New(a.UserID(), actor.RoleDelivery, nil)
	require.NoError(t, err)
	return caller
}

func newTestOrder(t *testing.T, c *company.Company, draft order.Draft) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), c.ID(), draft, c.DeliveryPercent(), time.Now().UTC())
	require.NoError(t, err)
	return o
}

// newTestOrderAt restores an order that already reached status, as the
// repository would load it.
func newTestOrderAt(t *testing.T, c *company.Company, status order.Status, draft order.Draft) *order.Order {
	t.Helper()
	o := newTestOrder(t, c, draft)
	restored, err := order.RestoreOrder(order.Snapshot{
		ID:             o.ID(),
		CompanyID:      o.CompanyID(),
		ClientID:       o.ClientID(),
		DeliveryID:     o.DeliveryID(),
		Status:         status,
		Total:          o.Total(),
		Shipping:       o.Shipping(),
		DeliveryFee:    o.DeliveryFee(),
		Confirmed:      o.IsConfirmed(),
		CompanyConfirm: o.IsCompanyConfirmed(),
		Notes:          o.Notes(),
		From:           o.From(),
		To:             o.To(),
		CreatedAt:      o.CreatedAt(),
	})
	require.NoError(t, err)
	return restored
}

func newEffects(announcer *MockAnnouncer, broadcaster *MockBroadcaster) commands.SideEffects {
	return commands.SideEffects{
		Resolver:    services.NewRecipientResolver(),
		Announcer:   announcer,
		Broadcaster: broadcaster,
		Log:         zap.NewNop(),
	}
}

func ptr[T any](v T) *T {
	return &v
}
