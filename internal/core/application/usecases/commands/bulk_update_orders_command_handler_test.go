package commands_test

import (
	"errors"
	"testing"

	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/core/domain/model/agent"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/domain/services"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBulkUpdateOrdersCommandHandler_Handle_CompanySettlement(t *testing.T) {
	ctx := t.Context()
	c := newTestCompany(t, true)
	cl := newTestClient(t, c.ID(), false)
	assignee := newTestAgent(t, c.ID(), true)
	online := newTestAgent(t, c.ID(), true)
	clientID, deliveryID := cl.ID(), assignee.ID()

	assigned := newTestOrder(t, c, order.Draft{ClientID: &clientID, DeliveryID: &deliveryID})
	open := newTestOrder(t, c, order.Draft{ClientID: &clientID})

	cmd, err := commands.NewBulkUpdateOrdersCommand(
		companyAdmin(t, c.ID()),
		[]kernel.UUID{assigned.ID(), open.ID(), assigned.ID()},
		commands.BulkPatch{Total: ptr(80.0), Shipping: ptr(40.0)},
	)
	require.NoError(t, err)
	require.Len(t, cmd.IDs(), 2)

	uow := newMockOrderUoW()
	uow.expectTx(ctx, true)
	uow.orders.On("GetManyForUpdate", ctx, []kernel.UUID{assigned.ID(), open.ID()}).
		Return([]*order.Order{assigned, open}, nil).Once()
	uow.companies.On("Get", ctx, c.ID()).Return(c, nil).Once()
	uow.orders.On("Update", ctx, assigned).Return(nil).Once()
	uow.orders.On("Update", ctx, open).Return(nil).Once()
	uow.agents.On("Get", ctx, assignee.ID()).Return(assignee, nil).Once()
	uow.agents.On("ListOnline", ctx, c.ID()).Return([]*agent.Agent{online}, nil).Once()
	uow.clients.On("Get", ctx, cl.ID()).Return(cl, nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	announcer := new(MockAnnouncer)
	announcer.On("Go", ctx, []kernel.UUID{assignee.UserID()}, services.OrderAssigned(assigned.ID())).Once()
	announcer.On("Go", ctx, []kernel.UUID{online.UserID()}, services.NewOrdersFromClient("Bakery")).Once()
	broadcaster := new(MockBroadcaster)
	broadcaster.On("Publish", ctx, c.ID(), ports.EventUpdateOrder, commands.OrdersEvent{
		IDs: []string{assigned.ID().String(), open.ID().String()},
	}).Return(nil).Once()

	handler := commands.NewBulkUpdateOrdersCommandHandler(factory, newEffects(announcer, broadcaster))
	count, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	for _, o := range []*order.Order{assigned, open} {
		assert.InDelta(t, 80.0, o.Total(), 1e-9)
		assert.InDelta(t, 40.0, o.Shipping(), 1e-9)
		assert.InDelta(t, 4.0, o.DeliveryFee(), 1e-9)
		assert.True(t, o.IsConfirmed())
		assert.True(t, o.IsCompanyConfirmed())
		assert.False(t, o.IsDeliveryConfirmed())
	}
	uow.assertAll(t)
	announcer.AssertExpectations(t)
	broadcaster.AssertExpectations(t)
}

func TestBulkUpdateOrdersCommandHandler_Handle_DeliveryConfirmation(t *testing.T) {
	ctx := t.Context()
	c := newTestCompany(t, true)
	o := newTestOrder(t, c, order.Draft{Shipping: 10, CompanyConfirm: true})

	cmd, err := commands.NewBulkUpdateOrdersCommand(platformAdmin(t), []kernel.UUID{o.ID()}, commands.BulkPatch{
		DeliveryConfirm: true,
		Shipping:        ptr(99.0),
	})
	require.NoError(t, err)

	uow := newMockOrderUoW()
	uow.expectTx(ctx, true)
	uow.orders.On("GetManyForUpdate", ctx, []kernel.UUID{o.ID()}).Return([]*order.Order{o}, nil).Once()
	uow.orders.On("Update", ctx, o).Return(nil).Once()
	uow.agents.On("ListOnline", ctx, c.ID()).Return(nil, errors.New("db gone")).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	broadcaster := new(MockBroadcaster)
	broadcaster.On("Publish", ctx, c.ID(), ports.EventUpdateOrder, mock.Anything).Return(nil).Once()

	handler := commands.NewBulkUpdateOrdersCommandHandler(factory, newEffects(new(MockAnnouncer), broadcaster))
	count, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.True(t, o.IsDeliveryConfirmed())
	assert.False(t, o.IsCompanyConfirmed())
	assert.InDelta(t, 10.0, o.Shipping(), 1e-9)
	uow.companies.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	uow.assertAll(t)
}

func TestBulkUpdateOrdersCommandHandler_Handle_MissingIDs(t *testing.T) {
	ctx := t.Context()
	known, missing := kernel.NewUUID(), kernel.NewUUID()

	cmd, err := commands.NewBulkUpdateOrdersCommand(platformAdmin(t), []kernel.UUID{known, missing}, commands.BulkPatch{
		DeliveryConfirm: true,
	})
	require.NoError(t, err)

	uow := newMockOrderUoW()
	uow.expectTx(ctx, false)
	uow.orders.On("GetManyForUpdate", ctx, []kernel.UUID{known, missing}).
		Return(nil, errs.NewObjectsNotFoundError("orders", []string{missing.String()})).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewBulkUpdateOrdersCommandHandler(factory, newEffects(new(MockAnnouncer), new(MockBroadcaster)))
	_, err = handler.Handle(ctx, cmd)

	var notFound *errs.ObjectsNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, []string{missing.String()}, notFound.IDs)
	uow.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.assertAll(t)
}

func TestNewBulkUpdateOrdersCommand_Invalid(t *testing.T) {
	_, err := commands.NewBulkUpdateOrdersCommand(platformAdmin(t), nil, commands.BulkPatch{})
	require.ErrorIs(t, err, commands.ErrNoOrderIDs)

	_, err = commands.NewBulkUpdateOrdersCommand(platformAdmin(t), []kernel.UUID{kernel.NewUUID()}, commands.BulkPatch{
		Shipping: ptr(-1.0),
	})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
