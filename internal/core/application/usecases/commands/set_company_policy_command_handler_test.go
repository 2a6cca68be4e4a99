package commands_test

import (
	"testing"

	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetCompanyPolicyCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	c := newTestCompany(t, false)

	cmd, err := commands.NewSetCompanyPolicyCommand(companyAdmin(t, c.ID()), c.ID(), ptr(true), ptr(15.0))
	require.NoError(t, err)

	uow := &MockCompanyUoW{companies: new(MockCompanyRepository)}
	uow.On("Begin", ctx).Return(nil).Once()
	uow.companies.On("Get", ctx, c.ID()).Return(c, nil).Once()
	uow.companies.On("Update", ctx, c).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockCompanyUoWFactory)
	factory.On("Create").Return(uow).Once()

	broadcaster := new(MockBroadcaster)
	broadcaster.On("Publish", ctx, c.ID(), ports.EventGeneral, commands.PolicyEvent{
		CompanyID:       c.ID().String(),
		ConfirmOrders:   true,
		DeliveryPercent: 15,
	}).Return(nil).Once()

	handler := commands.NewSetCompanyPolicyCommandHandler(factory, newEffects(nil, broadcaster))
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, updated.ConfirmOrders())
	assert.InDelta(t, 150.0, updated.DeliveryFee(1000), 1e-9)
	uow.AssertExpectations(t)
	uow.companies.AssertExpectations(t)
	broadcaster.AssertExpectations(t)
}

func TestSetCompanyPolicyCommandHandler_Handle_OtherCompany(t *testing.T) {
	target := kernel.NewUUID()
	cmd, err := commands.NewSetCompanyPolicyCommand(companyAdmin(t, kernel.NewUUID()), target, ptr(true), nil)
	require.NoError(t, err)

	factory := new(MockCompanyUoWFactory)
	handler := commands.NewSetCompanyPolicyCommandHandler(factory, commands.SideEffects{})
	_, err = handler.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	factory.AssertNotCalled(t, "Create")
}

func TestNewSetCompanyPolicyCommand_RequiresAChange(t *testing.T) {
	c := kernel.NewUUID()
	_, err := commands.NewSetCompanyPolicyCommand(companyAdmin(t, c), c, nil, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewSetCompanyPolicyCommand_AgentsCannotChangePolicy(t *testing.T) {
	c := kernel.NewUUID()
	_, err := commands.NewSetCompanyPolicyCommand(agentActor(t, newTestAgent(t, c, true)), c, ptr(true), nil)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
