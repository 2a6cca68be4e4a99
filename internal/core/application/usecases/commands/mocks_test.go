package commands_test

import (
	"context"
	"time"

	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/core/domain/model/agent"
	"courierhub/internal/core/domain/model/client"
	"courierhub/internal/core/domain/model/company"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/notification"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetManyForUpdate(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListForUpdate(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockTimelineRepository struct{ mock.Mock }

func (m *MockTimelineRepository) Get(ctx context.Context, orderID kernel.UUID) (*order.Timeline, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Timeline), args.Error(1)
}

func (m *MockTimelineRepository) Add(ctx context.Context, event *order.TimelineEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockTimelineRepository) Apply(ctx context.Context, orderID kernel.UUID, change order.TimelineChange) error {
	return m.Called(ctx, orderID, change).Error(0)
}

type MockCompanyRepository struct{ mock.Mock }

func (m *MockCompanyRepository) Get(ctx context.Context, id kernel.UUID) (*company.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Company), args.Error(1)
}

func (m *MockCompanyRepository) Update(ctx context.Context, c *company.Company) error {
	return m.Called(ctx, c).Error(0)
}

type MockClientRepository struct{ mock.Mock }

func (m *MockClientRepository) Get(ctx context.Context, id kernel.UUID) (*client.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func (m *MockClientRepository) GetByKey(ctx context.Context, key string) (*client.Client, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

type MockAgentRepository struct{ mock.Mock }

func (m *MockAgentRepository) Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agent.Agent), args.Error(1)
}

func (m *MockAgentRepository) GetByUserID(ctx context.Context, userID kernel.UUID) (*agent.Agent, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agent.Agent), args.Error(1)
}

func (m *MockAgentRepository) ListOnline(ctx context.Context, companyID kernel.UUID) ([]*agent.Agent, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*agent.Agent), args.Error(1)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) ListByUser(
	ctx context.Context,
	userID kernel.UUID,
	offset, limit int,
) (ports.NotificationPage, error) {
	args := m.Called(ctx, userID, offset, limit)
	return args.Get(0).(ports.NotificationPage), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllSeen(ctx context.Context, userID kernel.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) DeleteSeenBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockOrderUoW hands out whichever repositories the test assigned.
type MockOrderUoW struct {
	mock.Mock

	orders    *MockOrderRepository
	timelines *MockTimelineRepository
	companies *MockCompanyRepository
	clients   *MockClientRepository
	agents    *MockAgentRepository
}

func newMockOrderUoW() *MockOrderUoW {
	return &MockOrderUoW{
		orders:    new(MockOrderRepository),
		timelines: new(MockTimelineRepository),
		companies: new(MockCompanyRepository),
		clients:   new(MockClientRepository),
		agents:    new(MockAgentRepository),
	}
}

func (m *MockOrderUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockOrderUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockOrderUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository       { return m.orders }
func (m *MockOrderUoW) TimelineRepository() ports.TimelineRepository { return m.timelines }
func (m *MockOrderUoW) CompanyRepository() ports.CompanyRepository   { return m.companies }
func (m *MockOrderUoW) ClientRepository() ports.ClientRepository     { return m.clients }
func (m *MockOrderUoW) AgentRepository() ports.AgentRepository       { return m.agents }

// expectTx registers the transaction calls of a handler run. commit=false
// expects only Begin and Rollback.
func (m *MockOrderUoW) expectTx(ctx context.Context, commit bool) {
	m.On("Begin", ctx).Return(nil).Once()
	if commit {
		m.On("Commit", ctx).Return(nil).Once()
	}
	m.On("Rollback", ctx).Return(nil).Once()
}

func (m *MockOrderUoW) assertAll(t mock.TestingT) {
	m.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.timelines.AssertExpectations(t)
	m.companies.AssertExpectations(t)
	m.clients.AssertExpectations(t)
	m.agents.AssertExpectations(t)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockCompanyUoW struct {
	mock.Mock

	companies *MockCompanyRepository
}

func (m *MockCompanyUoW) Begin(ctx context.Context) error            { return m.Called(ctx).Error(0) }
func (m *MockCompanyUoW) Commit(ctx context.Context) error           { return m.Called(ctx).Error(0) }
func (m *MockCompanyUoW) Rollback(ctx context.Context) error         { return m.Called(ctx).Error(0) }
func (m *MockCompanyUoW) CompanyRepository() ports.CompanyRepository { return m.companies }

type MockCompanyUoWFactory struct{ mock.Mock }

func (m *MockCompanyUoWFactory) Create() commands.CompanyUoW {
	return m.Called().Get(0).(commands.CompanyUoW)
}

type MockNotificationUoW struct {
	mock.Mock

	notifications *MockNotificationRepository
}

func (m *MockNotificationUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockNotificationUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockNotificationUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockNotificationUoW) NotificationRepository() ports.NotificationRepository {
	return m.notifications
}

type MockNotificationUoWFactory struct{ mock.Mock }

func (m *MockNotificationUoWFactory) Create() commands.NotificationUoW {
	return m.Called().Get(0).(commands.NotificationUoW)
}

type MockAnnouncer struct{ mock.Mock }

func (m *MockAnnouncer) Go(ctx context.Context, recipients []kernel.UUID, msg notification.Message) {
	m.Called(ctx, recipients, msg)
}

type MockBroadcaster struct{ mock.Mock }

func (m *MockBroadcaster) Publish(ctx context.Context, companyID kernel.UUID, kind ports.EventKind, payload any) error {
	return m.Called(ctx, companyID, kind, payload).Error(0)
}

type MockPushTokenRegistry struct{ mock.Mock }

func (m *MockPushTokenRegistry) Register(ctx context.Context, userID kernel.UUID, token string) error {
	return m.Called(ctx, userID, token).Error(0)
}
