package http_test

import (
	"context"
	"net/http"

	"courierhub/internal/adapters/out/realtime"
	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/core/application/usecases/queries"
	"courierhub/internal/core/domain/model/agent"
	"courierhub/internal/core/domain/model/company"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockCreateOrders struct{ mock.Mock }

func (m *MockCreateOrders) Handle(ctx context.Context, cmd commands.CreateOrdersCommand) ([]*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockCreateOrderByClientKey struct{ mock.Mock }

func (m *MockCreateOrderByClientKey) Handle(
	ctx context.Context,
	cmd commands.CreateOrderByClientKeyCommand,
) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockUpdateOrder struct{ mock.Mock }

func (m *MockUpdateOrder) Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockBulkUpdateOrders struct{ mock.Mock }

func (m *MockBulkUpdateOrders) Handle(ctx context.Context, cmd commands.BulkUpdateOrdersCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type MockRemoveOrders struct{ mock.Mock }

func (m *MockRemoveOrders) Handle(ctx context.Context, cmd commands.RemoveOrdersCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type MockSetCompanyPolicy struct{ mock.Mock }

func (m *MockSetCompanyPolicy) Handle(ctx context.Context, cmd commands.SetCompanyPolicyCommand) (*company.Company, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Company), args.Error(1)
}

type MockGetOrderStatistics struct{ mock.Mock }

func (m *MockGetOrderStatistics) Handle(
	ctx context.Context,
	query queries.GetOrderStatisticsQuery,
) (*queries.GetOrderStatisticsQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.GetOrderStatisticsQueryResponse), args.Error(1)
}

type MockGetUserNotifications struct{ mock.Mock }

func (m *MockGetUserNotifications) Handle(
	ctx context.Context,
	query queries.GetUserNotificationsQuery,
) (*queries.GetUserNotificationsQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.GetUserNotificationsQueryResponse), args.Error(1)
}

type MockAgentDirectory struct{ mock.Mock }

func (m *MockAgentDirectory) GetByUserID(ctx context.Context, userID kernel.UUID) (*agent.Agent, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agent.Agent), args.Error(1)
}

type MockRealtime struct{ mock.Mock }

func (m *MockRealtime) Serve(w http.ResponseWriter, r *http.Request, canJoin realtime.JoinPolicy) error {
	return m.Called(w, r, canJoin).Error(0)
}
