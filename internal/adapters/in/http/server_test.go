package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "courierhub/internal/adapters/in/http"
	"courierhub/internal/adapters/out/realtime"
	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/core/application/usecases/queries"
	"courierhub/internal/core/domain/model/actor"
	"courierhub/internal/core/domain/model/agent"
	"courierhub/internal/core/domain/model/company"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

type harness struct {
	e    *echo.Echo
	auth *httpadapter.Authenticator

	createOrders  *MockCreateOrders
	clientOrders  *MockCreateOrderByClientKey
	updateOrder   *MockUpdateOrder
	bulkUpdate    *MockBulkUpdateOrders
	removeOrders  *MockRemoveOrders
	setPolicy     *MockSetCompanyPolicy
	statistics    *MockGetOrderStatistics
	notifications *MockGetUserNotifications
	agents        *MockAgentDirectory
	realtime      *MockRealtime
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	auth, err := httpadapter.NewAuthenticator(testSecret)
	require.NoError(t, err)
	contract, err := httpadapter.LoadContract(t.Context())
	require.NoError(t, err)

	h := &harness{
		auth:          auth,
		createOrders:  &MockCreateOrders{},
		clientOrders:  &MockCreateOrderByClientKey{},
		updateOrder:   &MockUpdateOrder{},
		bulkUpdate:    &MockBulkUpdateOrders{},
		removeOrders:  &MockRemoveOrders{},
		setPolicy:     &MockSetCompanyPolicy{},
		statistics:    &MockGetOrderStatistics{},
		notifications: &MockGetUserNotifications{},
		agents:        &MockAgentDirectory{},
		realtime:      &MockRealtime{},
	}

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateOrders:           h.createOrders,
		CreateOrderByClientKey: h.clientOrders,
		UpdateOrder:            h.updateOrder,
		BulkUpdateOrders:       h.bulkUpdate,
		RemoveOrders:           h.removeOrders,
		SetCompanyPolicy:       h.setPolicy,
		GetOrderStatistics:     h.statistics,
		GetUserNotifications:   h.notifications,
	}, h.agents, h.realtime, zap.NewNop())

	h.e = httpadapter.NewEcho(zap.NewNop())
	server.Register(h.e, auth, contract)
	return h
}

func (h *harness) token(t *testing.T, caller actor.Actor) string {
	t.Helper()
	var companyID *kernel.UUID
	if id, ok := caller.CompanyID(); ok {
		companyID = &id
	}
	token, err := h.auth.Sign(caller.UserID(), caller.Role(), companyID, time.Hour)
	require.NoError(t, err)
	return token
}

func (h *harness) do(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)
	return rec
}

func companyAdmin(t *testing.T, companyID kernel.UUID) actor.Actor {
	t.Helper()
	a, err := actor.New(kernel.NewUUID(), actor.RoleCompanyAdmin, &companyID)
	require.NoError(t, err)
	return a
}

func newOrder(t *testing.T, companyID kernel.UUID, shipping float64) *order.Order {
	t.Helper()
	rate, err := kernel.NewPercent(10)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), companyID, order.Draft{Total: 100, Shipping: shipping}, rate, time.Now())
	require.NoError(t, err)
	return o
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpadapter.Error {
	t.Helper()
	var body httpadapter.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestSecuredRoutesRequireToken(t *testing.T) {
	h := newHarness(t)

	t.Run("missing", func(t *testing.T) {
		rec := h.do(http.MethodGet, "/api/v1/notifications", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("signed with another secret", func(t *testing.T) {
		other, err := httpadapter.NewAuthenticator("another-secret")
		require.NoError(t, err)
		token, err := other.Sign(kernel.NewUUID(), actor.RoleAdmin, nil, time.Hour)
		require.NoError(t, err)

		rec := h.do(http.MethodGet, "/api/v1/notifications", "", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := h.auth.Sign(kernel.NewUUID(), actor.RoleAdmin, nil, -time.Minute)
		require.NoError(t, err)

		rec := h.do(http.MethodGet, "/api/v1/notifications", "", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestCreateOrders(t *testing.T) {
	companyID := kernel.NewUUID()

	t.Run("returns the created orders", func(t *testing.T) {
		h := newHarness(t)
		caller := companyAdmin(t, companyID)
		created := newOrder(t, companyID, 20)
		h.createOrders.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrdersCommand) bool {
			items := cmd.Items()
			return len(items) == 1 && items[0].Total == 100 && items[0].Shipping == 20 &&
				cmd.Caller().UserID().IsEqual(caller.UserID())
		})).Return([]*order.Order{created}, nil)

		rec := h.do(http.MethodPost, "/api/v1/orders",
			`{"orders":[{"total":100,"shipping":20,"notes":"fragile"}]}`, h.token(t, caller))

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var body []httpadapter.OrderResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body, 1)
		assert.Equal(t, created.ID().String(), body[0].ID)
		assert.Equal(t, "STARTED", body[0].Status)
		assert.InDelta(t, 2.0, body[0].DeliveryFee, 0.001)
		h.createOrders.AssertExpectations(t)
	})

	t.Run("rejects a negative total before the use case", func(t *testing.T) {
		h := newHarness(t)

		rec := h.do(http.MethodPost, "/api/v1/orders",
			`{"orders":[{"total":-1}]}`, h.token(t, companyAdmin(t, companyID)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		h.createOrders.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		h := newHarness(t)

		rec := h.do(http.MethodPost, "/api/v1/orders",
			`{"orders":[{"total":1,"status":"LOST"}]}`, h.token(t, companyAdmin(t, companyID)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects orders created past STARTED", func(t *testing.T) {
		h := newHarness(t)

		rec := h.do(http.MethodPost, "/api/v1/orders",
			`{"orders":[{"total":1,"status":"DELIVERED"}]}`, h.token(t, companyAdmin(t, companyID)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec).Message, "orders[0].status")
		h.createOrders.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestCreateOrderByClientKeyIsPublic(t *testing.T) {
	h := newHarness(t)
	created := newOrder(t, kernel.NewUUID(), 0)
	h.clientOrders.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderByClientKeyCommand) bool {
		return cmd.Key() == "bakery-key" && cmd.Notes() == "back door"
	})).Return(created, nil)

	rec := h.do(http.MethodPost, "/api/v1/orders/client", `{"key":"bakery-key","notes":"back door","total":42}`, "")

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	h.clientOrders.AssertExpectations(t)
}

func TestUpdateOrderErrorMapping(t *testing.T) {
	companyID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", errs.NewObjectNotFoundError("order", orderID.String()), http.StatusNotFound},
		{"invalid transition", errs.NewInvalidTransitionError("CANCELED", "STARTED"), http.StatusConflict},
		{"missing billing info", errs.NewMissingBillingInfoError(orderID.String()), http.StatusUnprocessableEntity},
		{"conflict", errs.NewConflictError("order", orderID.String()), http.StatusConflict},
		{"validation", errs.NewValueIsRequiredError("companyId"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.updateOrder.On("Handle", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := h.do(http.MethodPatch, "/api/v1/orders/"+orderID.String(),
				`{"status":"DELIVERED"}`, h.token(t, companyAdmin(t, companyID)))

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
		})
	}
}

func TestUpdateOrderParsesTextFlags(t *testing.T) {
	companyID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	h := newHarness(t)
	h.updateOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateOrderCommand) bool {
		p := cmd.Patch()
		return p.CompanyConfirm != nil && *p.CompanyConfirm && p.Status != nil && *p.Status == order.Received
	})).Return(newOrder(t, companyID, 10), nil)

	rec := h.do(http.MethodPatch, "/api/v1/orders/"+orderID.String(),
		`{"status":"RECEIVED","companyConfirm":"true"}`, h.token(t, companyAdmin(t, companyID)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	h.updateOrder.AssertExpectations(t)
}

func TestUpdateOrderRejectsMalformedID(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPatch, "/api/v1/orders/not-a-uuid", `{"notes":"x"}`,
		h.token(t, companyAdmin(t, kernel.NewUUID())))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	h.updateOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestBulkUpdateOrders(t *testing.T) {
	h := newHarness(t)
	ids := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}
	h.bulkUpdate.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.BulkUpdateOrdersCommand) bool {
		return len(cmd.IDs()) == 2 && cmd.Patch().DeliveryConfirm
	})).Return(2, nil)

	body := `{"ids":["` + ids[0].String() + `","` + ids[1].String() + `"],"deliveryConfirm":"true"}`
	rec := h.do(http.MethodPatch, "/api/v1/orders", body, h.token(t, companyAdmin(t, kernel.NewUUID())))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"count":2}`, rec.Body.String())
}

func TestRemoveOrdersReportsMissingIDs(t *testing.T) {
	h := newHarness(t)
	missing := kernel.NewUUID()
	h.removeOrders.On("Handle", mock.Anything, mock.Anything).
		Return(0, errs.NewObjectsNotFoundError("orders", []string{missing.String()}))

	rec := h.do(http.MethodDelete, "/api/v1/orders", `{"ids":["`+missing.String()+`"]}`,
		h.token(t, companyAdmin(t, kernel.NewUUID())))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, []string{missing.String()}, decodeError(t, rec).Details)
}

func TestRemoveOrder(t *testing.T) {
	h := newHarness(t)
	h.removeOrders.On("Handle", mock.Anything, mock.Anything).Return(1, nil)

	rec := h.do(http.MethodDelete, "/api/v1/orders/"+kernel.NewUUID().String(), "",
		h.token(t, companyAdmin(t, kernel.NewUUID())))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGetOrderStatisticsScope(t *testing.T) {
	companyID := kernel.NewUUID()

	t.Run("company admin reads own company", func(t *testing.T) {
		h := newHarness(t)
		h.statistics.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrderStatisticsQuery) bool {
			return q.CompanyID() != nil && q.CompanyID().IsEqual(companyID) && q.DeliveryID() == nil
		})).Return(&queries.GetOrderStatisticsQueryResponse{TotalOrders: 3}, nil)

		rec := h.do(http.MethodGet, "/api/v1/orders/statistics", "", h.token(t, companyAdmin(t, companyID)))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		h.statistics.AssertExpectations(t)
	})

	t.Run("company admin cannot read another company", func(t *testing.T) {
		h := newHarness(t)

		rec := h.do(http.MethodGet, "/api/v1/orders/statistics?companyId="+kernel.NewUUID().String(), "",
			h.token(t, companyAdmin(t, companyID)))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("agent reads own deliveries", func(t *testing.T) {
		h := newHarness(t)
		a, err := agent.NewAgent(kernel.NewUUID(), kernel.NewUUID(), companyID, true)
		require.NoError(t, err)
		caller, err := actor.New(a.UserID(), actor.RoleDelivery, nil)
		require.NoError(t, err)

		h.agents.On("GetByUserID", mock.Anything, a.UserID()).Return(a, nil)
		h.statistics.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrderStatisticsQuery) bool {
			return q.DeliveryID() != nil && q.DeliveryID().IsEqual(a.ID())
		})).Return(&queries.GetOrderStatisticsQueryResponse{}, nil)

		rec := h.do(http.MethodGet, "/api/v1/orders/statistics", "", h.token(t, caller))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		h.statistics.AssertExpectations(t)
	})
}

func TestGetNotificationsPaging(t *testing.T) {
	h := newHarness(t)
	caller := companyAdmin(t, kernel.NewUUID())
	h.notifications.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetUserNotificationsQuery) bool {
		return q.Page() == 2 && q.Size() == 5 && q.UserID().IsEqual(caller.UserID())
	})).Return(&queries.GetUserNotificationsQueryResponse{Count: 7, TotalPages: 2}, nil)

	rec := h.do(http.MethodGet, "/api/v1/notifications?page=2&size=5", "", h.token(t, caller))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	h.notifications.AssertExpectations(t)

	rec = h.do(http.MethodGet, "/api/v1/notifications?size=500", "", h.token(t, caller))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetCompanyPolicy(t *testing.T) {
	h := newHarness(t)
	companyID := kernel.NewUUID()
	updated, err := company.NewCompany(companyID, "Acme", 12.5, true)
	require.NoError(t, err)
	h.setPolicy.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SetCompanyPolicyCommand) bool {
		return cmd.ConfirmOrders() != nil && *cmd.ConfirmOrders() && *cmd.DeliveryPercent() == 12.5
	})).Return(updated, nil)

	rec := h.do(http.MethodPut, "/api/v1/companies/"+companyID.String()+"/policy",
		`{"confirmOrders":true,"deliveryPercent":12.5}`, h.token(t, companyAdmin(t, companyID)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t,
		`{"companyId":"`+companyID.String()+`","confirmOrders":true,"deliveryPercent":12.5}`,
		rec.Body.String())
}

func TestRealtimeJoinPolicy(t *testing.T) {
	h := newHarness(t)
	companyID := kernel.NewUUID()
	var canJoin realtime.JoinPolicy
	h.realtime.On("Serve", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			canJoin = args.Get(2).(realtime.JoinPolicy)
		}).
		Return(nil)

	h.do(http.MethodGet, "/ws?token="+h.token(t, companyAdmin(t, companyID)), "", "")

	h.realtime.AssertExpectations(t)
	require.NotNil(t, canJoin)
	assert.True(t, canJoin(companyID))
	assert.False(t, canJoin(kernel.NewUUID()))
}
