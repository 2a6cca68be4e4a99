package http

import (
	"context"
	"net/http"

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
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"
)

type (
	CreateOrdersHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrdersCommand) ([]*order.Order, error)
	}
	CreateOrderByClientKeyHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderByClientKeyCommand) (*order.Order, error)
	}
	UpdateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error)
	}
	BulkUpdateOrdersHandler interface {
		Handle(ctx context.Context, cmd commands.BulkUpdateOrdersCommand) (int, error)
	}
	RemoveOrdersHandler interface {
		Handle(ctx context.Context, cmd commands.RemoveOrdersCommand) (int, error)
	}
	MarkOrdersProcessedHandler interface {
		Handle(ctx context.Context, cmd commands.MarkOrdersProcessedCommand) (int, error)
	}
	SetCompanyPolicyHandler interface {
		Handle(ctx context.Context, cmd commands.SetCompanyPolicyCommand) (*company.Company, error)
	}
	MarkNotificationSeenHandler interface {
		Handle(ctx context.Context, cmd commands.MarkNotificationSeenCommand) error
	}
	MarkAllNotificationsSeenHandler interface {
		Handle(ctx context.Context, cmd commands.MarkAllNotificationsSeenCommand) (int64, error)
	}
	RegisterPushTokenHandler interface {
		Handle(ctx context.Context, cmd commands.RegisterPushTokenCommand) error
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (*queries.GetOrderQueryResponse, error)
	}
	GetOrderStatisticsHandler interface {
		Handle(ctx context.Context, query queries.GetOrderStatisticsQuery) (*queries.GetOrderStatisticsQueryResponse, error)
	}
	GetUserNotificationsHandler interface {
		Handle(ctx context.Context, query queries.GetUserNotificationsQuery) (*queries.GetUserNotificationsQueryResponse, error)
	}

	// AgentDirectory resolves the agent record of a caller.
	AgentDirectory interface {
		GetByUserID(ctx context.Context, userID kernel.UUID) (*agent.Agent, error)
	}

	// Realtime serves websocket viewers.
	Realtime interface {
		Serve(w http.ResponseWriter, r *http.Request, canJoin realtime.JoinPolicy) error
	}
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	CreateOrders             CreateOrdersHandler
	CreateOrderByClientKey   CreateOrderByClientKeyHandler
	UpdateOrder              UpdateOrderHandler
	BulkUpdateOrders         BulkUpdateOrdersHandler
	RemoveOrders             RemoveOrdersHandler
	MarkOrdersProcessed      MarkOrdersProcessedHandler
	SetCompanyPolicy         SetCompanyPolicyHandler
	MarkNotificationSeen     MarkNotificationSeenHandler
	MarkAllNotificationsSeen MarkAllNotificationsSeenHandler
	RegisterPushToken        RegisterPushTokenHandler

	GetOrder             GetOrderHandler
	GetOrderStatistics   GetOrderStatisticsHandler
	GetUserNotifications GetUserNotificationsHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	agents   AgentDirectory
	realtime Realtime
	log      *zap.Logger
}

func NewServer(handlers Handlers, agents AgentDirectory, rt Realtime, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		handlers: handlers,
		agents:   agents,
		realtime: rt,
		log:      log.With(zap.String("component", "http")),
	}
}

// CreateOrders handles POST /api/v1/orders.
func (s *Server) CreateOrders(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	var req CreateOrdersRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	companyID, err := optionalUUID(req.CompanyID)
	if err != nil {
		return err
	}
	items, err := req.items()
	if err != nil {
		return err
	}
	cmd, err := commands.NewCreateOrdersCommand(caller, companyID, items)
	if err != nil {
		return err
	}

	created, err := s.handlers.CreateOrders.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	resp := make([]OrderResponse, len(created))
	for i, o := range created {
		resp[i] = toOrderResponse(o)
	}
	return c.JSON(http.StatusCreated, resp)
}

// CreateOrderByClientKey handles POST /api/v1/orders/client. The client key is
// the credential, so no bearer token is required.
func (s *Server) CreateOrderByClientKey(c echo.Context) error {
	var req ClientOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderByClientKeyCommand(req.Key, req.Notes, req.From, req.To)
	if err != nil {
		return err
	}
	created, err := s.handlers.CreateOrderByClientKey.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toOrderResponse(created))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	scope, err := s.readScope(c.Request().Context(), caller, nil)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(id, scope.companyID)
	if err != nil {
		return err
	}
	resp, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdateOrder handles PATCH /api/v1/orders/:id.
func (s *Server) UpdateOrder(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req UpdateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	patch, err := req.patch()
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderCommand(caller, id, patch)
	if err != nil {
		return err
	}
	updated, err := s.handlers.UpdateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(updated))
}

// BulkUpdateOrders handles PATCH /api/v1/orders.
func (s *Server) BulkUpdateOrders(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	var req BulkUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ids, err := parseUUIDs(req.IDs)
	if err != nil {
		return err
	}

	cmd, err := commands.NewBulkUpdateOrdersCommand(caller, ids, commands.BulkPatch{
		DeliveryConfirm: req.DeliveryConfirm.Bool(),
		Total:           req.Total,
		Shipping:        req.Shipping,
	})
	if err != nil {
		return err
	}
	count, err := s.handlers.BulkUpdateOrders.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CountResponse{Count: int64(count)})
}

// RemoveOrder handles DELETE /api/v1/orders/:id.
func (s *Server) RemoveOrder(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRemoveOrderCommand(caller, id)
	if err != nil {
		return err
	}
	if _, err := s.handlers.RemoveOrders.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveOrders handles DELETE /api/v1/orders.
func (s *Server) RemoveOrders(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	var req IDsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ids, err := parseUUIDs(req.IDs)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRemoveOrdersCommand(caller, ids)
	if err != nil {
		return err
	}
	count, err := s.handlers.RemoveOrders.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CountResponse{Count: int64(count)})
}

// MarkOrdersProcessed handles POST /api/v1/orders/processed.
func (s *Server) MarkOrdersProcessed(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	var req ProcessedRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	companyID, err := optionalUUID(req.CompanyID)
	if err != nil {
		return err
	}
	deliveryID, err := optionalUUID(req.DeliveryID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewMarkOrdersProcessedCommand(caller, companyID, deliveryID, req.From, req.To)
	if err != nil {
		return err
	}
	count, err := s.handlers.MarkOrdersProcessed.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CountResponse{Count: int64(count)})
}

// GetOrderStatistics handles GET /api/v1/orders/statistics.
func (s *Server) GetOrderStatistics(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	var companyParam, deliveryParam string
	if err := runtime.BindQueryParameter("form", true, false, "companyId", c.QueryParams(), &companyParam); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("companyId", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "deliveryId", c.QueryParams(), &deliveryParam); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("deliveryId", err)
	}
	requestedCompany, err := optionalUUID(&companyParam)
	if err != nil {
		return err
	}
	requestedDelivery, err := optionalUUID(&deliveryParam)
	if err != nil {
		return err
	}

	scope, err := s.readScope(c.Request().Context(), caller, requestedCompany)
	if err != nil {
		return err
	}
	deliveryID := scope.deliveryID
	if deliveryID == nil {
		deliveryID = requestedDelivery
	}

	query, err := queries.NewGetOrderStatisticsQuery(scope.companyID, deliveryID)
	if err != nil {
		return err
	}
	resp, err := s.handlers.GetOrderStatistics.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// GetNotifications handles GET /api/v1/notifications.
func (s *Server) GetNotifications(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	var page, size int
	if err := runtime.BindQueryParameter("form", true, false, "page", c.QueryParams(), &page); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("page", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "size", c.QueryParams(), &size); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("size", err)
	}

	query, err := queries.NewGetUserNotificationsQuery(caller.UserID(), page, size)
	if err != nil {
		return err
	}
	resp, err := s.handlers.GetUserNotifications.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// MarkAllNotificationsSeen handles PATCH /api/v1/notifications/seen.
func (s *Server) MarkAllNotificationsSeen(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewMarkAllNotificationsSeenCommand(caller.UserID())
	if err != nil {
		return err
	}
	count, err := s.handlers.MarkAllNotificationsSeen.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CountResponse{Count: count})
}

// MarkNotificationSeen handles PATCH /api/v1/notifications/:id/seen.
func (s *Server) MarkNotificationSeen(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewMarkNotificationSeenCommand(caller.UserID(), id)
	if err != nil {
		return err
	}
	if err := s.handlers.MarkNotificationSeen.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RegisterPushToken handles PUT /api/v1/notifications/token.
func (s *Server) RegisterPushToken(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	var req TokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRegisterPushTokenCommand(caller.UserID(), req.Token)
	if err != nil {
		return err
	}
	if err := s.handlers.RegisterPushToken.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SetCompanyPolicy handles PUT /api/v1/companies/:id/policy.
func (s *Server) SetCompanyPolicy(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req PolicyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewSetCompanyPolicyCommand(caller, id, req.ConfirmOrders.Ptr(), req.DeliveryPercent)
	if err != nil {
		return err
	}
	updated, err := s.handlers.SetCompanyPolicy.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPolicyResponse(updated))
}

// Realtime handles GET /ws. Viewers may only join the room of the company
// they belong to; platform admins may join any room.
func (s *Server) Realtime(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	scope, err := s.readScope(c.Request().Context(), caller, nil)
	if err != nil {
		return err
	}

	var canJoin realtime.JoinPolicy
	if scope.companyID != nil {
		own := *scope.companyID
		canJoin = func(id kernel.UUID) bool { return own.IsEqual(id) }
	}

	if err := s.realtime.Serve(c.Response(), c.Request(), canJoin); err != nil {
		// the upgrader already wrote the response
		s.log.Debug("websocket upgrade failed", zap.Error(err))
	}
	return nil
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

type visibility struct {
	companyID  *kernel.UUID
	deliveryID *kernel.UUID
}

// readScope narrows reads to what the caller may see. Platform admins read
// whatever they request, company admins their own company and agents their
// own orders.
func (s *Server) readScope(ctx context.Context, caller actor.Actor, requested *kernel.UUID) (visibility, error) {
	switch {
	case caller.Role() == actor.RoleAdmin:
		return visibility{companyID: requested}, nil
	case caller.IsAgent():
		a, err := s.agents.GetByUserID(ctx, caller.UserID())
		if err != nil {
			return visibility{}, err
		}
		companyID, deliveryID := a.CompanyID(), a.ID()
		if requested != nil && !requested.IsEqual(companyID) {
			return visibility{}, errs.NewObjectNotFoundError("company", requested.String())
		}
		return visibility{companyID: &companyID, deliveryID: &deliveryID}, nil
	default:
		companyID, ok := caller.CompanyID()
		if !ok {
			return visibility{}, errs.NewValueIsRequiredError("companyId")
		}
		if requested != nil && !requested.IsEqual(companyID) {
			return visibility{}, errs.NewObjectNotFoundError("company", requested.String())
		}
		return visibility{companyID: &companyID}, nil
	}
}

func pathID(c echo.Context) (kernel.UUID, error) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return id, nil
}

func bindAndValidate(c echo.Context, dest any) error {
	if err := c.Bind(dest); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return c.Validate(dest)
}
