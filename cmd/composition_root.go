package cmd

import (
	"context"
	"errors"

	httpadapter "courierhub/internal/adapters/in/http"
	"courierhub/internal/adapters/out/postgres"
	"courierhub/internal/adapters/out/postgres/agentrepo"
	"courierhub/internal/adapters/out/postgres/notificationrepo"
	"courierhub/internal/adapters/out/push"
	"courierhub/internal/adapters/out/realtime"
	"courierhub/internal/core/application/fanout"
	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/core/application/usecases/queries"
	"courierhub/internal/core/domain/services"
	"courierhub/internal/core/ports"
	"courierhub/internal/jobs"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// lifecycle is implemented by notifiers that hold resources.
type lifecycle interface {
	Init(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	log        *zap.Logger

	hub        *realtime.Hub
	relay      *realtime.RedisRelay
	notifier   ports.Notifier
	dispatcher *fanout.Dispatcher
}

// NewCompositionRoot wires the infrastructure shared by every use case.
// redisClient may be nil, in which case events only reach viewers connected
// to this instance.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, redisClient *redis.Client, log *zap.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		log:        log,
		hub:        realtime.NewHub(log),
	}
	if redisClient != nil {
		c.relay = realtime.NewRedisRelay(redisClient, c.hub, log)
	}

	if cfg.PushEnabled {
		c.notifier = push.NewExpoNotifier(push.ExpoConfig{
			Endpoint:    cfg.ExpoEndpoint,
			AccessToken: cfg.ExpoAccessToken,
			Timeout:     cfg.PushTimeout,
		}, notificationrepo.NewGormPushTokenRepository(gormDB), log)
	} else {
		c.notifier = push.NoopNotifier{}
	}

	dispatcher, err := fanout.NewDispatcher(
		c.notifier,
		notificationrepo.NewGormNotificationRepository(gormDB),
		log,
		fanout.Config{Concurrency: cfg.FanoutConcurrency, PushTimeout: cfg.PushTimeout},
	)
	if err != nil {
		return nil, err
	}
	c.dispatcher = dispatcher

	return c, nil
}

// Start initialises resources that need an explicit start.
func (c *CompositionRoot) Start(ctx context.Context) error {
	if n, ok := c.notifier.(lifecycle); ok {
		return n.Init(ctx)
	}
	return nil
}

// Shutdown waits for in-flight notification batches, disconnects realtime
// viewers and releases the notifier.
func (c *CompositionRoot) Shutdown(ctx context.Context) error {
	var err error
	err = errors.Join(err, c.dispatcher.Wait(ctx))
	c.hub.Close()
	if n, ok := c.notifier.(lifecycle); ok {
		err = errors.Join(err, n.Shutdown(ctx))
	}
	return err
}

// Relay returns the cross-instance relay, or nil when Redis is not configured.
func (c *CompositionRoot) Relay() *realtime.RedisRelay {
	return c.relay
}

func (c *CompositionRoot) broadcaster() ports.Broadcaster {
	if c.relay != nil {
		return c.relay
	}
	return c.hub
}

func (c *CompositionRoot) sideEffects() commands.SideEffects {
	return commands.SideEffects{
		Resolver:    services.NewRecipientResolver(),
		Announcer:   c.dispatcher,
		Broadcaster: c.broadcaster(),
		Log:         c.log,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) companyUoWFactory() commands.CompanyUoWFactory {
	return FuncCompanyUoWFactory(func() commands.CompanyUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrdersCommandHandler() commands.CreateOrdersCommandHandler {
	return commands.NewCreateOrdersCommandHandler(c.orderUoWFactory(), c.sideEffects())
}

func (c *CompositionRoot) CreateCreateOrderByClientKeyCommandHandler() commands.CreateOrderByClientKeyCommandHandler {
	return commands.NewCreateOrderByClientKeyCommandHandler(c.orderUoWFactory(), c.sideEffects())
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.orderUoWFactory(), c.sideEffects())
}

func (c *CompositionRoot) CreateBulkUpdateOrdersCommandHandler() commands.BulkUpdateOrdersCommandHandler {
	return commands.NewBulkUpdateOrdersCommandHandler(c.orderUoWFactory(), c.sideEffects())
}

func (c *CompositionRoot) CreateRemoveOrdersCommandHandler() commands.RemoveOrdersCommandHandler {
	return commands.NewRemoveOrdersCommandHandler(c.orderUoWFactory(), c.sideEffects())
}

func (c *CompositionRoot) CreateMarkOrdersProcessedCommandHandler() commands.MarkOrdersProcessedCommandHandler {
	return commands.NewMarkOrdersProcessedCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSetCompanyPolicyCommandHandler() commands.SetCompanyPolicyCommandHandler {
	return commands.NewSetCompanyPolicyCommandHandler(c.companyUoWFactory(), c.sideEffects())
}

func (c *CompositionRoot) CreateMarkNotificationSeenCommandHandler() commands.MarkNotificationSeenCommandHandler {
	return commands.NewMarkNotificationSeenCommandHandler(c.notificationUoWFactory())
}

func (c *CompositionRoot) CreateMarkAllNotificationsSeenCommandHandler() commands.MarkAllNotificationsSeenCommandHandler {
	return commands.NewMarkAllNotificationsSeenCommandHandler(c.notificationUoWFactory())
}

func (c *CompositionRoot) CreatePurgeSeenNotificationsCommandHandler() commands.PurgeSeenNotificationsCommandHandler {
	return commands.NewPurgeSeenNotificationsCommandHandler(c.notificationUoWFactory())
}

func (c *CompositionRoot) CreateRegisterPushTokenCommandHandler() commands.RegisterPushTokenCommandHandler {
	return commands.NewRegisterPushTokenCommandHandler(notificationrepo.NewGormPushTokenRepository(c.gormDB))
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatisticsQueryHandler() queries.GetOrderStatisticsQueryHandler {
	return queries.NewGetOrderStatisticsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUserNotificationsQueryHandler() queries.GetUserNotificationsQueryHandler {
	return queries.NewGetUserNotificationsQueryHandler(notificationrepo.NewGormNotificationRepository(c.gormDB))
}

// CreateServer builds the HTTP server with every use case wired in.
func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	createOrders := c.CreateCreateOrdersCommandHandler()
	clientOrders := c.CreateCreateOrderByClientKeyCommandHandler()
	updateOrder := c.CreateUpdateOrderCommandHandler()
	bulkUpdate := c.CreateBulkUpdateOrdersCommandHandler()
	removeOrders := c.CreateRemoveOrdersCommandHandler()
	processed := c.CreateMarkOrdersProcessedCommandHandler()
	policy := c.CreateSetCompanyPolicyCommandHandler()
	seen := c.CreateMarkNotificationSeenCommandHandler()
	allSeen := c.CreateMarkAllNotificationsSeenCommandHandler()
	token := c.CreateRegisterPushTokenCommandHandler()

	return httpadapter.NewServer(httpadapter.Handlers{
		CreateOrders:             &createOrders,
		CreateOrderByClientKey:   &clientOrders,
		UpdateOrder:              &updateOrder,
		BulkUpdateOrders:         &bulkUpdate,
		RemoveOrders:             &removeOrders,
		MarkOrdersProcessed:      &processed,
		SetCompanyPolicy:         &policy,
		MarkNotificationSeen:     &seen,
		MarkAllNotificationsSeen: &allSeen,
		RegisterPushToken:        &token,
		GetOrder:                 c.CreateGetOrderQueryHandler(),
		GetOrderStatistics:       c.CreateGetOrderStatisticsQueryHandler(),
		GetUserNotifications:     c.CreateGetUserNotificationsQueryHandler(),
	}, agentrepo.NewGormAgentRepository(c.gormDB), c.hub, c.log)
}

// CreateJobManager builds the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	purge := c.CreatePurgeSeenNotificationsCommandHandler()
	return jobs.NewJobManager(
		jobs.NewNotificationRetentionJob(
			&purge,
			c.cfg.NotificationRetentionSchedule,
			c.cfg.NotificationRetention,
			c.log,
		),
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCompanyUoWFactory func() commands.CompanyUoW

func (f FuncCompanyUoWFactory) Create() commands.CompanyUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
