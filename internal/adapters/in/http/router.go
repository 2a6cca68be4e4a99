package http

import (
	"net/http"
	"strconv"
	"time"

	"courierhub/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// NewEcho builds the echo instance with the error handler, validator and the
// middleware shared by every route.
func NewEcho(log *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(log)
	e.Validator = NewRequestValidator()

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			return err
		},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			log.Info("request", fields...)
			return nil
		},
	}))
	e.Use(observe)

	return e
}

func observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		code := c.Response().Status
		if err != nil {
			code = statusOf(err)
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request().Method, c.Path(), strconv.Itoa(code)).
			Observe(time.Since(start).Seconds())
		return err
	}
}

// Register mounts every route of the service on e.
func (s *Server) Register(e *echo.Echo, auth *Authenticator, contract *Contract) {
	contract.RegisterSwagger()

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/ws", s.Realtime, auth.Middleware())

	validate := contract.Validator()
	secured := []echo.MiddlewareFunc{auth.Middleware(), validate}

	api := e.Group("/api/v1")
	api.POST("/orders/client", s.CreateOrderByClientKey, validate)

	api.POST("/orders", s.CreateOrders, secured...)
	api.PATCH("/orders", s.BulkUpdateOrders, secured...)
	api.DELETE("/orders", s.RemoveOrders, secured...)
	api.POST("/orders/processed", s.MarkOrdersProcessed, secured...)
	api.GET("/orders/statistics", s.GetOrderStatistics, secured...)
	api.GET("/orders/:id", s.GetOrder, secured...)
	api.PATCH("/orders/:id", s.UpdateOrder, secured...)
	api.DELETE("/orders/:id", s.RemoveOrder, secured...)

	api.GET("/notifications", s.GetNotifications, secured...)
	api.PATCH("/notifications/seen", s.MarkAllNotificationsSeen, secured...)
	api.PUT("/notifications/token", s.RegisterPushToken, secured...)
	api.PATCH("/notifications/:id/seen", s.MarkNotificationSeen, secured...)

	api.PUT("/companies/:id/policy", s.SetCompanyPolicy, secured...)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "route not found")
	})
}
