// Package http exposes the dispatch operations as a JSON API on echo.
package http

import (
	"log/slog"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Handlers groups the use cases served by the API.
type Handlers struct {
	CreateOrder      commands.CreateOrderCommandHandler
	DeleteOrder      commands.DeleteOrderCommandHandler
	RequestNextOrder commands.RequestNextOrderCommandHandler
	CompleteOrder    commands.CompleteOrderCommandHandler
	PutOnHold        commands.PutOnHoldCommandHandler
	ResumeOrder      commands.ResumeOrderCommandHandler
	UpdatePriority   commands.UpdatePriorityCommandHandler
	UpdateDifficulty commands.UpdateDifficultyCommandHandler
	ReorderOrder     commands.ReorderOrderCommandHandler
	ReassignOrder    commands.ReassignOrderCommandHandler
	ReturnToQueue    commands.ReturnToQueueCommandHandler

	GetOrder            queries.GetOrderQueryHandler
	GetDealershipQueue  queries.GetDealershipQueueQueryHandler
	GetTechnicianOrders queries.GetTechnicianOrdersQueryHandler
}

// Server translates HTTP requests into commands and queries and renders their
// results. Every failure is rendered through writeError.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http_server"),
	}
}

// RegisterRoutes mounts the API on e.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:orderId", s.GetOrder)
	api.DELETE("/orders/:orderId", s.DeleteOrder)
	api.POST("/orders/:orderId/complete", s.CompleteOrder)
	api.POST("/orders/:orderId/hold", s.PutOnHold)
	api.POST("/orders/:orderId/resume", s.ResumeOrder)
	api.POST("/orders/:orderId/return-to-queue", s.ReturnToQueue)
	api.PUT("/orders/:orderId/priority", s.UpdatePriority)
	api.PUT("/orders/:orderId/difficulty", s.UpdateDifficulty)
	api.POST("/orders/:orderId/reorder", s.ReorderOrder)
	api.POST("/orders/:orderId/reassign", s.ReassignOrder)

	api.GET("/dealerships/:dealershipId/queue", s.GetDealershipQueue)

	api.POST("/technicians/:technicianId/next-order", s.RequestNextOrder)
	api.GET("/technicians/:technicianId/orders", s.GetTechnicianOrders)
}

// NewEcho builds an echo instance with recovery and request logging and the
// routes of s.
func NewEcho(s *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				s.logger.LogAttrs(c.Request().Context(), slog.LevelWarn, "request failed",
					slog.Any("error", v.Error), slog.Group("request", attrs...))
				return nil
			}
			s.logger.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	}))

	s.RegisterRoutes(e)
	return e
}
