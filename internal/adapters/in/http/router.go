package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "crowddelivery/docs" // registers the swagger document
	"crowddelivery/internal/adapters/in/apierr"
	"crowddelivery/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// APIPrefix is the base path of every REST route.
const APIPrefix = "/api/v1"

// RouterOptions carries the cross-cutting collaborators of the router.
// All fields are optional.
type RouterOptions struct {
	Logger   *slog.Logger
	Metrics  *metrics.HTTP
	Gatherer prometheus.Gatherer
}

// Register installs middleware, the error handler and every route of s on e.
func Register(e *echo.Echo, s *Server, opts RouterOptions) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "http")

	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = ErrorHandler(logger)
	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))
	e.Use(observe(opts.Metrics))

	e.GET("/health", s.Health)
	if opts.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group(APIPrefix)

	api.GET("/orders/hall", s.GetDispatchPool)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/accept", s.AcceptOrder)
	api.POST("/orders/:id/pickup", s.PickUpOrder)
	api.POST("/orders/:id/deliver", s.DeliverOrder)
	api.POST("/orders/:id/transfer", s.TransferOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.GET("/orders/:id/chats", s.GetChatHistory)
	api.POST("/orders/:id/chats", s.SendChatMessage)

	api.POST("/riders/location", s.RelayLocation)
	api.GET("/riders/:id/location", s.GetRiderLocation)

	api.POST("/reports", s.FileReport)
	api.POST("/reports/:id/review", s.ReviewReport)

	api.GET("/config/price", s.GetPriceRule)
}

// ErrorHandler renders every handler error as an apierr.Error body.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		status, body := errorBody(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(ctx.Request().Context(), "request failed",
				"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		}

		var writeErr error
		if ctx.Request().Method == http.MethodHead {
			writeErr = ctx.NoContent(status)
		} else {
			writeErr = ctx.JSON(status, body)
		}
		if writeErr != nil {
			logger.WarnContext(ctx.Request().Context(), "failed to write error response", "error", writeErr)
		}
	}
}

func errorBody(err error) (int, apierr.Error) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, apierr.Error{Code: he.Code, Message: fmt.Sprint(he.Message)}
	}
	return apierr.FromError(err)
}

func observe(m *metrics.HTTP) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)

			status := ctx.Response().Status
			if err != nil {
				status, _ = errorBody(err)
			}
			m.Observe(ctx.Request().Method, ctx.Path(), status, time.Since(start))
			return err
		}
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		Skipper: func(ctx echo.Context) bool {
			return ctx.Path() == "/health" || ctx.Path() == "/metrics"
		},
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				logger.InfoContext(ctx.Request().Context(), "request", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.DebugContext(ctx.Request().Context(), "request", attrs...)
			return nil
		},
	})
}
