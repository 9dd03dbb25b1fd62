package http

import (
	"log/slog"

	"marketplace/internal/adapters/in/http/openapi"
	"marketplace/internal/pkg/errs"

	// Registers the API document served by echo-swagger.
	_ "marketplace/internal/adapters/in/http/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewEcho builds the echo instance serving s: request logging, panic recovery,
// OpenAPI request validation, the API routes and the Swagger UI.
func NewEcho(s *Server, requestValidator *openapi.RequestValidator, logger *slog.Logger) (*echo.Echo, error) {
	logger = logger.With("component", "http")

	bodyValidator, err := newRequestValidator()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = bodyValidator
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error.Error())
			}
			logger.DebugContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	}))
	if requestValidator != nil {
		e.Use(validateRequests(requestValidator))
	}

	s.Register(e)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

func validateRequests(v *openapi.RequestValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := v.Validate(c.Request()); err != nil {
				return errs.NewValueIsInvalidErrorWithCause("request", err)
			}
			return next(c)
		}
	}
}
