// Package echo provides injector integration for the Echo web framework.
//
// This package provides middleware that attaches a container to each request
// and type-safe handler wrappers for getting controllers from it.
//
// Example usage:
//
//	c := injector.New()
//	injector.Install[*UserController](c, injector.Transient)
//
//	e := echo.New()
//	e.Use(injectorecho.ContainerMiddleware(c))
//
//	e.POST("/login", injectorecho.Handle(AuthController.Login))
//	e.GET("/users/:id", injectorecho.Handle((*UserController).GetByID))
package echo

import (
	"log/slog"
	"net/http"

	"github.com/junioryono/injector"
	"github.com/labstack/echo/v4"
)

// Config holds the configuration for the container middleware.
type Config struct {
	// ErrorHandler is called when the container cannot serve the request or
	// a middleware fails. If nil, an echo.HTTPError with status 500 is
	// returned.
	ErrorHandler func(echo.Context, error) error

	// Middlewares are functions that run after the container is attached.
	// They can be used to initialize request data, set user data, etc.
	Middlewares []func(*injector.Container, echo.Context) error
}

// Option configures the container middleware.
type Option func(*Config)

// WithErrorHandler sets the error handler for middleware failures.
func WithErrorHandler(h func(echo.Context, error) error) Option {
	return func(c *Config) {
		c.ErrorHandler = h
	}
}

// WithMiddleware adds a middleware function that runs after the container is
// attached. Multiple middlewares are executed in the order they are added.
func WithMiddleware(mw func(*injector.Container, echo.Context) error) Option {
	return func(c *Config) {
		c.Middlewares = append(c.Middlewares, mw)
	}
}

func defaultConfig() *Config {
	return &Config{
		ErrorHandler: func(c echo.Context, err error) error {
			slog.Error("container middleware failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
		},
	}
}

// ContainerMiddleware creates an Echo middleware that attaches container to
// the context of each request. The container can be retrieved using
// injector.FromContext.
//
// Requests arriving after the container is closed are passed to the error
// handler with injector.ErrContainerClosed.
//
// Example:
//
//	e := echo.New()
//	e.Use(injectorecho.ContainerMiddleware(c))
func ContainerMiddleware(container *injector.Container, opts ...Option) echo.MiddlewareFunc {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if container == nil {
				return cfg.ErrorHandler(c, injector.ErrNoContainer)
			}

			if container.IsClosed() {
				return cfg.ErrorHandler(c, injector.ErrContainerClosed)
			}

			c.SetRequest(c.Request().WithContext(injector.WithContainer(c.Request().Context(), container)))

			for _, mw := range cfg.Middlewares {
				if err := mw(container, c); err != nil {
					return cfg.ErrorHandler(c, err)
				}
			}

			return next(c)
		}
	}
}

// HandlerConfig holds configuration for the Handle wrapper.
type HandlerConfig struct {
	// PanicRecovery enables panic recovery in the handler.
	PanicRecovery bool

	// PanicHandler is called when a panic occurs (if PanicRecovery is true).
	PanicHandler func(echo.Context, any) error

	// ContainerErrorHandler is called when the request carries no container.
	ContainerErrorHandler func(echo.Context, error) error

	// ResolutionErrorHandler is called when getting the controller fails.
	ResolutionErrorHandler func(echo.Context, error) error
}

// HandlerOption configures the Handle wrapper.
type HandlerOption func(*HandlerConfig)

// WithPanicRecovery enables or disables panic recovery in the handler.
func WithPanicRecovery(enabled bool) HandlerOption {
	return func(c *HandlerConfig) {
		c.PanicRecovery = enabled
	}
}

// WithPanicHandler sets the handler for panics.
func WithPanicHandler(h func(echo.Context, any) error) HandlerOption {
	return func(c *HandlerConfig) {
		c.PanicHandler = h
	}
}

// WithContainerErrorHandler sets the error handler for requests without a container.
func WithContainerErrorHandler(h func(echo.Context, error) error) HandlerOption {
	return func(c *HandlerConfig) {
		c.ContainerErrorHandler = h
	}
}

// WithResolutionErrorHandler sets the error handler for controller resolution failures.
func WithResolutionErrorHandler(h func(echo.Context, error) error) HandlerOption {
	return func(c *HandlerConfig) {
		c.ResolutionErrorHandler = h
	}
}

func defaultHandlerConfig() *HandlerConfig {
	return &HandlerConfig{
		PanicRecovery: false,
		PanicHandler: func(c echo.Context, v any) error {
			slog.Error("panic in handler", "panic", v)
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
		},
		ContainerErrorHandler: func(c echo.Context, err error) error {
			slog.Error("failed to get container from context", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
		},
		ResolutionErrorHandler: func(c echo.Context, err error) error {
			slog.Error("failed to resolve controller", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
		},
	}
}

// Handle wraps a controller method for type-safe resolution from the
// container attached to the request context. Transient controllers are
// created for every request.
//
// The method signature should be: func(T, echo.Context) error
//
// Example:
//
//	type UserController interface {
//	    GetByID(echo.Context) error
//	}
//
//	e.GET("/users/:id", injectorecho.Handle(UserController.GetByID))
func Handle[T any](method func(T, echo.Context) error, opts ...HandlerOption) echo.HandlerFunc {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c echo.Context) (err error) {
		if cfg.PanicRecovery {
			defer func() {
				if v := recover(); v != nil {
					err = cfg.PanicHandler(c, v)
				}
			}()
		}

		container, containerErr := injector.FromContext(c.Request().Context())
		if containerErr != nil {
			return cfg.ContainerErrorHandler(c, containerErr)
		}

		controller, resolveErr := injector.Get[T](container)
		if resolveErr != nil {
			return cfg.ResolutionErrorHandler(c, resolveErr)
		}

		return method(controller, c)
	}
}
