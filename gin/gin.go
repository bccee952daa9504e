// Package gin provides injector integration for the Gin web framework.
//
// This package provides middleware that attaches a container to each request
// and type-safe handler wrappers for getting controllers from it.
//
// Example usage:
//
//	c := injector.New()
//	injector.Install[*UserController](c, injector.Transient)
//
//	g := gin.New()
//	g.Use(injectorgin.ContainerMiddleware(c))
//
//	g.POST("/login", injectorgin.Handle(AuthController.Login))
//	g.GET("/users/:id", injectorgin.Handle((*UserController).GetByID))
package gin

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junioryono/injector"
)

// Config holds the configuration for the container middleware.
type Config struct {
	// ErrorHandler is called when the container cannot serve the request or
	// a middleware fails. If nil, a default handler returning 500 Internal
	// Server Error is used.
	ErrorHandler func(*gin.Context, error)

	// Middlewares are functions that run after the container is attached.
	// They can be used to initialize request data, set user claims, etc.
	Middlewares []func(*injector.Container, *gin.Context) error
}

// Option configures the container middleware.
type Option func(*Config)

// WithErrorHandler sets the error handler for middleware failures.
func WithErrorHandler(h func(*gin.Context, error)) Option {
	return func(c *Config) {
		c.ErrorHandler = h
	}
}

// WithMiddleware adds a middleware function that runs after the container is
// attached. Multiple middlewares are executed in the order they are added.
//
// Example:
//
//	injectorgin.ContainerMiddleware(c,
//	    injectorgin.WithMiddleware(func(c *injector.Container, ctx *gin.Context) error {
//	        return c.Validate()
//	    }),
//	)
func WithMiddleware(mw func(*injector.Container, *gin.Context) error) Option {
	return func(c *Config) {
		c.Middlewares = append(c.Middlewares, mw)
	}
}

func defaultConfig() *Config {
	return &Config{
		ErrorHandler: func(c *gin.Context, err error) {
			slog.Error("container middleware failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Internal Server Error",
			})
		},
	}
}

// ContainerMiddleware creates a gin.HandlerFunc that attaches c to the
// context of each request. The container can be retrieved using
// injector.FromContext.
//
// Requests arriving after c is closed are passed to the error handler with
// injector.ErrContainerClosed.
//
// Example:
//
//	g := gin.New()
//	g.Use(injectorgin.ContainerMiddleware(c))
func ContainerMiddleware(container *injector.Container, opts ...Option) gin.HandlerFunc {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *gin.Context) {
		if container == nil {
			cfg.ErrorHandler(c, injector.ErrNoContainer)
			return
		}

		if container.IsClosed() {
			cfg.ErrorHandler(c, injector.ErrContainerClosed)
			return
		}

		c.Request = c.Request.WithContext(injector.WithContainer(c.Request.Context(), container))

		for _, mw := range cfg.Middlewares {
			if err := mw(container, c); err != nil {
				cfg.ErrorHandler(c, err)
				return
			}
		}

		c.Next()
	}
}

// HandlerConfig holds configuration for the Handle wrapper.
type HandlerConfig struct {
	// PanicRecovery enables panic recovery in the handler.
	// If true, panics are caught and handled by PanicHandler.
	PanicRecovery bool

	// PanicHandler is called when a panic occurs (if PanicRecovery is true).
	// If nil, a default handler returning 500 Internal Server Error is used.
	PanicHandler func(*gin.Context, any)

	// ContainerErrorHandler is called when the request carries no container.
	// If nil, a default handler returning 500 Internal Server Error is used.
	ContainerErrorHandler func(*gin.Context, error)

	// ResolutionErrorHandler is called when getting the controller fails.
	// If nil, a default handler returning 500 Internal Server Error is used.
	ResolutionErrorHandler func(*gin.Context, error)
}

// HandlerOption configures the Handle wrapper.
type HandlerOption func(*HandlerConfig)

// WithPanicRecovery enables or disables panic recovery in the handler.
func WithPanicRecovery(enabled bool) HandlerOption {
	return func(c *HandlerConfig) {
		c.PanicRecovery = enabled
	}
}

// WithPanicHandler sets the handler for panics (requires WithPanicRecovery(true)).
func WithPanicHandler(h func(*gin.Context, any)) HandlerOption {
	return func(c *HandlerConfig) {
		c.PanicHandler = h
	}
}

// WithContainerErrorHandler sets the error handler for requests without a container.
func WithContainerErrorHandler(h func(*gin.Context, error)) HandlerOption {
	return func(c *HandlerConfig) {
		c.ContainerErrorHandler = h
	}
}

// WithResolutionErrorHandler sets the error handler for controller resolution failures.
func WithResolutionErrorHandler(h func(*gin.Context, error)) HandlerOption {
	return func(c *HandlerConfig) {
		c.ResolutionErrorHandler = h
	}
}

func defaultHandlerConfig() *HandlerConfig {
	return &HandlerConfig{
		PanicRecovery: false,
		PanicHandler: func(c *gin.Context, r any) {
			slog.Error("panic in handler", "panic", r)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Internal Server Error",
			})
		},
		ContainerErrorHandler: func(c *gin.Context, err error) {
			slog.Error("failed to get container from context", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Internal Server Error",
			})
		},
		ResolutionErrorHandler: func(c *gin.Context, err error) {
			slog.Error("failed to resolve controller", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Internal Server Error",
			})
		},
	}
}

// Handle wraps a controller method for type-safe resolution from the
// container attached to the request context. Transient controllers are
// created for every request.
//
// The method signature should be: func(T, *gin.Context)
//
// Example:
//
//	type UserController interface {
//	    GetByID(*gin.Context)
//	}
//
//	g.GET("/users/:id", injectorgin.Handle(UserController.GetByID))
func Handle[T any](method func(T, *gin.Context), opts ...HandlerOption) gin.HandlerFunc {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *gin.Context) {
		if cfg.PanicRecovery {
			defer func() {
				if r := recover(); r != nil {
					cfg.PanicHandler(c, r)
				}
			}()
		}

		container, err := injector.FromContext(c.Request.Context())
		if err != nil {
			cfg.ContainerErrorHandler(c, err)
			return
		}

		controller, err := injector.Get[T](container)
		if err != nil {
			cfg.ResolutionErrorHandler(c, err)
			return
		}

		method(controller, c)
	}
}
