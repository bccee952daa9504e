// Package fiber provides injector integration for the Fiber web framework.
//
// This package provides middleware that attaches a container to each request
// and type-safe handler wrappers for getting controllers from it.
//
// Example usage:
//
//	c := injector.New()
//	injector.Install[*UserController](c, injector.Transient)
//
//	app := fiber.New()
//	app.Use(injectorfiber.ContainerMiddleware(c))
//
//	app.Post("/login", injectorfiber.Handle(AuthController.Login))
//	app.Get("/users/:id", injectorfiber.Handle((*UserController).GetByID))
package fiber

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/junioryono/injector"
)

// containerKey is the key used to store the container in fiber.Ctx.Locals
const containerKey = "injector_container"

// Config holds the configuration for the container middleware.
type Config struct {
	// ErrorHandler is called when the container cannot serve the request or
	// a middleware fails. If nil, a 500 JSON response is sent.
	ErrorHandler func(*fiber.Ctx, error) error

	// Middlewares are functions that run after the container is attached.
	// They can be used to initialize request data, set user data, etc.
	Middlewares []func(*injector.Container, *fiber.Ctx) error
}

// Option configures the container middleware.
type Option func(*Config)

// WithErrorHandler sets the error handler for middleware failures.
func WithErrorHandler(h func(*fiber.Ctx, error) error) Option {
	return func(c *Config) {
		c.ErrorHandler = h
	}
}

// WithMiddleware adds a middleware function that runs after the container is
// attached. Multiple middlewares are executed in the order they are added.
func WithMiddleware(mw func(*injector.Container, *fiber.Ctx) error) Option {
	return func(c *Config) {
		c.Middlewares = append(c.Middlewares, mw)
	}
}

func defaultConfig() *Config {
	return &Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Error("container middleware failed", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal Server Error",
			})
		},
	}
}

// ContainerMiddleware creates a Fiber middleware that attaches container to
// each request. The container is stored in fiber.Ctx.Locals and attached to
// the UserContext.
//
// Requests arriving after the container is closed are passed to the error
// handler with injector.ErrContainerClosed.
//
// Example:
//
//	app := fiber.New()
//	app.Use(injectorfiber.ContainerMiddleware(c))
func ContainerMiddleware(container *injector.Container, opts ...Option) fiber.Handler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *fiber.Ctx) error {
		if container == nil {
			return cfg.ErrorHandler(c, injector.ErrNoContainer)
		}

		if container.IsClosed() {
			return cfg.ErrorHandler(c, injector.ErrContainerClosed)
		}

		c.SetUserContext(injector.WithContainer(c.UserContext(), container))
		c.Locals(containerKey, container)

		for _, mw := range cfg.Middlewares {
			if err := mw(container, c); err != nil {
				return cfg.ErrorHandler(c, err)
			}
		}

		return c.Next()
	}
}

// HandlerConfig holds configuration for the Handle wrapper.
type HandlerConfig struct {
	// PanicRecovery enables panic recovery in the handler.
	PanicRecovery bool

	// PanicHandler is called when a panic occurs (if PanicRecovery is true).
	PanicHandler func(*fiber.Ctx, any) error

	// ContainerErrorHandler is called when the request carries no container.
	ContainerErrorHandler func(*fiber.Ctx, error) error

	// ResolutionErrorHandler is called when getting the controller fails.
	ResolutionErrorHandler func(*fiber.Ctx, error) error
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
func WithPanicHandler(h func(*fiber.Ctx, any) error) HandlerOption {
	return func(c *HandlerConfig) {
		c.PanicHandler = h
	}
}

// WithContainerErrorHandler sets the error handler for requests without a container.
func WithContainerErrorHandler(h func(*fiber.Ctx, error) error) HandlerOption {
	return func(c *HandlerConfig) {
		c.ContainerErrorHandler = h
	}
}

// WithResolutionErrorHandler sets the error handler for controller resolution failures.
func WithResolutionErrorHandler(h func(*fiber.Ctx, error) error) HandlerOption {
	return func(c *HandlerConfig) {
		c.ResolutionErrorHandler = h
	}
}

func defaultHandlerConfig() *HandlerConfig {
	return &HandlerConfig{
		PanicRecovery: false,
		PanicHandler: func(c *fiber.Ctx, v any) error {
			slog.Error("panic in handler", "panic", v)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal Server Error",
			})
		},
		ContainerErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Error("failed to get container from context", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal Server Error",
			})
		},
		ResolutionErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Error("failed to resolve controller", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal Server Error",
			})
		},
	}
}

// Handle wraps a controller method for type-safe resolution from the
// container stored in fiber.Ctx.Locals. Transient controllers are created
// for every request.
//
// The method signature should be: func(T, *fiber.Ctx) error
//
// Example:
//
//	type UserController interface {
//	    GetByID(*fiber.Ctx) error
//	}
//
//	app.Get("/users/:id", injectorfiber.Handle(UserController.GetByID))
func Handle[T any](method func(T, *fiber.Ctx) error, opts ...HandlerOption) fiber.Handler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *fiber.Ctx) (err error) {
		if cfg.PanicRecovery {
			defer func() {
				if v := recover(); v != nil {
					err = cfg.PanicHandler(c, v)
				}
			}()
		}

		container := FromContext(c)
		if container == nil {
			return cfg.ContainerErrorHandler(c, injector.ErrNoContainer)
		}

		controller, resolveErr := injector.Get[T](container)
		if resolveErr != nil {
			return cfg.ResolutionErrorHandler(c, resolveErr)
		}

		return method(controller, c)
	}
}

// FromContext retrieves the container from fiber.Ctx.Locals, or nil if the
// middleware did not run.
//
// Example:
//
//	c := injectorfiber.FromContext(ctx)
//	userService := injector.MustGet[*UserService](c)
func FromContext(c *fiber.Ctx) *injector.Container {
	container, ok := c.Locals(containerKey).(*injector.Container)
	if !ok {
		return nil
	}

	return container
}
