package injector

import (
	"log/slog"
	"reflect"
	"time"
)

// DefaultMaxArity is the default upper bound on auto-wired constructor parameters.
const DefaultMaxArity = 10

// Options configures a Container.
type Options struct {
	// Identifier derives registry keys from types. Defaults to RuntimeIdentity.
	Identifier Identifier

	// MaxArity bounds the number of parameters an auto-wired constructor
	// may take. Constructors with more parameters are never selected.
	MaxArity int

	// Logger receives debug records for installs, resolutions and disposal.
	// Defaults to a logger that discards everything.
	Logger *slog.Logger

	// OnResolved is called after every successful Get.
	OnResolved func(t reflect.Type, instance any, duration time.Duration)

	// OnError is called after every failed Get.
	OnError func(t reflect.Type, err error)
}

// DefaultOptions returns the options used by New when none are given.
func DefaultOptions() *Options {
	return &Options{
		Identifier: RuntimeIdentity,
		MaxArity:   DefaultMaxArity,
		Logger:     slog.New(slog.DiscardHandler),
	}
}

// Option configures a Container.
type Option interface {
	apply(*Options)
}

type optionFunc func(*Options)

func (f optionFunc) apply(opts *Options) {
	f(opts)
}

// WithIdentifier sets the identity strategy.
func WithIdentifier(id Identifier) Option {
	return optionFunc(func(opts *Options) {
		if id != nil {
			opts.Identifier = id
		}
	})
}

// WithMaxArity sets the maximum number of auto-wired constructor parameters.
// Negative values are treated as zero.
func WithMaxArity(n int) Option {
	return optionFunc(func(opts *Options) {
		opts.MaxArity = max(n, 0)
	})
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return optionFunc(func(opts *Options) {
		if logger != nil {
			opts.Logger = logger
		}
	})
}

// WithOnResolved sets the callback invoked after every successful Get.
func WithOnResolved(fn func(t reflect.Type, instance any, duration time.Duration)) Option {
	return optionFunc(func(opts *Options) {
		opts.OnResolved = fn
	})
}

// WithOnError sets the callback invoked after every failed Get.
func WithOnError(fn func(t reflect.Type, err error)) Option {
	return optionFunc(func(opts *Options) {
		opts.OnError = fn
	})
}

// InstallOption modifies the behavior of Install and InstallAs.
type InstallOption interface {
	applyInstallOption(*installOptions)
}

type installOptions struct {
	constructors []any
}

type installOptionFunc func(*installOptions)

func (f installOptionFunc) applyInstallOption(opts *installOptions) {
	f(opts)
}

// WithConstructor adds constructor candidates for the auto-wired type.
// Each must be a non-variadic function returning the type, optionally
// followed by an error.
func WithConstructor(constructors ...any) InstallOption {
	return installOptionFunc(func(opts *installOptions) {
		opts.constructors = append(opts.constructors, constructors...)
	})
}
