package testutil

import (
	"testing"

	"github.com/junioryono/injector"
	"github.com/stretchr/testify/require"
)

// ContainerBuilder provides a fluent interface for building test containers
type ContainerBuilder struct {
	t         *testing.T
	options   []injector.Option
	modules   []injector.ModuleOption
	preload   bool
	noCleanup bool
}

// NewContainerBuilder creates a new ContainerBuilder
func NewContainerBuilder(t *testing.T) *ContainerBuilder {
	return &ContainerBuilder{t: t}
}

// WithOptions adds container options
func (b *ContainerBuilder) WithOptions(opts ...injector.Option) *ContainerBuilder {
	b.options = append(b.options, opts...)
	return b
}

// WithModule adds a module
func (b *ContainerBuilder) WithModule(module injector.ModuleOption) *ContainerBuilder {
	b.modules = append(b.modules, module)
	return b
}

// WithSingleton installs T as an auto-wired singleton
func WithSingleton[T any](b *ContainerBuilder, constructors ...any) *ContainerBuilder {
	return b.WithModule(injector.Bind[T](injector.Singleton, injector.WithConstructor(constructors...)))
}

// WithTransient installs T as an auto-wired transient
func WithTransient[T any](b *ContainerBuilder, constructors ...any) *ContainerBuilder {
	return b.WithModule(injector.Bind[T](injector.Transient, injector.WithConstructor(constructors...)))
}

// WithPreload preloads singletons after installation
func (b *ContainerBuilder) WithPreload() *ContainerBuilder {
	b.preload = true
	return b
}

// WithoutCleanup leaves closing the container to the test
func (b *ContainerBuilder) WithoutCleanup() *ContainerBuilder {
	b.noCleanup = true
	return b
}

// Build creates the container and applies the modules
func (b *ContainerBuilder) Build() (*injector.Container, error) {
	c := injector.New(b.options...)

	if !b.noCleanup {
		b.t.Cleanup(func() {
			if !c.IsClosed() {
				require.NoError(b.t, c.Close())
			}
		})
	}

	if err := c.AddModules(b.modules...); err != nil {
		return c, err
	}

	if b.preload {
		if err := c.Preload(b.t.Context()); err != nil {
			return c, err
		}
	}

	return c, nil
}

// MustBuild creates the container and fails the test if there's an error
func (b *ContainerBuilder) MustBuild() *injector.Container {
	c, err := b.Build()
	require.NoError(b.t, err, "failed to build container")
	return c
}
