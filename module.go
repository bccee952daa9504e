package injector

// ModuleOption represents an installation action within a module.
type ModuleOption func(*Container) error

// NewModule creates a new module with the given name and builders.
// Modules are a way to group related installations together.
//
// Example:
//
//	var StorageModule = injector.NewModule("storage",
//	    injector.Bind[*Database](injector.Singleton),
//	    injector.BindAs[UserStore, *SQLUserStore](injector.Singleton),
//	)
//
//	var AppModule = injector.NewModule("app",
//	    StorageModule,
//	    injector.Bind[*UserService](injector.Transient),
//	)
func NewModule(name string, builders ...ModuleOption) ModuleOption {
	return func(c *Container) error {
		for _, builder := range builders {
			if builder == nil {
				continue
			}

			if err := builder(c); err != nil {
				return ModuleError{Module: name, Cause: err}
			}
		}

		c.logger.Debug("installed module", "module", name)

		return nil
	}
}

// AddModules applies modules to the container in order, stopping at the
// first failure.
func (c *Container) AddModules(modules ...ModuleOption) error {
	for _, module := range modules {
		if module == nil {
			continue
		}

		if err := module(c); err != nil {
			return err
		}
	}

	return nil
}

// Bind creates a ModuleOption that calls Install.
func Bind[T any](lifetime Lifetime, opts ...InstallOption) ModuleOption {
	return func(c *Container) error {
		return Install[T](c, lifetime, opts...)
	}
}

// BindAs creates a ModuleOption that calls InstallAs.
func BindAs[I, Impl any](lifetime Lifetime, opts ...InstallOption) ModuleOption {
	return func(c *Container) error {
		return InstallAs[I, Impl](c, lifetime, opts...)
	}
}

// BindInstance creates a ModuleOption that calls InstallInstance.
func BindInstance[T any](instance T) ModuleOption {
	return func(c *Container) error {
		return InstallInstance[T](c, instance)
	}
}

// BindFactory creates a ModuleOption that calls InstallFactory.
func BindFactory[T any](lifetime Lifetime, fn func() (T, error)) ModuleOption {
	return func(c *Container) error {
		return InstallFactory[T](c, lifetime, fn)
	}
}

// BindResolver creates a ModuleOption that calls InstallResolver.
func BindResolver[T any](lifetime Lifetime, fn func(*Container) (T, error)) ModuleOption {
	return func(c *Container) error {
		return InstallResolver[T](c, lifetime, fn)
	}
}

// Constructors creates a ModuleOption that calls AddConstructor.
func Constructors[T any](constructors ...any) ModuleOption {
	return func(c *Container) error {
		return AddConstructor[T](c, constructors...)
	}
}
