// Package injector provides a type-keyed dependency injection container for Go.
//
// # Overview
//
// A Container maps types to bindings. Each binding has a lifetime and a way
// of producing instances: auto-wiring, a factory, a resolver, or a pre-built
// instance. Requesting a type builds its whole dependency graph.
//
//   - Two lifetimes: Singleton and Transient
//   - Constructor auto-wiring that picks the constructor with the most satisfiable parameters
//   - Field injection for structs tagged with `inject:""`
//   - Pluggable type identity, including hashed identities stable across builds
//   - Cycle detection, validation and ordered singleton preloading
//   - Modules for grouping installations
//
// # Basic Usage
//
//	c := injector.New()
//	defer c.Close()
//
//	injector.Install[*Config](c, injector.Singleton, injector.WithConstructor(LoadConfig))
//	injector.Install[*Database](c, injector.Singleton, injector.WithConstructor(NewDatabase))
//	injector.InstallAs[UserStore, *SQLUserStore](c, injector.Transient)
//
//	store, err := injector.Get[UserStore](c)
//
// # Lifetimes
//
//   - Singleton: created on first Get and shared by every later Get
//   - Transient: created on every Get
//
// Concurrent Gets of a singleton run its constructor once and observe the
// same instance.
//
// # Duplicate Installs
//
// The first installation of a type wins. Installing the same type again is
// a silent no-op that keeps the original lifetime and constructor.
//
// # Auto-Wiring
//
// Install registers a type for auto-wiring. Its candidates are the
// constructors added with WithConstructor or AddConstructor, in order, and
// for concrete types the type itself. Resolution picks the candidate with
// the most parameters, up to the container's MaxArity, whose parameters are
// all installed:
//
//	func NewUserService(db *Database, log Logger) *UserService
//
//	injector.Install[*UserService](c, injector.Singleton,
//	    injector.WithConstructor(NewUserService))
//
// The implicit candidate for a struct injects its exported fields tagged
// `inject:""`:
//
//	type Handler struct {
//	    Users *UserService `inject:""`
//	    Log   Logger       `inject:""`
//	    cache map[string]string
//	}
//
// A parameter of type Injector receives an Injector for lazy resolution.
//
// # Identity
//
// Bindings are keyed by an Identifier. RuntimeIdentity uses reflect.Type.
// HashedIdentity hashes a package-qualified type signature with 32-bit
// FNV-1a, and WideHashedIdentity uses 64-bit xxhash. Hash collisions are
// reported as IdentityCollisionError.
//
// # Error Handling
//
// Errors are typed and wrap sentinel values for errors.Is:
//   - NotRegisteredError: the type was never installed (ErrNotRegistered)
//   - NoSuitableConstructorError: no candidate can be satisfied (ErrNoSuitableConstructor)
//   - AbstractTypeError: an interface was installed without a constructor (ErrAbstractType)
//   - CircularDependencyError: a type depends on itself
//   - ConstructorPanicError: a constructor panicked
//
// Errors returned by factories, resolvers and constructors are returned from
// Get unmodified.
package injector
