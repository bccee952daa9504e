package injector_test

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/junioryono/injector"
	"github.com/junioryono/injector/internal/graph"
	"github.com/junioryono/injector/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keysOf(types ...reflect.Type) []graph.NodeKey {
	keys := make([]graph.NodeKey, len(types))
	for i, t := range types {
		keys[i] = graph.NodeKey{Type: t}
	}
	return keys
}

func TestCycle_Pair(t *testing.T) {
	for _, lifetime := range []injector.Lifetime{injector.Singleton, injector.Transient} {
		t.Run(lifetime.String(), func(t *testing.T) {
			c := injector.New()
			require.NoError(t, injector.Install[*testutil.CircularServiceA](c, lifetime,
				injector.WithConstructor(testutil.NewCircularServiceA)))
			require.NoError(t, injector.Install[*testutil.CircularServiceB](c, lifetime,
				injector.WithConstructor(testutil.NewCircularServiceB)))

			_, err := injector.Get[*testutil.CircularServiceA](c)
			testutil.AssertCircularDependency(t, err)

			cycle := testutil.AssertErrorType[injector.CircularDependencyError](t, err)
			typeA := reflect.TypeFor[*testutil.CircularServiceA]()
			typeB := reflect.TypeFor[*testutil.CircularServiceB]()
			assert.Equal(t, graph.NodeKey{Type: typeA}, cycle.Node)
			assert.Equal(t, keysOf(typeA, typeB), cycle.Path)
			assert.Contains(t, err.Error(), "(cycle)")

			// The failure is reported again rather than cached.
			_, err = injector.Get[*testutil.CircularServiceB](c)
			testutil.AssertCircularDependency(t, err)
		})
	}
}

func TestCycle_Self(t *testing.T) {
	c := injector.New()
	require.NoError(t, injector.Install[*testutil.CircularServiceSelf](c, injector.Singleton,
		injector.WithConstructor(testutil.NewCircularServiceSelf)))

	_, err := injector.Get[*testutil.CircularServiceSelf](c)
	cycle := testutil.AssertErrorType[injector.CircularDependencyError](t, err)
	assert.Equal(t, keysOf(reflect.TypeFor[*testutil.CircularServiceSelf]()), cycle.Path)
}

func TestCycle_ThroughResolver(t *testing.T) {
	c := injector.New()

	require.NoError(t, injector.InstallResolver(c, injector.Singleton, func(c *injector.Container) (*TService, error) {
		if _, err := injector.Get[*TDependency](c); err != nil {
			return nil, err
		}
		return &TService{}, nil
	}))
	require.NoError(t, injector.InstallResolver(c, injector.Singleton, func(c *injector.Container) (*TDependency, error) {
		if _, err := injector.Get[*TService](c); err != nil {
			return nil, err
		}
		return &TDependency{}, nil
	}))

	done := make(chan error, 1)
	go func() {
		_, err := injector.Get[*TService](c)
		done <- err
	}()

	select {
	case err := <-done:
		testutil.AssertCircularDependency(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("resolution deadlocked")
	}
}

// A resolver must use its argument, not a captured container, for the
// re-entry to be reported.
func TestCycle_SelfThroughResolver(t *testing.T) {
	c := injector.New()

	require.NoError(t, injector.InstallResolver(c, injector.Singleton, func(view *injector.Container) (*TService, error) {
		return injector.Get[*TService](view)
	}))

	done := make(chan error, 1)
	go func() {
		_, err := injector.Get[*TService](c)
		done <- err
	}()

	select {
	case err := <-done:
		testutil.AssertCircularDependency(t, err)

		// Nothing was cached and the lock was released.
		_, err = injector.Get[*TService](c)
		testutil.AssertCircularDependency(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("resolution deadlocked")
	}
}

func TestCycle_SelfThroughInjector(t *testing.T) {
	c := injector.New()
	require.NoError(t, injector.Install[*TService](c, injector.Singleton, injector.WithConstructor(
		func(inj injector.Injector) (*TService, error) {
			if _, err := injector.Inject[*TService](inj); err != nil {
				return nil, err
			}
			return &TService{}, nil
		},
	)))

	_, err := injector.Get[*TService](c)
	testutil.AssertCircularDependency(t, err)
}

// lazyParent resolves its child after construction through an Injector.
type lazyParent struct {
	inj injector.Injector
}

func (p *lazyParent) Child() (*lazyChild, error) {
	return injector.Inject[*lazyChild](p.inj)
}

type lazyChild struct {
	Parent *lazyParent `inject:""`
}

func TestCycle_LazyInjectorIsNotACycle(t *testing.T) {
	c := injector.New()
	require.NoError(t, injector.Install[*lazyParent](c, injector.Singleton, injector.WithConstructor(
		func(inj injector.Injector) *lazyParent { return &lazyParent{inj: inj} },
	)))
	require.NoError(t, injector.Install[*lazyChild](c, injector.Singleton))

	parent := injector.MustGet[*lazyParent](c)

	child, err := parent.Child()
	require.NoError(t, err)
	assert.Same(t, parent, child.Parent)
	assert.Same(t, child, injector.MustGet[*lazyChild](c))
}

func TestCycle_ConcurrentDiamond(t *testing.T) {
	c := injector.New()
	require.NoError(t, injector.Install[*TService](c, injector.Singleton))
	require.NoError(t, injector.Install[*TDependency](c, injector.Singleton))
	require.NoError(t, injector.Install[*TInjected](c, injector.Singleton))
	require.NoError(t, injector.Install[*TServiceWithDeps](c, injector.Singleton,
		injector.WithConstructor(NewTServiceWithDeps)))

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var err error
			if i%2 == 0 {
				_, err = injector.Get[*TInjected](c)
			} else {
				_, err = injector.Get[*TServiceWithDeps](c)
			}
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Same(t, injector.MustGet[*TInjected](c).Svc, injector.MustGet[*TServiceWithDeps](c).Svc)
}
