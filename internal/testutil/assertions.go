package testutil

import (
	"reflect"
	"testing"

	"github.com/junioryono/injector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertResolvable checks that T can be obtained from the container
func AssertResolvable[T any](t *testing.T, c *injector.Container) T {
	t.Helper()
	v, err := injector.Get[T](c)
	require.NoError(t, err, "failed to get %s", reflect.TypeFor[T]())
	require.NotNil(t, v, "got nil %s", reflect.TypeFor[T]())
	return v
}

// AssertNotRegistered checks that getting T fails with a not registered error
func AssertNotRegistered[T any](t *testing.T, c *injector.Container) {
	t.Helper()
	_, err := injector.Get[T](c)
	assert.Error(t, err)
	assert.True(t, injector.IsNotRegistered(err), "expected not registered error, got: %v", err)
}

// AssertSingleton checks that two gets of T return the same instance
func AssertSingleton[T any](t *testing.T, c *injector.Container) T {
	t.Helper()
	first := AssertResolvable[T](t, c)
	second := AssertResolvable[T](t, c)
	assert.Same(t, any(first), any(second), "expected the same %s instance", reflect.TypeFor[T]())
	return first
}

// AssertTransient checks that two gets of T return different instances
func AssertTransient[T any](t *testing.T, c *injector.Container) {
	t.Helper()
	first := AssertResolvable[T](t, c)
	second := AssertResolvable[T](t, c)
	assert.NotSame(t, any(first), any(second), "expected distinct %s instances", reflect.TypeFor[T]())
}

// AssertPanicsWithError checks if a function panics with specific error
func AssertPanicsWithError(t *testing.T, expectedError error, f func(), msgAndArgs ...any) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			assert.Fail(t, "function did not panic", msgAndArgs...)
			return
		}

		err, ok := r.(error)
		if !ok {
			assert.Fail(t, "panic value is not an error", "got %v", r)
			return
		}

		assert.ErrorIs(t, err, expectedError, msgAndArgs...)
	}()
	f()
}

// AssertClosed checks that operations on a closed container fail
func AssertClosed(t *testing.T, c *injector.Container) {
	t.Helper()
	assert.True(t, c.IsClosed(), "container should be closed")

	_, err := c.GetType(reflect.TypeFor[*TestService]())
	assert.ErrorIs(t, err, injector.ErrContainerClosed)

	err = injector.Install[*TestService](c, injector.Singleton)
	assert.ErrorIs(t, err, injector.ErrContainerClosed)
}

// AssertErrorType checks if an error is of a specific type
func AssertErrorType[T error](t *testing.T, err error, msgAndArgs ...any) T {
	t.Helper()
	var target T
	assert.ErrorAs(t, err, &target, msgAndArgs...)
	return target
}

// AssertCircularDependency checks if an error is a circular dependency error
func AssertCircularDependency(t *testing.T, err error) {
	t.Helper()
	assert.Error(t, err)
	assert.True(t, injector.IsCircularDependency(err), "expected circular dependency error, got: %v", err)
}
