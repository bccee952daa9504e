package testutil

import (
	"testing"

	"github.com/junioryono/injector"
	"github.com/stretchr/testify/assert"
)

// BasicModule installs the logger, database and cache singletons.
var BasicModule = injector.NewModule("basic",
	injector.Bind[TestLogger](injector.Singleton, injector.WithConstructor(NewTestLogger)),
	injector.Bind[TestDatabase](injector.Singleton, injector.WithConstructor(NewTestDatabase)),
	injector.Bind[TestCache](injector.Singleton, injector.WithConstructor(NewTestCache)),
)

// CompleteModule installs BasicModule and a transient service depending on it.
var CompleteModule = injector.NewModule("complete",
	BasicModule,
	injector.Bind[*TestServiceWithDeps](injector.Transient, injector.WithConstructor(NewTestServiceWithDeps)),
)

// CreateContainerWithBasicServices creates a container with BasicModule installed
func CreateContainerWithBasicServices(t *testing.T) *injector.Container {
	t.Helper()
	return NewContainerBuilder(t).WithModule(BasicModule).MustBuild()
}

// CreateContainerWithCompleteServices creates a container with CompleteModule installed
func CreateContainerWithCompleteServices(t *testing.T) *injector.Container {
	t.Helper()
	return NewContainerBuilder(t).WithModule(CompleteModule).MustBuild()
}

// ErrorTestCase represents a test case for error scenarios
type ErrorTestCase struct {
	Name      string
	Setup     func(t *testing.T) *injector.Container
	Action    func(c *injector.Container) error
	WantError error
	CheckErr  func(t *testing.T, err error)
}

// RunErrorTestCases executes error test cases
func RunErrorTestCases(t *testing.T, cases []ErrorTestCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()

			c := tc.Setup(t)
			err := tc.Action(c)

			if tc.WantError != nil {
				assert.ErrorIs(t, err, tc.WantError)
			}

			if tc.CheckErr != nil {
				tc.CheckErr(t, err)
			}
		})
	}
}
