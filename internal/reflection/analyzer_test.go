package reflection_test

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/junioryono/injector/internal/reflection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test types
type Database struct {
	ConnectionString string
}

type Logger interface {
	Log(msg string)
}

type ConsoleLogger struct{}

func (c *ConsoleLogger) Log(msg string) {}

type UserService struct {
	DB     *Database
	Logger Logger
}

// Test constructors
func NewDatabase(connStr string) *Database {
	return &Database{ConnectionString: connStr}
}

func NewUserService(db *Database, logger Logger) *UserService {
	return &UserService{DB: db, Logger: logger}
}

func NewUserServiceWithError(db *Database) (*UserService, error) {
	if db == nil {
		return nil, errors.New("database is required")
	}
	return &UserService{DB: db}, nil
}

func NewConsoleLogger() *ConsoleLogger {
	return &ConsoleLogger{}
}

func TestAnalyzer_SimpleConstructor(t *testing.T) {
	analyzer := reflection.New()

	info, err := analyzer.Analyze(NewDatabase)
	require.NoError(t, err)

	assert.Equal(t, 1, info.Arity())
	assert.Equal(t, reflect.TypeFor[string](), info.Parameters[0].Type)
	assert.Equal(t, 0, info.Parameters[0].Index)
	require.Len(t, info.Returns, 1)
	assert.Equal(t, reflect.TypeFor[*Database](), info.Returns[0])
	assert.False(t, info.HasErrorReturn)
}

func TestAnalyzer_ConstructorWithError(t *testing.T) {
	analyzer := reflection.New()

	info, err := analyzer.Analyze(NewUserServiceWithError)
	require.NoError(t, err)

	assert.True(t, info.HasErrorReturn)
	require.Len(t, info.Returns, 1)
	assert.Equal(t, reflect.TypeFor[*UserService](), info.Returns[0])
	assert.Equal(t, []reflect.Type{reflect.TypeFor[*Database]()}, info.ParameterTypes())
}

func TestAnalyzer_InvalidFunctions(t *testing.T) {
	analyzer := reflection.New()

	var nilFn func() *Database

	tests := []struct {
		name    string
		fn      any
		wantErr error
	}{
		{"nil", nil, reflection.ErrNilFunction},
		{"typed nil", nilFn, reflection.ErrNilFunction},
		{"string", "not a function", reflection.ErrNotFunction},
		{"int", 42, reflection.ErrNotFunction},
		{"variadic", func(xs ...int) int { return len(xs) }, reflection.ErrVariadic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analyzer.Analyze(tt.fn)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAnalyzer_AnalyzeConstructor(t *testing.T) {
	analyzer := reflection.New()
	loggerType := reflect.TypeFor[Logger]()

	t.Run("assignable to interface", func(t *testing.T) {
		info, err := analyzer.AnalyzeConstructor(NewConsoleLogger, loggerType)
		require.NoError(t, err)
		assert.Equal(t, 0, info.Arity())
	})

	t.Run("not assignable", func(t *testing.T) {
		_, err := analyzer.AnalyzeConstructor(NewDatabase, loggerType)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not assignable")
	})

	t.Run("no result", func(t *testing.T) {
		_, err := analyzer.AnalyzeConstructor(func() {}, loggerType)
		assert.ErrorIs(t, err, reflection.ErrNoResult)
	})

	t.Run("error only", func(t *testing.T) {
		_, err := analyzer.AnalyzeConstructor(func() error { return nil }, loggerType)
		assert.ErrorIs(t, err, reflection.ErrNoResult)
	})

	t.Run("too many results", func(t *testing.T) {
		_, err := analyzer.AnalyzeConstructor(func() (*Database, *UserService) { return nil, nil }, nil)
		assert.ErrorIs(t, err, reflection.ErrTooManyOut)
	})

	t.Run("nil target skips check", func(t *testing.T) {
		_, err := analyzer.AnalyzeConstructor(NewDatabase, nil)
		assert.NoError(t, err)
	})
}

func TestAnalyzer_Caching(t *testing.T) {
	analyzer := reflection.New()

	info1, err := analyzer.Analyze(NewDatabase)
	require.NoError(t, err)

	info2, err := analyzer.Analyze(NewDatabase)
	require.NoError(t, err)

	assert.Equal(t, info1.Type, info2.Type)
	assert.Equal(t, info1.ParameterTypes(), info2.ParameterTypes())
	assert.Equal(t, info1.Arity(), info2.Arity())
}

func TestAnalyzer_Closures(t *testing.T) {
	analyzer := reflection.New()

	makeFn := func(s string) func() *Database {
		return func() *Database { return &Database{ConnectionString: s} }
	}

	first, err := analyzer.Analyze(makeFn("first"))
	require.NoError(t, err)

	second, err := analyzer.Analyze(makeFn("second"))
	require.NoError(t, err)

	// Closures share code, but each call must use its own value.
	out1, err := first.Call(nil)
	require.NoError(t, err)
	out2, err := second.Call(nil)
	require.NoError(t, err)

	assert.Equal(t, "first", out1[0].Interface().(*Database).ConnectionString)
	assert.Equal(t, "second", out2[0].Interface().(*Database).ConnectionString)
}

func TestAnalyzer_ConcurrentAnalysis(t *testing.T) {
	analyzer := reflection.New()

	constructors := []any{
		NewDatabase,
		NewUserService,
		NewUserServiceWithError,
		NewConsoleLogger,
	}

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	for _, constructor := range constructors {
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(c any) {
				defer wg.Done()
				if _, err := analyzer.Analyze(c); err != nil {
					errs <- err
				}
			}(constructor)
		}
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent analysis failed: %v", err)
	}
}

func TestFuncInfo_Call(t *testing.T) {
	analyzer := reflection.New()

	t.Run("returns values", func(t *testing.T) {
		info, err := analyzer.Analyze(NewDatabase)
		require.NoError(t, err)

		out, err := info.Call([]reflect.Value{reflect.ValueOf("postgres://")})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "postgres://", out[0].Interface().(*Database).ConnectionString)
	})

	t.Run("returns error", func(t *testing.T) {
		info, err := analyzer.Analyze(NewUserServiceWithError)
		require.NoError(t, err)

		out, err := info.Call([]reflect.Value{reflect.Zero(reflect.TypeFor[*Database]())})
		assert.Nil(t, out)
		assert.EqualError(t, err, "database is required")
	})

	t.Run("recovers panic", func(t *testing.T) {
		boom := errors.New("boom")
		info, err := analyzer.Analyze(func() *Database { panic(boom) })
		require.NoError(t, err)

		_, err = info.Call(nil)
		var pe reflection.PanicError
		require.ErrorAs(t, err, &pe)
		assert.ErrorIs(t, err, boom)
		assert.NotEmpty(t, pe.Stack)
	})

	t.Run("recovers non-error panic", func(t *testing.T) {
		info, err := analyzer.Analyze(func() *Database { panic("bad") })
		require.NoError(t, err)

		_, err = info.Call(nil)
		assert.EqualError(t, err, "function panicked: bad")
	})
}
