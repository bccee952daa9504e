package reflection_test

import (
	"reflect"
	"testing"

	"github.com/junioryono/injector/internal/reflection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handler struct {
	DB      *Database `inject:""`
	Logger  Logger    `inject:""`
	Skipped *Database `inject:"-"`
	Name    string
}

type unexportedTagged struct {
	db *Database `inject:""`
}

func TestAnalyzer_AnalyzeStruct(t *testing.T) {
	analyzer := reflection.New()

	info, err := analyzer.AnalyzeStruct(reflect.TypeFor[*handler]())
	require.NoError(t, err)

	assert.True(t, info.Pointer)
	assert.Equal(t, 2, info.Arity())
	assert.Equal(t, []reflect.Type{
		reflect.TypeFor[*Database](),
		reflect.TypeFor[Logger](),
	}, info.ParameterTypes())
	assert.Equal(t, "DB", info.Fields[0].Name)
	assert.Equal(t, "Logger", info.Fields[1].Name)

	again, err := analyzer.AnalyzeStruct(reflect.TypeFor[*handler]())
	require.NoError(t, err)
	assert.Same(t, info, again)
}

func TestAnalyzer_AnalyzeStructErrors(t *testing.T) {
	analyzer := reflection.New()

	_, err := analyzer.AnalyzeStruct(reflect.TypeFor[int]())
	assert.ErrorIs(t, err, reflection.ErrNotStruct)

	_, err = analyzer.AnalyzeStruct(reflect.TypeFor[Logger]())
	assert.ErrorIs(t, err, reflection.ErrNotStruct)

	_, err = analyzer.AnalyzeStruct(nil)
	assert.ErrorIs(t, err, reflection.ErrNotStruct)

	_, err = analyzer.AnalyzeStruct(reflect.TypeFor[unexportedTagged]())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not exported")
}

func TestStructInfo_Build(t *testing.T) {
	analyzer := reflection.New()
	db := &Database{ConnectionString: "db"}
	logger := &ConsoleLogger{}

	t.Run("pointer", func(t *testing.T) {
		info, err := analyzer.AnalyzeStruct(reflect.TypeFor[*handler]())
		require.NoError(t, err)

		v, err := info.Build([]reflect.Value{reflect.ValueOf(db), reflect.ValueOf(logger)})
		require.NoError(t, err)

		h := v.Interface().(*handler)
		assert.Same(t, db, h.DB)
		assert.Same(t, logger, h.Logger.(*ConsoleLogger))
		assert.Nil(t, h.Skipped)
	})

	t.Run("value", func(t *testing.T) {
		info, err := analyzer.AnalyzeStruct(reflect.TypeFor[handler]())
		require.NoError(t, err)
		assert.False(t, info.Pointer)

		v, err := info.Build([]reflect.Value{reflect.ValueOf(db), reflect.ValueOf(logger)})
		require.NoError(t, err)
		assert.Same(t, db, v.Interface().(handler).DB)
	})

	t.Run("wrong count", func(t *testing.T) {
		info, err := analyzer.AnalyzeStruct(reflect.TypeFor[*handler]())
		require.NoError(t, err)

		_, err = info.Build(nil)
		assert.Error(t, err)
	})

	t.Run("wrong type", func(t *testing.T) {
		info, err := analyzer.AnalyzeStruct(reflect.TypeFor[*handler]())
		require.NoError(t, err)

		_, err = info.Build([]reflect.Value{reflect.ValueOf("x"), reflect.ValueOf(logger)})
		assert.Error(t, err)
	})
}
