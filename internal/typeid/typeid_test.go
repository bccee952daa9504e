package typeid

import (
	"io"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sigService struct{}

type sigBox[T any] struct{ v T }

type sigLogger interface{ Log(string) }

func referenceFNV1a32(s string) uint32 {
	h := OffsetBasis32
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= Prime32
	}
	return h
}

func TestSignature(t *testing.T) {
	const pkg = "github.com/junioryono/injector/internal/typeid"

	tests := []struct {
		name string
		typ  reflect.Type
		want string
	}{
		{"builtin", reflect.TypeFor[int](), "int"},
		{"named struct", reflect.TypeFor[sigService](), pkg + ".sigService"},
		{"pointer", reflect.TypeFor[*sigService](), "*" + pkg + ".sigService"},
		{"slice", reflect.TypeFor[[]string](), "[]string"},
		{"array", reflect.TypeFor[[4]byte](), "[4]uint8"},
		{"map", reflect.TypeFor[map[string]*sigService](), "map[string]*" + pkg + ".sigService"},
		{"recv chan", reflect.TypeFor[<-chan int](), "<-chan int"},
		{"send chan", reflect.TypeFor[chan<- int](), "chan<- int"},
		{"func", reflect.TypeFor[func(int, ...string) error](), "func(int, ...string) error"},
		{"multi return", reflect.TypeFor[func() (int, error)](), "func() (int, error)"},
		{"interface", reflect.TypeFor[sigLogger](), pkg + ".sigLogger"},
		{"stdlib interface", reflect.TypeFor[io.Reader](), "io.Reader"},
		{"anonymous struct", reflect.TypeFor[struct{ A int }](), "struct { A int }"},
		{"nil", nil, "<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Signature(tt.typ))
		})
	}

	t.Run("generic instantiation", func(t *testing.T) {
		a := Signature(reflect.TypeFor[sigBox[int]]())
		b := Signature(reflect.TypeFor[sigBox[string]]())
		assert.NotEqual(t, a, b)
		assert.Contains(t, a, pkg+".sigBox[")
	})

	t.Run("cached", func(t *testing.T) {
		typ := reflect.TypeFor[*sigService]()
		assert.Equal(t, Signature(typ), Signature(typ))
	})
}

func TestFNV1a32(t *testing.T) {
	// Published FNV-1a test vectors.
	assert.Equal(t, uint32(0x811c9dc5), FNV1a32(""))
	assert.Equal(t, uint32(0xe40c292c), FNV1a32("a"))
	assert.Equal(t, uint32(0xbf9cf968), FNV1a32("foobar"))

	for _, s := range []string{"", "x", "*main.Logger", "map[string]int"} {
		assert.Equal(t, referenceFNV1a32(s), FNV1a32(s), s)
	}
}

func TestSum64(t *testing.T) {
	// xxhash64 of the empty string.
	assert.Equal(t, uint64(0xef46db3751d8e999), Sum64(""))
	assert.NotEqual(t, Sum64("a"), Sum64("b"))
}

func TestKey(t *testing.T) {
	t.Run("runtime keys compare by type", func(t *testing.T) {
		a := RuntimeKey(reflect.TypeFor[sigService]())
		b := RuntimeKey(reflect.TypeFor[sigService]())
		c := RuntimeKey(reflect.TypeFor[*sigService]())

		assert.Equal(t, a, b)
		assert.NotEqual(t, a, c)
		assert.Zero(t, a.Compare(b))
		assert.NotZero(t, a.Compare(c))
		assert.Equal(t, -a.Compare(c), c.Compare(a))

		_, ok := a.Sum()
		assert.False(t, ok)
		assert.Equal(t, 0, a.Bits())
	})

	t.Run("hashed keys", func(t *testing.T) {
		k := HashedKey(42, 32)
		sum, ok := k.Sum()
		require.True(t, ok)
		assert.Equal(t, uint64(42), sum)
		assert.Equal(t, 32, k.Bits())
		assert.Equal(t, "0x0000002a", k.String())
		assert.Equal(t, "0x000000000000002a", HashedKey(42, 64).String())
		assert.Equal(t, -1, HashedKey(1, 32).Compare(HashedKey(2, 32)))
		assert.Equal(t, -1, HashedKey(9, 32).Compare(HashedKey(1, 64)))
	})

	t.Run("runtime before hashed", func(t *testing.T) {
		r := RuntimeKey(reflect.TypeFor[int]())
		h := HashedKey(1, 32)
		assert.Equal(t, -1, r.Compare(h))
		assert.Equal(t, 1, h.Compare(r))
	})

	t.Run("zero", func(t *testing.T) {
		assert.True(t, Key{}.IsZero())
		assert.Equal(t, "<zero>", Key{}.String())
		assert.False(t, RuntimeKey(reflect.TypeFor[int]()).IsZero())
	})

	t.Run("usable as map key", func(t *testing.T) {
		m := map[Key]int{}
		m[RuntimeKey(reflect.TypeFor[int]())] = 1
		m[HashedKey(uint64(FNV1a32("int")), 32)] = 2
		assert.Len(t, m, 2)
		assert.Equal(t, 1, m[RuntimeKey(reflect.TypeFor[int]())])
	})
}
