package injector_test

import (
	"encoding/json"
	"testing"

	"github.com/junioryono/injector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifetime(t *testing.T) {
	t.Run("constants", func(t *testing.T) {
		assert.Equal(t, injector.Lifetime(0), injector.Singleton)
		assert.Equal(t, injector.Lifetime(1), injector.Transient)

		var zero injector.Lifetime
		assert.Equal(t, injector.Singleton, zero)
	})

	t.Run("String", func(t *testing.T) {
		tests := []struct {
			lifetime injector.Lifetime
			expected string
		}{
			{injector.Singleton, "Singleton"},
			{injector.Transient, "Transient"},
			{injector.Lifetime(999), "Unknown(999)"},
		}

		for _, tt := range tests {
			assert.Equal(t, tt.expected, tt.lifetime.String())
		}
	})

	t.Run("IsValid", func(t *testing.T) {
		assert.True(t, injector.Singleton.IsValid())
		assert.True(t, injector.Transient.IsValid())
		assert.False(t, injector.Lifetime(-1).IsValid())
		assert.False(t, injector.Lifetime(2).IsValid())
	})

	t.Run("UnmarshalText", func(t *testing.T) {
		tests := []struct {
			input   string
			want    injector.Lifetime
			wantErr bool
		}{
			{"Singleton", injector.Singleton, false},
			{"singleton", injector.Singleton, false},
			{"TRANSIENT", injector.Transient, false},
			{" transient ", injector.Transient, false},
			{"scoped", 0, true},
			{"", 0, true},
		}

		for _, tt := range tests {
			t.Run(tt.input, func(t *testing.T) {
				var l injector.Lifetime
				err := l.UnmarshalText([]byte(tt.input))
				if tt.wantErr {
					var lerr injector.LifetimeError
					assert.ErrorAs(t, err, &lerr)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, tt.want, l)
			})
		}
	})

	t.Run("JSON", func(t *testing.T) {
		type config struct {
			Lifetime injector.Lifetime `json:"lifetime"`
		}

		data, err := json.Marshal(config{Lifetime: injector.Transient})
		require.NoError(t, err)
		assert.JSONEq(t, `{"lifetime":"Transient"}`, string(data))

		var cfg config
		require.NoError(t, json.Unmarshal([]byte(`{"lifetime":"singleton"}`), &cfg))
		assert.Equal(t, injector.Singleton, cfg.Lifetime)

		assert.Error(t, json.Unmarshal([]byte(`{"lifetime":3}`), &cfg))

		_, err = json.Marshal(config{Lifetime: injector.Lifetime(7)})
		assert.Error(t, err)
	})
}
