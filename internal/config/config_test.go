package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, 5432, cfg.PostgresPort)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5*time.Second, cfg.CheckoutTimeout)
	assert.False(t, cfg.SeedEnabled)
	assert.Nil(t, cfg.KafkaBrokers)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=storefront sslmode=disable", cfg.DSN())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("PORT", ":9090")
	t.Setenv("STORE", "MEMORY")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("CHECKOUT_TIMEOUT", "2s")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("SEED_ENABLED", "true")
	t.Setenv("GO_ENV", "prod")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DSN())
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 2*time.Second, cfg.CheckoutTimeout)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.SeedEnabled)
	assert.True(t, cfg.IsProd())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing secret", map[string]string{}, "JWT_SECRET is required"},
		{"bad port", map[string]string{"JWT_SECRET": "s", "POSTGRES_PORT": "abc"}, "POSTGRES_PORT must be number"},
		{"bad store", map[string]string{"JWT_SECRET": "s", "STORE": "mongo"}, "STORE must be"},
		{"bad ttl", map[string]string{"JWT_SECRET": "s", "SESSION_TTL": "soon"}, "SESSION_TTL must be duration"},
		{"zero timeout", map[string]string{"JWT_SECRET": "s", "CHECKOUT_TIMEOUT": "0s"}, "CHECKOUT_TIMEOUT must be positive"},
		{"bad seed", map[string]string{"JWT_SECRET": "s", "SEED_ENABLED": "maybe"}, "SEED_ENABLED must be bool"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
