package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Cache.Type)
	assert.Equal(t, "https://www.bungie.net/Platform", cfg.Vendor.BaseURL)
	assert.Equal(t, "sqlite", cfg.AnnotationDB.Type)
	assert.False(t, cfg.App.RatingsEnabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CACHE_TYPE", "redis")
	t.Setenv("VENDOR_API_KEY", "test-key")
	t.Setenv("RATINGS_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Cache.Type)
	assert.Equal(t, "test-key", cfg.Vendor.APIKey)
	assert.True(t, cfg.App.RatingsEnabled)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}

func TestServerConfig_Address(t *testing.T) {
	t.Parallel()

	s := ServerConfig{Host: "127.0.0.1", Port: 8080}
	assert.Equal(t, "127.0.0.1:8080", s.Address())
}

func TestCacheConfig_RedisAddress(t *testing.T) {
	t.Parallel()

	c := CacheConfig{RedisHost: "redis.internal", RedisPort: 6380}
	assert.Equal(t, "redis.internal:6380", c.RedisAddress())
}

func TestAnnotationDBConfig_PostgresDSN(t *testing.T) {
	t.Parallel()

	a := AnnotationDBConfig{Host: "db", Port: 5432, Name: "guardianvault", User: "app", Password: "secret", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:secret@db:5432/guardianvault?sslmode=disable", a.PostgresDSN())
}

func TestAccountDBConfig_DSN(t *testing.T) {
	t.Parallel()

	d := AccountDBConfig{Host: "mysql", Port: 3306, Name: "guardianvault", User: "app", Password: "secret"}
	assert.Equal(t, "app:secret@tcp(mysql:3306)/guardianvault?parseTime=true", d.DSN())
}

func TestAppConfig_EnvironmentChecks(t *testing.T) {
	t.Parallel()

	dev := AppConfig{Environment: "development"}
	assert.True(t, dev.IsDevelopment())
	assert.False(t, dev.IsProduction())

	prod := AppConfig{Environment: "production"}
	assert.True(t, prod.IsProduction())
	assert.False(t, prod.IsDevelopment())
}
