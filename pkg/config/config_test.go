package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 100, cfg.Ledger.TransactionsLimit)
	assert.Equal(t, 30*time.Second, cfg.Redis.PendingTTL())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "POSTGRES")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("TRANSACTIONS_LIMIT", "25")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_MAX_CONNS", "4")
	t.Setenv("DB_FORCE_IPV4", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 25, cfg.Ledger.TransactionsLimit)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 4, cfg.DB.MaxConns)
	assert.True(t, cfg.DB.ForceIPv4)
}

func TestLoad_MaxConnsSoloParaPostgres(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "0")

	t.Setenv("STORAGE_DRIVER", "postgres")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("STORAGE_DRIVER", "memory")
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")
	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "toner", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/toner?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

func TestLoad_BootstrapPasswordCorto(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("BOOTSTRAP_ADMIN_USERNAME", "admin")
	t.Setenv("BOOTSTRAP_ADMIN_PASSWORD", "corto")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("BOOTSTRAP_ADMIN_PASSWORD", "suficiente123")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "admin", cfg.Bootstrap.AdminUsername)
}
