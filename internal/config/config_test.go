package config

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 300, cfg.IdempTTLSecs)
	assert.Equal(t, 5*time.Minute, cfg.IdempotencyTTL())
	assert.True(t, cfg.Policy.MinInvestment.Equal(decimal.NewFromInt(1000)))
	assert.True(t, cfg.Policy.DefaultInterestRate.Equal(decimal.NewFromInt(12)))
	assert.Equal(t, 50, cfg.Policy.MarketplaceLimit)
	assert.Equal(t, 30*time.Second, cfg.Policy.MarketplaceCacheTTL)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("POSTGRES_DSN", "postgres://u:p@localhost:5432/farmfund?sslmode=disable")
	t.Setenv("MIN_INVESTMENT", "2500.50")
	t.Setenv("MARKETPLACE_LIMIT", "20")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Policy.MinInvestment.Equal(decimal.RequireFromString("2500.50")))
	assert.Equal(t, 20, cfg.Policy.MarketplaceLimit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, cfg.PostgresDSN, cfg.DSN())
	require.NoError(t, cfg.Validate())
}

func TestLoad_BadValue(t *testing.T) {
	t.Setenv("REDIS_DB", "not-an-int")
	_, err := Load()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "parse env:"))
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			AppPort: "8080", DBDriver: "mysql",
			MySQLHost: "db", MySQLPort: "3306", MySQLDB: "x", MySQLUser: "u",
			JWTSecret: strings.Repeat("k", 16),
			Policy:    DefaultPolicy(),
		}
	}
	require.NoError(t, base().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"missing port", func(c *Config) { c.AppPort = "" }, "APP_PORT"},
		{"missing mysql host", func(c *Config) { c.MySQLHost = "" }, "MySQL"},
		{"bad mysql port", func(c *Config) { c.MySQLPort = "abc" }, "MYSQL_PORT"},
		{"postgres without dsn", func(c *Config) { c.DBDriver = "postgres" }, "POSTGRES_DSN"},
		{"unknown driver", func(c *Config) { c.DBDriver = "oracle" }, "DB_DRIVER"},
		{"short secret", func(c *Config) { c.JWTSecret = "short" }, "JWT_SECRET"},
		{"zero floor", func(c *Config) { c.Policy.MinInvestment = decimal.Zero }, "MIN_INVESTMENT"},
		{"zero limit", func(c *Config) { c.Policy.MarketplaceLimit = 0 }, "MARKETPLACE_LIMIT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	c := &Config{MySQLUser: "u", MySQLPass: "p", MySQLHost: "db", MySQLPort: "3306", MySQLDB: "farmfund", DBDriver: "mysql"}
	assert.Equal(t, "u:p@tcp(db:3306)/farmfund?multiStatements=true&parseTime=true&loc=UTC&charset=utf8mb4,utf8", c.DSN())
	c.DBDriver = "sqlite"
	c.SQLitePath = "/tmp/x.db"
	assert.Equal(t, "/tmp/x.db", c.DSN())
}
