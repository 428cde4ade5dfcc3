package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	AppPort  string `env:"APP_PORT" envDefault:"8080"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DBDriver    string `env:"DB_DRIVER" envDefault:"mysql"`
	MySQLHost   string `env:"MYSQL_HOST" envDefault:"mysql"`
	MySQLPort   string `env:"MYSQL_PORT" envDefault:"3306"`
	MySQLDB     string `env:"MYSQL_DB" envDefault:"farmfund"`
	MySQLUser   string `env:"MYSQL_USER" envDefault:"farmfund"`
	MySQLPass   string `env:"MYSQL_PASS" envDefault:"farmfund"`
	PostgresDSN string `env:"POSTGRES_DSN"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"farmfund.db"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE" envDefault:"false"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"redis:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	IdempTTLSecs int      `env:"IDEMPOTENCY_TTL_SECONDS" envDefault:"300"`
	JWTSecret    string   `env:"JWT_SECRET"`
	CORSOrigins  []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	InvestRatePerMinute int `env:"INVEST_RATE_PER_MINUTE" envDefault:"30"`
	InvestBurst         int `env:"INVEST_BURST" envDefault:"5"`

	Policy Policy
}

// Policy holds the business constants usecases depend on.
type Policy struct {
	MinInvestment       decimal.Decimal `env:"MIN_INVESTMENT" envDefault:"1000"`
	DefaultInterestRate decimal.Decimal `env:"DEFAULT_INTEREST_RATE" envDefault:"12"`
	MarketplaceLimit    int             `env:"MARKETPLACE_LIMIT" envDefault:"50"`
	MarketplaceCacheTTL time.Duration   `env:"MARKETPLACE_CACHE_TTL" envDefault:"30s"`
	TransactionsLimit   int             `env:"TRANSACTIONS_LIMIT" envDefault:"50"`
	RecentLoansLimit    int             `env:"RECENT_LOANS_LIMIT" envDefault:"5"`
}

// DefaultPolicy mirrors the envDefault tags above.
func DefaultPolicy() Policy {
	return Policy{
		MinInvestment:       decimal.NewFromInt(1000),
		DefaultInterestRate: decimal.NewFromInt(12),
		MarketplaceLimit:    50,
		MarketplaceCacheTTL: 30 * time.Second,
		TransactionsLimit:   50,
		RecentLoansLimit:    5,
	}
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	c := &Config{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case "mysql":
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("missing POSTGRES_DSN")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	if !c.Policy.MinInvestment.IsPositive() {
		return errors.New("MIN_INVESTMENT must be positive")
	}
	if c.Policy.MarketplaceLimit <= 0 {
		return errors.New("MARKETPLACE_LIMIT must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool { return strings.EqualFold(c.AppEnv, "production") }

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case "postgres":
		return c.PostgresDSN
	case "sqlite":
		return c.SQLitePath
	default:
		return c.MySQLDSN()
	}
}
