package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"dispatch/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	StoreDriver string `envconfig:"STORE_DRIVER" default:"postgres"`
	DBHost      string `envconfig:"DB_HOST" default:"localhost"`
	DBPort      string `envconfig:"DB_PORT" default:"5432"`
	DBUser      string `envconfig:"DB_USER" default:"postgres"`
	DBPassword  string `envconfig:"DB_PASSWORD"`
	DBName      string `envconfig:"DB_NAME" default:"dispatch"`
	DBSslMode   string `envconfig:"DB_SSLMODE" default:"disable"`

	MaxActiveOrders        int           `envconfig:"MAX_ACTIVE_ORDERS" default:"3"`
	AssignmentCooldown     time.Duration `envconfig:"ASSIGNMENT_COOLDOWN" default:"5m"`
	ClaimRetryLimit        int           `envconfig:"CLAIM_RETRY_LIMIT" default:"3"`
	ReorderEpsilon         time.Duration `envconfig:"REORDER_EPSILON" default:"60s"`
	EnforceSkillOnReassign bool          `envconfig:"ENFORCE_SKILL_ON_REASSIGN" default:"false"`

	TechniciansFile string `envconfig:"TECHNICIANS_FILE" default:"technicians.yaml"`

	RabbitMQURL      string `envconfig:"RABBITMQ_URL"`
	RabbitMQExchange string `envconfig:"RABBITMQ_EXCHANGE" default:"dispatch.orders"`

	QueueReportSchedule     string `envconfig:"QUEUE_REPORT_SCHEDULE" default:"0 * * * * *"`
	DirectoryReloadSchedule string `envconfig:"DIRECTORY_RELOAD_SCHEDULE" default:"0 0 * * * *"`
}

// LoadConfig reads the optional .env file and then the environment. Variables
// already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var driverErr error
	if c.StoreDriver != StoreDriverPostgres && c.StoreDriver != StoreDriverMemory {
		driverErr = errs.NewValueIsInvalidErrorWithCause("STORE_DRIVER",
			fmt.Errorf("%q is neither %s nor %s", c.StoreDriver, StoreDriverPostgres, StoreDriverMemory))
	}

	var portErr error
	if c.HTTPPort == "" {
		portErr = errs.NewValueIsRequiredError("HTTP_PORT")
	}

	var retryErr error
	if c.ClaimRetryLimit < 1 {
		retryErr = errs.NewValueIsOutOfRangeError("CLAIM_RETRY_LIMIT", c.ClaimRetryLimit, 1, "unbounded")
	}

	var epsilonErr error
	if c.ReorderEpsilon < time.Microsecond {
		epsilonErr = errs.NewValueIsOutOfRangeError("REORDER_EPSILON", c.ReorderEpsilon, time.Microsecond, "unbounded")
	}

	return errors.Join(driverErr, portErr, retryErr, epsilonErr)
}

// DSN is the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// SlogLevel parses LogLevel, falling back to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
