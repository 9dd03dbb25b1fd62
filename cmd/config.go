package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env      string `env:"ENV" env-default:"local"`
	HTTPPort string `env:"HTTP_PORT" env-default:"8080"`

	MarketplaceAPIURL     string        `env:"MARKETPLACE_API_URL" env-required:"true"`
	MarketplaceAPIToken   string        `env:"MARKETPLACE_API_TOKEN"`
	MarketplaceAPITimeout time.Duration `env:"MARKETPLACE_API_TIMEOUT" env-default:"10s"`

	OrdersPageSize   int `env:"ORDERS_PAGE_SIZE" env-default:"20"`
	ProductsPageSize int `env:"PRODUCTS_PAGE_SIZE" env-default:"10"`

	OrdersRefreshSchedule  string `env:"ORDERS_REFRESH_SCHEDULE" env-default:"*/30 * * * * *"`
	PendingRefreshSchedule string `env:"PENDING_REFRESH_SCHEDULE" env-default:"*/30 * * * * *"`
	OutboxRelaySchedule    string `env:"OUTBOX_RELAY_SCHEDULE" env-default:"*/5 * * * * *"`
	OutboxRelayBatchSize   int    `env:"OUTBOX_RELAY_BATCH_SIZE" env-default:"100"`

	DBHost     string `env:"DB_HOST"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBSslMode  string `env:"DB_SSLMODE" env-default:"disable"`

	KafkaBrokers            string `env:"KAFKA_BROKERS"`
	KafkaOrderEventsTopic   string `env:"KAFKA_ORDER_EVENTS_TOPIC" env-default:"marketplace.order-events"`
	KafkaProductEventsTopic string `env:"KAFKA_PRODUCT_EVENTS_TOPIC" env-default:"marketplace.product-events"`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE" env-default:"true"`
}

// LoadConfig reads the configuration from the environment. Variables found in
// envFile are loaded first without overriding the environment; a missing file
// is not an error.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}

// HasDatabase reports whether a journal database is configured.
func (c Config) HasDatabase() bool {
	return strings.TrimSpace(c.DBHost) != ""
}

// DSN returns the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
