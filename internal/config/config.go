package config

import "github.com/kelseyhightower/envconfig"

// Storefront holds the main service configuration.
type Storefront struct {
	Port         string `envconfig:"PORT" default:"8080"`
	RedisAddr    string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	PostgresURL  string `envconfig:"POSTGRES_URL" required:"true"`
	KafkaBrokers string `envconfig:"KAFKA_BROKERS" default:""`
	CatalogURL   string `envconfig:"CATALOG_URL" default:"https://dummyjson.com"`
	OrderTopic   string `envconfig:"ORDER_TOPIC" default:"order.placed"`
}

// Fulfillment holds the fulfillment worker configuration.
type Fulfillment struct {
	KafkaBrokers  string `envconfig:"KAFKA_BROKERS" required:"true"`
	OrderTopic    string `envconfig:"ORDER_TOPIC" default:"order.placed"`
	GroupID       string `envconfig:"CONSUMER_GROUP" default:"fulfillment-worker"`
	StorefrontURL string `envconfig:"STOREFRONT_URL" required:"true"`
	EmailURL      string `envconfig:"EMAIL_SERVICE_URL" required:"true"`
}

// Email holds the mock email service configuration.
type Email struct {
	Port string `envconfig:"PORT" default:"8083"`
}

// Migrate holds the schema migration tool configuration.
type Migrate struct {
	PostgresURL    string `envconfig:"POSTGRES_URL" required:"true"`
	MigrationsPath string `envconfig:"MIGRATIONS_PATH" default:"file://migrations"`
}

func Load(cfg any) error {
	return envconfig.Process("", cfg)
}
