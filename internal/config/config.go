package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the GORM/pgx connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// DatabaseURL returns the URL form used by migration tooling.
func (d DatabaseConfig) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

// KafkaConfig holds Kafka connection settings. An empty broker list disables
// event publishing entirely.
type KafkaConfig struct {
	Brokers     []string
	GroupPrefix string
}

// Enabled reports whether event publishing/consuming should be wired up.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// SearchConfig holds tunables for the fare search orchestrator.
type SearchConfig struct {
	DefaultRadiusFeet int
	DefaultLimit      int
	MaxWorkers        int
	UpstreamTimeout   time.Duration
}

// ServiceConfig holds all configuration for the fares service.
type ServiceConfig struct {
	Port          string
	AppEnv        string
	JWTSecret     string
	GoogleMapsKey string
	UberBaseURL   string
	LyftBaseURL   string

	CORSAllowedOrigins []string

	DBConfig    DatabaseConfig
	KafkaConfig KafkaConfig
	Search      SearchConfig
}

// Load reads configuration from FARES_-prefixed environment variables with
// development-friendly defaults.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("FARES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("service_port", "8000")
	v.SetDefault("app_env", "development")
	v.SetDefault("jwt_secret", "dev-secret-change-me")
	v.SetDefault("google_maps_key", "")

	v.SetDefault("uber_base_url", "https://api.uber.com")
	v.SetDefault("lyft_base_url", "https://api.lyft.com")

	v.SetDefault("cors_allowed_origins", "http://localhost:3000")

	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_user", "farefinder")
	v.SetDefault("db_password", "farefinder")
	v.SetDefault("db_name", "farefinder")
	v.SetDefault("db_sslmode", "disable")

	v.SetDefault("kafka_brokers", "")
	v.SetDefault("kafka_group_prefix", "farefinder-")

	v.SetDefault("search_radius_feet", 500)
	v.SetDefault("search_limit", 3)
	v.SetDefault("search_max_workers", 32)
	v.SetDefault("search_upstream_timeout", "10s")

	timeout, err := time.ParseDuration(v.GetString("search_upstream_timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid FARES_SEARCH_UPSTREAM_TIMEOUT: %w", err)
	}

	var brokers []string
	if raw := v.GetString("kafka_brokers"); raw != "" {
		brokers = strings.Split(raw, ",")
	}

	port := v.GetString("service_port")
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	return &ServiceConfig{
		Port:          port,
		AppEnv:        v.GetString("app_env"),
		JWTSecret:     v.GetString("jwt_secret"),
		GoogleMapsKey: v.GetString("google_maps_key"),
		UberBaseURL:   v.GetString("uber_base_url"),
		LyftBaseURL:   v.GetString("lyft_base_url"),

		CORSAllowedOrigins: strings.Split(v.GetString("cors_allowed_origins"), ","),

		DBConfig: DatabaseConfig{
			Host:     v.GetString("db_host"),
			Port:     v.GetInt("db_port"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			DBName:   v.GetString("db_name"),
			SSLMode:  v.GetString("db_sslmode"),
		},
		KafkaConfig: KafkaConfig{
			Brokers:     brokers,
			GroupPrefix: v.GetString("kafka_group_prefix"),
		},
		Search: SearchConfig{
			DefaultRadiusFeet: v.GetInt("search_radius_feet"),
			DefaultLimit:      v.GetInt("search_limit"),
			MaxWorkers:        v.GetInt("search_max_workers"),
			UpstreamTimeout:   timeout,
		},
	}, nil
}
