package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

// Storage selects the key/value backend the state managers persist to.
type Storage struct {
	Backend string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"redis"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-default:"storefront"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-default:""`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-default:"storefront"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"CONN_MAX_LIFETIME" env-default:"30m"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:""`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type Security struct {
	JWTKey string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
	// TokenTTL bounds a plain login token. SessionTTL is the retention
	// window for persisted sessions saved without the remember flag;
	// remembered sessions never expire.
	TokenTTL   time.Duration `yaml:"TOKEN_TTL" env:"TOKEN_TTL" env-default:"24h"`
	SessionTTL time.Duration `yaml:"SESSION_TTL" env:"SESSION_TTL" env-default:"168h"`
}

type SendGrid struct {
	APIKey    string `yaml:"SENDGRID_API_KEY" env:"SENDGRID_API_KEY" env-default:""`
	FromEmail string `yaml:"SENDGRID_FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"no-reply@insuvit.id"`
	FromName  string `yaml:"SENDGRID_FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"Insuvit"`
}

// Simulation configures the artificial delays the mock backend inserts
// before completing auth and order submission. The durations are tunable
// operational knobs, not part of any contract; tests set them to zero.
// Held as strings because cleanenv re-applies env-default over zero
// values, which would turn an explicit "0s" back into the default.
type Simulation struct {
	AuthLatency  string `yaml:"AUTH_LATENCY" env:"AUTH_LATENCY" env-default:"1500ms"`
	OrderLatency string `yaml:"ORDER_LATENCY" env:"ORDER_LATENCY" env-default:"2s"`
}

func (s *Simulation) AuthDelay() time.Duration {
	return parseDelay(s.AuthLatency)
}

func (s *Simulation) OrderDelay() time.Duration {
	return parseDelay(s.OrderLatency)
}

func parseDelay(raw string) time.Duration {

	if raw == "" {
		return 0
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0
	}

	return d
}

type Telemetry struct {
	Enabled      bool   `yaml:"enabled" env:"OTEL_ENABLED" env-default:"false"`
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4318"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer   `yaml:"http_server"`
	Storage      Storage      `yaml:"storage"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	Security     Security     `yaml:"security"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	Simulation   Simulation   `yaml:"simulation"`
	Telemetry    Telemetry    `yaml:"telemetry"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "path to the config file")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	for name, raw := range map[string]string{
		"AUTH_LATENCY":  cfg.Simulation.AuthLatency,
		"ORDER_LATENCY": cfg.Simulation.OrderLatency,
	} {
		if raw == "" {
			continue
		}

		if _, err := time.ParseDuration(raw); err != nil {
			log.Fatalf("invalid %s duration: %s", name, err.Error())
		}
	}

	return &cfg
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s/%d",
		r.Username, r.Password, r.Host, r.Port, r.DB)
}
