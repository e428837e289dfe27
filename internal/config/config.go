package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type BufferConfig struct {
	Env          string `yaml:"env" env:"BUFFER_ENV" env-default:"local"`
	HTTPServer   `yaml:"http_server"`
	GRPCServer   `yaml:"grpc_server"`
	BufferDB     `yaml:"buffer_db"`
	Storage      `yaml:"storage"`
	LogConfig    `yaml:"log_config"`
	KafkaService `yaml:"kafka_service"`
	Engine       `yaml:"engine"`
	Scheduler    `yaml:"scheduler"`
	Notifier     `yaml:"notifier"`
}

type HTTPServer struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

type GRPCServer struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"50051"`
}

type BufferDB struct {
	Dsn            string `yaml:"dsn" env:"BUFFER_DB_DSN"`
	MigrationsPath string `yaml:"migrations_path" env:"BUFFER_DB_MIGRATIONS_PATH" env-default:"migrations"`
	AutoMigrate    bool   `yaml:"auto_migrate" env:"BUFFER_DB_AUTO_MIGRATE" env-default:"false"`
}

// Storage.Driver: postgres | memory
type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
	LogOutput string `yaml:"log_output" env:"LOG_OUTPUT" env-default:"stdout"`
}

type KafkaService struct {
	Enabled            bool   `yaml:"enabled" env:"KAFKA_ENABLED" env-default:"false"`
	Host               string `yaml:"host" env:"KAFKA_HOST" env-default:"localhost"`
	Port               string `yaml:"port" env:"KAFKA_PORT" env-default:"9092"`
	Username           string `yaml:"username" env:"KAFKA_USERNAME"`
	Password           string `yaml:"password" env:"KAFKA_PASSWORD"`
	Mechanism          string `yaml:"mechanism" env:"KAFKA_MECHANISM" env-default:"PLAIN"`
	TLSEnabled         bool   `yaml:"tls_enabled" env:"KAFKA_TLS_ENABLED" env-default:"false"`
	BreachTopic        string `yaml:"breach_topic" env:"KAFKA_BREACH_TOPIC" env-default:"buffer.breaches"`
	ReplenishmentTopic string `yaml:"replenishment_topic" env:"KAFKA_REPLENISHMENT_TOPIC" env-default:"buffer.replenishment"`
	RecalculationTopic string `yaml:"recalculation_topic" env:"KAFKA_RECALCULATION_TOPIC" env-default:"buffer.recalculations"`
	OrderBookingTopic  string `yaml:"order_booking_topic" env:"KAFKA_ORDER_BOOKING_TOPIC" env-default:"orders.booked"`
	GroupID            string `yaml:"group_id" env:"KAFKA_GROUP_ID" env-default:"buffer-service"`
}

func (k KafkaService) Broker() string {
	return fmt.Sprintf("%s:%s", k.Host, k.Port)
}

// Engine - политика расчета буферов.
type Engine struct {
	MinGreenZoneDays            float64 `yaml:"min_green_zone_days" env:"ENGINE_MIN_GREEN_ZONE_DAYS" env-default:"1"`
	MaxGreenZoneDays            float64 `yaml:"max_green_zone_days" env:"ENGINE_MAX_GREEN_ZONE_DAYS" env-default:"60"`
	TopOfGreenFactor            float64 `yaml:"top_of_green_factor" env:"ENGINE_TOP_OF_GREEN_FACTOR" env-default:"0.7"`
	ShortLeadTimeDays           int     `yaml:"short_lead_time_days" env:"ENGINE_SHORT_LEAD_TIME_DAYS" env-default:"7"`
	MediumLeadTimeDays          int     `yaml:"medium_lead_time_days" env:"ENGINE_MEDIUM_LEAD_TIME_DAYS" env-default:"14"`
	ShortLeadTimeFactor         float64 `yaml:"short_lead_time_factor" env:"ENGINE_SHORT_LEAD_TIME_FACTOR" env-default:"0.7"`
	MediumLeadTimeFactor        float64 `yaml:"medium_lead_time_factor" env:"ENGINE_MEDIUM_LEAD_TIME_FACTOR" env-default:"1.0"`
	LongLeadTimeFactor          float64 `yaml:"long_lead_time_factor" env:"ENGINE_LONG_LEAD_TIME_FACTOR" env-default:"1.3"`
	ADUWindowDays               int     `yaml:"adu_window_days" env:"ENGINE_ADU_WINDOW_DAYS" env-default:"90"`
	DefaultSpikeHorizonFactor   float64 `yaml:"default_spike_horizon_factor" env:"ENGINE_DEFAULT_SPIKE_HORIZON_FACTOR" env-default:"1.0"`
	DefaultSpikeThresholdFactor float64 `yaml:"default_spike_threshold_factor" env:"ENGINE_DEFAULT_SPIKE_THRESHOLD_FACTOR" env-default:"1.5"`
	DecouplingMaxWeight         float64 `yaml:"decoupling_max_weight" env:"ENGINE_DECOUPLING_MAX_WEIGHT" env-default:"10"`
}

type Scheduler struct {
	Enabled                 bool          `yaml:"enabled" env:"SCHEDULER_ENABLED" env-default:"true"`
	RecalculationInterval   time.Duration `yaml:"recalculation_interval" env:"SCHEDULER_RECALCULATION_INTERVAL" env-default:"24h"`
	BreachInterval          time.Duration `yaml:"breach_interval" env:"SCHEDULER_BREACH_INTERVAL" env-default:"15m"`
	ReplenishmentInterval   time.Duration `yaml:"replenishment_interval" env:"SCHEDULER_REPLENISHMENT_INTERVAL" env-default:"1h"`
	RequalificationInterval time.Duration `yaml:"requalification_interval" env:"SCHEDULER_REQUALIFICATION_INTERVAL" env-default:"1h"`
}

// Notifier - webhook для алертов о нарушениях. Пустой URL отключает отправку.
type Notifier struct {
	WebhookURL  string        `yaml:"webhook_url" env:"NOTIFIER_WEBHOOK_URL"`
	MinSeverity string        `yaml:"min_severity" env:"NOTIFIER_MIN_SEVERITY" env-default:"HIGH"`
	Timeout     time.Duration `yaml:"timeout" env:"NOTIFIER_TIMEOUT" env-default:"5s"`
}

// Validate проверяет согласованность политики.
func (c *BufferConfig) Validate() error {
	if c.Storage.Driver != "postgres" && c.Storage.Driver != "memory" {
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == "postgres" && c.BufferDB.Dsn == "" {
		return fmt.Errorf("buffer_db.dsn is required for postgres storage")
	}
	if c.Engine.MinGreenZoneDays > c.Engine.MaxGreenZoneDays {
		return fmt.Errorf("min_green_zone_days %v exceeds max_green_zone_days %v",
			c.Engine.MinGreenZoneDays, c.Engine.MaxGreenZoneDays)
	}
	if c.Engine.ShortLeadTimeDays > c.Engine.MediumLeadTimeDays {
		return fmt.Errorf("short_lead_time_days exceeds medium_lead_time_days")
	}
	if c.Engine.ADUWindowDays <= 0 {
		return fmt.Errorf("adu_window_days must be positive")
	}
	if c.Engine.DecouplingMaxWeight <= 0 {
		return fmt.Errorf("decoupling_max_weight must be positive")
	}
	switch c.Notifier.MinSeverity {
	case "", "HIGH", "MEDIUM", "LOW":
	default:
		return fmt.Errorf("unknown notifier min_severity %q", c.Notifier.MinSeverity)
	}
	return nil
}

// Load читает YAML и переменные окружения.
func Load(configPath string) (*BufferConfig, error) {
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	var cfg BufferConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func MustLoad() *BufferConfig {

	// Processing env config variable and file
	configPath := os.Getenv("BUFFER_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("BUFFER_CONFIG_PATH was not found\n")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("%v", err)
	}

	return cfg
}
