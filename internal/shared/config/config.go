package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/radieske/event-betting-console/internal/shared/upstream"
	ctopics "github.com/radieske/event-betting-console/pkg/contracts/topics"
)

// Config centraliza variáveis de ambiente e parâmetros de execução do console
// Inclui portas, upstreams (Events e Betting) e a auditoria via Kafka
type Config struct {
	Env         string // "local", "dev", "prod"
	ServiceName string
	LogLevel    string

	// Portas do console
	HTTPPort    string // páginas HTML
	MetricsPort string // /metrics e /healthz

	EventsAPI  upstream.Config
	BettingAPI upstream.Config

	// Auditoria; brokers vazio desliga o publisher
	KafkaBrokers      string
	TopicStaffActions string
}

// fileConfig é o overlay opcional em YAML (CONSOLE_CONFIG_FILE);
// os valores dele viram default e as variáveis de ambiente continuam valendo por cima
type fileConfig struct {
	Env         string       `yaml:"env"`
	LogLevel    string       `yaml:"log_level"`
	HTTPPort    string       `yaml:"http_port"`
	MetricsPort string       `yaml:"metrics_port"`
	EventsAPI   upstreamFile `yaml:"events_api"`
	BettingAPI  upstreamFile `yaml:"betting_api"`
	Kafka       struct {
		Brokers           string `yaml:"brokers"`
		TopicStaffActions string `yaml:"topic_staff_actions"`
	} `yaml:"kafka"`
}

type upstreamFile struct {
	BaseURL string            `yaml:"base_url"`
	Timeout time.Duration     `yaml:"timeout"`
	Headers map[string]string `yaml:"headers"`
}

const (
	defaultEventsTimeout  = 10 * time.Second
	defaultBettingTimeout = 15 * time.Second // Betting responde mais devagar
)

// Load lê o overlay (se houver) e as variáveis de ambiente, aplicando defaults
func Load() (Config, error) {
	var fc fileConfig
	if path := os.Getenv("CONSOLE_CONFIG_FILE"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	eventsTimeout, err := getDuration("API_TIMEOUT", or(fc.EventsAPI.Timeout, defaultEventsTimeout))
	if err != nil {
		return Config{}, err
	}
	bettingTimeout, err := getDuration("BETTING_API_TIMEOUT", or(fc.BettingAPI.Timeout, defaultBettingTimeout))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Env:         getEnv("ENV", orStr(fc.Env, "local")),
		ServiceName: getEnv("SERVICE_NAME", "staff-console"),
		LogLevel:    getEnv("LOG_LEVEL", fc.LogLevel),

		HTTPPort:    getEnv("HTTP_PORT", orStr(fc.HTTPPort, "3000")),
		MetricsPort: getEnv("METRICS_PORT", orStr(fc.MetricsPort, "9100")),

		EventsAPI: upstream.Config{
			Name:    "events-api",
			BaseURL: getEnv("API_BASE_URL", orStr(fc.EventsAPI.BaseURL, "http://localhost:5000")),
			Timeout: eventsTimeout,
			Headers: fc.EventsAPI.Headers,
		},
		BettingAPI: upstream.Config{
			Name:    "betting-api",
			BaseURL: getEnv("BETTING_API_BASE_URL", orStr(fc.BettingAPI.BaseURL, "http://localhost:8080")),
			Timeout: bettingTimeout,
			Headers: fc.BettingAPI.Headers,
		},

		KafkaBrokers:      getEnv("KAFKA_BROKERS", fc.Kafka.Brokers),
		TopicStaffActions: getEnv("KAFKA_TOPIC_STAFF_ACTIONS", orStr(fc.Kafka.TopicStaffActions, ctopics.StaffActions)),
	}

	return cfg, nil
}

// getEnv retorna o valor da variável de ambiente ou o default
func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func orStr(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func or(v, def time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return def
}
