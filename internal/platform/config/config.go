package config

import (
	"os"
	"strings"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName  string
	HTTPPort     string
	PostgresDSN  string
	KafkaBrokers []string

	EnableAutoSettlement bool
	EnableOutboxRelay    bool
	SettlementCron       string
	OutboxRelayCron      string
	OutboxBatchSize      int
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "fundpool"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	var brokers []string
	for _, value := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			brokers = append(brokers, value)
		}
	}
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}

	settlementCron := strings.TrimSpace(os.Getenv("SETTLEMENT_CRON"))
	if settlementCron == "" {
		// Every 30 seconds; the command itself is a no-op until the voting
		// deadline passes.
		settlementCron = "*/30 * * * * *"
	}
	outboxCron := strings.TrimSpace(os.Getenv("OUTBOX_RELAY_CRON"))
	if outboxCron == "" {
		outboxCron = "*/2 * * * * *"
	}

	return Config{
		ServiceName:  service,
		HTTPPort:     port,
		PostgresDSN:  os.Getenv("POSTGRES_DSN"),
		KafkaBrokers: brokers,

		EnableAutoSettlement: envBool("ENABLE_AUTO_SETTLEMENT", true),
		EnableOutboxRelay:    envBool("ENABLE_OUTBOX_RELAY", true),
		SettlementCron:       settlementCron,
		OutboxRelayCron:      outboxCron,
		OutboxBatchSize:      100,
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
