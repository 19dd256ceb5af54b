package config

import (
	"os"
	"strings"
)

// Config holds everything the server reads from the environment at startup.
type Config struct {
	Addr         string
	MongoURI     string
	MongoDB      string
	MetricsAddr  string
	OTLPEndpoint string
	KafkaBrokers []string
	KafkaTopic   string
	Env          string
	LogPusher    bool
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads the configuration from environment variables, falling back to
// defaults that work against a local MongoDB.
func Load() *Config {
	cfg := &Config{
		Addr:         getEnv("RIDEBITE_ADDR", ":8080"),
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getEnv("MONGO_DB", "ridebite"),
		MetricsAddr:  getEnv("METRICS_ADDR", ":9100"),
		OTLPEndpoint: getEnv("OTLP_ENDPOINT", "localhost:4318"),
		KafkaTopic:   getEnv("KAFKA_LOG_TOPIC", "logs"),
		Env:          getEnv("APP_ENV", "development"),
		LogPusher:    os.Getenv("RIDEBITE_LOG_PUSHER") == "1",
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	return cfg
}
