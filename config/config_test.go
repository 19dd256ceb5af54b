package config

import (
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RIDEBITE_ADDR", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("MONGO_DB", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("RIDEBITE_LOG_PUSHER", "")

	cfg := Load()

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("MongoURI = %q", cfg.MongoURI)
	}
	if cfg.MongoDB != "ridebite" {
		t.Errorf("MongoDB = %q, want ridebite", cfg.MongoDB)
	}
	if cfg.KafkaBrokers != nil {
		t.Errorf("KafkaBrokers = %v, want nil", cfg.KafkaBrokers)
	}
	if cfg.LogPusher {
		t.Error("LogPusher = true with no env set")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("RIDEBITE_ADDR", ":9999")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MONGO_DB", "ridebite_test")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092 ,")
	t.Setenv("RIDEBITE_LOG_PUSHER", "1")

	cfg := Load()

	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q, want :9999", cfg.Addr)
	}
	if cfg.MongoURI != "mongodb://db:27017" {
		t.Errorf("MongoURI = %q", cfg.MongoURI)
	}
	if cfg.MongoDB != "ridebite_test" {
		t.Errorf("MongoDB = %q", cfg.MongoDB)
	}
	if want := []string{"k1:9092", "k2:9092"}; !reflect.DeepEqual(cfg.KafkaBrokers, want) {
		t.Errorf("KafkaBrokers = %v, want %v", cfg.KafkaBrokers, want)
	}
	if !cfg.LogPusher {
		t.Error("LogPusher = false, want true")
	}
}
