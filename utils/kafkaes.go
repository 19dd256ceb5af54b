package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/segmentio/kafka-go"
)

type LogMessage struct {
	Level     string            `json:"level"`
	Module    string            `json:"module"`
	Message   string            `json:"message"`
	TraceID   string            `json:"trace_id"`
	Env       string            `json:"env"`
	Timestamp time.Time         `json:"timestamp"`
	Extra     map[string]string `json:"extra"`
}

// RunLogPusher consumes request-log messages from Kafka and bulk-indexes
// them into Elasticsearch. The Elasticsearch address comes from the
// ELASTICSEARCH_URL environment variable (client default). Runs until the
// process exits.
func RunLogPusher(brokers []string, topic string) {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: "es-pusher",
	})
	defer kafkaReader.Close()

	es, err := elasticsearch.NewDefaultClient()
	if err != nil {
		log.Fatalf("Error creating Elasticsearch client: %s", err)
	}

	log.Println("Starting Kafka -> Elasticsearch log pusher")

	const batchSize = 100
	const batchTimeout = 5 * time.Second

	batch := make([]LogMessage, 0, batchSize)
	timer := time.NewTimer(batchTimeout)
	defer timer.Stop()

	flushBatch := func() {
		if len(batch) == 0 {
			return
		}
		var buf bytes.Buffer
		for _, logMsg := range batch {
			docBytes, err := json.Marshal(logMsg)
			if err != nil {
				log.Printf("Marshal error: %v", err)
				continue
			}
			buf.WriteString("{\"index\":{}}\n")
			buf.Write(docBytes)
			buf.WriteString("\n")
		}
		res, err := es.Bulk(bytes.NewReader(buf.Bytes()), es.Bulk.WithIndex("logs"))
		if err != nil {
			log.Printf("Bulk index error: %v", err)
		} else {
			res.Body.Close()
			log.Printf("Batch of %d logs pushed to ES", len(batch))
		}
		batch = batch[:0]
	}

	for {
		select {
		case <-timer.C:
			flushBatch()
			timer.Reset(batchTimeout)
		default:
			m, err := kafkaReader.ReadMessage(context.Background())
			if err != nil {
				log.Printf("Kafka read error: %v", err)
				continue
			}

			var logMsg LogMessage
			if err := json.Unmarshal(m.Value, &logMsg); err != nil {
				log.Printf("JSON decode error: %v", err)
				continue
			}

			if logMsg.Timestamp.IsZero() {
				logMsg.Timestamp = time.Now()
			}

			batch = append(batch, logMsg)
			if len(batch) >= batchSize {
				flushBatch()
				timer.Reset(batchTimeout)
			}
		}
	}
}
