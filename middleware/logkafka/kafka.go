package logkafka

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
)

var ErrNoWriter = errors.New("logkafka: kafka writer not initialized")

var kafkaWriter *kafka.Writer

func InitKafkaWriter(brokers []string, topic string) {
	kafkaWriter = kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
		Async:    true,
	})
}

func CloseKafkaWriter() error {
	if kafkaWriter != nil {
		return kafkaWriter.Close()
	}
	return nil
}

func WriteLogToKafka(ctx context.Context, msg []byte) error {
	if kafkaWriter == nil {
		return ErrNoWriter
	}
	return kafkaWriter.WriteMessages(ctx, kafka.Message{
		Value: msg,
		Time:  time.Now(),
	})
}
