package producer

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/zkkaa/sipetak-sub000/internal/messaging/kafka"
)

// Key pesan adalah aggregate id, sehingga semua event satu lokasi
// (atau satu deletion request) jatuh ke partisi yang sama dan urut.
func publishEvent(ctx context.Context, writer *kafkago.Writer, event kafka.OutboxEvent) error {
	headers := []kafkago.Header{
		{Key: "event_type", Value: []byte(event.EventType)},
		{Key: "aggregate_type", Value: []byte(event.AggregateType)},
	}
	if event.RequestID != "" {
		headers = append(headers, kafkago.Header{Key: "request_id", Value: []byte(event.RequestID)})
	}

	msg := kafkago.Message{
		Topic:   event.Topic,
		Key:     []byte(event.AggregateID),
		Value:   event.Payload,
		Headers: headers,
	}

	return writer.WriteMessages(ctx, msg)
}
