package analytics

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the producer needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes engine events to Kafka. A nil Producer drops events.
type Producer struct {
	writer  MessageWriter
	timeout time.Duration
}

func NewProducer(brokers []string, topic string) *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		Async:                  true,
	}
	return NewProducerWithWriter(w)
}

func NewProducerWithWriter(w MessageWriter) *Producer {
	return &Producer{writer: w, timeout: 2 * time.Second}
}

// Emit sends one event. The payload map is copied, never modified.
func (p *Producer) Emit(ctx context.Context, event string, payload map[string]any) {
	if p == nil || p.writer == nil {
		return
	}

	msg := make(map[string]any, len(payload)+2)
	for k, v := range payload {
		msg[k] = v
	}
	msg["event"] = event
	msg["ts"] = time.Now().UTC()

	b, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[KAFKA] Failed to encode %s event: %v", event, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(event), Value: b}); err != nil {
		log.Printf("[KAFKA] Emit %s failed: %v", event, err)
	}
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
