package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"

	"github.com/maxturnos/turnos-service/internal/config"
	"github.com/maxturnos/turnos-service/internal/domain"
)

const defaultTopicPrefix = "turnos"

// message формат сообщения в топике
type message struct {
	Type         domain.EventType       `json:"type"`
	BusinessCode string                 `json:"business_code"`
	AggregateID  string                 `json:"aggregate_id"`
	OccurredAt   time.Time              `json:"occurred_at"`
	Payload      map[string]interface{} `json:"payload,omitempty"`
}

// KafkaPublisher пишет события в топик <prefix>.<aggregate>, ключ сообщения = код бизнеса
type KafkaPublisher struct {
	writer *kafka.Writer
	prefix string
	logger Logger
}

// New возвращает KafkaPublisher или NopPublisher, если брокеры не заданы
func New(cfg config.KafkaConfig, logger Logger) Publisher {
	brokers := SplitBrokers(cfg.Brokers)
	if len(brokers) == 0 {
		logger.Warn("Kafka brokers not configured, domain events disabled")
		return NopPublisher{}
	}

	prefix := strings.TrimSpace(cfg.TopicPrefix)
	if prefix == "" {
		prefix = defaultTopicPrefix
	}

	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           50 * time.Millisecond,
		},
		prefix: prefix,
		logger: logger,
	}
}

// Publish отправляет событие. Ошибка публикации не откатывает бизнес-операцию, вызывающий ее логирует.
func (p *KafkaPublisher) Publish(ctx context.Context, event domain.Event) error {
	body, err := json.Marshal(message{
		Type:         event.Type,
		BusinessCode: event.BusinessCode,
		AggregateID:  event.AggregateID,
		OccurredAt:   event.OccurredAt.UTC(),
		Payload:      event.Payload,
	})
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.Type, err)
	}

	msg := kafka.Message{
		Topic:   p.Topic(event.Type),
		Key:     []byte(event.BusinessCode),
		Value:   body,
		Headers: []kafka.Header{{Key: "event_type", Value: []byte(event.Type)}},
	}
	otel.GetTextMapPropagator().Inject(ctx, headerCarrier{msg: &msg})

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write event %s: %w", event.Type, err)
	}
	return nil
}

// Topic топик для типа события: "booking.created" -> "<prefix>.booking"
func (p *KafkaPublisher) Topic(t domain.EventType) string {
	aggregate := string(t)
	if i := strings.IndexByte(aggregate, '.'); i > 0 {
		aggregate = aggregate[:i]
	}
	return p.prefix + "." + aggregate
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// SplitBrokers разбирает список брокеров через запятую
func SplitBrokers(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type headerCarrier struct {
	msg *kafka.Message
}

func (c headerCarrier) Get(key string) string {
	for _, h := range c.msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c headerCarrier) Set(key, value string) {
	for i := range c.msg.Headers {
		if c.msg.Headers[i].Key == key {
			c.msg.Headers[i].Value = []byte(value)
			return
		}
	}
	c.msg.Headers = append(c.msg.Headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.msg.Headers))
	for _, h := range c.msg.Headers {
		keys = append(keys, h.Key)
	}
	return keys
}
