package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maxturnos/turnos-service/internal/config"
	"github.com/maxturnos/turnos-service/internal/domain"
	"github.com/maxturnos/turnos-service/pkg/logger"
)

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, SplitBrokers(" a:9092, ,b:9092 "))
	assert.Empty(t, SplitBrokers(""))
}

func TestNew_NoBrokersReturnsNop(t *testing.T) {
	p := New(config.KafkaConfig{}, logger.Nop())
	assert.IsType(t, NopPublisher{}, p)
	assert.NoError(t, p.Close())
}

func TestKafkaPublisher_Topic(t *testing.T) {
	p := New(config.KafkaConfig{Brokers: "localhost:9092", TopicPrefix: "maxturnos"}, logger.Nop()).(*KafkaPublisher)
	defer p.Close()

	assert.Equal(t, "maxturnos.booking", p.Topic(domain.EventBookingCreated))
	assert.Equal(t, "maxturnos.day", p.Topic(domain.EventDayCancelled))
}
