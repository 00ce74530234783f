package events

import (
	"context"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// NopPublisher отбрасывает события
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.Event) error { return nil }
func (NopPublisher) Close() error                                { return nil }
