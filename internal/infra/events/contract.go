package events

import (
	"context"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// Publisher публикует доменные события
type Publisher interface {
	Publish(ctx context.Context, event domain.Event) error
	Close() error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
