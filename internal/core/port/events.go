package port

import (
	"context"

	"chunkgate/internal/core/domain"
)

// EventPublisher publishes upload lifecycle events to the broker
type EventPublisher interface {
	PublishUploadCompleted(ctx context.Context, event domain.UploadCompletedEvent) error
}

// EventConsumer is an interface to define an event consumer (nats, kafka, ...)
type EventConsumer interface {
	Subscribe(ctx context.Context, handler MessageService) error
	Close() error
}

// MessageService is an interface to define message handling
type MessageService interface {
	HandleMessage(ctx context.Context, data []byte) error
}
