package ports

import (
	"context"
	"time"

	"fundpool/contexts/pool-coordination/pool-engine/domain/entities"
	"fundpool/internal/shared/events"
)

// PoolRepository is the state-store collaborator. Load returns a mutable
// snapshot of the full aggregate; Save atomically persists the snapshot and
// the outbox rows produced by the same call, so a command either lands with
// its events or not at all.
type PoolRepository interface {
	Load(ctx context.Context) (entities.Pool, error)
	Save(ctx context.Context, pool entities.Pool, outbox []OutboxMessage) error
}

// Clock is the host time oracle, queried at the start of every phase-gated
// operation.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts event/outbox identifier generation.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// TransferEmitter requests the outbound value transfer. The core never
// retries; a failure surfaces to the caller and the pool stays executable.
type TransferEmitter interface {
	RequestTransfer(ctx context.Context, destination string, amount uint64) error
}

// OutboxMessage is a row ready to relay from the module outbox.
type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

// OutboxRepository models worker-side outbox polling/acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

// EventEnvelope reuses the canonical cross-process envelope contract.
type EventEnvelope = events.Envelope

// EventPublisher publishes canonical envelopes to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

// EventSubscriber registers a topic consumer callback.
type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, EventEnvelope) error,
	) error
}
