package broadcast

import (
	"context"
	"log/slog"
	"time"

	application "fundpool/contexts/pool-coordination/pool-engine/application"
	"fundpool/contexts/pool-coordination/pool-engine/ports"

	"github.com/google/uuid"
)

const TransferTopic = "pool.transfer.requested"

// TransferRequestedPayload is the body handed to the signing host.
type TransferRequestedPayload struct {
	Destination string `json:"destination"`
	Amount      uint64 `json:"amount"`
}

// Emitter requests transfers by publishing a canonical envelope on the event
// bus; the signing host consumes the topic and builds the actual transaction.
// Publish failure is surfaced unretried, per the core's one-shot contract.
type Emitter struct {
	Publisher ports.EventPublisher
	Source    string
	Logger    *slog.Logger
}

func (e Emitter) RequestTransfer(ctx context.Context, destination string, amount uint64) error {
	logger := application.ResolveLogger(e.Logger)
	event := ports.EventEnvelope{
		EventID:        uuid.NewString(),
		EventType:      TransferTopic,
		SourceService:  e.Source,
		OccurredAtUTC:  time.Now().UTC(),
		EntityType:     "pool",
		EntityID:       "pool",
		PayloadVersion: 1,
		Payload: TransferRequestedPayload{
			Destination: destination,
			Amount:      amount,
		},
	}
	if err := e.Publisher.Publish(ctx, TransferTopic, event); err != nil {
		logger.Error("transfer request publish failed",
			"event", "pool_transfer_publish_failed",
			"module", "pool-coordination/pool-engine",
			"layer", "adapter",
			"destination", destination,
			"amount", amount,
			"error", err.Error(),
		)
		return err
	}
	logger.Info("transfer requested",
		"event", "pool_transfer_requested",
		"module", "pool-coordination/pool-engine",
		"layer", "adapter",
		"destination", destination,
		"amount", amount,
	)
	return nil
}
