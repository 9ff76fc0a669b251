package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"fundpool/contexts/pool-coordination/pool-engine/ports"
)

// PoolUseCase orchestrates the pool instruction set. Every command follows the
// same bracket: load the aggregate snapshot, validate and mutate it through
// domain methods (all preconditions checked before any mutation), then save
// snapshot + outbox rows atomically. A failed command has zero observable
// side effects.
type PoolUseCase struct {
	Pool      ports.PoolRepository
	Transfers ports.TransferEmitter
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Source    string
	Logger    *slog.Logger
}

func (uc PoolUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now()
	}
	return time.Now().UTC()
}

func (uc PoolUseCase) newID(ctx context.Context) (string, error) {
	if uc.IDGen != nil {
		return uc.IDGen.NewID(ctx)
	}
	return uuid.NewString(), nil
}
