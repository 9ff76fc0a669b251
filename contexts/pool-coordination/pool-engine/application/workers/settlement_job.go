package workers

import (
	"context"
	"errors"
	"log/slog"

	application "fundpool/contexts/pool-coordination/pool-engine/application"
	"fundpool/contexts/pool-coordination/pool-engine/application/commands"
	domainerrors "fundpool/contexts/pool-coordination/pool-engine/domain/errors"
)

// SettlementJob drives execute-transfer once the voting deadline passes, so
// a pool settles without requiring any external party to call execute. The
// phase gate is still enforced by the command; attempts before ExecutionPhase
// or after completion are routine no-ops here.
type SettlementJob struct {
	Commands commands.PoolUseCase
	Logger   *slog.Logger
}

func (j SettlementJob) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(j.Logger)

	result, err := j.Commands.ExecuteTransfer(ctx)
	switch {
	case err == nil:
	case errors.Is(err, domainerrors.ErrPhase),
		errors.Is(err, domainerrors.ErrAlreadyExecuted),
		errors.Is(err, domainerrors.ErrNotInitialized):
		logger.Debug("settlement not due",
			"event", "pool_settlement_not_due",
			"module", "pool-coordination/pool-engine",
			"layer", "worker",
			"reason", err.Error(),
		)
		return nil
	case errors.Is(err, domainerrors.ErrTransferFailed):
		// Pool stays in ExecutionPhase; the next cycle retries.
		logger.Error("settlement transfer failed",
			"event", "pool_settlement_transfer_failed",
			"module", "pool-coordination/pool-engine",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	default:
		logger.Error("settlement cycle failed",
			"event", "pool_settlement_cycle_failed",
			"module", "pool-coordination/pool-engine",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	if result.Winner != nil {
		logger.Info("settlement executed",
			"event", "pool_settlement_executed",
			"module", "pool-coordination/pool-engine",
			"layer", "worker",
			"proposal_id", result.Winner.ID,
			"distributed", result.Distributed,
		)
	} else {
		logger.Info("settlement completed without winner",
			"event", "pool_settlement_no_winner",
			"module", "pool-coordination/pool-engine",
			"layer", "worker",
			"votes_cast", result.VotesCast,
			"quorum_required", result.QuorumRequired,
		)
	}
	return nil
}
