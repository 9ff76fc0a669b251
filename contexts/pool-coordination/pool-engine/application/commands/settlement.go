package commands

import (
	"context"
	"fmt"
	"strings"

	application "fundpool/contexts/pool-coordination/pool-engine/application"
	"fundpool/contexts/pool-coordination/pool-engine/domain/entities"
	domainerrors "fundpool/contexts/pool-coordination/pool-engine/domain/errors"
	"fundpool/contexts/pool-coordination/pool-engine/ports"
)

// ExecuteResult reports the outcome of the distribution step.
type ExecuteResult struct {
	Winner         *entities.Proposal
	Distributed    uint64
	VotesCast      uint64
	QuorumRequired uint64
}

// ClaimRefundCommand claims a post-completion refund when the pool ended
// without a winner. Destination is supplied by the claimant; the host
// validates the address format.
type ClaimRefundCommand struct {
	ParticipantID string
	Destination   string
}

// ExecuteTransfer resolves the winner once the derived phase reaches
// ExecutionPhase. With a winner it requests the outbound transfer of the full
// held balance before recording completion, so an emitter failure leaves the
// pool in ExecutionPhase and the call can be retried. Without a winner the
// pool still completes, leaving funds claimable through refunds.
func (uc PoolUseCase) ExecuteTransfer(ctx context.Context) (ExecuteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	pool, err := uc.Pool.Load(ctx)
	if err != nil {
		return ExecuteResult{}, err
	}

	now := uc.now()
	resolution, err := pool.PrepareExecution(now)
	if err != nil {
		logger.Warn("transfer execution rejected",
			"event", "pool_execute_rejected",
			"module", "pool-coordination/pool-engine",
			"layer", "application",
			"error", err.Error(),
		)
		return ExecuteResult{}, err
	}

	result := ExecuteResult{
		VotesCast:      resolution.VotesCast,
		QuorumRequired: resolution.QuorumRequired,
	}
	payload := PoolCompletedPayload{
		VotesCast:      resolution.VotesCast,
		QuorumRequired: resolution.QuorumRequired,
	}

	if resolution.Winner != nil {
		amount := pool.Totals.Held
		if err := uc.Transfers.RequestTransfer(ctx, resolution.Winner.Destination, amount); err != nil {
			logger.Error("transfer emission failed",
				"event", "pool_transfer_emission_failed",
				"module", "pool-coordination/pool-engine",
				"layer", "application",
				"proposal_id", resolution.Winner.ID,
				"amount", amount,
				"error", err.Error(),
			)
			return ExecuteResult{}, fmt.Errorf("%w: %v", domainerrors.ErrTransferFailed, err)
		}
		winnerID := resolution.Winner.ID
		pool.CompleteExecution(&winnerID, now)

		result.Winner = resolution.Winner
		result.Distributed = amount
		payload.WinnerProposalID = &winnerID
		payload.Destination = resolution.Winner.Destination
		payload.Distributed = amount
	} else {
		pool.CompleteExecution(nil, now)
	}

	message, err := uc.outboxMessage(ctx, EventPoolCompleted, now, payload)
	if err != nil {
		return ExecuteResult{}, err
	}
	if err := uc.Pool.Save(ctx, pool, []ports.OutboxMessage{message}); err != nil {
		return ExecuteResult{}, err
	}

	if result.Winner != nil {
		logger.Info("pool completed with winner",
			"event", "pool_completed",
			"module", "pool-coordination/pool-engine",
			"layer", "application",
			"proposal_id", result.Winner.ID,
			"distributed", result.Distributed,
			"votes_cast", result.VotesCast,
			"quorum_required", result.QuorumRequired,
		)
	} else {
		logger.Info("pool completed without winner",
			"event", "pool_completed_no_winner",
			"module", "pool-coordination/pool-engine",
			"layer", "application",
			"votes_cast", result.VotesCast,
			"quorum_required", result.QuorumRequired,
		)
	}
	return result, nil
}

// ClaimRefund pays a contributor back after a no-winner completion. The
// transfer is requested before the ledger is marked, mirroring
// ExecuteTransfer's failure handling.
func (uc PoolUseCase) ClaimRefund(ctx context.Context, cmd ClaimRefundCommand) (WithdrawResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	destination := strings.TrimSpace(cmd.Destination)
	if destination == "" {
		return WithdrawResult{}, domainerrors.ErrInvalidParameters
	}

	pool, err := uc.Pool.Load(ctx)
	if err != nil {
		return WithdrawResult{}, err
	}

	now := uc.now()
	amount, err := pool.RefundableAmount(cmd.ParticipantID, now)
	if err != nil {
		logger.Warn("refund claim rejected",
			"event", "pool_refund_rejected",
			"module", "pool-coordination/pool-engine",
			"layer", "application",
			"participant_id", strings.TrimSpace(cmd.ParticipantID),
			"error", err.Error(),
		)
		return WithdrawResult{}, err
	}
	if err := uc.Transfers.RequestTransfer(ctx, destination, amount); err != nil {
		logger.Error("refund emission failed",
			"event", "pool_refund_emission_failed",
			"module", "pool-coordination/pool-engine",
			"layer", "application",
			"participant_id", strings.TrimSpace(cmd.ParticipantID),
			"amount", amount,
			"error", err.Error(),
		)
		return WithdrawResult{}, fmt.Errorf("%w: %v", domainerrors.ErrTransferFailed, err)
	}
	if _, err := pool.MarkRefunded(cmd.ParticipantID, now); err != nil {
		return WithdrawResult{}, err
	}

	message, err := uc.outboxMessage(ctx, EventRefundClaimed, now, RefundClaimedPayload{
		ParticipantID: strings.TrimSpace(cmd.ParticipantID),
		Destination:   destination,
		Amount:        amount,
	})
	if err != nil {
		return WithdrawResult{}, err
	}
	if err := uc.Pool.Save(ctx, pool, []ports.OutboxMessage{message}); err != nil {
		return WithdrawResult{}, err
	}

	logger.Info("refund claimed",
		"event", "pool_refund_claimed",
		"module", "pool-coordination/pool-engine",
		"layer", "application",
		"participant_id", strings.TrimSpace(cmd.ParticipantID),
		"amount", amount,
		"pool_held", pool.Totals.Held,
	)
	return WithdrawResult{Amount: amount, Totals: pool.Totals}, nil
}
