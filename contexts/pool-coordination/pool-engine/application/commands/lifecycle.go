package commands

import (
	"context"
	"strings"
	"time"

	application "fundpool/contexts/pool-coordination/pool-engine/application"
	"fundpool/contexts/pool-coordination/pool-engine/domain/entities"
	"fundpool/contexts/pool-coordination/pool-engine/ports"
)

// InitializePoolCommand carries the immutable pool parameters.
type InitializePoolCommand struct {
	MinContribution      uint64
	MaxContribution      uint64
	ContributionDeadline time.Time
	VotingDeadline       time.Time
	ProposalThreshold    uint64
	VotingThreshold      uint64
	QuorumPercentage     uint8
}

// ContributeCommand adds funds to the participant's running total.
type ContributeCommand struct {
	ParticipantID string
	Amount        uint64
}

// ContributeResult reports the post-call ledger view for the participant.
type ContributeResult struct {
	Record entities.ContributionRecord
	Totals entities.PoolTotals
}

// WithdrawCommand requests an emergency withdrawal during the contribution
// phase.
type WithdrawCommand struct {
	ParticipantID string
}

// WithdrawResult reports the returned amount and the remaining pool totals.
type WithdrawResult struct {
	Amount uint64
	Totals entities.PoolTotals
}

// InitializePool moves the pool from Uninitialized to ContributionPhase.
func (uc PoolUseCase) InitializePool(ctx context.Context, cmd InitializePoolCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	pool, err := uc.Pool.Load(ctx)
	if err != nil {
		return err
	}

	now := uc.now()
	params := entities.PoolParams{
		MinContribution:      cmd.MinContribution,
		MaxContribution:      cmd.MaxContribution,
		ContributionDeadline: cmd.ContributionDeadline,
		VotingDeadline:       cmd.VotingDeadline,
		ProposalThreshold:    cmd.ProposalThreshold,
		VotingThreshold:      cmd.VotingThreshold,
		QuorumPercentage:     cmd.QuorumPercentage,
	}
	if err := pool.Initialize(params); err != nil {
		logger.Warn("pool initialization rejected",
			"event", "pool_initialize_rejected",
			"module", "pool-coordination/pool-engine",
			"layer", "application",
			"error", err.Error(),
		)
		return err
	}

	message, err := uc.outboxMessage(ctx, EventPoolInitialized, now, PoolInitializedPayload{
		MinContribution:      params.MinContribution,
		MaxContribution:      params.MaxContribution,
		ContributionDeadline: params.ContributionDeadline.Unix(),
		VotingDeadline:       params.VotingDeadline.Unix(),
		ProposalThreshold:    params.ProposalThreshold,
		VotingThreshold:      params.VotingThreshold,
		QuorumPercentage:     params.QuorumPercentage,
	})
	if err != nil {
		return err
	}
	if err := uc.Pool.Save(ctx, pool, []ports.OutboxMessage{message}); err != nil {
		return err
	}

	logger.Info("pool initialized",
		"event", "pool_initialized",
		"module", "pool-coordination/pool-engine",
		"layer", "application",
		"contribution_deadline", params.ContributionDeadline.Unix(),
		"voting_deadline", params.VotingDeadline.Unix(),
		"quorum_percentage", params.QuorumPercentage,
	)
	return nil
}

// Contribute records a contribution while the derived phase is
// ContributionPhase.
func (uc PoolUseCase) Contribute(ctx context.Context, cmd ContributeCommand) (ContributeResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	pool, err := uc.Pool.Load(ctx)
	if err != nil {
		return ContributeResult{}, err
	}

	now := uc.now()
	record, err := pool.Contribute(cmd.ParticipantID, cmd.Amount, now)
	if err != nil {
		logger.Warn("contribution rejected",
			"event", "pool_contribute_rejected",
			"module", "pool-coordination/pool-engine",
			"layer", "application",
			"participant_id", strings.TrimSpace(cmd.ParticipantID),
			"amount", cmd.Amount,
			"error", err.Error(),
		)
		return ContributeResult{}, err
	}

	message, err := uc.outboxMessage(ctx, EventContributionRecorded, now, ContributionRecordedPayload{
		ParticipantID: record.ParticipantID,
		Amount:        cmd.Amount,
		NewTotal:      record.Amount,
		PoolHeld:      pool.Totals.Held,
	})
	if err != nil {
		return ContributeResult{}, err
	}
	if err := uc.Pool.Save(ctx, pool, []ports.OutboxMessage{message}); err != nil {
		return ContributeResult{}, err
	}

	logger.Info("contribution recorded",
		"event", "pool_contribution_recorded",
		"module", "pool-coordination/pool-engine",
		"layer", "application",
		"participant_id", record.ParticipantID,
		"amount", cmd.Amount,
		"new_total", record.Amount,
		"pool_held", pool.Totals.Held,
	)
	return ContributeResult{Record: record, Totals: pool.Totals}, nil
}

// EmergencyWithdraw returns the participant's full contribution while the
// derived phase is still ContributionPhase, and permanently bars them from
// proposing or voting.
func (uc PoolUseCase) EmergencyWithdraw(ctx context.Context, cmd WithdrawCommand) (WithdrawResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	pool, err := uc.Pool.Load(ctx)
	if err != nil {
		return WithdrawResult{}, err
	}

	now := uc.now()
	amount, err := pool.EmergencyWithdraw(cmd.ParticipantID, now)
	if err != nil {
		logger.Warn("emergency withdrawal rejected",
			"event", "pool_withdraw_rejected",
			"module", "pool-coordination/pool-engine",
			"layer", "application",
			"participant_id", strings.TrimSpace(cmd.ParticipantID),
			"error", err.Error(),
		)
		return WithdrawResult{}, err
	}

	message, err := uc.outboxMessage(ctx, EventWithdrawalCompleted, now, WithdrawalCompletedPayload{
		ParticipantID: strings.TrimSpace(cmd.ParticipantID),
		Amount:        amount,
		PoolHeld:      pool.Totals.Held,
	})
	if err != nil {
		return WithdrawResult{}, err
	}
	if err := uc.Pool.Save(ctx, pool, []ports.OutboxMessage{message}); err != nil {
		return WithdrawResult{}, err
	}

	logger.Info("emergency withdrawal completed",
		"event", "pool_withdrawal_completed",
		"module", "pool-coordination/pool-engine",
		"layer", "application",
		"participant_id", strings.TrimSpace(cmd.ParticipantID),
		"amount", amount,
		"pool_held", pool.Totals.Held,
	)
	return WithdrawResult{Amount: amount, Totals: pool.Totals}, nil
}
