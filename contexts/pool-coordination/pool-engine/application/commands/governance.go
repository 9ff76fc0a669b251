package commands

import (
	"context"
	"strings"

	application "fundpool/contexts/pool-coordination/pool-engine/application"
	"fundpool/contexts/pool-coordination/pool-engine/domain/entities"
	"fundpool/contexts/pool-coordination/pool-engine/ports"
)

// SubmitProposalCommand registers a payout destination during VotingPhase.
type SubmitProposalCommand struct {
	ProposerID  string
	Destination string
	Description string
}

// CastVoteCommand spends the participant's single lifetime vote.
type CastVoteCommand struct {
	VoterID    string
	ProposalID uint64
}

// SubmitProposal validates proposer eligibility and appends the proposal to
// the registry, returning the assigned id.
func (uc PoolUseCase) SubmitProposal(ctx context.Context, cmd SubmitProposalCommand) (entities.Proposal, error) {
	logger := application.ResolveLogger(uc.Logger)
	pool, err := uc.Pool.Load(ctx)
	if err != nil {
		return entities.Proposal{}, err
	}

	now := uc.now()
	proposal, err := pool.SubmitProposal(cmd.ProposerID, cmd.Destination, cmd.Description, now)
	if err != nil {
		logger.Warn("proposal rejected",
			"event", "pool_proposal_rejected",
			"module", "pool-coordination/pool-engine",
			"layer", "application",
			"proposer_id", strings.TrimSpace(cmd.ProposerID),
			"error", err.Error(),
		)
		return entities.Proposal{}, err
	}

	message, err := uc.outboxMessage(ctx, EventProposalSubmitted, now, ProposalSubmittedPayload{
		ProposalID:  proposal.ID,
		ProposerID:  proposal.ProposerID,
		Destination: proposal.Destination,
	})
	if err != nil {
		return entities.Proposal{}, err
	}
	if err := uc.Pool.Save(ctx, pool, []ports.OutboxMessage{message}); err != nil {
		return entities.Proposal{}, err
	}

	logger.Info("proposal submitted",
		"event", "pool_proposal_submitted",
		"module", "pool-coordination/pool-engine",
		"layer", "application",
		"proposal_id", proposal.ID,
		"proposer_id", proposal.ProposerID,
	)
	return proposal, nil
}

// CastVote sets the voter's lifetime vote flag and adds their full
// contribution weight to the target proposal's tally.
func (uc PoolUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (entities.Proposal, error) {
	logger := application.ResolveLogger(uc.Logger)
	pool, err := uc.Pool.Load(ctx)
	if err != nil {
		return entities.Proposal{}, err
	}

	now := uc.now()
	voterID := strings.TrimSpace(cmd.VoterID)
	weightBefore := pool.Ledger[voterID].Amount
	proposal, err := pool.CastVote(cmd.VoterID, cmd.ProposalID, now)
	if err != nil {
		logger.Warn("vote rejected",
			"event", "pool_vote_rejected",
			"module", "pool-coordination/pool-engine",
			"layer", "application",
			"voter_id", voterID,
			"proposal_id", cmd.ProposalID,
			"error", err.Error(),
		)
		return entities.Proposal{}, err
	}

	message, err := uc.outboxMessage(ctx, EventVoteCast, now, VoteCastPayload{
		VoterID:    voterID,
		ProposalID: proposal.ID,
		Weight:     weightBefore,
		NewTally:   proposal.VoteWeight,
	})
	if err != nil {
		return entities.Proposal{}, err
	}
	if err := uc.Pool.Save(ctx, pool, []ports.OutboxMessage{message}); err != nil {
		return entities.Proposal{}, err
	}

	logger.Info("vote cast",
		"event", "pool_vote_cast",
		"module", "pool-coordination/pool-engine",
		"layer", "application",
		"voter_id", voterID,
		"proposal_id", proposal.ID,
		"weight", weightBefore,
		"new_tally", proposal.VoteWeight,
	)
	return proposal, nil
}
