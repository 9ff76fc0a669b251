package commands

import (
	"context"
	"encoding/json"
	"time"

	"fundpool/contexts/pool-coordination/pool-engine/ports"
	"fundpool/internal/shared/events"
)

const (
	EventPoolInitialized      = "pool.initialized"
	EventContributionRecorded = "pool.contribution.recorded"
	EventProposalSubmitted    = "pool.proposal.submitted"
	EventVoteCast             = "pool.vote.cast"
	EventWithdrawalCompleted  = "pool.withdrawal.completed"
	EventPoolCompleted        = "pool.completed"
	EventRefundClaimed        = "pool.refund.claimed"

	poolEntityType = "pool"
	poolEntityID   = "pool"
)

type PoolInitializedPayload struct {
	MinContribution      uint64 `json:"min_contribution"`
	MaxContribution      uint64 `json:"max_contribution"`
	ContributionDeadline int64  `json:"contribution_deadline"`
	VotingDeadline       int64  `json:"voting_deadline"`
	ProposalThreshold    uint64 `json:"proposal_threshold"`
	VotingThreshold      uint64 `json:"voting_threshold"`
	QuorumPercentage     uint8  `json:"quorum_percentage"`
}

type ContributionRecordedPayload struct {
	ParticipantID string `json:"participant_id"`
	Amount        uint64 `json:"amount"`
	NewTotal      uint64 `json:"new_total"`
	PoolHeld      uint64 `json:"pool_held"`
}

type ProposalSubmittedPayload struct {
	ProposalID  uint64 `json:"proposal_id"`
	ProposerID  string `json:"proposer_id"`
	Destination string `json:"destination"`
}

type VoteCastPayload struct {
	VoterID    string `json:"voter_id"`
	ProposalID uint64 `json:"proposal_id"`
	Weight     uint64 `json:"weight"`
	NewTally   uint64 `json:"new_tally"`
}

type WithdrawalCompletedPayload struct {
	ParticipantID string `json:"participant_id"`
	Amount        uint64 `json:"amount"`
	PoolHeld      uint64 `json:"pool_held"`
}

type PoolCompletedPayload struct {
	WinnerProposalID *uint64 `json:"winner_proposal_id,omitempty"`
	Destination      string  `json:"destination,omitempty"`
	Distributed      uint64  `json:"distributed"`
	VotesCast        uint64  `json:"votes_cast"`
	QuorumRequired   uint64  `json:"quorum_required"`
}

type RefundClaimedPayload struct {
	ParticipantID string `json:"participant_id"`
	Destination   string `json:"destination"`
	Amount        uint64 `json:"amount"`
}

func (uc PoolUseCase) outboxMessage(ctx context.Context, eventType string, occurredAt time.Time, payload any) (ports.OutboxMessage, error) {
	eventID, err := uc.newID(ctx)
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	outboxID, err := uc.newID(ctx)
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	envelope := events.Envelope{
		EventID:        eventID,
		EventType:      eventType,
		SourceService:  uc.Source,
		OccurredAtUTC:  occurredAt.UTC(),
		EntityType:     poolEntityType,
		EntityID:       poolEntityID,
		PayloadVersion: 1,
		Payload:        payload,
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	return ports.OutboxMessage{
		OutboxID:     outboxID,
		EventType:    eventType,
		PartitionKey: poolEntityID,
		Payload:      body,
		CreatedAt:    occurredAt.UTC(),
	}, nil
}
