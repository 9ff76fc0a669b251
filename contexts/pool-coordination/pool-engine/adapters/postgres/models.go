package postgresadapter

import (
	"time"

	"fundpool/contexts/pool-coordination/pool-engine/domain/entities"
	"fundpool/contexts/pool-coordination/pool-engine/ports"
)

type poolModel struct {
	ID                   string     `gorm:"column:id;primaryKey"`
	Initialized          bool       `gorm:"column:initialized"`
	MinContribution      uint64     `gorm:"column:min_contribution"`
	MaxContribution      uint64     `gorm:"column:max_contribution"`
	ContributionDeadline *time.Time `gorm:"column:contribution_deadline"`
	VotingDeadline       *time.Time `gorm:"column:voting_deadline"`
	ProposalThreshold    uint64     `gorm:"column:proposal_threshold"`
	VotingThreshold      uint64     `gorm:"column:voting_threshold"`
	QuorumPercentage     uint8      `gorm:"column:quorum_percentage"`
	TotalContributed     uint64     `gorm:"column:total_contributed"`
	TotalWithdrawn       uint64     `gorm:"column:total_withdrawn"`
	TotalRefunded        uint64     `gorm:"column:total_refunded"`
	TotalHeld            uint64     `gorm:"column:total_held"`
	TotalDistributed     uint64     `gorm:"column:total_distributed"`
	NextProposalID       uint64     `gorm:"column:next_proposal_id"`
	Completed            bool       `gorm:"column:completed"`
	WinnerProposalID     *uint64    `gorm:"column:winner_proposal_id"`
	CompletedAt          *time.Time `gorm:"column:completed_at"`
	UpdatedAt            time.Time  `gorm:"column:updated_at"`
}

func (poolModel) TableName() string {
	return "pool_state"
}

type contributionModel struct {
	ParticipantID string    `gorm:"column:participant_id;primaryKey"`
	Amount        uint64    `gorm:"column:amount"`
	Withdrawn     bool      `gorm:"column:withdrawn"`
	Refunded      bool      `gorm:"column:refunded"`
	Voted         bool      `gorm:"column:voted"`
	FirstSeenAt   time.Time `gorm:"column:first_seen_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (contributionModel) TableName() string {
	return "pool_contributions"
}

type proposalModel struct {
	ID          uint64    `gorm:"column:id;primaryKey"`
	ProposerID  string    `gorm:"column:proposer_id"`
	Destination string    `gorm:"column:destination"`
	Description string    `gorm:"column:description"`
	VoteWeight  uint64    `gorm:"column:vote_weight"`
	SubmittedAt time.Time `gorm:"column:submitted_at"`
}

func (proposalModel) TableName() string {
	return "pool_proposals"
}

type outboxModel struct {
	ID           string     `gorm:"column:id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "pool_outbox"
}

func poolModelFromEntity(pool entities.Pool) poolModel {
	row := poolModel{
		ID:               poolRowID,
		Initialized:      pool.Params != nil,
		TotalContributed: pool.Totals.Contributed,
		TotalWithdrawn:   pool.Totals.Withdrawn,
		TotalRefunded:    pool.Totals.Refunded,
		TotalHeld:        pool.Totals.Held,
		TotalDistributed: pool.Totals.Distributed,
		NextProposalID:   pool.NextProposalID,
		Completed:        pool.Completed,
		WinnerProposalID: pool.WinnerID,
		CompletedAt:      pool.CompletedAt,
		UpdatedAt:        time.Now().UTC(),
	}
	if pool.Params != nil {
		contributionDeadline := pool.Params.ContributionDeadline
		votingDeadline := pool.Params.VotingDeadline
		row.MinContribution = pool.Params.MinContribution
		row.MaxContribution = pool.Params.MaxContribution
		row.ContributionDeadline = &contributionDeadline
		row.VotingDeadline = &votingDeadline
		row.ProposalThreshold = pool.Params.ProposalThreshold
		row.VotingThreshold = pool.Params.VotingThreshold
		row.QuorumPercentage = pool.Params.QuorumPercentage
	}
	return row
}

func contributionModelsFromEntity(pool entities.Pool) []contributionModel {
	rows := make([]contributionModel, 0, len(pool.Ledger))
	for _, record := range pool.Ledger {
		rows = append(rows, contributionModel{
			ParticipantID: record.ParticipantID,
			Amount:        record.Amount,
			Withdrawn:     record.Withdrawn,
			Refunded:      record.Refunded,
			Voted:         record.Voted,
			FirstSeenAt:   record.FirstSeenAt,
			UpdatedAt:     record.UpdatedAt,
		})
	}
	return rows
}

func proposalModelsFromEntity(pool entities.Pool) []proposalModel {
	rows := make([]proposalModel, 0, len(pool.Proposals))
	for _, proposal := range pool.Proposals {
		rows = append(rows, proposalModel{
			ID:          proposal.ID,
			ProposerID:  proposal.ProposerID,
			Destination: proposal.Destination,
			Description: proposal.Description,
			VoteWeight:  proposal.VoteWeight,
			SubmittedAt: proposal.SubmittedAt,
		})
	}
	return rows
}

func outboxModelsFromMessages(messages []ports.OutboxMessage) []outboxModel {
	rows := make([]outboxModel, 0, len(messages))
	for _, message := range messages {
		rows = append(rows, outboxModel{
			ID:           message.OutboxID,
			EventType:    message.EventType,
			PartitionKey: message.PartitionKey,
			Payload:      message.Payload,
			Status:       outboxStatusPending,
			CreatedAt:    message.CreatedAt,
		})
	}
	return rows
}

func assemblePool(row poolModel, contributionRows []contributionModel, proposalRows []proposalModel) entities.Pool {
	pool := entities.NewPool()
	if row.Initialized && row.ContributionDeadline != nil && row.VotingDeadline != nil {
		pool.Params = &entities.PoolParams{
			MinContribution:      row.MinContribution,
			MaxContribution:      row.MaxContribution,
			ContributionDeadline: *row.ContributionDeadline,
			VotingDeadline:       *row.VotingDeadline,
			ProposalThreshold:    row.ProposalThreshold,
			VotingThreshold:      row.VotingThreshold,
			QuorumPercentage:     row.QuorumPercentage,
		}
	}
	pool.Totals = entities.PoolTotals{
		Contributed: row.TotalContributed,
		Withdrawn:   row.TotalWithdrawn,
		Refunded:    row.TotalRefunded,
		Held:        row.TotalHeld,
		Distributed: row.TotalDistributed,
	}
	if row.NextProposalID > 0 {
		pool.NextProposalID = row.NextProposalID
	}
	pool.Completed = row.Completed
	pool.WinnerID = row.WinnerProposalID
	pool.CompletedAt = row.CompletedAt

	for _, record := range contributionRows {
		pool.Ledger[record.ParticipantID] = entities.ContributionRecord{
			ParticipantID: record.ParticipantID,
			Amount:        record.Amount,
			Withdrawn:     record.Withdrawn,
			Refunded:      record.Refunded,
			Voted:         record.Voted,
			FirstSeenAt:   record.FirstSeenAt,
			UpdatedAt:     record.UpdatedAt,
		}
	}
	for _, proposal := range proposalRows {
		pool.Proposals = append(pool.Proposals, entities.Proposal{
			ID:          proposal.ID,
			ProposerID:  proposal.ProposerID,
			Destination: proposal.Destination,
			Description: proposal.Description,
			VoteWeight:  proposal.VoteWeight,
			SubmittedAt: proposal.SubmittedAt,
		})
	}
	return pool
}
