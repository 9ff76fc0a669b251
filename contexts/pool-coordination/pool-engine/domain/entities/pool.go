package entities

import (
	"strings"
	"time"

	domainerrors "fundpool/contexts/pool-coordination/pool-engine/domain/errors"
)

// Phase is the lifecycle position of the pool. It is derived from the stored
// deadlines and the completion marker on every call, never cached, so a late
// call observes the phase the clock says it is in.
type Phase string

const (
	PhaseUninitialized Phase = "uninitialized"
	PhaseContribution  Phase = "contribution"
	PhaseVoting        Phase = "voting"
	PhaseExecution     Phase = "execution"
	PhaseCompleted     Phase = "completed"
)

const (
	MaxDestinationLength = 128
	MaxDescriptionLength = 512
)

// PoolParams is immutable after initialization. Amounts are satoshis.
type PoolParams struct {
	MinContribution      uint64
	MaxContribution      uint64
	ContributionDeadline time.Time
	VotingDeadline       time.Time
	ProposalThreshold    uint64
	VotingThreshold      uint64
	QuorumPercentage     uint8
}

func (p PoolParams) Validate() error {
	if p.MinContribution > p.MaxContribution {
		return domainerrors.ErrInvalidParameters
	}
	if p.QuorumPercentage > 100 {
		return domainerrors.ErrInvalidParameters
	}
	if p.ContributionDeadline.IsZero() || p.VotingDeadline.IsZero() {
		return domainerrors.ErrInvalidParameters
	}
	if !p.VotingDeadline.After(p.ContributionDeadline) {
		return domainerrors.ErrInvalidParameters
	}
	return nil
}

// ContributionRecord is the per-participant ledger entry. Amount only grows
// during the contribution phase and is zeroed at most once, by an emergency
// withdrawal or a post-completion refund.
type ContributionRecord struct {
	ParticipantID string
	Amount        uint64
	Withdrawn     bool
	Refunded      bool
	Voted         bool
	FirstSeenAt   time.Time
	UpdatedAt     time.Time
}

// Proposal is immutable once created except for the vote weight tally.
type Proposal struct {
	ID          uint64
	ProposerID  string
	Destination string
	Description string
	VoteWeight  uint64
	SubmittedAt time.Time
}

// PoolTotals tracks conservation:
// Held == Contributed - Withdrawn - Refunded at every point in time.
type PoolTotals struct {
	Contributed uint64
	Withdrawn   uint64
	Refunded    uint64
	Held        uint64
	Distributed uint64
}

// Pool is the single aggregate the state machine owns. Every mutating method
// validates all preconditions against current state before touching anything,
// so a failed call leaves the aggregate exactly as it was.
type Pool struct {
	Params         *PoolParams
	Ledger         map[string]ContributionRecord
	Proposals      []Proposal
	NextProposalID uint64
	Totals         PoolTotals
	Completed      bool
	WinnerID       *uint64
	CompletedAt    *time.Time
}

func NewPool() Pool {
	return Pool{
		Ledger:         make(map[string]ContributionRecord),
		NextProposalID: 1,
	}
}

// PhaseAt derives the current phase. Completed is absorbing; before that the
// phase follows the clock against the stored deadlines.
func (p *Pool) PhaseAt(now time.Time) Phase {
	if p.Params == nil {
		return PhaseUninitialized
	}
	if p.Completed {
		return PhaseCompleted
	}
	if now.Before(p.Params.ContributionDeadline) {
		return PhaseContribution
	}
	if now.Before(p.Params.VotingDeadline) {
		return PhaseVoting
	}
	return PhaseExecution
}

func (p *Pool) Initialize(params PoolParams) error {
	if p.Params != nil {
		return domainerrors.ErrAlreadyInitialized
	}
	if err := params.Validate(); err != nil {
		return err
	}
	stored := params
	p.Params = &stored
	if p.Ledger == nil {
		p.Ledger = make(map[string]ContributionRecord)
	}
	if p.NextProposalID == 0 {
		p.NextProposalID = 1
	}
	p.Totals = PoolTotals{}
	return nil
}

// Contribute adds amount to the participant's running total. The bounds apply
// to the cumulative total, not the individual call: the minimum is a floor on
// the running total and the maximum a ceiling.
func (p *Pool) Contribute(participantID string, amount uint64, now time.Time) (ContributionRecord, error) {
	participantID = strings.TrimSpace(participantID)
	switch p.PhaseAt(now) {
	case PhaseUninitialized:
		return ContributionRecord{}, domainerrors.ErrNotInitialized
	case PhaseContribution:
	default:
		return ContributionRecord{}, domainerrors.ErrPhase
	}
	if participantID == "" {
		return ContributionRecord{}, domainerrors.ErrInvalidParameters
	}
	if amount == 0 {
		return ContributionRecord{}, domainerrors.ErrZeroAmount
	}

	record, exists := p.Ledger[participantID]
	if record.Withdrawn {
		return ContributionRecord{}, domainerrors.ErrAlreadyWithdrawn
	}
	newTotal := record.Amount + amount
	if newTotal < record.Amount {
		return ContributionRecord{}, domainerrors.ErrContributionLimit
	}
	if newTotal < p.Params.MinContribution || newTotal > p.Params.MaxContribution {
		return ContributionRecord{}, domainerrors.ErrContributionLimit
	}

	if !exists {
		record.ParticipantID = participantID
		record.FirstSeenAt = now
	}
	record.Amount = newTotal
	record.UpdatedAt = now
	p.Ledger[participantID] = record
	p.Totals.Contributed += amount
	p.Totals.Held += amount
	return record, nil
}

// SubmitProposal registers a payout destination. Ids are assigned
// monotonically starting at 1 and never reused.
func (p *Pool) SubmitProposal(proposerID, destination, description string, now time.Time) (Proposal, error) {
	proposerID = strings.TrimSpace(proposerID)
	destination = strings.TrimSpace(destination)
	switch p.PhaseAt(now) {
	case PhaseUninitialized:
		return Proposal{}, domainerrors.ErrNotInitialized
	case PhaseVoting:
	default:
		return Proposal{}, domainerrors.ErrPhase
	}
	record := p.Ledger[proposerID]
	if record.Withdrawn || record.Amount < p.Params.ProposalThreshold {
		return Proposal{}, domainerrors.ErrInsufficientContribution
	}
	if destination == "" || len(destination) > MaxDestinationLength {
		return Proposal{}, domainerrors.ErrInvalidProposalData
	}
	if len(description) > MaxDescriptionLength {
		return Proposal{}, domainerrors.ErrInvalidProposalData
	}

	proposal := Proposal{
		ID:          p.NextProposalID,
		ProposerID:  proposerID,
		Destination: destination,
		Description: description,
		SubmittedAt: now,
	}
	p.NextProposalID++
	p.Proposals = append(p.Proposals, proposal)
	return proposal, nil
}

// CastVote records the participant's single lifetime vote and adds their full
// contribution amount to the target proposal's tally.
func (p *Pool) CastVote(voterID string, proposalID uint64, now time.Time) (Proposal, error) {
	voterID = strings.TrimSpace(voterID)
	switch p.PhaseAt(now) {
	case PhaseUninitialized:
		return Proposal{}, domainerrors.ErrNotInitialized
	case PhaseVoting:
	default:
		return Proposal{}, domainerrors.ErrPhase
	}
	record := p.Ledger[voterID]
	if record.Withdrawn || record.Amount < p.Params.VotingThreshold {
		return Proposal{}, domainerrors.ErrInsufficientContribution
	}
	if record.Voted {
		return Proposal{}, domainerrors.ErrAlreadyVoted
	}
	idx := p.proposalIndex(proposalID)
	if idx < 0 {
		return Proposal{}, domainerrors.ErrProposalNotFound
	}

	record.Voted = true
	record.UpdatedAt = now
	p.Ledger[voterID] = record
	p.Proposals[idx].VoteWeight += record.Amount
	return p.Proposals[idx], nil
}

// EmergencyWithdraw returns the participant's full contribution and
// permanently removes their voting and proposal eligibility. It is gated on
// the derived phase, so once the contribution deadline passes the exit is
// closed even if no call has observed the voting phase yet.
func (p *Pool) EmergencyWithdraw(participantID string, now time.Time) (uint64, error) {
	participantID = strings.TrimSpace(participantID)
	switch p.PhaseAt(now) {
	case PhaseUninitialized:
		return 0, domainerrors.ErrNotInitialized
	case PhaseContribution:
	default:
		return 0, domainerrors.ErrPhase
	}
	record, exists := p.Ledger[participantID]
	if record.Withdrawn {
		return 0, domainerrors.ErrAlreadyWithdrawn
	}
	if !exists || record.Amount == 0 {
		return 0, domainerrors.ErrNothingToWithdraw
	}

	amount := record.Amount
	record.Amount = 0
	record.Withdrawn = true
	record.UpdatedAt = now
	p.Ledger[participantID] = record
	p.Totals.Withdrawn += amount
	p.Totals.Held -= amount
	return amount, nil
}

// PrepareExecution validates the execution gate and resolves the winner
// without mutating anything. The caller performs the external transfer and
// then applies CompleteExecution, so a failed transfer leaves the pool in
// ExecutionPhase and the call can be retried.
func (p *Pool) PrepareExecution(now time.Time) (DistributionResult, error) {
	switch p.PhaseAt(now) {
	case PhaseUninitialized:
		return DistributionResult{}, domainerrors.ErrNotInitialized
	case PhaseCompleted:
		return DistributionResult{}, domainerrors.ErrAlreadyExecuted
	case PhaseExecution:
	default:
		return DistributionResult{}, domainerrors.ErrPhase
	}
	return Resolve(p), nil
}

// CompleteExecution marks the pool completed. winnerID nil means the pool
// completed without a winner and funds stay claimable through refunds.
func (p *Pool) CompleteExecution(winnerID *uint64, now time.Time) {
	if winnerID != nil {
		id := *winnerID
		p.WinnerID = &id
		p.Totals.Distributed = p.Totals.Held
	}
	p.Completed = true
	completedAt := now
	p.CompletedAt = &completedAt
}

// RefundableAmount validates a no-winner refund claim without mutating state.
func (p *Pool) RefundableAmount(participantID string, now time.Time) (uint64, error) {
	participantID = strings.TrimSpace(participantID)
	if p.Params == nil {
		return 0, domainerrors.ErrNotInitialized
	}
	if !p.Completed || p.WinnerID != nil {
		return 0, domainerrors.ErrRefundNotAvailable
	}
	record, exists := p.Ledger[participantID]
	if record.Refunded {
		return 0, domainerrors.ErrAlreadyRefunded
	}
	if !exists || record.Withdrawn || record.Amount == 0 {
		return 0, domainerrors.ErrNothingToWithdraw
	}
	return record.Amount, nil
}

// MarkRefunded applies a refund previously validated with RefundableAmount.
func (p *Pool) MarkRefunded(participantID string, now time.Time) (uint64, error) {
	amount, err := p.RefundableAmount(participantID, now)
	if err != nil {
		return 0, err
	}
	participantID = strings.TrimSpace(participantID)
	record := p.Ledger[participantID]
	record.Amount = 0
	record.Refunded = true
	record.UpdatedAt = now
	p.Ledger[participantID] = record
	p.Totals.Refunded += amount
	p.Totals.Held -= amount
	return amount, nil
}

// ProposalByID returns a copy of the proposal, if present.
func (p *Pool) ProposalByID(proposalID uint64) (Proposal, bool) {
	idx := p.proposalIndex(proposalID)
	if idx < 0 {
		return Proposal{}, false
	}
	return p.Proposals[idx], true
}

// WinningProposal returns the stored winner once execution completed with one.
func (p *Pool) WinningProposal() (Proposal, bool) {
	if p.WinnerID == nil {
		return Proposal{}, false
	}
	return p.ProposalByID(*p.WinnerID)
}

// ActiveContributors counts ledger entries that still hold funds.
func (p *Pool) ActiveContributors() int {
	count := 0
	for _, record := range p.Ledger {
		if !record.Withdrawn && !record.Refunded && record.Amount > 0 {
			count++
		}
	}
	return count
}

// VotesCast counts participants whose lifetime vote has been used.
func (p *Pool) VotesCast() int {
	count := 0
	for _, record := range p.Ledger {
		if record.Voted {
			count++
		}
	}
	return count
}

// Clone deep-copies the aggregate so adapters can hand out mutable snapshots.
func (p *Pool) Clone() Pool {
	clone := *p
	clone.Ledger = make(map[string]ContributionRecord, len(p.Ledger))
	for id, record := range p.Ledger {
		clone.Ledger[id] = record
	}
	clone.Proposals = append([]Proposal(nil), p.Proposals...)
	if p.Params != nil {
		params := *p.Params
		clone.Params = &params
	}
	if p.WinnerID != nil {
		id := *p.WinnerID
		clone.WinnerID = &id
	}
	if p.CompletedAt != nil {
		at := *p.CompletedAt
		clone.CompletedAt = &at
	}
	return clone
}

func (p *Pool) proposalIndex(proposalID uint64) int {
	for i := range p.Proposals {
		if p.Proposals[i].ID == proposalID {
			return i
		}
	}
	return -1
}
