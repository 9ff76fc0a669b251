package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Deadlines travel as unix seconds; amounts are satoshis.
type InitializePoolRequest struct {
	MinContribution      uint64 `json:"min_contribution"`
	MaxContribution      uint64 `json:"max_contribution"`
	ContributionDeadline int64  `json:"contribution_deadline"`
	VotingDeadline       int64  `json:"voting_deadline"`
	ProposalThreshold    uint64 `json:"proposal_threshold"`
	VotingThreshold      uint64 `json:"voting_threshold"`
	QuorumPercentage     uint8  `json:"quorum_percentage"`
}

type ContributeRequest struct {
	Amount uint64 `json:"amount"`
}

type ContributionResponse struct {
	ParticipantID string `json:"participant_id"`
	Amount        uint64 `json:"amount"`
	Withdrawn     bool   `json:"withdrawn"`
	Refunded      bool   `json:"refunded"`
	Voted         bool   `json:"voted"`
	PoolHeld      uint64 `json:"pool_held"`
}

type SubmitProposalRequest struct {
	Destination string `json:"destination"`
	Description string `json:"description"`
}

type ProposalResponse struct {
	ProposalID  uint64 `json:"proposal_id"`
	ProposerID  string `json:"proposer_id"`
	Destination string `json:"destination"`
	Description string `json:"description"`
	VoteWeight  uint64 `json:"vote_weight"`
	SubmittedAt int64  `json:"submitted_at"`
}

type ProposalListResponse struct {
	Items []ProposalResponse `json:"items"`
}

type CastVoteRequest struct {
	ProposalID uint64 `json:"proposal_id"`
}

type VoteResponse struct {
	VoterID    string `json:"voter_id"`
	ProposalID uint64 `json:"proposal_id"`
	NewTally   uint64 `json:"new_tally"`
}

type WithdrawResponse struct {
	ParticipantID string `json:"participant_id"`
	Amount        uint64 `json:"amount"`
	PoolHeld      uint64 `json:"pool_held"`
}

type ClaimRefundRequest struct {
	Destination string `json:"destination"`
}

type RefundResponse struct {
	ParticipantID string `json:"participant_id"`
	Destination   string `json:"destination"`
	Amount        uint64 `json:"amount"`
	PoolHeld      uint64 `json:"pool_held"`
}

type ExecuteResponse struct {
	Completed        bool    `json:"completed"`
	WinnerProposalID *uint64 `json:"winner_proposal_id,omitempty"`
	Destination      string  `json:"destination,omitempty"`
	Distributed      uint64  `json:"distributed"`
	VotesCast        uint64  `json:"votes_cast"`
	QuorumRequired   uint64  `json:"quorum_required"`
}

type PoolInfoResponse struct {
	Phase                string  `json:"phase"`
	TotalContributed     uint64  `json:"total_contributed"`
	TotalHeld            uint64  `json:"total_held"`
	TotalWithdrawn       uint64  `json:"total_withdrawn"`
	TotalRefunded        uint64  `json:"total_refunded"`
	TotalDistributed     uint64  `json:"total_distributed"`
	Contributors         int     `json:"contributors"`
	Proposals            int     `json:"proposals"`
	VotesCast            int     `json:"votes_cast"`
	ContributionDeadline int64   `json:"contribution_deadline"`
	VotingDeadline       int64   `json:"voting_deadline"`
	WinnerProposalID     *uint64 `json:"winner_proposal_id,omitempty"`
}

type WinnerResponse struct {
	Found    bool              `json:"found"`
	Proposal *ProposalResponse `json:"proposal,omitempty"`
}
