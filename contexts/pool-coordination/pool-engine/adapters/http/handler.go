package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"fundpool/contexts/pool-coordination/pool-engine/application/commands"
	"fundpool/contexts/pool-coordination/pool-engine/application/queries"
	"fundpool/contexts/pool-coordination/pool-engine/domain/entities"
	httptransport "fundpool/contexts/pool-coordination/pool-engine/transport/http"
)

// Handler maps transport DTOs to pool commands and queries. Identity arrives
// pre-verified from the host as a participant id; the handler trusts it.
type Handler struct {
	Commands commands.PoolUseCase
	Queries  queries.PoolQueries
	Logger   *slog.Logger
}

// InitializePoolHandler godoc
// @Summary Initialize the pool
// @Description Stores immutable pool parameters and opens the contribution phase.
// @Tags pool-engine
// @Accept json
// @Produce json
// @Param request body httptransport.InitializePoolRequest true "Pool parameters"
// @Success 201 "Pool initialized"
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /api/pool/v1/initialize [post]
func (h Handler) InitializePoolHandler(ctx context.Context, req httptransport.InitializePoolRequest) error {
	return h.Commands.InitializePool(ctx, commands.InitializePoolCommand{
		MinContribution:      req.MinContribution,
		MaxContribution:      req.MaxContribution,
		ContributionDeadline: time.Unix(req.ContributionDeadline, 0).UTC(),
		VotingDeadline:       time.Unix(req.VotingDeadline, 0).UTC(),
		ProposalThreshold:    req.ProposalThreshold,
		VotingThreshold:      req.VotingThreshold,
		QuorumPercentage:     req.QuorumPercentage,
	})
}

// ContributeHandler godoc
// @Summary Contribute to the pool
// @Description Adds the amount to the caller's cumulative contribution.
// @Tags pool-engine
// @Accept json
// @Produce json
// @Param X-Participant-Id header string true "Verified participant identity"
// @Param request body httptransport.ContributeRequest true "Contribution amount in satoshis"
// @Success 200 {object} httptransport.ContributionResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /api/pool/v1/contributions [post]
func (h Handler) ContributeHandler(ctx context.Context, participantID string, req httptransport.ContributeRequest) (httptransport.ContributionResponse, error) {
	result, err := h.Commands.Contribute(ctx, commands.ContributeCommand{
		ParticipantID: participantID,
		Amount:        req.Amount,
	})
	if err != nil {
		return httptransport.ContributionResponse{}, err
	}
	return httptransport.ContributionResponse{
		ParticipantID: result.Record.ParticipantID,
		Amount:        result.Record.Amount,
		Withdrawn:     result.Record.Withdrawn,
		Refunded:      result.Record.Refunded,
		Voted:         result.Record.Voted,
		PoolHeld:      result.Totals.Held,
	}, nil
}

// SubmitProposalHandler godoc
// @Summary Submit a payout proposal
// @Description Registers a destination address during the voting phase.
// @Tags pool-engine
// @Accept json
// @Produce json
// @Param X-Participant-Id header string true "Verified participant identity"
// @Param request body httptransport.SubmitProposalRequest true "Proposal destination and description"
// @Success 201 {object} httptransport.ProposalResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /api/pool/v1/proposals [post]
func (h Handler) SubmitProposalHandler(ctx context.Context, proposerID string, req httptransport.SubmitProposalRequest) (httptransport.ProposalResponse, error) {
	proposal, err := h.Commands.SubmitProposal(ctx, commands.SubmitProposalCommand{
		ProposerID:  proposerID,
		Destination: req.Destination,
		Description: req.Description,
	})
	if err != nil {
		return httptransport.ProposalResponse{}, err
	}
	return mapProposal(proposal), nil
}

// CastVoteHandler godoc
// @Summary Cast the caller's single lifetime vote
// @Description Adds the caller's full contribution weight to the proposal tally.
// @Tags pool-engine
// @Accept json
// @Produce json
// @Param X-Participant-Id header string true "Verified participant identity"
// @Param request body httptransport.CastVoteRequest true "Target proposal"
// @Success 200 {object} httptransport.VoteResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /api/pool/v1/votes [post]
func (h Handler) CastVoteHandler(ctx context.Context, voterID string, req httptransport.CastVoteRequest) (httptransport.VoteResponse, error) {
	proposal, err := h.Commands.CastVote(ctx, commands.CastVoteCommand{
		VoterID:    voterID,
		ProposalID: req.ProposalID,
	})
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	return httptransport.VoteResponse{
		VoterID:    voterID,
		ProposalID: proposal.ID,
		NewTally:   proposal.VoteWeight,
	}, nil
}

// WithdrawHandler godoc
// @Summary Emergency withdrawal
// @Description Returns the caller's full contribution while contributions are still open.
// @Tags pool-engine
// @Produce json
// @Param X-Participant-Id header string true "Verified participant identity"
// @Success 200 {object} httptransport.WithdrawResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /api/pool/v1/withdrawals [post]
func (h Handler) WithdrawHandler(ctx context.Context, participantID string) (httptransport.WithdrawResponse, error) {
	result, err := h.Commands.EmergencyWithdraw(ctx, commands.WithdrawCommand{ParticipantID: participantID})
	if err != nil {
		return httptransport.WithdrawResponse{}, err
	}
	return httptransport.WithdrawResponse{
		ParticipantID: participantID,
		Amount:        result.Amount,
		PoolHeld:      result.Totals.Held,
	}, nil
}

// ExecuteHandler godoc
// @Summary Execute the distribution
// @Description Resolves the winner and requests the outbound transfer once voting closed.
// @Tags pool-engine
// @Produce json
// @Success 200 {object} httptransport.ExecuteResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 502 {object} httptransport.ErrorResponse
// @Router /api/pool/v1/execute [post]
func (h Handler) ExecuteHandler(ctx context.Context) (httptransport.ExecuteResponse, error) {
	result, err := h.Commands.ExecuteTransfer(ctx)
	if err != nil {
		return httptransport.ExecuteResponse{}, err
	}
	resp := httptransport.ExecuteResponse{
		Completed:      true,
		Distributed:    result.Distributed,
		VotesCast:      result.VotesCast,
		QuorumRequired: result.QuorumRequired,
	}
	if result.Winner != nil {
		id := result.Winner.ID
		resp.WinnerProposalID = &id
		resp.Destination = result.Winner.Destination
	}
	return resp, nil
}

// ClaimRefundHandler godoc
// @Summary Claim a no-winner refund
// @Description Pays the caller's contribution back after the pool completed without a winner.
// @Tags pool-engine
// @Accept json
// @Produce json
// @Param X-Participant-Id header string true "Verified participant identity"
// @Param request body httptransport.ClaimRefundRequest true "Refund destination address"
// @Success 200 {object} httptransport.RefundResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 502 {object} httptransport.ErrorResponse
// @Router /api/pool/v1/refunds [post]
func (h Handler) ClaimRefundHandler(ctx context.Context, participantID string, req httptransport.ClaimRefundRequest) (httptransport.RefundResponse, error) {
	result, err := h.Commands.ClaimRefund(ctx, commands.ClaimRefundCommand{
		ParticipantID: participantID,
		Destination:   req.Destination,
	})
	if err != nil {
		return httptransport.RefundResponse{}, err
	}
	return httptransport.RefundResponse{
		ParticipantID: participantID,
		Destination:   req.Destination,
		Amount:        result.Amount,
		PoolHeld:      result.Totals.Held,
	}, nil
}

// PoolInfoHandler godoc
// @Summary Pool status
// @Description Reports the derived phase, totals, and counters.
// @Tags pool-engine
// @Produce json
// @Success 200 {object} httptransport.PoolInfoResponse
// @Router /api/pool/v1/info [get]
func (h Handler) PoolInfoHandler(ctx context.Context) (httptransport.PoolInfoResponse, error) {
	info, err := h.Queries.Info(ctx)
	if err != nil {
		return httptransport.PoolInfoResponse{}, err
	}
	resp := httptransport.PoolInfoResponse{
		Phase:            string(info.Phase),
		TotalContributed: info.TotalContributed,
		TotalHeld:        info.TotalHeld,
		TotalWithdrawn:   info.TotalWithdrawn,
		TotalRefunded:    info.TotalRefunded,
		TotalDistributed: info.TotalDistributed,
		Contributors:     info.Contributors,
		Proposals:        info.Proposals,
		VotesCast:        info.VotesCast,
		WinnerProposalID: info.WinnerProposalID,
	}
	if !info.ContributionDeadline.IsZero() {
		resp.ContributionDeadline = info.ContributionDeadline.Unix()
	}
	if !info.VotingDeadline.IsZero() {
		resp.VotingDeadline = info.VotingDeadline.Unix()
	}
	return resp, nil
}

// ProposalsHandler godoc
// @Summary List proposals
// @Description Returns the proposal registry in submission order.
// @Tags pool-engine
// @Produce json
// @Success 200 {object} httptransport.ProposalListResponse
// @Router /api/pool/v1/proposals [get]
func (h Handler) ProposalsHandler(ctx context.Context) (httptransport.ProposalListResponse, error) {
	proposals, err := h.Queries.Proposals(ctx)
	if err != nil {
		return httptransport.ProposalListResponse{}, err
	}
	items := make([]httptransport.ProposalResponse, 0, len(proposals))
	for _, proposal := range proposals {
		items = append(items, mapProposal(proposal))
	}
	return httptransport.ProposalListResponse{Items: items}, nil
}

// WinnerHandler godoc
// @Summary Winning proposal
// @Description Returns the stored winner; none before execution completes.
// @Tags pool-engine
// @Produce json
// @Success 200 {object} httptransport.WinnerResponse
// @Router /api/pool/v1/proposals/winner [get]
func (h Handler) WinnerHandler(ctx context.Context) (httptransport.WinnerResponse, error) {
	winner, found, err := h.Queries.WinningProposal(ctx)
	if err != nil {
		return httptransport.WinnerResponse{}, err
	}
	if !found {
		return httptransport.WinnerResponse{Found: false}, nil
	}
	mapped := mapProposal(winner)
	return httptransport.WinnerResponse{Found: true, Proposal: &mapped}, nil
}

// ContributionHandler godoc
// @Summary Participant contribution
// @Description Returns a single participant's ledger record.
// @Tags pool-engine
// @Produce json
// @Param participant_id path string true "Participant id"
// @Success 200 {object} httptransport.ContributionResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/pool/v1/contributions/{participant_id} [get]
func (h Handler) ContributionHandler(ctx context.Context, participantID string) (httptransport.ContributionResponse, error) {
	record, err := h.Queries.Contribution(ctx, participantID)
	if err != nil {
		return httptransport.ContributionResponse{}, err
	}
	return httptransport.ContributionResponse{
		ParticipantID: record.ParticipantID,
		Amount:        record.Amount,
		Withdrawn:     record.Withdrawn,
		Refunded:      record.Refunded,
		Voted:         record.Voted,
	}, nil
}

func mapProposal(proposal entities.Proposal) httptransport.ProposalResponse {
	return httptransport.ProposalResponse{
		ProposalID:  proposal.ID,
		ProposerID:  proposal.ProposerID,
		Destination: proposal.Destination,
		Description: proposal.Description,
		VoteWeight:  proposal.VoteWeight,
		SubmittedAt: proposal.SubmittedAt.Unix(),
	}
}
