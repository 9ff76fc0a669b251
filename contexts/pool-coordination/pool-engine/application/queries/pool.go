package queries

import (
	"context"
	"strings"
	"time"

	"fundpool/contexts/pool-coordination/pool-engine/domain/entities"
	domainerrors "fundpool/contexts/pool-coordination/pool-engine/domain/errors"
	"fundpool/contexts/pool-coordination/pool-engine/ports"
)

// PoolInfo is the aggregate read model served to hosts and dashboards.
type PoolInfo struct {
	Phase                entities.Phase
	TotalContributed     uint64
	TotalHeld            uint64
	TotalWithdrawn       uint64
	TotalRefunded        uint64
	TotalDistributed     uint64
	Contributors         int
	Proposals            int
	VotesCast            int
	ContributionDeadline time.Time
	VotingDeadline       time.Time
	WinnerProposalID     *uint64
}

// PoolQueries serves the pure read operations. Reads never mutate state and
// carry no phase restriction.
type PoolQueries struct {
	Pool  ports.PoolRepository
	Clock ports.Clock
}

func (q PoolQueries) now() time.Time {
	if q.Clock != nil {
		return q.Clock.Now()
	}
	return time.Now().UTC()
}

// Info reports the derived phase, totals, and counters.
func (q PoolQueries) Info(ctx context.Context) (PoolInfo, error) {
	pool, err := q.Pool.Load(ctx)
	if err != nil {
		return PoolInfo{}, err
	}

	info := PoolInfo{
		Phase:            pool.PhaseAt(q.now()),
		TotalContributed: pool.Totals.Contributed,
		TotalHeld:        pool.Totals.Held,
		TotalWithdrawn:   pool.Totals.Withdrawn,
		TotalRefunded:    pool.Totals.Refunded,
		TotalDistributed: pool.Totals.Distributed,
		Contributors:     pool.ActiveContributors(),
		Proposals:        len(pool.Proposals),
		VotesCast:        pool.VotesCast(),
		WinnerProposalID: pool.WinnerID,
	}
	if pool.Params != nil {
		info.ContributionDeadline = pool.Params.ContributionDeadline
		info.VotingDeadline = pool.Params.VotingDeadline
	}
	return info, nil
}

// Proposals returns the registry in submission order.
func (q PoolQueries) Proposals(ctx context.Context) ([]entities.Proposal, error) {
	pool, err := q.Pool.Load(ctx)
	if err != nil {
		return nil, err
	}
	return pool.Proposals, nil
}

// WinningProposal returns the stored winner. Before completion it
// deterministically reports none.
func (q PoolQueries) WinningProposal(ctx context.Context) (entities.Proposal, bool, error) {
	pool, err := q.Pool.Load(ctx)
	if err != nil {
		return entities.Proposal{}, false, err
	}
	winner, ok := pool.WinningProposal()
	return winner, ok, nil
}

// Contribution returns a single participant's ledger record.
func (q PoolQueries) Contribution(ctx context.Context, participantID string) (entities.ContributionRecord, error) {
	pool, err := q.Pool.Load(ctx)
	if err != nil {
		return entities.ContributionRecord{}, err
	}
	record, ok := pool.Ledger[strings.TrimSpace(participantID)]
	if !ok {
		return entities.ContributionRecord{}, domainerrors.ErrParticipantNotFound
	}
	return record, nil
}
