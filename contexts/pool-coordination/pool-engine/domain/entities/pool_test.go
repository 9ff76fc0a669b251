package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domainerrors "fundpool/contexts/pool-coordination/pool-engine/domain/errors"
)

var testEpoch = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func at(offset time.Duration) time.Time {
	return testEpoch.Add(offset)
}

func testParams() PoolParams {
	return PoolParams{
		MinContribution:      1000,
		MaxContribution:      10000,
		ContributionDeadline: at(100 * time.Second),
		VotingDeadline:       at(200 * time.Second),
		ProposalThreshold:    2000,
		VotingThreshold:      1000,
		QuorumPercentage:     60,
	}
}

func newActivePool(t *testing.T) *Pool {
	t.Helper()
	pool := NewPool()
	require.NoError(t, pool.Initialize(testParams()))
	return &pool
}

func TestInitializeValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*PoolParams)
	}{
		{"min above max", func(p *PoolParams) { p.MinContribution = p.MaxContribution + 1 }},
		{"quorum above 100", func(p *PoolParams) { p.QuorumPercentage = 101 }},
		{"zero contribution deadline", func(p *PoolParams) { p.ContributionDeadline = time.Time{} }},
		{"zero voting deadline", func(p *PoolParams) { p.VotingDeadline = time.Time{} }},
		{"voting deadline not after contribution", func(p *PoolParams) { p.VotingDeadline = p.ContributionDeadline }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := testParams()
			tc.mutate(&params)
			pool := NewPool()
			err := pool.Initialize(params)
			require.ErrorIs(t, err, domainerrors.ErrInvalidParameters)
			require.Equal(t, PhaseUninitialized, pool.PhaseAt(at(0)))
		})
	}
}

func TestInitializeOnlyOnce(t *testing.T) {
	pool := newActivePool(t)
	err := pool.Initialize(testParams())
	require.ErrorIs(t, err, domainerrors.ErrAlreadyInitialized)
}

func TestPhaseDerivationFollowsClock(t *testing.T) {
	pool := NewPool()
	require.Equal(t, PhaseUninitialized, pool.PhaseAt(at(0)))

	require.NoError(t, pool.Initialize(testParams()))
	require.Equal(t, PhaseContribution, pool.PhaseAt(at(0)))
	require.Equal(t, PhaseContribution, pool.PhaseAt(at(99*time.Second)))
	require.Equal(t, PhaseVoting, pool.PhaseAt(at(100*time.Second)))
	require.Equal(t, PhaseVoting, pool.PhaseAt(at(199*time.Second)))
	require.Equal(t, PhaseExecution, pool.PhaseAt(at(200*time.Second)))

	pool.CompleteExecution(nil, at(250*time.Second))
	require.Equal(t, PhaseCompleted, pool.PhaseAt(at(250*time.Second)))
	// Completed is absorbing even for a clock reading before the deadlines.
	require.Equal(t, PhaseCompleted, pool.PhaseAt(at(0)))
}

func TestContributeAccumulatesAgainstBounds(t *testing.T) {
	pool := newActivePool(t)

	_, err := pool.Contribute("alice", 0, at(10*time.Second))
	require.ErrorIs(t, err, domainerrors.ErrZeroAmount)

	// Running total below the minimum is rejected outright.
	_, err = pool.Contribute("alice", 500, at(10*time.Second))
	require.ErrorIs(t, err, domainerrors.ErrContributionLimit)

	record, err := pool.Contribute("alice", 5000, at(10*time.Second))
	require.NoError(t, err)
	require.Equal(t, uint64(5000), record.Amount)

	// Top-ups accumulate; any single call keeps the total within bounds.
	record, err = pool.Contribute("alice", 4000, at(20*time.Second))
	require.NoError(t, err)
	require.Equal(t, uint64(9000), record.Amount)

	_, err = pool.Contribute("alice", 2000, at(30*time.Second))
	require.ErrorIs(t, err, domainerrors.ErrContributionLimit)
	require.Equal(t, uint64(9000), pool.Ledger["alice"].Amount)

	require.Equal(t, uint64(9000), pool.Totals.Contributed)
	require.Equal(t, uint64(9000), pool.Totals.Held)
}

func TestContributePhaseGates(t *testing.T) {
	pool := NewPool()
	_, err := pool.Contribute("alice", 5000, at(10*time.Second))
	require.ErrorIs(t, err, domainerrors.ErrNotInitialized)

	require.NoError(t, pool.Initialize(testParams()))
	_, err = pool.Contribute("alice", 5000, at(150*time.Second))
	require.ErrorIs(t, err, domainerrors.ErrPhase)

	_, err = pool.Contribute("  ", 5000, at(10*time.Second))
	require.ErrorIs(t, err, domainerrors.ErrInvalidParameters)
}

func TestEmergencyWithdrawWindow(t *testing.T) {
	pool := newActivePool(t)
	_, err := pool.Contribute("alice", 5000, at(10*time.Second))
	require.NoError(t, err)
	_, err = pool.Contribute("bob", 3000, at(10*time.Second))
	require.NoError(t, err)

	amount, err := pool.EmergencyWithdraw("alice", at(50*time.Second))
	require.NoError(t, err)
	require.Equal(t, uint64(5000), amount)
	require.Equal(t, uint64(3000), pool.Totals.Held)
	require.Equal(t, uint64(5000), pool.Totals.Withdrawn)

	_, err = pool.EmergencyWithdraw("alice", at(60*time.Second))
	require.ErrorIs(t, err, domainerrors.ErrAlreadyWithdrawn)

	// The exit slams shut once the contribution deadline passes.
	_, err = pool.EmergencyWithdraw("bob", at(150*time.Second))
	require.ErrorIs(t, err, domainerrors.ErrPhase)
	require.Equal(t, uint64(3000), pool.Ledger["bob"].Amount)

	_, err = pool.EmergencyWithdraw("carol", at(60*time.Second))
	require.ErrorIs(t, err, domainerrors.ErrNothingToWithdraw)
}

func TestWithdrawnParticipantCannotReenter(t *testing.T) {
	pool := newActivePool(t)
	_, err := pool.Contribute("alice", 5000, at(10*time.Second))
	require.NoError(t, err)
	_, err = pool.EmergencyWithdraw("alice", at(20*time.Second))
	require.NoError(t, err)

	_, err = pool.Contribute("alice", 5000, at(30*time.Second))
	require.ErrorIs(t, err, domainerrors.ErrAlreadyWithdrawn)
}

func TestSubmitProposalEligibility(t *testing.T) {
	pool := newActivePool(t)
	_, err := pool.Contribute("alice", 5000, at(10*time.Second))
	require.NoError(t, err)
	_, err = pool.Contribute("bob", 1500, at(10*time.Second))
	require.NoError(t, err)

	// Proposals open only in the voting phase.
	_, err = pool.SubmitProposal("alice", "bc1qdest", "fund the node", at(50*time.Second))
	require.ErrorIs(t, err, domainerrors.ErrPhase)

	voting := at(150 * time.Second)
	_, err = pool.SubmitProposal("bob", "bc1qdest", "below threshold", voting)
	require.ErrorIs(t, err, domainerrors.ErrInsufficientContribution)

	_, err = pool.SubmitProposal("carol", "bc1qdest", "never contributed", voting)
	require.ErrorIs(t, err, domainerrors.ErrInsufficientContribution)

	_, err = pool.SubmitProposal("alice", "", "missing destination", voting)
	require.ErrorIs(t, err, domainerrors.ErrInvalidProposalData)

	long := make([]byte, MaxDestinationLength+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err = pool.SubmitProposal("alice", string(long), "oversized destination", voting)
	require.ErrorIs(t, err, domainerrors.ErrInvalidProposalData)

	first, err := pool.SubmitProposal("alice", "bc1qfirst", "first", voting)
	require.NoError(t, err)
	require.Equal(t, uint64(1), first.ID)

	second, err := pool.SubmitProposal("alice", "bc1qsecond", "second", voting)
	require.NoError(t, err)
	require.Equal(t, uint64(2), second.ID)
}

func TestCastVoteSingleLifetimeVote(t *testing.T) {
	pool := newActivePool(t)
	_, err := pool.Contribute("alice", 5000, at(10*time.Second))
	require.NoError(t, err)
	_, err = pool.Contribute("bob", 3000, at(10*time.Second))
	require.NoError(t, err)

	voting := at(150 * time.Second)
	p1, err := pool.SubmitProposal("alice", "bc1qfirst", "first", voting)
	require.NoError(t, err)
	p2, err := pool.SubmitProposal("bob", "bc1qsecond", "second", voting)
	require.NoError(t, err)

	tally, err := pool.CastVote("alice", p1.ID, voting)
	require.NoError(t, err)
	require.Equal(t, uint64(5000), tally.VoteWeight)

	// Second vote rejected, both tallies untouched.
	_, err = pool.CastVote("alice", p2.ID, voting)
	require.ErrorIs(t, err, domainerrors.ErrAlreadyVoted)
	got, _ := pool.ProposalByID(p1.ID)
	require.Equal(t, uint64(5000), got.VoteWeight)
	got, _ = pool.ProposalByID(p2.ID)
	require.Equal(t, uint64(0), got.VoteWeight)

	_, err = pool.CastVote("bob", 99, voting)
	require.ErrorIs(t, err, domainerrors.ErrProposalNotFound)

	_, err = pool.CastVote("carol", p1.ID, voting)
	require.ErrorIs(t, err, domainerrors.ErrInsufficientContribution)

	_, err = pool.CastVote("bob", p1.ID, at(250*time.Second))
	require.ErrorIs(t, err, domainerrors.ErrPhase)
}

func TestExecutionGates(t *testing.T) {
	pool := NewPool()
	_, err := pool.PrepareExecution(at(250 * time.Second))
	require.ErrorIs(t, err, domainerrors.ErrNotInitialized)

	require.NoError(t, pool.Initialize(testParams()))
	_, err = pool.PrepareExecution(at(50 * time.Second))
	require.ErrorIs(t, err, domainerrors.ErrPhase)
	_, err = pool.PrepareExecution(at(150 * time.Second))
	require.ErrorIs(t, err, domainerrors.ErrPhase)

	_, err = pool.PrepareExecution(at(250 * time.Second))
	require.NoError(t, err)

	pool.CompleteExecution(nil, at(250*time.Second))
	_, err = pool.PrepareExecution(at(260 * time.Second))
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExecuted)
}

func TestCompleteExecutionWithWinnerDistributesHeld(t *testing.T) {
	pool := newActivePool(t)
	_, err := pool.Contribute("alice", 5000, at(10*time.Second))
	require.NoError(t, err)

	voting := at(150 * time.Second)
	p1, err := pool.SubmitProposal("alice", "bc1qdest", "payout", voting)
	require.NoError(t, err)
	_, err = pool.CastVote("alice", p1.ID, voting)
	require.NoError(t, err)

	winnerID := p1.ID
	pool.CompleteExecution(&winnerID, at(250*time.Second))
	require.True(t, pool.Completed)
	require.Equal(t, uint64(5000), pool.Totals.Distributed)

	winner, found := pool.WinningProposal()
	require.True(t, found)
	require.Equal(t, p1.ID, winner.ID)
}

func TestRefundAfterNoWinnerCompletion(t *testing.T) {
	pool := newActivePool(t)
	_, err := pool.Contribute("alice", 5000, at(10*time.Second))
	require.NoError(t, err)
	_, err = pool.Contribute("bob", 3000, at(10*time.Second))
	require.NoError(t, err)

	_, err = pool.RefundableAmount("alice", at(150*time.Second))
	require.ErrorIs(t, err, domainerrors.ErrRefundNotAvailable)

	pool.CompleteExecution(nil, at(250*time.Second))

	amount, err := pool.RefundableAmount("alice", at(260*time.Second))
	require.NoError(t, err)
	require.Equal(t, uint64(5000), amount)

	amount, err = pool.MarkRefunded("alice", at(260*time.Second))
	require.NoError(t, err)
	require.Equal(t, uint64(5000), amount)
	require.Equal(t, uint64(3000), pool.Totals.Held)
	require.Equal(t, uint64(5000), pool.Totals.Refunded)

	_, err = pool.MarkRefunded("alice", at(270*time.Second))
	require.ErrorIs(t, err, domainerrors.ErrAlreadyRefunded)

	_, err = pool.MarkRefunded("carol", at(270*time.Second))
	require.ErrorIs(t, err, domainerrors.ErrNothingToWithdraw)
}

func TestRefundUnavailableWhenWinnerStored(t *testing.T) {
	pool := newActivePool(t)
	_, err := pool.Contribute("alice", 5000, at(10*time.Second))
	require.NoError(t, err)

	voting := at(150 * time.Second)
	p1, err := pool.SubmitProposal("alice", "bc1qdest", "payout", voting)
	require.NoError(t, err)
	_, err = pool.CastVote("alice", p1.ID, voting)
	require.NoError(t, err)

	winnerID := p1.ID
	pool.CompleteExecution(&winnerID, at(250*time.Second))

	_, err = pool.RefundableAmount("alice", at(260*time.Second))
	require.ErrorIs(t, err, domainerrors.ErrRefundNotAvailable)
}

func TestTotalsConservation(t *testing.T) {
	pool := newActivePool(t)
	_, err := pool.Contribute("alice", 5000, at(10*time.Second))
	require.NoError(t, err)
	_, err = pool.Contribute("bob", 3000, at(10*time.Second))
	require.NoError(t, err)
	_, err = pool.Contribute("carol", 2000, at(10*time.Second))
	require.NoError(t, err)
	_, err = pool.EmergencyWithdraw("bob", at(20*time.Second))
	require.NoError(t, err)

	check := func() {
		require.Equal(t, pool.Totals.Contributed-pool.Totals.Withdrawn-pool.Totals.Refunded, pool.Totals.Held)
	}
	check()

	pool.CompleteExecution(nil, at(250*time.Second))
	_, err = pool.MarkRefunded("alice", at(260*time.Second))
	require.NoError(t, err)
	check()

	require.Equal(t, 1, pool.ActiveContributors())
}

func TestCloneIsolatesMutations(t *testing.T) {
	pool := newActivePool(t)
	_, err := pool.Contribute("alice", 5000, at(10*time.Second))
	require.NoError(t, err)
	p1, err := pool.SubmitProposal("alice", "bc1qdest", "payout", at(150*time.Second))
	require.NoError(t, err)

	clone := pool.Clone()
	_, err = clone.CastVote("alice", p1.ID, at(150*time.Second))
	require.NoError(t, err)
	_, err = clone.Contribute("dave", 2000, at(50*time.Second))
	require.NoError(t, err)

	require.False(t, pool.Ledger["alice"].Voted)
	require.Equal(t, uint64(0), pool.Proposals[0].VoteWeight)
	_, exists := pool.Ledger["dave"]
	require.False(t, exists)
}
