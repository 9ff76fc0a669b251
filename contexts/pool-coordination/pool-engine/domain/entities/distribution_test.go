package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func votingPool(t *testing.T) *Pool {
	t.Helper()
	pool := newActivePool(t)
	_, err := pool.Contribute("alice", 5000, at(10*time.Second))
	require.NoError(t, err)
	_, err = pool.Contribute("bob", 3000, at(10*time.Second))
	require.NoError(t, err)
	_, err = pool.Contribute("carol", 2000, at(10*time.Second))
	require.NoError(t, err)
	return pool
}

func TestResolveWinnerByWeight(t *testing.T) {
	pool := votingPool(t)
	voting := at(150 * time.Second)

	p1, err := pool.SubmitProposal("alice", "bc1qnode", "community node", voting)
	require.NoError(t, err)
	p2, err := pool.SubmitProposal("bob", "bc1qgrant", "developer grant", voting)
	require.NoError(t, err)

	_, err = pool.CastVote("alice", p1.ID, voting)
	require.NoError(t, err)
	_, err = pool.CastVote("carol", p1.ID, voting)
	require.NoError(t, err)
	_, err = pool.CastVote("bob", p2.ID, voting)
	require.NoError(t, err)

	result := Resolve(pool)
	require.Equal(t, uint64(10000), result.VotableWeight)
	require.Equal(t, uint64(6000), result.QuorumRequired)
	require.Equal(t, uint64(10000), result.VotesCast)
	require.NotNil(t, result.Winner)
	require.Equal(t, p1.ID, result.Winner.ID)
	require.Equal(t, uint64(7000), result.Winner.VoteWeight)
}

func TestResolveQuorumMiss(t *testing.T) {
	pool := votingPool(t)
	voting := at(150 * time.Second)

	p1, err := pool.SubmitProposal("alice", "bc1qnode", "community node", voting)
	require.NoError(t, err)
	_, err = pool.CastVote("bob", p1.ID, voting)
	require.NoError(t, err)

	// 3000 of weight voted against a 6000 requirement.
	result := Resolve(pool)
	require.Equal(t, uint64(6000), result.QuorumRequired)
	require.Equal(t, uint64(3000), result.VotesCast)
	require.Nil(t, result.Winner)
}

func TestResolveNoVotesNoWinner(t *testing.T) {
	pool := votingPool(t)
	_, err := pool.SubmitProposal("alice", "bc1qnode", "community node", at(150*time.Second))
	require.NoError(t, err)

	result := Resolve(pool)
	require.Nil(t, result.Winner)
	require.Equal(t, uint64(0), result.VotesCast)
}

func TestResolveTieGoesToLowestID(t *testing.T) {
	pool := newActivePool(t)
	_, err := pool.Contribute("alice", 5000, at(10*time.Second))
	require.NoError(t, err)
	_, err = pool.Contribute("bob", 5000, at(10*time.Second))
	require.NoError(t, err)

	voting := at(150 * time.Second)
	p1, err := pool.SubmitProposal("alice", "bc1qfirst", "first", voting)
	require.NoError(t, err)
	p2, err := pool.SubmitProposal("bob", "bc1qsecond", "second", voting)
	require.NoError(t, err)

	_, err = pool.CastVote("alice", p2.ID, voting)
	require.NoError(t, err)
	_, err = pool.CastVote("bob", p1.ID, voting)
	require.NoError(t, err)

	result := Resolve(pool)
	require.NotNil(t, result.Winner)
	require.Equal(t, p1.ID, result.Winner.ID)
}

func TestResolveExcludesWithdrawnWeight(t *testing.T) {
	pool := votingPool(t)
	_, err := pool.EmergencyWithdraw("alice", at(20*time.Second))
	require.NoError(t, err)

	voting := at(150 * time.Second)
	p1, err := pool.SubmitProposal("bob", "bc1qnode", "community node", voting)
	require.NoError(t, err)
	_, err = pool.CastVote("bob", p1.ID, voting)
	require.NoError(t, err)

	// Votable weight shrinks to bob+carol, so bob's 3000 meets the 3000 bar.
	result := Resolve(pool)
	require.Equal(t, uint64(5000), result.VotableWeight)
	require.Equal(t, uint64(3000), result.QuorumRequired)
	require.NotNil(t, result.Winner)
	require.Equal(t, p1.ID, result.Winner.ID)
}

func TestCeilPercentRoundsUp(t *testing.T) {
	require.Equal(t, uint64(0), ceilPercent(0, 60))
	require.Equal(t, uint64(0), ceilPercent(10000, 0))
	require.Equal(t, uint64(6000), ceilPercent(10000, 60))
	require.Equal(t, uint64(6001), ceilPercent(10001, 60))
	require.Equal(t, uint64(1), ceilPercent(1, 1))
	require.Equal(t, uint64(10000), ceilPercent(10000, 100))
}
