package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"fundpool/contexts/pool-coordination/pool-engine/adapters/memory"
	domainerrors "fundpool/contexts/pool-coordination/pool-engine/domain/errors"
)

var testEpoch = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func newTestUseCase() (PoolUseCase, *memory.Store, *memory.RecordingEmitter) {
	store := memory.NewStore()
	emitter := &memory.RecordingEmitter{}
	uc := PoolUseCase{
		Pool:      store,
		Transfers: emitter,
		Clock:     store,
		IDGen:     store,
		Source:    "fundpool-test",
	}
	return uc, store, emitter
}

func initializedUseCase(t *testing.T) (PoolUseCase, *memory.Store, *memory.RecordingEmitter) {
	t.Helper()
	uc, store, emitter := newTestUseCase()
	store.SetNow(testEpoch)
	err := uc.InitializePool(context.Background(), InitializePoolCommand{
		MinContribution:      1000,
		MaxContribution:      10000,
		ContributionDeadline: testEpoch.Add(100 * time.Second),
		VotingDeadline:       testEpoch.Add(200 * time.Second),
		ProposalThreshold:    2000,
		VotingThreshold:      1000,
		QuorumPercentage:     60,
	})
	if err != nil {
		t.Fatalf("initialize pool failed: %v", err)
	}
	return uc, store, emitter
}

func TestFullLifecycleWithWinner(t *testing.T) {
	uc, store, emitter := initializedUseCase(t)
	ctx := context.Background()

	store.SetNow(testEpoch.Add(10 * time.Second))
	if _, err := uc.Contribute(ctx, ContributeCommand{ParticipantID: "alice", Amount: 5000}); err != nil {
		t.Fatalf("alice contribution failed: %v", err)
	}
	if _, err := uc.Contribute(ctx, ContributeCommand{ParticipantID: "bob", Amount: 3000}); err != nil {
		t.Fatalf("bob contribution failed: %v", err)
	}
	if _, err := uc.Contribute(ctx, ContributeCommand{ParticipantID: "carol", Amount: 2000}); err != nil {
		t.Fatalf("carol contribution failed: %v", err)
	}

	store.SetNow(testEpoch.Add(150 * time.Second))
	p1, err := uc.SubmitProposal(ctx, SubmitProposalCommand{ProposerID: "alice", Destination: "bc1qnode", Description: "community node"})
	if err != nil {
		t.Fatalf("submit proposal failed: %v", err)
	}
	p2, err := uc.SubmitProposal(ctx, SubmitProposalCommand{ProposerID: "bob", Destination: "bc1qgrant", Description: "developer grant"})
	if err != nil {
		t.Fatalf("submit second proposal failed: %v", err)
	}

	if _, err := uc.CastVote(ctx, CastVoteCommand{VoterID: "alice", ProposalID: p1.ID}); err != nil {
		t.Fatalf("alice vote failed: %v", err)
	}
	if _, err := uc.CastVote(ctx, CastVoteCommand{VoterID: "carol", ProposalID: p1.ID}); err != nil {
		t.Fatalf("carol vote failed: %v", err)
	}
	if _, err := uc.CastVote(ctx, CastVoteCommand{VoterID: "bob", ProposalID: p2.ID}); err != nil {
		t.Fatalf("bob vote failed: %v", err)
	}

	store.SetNow(testEpoch.Add(250 * time.Second))
	result, err := uc.ExecuteTransfer(ctx)
	if err != nil {
		t.Fatalf("execute transfer failed: %v", err)
	}
	if result.Winner == nil || result.Winner.ID != p1.ID {
		t.Fatalf("expected proposal %d to win, got %+v", p1.ID, result.Winner)
	}
	if result.Distributed != 10000 {
		t.Fatalf("expected full held balance distributed, got %d", result.Distributed)
	}

	requests := emitter.Requests()
	if len(requests) != 1 {
		t.Fatalf("expected one transfer emission, got %d", len(requests))
	}
	if requests[0].Destination != "bc1qnode" || requests[0].Amount != 10000 {
		t.Fatalf("unexpected transfer emission: %+v", requests[0])
	}

	if _, err := uc.ExecuteTransfer(ctx); !errors.Is(err, domainerrors.ErrAlreadyExecuted) {
		t.Fatalf("expected repeat execution to fail with already executed, got %v", err)
	}

	types := store.OutboxEventTypes()
	want := []string{
		EventPoolInitialized,
		EventContributionRecorded,
		EventContributionRecorded,
		EventContributionRecorded,
		EventProposalSubmitted,
		EventProposalSubmitted,
		EventVoteCast,
		EventVoteCast,
		EventVoteCast,
		EventPoolCompleted,
	}
	if len(types) != len(want) {
		t.Fatalf("expected %d outbox events, got %d: %v", len(want), len(types), types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("outbox event %d: expected %s, got %s", i, want[i], types[i])
		}
	}
}

func TestExecuteTransferEmitterFailureIsRetryable(t *testing.T) {
	uc, store, emitter := initializedUseCase(t)
	ctx := context.Background()

	store.SetNow(testEpoch.Add(10 * time.Second))
	if _, err := uc.Contribute(ctx, ContributeCommand{ParticipantID: "alice", Amount: 5000}); err != nil {
		t.Fatalf("contribution failed: %v", err)
	}
	store.SetNow(testEpoch.Add(150 * time.Second))
	p1, err := uc.SubmitProposal(ctx, SubmitProposalCommand{ProposerID: "alice", Destination: "bc1qnode", Description: "node"})
	if err != nil {
		t.Fatalf("submit proposal failed: %v", err)
	}
	if _, err := uc.CastVote(ctx, CastVoteCommand{VoterID: "alice", ProposalID: p1.ID}); err != nil {
		t.Fatalf("vote failed: %v", err)
	}

	store.SetNow(testEpoch.Add(250 * time.Second))
	emitter.FailWith = errors.New("broadcast unreachable")
	if _, err := uc.ExecuteTransfer(ctx); !errors.Is(err, domainerrors.ErrTransferFailed) {
		t.Fatalf("expected transfer failure, got %v", err)
	}

	// The pool must not have completed; a retry succeeds once emission works.
	pool, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if pool.Completed {
		t.Fatal("pool completed despite failed transfer emission")
	}

	emitter.FailWith = nil
	result, err := uc.ExecuteTransfer(ctx)
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if result.Winner == nil || result.Distributed != 5000 {
		t.Fatalf("unexpected retry result: %+v", result)
	}
}

func TestNoQuorumCompletesWithoutWinnerAndRefunds(t *testing.T) {
	uc, store, emitter := initializedUseCase(t)
	ctx := context.Background()

	store.SetNow(testEpoch.Add(10 * time.Second))
	if _, err := uc.Contribute(ctx, ContributeCommand{ParticipantID: "alice", Amount: 5000}); err != nil {
		t.Fatalf("alice contribution failed: %v", err)
	}
	if _, err := uc.Contribute(ctx, ContributeCommand{ParticipantID: "bob", Amount: 3000}); err != nil {
		t.Fatalf("bob contribution failed: %v", err)
	}

	store.SetNow(testEpoch.Add(150 * time.Second))
	p1, err := uc.SubmitProposal(ctx, SubmitProposalCommand{ProposerID: "alice", Destination: "bc1qnode", Description: "node"})
	if err != nil {
		t.Fatalf("submit proposal failed: %v", err)
	}
	// Only bob votes: 3000 of 8000 weight against a 60% quorum.
	if _, err := uc.CastVote(ctx, CastVoteCommand{VoterID: "bob", ProposalID: p1.ID}); err != nil {
		t.Fatalf("vote failed: %v", err)
	}

	store.SetNow(testEpoch.Add(250 * time.Second))
	result, err := uc.ExecuteTransfer(ctx)
	if err != nil {
		t.Fatalf("execute transfer failed: %v", err)
	}
	if result.Winner != nil {
		t.Fatalf("expected no winner, got %+v", result.Winner)
	}
	if len(emitter.Requests()) != 0 {
		t.Fatal("no transfer should be emitted without a winner")
	}

	if _, err := uc.ClaimRefund(ctx, ClaimRefundCommand{ParticipantID: "alice", Destination: ""}); !errors.Is(err, domainerrors.ErrInvalidParameters) {
		t.Fatalf("expected empty destination rejection, got %v", err)
	}

	refund, err := uc.ClaimRefund(ctx, ClaimRefundCommand{ParticipantID: "alice", Destination: "bc1qalice"})
	if err != nil {
		t.Fatalf("refund claim failed: %v", err)
	}
	if refund.Amount != 5000 {
		t.Fatalf("expected 5000 refunded, got %d", refund.Amount)
	}
	if refund.Totals.Held != 3000 {
		t.Fatalf("expected 3000 still held, got %d", refund.Totals.Held)
	}

	requests := emitter.Requests()
	if len(requests) != 1 || requests[0].Destination != "bc1qalice" || requests[0].Amount != 5000 {
		t.Fatalf("unexpected refund emission: %+v", requests)
	}

	if _, err := uc.ClaimRefund(ctx, ClaimRefundCommand{ParticipantID: "alice", Destination: "bc1qalice"}); !errors.Is(err, domainerrors.ErrAlreadyRefunded) {
		t.Fatalf("expected repeat refund rejection, got %v", err)
	}
}

func TestRejectedCommandLeavesNoOutbox(t *testing.T) {
	uc, store, _ := initializedUseCase(t)
	ctx := context.Background()

	store.SetNow(testEpoch.Add(150 * time.Second))
	if _, err := uc.Contribute(ctx, ContributeCommand{ParticipantID: "alice", Amount: 5000}); !errors.Is(err, domainerrors.ErrPhase) {
		t.Fatalf("expected phase rejection, got %v", err)
	}

	types := store.OutboxEventTypes()
	if len(types) != 1 || types[0] != EventPoolInitialized {
		t.Fatalf("rejected command must not append outbox events, got %v", types)
	}
}

func TestWithdrawThenLateWithdrawRejected(t *testing.T) {
	uc, store, _ := initializedUseCase(t)
	ctx := context.Background()

	store.SetNow(testEpoch.Add(10 * time.Second))
	if _, err := uc.Contribute(ctx, ContributeCommand{ParticipantID: "alice", Amount: 5000}); err != nil {
		t.Fatalf("contribution failed: %v", err)
	}
	if _, err := uc.Contribute(ctx, ContributeCommand{ParticipantID: "bob", Amount: 3000}); err != nil {
		t.Fatalf("contribution failed: %v", err)
	}

	store.SetNow(testEpoch.Add(50 * time.Second))
	result, err := uc.EmergencyWithdraw(ctx, WithdrawCommand{ParticipantID: "alice"})
	if err != nil {
		t.Fatalf("withdrawal failed: %v", err)
	}
	if result.Amount != 5000 || result.Totals.Held != 3000 {
		t.Fatalf("unexpected withdrawal result: %+v", result)
	}

	store.SetNow(testEpoch.Add(150 * time.Second))
	if _, err := uc.EmergencyWithdraw(ctx, WithdrawCommand{ParticipantID: "bob"}); !errors.Is(err, domainerrors.ErrPhase) {
		t.Fatalf("expected phase rejection after deadline, got %v", err)
	}
}
