package memory

import (
	"context"
	"sync"
)

// TransferRequest is one recorded emission.
type TransferRequest struct {
	Destination string
	Amount      uint64
}

// RecordingEmitter captures transfer requests instead of emitting them.
// Setting FailWith makes every request fail, for rollback tests.
type RecordingEmitter struct {
	mu       sync.Mutex
	FailWith error
	requests []TransferRequest
}

func (e *RecordingEmitter) RequestTransfer(_ context.Context, destination string, amount uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.FailWith != nil {
		return e.FailWith
	}
	e.requests = append(e.requests, TransferRequest{Destination: destination, Amount: amount})
	return nil
}

func (e *RecordingEmitter) Requests() []TransferRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]TransferRequest(nil), e.requests...)
}
