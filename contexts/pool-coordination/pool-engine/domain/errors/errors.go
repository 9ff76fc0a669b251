package errors

import "errors"

var (
	ErrNotInitialized           = errors.New("pool is not initialized")
	ErrAlreadyInitialized       = errors.New("pool is already initialized")
	ErrInvalidParameters        = errors.New("invalid pool parameters")
	ErrPhase                    = errors.New("operation not allowed in current phase")
	ErrZeroAmount               = errors.New("contribution amount must be greater than zero")
	ErrContributionLimit        = errors.New("cumulative contribution outside allowed bounds")
	ErrInsufficientContribution = errors.New("insufficient contribution for this operation")
	ErrInvalidProposalData      = errors.New("invalid proposal data")
	ErrProposalNotFound         = errors.New("proposal not found")
	ErrAlreadyVoted             = errors.New("participant has already voted")
	ErrNothingToWithdraw        = errors.New("nothing to withdraw")
	ErrParticipantNotFound      = errors.New("participant not found")
	ErrAlreadyWithdrawn         = errors.New("participant has already withdrawn")
	ErrAlreadyExecuted          = errors.New("distribution has already been executed")
	ErrTransferFailed           = errors.New("transfer request failed")
	ErrRefundNotAvailable       = errors.New("refund is not available")
	ErrConflict                 = errors.New("pool state conflict")
	ErrAlreadyRefunded          = errors.New("participant has already been refunded")
)
