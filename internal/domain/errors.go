package domain

import "errors"

var (
	// Settlement errors
	ErrAccountLocked     = errors.New("account is locked")
	ErrMissingAmount     = errors.New("transaction has no amount")
	ErrNegativeAmount    = errors.New("amount must not be negative")
	ErrInsufficientFunds = errors.New("insufficient available funds")

	// Adjudication errors
	ErrUnknownTransaction = errors.New("referenced transaction was never settled")
	ErrAlreadyDisputed    = errors.New("transaction already has a dispute record")
	ErrNotDisputable      = errors.New("only deposits can be disputed")
	ErrNotDisputed        = errors.New("transaction is not under dispute")

	// Routing errors
	ErrAccountNotFound      = errors.New("account not found")
	ErrDuplicateTransaction = errors.New("duplicate transaction ID")
)
