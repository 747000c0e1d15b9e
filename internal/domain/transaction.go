package domain

import (
	"fmt"
	"strings"
)

// ClientID identifies one client's account.
type ClientID uint16

// TransactionID identifies a transaction. IDs are globally unique across
// all clients, not per client.
type TransactionID uint32

// TransactionType is one of the five operation kinds accepted on input.
type TransactionType string

const (
	TypeDeposit    TransactionType = "deposit"
	TypeWithdrawal TransactionType = "withdrawal"
	TypeDispute    TransactionType = "dispute"
	TypeResolve    TransactionType = "resolve"
	TypeChargeback TransactionType = "chargeback"
)

// ParseTransactionType parses an input kind, ignoring case and surrounding
// whitespace.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(strings.ToLower(strings.TrimSpace(s))); t {
	case TypeDeposit, TypeWithdrawal, TypeDispute, TypeResolve, TypeChargeback:
		return t, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// Transaction is one requested operation from the input stream. Immutable
// once constructed.
type Transaction struct {
	Type     TransactionType
	ID       TransactionID
	ClientID ClientID
	// Amount is present only for deposits and withdrawals.
	Amount *Money
}

// DisputeRelated reports whether the transaction adjudicates a prior
// settlement rather than moving funds itself.
func (t Transaction) DisputeRelated() bool {
	switch t.Type {
	case TypeDispute, TypeResolve, TypeChargeback:
		return true
	}

	return false
}
