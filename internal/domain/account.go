package domain

// DisputeState is the adjudication lifecycle stage of a disputed
// transaction. Transitions are forward-only: Disputed moves to Resolved or
// ChargedBack, and both of those are terminal.
type DisputeState string

const (
	DisputeStateDisputed    DisputeState = "disputed"
	DisputeStateResolved    DisputeState = "resolved"
	DisputeStateChargedBack DisputeState = "charged_back"
)

// LedgerEntry records one successfully settled deposit or withdrawal. The
// ledger is the source of truth for dispute amounts.
type LedgerEntry struct {
	Type   TransactionType
	Amount Money
}

// Account holds one client's balances, ledger of settled transfers and
// dispute states.
//
// Maintains the invariant: Total == Available + Held. Available and Total
// may legitimately go negative when a dispute or chargeback follows a
// withdrawal.
type Account struct {
	ClientID  ClientID
	Available Money
	Held      Money
	Total     Money
	Locked    bool

	// ledger holds only settlements that succeeded; a rejected withdrawal
	// is never recorded and so can never be disputed.
	ledger map[TransactionID]LedgerEntry
	// disputes keeps every adjudication record for the life of the run, so
	// pre-freeze disputes stay resolvable after the account locks.
	disputes map[TransactionID]DisputeState
}

// NewAccount creates an account with zero balances.
func NewAccount(clientID ClientID) *Account {
	return &Account{
		ClientID: clientID,
		ledger:   make(map[TransactionID]LedgerEntry),
		disputes: make(map[TransactionID]DisputeState),
	}
}

// Settle applies a deposit or withdrawal, recording it in the ledger on
// success. A non-nil error means the transaction was discarded without
// touching any balance; callers treat every error as advisory.
//
// Dispute-related transactions must never be routed here.
func (a *Account) Settle(tx Transaction) error {
	if a.Locked {
		return ErrAccountLocked
	}

	if tx.Amount == nil {
		return ErrMissingAmount
	}

	amount := *tx.Amount
	if amount.IsNegative() {
		return ErrNegativeAmount
	}

	switch tx.Type {
	case TypeDeposit:
		a.Available = a.Available.Add(amount)
		a.Total = a.Total.Add(amount)
	case TypeWithdrawal:
		if !a.Available.GreaterThanOrEqual(amount) {
			return ErrInsufficientFunds
		}

		a.Available = a.Available.Sub(amount)
		a.Total = a.Total.Sub(amount)
	}

	a.ledger[tx.ID] = LedgerEntry{Type: tx.Type, Amount: amount}

	return nil
}

// Adjudicate processes a dispute, resolve or chargeback against a
// previously settled transaction.
//
// A locked account rejects new disputes, but disputes opened before the
// freeze may still be resolved or charged back afterwards.
func (a *Account) Adjudicate(tx Transaction) error {
	entry, ok := a.ledger[tx.ID]
	if !ok {
		return ErrUnknownTransaction
	}

	switch tx.Type {
	case TypeDispute:
		if a.Locked {
			return ErrAccountLocked
		}

		if _, seen := a.disputes[tx.ID]; seen {
			return ErrAlreadyDisputed
		}

		if entry.Type != TypeDeposit {
			return ErrNotDisputable
		}

		// Available may go negative here if the funds were already spent.
		a.Available = a.Available.Sub(entry.Amount)
		a.Held = a.Held.Add(entry.Amount)
		a.disputes[tx.ID] = DisputeStateDisputed
	case TypeResolve:
		if a.disputes[tx.ID] != DisputeStateDisputed {
			return ErrNotDisputed
		}

		a.Held = a.Held.Sub(entry.Amount)
		a.Available = a.Available.Add(entry.Amount)
		a.disputes[tx.ID] = DisputeStateResolved
	case TypeChargeback:
		if a.disputes[tx.ID] != DisputeStateDisputed {
			return ErrNotDisputed
		}

		// Funds leave the client entirely; available is untouched.
		a.Held = a.Held.Sub(entry.Amount)
		a.Total = a.Total.Sub(entry.Amount)
		a.Locked = true
		a.disputes[tx.ID] = DisputeStateChargedBack
	}

	return nil
}
