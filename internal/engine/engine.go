// Package engine implements the single-writer aggregation loop that routes
// each incoming transaction to the owning client account.
package engine

import (
	"context"
	"errors"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/iho/payengine/internal/domain"
	"github.com/iho/payengine/internal/infrastructure/metrics"
)

const defaultQueueSize = 100

// Config configures an Engine.
type Config struct {
	// QueueSize bounds the input channel; producers block when it is full.
	QueueSize int
	Logger    zerolog.Logger
	Metrics   *metrics.Metrics
}

// Engine owns all client accounts and the global processed-transaction-ID
// set. Exactly one goroutine (started by Start) mutates that state, so no
// locking is needed; any number of producers may Submit.
type Engine struct {
	in   chan domain.Transaction
	done chan []*domain.Account

	log     zerolog.Logger
	metrics *metrics.Metrics

	accounts map[domain.ClientID]*domain.Account
	// processed spans all clients: a transaction ID reused by a different
	// client is still a duplicate.
	processed map[domain.TransactionID]struct{}
}

// New creates an Engine. Call Start before submitting.
func New(cfg Config) *Engine {
	size := cfg.QueueSize
	if size <= 0 {
		size = defaultQueueSize
	}

	m := cfg.Metrics
	if m == nil {
		m = metrics.New(prometheus.NewRegistry())
	}

	return &Engine{
		in:        make(chan domain.Transaction, size),
		done:      make(chan []*domain.Account, 1),
		log:       cfg.Logger,
		metrics:   m,
		accounts:  make(map[domain.ClientID]*domain.Account),
		processed: make(map[domain.TransactionID]struct{}),
	}
}

// Start launches the consumer goroutine.
func (e *Engine) Start() {
	go e.run()
}

// Submit enqueues a transaction for processing, blocking while the queue is
// full. Transactions are processed in exactly the order they were submitted.
func (e *Engine) Submit(ctx context.Context, tx domain.Transaction) error {
	select {
	case e.in <- tx:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close signals end of input. No Submit may follow a Close.
func (e *Engine) Close() {
	close(e.in)
}

// Wait blocks until the consumer has drained every queued transaction after
// Close, then returns the final snapshot: every account ever created,
// ordered by ascending client ID.
func (e *Engine) Wait() []*domain.Account {
	return <-e.done
}

func (e *Engine) run() {
	for tx := range e.in {
		e.process(tx)
	}

	e.done <- e.snapshot()
}

func (e *Engine) process(tx domain.Transaction) {
	if tx.DisputeRelated() {
		account, ok := e.accounts[tx.ClientID]
		if !ok {
			// a dispute for a client with no account cannot reference
			// anything; the account is not created
			e.discard(tx, domain.ErrAccountNotFound)
			return
		}

		if err := account.Adjudicate(tx); err != nil {
			e.discard(tx, err)
			return
		}

		if tx.Type == domain.TypeChargeback {
			e.metrics.AccountsFrozen.Inc()
		}
	} else {
		// duplicates are rejected before any account is touched, so a
		// duplicate deposit never double-applies and never creates the
		// second client's account
		if _, dup := e.processed[tx.ID]; dup {
			e.discard(tx, domain.ErrDuplicateTransaction)
			return
		}
		e.processed[tx.ID] = struct{}{}

		if err := e.account(tx.ClientID).Settle(tx); err != nil {
			e.discard(tx, err)
			return
		}
	}

	e.metrics.TransactionsProcessed.WithLabelValues(string(tx.Type)).Inc()
}

// account fetches or creates the account owning clientID.
func (e *Engine) account(clientID domain.ClientID) *domain.Account {
	if a, ok := e.accounts[clientID]; ok {
		return a
	}

	a := domain.NewAccount(clientID)
	e.accounts[clientID] = a
	e.metrics.AccountsCreated.Inc()

	return a
}

// discard drops a transaction without effect. Every policy violation ends
// here: advisory log plus counter, never a failed run.
func (e *Engine) discard(tx domain.Transaction, err error) {
	e.metrics.TransactionsDiscarded.WithLabelValues(discardReason(err)).Inc()

	e.log.Error().
		Str("type", string(tx.Type)).
		Uint32("tx", uint32(tx.ID)).
		Uint16("client", uint16(tx.ClientID)).
		Err(err).
		Msg("transaction discarded")
}

func discardReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateTransaction):
		return "duplicate_id"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "no_account"
	case errors.Is(err, domain.ErrAccountLocked):
		return "account_locked"
	case errors.Is(err, domain.ErrMissingAmount):
		return "missing_amount"
	case errors.Is(err, domain.ErrNegativeAmount):
		return "negative_amount"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrUnknownTransaction):
		return "unknown_transaction"
	case errors.Is(err, domain.ErrAlreadyDisputed):
		return "already_disputed"
	case errors.Is(err, domain.ErrNotDisputable):
		return "not_disputable"
	case errors.Is(err, domain.ErrNotDisputed):
		return "not_disputed"
	default:
		return "other"
	}
}

func (e *Engine) snapshot() []*domain.Account {
	ids := make([]domain.ClientID, 0, len(e.accounts))
	for id := range e.accounts {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	accounts := make([]*domain.Account, 0, len(ids))
	for _, id := range ids {
		accounts = append(accounts, e.accounts[id])
	}

	return accounts
}
