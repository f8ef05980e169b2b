package ledger

import (
	"context"
	"sort"

	"settler/assert"
	"settler/log"
)

// Engine routes transactions to client accounts and reports the final
// snapshot. It is the sole owner of every Account; processing is strictly
// sequential, so no locking discipline is needed here.
type Engine struct {
	accounts map[ClientID]*Account
	logger   log.Logger
	asserter *assert.Asserter
}

// NewEngine creates an empty engine. A nil logger is replaced with a no-op
// logger.
func NewEngine(logger log.Logger) *Engine {
	if logger == nil {
		logger = log.NewNop()
	}

	return &Engine{
		accounts: make(map[ClientID]*Account),
		logger:   logger,
		asserter: assert.New(logger, "ledger"),
	}
}

// Apply routes one transaction to its account, creating the account on
// first reference. Creation happens before delegation: an account that only
// ever received a failing dispute still shows up in the snapshot with zero
// balances.
func (e *Engine) Apply(ctx context.Context, t Transaction) error {
	account, exists := e.accounts[t.Client]
	if !exists {
		account = NewAccount(t.Client)
		e.accounts[t.Client] = account
	}

	if err := account.Apply(t.Op); err != nil {
		return err
	}

	e.audit(ctx, account)

	return nil
}

// audit checks the balance equation after a successful mutation. Every
// Apply branch moves two fields by one delta, so a violation here means a
// bug, not bad input; it is logged and processing continues.
func (e *Engine) audit(ctx context.Context, account *Account) {
	snap := account.Balances()

	_ = e.asserter.That(ctx, "apply",
		snap.Total.Equal(snap.Available.Add(snap.Held)),
		"total must equal available plus held",
		"client", snap.Client,
		"available", snap.Available,
		"held", snap.Held,
		"total", snap.Total,
	)
}

// Snapshot returns one row per known account, sorted by ascending client id
// so identical inputs always produce identical output.
func (e *Engine) Snapshot() []AccountSnapshot {
	rows := make([]AccountSnapshot, 0, len(e.accounts))
	for _, account := range e.accounts {
		rows = append(rows, account.Balances())
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Client < rows[j].Client
	})

	return rows
}
