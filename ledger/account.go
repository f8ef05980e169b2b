package ledger

import "github.com/shopspring/decimal"

// Account owns the balance and transaction records of one client. Records
// are never shared across accounts and live for the run.
type Account struct {
	id      ClientID
	records map[TransactionID]*record

	available decimal.Decimal
	held      decimal.Decimal
	total     decimal.Decimal
	locked    bool
}

// AccountSnapshot is the read-only balance view of one account.
type AccountSnapshot struct {
	Client    ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}

// NewAccount creates an empty, unlocked account for the given client.
func NewAccount(id ClientID) *Account {
	return &Account{
		id:      id,
		records: make(map[TransactionID]*record),
	}
}

// Balances returns the current balance and lock state.
func (a *Account) Balances() AccountSnapshot {
	return AccountSnapshot{
		Client:    a.id,
		Available: a.available,
		Held:      a.held,
		Total:     a.total,
		Locked:    a.locked,
	}
}

// Apply executes one operation against the account. On rejection the
// account is left exactly as it was; every successful branch moves two
// balance fields by the same delta, so total == available + held holds
// throughout.
func (a *Account) Apply(op Operation) error {
	if a.locked {
		return errAccountLocked(op.TX)
	}

	switch op.Kind {
	case KindDeposit:
		return a.deposit(op.TX, op.Amount)
	case KindWithdrawal:
		return a.withdraw(op.TX, op.Amount)
	case KindDispute:
		return a.dispute(op.TX)
	case KindResolve:
		return a.resolve(op.TX)
	case KindChargeback:
		return a.chargeback(op.TX)
	default:
		return errUnknownKind(op.TX, op.Kind)
	}
}

func (a *Account) deposit(tx TransactionID, amount decimal.Decimal) error {
	if _, exists := a.records[tx]; exists {
		return errDuplicateTransaction(tx)
	}

	a.records[tx] = newRecord(tx, amount)
	a.total = a.total.Add(amount)
	a.available = a.available.Add(amount)

	return nil
}

func (a *Account) withdraw(tx TransactionID, amount decimal.Decimal) error {
	if _, exists := a.records[tx]; exists {
		return errDuplicateTransaction(tx)
	}

	if a.available.LessThan(amount) {
		return errInsufficientFunds(tx, a.available, amount)
	}

	a.records[tx] = newRecord(tx, amount.Neg())
	a.total = a.total.Sub(amount)
	a.available = a.available.Sub(amount)

	return nil
}

// dispute holds the referenced transaction's funds: available decreases and
// held increases by the record's signed amount. For a withdrawal the amount
// is negative, so the shift runs the other way; see the account tests for
// the worked cases.
func (a *Account) dispute(tx TransactionID) error {
	rec, exists := a.records[tx]
	if !exists {
		return errTransactionNotFound(tx)
	}

	if a.available.LessThan(rec.amount) {
		return errDisputeInsufficientFunds(tx)
	}

	if err := rec.transition(StateInDispute); err != nil {
		return err
	}

	a.available = a.available.Sub(rec.amount)
	a.held = a.held.Add(rec.amount)

	return nil
}

// resolve releases a disputed transaction's funds back to available, the
// exact reverse of dispute.
func (a *Account) resolve(tx TransactionID) error {
	rec, exists := a.records[tx]
	if !exists {
		return errTransactionNotFound(tx)
	}

	if err := rec.transition(StateResolved); err != nil {
		return err
	}

	a.available = a.available.Add(rec.amount)
	a.held = a.held.Sub(rec.amount)

	return nil
}

// chargeback withdraws a disputed transaction's held funds and permanently
// locks the account.
func (a *Account) chargeback(tx TransactionID) error {
	rec, exists := a.records[tx]
	if !exists {
		return errTransactionNotFound(tx)
	}

	if err := rec.transition(StateChargedback); err != nil {
		return err
	}

	a.held = a.held.Sub(rec.amount)
	a.total = a.total.Sub(rec.amount)
	a.locked = true

	return nil
}
