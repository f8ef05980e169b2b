package ledger

import "github.com/shopspring/decimal"

// ClientID identifies an account.
type ClientID uint16

// TransactionID identifies a transaction. Deposits and withdrawals mint new
// ids; dispute/resolve/chargeback reference existing ones.
type TransactionID uint32

// Kind is the closed set of operation kinds.
type Kind uint8

const (
	// KindDeposit credits the available balance.
	KindDeposit Kind = iota
	// KindWithdrawal debits the available balance.
	KindWithdrawal
	// KindDispute holds the funds of a referenced transaction.
	KindDispute
	// KindResolve releases a disputed transaction's held funds.
	KindResolve
	// KindChargeback reverses a disputed transaction and locks the account.
	KindChargeback
)

// String returns the lowercase wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindWithdrawal:
		return "withdrawal"
	case KindDispute:
		return "dispute"
	case KindResolve:
		return "resolve"
	case KindChargeback:
		return "chargeback"
	default:
		return "unknown"
	}
}

// Operation is one requested action against an account. Amount is set only
// for deposits and withdrawals and is always an exact decimal.
type Operation struct {
	TX     TransactionID
	Kind   Kind
	Amount decimal.Decimal
}

// Transaction is an operation routed to a client.
type Transaction struct {
	Client ClientID
	Op     Operation
}

// Deposit builds a deposit operation.
func Deposit(tx TransactionID, amount decimal.Decimal) Operation {
	return Operation{TX: tx, Kind: KindDeposit, Amount: amount}
}

// Withdrawal builds a withdrawal operation.
func Withdrawal(tx TransactionID, amount decimal.Decimal) Operation {
	return Operation{TX: tx, Kind: KindWithdrawal, Amount: amount}
}

// Dispute builds a dispute referencing tx.
func Dispute(tx TransactionID) Operation {
	return Operation{TX: tx, Kind: KindDispute}
}

// Resolve builds a resolve referencing tx.
func Resolve(tx TransactionID) Operation {
	return Operation{TX: tx, Kind: KindResolve}
}

// Chargeback builds a chargeback referencing tx.
func Chargeback(tx TransactionID) Operation {
	return Operation{TX: tx, Kind: KindChargeback}
}
