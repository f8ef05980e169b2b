package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrorCode is a domain error code used by ledger validations.
type ErrorCode string

const (
	// ErrorDuplicateTransaction indicates a deposit or withdrawal reused an id.
	ErrorDuplicateTransaction ErrorCode = "0001"
	// ErrorTransactionNotFound indicates a referenced transaction does not exist.
	ErrorTransactionNotFound ErrorCode = "0002"
	// ErrorInsufficientFunds indicates a withdrawal exceeds the available balance.
	ErrorInsufficientFunds ErrorCode = "0003"
	// ErrorDisputeInsufficientFunds indicates a dispute would drive available negative.
	ErrorDisputeInsufficientFunds ErrorCode = "0004"
	// ErrorInvalidStateTransition indicates an illegal transaction lifecycle move.
	ErrorInvalidStateTransition ErrorCode = "0005"
	// ErrorAccountLocked indicates any operation on an account after its chargeback.
	ErrorAccountLocked ErrorCode = "0006"
	// ErrorUnknownKind indicates an operation kind outside the closed set.
	ErrorUnknownKind ErrorCode = "0007"
)

// DomainError represents a structured ledger rejection. It is local to the
// offending operation: balances are never partially mutated before one is
// returned.
type DomainError struct {
	Code    ErrorCode
	TX      TransactionID
	Message string
}

// Error returns the formatted domain error string.
func (e DomainError) Error() string {
	return fmt.Sprintf("%s: transaction %d: %s", e.Code, e.TX, e.Message)
}

func errDuplicateTransaction(tx TransactionID) error {
	return DomainError{
		Code:    ErrorDuplicateTransaction,
		TX:      tx,
		Message: "deposit/withdrawal id is duplicated",
	}
}

func errTransactionNotFound(tx TransactionID) error {
	return DomainError{
		Code:    ErrorTransactionNotFound,
		TX:      tx,
		Message: "dispute/resolve/chargeback references an unknown id",
	}
}

func errInsufficientFunds(tx TransactionID, available, requested decimal.Decimal) error {
	return DomainError{
		Code:    ErrorInsufficientFunds,
		TX:      tx,
		Message: fmt.Sprintf("withdrawal of %s exceeds available balance %s", requested, available),
	}
}

func errDisputeInsufficientFunds(tx TransactionID) error {
	return DomainError{
		Code:    ErrorDisputeInsufficientFunds,
		TX:      tx,
		Message: "dispute would result in a negative available balance",
	}
}

func errInvalidStateTransition(tx TransactionID, from, to State) error {
	return DomainError{
		Code:    ErrorInvalidStateTransition,
		TX:      tx,
		Message: fmt.Sprintf("cannot move from %s to %s", from, to),
	}
}

func errAccountLocked(tx TransactionID) error {
	return DomainError{
		Code:    ErrorAccountLocked,
		TX:      tx,
		Message: "account is locked",
	}
}

func errUnknownKind(tx TransactionID, kind Kind) error {
	return DomainError{
		Code:    ErrorUnknownKind,
		TX:      tx,
		Message: fmt.Sprintf("unsupported operation kind %d", kind),
	}
}
