package ledger

import "github.com/shopspring/decimal"

// State is the lifecycle state of a transaction record.
//
// Legal transitions:
//
//	New       → InDispute
//	InDispute → Resolved | Chargedback
//	<state>   → <state>   (no-op)
//
// Resolved and Chargedback are terminal. A transaction cannot be disputed
// twice, so there is no Resolved → InDispute edge.
type State uint8

const (
	// StateNew marks a freshly recorded deposit or withdrawal.
	StateNew State = iota
	// StateInDispute marks a transaction whose funds are held.
	StateInDispute
	// StateResolved marks a dispute released back to available funds.
	StateResolved
	// StateChargedback marks a reversed transaction; the account is locked.
	StateChargedback
)

// String returns the string representation of a state.
func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateInDispute:
		return "in_dispute"
	case StateResolved:
		return "resolved"
	case StateChargedback:
		return "charged_back"
	default:
		return "unknown"
	}
}

// record tracks one deposit or withdrawal through its lifecycle. The amount
// is signed: positive for deposits, negative for withdrawals, which keeps
// the held-fund arithmetic uniform across both kinds.
type record struct {
	tx     TransactionID
	amount decimal.Decimal
	state  State
}

func newRecord(tx TransactionID, amount decimal.Decimal) *record {
	return &record{tx: tx, amount: amount, state: StateNew}
}

// transition moves the record to the requested state, failing without
// mutation on any pair outside the legal set. Identity pairs always succeed
// as no-ops.
func (r *record) transition(to State) error {
	from := r.state

	switch {
	case from == StateNew && to == StateInDispute:
	case from == StateInDispute && to == StateResolved:
	case from == StateInDispute && to == StateChargedback:
	case from == to:
	default:
		return errInvalidStateTransition(r.tx, from, to)
	}

	r.state = to

	return nil
}
