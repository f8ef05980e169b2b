// Package ledger implements the in-memory client ledger.
//
// Core flow:
//   - Engine routes each Transaction to its client's Account, creating the
//     account on first reference.
//   - Account applies the operation: deposits and withdrawals create
//     transaction records, dispute/resolve/chargeback move an existing
//     record through its lifecycle and shift funds between available and
//     held.
//   - Snapshot reports every known account sorted by client id.
//
// Every successful mutation preserves total == available + held. Rejections
// are typed domain errors and never leave partially-applied state behind.
package ledger
