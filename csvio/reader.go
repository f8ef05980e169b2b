package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"settler/ledger"
)

// DecodeError reports a malformed input row. It is a boundary error: the
// ledger core never sees the row, and the caller decides whether to skip or
// abort.
type DecodeError struct {
	Line   int
	Reason string
}

// Error returns the formatted decode error string.
func (e DecodeError) Error() string {
	return fmt.Sprintf("failed to parse input line %d: %s", e.Line, e.Reason)
}

func decodeErr(line int, format string, args ...any) error {
	return DecodeError{Line: line, Reason: fmt.Sprintf(format, args...)}
}

// column indices resolved from the header row. amount may be absent, since
// dispute/resolve/chargeback rows carry none.
type columns struct {
	kind   int
	client int
	tx     int
	amount int
}

// Reader lazily decodes transactions from CSV input. Cells are matched to
// columns by header name and whitespace-trimmed, so `deposit, 1, 1, 1.0`
// and `deposit,1,1,1.0` are equivalent.
type Reader struct {
	csv       *csv.Reader
	cols      columns
	line      int
	headerErr error
}

// NewReader wraps r in a transaction decoder. The header row is read on the
// first Next call.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	return &Reader{
		csv:  cr,
		cols: columns{kind: -1, client: -1, tx: -1, amount: -1},
	}
}

// Next returns the next well-formed transaction. It returns io.EOF after
// the last row, and a DecodeError for a malformed row; decoding may
// continue past a malformed row if the caller chooses to.
func (r *Reader) Next() (ledger.Transaction, error) {
	if r.line == 0 && r.headerErr == nil {
		r.headerErr = r.readHeader()
	}

	// A bad header poisons the whole stream: no row can be decoded without
	// resolved columns.
	if r.headerErr != nil {
		return ledger.Transaction{}, r.headerErr
	}

	row, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		return ledger.Transaction{}, io.EOF
	}

	r.line++

	if err != nil {
		return ledger.Transaction{}, decodeErr(r.line, "%v", err)
	}

	return r.decode(row)
}

func (r *Reader) readHeader() error {
	header, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}

		return decodeErr(1, "reading header: %v", err)
	}

	r.line = 1

	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "type":
			r.cols.kind = i
		case "client":
			r.cols.client = i
		case "tx":
			r.cols.tx = i
		case "amount":
			r.cols.amount = i
		}
	}

	if r.cols.kind < 0 || r.cols.client < 0 || r.cols.tx < 0 {
		return decodeErr(1, "header must name the type, client and tx columns")
	}

	return nil
}

func (r *Reader) decode(row []string) (ledger.Transaction, error) {
	client, err := strconv.ParseUint(strings.TrimSpace(row[r.cols.client]), 10, 16)
	if err != nil {
		return ledger.Transaction{}, decodeErr(r.line, "invalid client id %q", row[r.cols.client])
	}

	tx, err := strconv.ParseUint(strings.TrimSpace(row[r.cols.tx]), 10, 32)
	if err != nil {
		return ledger.Transaction{}, decodeErr(r.line, "invalid transaction id %q", row[r.cols.tx])
	}

	id := ledger.TransactionID(tx)

	var op ledger.Operation

	switch kind := strings.TrimSpace(row[r.cols.kind]); kind {
	case "deposit":
		amount, err := r.amount(row)
		if err != nil {
			return ledger.Transaction{}, err
		}

		op = ledger.Deposit(id, amount)
	case "withdrawal":
		amount, err := r.amount(row)
		if err != nil {
			return ledger.Transaction{}, err
		}

		op = ledger.Withdrawal(id, amount)
	case "dispute":
		op = ledger.Dispute(id)
	case "resolve":
		op = ledger.Resolve(id)
	case "chargeback":
		op = ledger.Chargeback(id)
	default:
		return ledger.Transaction{}, decodeErr(r.line, "unknown transaction type %q", kind)
	}

	return ledger.Transaction{Client: ledger.ClientID(client), Op: op}, nil
}

// amount parses the amount cell, which deposits and withdrawals must carry.
func (r *Reader) amount(row []string) (decimal.Decimal, error) {
	if r.cols.amount < 0 || r.cols.amount >= len(row) {
		return decimal.Zero, decodeErr(r.line, "deposit/withdrawal row has no amount column")
	}

	cell := strings.TrimSpace(row[r.cols.amount])
	if cell == "" {
		return decimal.Zero, decodeErr(r.line, "deposit/withdrawal transaction must have an amount")
	}

	// Amounts enter the ledger at their minimal scale: `2.0` is the same
	// value as `2` and must report as `2`. Balances still widen to the
	// largest scale they have seen, so a fully-disputed 1.7777 deposit
	// reports an available balance of 0.0000.
	if strings.Contains(cell, ".") {
		cell = strings.TrimRight(cell, "0")
		cell = strings.TrimSuffix(cell, ".")
	}

	amount, err := decimal.NewFromString(cell)
	if err != nil {
		return decimal.Zero, decodeErr(r.line, "invalid amount %q", cell)
	}

	return amount, nil
}
