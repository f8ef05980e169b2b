package csvio

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"settler/ledger"
)

// readAll collects every decode result until EOF.
func readAll(t *testing.T, input string) ([]ledger.Transaction, []error) {
	t.Helper()

	r := NewReader(strings.NewReader(input))

	var (
		transactions []ledger.Transaction
		errs         []error
	)

	for {
		transaction, err := r.Next()
		if errors.Is(err, io.EOF) {
			return transactions, errs
		}

		if err != nil {
			errs = append(errs, err)
			continue
		}

		transactions = append(transactions, transaction)
	}
}

func rows(data ...string) string {
	return strings.Join(append([]string{"type, client, tx, amount"}, data...), "\n")
}

func TestDecodePerKind(t *testing.T) {
	amount := decimal.RequireFromString("1.0")

	tests := []struct {
		name     string
		row      string
		expected ledger.Transaction
	}{
		{
			name:     "deposit",
			row:      "deposit, 1, 2, 1.0",
			expected: ledger.Transaction{Client: 1, Op: ledger.Deposit(2, amount)},
		},
		{
			name:     "withdrawal",
			row:      "withdrawal, 1, 2, 1.0",
			expected: ledger.Transaction{Client: 1, Op: ledger.Withdrawal(2, amount)},
		},
		{
			name:     "dispute without amount",
			row:      "dispute, 1, 2,",
			expected: ledger.Transaction{Client: 1, Op: ledger.Dispute(2)},
		},
		{
			name: "dispute ignores amount",
			row:  "dispute, 1, 2, 1",
			// The amount cell is meaningless for references and dropped.
			expected: ledger.Transaction{Client: 1, Op: ledger.Dispute(2)},
		},
		{
			name:     "resolve",
			row:      "resolve, 1, 2,",
			expected: ledger.Transaction{Client: 1, Op: ledger.Resolve(2)},
		},
		{
			name:     "chargeback",
			row:      "chargeback, 1, 2,",
			expected: ledger.Transaction{Client: 1, Op: ledger.Chargeback(2)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transactions, errs := readAll(t, rows(tt.row))

			require.Empty(t, errs)
			require.Len(t, transactions, 1)

			got := transactions[0]
			assert.Equal(t, tt.expected.Client, got.Client)
			assert.Equal(t, tt.expected.Op.TX, got.Op.TX)
			assert.Equal(t, tt.expected.Op.Kind, got.Op.Kind)
			assert.True(t, tt.expected.Op.Amount.Equal(got.Op.Amount))
		})
	}
}

func TestDecodeNormalizesAmountScale(t *testing.T) {
	tests := []struct {
		cell     string
		rendered string
	}{
		{cell: "1.0", rendered: "1"},
		{cell: "1.50", rendered: "1.5"},
		{cell: "0.6666", rendered: "0.6666"},
		{cell: "2", rendered: "2"},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			transactions, errs := readAll(t, rows("deposit, 1, 1, "+tt.cell))

			require.Empty(t, errs)
			require.Len(t, transactions, 1)
			assert.Equal(t, tt.rendered, transactions[0].Op.Amount.String())
		})
	}
}

func TestDecodeFailures(t *testing.T) {
	tests := []struct {
		name   string
		row    string
		reason string
	}{
		{name: "deposit without amount", row: "deposit, 1, 1,", reason: "must have an amount"},
		{name: "withdrawal without amount", row: "withdrawal, 1, 1,", reason: "must have an amount"},
		{name: "garbage amount", row: "deposit, 1, 1, abc", reason: "invalid amount"},
		{name: "unknown type", row: "transfer, 1, 1, 1.0", reason: "unknown transaction type"},
		{name: "client out of range", row: "deposit, 70000, 1, 1.0", reason: "invalid client id"},
		{name: "non-numeric tx", row: "deposit, 1, x, 1.0", reason: "invalid transaction id"},
		{name: "short row", row: "deposit, 1, 1", reason: "wrong number of fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transactions, errs := readAll(t, rows(tt.row))

			assert.Empty(t, transactions)
			require.Len(t, errs, 1)

			var decodeErr DecodeError
			require.True(t, errors.As(errs[0], &decodeErr))
			assert.Equal(t, 2, decodeErr.Line)
			assert.Contains(t, decodeErr.Reason, tt.reason)
		})
	}
}

func TestDecodeContinuesPastMalformedRow(t *testing.T) {
	input := rows(
		"deposit, 1, 1, 1.0",
		"transfer, 1, 2, 1.0",
		"deposit, 2, 3, 2.0",
	)

	transactions, errs := readAll(t, input)

	require.Len(t, errs, 1)
	require.Len(t, transactions, 2)
	assert.Equal(t, ledger.ClientID(1), transactions[0].Client)
	assert.Equal(t, ledger.ClientID(2), transactions[1].Client)
}

func TestDecodeHeaderColumnOrderIsFree(t *testing.T) {
	input := "amount, tx, client, type\n1.5, 4, 2, deposit"

	transactions, errs := readAll(t, input)

	require.Empty(t, errs)
	require.Len(t, transactions, 1)
	assert.Equal(t, ledger.ClientID(2), transactions[0].Client)
	assert.Equal(t, ledger.TransactionID(4), transactions[0].Op.TX)
	assert.True(t, transactions[0].Op.Amount.Equal(decimal.RequireFromString("1.5")))
}

func TestDecodeMissingHeaderColumns(t *testing.T) {
	r := NewReader(strings.NewReader("foo, bar\n1, 2"))

	_, err := r.Next()

	var decodeErr DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Contains(t, decodeErr.Reason, "header")
}

func TestDecodeEmptyInput(t *testing.T) {
	r := NewReader(strings.NewReader(""))

	_, err := r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestDecodeHeaderOnly(t *testing.T) {
	r := NewReader(strings.NewReader("type,client,tx,amount"))

	_, err := r.Next()
	assert.ErrorIs(t, err, io.EOF)
}
