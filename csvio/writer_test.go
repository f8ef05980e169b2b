package csvio

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"settler/ledger"
)

func TestWriteSnapshot(t *testing.T) {
	rows := []ledger.AccountSnapshot{
		{
			Client:    1,
			Available: decimal.RequireFromString("1.6666"),
			Held:      decimal.Zero,
			Total:     decimal.RequireFromString("1.6666"),
			Locked:    true,
		},
		{
			Client:    2,
			Available: decimal.RequireFromString("10.1234"),
			Held:      decimal.Zero,
			Total:     decimal.RequireFromString("10.1234"),
			Locked:    false,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, rows))

	assert.Equal(t,
		"client,available,held,total,locked\n"+
			"1,1.6666,0,1.6666,true\n"+
			"2,10.1234,0,10.1234,false\n",
		buf.String(),
	)
}

func TestWriteSnapshotEmpty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteSnapshot(&buf, nil))

	assert.Zero(t, buf.Len())
}

// Decimal scale survives arithmetic: a fully-disputed 1.7777 deposit leaves
// an available balance that renders as 0.0000, not 0.
func TestWriteSnapshotPreservesScale(t *testing.T) {
	amount := decimal.RequireFromString("1.7777")

	rows := []ledger.AccountSnapshot{
		{
			Client:    3,
			Available: amount.Sub(amount),
			Held:      amount,
			Total:     amount,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, rows))

	assert.Equal(t,
		"client,available,held,total,locked\n"+
			"3,0.0000,1.7777,1.7777,false\n",
		buf.String(),
	)
}

// Rendering must not normalize trailing zeros away: the scale a balance
// carries is part of the report.
func TestFormatAmountKeepsTrackedScale(t *testing.T) {
	tests := []struct {
		amount   decimal.Decimal
		rendered string
	}{
		{amount: decimal.Decimal{}, rendered: "0"},
		{amount: decimal.RequireFromString("1"), rendered: "1"},
		{amount: decimal.RequireFromString("1.5"), rendered: "1.5"},
		{amount: decimal.RequireFromString("10.1234"), rendered: "10.1234"},
		{
			// Zero at exponent -4, the residue of a fully-disputed 1.7777.
			amount:   decimal.RequireFromString("1.7777").Sub(decimal.RequireFromString("1.7777")),
			rendered: "0.0000",
		},
		{
			// Negative held balance from a disputed withdrawal.
			amount:   decimal.RequireFromString("-2.50"),
			rendered: "-2.50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.rendered, func(t *testing.T) {
			assert.Equal(t, tt.rendered, formatAmount(tt.amount))
		})
	}
}

func TestWriteSnapshotZeroValueBalances(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteSnapshot(&buf, []ledger.AccountSnapshot{{Client: 7}}))

	assert.Equal(t,
		"client,available,held,total,locked\n"+
			"7,0,0,0,false\n",
		buf.String(),
	)
}
