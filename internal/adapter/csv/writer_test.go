package csv

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/xact/internal/domain"
)

func testAccounts() []domain.Account {
	return []domain.Account{
		{Client: 1, Available: dec("0.0"), Held: dec("0.0")},
		{Client: 2, Available: dec("10.0"), Held: dec("0.0")},
		{Client: 3, Available: dec("0.0"), Held: dec("20.0")},
		{Client: 4, Available: dec("10.0"), Held: dec("20.0")},
		{Client: 5, Available: dec("5.0"), Held: dec("0.0"), Locked: true},
	}
}

func TestWriter_AllAmountAndLockedCombinations(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 4)

	err := w.Write(context.Background(), testAccounts())

	require.NoError(t, err)
	assert.Equal(t, "client,available,held,total,locked\n"+
		"1,0.0000,0.0000,0.0000,false\n"+
		"2,10.0000,0.0000,10.0000,false\n"+
		"3,0.0000,20.0000,20.0000,false\n"+
		"4,10.0000,20.0000,30.0000,false\n"+
		"5,5.0000,0.0000,5.0000,true\n", buf.String())
}

func TestWriter_ExactPrecision(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, -1)

	err := w.Write(context.Background(), []domain.Account{
		{Client: 2, Available: dec("672.62"), Held: dec("-72.6052")},
	})

	require.NoError(t, err)
	assert.Equal(t, "client,available,held,total,locked\n"+
		"2,672.62,-72.6052,600.0148,false\n", buf.String())
}

func TestWriter_ExactPrecisionKeepsSubUnitAmounts(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, ExactPrecision)

	err := w.Write(context.Background(), []domain.Account{
		{Client: 1, Available: dec("0.00005"), Held: dec("0.00004")},
	})

	require.NoError(t, err)
	assert.Equal(t, "client,available,held,total,locked\n"+
		"1,0.00005,0.00004,0.00009,false\n", buf.String())
}

func TestWriter_FixedPrecisionRoundsEachColumn(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 4)

	err := w.Write(context.Background(), []domain.Account{
		{Client: 1, Available: dec("0.00005"), Held: dec("0.00004")},
	})

	require.NoError(t, err)
	assert.Equal(t, "client,available,held,total,locked\n"+
		"1,0.0001,0.0000,0.0001,false\n", buf.String())
}

func TestWriter_HeaderWrittenOnce(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 2)
	ctx := context.Background()

	require.NoError(t, w.Write(ctx, testAccounts()[:1]))
	require.NoError(t, w.Write(ctx, testAccounts()[1:2]))

	assert.Equal(t, "client,available,held,total,locked\n"+
		"1,0.00,0.00,0.00,false\n"+
		"2,10.00,0.00,10.00,false\n", buf.String())
}

func TestWriter_EmptyLedgerWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewWriter(&buf, 4).Write(context.Background(), nil))

	assert.Equal(t, "client,available,held,total,locked\n", buf.String())
}

func TestWriter_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewWriter(&bytes.Buffer{}, 4).Write(ctx, testAccounts())

	assert.ErrorIs(t, err, context.Canceled)
}
