package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopStorage struct{}

func (nopStorage) LoadSlot(ctx context.Context, slot string, v any) error { return ErrSlotNotFound }
func (nopStorage) SaveSlot(ctx context.Context, slot string, v any) error { return nil }

func TestPayDebt_StampsPaymentWithEngineClock(t *testing.T) {
	fixed := time.Date(2026, time.August, 20, 14, 0, 0, 0, time.UTC)
	e := NewEngine(nopStorage{})
	e.now = func() time.Time { return fixed }
	ctx := context.Background()
	require.NoError(t, e.Load(ctx))

	acc, err := e.AddAccount(ctx, "Checking", AccountBank, RoleSpending, "", decimal.NewFromInt(500))
	require.NoError(t, err)
	d, err := e.AddDebt(ctx, "Boleto", decimal.NewFromInt(100), fixed.AddDate(0, 1, 0), 0)
	require.NoError(t, err)

	require.NoError(t, e.PayDebt(ctx, d.ID, acc.ID))

	txs := e.Transactions()
	require.Len(t, txs, 1)
	assert.True(t, txs[0].Date.Equal(fixed))
}

func TestReconcileDebts_UsesEngineClockDayBoundary(t *testing.T) {
	// Due yesterday at 23:59 is overdue; due today at 00:00 is not.
	now := time.Date(2026, time.August, 20, 0, 0, 1, 0, time.UTC)
	e := NewEngine(nopStorage{})
	e.now = func() time.Time { return now }
	ctx := context.Background()
	require.NoError(t, e.Load(ctx))

	yesterday, err := e.AddDebt(ctx, "A", decimal.NewFromInt(10),
		time.Date(2026, time.August, 19, 23, 59, 0, 0, time.UTC), 0)
	require.NoError(t, err)
	today, err := e.AddDebt(ctx, "B", decimal.NewFromInt(10),
		time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC), 0)
	require.NoError(t, err)

	promoted, err := e.ReconcileDebts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, promoted)

	for _, d := range e.Debts() {
		switch d.ID {
		case yesterday.ID:
			assert.Equal(t, DebtOverdue, d.Status)
		case today.ID:
			assert.Equal(t, DebtPending, d.Status)
		}
	}
}
