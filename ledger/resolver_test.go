package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/finance-ledger/ledger"
)

func debt(id string, status ledger.DebtStatus, due time.Time) ledger.Debt {
	return ledger.Debt{
		ID:          id,
		Name:        "debt " + id,
		TotalAmount: decimal.NewFromInt(100),
		DueDate:     due,
		Status:      status,
	}
}

func TestResolveDebtStatuses_PromotesPastDuePending(t *testing.T) {
	now := time.Date(2026, time.April, 15, 10, 30, 0, 0, time.UTC)
	debts := []ledger.Debt{
		debt("past", ledger.DebtPending, now.AddDate(0, 0, -1)),
		debt("future", ledger.DebtPending, now.AddDate(0, 0, 1)),
	}

	out, changed := ledger.ResolveDebtStatuses(debts, now)
	require.Len(t, out, 2)
	assert.Equal(t, 1, changed)
	assert.Equal(t, ledger.DebtOverdue, out[0].Status)
	assert.Equal(t, ledger.DebtPending, out[1].Status)
}

func TestResolveDebtStatuses_DueTodayStaysPending(t *testing.T) {
	// Due date and now fall on the same calendar day, even though the due
	// timestamp is hours earlier.
	now := time.Date(2026, time.April, 15, 23, 0, 0, 0, time.UTC)
	due := time.Date(2026, time.April, 15, 1, 0, 0, 0, time.UTC)

	out, changed := ledger.ResolveDebtStatuses([]ledger.Debt{debt("today", ledger.DebtPending, due)}, now)
	assert.Equal(t, 0, changed)
	assert.Equal(t, ledger.DebtPending, out[0].Status)
}

func TestResolveDebtStatuses_PaidIsTerminal(t *testing.T) {
	now := time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC)

	out, changed := ledger.ResolveDebtStatuses([]ledger.Debt{
		debt("paid", ledger.DebtPaid, now.AddDate(0, 0, -30)),
	}, now)
	assert.Equal(t, 0, changed)
	assert.Equal(t, ledger.DebtPaid, out[0].Status)
}

func TestResolveDebtStatuses_Idempotent(t *testing.T) {
	// GIVEN: A mix of statuses
	// WHEN: Running the pass twice
	// THEN: The second pass reports zero changes and identical output

	now := time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC)
	debts := []ledger.Debt{
		debt("a", ledger.DebtPending, now.AddDate(0, 0, -5)),
		debt("b", ledger.DebtOverdue, now.AddDate(0, 0, -60)),
		debt("c", ledger.DebtPending, now.AddDate(0, 1, 0)),
		debt("d", ledger.DebtPaid, now.AddDate(0, 0, -5)),
	}

	first, changed := ledger.ResolveDebtStatuses(debts, now)
	require.Equal(t, 1, changed)

	second, changed := ledger.ResolveDebtStatuses(first, now)
	assert.Equal(t, 0, changed)
	assert.Equal(t, first, second)
}

func TestResolveDebtStatuses_DoesNotMutateInput(t *testing.T) {
	now := time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC)
	debts := []ledger.Debt{debt("past", ledger.DebtPending, now.AddDate(0, 0, -1))}

	_, changed := ledger.ResolveDebtStatuses(debts, now)
	require.Equal(t, 1, changed)
	assert.Equal(t, ledger.DebtPending, debts[0].Status)
}
