package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/finance-ledger/ledger"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
}

func tx(txType ledger.TransactionType, amount int64, category string, date time.Time) ledger.Transaction {
	return ledger.Transaction{
		ID:        category + date.Format("2006-01-02"),
		AccountID: "acc-1",
		Type:      txType,
		Amount:    decimal.NewFromInt(amount),
		Category:  category,
		Date:      date,
	}
}

// =============================================================================
// BALANCES
// =============================================================================

func TestBalances_SplitByRole(t *testing.T) {
	accounts := []ledger.Account{
		{ID: "a", Role: ledger.RoleSpending, Balance: decimal.NewFromInt(100)},
		{ID: "b", Role: ledger.RoleSpending, Balance: decimal.NewFromInt(-30)},
		{ID: "c", Role: ledger.RoleReserve, Balance: decimal.NewFromInt(500)},
	}

	assert.True(t, ledger.SpendingBalance(accounts).Equal(decimal.NewFromInt(70)))
	assert.True(t, ledger.ReserveBalance(accounts).Equal(decimal.NewFromInt(500)))
}

func TestBalances_EmptyAccountsAreZero(t *testing.T) {
	assert.True(t, ledger.SpendingBalance(nil).IsZero())
	assert.True(t, ledger.ReserveBalance(nil).IsZero())
}

// =============================================================================
// MONTHLY CASHFLOW
// =============================================================================

func TestMonthlyCashflow_ExcludesTransfers(t *testing.T) {
	// GIVEN: Income 1000, expense 300, and a transfer 200 in the same month
	// WHEN: Computing the monthly cashflow
	// THEN: Income 1000, expense 300, balance 700 - the transfer is invisible

	month := day(2026, time.March, 1)
	txs := []ledger.Transaction{
		tx(ledger.TxIncome, 1000, "Salário", day(2026, time.March, 5)),
		tx(ledger.TxExpense, 300, "Mercado", day(2026, time.March, 10)),
		tx(ledger.TxTransfer, 200, "", day(2026, time.March, 15)),
	}

	flow := ledger.MonthlyCashflow(txs, month)
	assert.True(t, flow.Income.Equal(decimal.NewFromInt(1000)))
	assert.True(t, flow.Expense.Equal(decimal.NewFromInt(300)))
	assert.True(t, flow.Balance.Equal(decimal.NewFromInt(700)))
}

func TestMonthlyCashflow_FiltersByCalendarMonth(t *testing.T) {
	txs := []ledger.Transaction{
		tx(ledger.TxIncome, 100, "Salário", day(2026, time.February, 28)),
		tx(ledger.TxIncome, 50, "Extra", day(2026, time.March, 1)),
		tx(ledger.TxIncome, 25, "Extra", day(2025, time.March, 1)), // same month, other year
	}

	flow := ledger.MonthlyCashflow(txs, day(2026, time.March, 20))
	assert.True(t, flow.Income.Equal(decimal.NewFromInt(50)))
	assert.True(t, flow.Expense.IsZero())
}

// =============================================================================
// DAILY CASHFLOW
// =============================================================================

func TestDailyCashflow_CoversEveryDayOfTheMonth(t *testing.T) {
	// GIVEN: A 30-day month with activity on two days only
	// WHEN: Computing the daily cashflow
	// THEN: Exactly 30 entries, ascending day order, zeros everywhere else

	month := day(2026, time.September, 1)
	txs := []ledger.Transaction{
		tx(ledger.TxIncome, 500, "Salário", day(2026, time.September, 3)),
		tx(ledger.TxExpense, 80, "Mercado", day(2026, time.September, 3)),
		tx(ledger.TxExpense, 40, "Transporte", day(2026, time.September, 30)),
		tx(ledger.TxTransfer, 999, "", day(2026, time.September, 15)),
	}

	days := ledger.DailyCashflow(txs, month)
	require.Len(t, days, 30)

	for i, d := range days {
		assert.Equal(t, i+1, d.Day)
	}

	assert.True(t, days[2].Income.Equal(decimal.NewFromInt(500)))
	assert.True(t, days[2].Expense.Equal(decimal.NewFromInt(80)))
	assert.True(t, days[29].Expense.Equal(decimal.NewFromInt(40)))
	assert.True(t, days[14].Income.IsZero())
	assert.True(t, days[14].Expense.IsZero())
	assert.True(t, days[0].Income.IsZero())
}

func TestDailyCashflow_FebruaryLeapYear(t *testing.T) {
	days := ledger.DailyCashflow(nil, day(2028, time.February, 10))
	assert.Len(t, days, 29)
}

// =============================================================================
// EXPENSES BY CATEGORY
// =============================================================================

func TestExpensesByCategory_SortsDescendingWithPaletteColors(t *testing.T) {
	// GIVEN: Expenses A:50, B:200, C:120 in one month
	// WHEN: Aggregating by category
	// THEN: Output is B, C, A with the first three palette colors in order

	month := day(2026, time.May, 1)
	txs := []ledger.Transaction{
		tx(ledger.TxExpense, 50, "A", day(2026, time.May, 2)),
		tx(ledger.TxExpense, 200, "B", day(2026, time.May, 3)),
		tx(ledger.TxExpense, 120, "C", day(2026, time.May, 4)),
		tx(ledger.TxIncome, 5000, "A", day(2026, time.May, 5)), // income never counts
	}

	got := ledger.ExpensesByCategory(txs, month)
	require.Len(t, got, 3)

	assert.Equal(t, "B", got[0].Name)
	assert.Equal(t, "C", got[1].Name)
	assert.Equal(t, "A", got[2].Name)
	assert.True(t, got[0].Total.Equal(decimal.NewFromInt(200)))
	assert.True(t, got[1].Total.Equal(decimal.NewFromInt(120)))
	assert.True(t, got[2].Total.Equal(decimal.NewFromInt(50)))

	assert.Equal(t, "#a855f7", got[0].Color)
	assert.Equal(t, "#ec4899", got[1].Color)
	assert.Equal(t, "#f43f5e", got[2].Color)
}

func TestExpensesByCategory_TiesKeepFirstSeenOrder(t *testing.T) {
	month := day(2026, time.May, 1)
	txs := []ledger.Transaction{
		tx(ledger.TxExpense, 100, "Lazer", day(2026, time.May, 2)),
		tx(ledger.TxExpense, 100, "Mercado", day(2026, time.May, 3)),
	}

	got := ledger.ExpensesByCategory(txs, month)
	require.Len(t, got, 2)
	assert.Equal(t, "Lazer", got[0].Name)
	assert.Equal(t, "Mercado", got[1].Name)
}

func TestExpensesByCategory_AccumulatesRepeatedCategories(t *testing.T) {
	month := day(2026, time.May, 1)
	txs := []ledger.Transaction{
		tx(ledger.TxExpense, 30, "Mercado", day(2026, time.May, 2)),
		tx(ledger.TxExpense, 45, "Mercado", day(2026, time.May, 9)),
		tx(ledger.TxExpense, 10, "Mercado", day(2026, time.June, 1)), // other month
	}

	got := ledger.ExpensesByCategory(txs, month)
	require.Len(t, got, 1)
	assert.True(t, got[0].Total.Equal(decimal.NewFromInt(75)))
}

func TestExpensesByCategory_PaletteWrapsPastSevenCategories(t *testing.T) {
	month := day(2026, time.May, 1)
	var txs []ledger.Transaction
	for i := 0; i < 8; i++ {
		// Strictly decreasing totals so output order is deterministic.
		txs = append(txs, tx(ledger.TxExpense, int64(800-i*10), string(rune('A'+i)), day(2026, time.May, i+1)))
	}

	got := ledger.ExpensesByCategory(txs, month)
	require.Len(t, got, 8)
	assert.Equal(t, got[0].Color, got[7].Color)
}

func TestExpensesByCategory_EmptyMonth(t *testing.T) {
	got := ledger.ExpensesByCategory(nil, day(2026, time.May, 1))
	assert.Empty(t, got)
}
