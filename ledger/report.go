/*
report.go - Derived cashflow and category aggregations

PURPOSE:
  Read-only projections over the current collections: spending/reserve
  balances, monthly and daily cashflow, and per-category expense totals.
  All functions here are pure - they take an explicit snapshot and have no
  side effects - so they are trivially testable and safe to call from any
  goroutine.

TRANSFER EXCLUSION:
  Transfers move money between the user's own accounts, so cashflow
  aggregates exclude them entirely. Only income and expense count.

CATEGORY COLORS:
  Expense categories get a color from a fixed cyclic palette, indexed by
  position in the sorted output (largest total = first palette color).

SEE ALSO:
  - engine.go: Snapshot accessors these are layered on
*/
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// categoryPalette is the fixed cyclic palette for category aggregation.
var categoryPalette = []string{
	"#a855f7", "#ec4899", "#f43f5e", "#f59e0b", "#10b981", "#3b82f6", "#6366f1",
}

// =============================================================================
// BALANCES
// =============================================================================

// SpendingBalance sums balances over accounts with the spending role.
func SpendingBalance(accounts []Account) decimal.Decimal {
	return balanceByRole(accounts, RoleSpending)
}

// ReserveBalance sums balances over accounts with the reserve role.
func ReserveBalance(accounts []Account) decimal.Decimal {
	return balanceByRole(accounts, RoleReserve)
}

func balanceByRole(accounts []Account, role AccountRole) decimal.Decimal {
	total := decimal.Zero
	for _, acc := range accounts {
		if acc.Role == role {
			total = total.Add(acc.Balance)
		}
	}
	return total
}

// =============================================================================
// CASHFLOW
// =============================================================================

// Cashflow is an income/expense summary; Balance = Income - Expense.
type Cashflow struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// MonthlyCashflow sums income and expense over transactions in monthRef's
// calendar month, excluding transfers.
func MonthlyCashflow(transactions []Transaction, monthRef time.Time) Cashflow {
	income, expense := decimal.Zero, decimal.Zero
	for _, tx := range transactions {
		if tx.Type == TxTransfer || !SameMonth(tx.Date, monthRef) {
			continue
		}
		switch tx.Type {
		case TxIncome:
			income = income.Add(tx.Amount)
		case TxExpense:
			expense = expense.Add(tx.Amount)
		}
	}
	return Cashflow{Income: income, Expense: expense, Balance: income.Sub(expense)}
}

// DayCashflow is one calendar day's income/expense totals.
type DayCashflow struct {
	Day     int             `json:"day"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// DailyCashflow returns one entry per calendar day of monthRef's month, in
// ascending day order, first to last day inclusive. Days with no activity
// carry zero totals. Transfers are excluded.
func DailyCashflow(transactions []Transaction, monthRef time.Time) []DayCashflow {
	days := make([]DayCashflow, DaysInMonth(monthRef))
	for i := range days {
		days[i] = DayCashflow{Day: i + 1, Income: decimal.Zero, Expense: decimal.Zero}
	}

	for _, tx := range transactions {
		if tx.Type == TxTransfer || !SameMonth(tx.Date, monthRef) {
			continue
		}
		d := tx.Date.Day() - 1
		switch tx.Type {
		case TxIncome:
			days[d].Income = days[d].Income.Add(tx.Amount)
		case TxExpense:
			days[d].Expense = days[d].Expense.Add(tx.Amount)
		}
	}
	return days
}

// =============================================================================
// CATEGORY AGGREGATION
// =============================================================================

// CategoryTotal is one category's expense total with its display color.
type CategoryTotal struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"value"`
	Color string          `json:"color"`
}

// ExpensesByCategory groups expense transactions in monthRef's month by
// category and returns totals sorted descending. Ties keep first-seen order
// (the order categories appear in the transaction sequence). Colors come
// from the cyclic palette, indexed by output position.
func ExpensesByCategory(transactions []Transaction, monthRef time.Time) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	var order []string

	for _, tx := range transactions {
		if tx.Type != TxExpense || !SameMonth(tx.Date, monthRef) {
			continue
		}
		if _, seen := totals[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
	}

	result := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		result = append(result, CategoryTotal{Name: name, Total: totals[name]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total.GreaterThan(result[j].Total)
	})
	for i := range result {
		result[i].Color = categoryPalette[i%len(categoryPalette)]
	}
	return result
}
