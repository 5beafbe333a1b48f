/*
Package ledger provides the core personal-finance state-transition engine.

PURPOSE:
  This package contains the domain model and the mutation/query engine for a
  single-user finance tracker: accounts, transactions, savings goals, and
  debts. Balances are derived-but-stored running totals, updated incrementally
  by every transaction mutation.

KEY CONCEPTS IN THIS FILE (types.go):
  - Account: A money container with a role (spending vs. reserve)
  - Transaction: An income/expense/transfer record, immutable once created
  - Goal: A savings target, optionally linked to a reserve account
  - Debt: An obligation with a due date and a pending/paid/overdue status

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal to avoid floating-point error
     accumulation over repeated add/subtract
  2. Interop: JSON field names and enum literals are the interchange format
     with any persisted data; do not rename them
  3. No behavior here: entities are shapes, the engine owns the rules

SEE ALSO:
  - engine.go: Mutation operations and the balance-consistency invariant
  - report.go: Derived cashflow and category aggregations
  - resolver.go: Debt status reconciliation
*/
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ACCOUNT
// =============================================================================

type AccountType string

const (
	AccountWallet     AccountType = "wallet"
	AccountBank       AccountType = "bank"
	AccountInvestment AccountType = "investment"
)

type AccountRole string

const (
	RoleSpending AccountRole = "spending"
	RoleReserve  AccountRole = "reserve"
)

// Account is a money container. Balance is a running total maintained by the
// engine: at any quiescent point it equals the sum of signed effects of all
// transactions currently referencing the account.
type Account struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Type    AccountType     `json:"type"`
	Role    AccountRole     `json:"role"`
	Color   string          `json:"color"`
	Balance decimal.Decimal `json:"balance"`
}

// =============================================================================
// TRANSACTION
// =============================================================================

type TransactionType string

const (
	TxIncome   TransactionType = "income"
	TxExpense  TransactionType = "expense"
	TxTransfer TransactionType = "transfer"
)

// Transaction is immutable once created; the only mutation is full deletion,
// which reverses its balance effect exactly. RelatedAccountID is the transfer
// destination and is set iff Type == TxTransfer.
type Transaction struct {
	ID               string          `json:"id"`
	AccountID        string          `json:"accountId"`
	Type             TransactionType `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	Category         string          `json:"category"`
	Date             time.Time       `json:"date"`
	Description      string          `json:"description"`
	RelatedAccountID string          `json:"relatedAccountId,omitempty"`
}

// =============================================================================
// GOAL
// =============================================================================

// Goal is a savings target. If linked to a reserve account, CurrentAmount is
// seeded from that account's balance at creation and incremented by every
// transfer into the linked account. It is never decremented by transfers out.
type Goal struct {
	ID                     string          `json:"id"`
	Name                   string          `json:"name"`
	TargetAmount           decimal.Decimal `json:"targetAmount"`
	CurrentAmount          decimal.Decimal `json:"currentAmount"`
	Deadline               time.Time       `json:"deadline"`
	LinkedReserveAccountID string          `json:"linkedReserveAccountId,omitempty"`
}

// =============================================================================
// DEBT
// =============================================================================

type DebtStatus string

const (
	DebtPending DebtStatus = "pending"
	DebtPaid    DebtStatus = "paid"
	DebtOverdue DebtStatus = "overdue"
)

// Debt transitions pending -> overdue automatically once the due date is
// strictly in the past (date-only comparison), and pending|overdue -> paid
// only via an explicit payment. Paid is terminal.
type Debt struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	DueDate      time.Time       `json:"dueDate"`
	Status       DebtStatus      `json:"status"`
	Installments int             `json:"installments,omitempty"`
}

// DebtPaymentCategory is the fixed category tag stamped on the expense
// transaction created by a debt payment.
const DebtPaymentCategory = "Dívidas"

// =============================================================================
// DATE HELPERS
// =============================================================================
// Dates are stored as ISO-8601 (RFC 3339) timestamps and compared by calendar
// day or calendar month, never by raw instant.

// dateOf truncates an instant to its calendar day (midnight UTC).
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameMonth reports whether a and b fall in the same calendar month and year.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysInMonth returns the number of calendar days in monthRef's month.
func DaysInMonth(monthRef time.Time) int {
	return time.Date(monthRef.Year(), monthRef.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
