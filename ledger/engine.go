/*
engine.go - Ledger state-transition engine

PURPOSE:
  The Engine owns the four in-memory collections (accounts, transactions,
  goals, debts) and every rule that mutates them. It is the single writer:
  the HTTP boundary and the scheduler only ever call into it.

CRITICAL INVARIANTS:
  1. BALANCE CONSISTENCY: At any quiescent point, each account's balance
     equals the sum of signed effects of all transactions currently
     referencing it (income +, expense -, transfer: - at source / + at
     destination).
  2. ATOMICITY: Each public operation is all-or-nothing with respect to the
     in-memory state. Validation happens before any collection is touched.
  3. EXACT REVERSAL: Deleting a transaction applies the exact inverse of its
     original balance deltas.

KNOWN ASYMMETRIES (preserved on purpose, they are observable semantics for
migrated data):
  - Deleting a transfer does NOT reverse the goal CurrentAmount increment the
    transfer triggered at creation.
  - Deleting an account does NOT cascade to transactions or goals that
    reference it; dangling ids are tolerated permanently.

ORDERING:
  Accounts, goals, and debts iterate in creation order (oldest first).
  Transactions iterate newest first: AddTransaction prepends.

CONCURRENCY:
  The engine itself is a single logical writer, but HTTP handlers run
  concurrently, so all state access goes through one RWMutex. Every mutation
  runs to completion under the write lock, then flushes the affected slots.

SEE ALSO:
  - types.go: Entity shapes and the sign rules
  - report.go: Pure derived queries over snapshots
  - resolver.go: Debt status reconciliation pass
  - storage.go: Flush contract
*/
package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Engine holds the ledger state and the storage it flushes to.
type Engine struct {
	mu      sync.RWMutex
	storage Storage

	accounts     []Account
	transactions []Transaction // newest first
	goals        []Goal
	debts        []Debt

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

// NewEngine creates an empty engine backed by the given storage.
func NewEngine(storage Storage) *Engine {
	return &Engine{storage: storage, now: time.Now}
}

// Load reads all four slots. A missing or unparsable slot initializes to an
// empty collection. Debt statuses are reconciled immediately after loading,
// mirroring the resolver contract that it runs whenever debt data loads.
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.accounts = loadSlot[Account](ctx, e.storage, SlotAccounts)
	e.transactions = loadSlot[Transaction](ctx, e.storage, SlotTransactions)
	e.goals = loadSlot[Goal](ctx, e.storage, SlotGoals)
	e.debts = loadSlot[Debt](ctx, e.storage, SlotDebts)

	if changed := e.reconcileDebtsLocked(); changed > 0 {
		return e.flush(ctx, SlotDebts)
	}
	return nil
}

func loadSlot[T any](ctx context.Context, storage Storage, slot string) []T {
	var items []T
	if err := storage.LoadSlot(ctx, slot, &items); err != nil {
		// Missing or corrupt slot: start empty. Never user-visible.
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// flush overwrites the named slots with the current collections.
func (e *Engine) flush(ctx context.Context, slots ...string) error {
	for _, slot := range slots {
		var v any
		switch slot {
		case SlotAccounts:
			v = e.accounts
		case SlotTransactions:
			v = e.transactions
		case SlotGoals:
			v = e.goals
		case SlotDebts:
			v = e.debts
		}
		if err := e.storage.SaveSlot(ctx, slot, v); err != nil {
			return fmt.Errorf("flush %s: %w", slot, err)
		}
	}
	return nil
}

func newID() string { return uuid.NewString() }

// =============================================================================
// ACCOUNTS
// =============================================================================

// AddAccount creates an account with a fresh id and the given initial
// balance. Field presence is the caller's responsibility; the engine only
// refuses a nameless account.
func (e *Engine) AddAccount(ctx context.Context, name string, typ AccountType, role AccountRole, color string, balance decimal.Decimal) (Account, error) {
	if name == "" {
		return Account{}, ErrNameRequired
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	acc := Account{
		ID:      newID(),
		Name:    name,
		Type:    typ,
		Role:    role,
		Color:   color,
		Balance: balance,
	}
	e.accounts = append(e.accounts, acc)
	return acc, e.flush(ctx, SlotAccounts)
}

// DeleteAccount removes the account. Transactions and goals referencing it
// are left untouched; dangling ids are permitted by design. Unknown ids are
// a silent no-op.
func (e *Engine) DeleteAccount(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, acc := range e.accounts {
		if acc.ID == id {
			e.accounts = append(e.accounts[:i], e.accounts[i+1:]...)
			return e.flush(ctx, SlotAccounts)
		}
	}
	return nil
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// TransactionInput carries the caller-supplied fields for AddTransaction.
type TransactionInput struct {
	AccountID        string
	Type             TransactionType
	Amount           decimal.Decimal
	Category         string
	Date             time.Time
	Description      string
	RelatedAccountID string
}

// AddTransaction creates a transaction with a fresh id, prepends it to the
// sequence (newest first), then atomically applies balance deltas:
//
//	income:   AccountID balance += Amount
//	expense:  AccountID balance -= Amount
//	transfer: AccountID balance -= Amount; RelatedAccountID balance += Amount
//
// After the balance update, a transfer also increments CurrentAmount of
// every goal linked to the destination account. The engine does not reject
// a transfer whose destination equals its source; distinctness is enforced
// at the calling boundary.
func (e *Engine) AddTransaction(ctx context.Context, in TransactionInput) (Transaction, error) {
	if err := validateTransaction(in); err != nil {
		return Transaction{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	tx := e.addTransactionLocked(in)

	slots := []string{SlotTransactions, SlotAccounts}
	if tx.Type == TxTransfer {
		slots = append(slots, SlotGoals)
	}
	return tx, e.flush(ctx, slots...)
}

func validateTransaction(in TransactionInput) error {
	if in.AccountID == "" {
		return ErrAccountRequired
	}
	if !in.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if in.Type == TxTransfer && in.RelatedAccountID == "" {
		return ErrMissingTransferDestination
	}
	return nil
}

// addTransactionLocked applies the mutation without locking or flushing so
// composite operations (PayDebt) can reuse it under one critical section.
// Input must already be validated.
func (e *Engine) addTransactionLocked(in TransactionInput) Transaction {
	tx := Transaction{
		ID:               newID(),
		AccountID:        in.AccountID,
		Type:             in.Type,
		Amount:           in.Amount,
		Category:         in.Category,
		Date:             in.Date,
		Description:      in.Description,
		RelatedAccountID: in.RelatedAccountID,
	}

	e.transactions = append([]Transaction{tx}, e.transactions...)
	e.applyDeltas(tx, false)

	// Transfers into a goal-linked reserve account fund the goal. Fired on
	// every qualifying transfer, not just the first.
	if tx.Type == TxTransfer {
		for i := range e.goals {
			if e.goals[i].LinkedReserveAccountID == tx.RelatedAccountID {
				e.goals[i].CurrentAmount = e.goals[i].CurrentAmount.Add(tx.Amount)
			}
		}
	}
	return tx
}

// applyDeltas applies (or, reversed, exactly inverts) a transaction's
// balance effects. A delta targeting a deleted account is a no-op.
func (e *Engine) applyDeltas(tx Transaction, reverse bool) {
	amount := tx.Amount
	if reverse {
		amount = amount.Neg()
	}

	for i := range e.accounts {
		switch tx.Type {
		case TxIncome:
			if e.accounts[i].ID == tx.AccountID {
				e.accounts[i].Balance = e.accounts[i].Balance.Add(amount)
			}
		case TxExpense:
			if e.accounts[i].ID == tx.AccountID {
				e.accounts[i].Balance = e.accounts[i].Balance.Sub(amount)
			}
		case TxTransfer:
			if e.accounts[i].ID == tx.AccountID {
				e.accounts[i].Balance = e.accounts[i].Balance.Sub(amount)
			}
			if e.accounts[i].ID == tx.RelatedAccountID {
				e.accounts[i].Balance = e.accounts[i].Balance.Add(amount)
			}
		}
	}
}

// DeleteTransaction removes the transaction and applies the exact inverse of
// its original balance deltas. Goal increments triggered at creation time are
// NOT reversed. Unknown ids are a silent no-op.
func (e *Engine) DeleteTransaction(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, tx := range e.transactions {
		if tx.ID == id {
			e.transactions = append(e.transactions[:i], e.transactions[i+1:]...)
			e.applyDeltas(tx, true)
			return e.flush(ctx, SlotTransactions, SlotAccounts)
		}
	}
	return nil
}

// =============================================================================
// GOALS
// =============================================================================

// AddGoal creates a goal. If linked to an existing account, CurrentAmount is
// seeded from that account's balance at this instant; otherwise it starts at
// zero and only moves via UpdateGoal.
func (e *Engine) AddGoal(ctx context.Context, name string, target decimal.Decimal, deadline time.Time, linkedReserveAccountID string) (Goal, error) {
	if name == "" {
		return Goal{}, ErrNameRequired
	}
	if !target.IsPositive() {
		return Goal{}, ErrInvalidAmount
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	current := decimal.Zero
	if linkedReserveAccountID != "" {
		for _, acc := range e.accounts {
			if acc.ID == linkedReserveAccountID {
				current = acc.Balance
				break
			}
		}
	}

	goal := Goal{
		ID:                     newID(),
		Name:                   name,
		TargetAmount:           target,
		CurrentAmount:          current,
		Deadline:               deadline,
		LinkedReserveAccountID: linkedReserveAccountID,
	}
	e.goals = append(e.goals, goal)
	return goal, e.flush(ctx, SlotGoals)
}

// UpdateGoal overwrites CurrentAmount directly; manual progress entry for
// unlinked goals. Unknown ids are a silent no-op.
func (e *Engine) UpdateGoal(ctx context.Context, id string, currentAmount decimal.Decimal) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.goals {
		if e.goals[i].ID == id {
			e.goals[i].CurrentAmount = currentAmount
			return e.flush(ctx, SlotGoals)
		}
	}
	return nil
}

// DeleteGoal removes the goal; no cascading effects.
func (e *Engine) DeleteGoal(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, g := range e.goals {
		if g.ID == id {
			e.goals = append(e.goals[:i], e.goals[i+1:]...)
			return e.flush(ctx, SlotGoals)
		}
	}
	return nil
}

// =============================================================================
// DEBTS
// =============================================================================

// AddDebt creates a debt with status pending.
func (e *Engine) AddDebt(ctx context.Context, name string, total decimal.Decimal, dueDate time.Time, installments int) (Debt, error) {
	if name == "" {
		return Debt{}, ErrNameRequired
	}
	if !total.IsPositive() {
		return Debt{}, ErrInvalidAmount
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	debt := Debt{
		ID:           newID(),
		Name:         name,
		TotalAmount:  total,
		DueDate:      dueDate,
		Status:       DebtPending,
		Installments: installments,
	}
	e.debts = append(e.debts, debt)
	return debt, e.flush(ctx, SlotDebts)
}

// PayDebt records an expense of the debt's full amount against the given
// account and flips the debt to paid. Missing or already-paid debts are a
// silent no-op. The two steps run under one critical section: if the
// transaction cannot be created, the status never flips.
func (e *Engine) PayDebt(ctx context.Context, debtID, accountID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i, d := range e.debts {
		if d.ID == debtID {
			idx = i
			break
		}
	}
	if idx == -1 || e.debts[idx].Status == DebtPaid {
		return nil
	}

	in := TransactionInput{
		AccountID:   accountID,
		Type:        TxExpense,
		Amount:      e.debts[idx].TotalAmount,
		Category:    DebtPaymentCategory,
		Date:        e.now(),
		Description: fmt.Sprintf("Pagamento: %s", e.debts[idx].Name),
	}
	if err := validateTransaction(in); err != nil {
		return err
	}

	e.addTransactionLocked(in)
	e.debts[idx].Status = DebtPaid
	return e.flush(ctx, SlotTransactions, SlotAccounts, SlotDebts)
}

// DeleteDebt removes the debt; a prior payment transaction stays.
func (e *Engine) DeleteDebt(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, d := range e.debts {
		if d.ID == id {
			e.debts = append(e.debts[:i], e.debts[i+1:]...)
			return e.flush(ctx, SlotDebts)
		}
	}
	return nil
}

// ReconcileDebts runs the debt status resolver over the current state and
// flushes if anything was promoted. Safe to call repeatedly. Returns the
// number of debts promoted to overdue.
func (e *Engine) ReconcileDebts(ctx context.Context) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	changed := e.reconcileDebtsLocked()
	if changed == 0 {
		return 0, nil
	}
	return changed, e.flush(ctx, SlotDebts)
}

func (e *Engine) reconcileDebtsLocked() int {
	debts, changed := ResolveDebtStatuses(e.debts, e.now())
	e.debts = debts
	return changed
}

// =============================================================================
// SNAPSHOTS
// =============================================================================
// Snapshot accessors copy the collections so callers can iterate without
// holding the engine lock. Derived queries in report.go are pure functions
// over these snapshots.

func (e *Engine) Accounts() []Account {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Account(nil), e.accounts...)
}

// Transactions returns the sequence newest first.
func (e *Engine) Transactions() []Transaction {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Transaction(nil), e.transactions...)
}

func (e *Engine) Goals() []Goal {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Goal(nil), e.goals...)
}

func (e *Engine) Debts() []Debt {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Debt(nil), e.debts...)
}

// =============================================================================
// DERIVED QUERIES
// =============================================================================

func (e *Engine) SpendingBalance() decimal.Decimal {
	return SpendingBalance(e.Accounts())
}

func (e *Engine) ReserveBalance() decimal.Decimal {
	return ReserveBalance(e.Accounts())
}

func (e *Engine) MonthlyCashflow(monthRef time.Time) Cashflow {
	return MonthlyCashflow(e.Transactions(), monthRef)
}

func (e *Engine) DailyCashflow(monthRef time.Time) []DayCashflow {
	return DailyCashflow(e.Transactions(), monthRef)
}

func (e *Engine) ExpensesByCategory(monthRef time.Time) []CategoryTotal {
	return ExpensesByCategory(e.Transactions(), monthRef)
}
