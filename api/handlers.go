/*
handlers.go - HTTP API handlers for the finance ledger

PURPOSE:
  Exposes the ledger engine via REST. This is the calling boundary: it
  rejects malformed form input (missing fields, bad dates, same-account
  transfers) before the engine is ever invoked, then delegates to the engine
  and serializes the result.

ENDPOINTS:
  Accounts:
    GET    /api/accounts               List accounts (creation order)
    POST   /api/accounts               Create account
    DELETE /api/accounts/{id}          Delete account (no cascade)

  Transactions:
    GET    /api/transactions           List transactions (newest first)
    POST   /api/transactions           Record income/expense/transfer
    DELETE /api/transactions/{id}      Delete and reverse balance effect

  Goals:
    GET    /api/goals                  List goals
    POST   /api/goals                  Create goal
    PUT    /api/goals/{id}             Set manual progress
    DELETE /api/goals/{id}             Delete goal

  Debts:
    GET    /api/debts                  List debts (statuses reconciled)
    POST   /api/debts                  Register debt
    POST   /api/debts/{id}/pay         Pay debt from an account
    DELETE /api/debts/{id}             Delete debt

  Summaries:
    GET    /api/summary/balances
    GET    /api/summary/cashflow?month=YYYY-MM
    GET    /api/summary/cashflow/daily?month=YYYY-MM
    GET    /api/summary/categories?month=YYYY-MM

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 500: Storage failures
  Deletes and payments of unknown ids return 204/200: the engine treats
  them as no-ops and the boundary cannot distinguish.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/warp/finance-ledger/ledger"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine *ledger.Engine
	Log    zerolog.Logger
}

// NewHandler creates a new handler around the given engine.
func NewHandler(engine *ledger.Engine, log zerolog.Logger) *Handler {
	return &Handler{Engine: engine, Log: log}
}

// =============================================================================
// ACCOUNT HANDLERS
// =============================================================================

// ListAccounts returns all accounts in creation order.
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Engine.Accounts())
}

// CreateAccount creates a new account.
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "bad_request")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required", "validation")
		return
	}
	typ := ledger.AccountType(req.Type)
	if typ != ledger.AccountWallet && typ != ledger.AccountBank && typ != ledger.AccountInvestment {
		writeError(w, http.StatusBadRequest, "type must be wallet, bank, or investment", "validation")
		return
	}
	role := ledger.AccountRole(req.Role)
	if role != ledger.RoleSpending && role != ledger.RoleReserve {
		writeError(w, http.StatusBadRequest, "role must be spending or reserve", "validation")
		return
	}

	acc, err := h.Engine.AddAccount(r.Context(), req.Name, typ, role, req.Color, req.Balance)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, acc)
}

// DeleteAccount removes an account. Unknown ids are a no-op.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.Engine.DeleteAccount(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// TRANSACTION HANDLERS
// =============================================================================

// ListTransactions returns all transactions, newest first.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Engine.Transactions())
}

// CreateTransaction records an income, expense, or transfer.
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "bad_request")
		return
	}

	typ := ledger.TransactionType(req.Type)
	if typ != ledger.TxIncome && typ != ledger.TxExpense && typ != ledger.TxTransfer {
		writeError(w, http.StatusBadRequest, "type must be income, expense, or transfer", "validation")
		return
	}
	if typ == ledger.TxTransfer && req.RelatedAccountID == req.AccountID {
		// The engine tolerates same-account transfers; the boundary does not.
		writeError(w, http.StatusBadRequest, "transfer source and destination must differ", "validation")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be an ISO-8601 timestamp", "validation")
		return
	}

	tx, err := h.Engine.AddTransaction(r.Context(), ledger.TransactionInput{
		AccountID:        req.AccountID,
		Type:             typ,
		Amount:           req.Amount,
		Category:         req.Category,
		Date:             date,
		Description:      req.Description,
		RelatedAccountID: req.RelatedAccountID,
	})
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

// DeleteTransaction removes a transaction and reverses its balance effect.
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.Engine.DeleteTransaction(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// GOAL HANDLERS
// =============================================================================

// ListGoals returns all goals in creation order.
func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Engine.Goals())
}

// CreateGoal creates a savings goal, optionally linked to a reserve account.
func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "bad_request")
		return
	}
	deadline, err := parseDate(req.Deadline)
	if err != nil {
		writeError(w, http.StatusBadRequest, "deadline must be an ISO-8601 timestamp", "validation")
		return
	}

	goal, err := h.Engine.AddGoal(r.Context(), req.Name, req.TargetAmount, deadline, req.LinkedReserveAccountID)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

// UpdateGoal overwrites a goal's current amount (manual progress).
func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "bad_request")
		return
	}
	if err := h.Engine.UpdateGoal(r.Context(), chi.URLParam(r, "id"), req.CurrentAmount); err != nil {
		h.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteGoal removes a goal.
func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := h.Engine.DeleteGoal(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// DEBT HANDLERS
// =============================================================================

// ListDebts reconciles debt statuses against today's date, then returns all
// debts in creation order. The pass is idempotent, so running it on every
// read is safe.
func (h *Handler) ListDebts(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Engine.ReconcileDebts(r.Context()); err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Engine.Debts())
}

// CreateDebt registers a new debt with status pending.
func (h *Handler) CreateDebt(w http.ResponseWriter, r *http.Request) {
	var req CreateDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "bad_request")
		return
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "dueDate must be an ISO-8601 timestamp", "validation")
		return
	}

	debt, err := h.Engine.AddDebt(r.Context(), req.Name, req.TotalAmount, dueDate, req.Installments)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, debt)
}

// PayDebt records the payment expense and marks the debt paid.
func (h *Handler) PayDebt(w http.ResponseWriter, r *http.Request) {
	var req PayDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "bad_request")
		return
	}
	if req.AccountID == "" {
		writeError(w, http.StatusBadRequest, "accountId is required", "validation")
		return
	}

	if err := h.Engine.PayDebt(r.Context(), chi.URLParam(r, "id"), req.AccountID); err != nil {
		h.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteDebt removes a debt without reversing any prior payment.
func (h *Handler) DeleteDebt(w http.ResponseWriter, r *http.Request) {
	if err := h.Engine.DeleteDebt(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SUMMARY HANDLERS
// =============================================================================

// GetBalances returns the spending and reserve balance totals.
func (h *Handler) GetBalances(w http.ResponseWriter, r *http.Request) {
	spending, _ := h.Engine.SpendingBalance().Float64()
	reserve, _ := h.Engine.ReserveBalance().Float64()
	writeJSON(w, http.StatusOK, BalancesDTO{Spending: spending, Reserve: reserve})
}

// GetMonthlyCashflow returns the month's income/expense/balance summary.
func (h *Handler) GetMonthlyCashflow(w http.ResponseWriter, r *http.Request) {
	monthRef, err := parseMonth(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "month must be formatted YYYY-MM", "validation")
		return
	}
	writeJSON(w, http.StatusOK, toCashflowDTO(h.Engine.MonthlyCashflow(monthRef)))
}

// GetDailyCashflow returns per-day totals for every day of the month.
func (h *Handler) GetDailyCashflow(w http.ResponseWriter, r *http.Request) {
	monthRef, err := parseMonth(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "month must be formatted YYYY-MM", "validation")
		return
	}
	writeJSON(w, http.StatusOK, toDayCashflowDTOs(h.Engine.DailyCashflow(monthRef)))
}

// GetExpensesByCategory returns the month's expense breakdown, largest first.
func (h *Handler) GetExpensesByCategory(w http.ResponseWriter, r *http.Request) {
	monthRef, err := parseMonth(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "month must be formatted YYYY-MM", "validation")
		return
	}
	writeJSON(w, http.StatusOK, toCategoryTotalDTOs(h.Engine.ExpensesByCategory(monthRef)))
}

// =============================================================================
// HELPERS
// =============================================================================

// parseDate accepts full RFC 3339 timestamps and bare dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// parseMonth parses a YYYY-MM reference; empty means the current month.
func parseMonth(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01", s)
}

func (h *Handler) writeEngineError(w http.ResponseWriter, err error) {
	if ledger.IsClientError(err) {
		writeError(w, http.StatusBadRequest, err.Error(), "validation")
		return
	}
	h.Log.Error().Err(err).Msg("engine operation failed")
	writeError(w, http.StatusInternalServerError, "internal error", "internal")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, code string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Code: code})
}
