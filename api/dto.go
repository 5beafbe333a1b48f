/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Entity responses reuse
  the domain types directly - their field names and enum literals ARE the
  interchange format - so DTOs here cover request bodies and the summary
  projections, where amounts are flattened to float64 for chart consumers.

NAMING CONVENTION:
  - Create* / Update*Request: Request body types from clients
  - *DTO: Response types returned to clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - ledger/types.go: Entity JSON contract
*/
package api

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/finance-ledger/ledger"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// CreateAccountRequest is the request to create an account.
type CreateAccountRequest struct {
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Role    string          `json:"role"`
	Color   string          `json:"color"`
	Balance decimal.Decimal `json:"balance"`
}

// CreateTransactionRequest is the request to record a transaction.
type CreateTransactionRequest struct {
	AccountID        string          `json:"accountId"`
	Type             string          `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	Category         string          `json:"category"`
	Date             string          `json:"date"`
	Description      string          `json:"description"`
	RelatedAccountID string          `json:"relatedAccountId,omitempty"`
}

// CreateGoalRequest is the request to create a savings goal.
type CreateGoalRequest struct {
	Name                   string          `json:"name"`
	TargetAmount           decimal.Decimal `json:"targetAmount"`
	Deadline               string          `json:"deadline"`
	LinkedReserveAccountID string          `json:"linkedReserveAccountId,omitempty"`
}

// UpdateGoalRequest overwrites a goal's manual progress.
type UpdateGoalRequest struct {
	CurrentAmount decimal.Decimal `json:"currentAmount"`
}

// CreateDebtRequest is the request to register a debt.
type CreateDebtRequest struct {
	Name         string          `json:"name"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	DueDate      string          `json:"dueDate"`
	Installments int             `json:"installments,omitempty"`
}

// PayDebtRequest names the account the payment is drawn from.
type PayDebtRequest struct {
	AccountID string `json:"accountId"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// BalancesDTO is the spending/reserve balance summary.
type BalancesDTO struct {
	Spending float64 `json:"spending"`
	Reserve  float64 `json:"reserve"`
}

// CashflowDTO is a monthly income/expense summary.
type CashflowDTO struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// DayCashflowDTO is one day's totals, with the day label zero-padded for
// chart axes ("01".."31").
type DayCashflowDTO struct {
	Day     string  `json:"day"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// CategoryTotalDTO is one category slice for the expense breakdown.
type CategoryTotalDTO struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toCashflowDTO(cf ledger.Cashflow) CashflowDTO {
	income, _ := cf.Income.Float64()
	expense, _ := cf.Expense.Float64()
	balance, _ := cf.Balance.Float64()
	return CashflowDTO{Income: income, Expense: expense, Balance: balance}
}

func toDayCashflowDTOs(days []ledger.DayCashflow) []DayCashflowDTO {
	dtos := make([]DayCashflowDTO, len(days))
	for i, d := range days {
		income, _ := d.Income.Float64()
		expense, _ := d.Expense.Float64()
		dtos[i] = DayCashflowDTO{
			Day:     fmt.Sprintf("%02d", d.Day),
			Income:  income,
			Expense: expense,
		}
	}
	return dtos
}

func toCategoryTotalDTOs(totals []ledger.CategoryTotal) []CategoryTotalDTO {
	dtos := make([]CategoryTotalDTO, len(totals))
	for i, ct := range totals {
		value, _ := ct.Total.Float64()
		dtos[i] = CategoryTotalDTO{Name: ct.Name, Value: value, Color: ct.Color}
	}
	return dtos
}
