package dto

import "github.com/shopspring/decimal"

type CreateExpenseRequest struct {
	Category    string          `json:"category"     validate:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"       validate:"required"`
	ExpenseDate string          `json:"expense_date" validate:"required"` // YYYY-MM-DD
}

type UpdateExpenseRequest struct {
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	ExpenseDate *string          `json:"expense_date"`
}

type ExpenseFilter struct {
	Category string `form:"category"`
	Month    string `form:"month"` // YYYY-MM; empty = current month
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=10" validate:"min=1,max=100"`
}

type ExpenseResponse struct {
	ID          uint            `json:"id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate string          `json:"expense_date"`
}

// ExpenseListResponse carries the page plus the monthly and fiscal-year
// rollups shown alongside it. The fiscal year runs April 1 – March 31.
type ExpenseListResponse struct {
	Data              []ExpenseResponse `json:"data"`
	Categories        []string          `json:"categories"`
	MonthlyTotal      decimal.Decimal   `json:"monthly_total"`
	FinancialYearTotal decimal.Decimal  `json:"financial_year_total"`
	FiscalYearStart   string            `json:"fiscal_year_start"`
	FiscalYearEnd     string            `json:"fiscal_year_end"`
	Total             int64             `json:"total"`
	Page              int               `json:"page"`
	TotalPages        int               `json:"total_pages"`
}
