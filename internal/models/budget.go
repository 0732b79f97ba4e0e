package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetCategory is an envelope of the overall wedding budget.
// Spent amounts are never stored on the category; they are derived
// from the expense collection at read time.
type BudgetCategory struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Allocated decimal.Decimal `json:"allocated"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BudgetExpense is a single spend against a category.
type BudgetExpense struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"category_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	VendorName  string          `json:"vendor_name,omitempty"`
	IsPaid      bool            `json:"is_paid"`
	CreatedAt   time.Time       `json:"created_at"`
}

// BudgetSettings carries the user-entered top-line budget. It is
// independent of the category allocation sum; categories may not
// cover the whole budget.
type BudgetSettings struct {
	TotalBudget decimal.Decimal `json:"total_budget"`
}

// BudgetSummary is the derived top-level aggregate set.
type BudgetSummary struct {
	TotalBudget  decimal.Decimal `json:"total_budget"`
	TotalSpent   decimal.Decimal `json:"total_spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	Unallocated  decimal.Decimal `json:"unallocated"`
	PercentSpent float64         `json:"percent_spent"`
}

// CategorySpend pairs a category with its derived spend.
type CategorySpend struct {
	Category BudgetCategory  `json:"category"`
	Spent    decimal.Decimal `json:"spent"`
}

// AlertSeverity grades how far a category has run against its allocation.
type AlertSeverity string

const (
	AlertNone       AlertSeverity = "none"
	AlertWarning    AlertSeverity = "warning"
	AlertCritical   AlertSeverity = "critical"
	AlertOverBudget AlertSeverity = "over-budget"
)

// BudgetAlert flags a category that crossed a spend threshold.
type BudgetAlert struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Severity     AlertSeverity   `json:"severity"`
	Allocated    decimal.Decimal `json:"allocated"`
	Spent        decimal.Decimal `json:"spent"`
}

// CategoryShare is a chart-ready (name, value) pair.
type CategoryShare struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}
