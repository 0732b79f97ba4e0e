// Package budget owns budget categories, expenses and the top-line
// budget figure. Per-category spend is always derived from the
// expense collection at read time, never stored.
package budget

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"tietheknot/internal/models"
	"tietheknot/internal/storage"
)

var (
	ErrCategoryNotFound = errors.New("budget category not found")
	ErrExpenseNotFound  = errors.New("budget expense not found")
	ErrInvalidAmount    = errors.New("invalid amount")
)

// AlertConfig sets the category alert thresholds as percentages of
// the allocation. These are policy, not structure.
type AlertConfig struct {
	WarningPercent  float64
	CriticalPercent float64
}

// DefaultAlertConfig warns at 80% of an allocation and goes critical
// at 100%.
var DefaultAlertConfig = AlertConfig{WarningPercent: 80, CriticalPercent: 100}

// Manager is the single writer of the budget collections.
type Manager struct {
	store      *storage.Store
	log        zerolog.Logger
	alerts     AlertConfig
	categories []models.BudgetCategory
	expenses   []models.BudgetExpense
	settings   models.BudgetSettings
}

// NewManager loads the budget collections from storage.
func NewManager(store *storage.Store, alerts AlertConfig, log zerolog.Logger) *Manager {
	return &Manager{
		store:      store,
		log:        log.With().Str("component", "budget").Logger(),
		alerts:     alerts,
		categories: storage.Read(store, storage.KeyBudgetCategories, []models.BudgetCategory{}),
		expenses:   storage.Read(store, storage.KeyBudgetExpenses, []models.BudgetExpense{}),
		settings:   storage.Read(store, storage.KeyBudgetSettings, models.BudgetSettings{}),
	}
}

// ExpenseInput is the payload for a new expense.
type ExpenseInput struct {
	CategoryID  string
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	VendorName  string
	IsPaid      bool
}

// Categories returns a snapshot of all categories.
func (m *Manager) Categories() []models.BudgetCategory {
	out := make([]models.BudgetCategory, len(m.categories))
	copy(out, m.categories)
	return out
}

// Expenses returns a snapshot of all expenses.
func (m *Manager) Expenses() []models.BudgetExpense {
	out := make([]models.BudgetExpense, len(m.expenses))
	copy(out, m.expenses)
	return out
}

// AddCategory creates a category with a non-negative allocation.
func (m *Manager) AddCategory(name string, allocated decimal.Decimal) (models.BudgetCategory, error) {
	if name == "" {
		return models.BudgetCategory{}, fmt.Errorf("%w: category name is required", ErrInvalidAmount)
	}
	if allocated.IsNegative() {
		return models.BudgetCategory{}, fmt.Errorf("%w: allocation must not be negative", ErrInvalidAmount)
	}

	now := time.Now().UTC()
	c := models.BudgetCategory{
		ID:        uuid.NewString(),
		Name:      name,
		Allocated: allocated,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.categories = append(m.categories, c)
	if err := m.persistCategories(); err != nil {
		return models.BudgetCategory{}, err
	}
	return c, nil
}

// UpdateCategory changes a category's name and/or allocation.
func (m *Manager) UpdateCategory(id string, name *string, allocated *decimal.Decimal) (models.BudgetCategory, error) {
	for i, c := range m.categories {
		if c.ID != id {
			continue
		}
		if name != nil {
			c.Name = *name
		}
		if allocated != nil {
			if allocated.IsNegative() {
				return models.BudgetCategory{}, fmt.Errorf("%w: allocation must not be negative", ErrInvalidAmount)
			}
			c.Allocated = *allocated
		}
		c.UpdatedAt = time.Now().UTC()
		m.categories[i] = c
		if err := m.persistCategories(); err != nil {
			return models.BudgetCategory{}, err
		}
		return c, nil
	}
	return models.BudgetCategory{}, ErrCategoryNotFound
}

// DeleteCategory removes a category and cascades to its expenses in
// the same mutation, so no expense is ever left dangling.
func (m *Manager) DeleteCategory(id string) error {
	for i, c := range m.categories {
		if c.ID != id {
			continue
		}
		m.categories = append(m.categories[:i], m.categories[i+1:]...)

		kept := m.expenses[:0]
		removed := 0
		for _, e := range m.expenses {
			if e.CategoryID == id {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		m.expenses = kept
		if removed > 0 {
			m.log.Info().Str("category_id", id).Int("expenses", removed).Msg("Cascaded expense deletion")
		}

		if err := m.persistCategories(); err != nil {
			return err
		}
		return m.persistExpenses()
	}
	return ErrCategoryNotFound
}

// AddExpense records a spend against an existing category.
func (m *Manager) AddExpense(input ExpenseInput) (models.BudgetExpense, error) {
	if input.Amount.IsNegative() {
		return models.BudgetExpense{}, fmt.Errorf("%w: expense amount must not be negative", ErrInvalidAmount)
	}
	if !m.categoryExists(input.CategoryID) {
		return models.BudgetExpense{}, ErrCategoryNotFound
	}

	now := time.Now().UTC()
	e := models.BudgetExpense{
		ID:          uuid.NewString(),
		CategoryID:  input.CategoryID,
		Description: input.Description,
		Amount:      input.Amount,
		Date:        input.Date.UTC(),
		VendorName:  input.VendorName,
		IsPaid:      input.IsPaid,
		CreatedAt:   now,
	}
	if e.Date.IsZero() {
		e.Date = now
	}

	m.expenses = append(m.expenses, e)
	if err := m.persistExpenses(); err != nil {
		return models.BudgetExpense{}, err
	}
	return e, nil
}

// UpdateExpense replaces an expense's mutable fields.
func (m *Manager) UpdateExpense(id string, input ExpenseInput) (models.BudgetExpense, error) {
	for i, e := range m.expenses {
		if e.ID != id {
			continue
		}
		if input.Amount.IsNegative() {
			return models.BudgetExpense{}, fmt.Errorf("%w: expense amount must not be negative", ErrInvalidAmount)
		}
		if !m.categoryExists(input.CategoryID) {
			return models.BudgetExpense{}, ErrCategoryNotFound
		}
		e.CategoryID = input.CategoryID
		e.Description = input.Description
		e.Amount = input.Amount
		if !input.Date.IsZero() {
			e.Date = input.Date.UTC()
		}
		e.VendorName = input.VendorName
		e.IsPaid = input.IsPaid
		m.expenses[i] = e
		if err := m.persistExpenses(); err != nil {
			return models.BudgetExpense{}, err
		}
		return e, nil
	}
	return models.BudgetExpense{}, ErrExpenseNotFound
}

// DeleteExpense removes an expense.
func (m *Manager) DeleteExpense(id string) error {
	for i, e := range m.expenses {
		if e.ID != id {
			continue
		}
		m.expenses = append(m.expenses[:i], m.expenses[i+1:]...)
		return m.persistExpenses()
	}
	return ErrExpenseNotFound
}

// MarkExpensePaid toggles the paid flag on an expense.
func (m *Manager) MarkExpensePaid(id string, paid bool) (models.BudgetExpense, error) {
	for i := range m.expenses {
		if m.expenses[i].ID != id {
			continue
		}
		m.expenses[i].IsPaid = paid
		if err := m.persistExpenses(); err != nil {
			return models.BudgetExpense{}, err
		}
		return m.expenses[i], nil
	}
	return models.BudgetExpense{}, ErrExpenseNotFound
}

// SetTotalBudget stores the user-entered top-line budget. It is
// independent of the category allocation sum.
func (m *Manager) SetTotalBudget(total decimal.Decimal) error {
	if total.IsNegative() {
		return fmt.Errorf("%w: total budget must not be negative", ErrInvalidAmount)
	}
	m.settings.TotalBudget = total
	return storage.Write(m.store, storage.KeyBudgetSettings, m.settings)
}

// TotalBudget returns the top-line budget figure.
func (m *Manager) TotalBudget() decimal.Decimal {
	return m.settings.TotalBudget
}

func (m *Manager) categoryExists(id string) bool {
	for _, c := range m.categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (m *Manager) persistCategories() error {
	return storage.Write(m.store, storage.KeyBudgetCategories, m.categories)
}

func (m *Manager) persistExpenses() error {
	return storage.Write(m.store, storage.KeyBudgetExpenses, m.expenses)
}
