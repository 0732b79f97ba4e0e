package budget

import (
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"tietheknot/internal/models"
	"tietheknot/internal/storage"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	store, err := storage.NewStore(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return NewManager(store, DefaultAlertConfig, zerolog.Nop())
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRemainingIdentity(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	if err := m.SetTotalBudget(dec("10000")); err != nil {
		t.Fatalf("set total: %v", err)
	}
	venue, err := m.AddCategory("Venue", dec("6000"))
	if err != nil {
		t.Fatalf("add category: %v", err)
	}
	if _, err := m.AddExpense(ExpenseInput{CategoryID: venue.ID, Description: "deposit", Amount: dec("2500")}); err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if _, err := m.AddExpense(ExpenseInput{CategoryID: venue.ID, Description: "balance", Amount: dec("9000")}); err != nil {
		t.Fatalf("add expense: %v", err)
	}

	s := m.Summary()
	if !s.TotalSpent.Equal(dec("11500")) {
		t.Fatalf("total spent = %s, want 11500", s.TotalSpent)
	}
	if !s.Remaining.Equal(s.TotalBudget.Sub(s.TotalSpent)) {
		t.Fatalf("remaining identity broken: %s != %s - %s", s.Remaining, s.TotalBudget, s.TotalSpent)
	}
	if !s.Remaining.IsNegative() {
		t.Fatalf("expected negative remaining when over budget, got %s", s.Remaining)
	}
	if !s.Unallocated.Equal(dec("4000")) {
		t.Fatalf("unallocated = %s, want 4000", s.Unallocated)
	}
}

func TestPercentSpentZeroBudget(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	c, _ := m.AddCategory("Flowers", dec("100"))
	if _, err := m.AddExpense(ExpenseInput{CategoryID: c.ID, Description: "roses", Amount: dec("50")}); err != nil {
		t.Fatalf("add expense: %v", err)
	}

	if s := m.Summary(); s.PercentSpent != 0 {
		t.Fatalf("percent spent with zero budget = %v, want 0", s.PercentSpent)
	}
}

func TestSpentIsDerivedFromExpenses(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	c, _ := m.AddCategory("Catering", dec("3000"))
	e, _ := m.AddExpense(ExpenseInput{CategoryID: c.ID, Description: "tasting", Amount: dec("200")})

	if got := m.SpentFor(c.ID); !got.Equal(dec("200")) {
		t.Fatalf("spent = %s, want 200", got)
	}

	if err := m.DeleteExpense(e.ID); err != nil {
		t.Fatalf("delete expense: %v", err)
	}
	if got := m.SpentFor(c.ID); !got.IsZero() {
		t.Fatalf("spent after delete = %s, want 0", got)
	}
}

func TestDeleteCategoryCascadesExpenses(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	doomed, _ := m.AddCategory("Doomed", dec("500"))
	kept, _ := m.AddCategory("Kept", dec("500"))
	m.AddExpense(ExpenseInput{CategoryID: doomed.ID, Description: "a", Amount: dec("10")})
	m.AddExpense(ExpenseInput{CategoryID: kept.ID, Description: "b", Amount: dec("20")})

	if err := m.DeleteCategory(doomed.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	expenses := m.Expenses()
	if len(expenses) != 1 || expenses[0].CategoryID != kept.ID {
		t.Fatalf("expected only the kept category's expense, got %v", expenses)
	}
}

func TestExpenseRequiresExistingCategory(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	_, err := m.AddExpense(ExpenseInput{CategoryID: "ghost", Description: "x", Amount: dec("1")})
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestDistributionExcludesZeroAllocations(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	m.AddCategory("Venue", dec("5000"))
	m.AddCategory("Misc", dec("0"))

	dist := m.Distribution()
	if len(dist) != 1 || dist[0].Name != "Venue" {
		t.Fatalf("expected only Venue in distribution, got %v", dist)
	}
}

func TestAlertSeverities(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	if err := m.SetTotalBudget(dec("1000")); err != nil {
		t.Fatalf("set total: %v", err)
	}

	tests := []struct {
		name      string
		allocated string
		spent     string
		want      models.AlertSeverity
	}{
		{"under threshold", "100", "50", models.AlertNone},
		{"warning at 80 percent", "100", "80", models.AlertWarning},
		{"critical at allocation", "100", "100", models.AlertCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := m.AddCategory(tt.name, dec(tt.allocated))
			if err != nil {
				t.Fatalf("add category: %v", err)
			}
			if _, err := m.AddExpense(ExpenseInput{CategoryID: c.ID, Description: "spend", Amount: dec(tt.spent)}); err != nil {
				t.Fatalf("add expense: %v", err)
			}

			got := models.AlertNone
			for _, a := range m.Alerts() {
				if a.CategoryID == c.ID {
					got = a.Severity
				}
			}
			if got != tt.want {
				t.Errorf("severity = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestOverBudgetSeverity(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	if err := m.SetTotalBudget(dec("100")); err != nil {
		t.Fatalf("set total: %v", err)
	}
	c, _ := m.AddCategory("Runaway", dec("80"))
	if _, err := m.AddExpense(ExpenseInput{CategoryID: c.ID, Description: "blowout", Amount: dec("150")}); err != nil {
		t.Fatalf("add expense: %v", err)
	}

	alerts := m.Alerts()
	if len(alerts) != 1 || alerts[0].Severity != models.AlertOverBudget {
		t.Fatalf("expected over-budget alert, got %v", alerts)
	}
}

func TestExportCSVColumns(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	c, _ := m.AddCategory("Music", dec("1200"))
	if _, err := m.AddExpense(ExpenseInput{CategoryID: c.ID, Description: "DJ deposit", Amount: dec("300.50"), VendorName: "DJ Max", IsPaid: true}); err != nil {
		t.Fatalf("add expense: %v", err)
	}

	out, err := m.ExportCSV()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parse exported csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(records))
	}
	row := records[1]
	if row[0] != "Music" || row[1] != "DJ deposit" || row[2] != "300.50" || row[4] != "DJ Max" || row[5] != "yes" {
		t.Fatalf("unexpected row: %v", row)
	}
}

func TestBudgetSurvivesReload(t *testing.T) {
	t.Parallel()

	store, err := storage.NewStore(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	m := NewManager(store, DefaultAlertConfig, zerolog.Nop())
	if err := m.SetTotalBudget(dec("2500")); err != nil {
		t.Fatalf("set total: %v", err)
	}
	c, _ := m.AddCategory("Venue", dec("1000"))
	m.AddExpense(ExpenseInput{CategoryID: c.ID, Description: "hold", Amount: dec("100")})

	reloaded := NewManager(store, DefaultAlertConfig, zerolog.Nop())
	if !reloaded.TotalBudget().Equal(dec("2500")) {
		t.Fatalf("total budget after reload = %s, want 2500", reloaded.TotalBudget())
	}
	if !reloaded.SpentFor(c.ID).Equal(dec("100")) {
		t.Fatalf("spent after reload = %s, want 100", reloaded.SpentFor(c.ID))
	}
}
