package budget

import (
	"github.com/shopspring/decimal"

	"tietheknot/internal/models"
)

// SpentFor derives a category's spend by summing its expenses.
func (m *Manager) SpentFor(categoryID string) decimal.Decimal {
	total := decimal.Zero
	for _, e := range m.expenses {
		if e.CategoryID == categoryID {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// TotalSpent sums every expense regardless of category.
func (m *Manager) TotalSpent() decimal.Decimal {
	total := decimal.Zero
	for _, e := range m.expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// Summary computes the top-level aggregates. Remaining may go
// negative when the couple is over budget; PercentSpent is zero when
// no budget has been entered.
func (m *Manager) Summary() models.BudgetSummary {
	spent := m.TotalSpent()
	allocated := decimal.Zero
	for _, c := range m.categories {
		allocated = allocated.Add(c.Allocated)
	}

	s := models.BudgetSummary{
		TotalBudget: m.settings.TotalBudget,
		TotalSpent:  spent,
		Remaining:   m.settings.TotalBudget.Sub(spent),
		Unallocated: m.settings.TotalBudget.Sub(allocated),
	}
	if s.TotalBudget.IsPositive() {
		s.PercentSpent, _ = spent.Div(s.TotalBudget).Mul(decimal.NewFromInt(100)).Float64()
	}
	return s
}

// CategorySpends pairs every category with its derived spend.
func (m *Manager) CategorySpends() []models.CategorySpend {
	out := make([]models.CategorySpend, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, models.CategorySpend{Category: c, Spent: m.SpentFor(c.ID)})
	}
	return out
}

// Distribution returns chart-ready allocation shares. Categories with
// no allocation are excluded.
func (m *Manager) Distribution() []models.CategoryShare {
	out := make([]models.CategoryShare, 0, len(m.categories))
	for _, c := range m.categories {
		if c.Allocated.IsZero() {
			continue
		}
		out = append(out, models.CategoryShare{Name: c.Name, Value: c.Allocated})
	}
	return out
}

// Alerts grades each category against the configured thresholds. A
// category whose spend exceeds its allocation while the overall
// budget has nothing left is over-budget; otherwise the spend
// percentage decides between warning and critical.
func (m *Manager) Alerts() []models.BudgetAlert {
	overallRemaining := m.settings.TotalBudget.Sub(m.TotalSpent())

	var out []models.BudgetAlert
	for _, c := range m.categories {
		spent := m.SpentFor(c.ID)
		severity := m.severityFor(c.Allocated, spent, overallRemaining)
		if severity == models.AlertNone {
			continue
		}
		out = append(out, models.BudgetAlert{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			Severity:     severity,
			Allocated:    c.Allocated,
			Spent:        spent,
		})
	}
	return out
}

func (m *Manager) severityFor(allocated, spent, overallRemaining decimal.Decimal) models.AlertSeverity {
	if spent.IsZero() {
		return models.AlertNone
	}
	if allocated.IsZero() {
		// Any spend against an unallocated category has no headroom.
		return models.AlertCritical
	}

	if spent.GreaterThan(allocated) && !overallRemaining.IsPositive() {
		return models.AlertOverBudget
	}

	pct, _ := spent.Div(allocated).Mul(decimal.NewFromInt(100)).Float64()
	switch {
	case pct >= m.alerts.CriticalPercent:
		return models.AlertCritical
	case pct >= m.alerts.WarningPercent:
		return models.AlertWarning
	default:
		return models.AlertNone
	}
}
