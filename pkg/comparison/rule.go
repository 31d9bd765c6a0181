package comparison

import (
	"github.com/klokku/budgettracker/internal/config"
	"github.com/klokku/budgettracker/pkg/entry"
	"github.com/shopspring/decimal"
)

// ImprovementRule tells whether a difference (period 2 minus period 1) is an improvement.
type ImprovementRule func(difference decimal.Decimal) bool

func IncreaseIsImprovement(difference decimal.Decimal) bool {
	return difference.IsPositive()
}

func DecreaseIsImprovement(difference decimal.Decimal) bool {
	return difference.IsNegative()
}

// RuleForType favours growth of income, savings and investments and shrinking expenses.
func RuleForType(t entry.EntryType) ImprovementRule {
	if t.IsExpense() {
		return DecreaseIsImprovement
	}
	return IncreaseIsImprovement
}

// CategoryRulePolicy picks the improvement rule of a category row.
type CategoryRulePolicy func(category string) ImprovementRule

// ReferenceCategoryPolicy counts any decrease as an improvement, savings and investment
// categories included.
func ReferenceCategoryPolicy(category string) ImprovementRule {
	return DecreaseIsImprovement
}

// TypeAwareCategoryPolicy resolves the category's type and applies RuleForType. Unknown
// categories fall back to the reference rule.
func TypeAwareCategoryPolicy(catalog *entry.Catalog) CategoryRulePolicy {
	return func(category string) ImprovementRule {
		t, ok := catalog.TypeOf(category)
		if !ok {
			return DecreaseIsImprovement
		}
		return RuleForType(t)
	}
}

// PolicyByName maps the comparison.categoryrule setting to a policy. Unknown names fall back
// to the reference policy.
func PolicyByName(name string, catalog *entry.Catalog) (CategoryRulePolicy, bool) {
	switch name {
	case config.CategoryRuleTypeAware:
		return TypeAwareCategoryPolicy(catalog), true
	case config.CategoryRuleReference, "":
		return ReferenceCategoryPolicy, true
	default:
		return ReferenceCategoryPolicy, false
	}
}
