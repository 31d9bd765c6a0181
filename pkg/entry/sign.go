package entry

import "github.com/shopspring/decimal"

// SignContext selects which sign convention applies to an entry type.
type SignContext int

const (
	// DisplayContext shows savings and investments as positive next to income.
	DisplayContext SignContext = iota
	// BalanceContext counts everything but income as an outflow of the balance (solde).
	BalanceContext
)

// SignFor returns +1 or -1 for the type under the given context.
//
// Savings and investments are "+" when displayed on their own but "-" when computing the
// balance. Every caller needing a sign goes through this function.
func SignFor(t EntryType, ctx SignContext) int {
	switch ctx {
	case BalanceContext:
		if t == Revenus {
			return 1
		}
		return -1
	default:
		if t.IsExpense() {
			return -1
		}
		return 1
	}
}

// Signed applies SignFor to a magnitude.
func Signed(t EntryType, ctx SignContext, amount decimal.Decimal) decimal.Decimal {
	if SignFor(t, ctx) < 0 {
		return amount.Neg()
	}
	return amount
}
