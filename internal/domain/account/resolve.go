package account

import "github.com/shopspring/decimal"

// ResolvePrimary returns the first account flagged as primary. When none is
// flagged the first account is used; ok is false only for an empty list.
func ResolvePrimary(accounts []BankAccount) (primary *BankAccount, ok bool) {
	if len(accounts) == 0 {
		return nil, false
	}
	for i := range accounts {
		if accounts[i].IsPrimary {
			return &accounts[i], true
		}
	}
	return &accounts[0], true
}

// SumBalances totals portfolio balances. A nil slice and null balances
// count as zero.
func SumBalances(portfolios []Portfolio) decimal.Decimal {
	total := decimal.Zero
	for _, p := range portfolios {
		if p.Balance.Valid {
			total = total.Add(p.Balance.Decimal)
		}
	}
	return total
}
