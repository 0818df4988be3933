package account

import "context"

// Repository defines read access to bank accounts and portfolios.
// This interface is defined in the domain layer, but implemented in the infrastructure layer
type Repository interface {
	// ListByUserIDs retrieves the bank accounts of several users, keyed by user ID
	ListByUserIDs(ctx context.Context, userIDs []int64) (map[int64][]BankAccount, error)

	// ListPortfoliosByUserIDs retrieves the portfolios of several users, keyed by user ID
	ListPortfoliosByUserIDs(ctx context.Context, userIDs []int64) (map[int64][]Portfolio, error)
}
