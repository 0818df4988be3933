package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"walletadmin/internal/domain/account"
)

const bankAccountColumns = `id, user_id, bank_name, account_name, account_number, currency,
	swift_code, iban, bank_address, beneficiary_address, is_primary, status, created_at, updated_at`

// AccountRepository implements account.Repository for PostgreSQL
type AccountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func scanBankAccount(row rowScanner) (account.BankAccount, error) {
	var a account.BankAccount
	var swift, iban, bankAddr, beneficiaryAddr, status sql.NullString
	err := row.Scan(
		&a.ID, &a.UserID, &a.BankName, &a.AccountName, &a.AccountNumber, &a.Currency,
		&swift, &iban, &bankAddr, &beneficiaryAddr, &a.IsPrimary, &status,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return a, err
	}
	a.SwiftCode = stringValue(swift)
	a.IBAN = stringValue(iban)
	a.BankAddress = stringValue(bankAddr)
	a.BeneficiaryAddress = stringValue(beneficiaryAddr)
	a.Status = stringValue(status)
	return a, nil
}

// ListByUserIDs keeps each user's accounts in id order so the first-account
// fallback of ResolvePrimary is stable.
func (r *AccountRepository) ListByUserIDs(ctx context.Context, userIDs []int64) (map[int64][]account.BankAccount, error) {
	out := make(map[int64][]account.BankAccount, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE user_id = ANY($1) ORDER BY user_id, id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(userIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanBankAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank account: %w", err)
		}
		out[a.UserID] = append(out[a.UserID], a)
	}
	return out, rows.Err()
}

func (r *AccountRepository) ListPortfoliosByUserIDs(ctx context.Context, userIDs []int64) (map[int64][]account.Portfolio, error) {
	out := make(map[int64][]account.Portfolio, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT id, user_id, name, balance, created_at, updated_at
		FROM portfolios
		WHERE user_id = ANY($1)
		ORDER BY user_id, id
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(userIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p account.Portfolio
		var name sql.NullString
		if err := rows.Scan(&p.ID, &p.UserID, &name, &p.Balance, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio: %w", err)
		}
		p.Name = stringValue(name)
		out[p.UserID] = append(out[p.UserID], p)
	}
	return out, rows.Err()
}
