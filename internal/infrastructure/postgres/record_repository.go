package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"walletadmin/internal/domain/transaction"
)

const recordColumns = `id, user_id, bank_account_id, type, status, amount, currency,
	formatted_amount, currency_symbol, masked_account, description, created_at, updated_at`

// RecordRepository implements transaction.Repository over the bank_requests
// and transaction_histories tables, which share one column layout.
type RecordRepository struct {
	db *DB
}

func NewRecordRepository(db *DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func tableFor(kind transaction.Kind) (string, error) {
	switch kind {
	case transaction.KindRequest:
		return "bank_requests", nil
	case transaction.KindHistory:
		return "transaction_histories", nil
	}
	return "", transaction.ErrInvalidKind
}

func scanRecord(row rowScanner, kind transaction.Kind) (*transaction.Record, error) {
	rec := transaction.Record{Kind: kind}
	var userID, bankAccountID sql.NullInt64
	var currency, formatted, symbol, masked, description sql.NullString
	err := row.Scan(
		&rec.ID, &userID, &bankAccountID, &rec.Type, &rec.Status, &rec.Amount, &currency,
		&formatted, &symbol, &masked, &description, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		rec.UserID = userID.Int64
	}
	if bankAccountID.Valid {
		id := bankAccountID.Int64
		rec.BankAccountID = &id
	}
	rec.Currency = stringValue(currency)
	rec.FormattedAmount = stringValue(formatted)
	rec.CurrencySymbol = stringValue(symbol)
	rec.MaskedAccount = stringValue(masked)
	rec.Description = stringValue(description)
	return &rec, nil
}

func (r *RecordRepository) GetByID(ctx context.Context, kind transaction.Kind, id int64) (*transaction.Record, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + recordColumns + ` FROM ` + table + ` WHERE id = $1`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id), kind)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, transaction.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", kind, err)
	}
	return rec, nil
}

// List returns records newest first. UserID 0 lists every user.
func (r *RecordRepository) List(ctx context.Context, params transaction.ListParams) ([]*transaction.Record, error) {
	table, err := tableFor(params.Kind)
	if err != nil {
		return nil, err
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT ` + recordColumns + `
		FROM ` + table + `
		WHERE ($1::bigint = 0 OR user_id = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, params.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", params.Kind, err)
	}
	defer rows.Close()

	records := make([]*transaction.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows, params.Kind)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", params.Kind, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *RecordRepository) CountByStatus(ctx context.Context, kind transaction.Kind, status string) (int, error) {
	table, err := tableFor(kind)
	if err != nil {
		return 0, err
	}

	var n int
	query := `SELECT COUNT(*) FROM ` + table + ` WHERE status = $1`
	if err := r.db.QueryRowContext(ctx, query, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s records: %w", kind, err)
	}
	return n, nil
}
