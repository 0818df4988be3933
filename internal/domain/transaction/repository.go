package transaction

import "context"

// Repository defines read access to bank requests and transaction history.
// Status changes go through a Submitter, never through the repository.
type Repository interface {
	GetByID(ctx context.Context, kind Kind, id int64) (*Record, error)
	List(ctx context.Context, params ListParams) ([]*Record, error)
	CountByStatus(ctx context.Context, kind Kind, status string) (int, error)
}
