package user

import "context"

// Repository defines read access to wallet users
type Repository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context, params ListParams) ([]*User, error)
	ListByIDs(ctx context.Context, ids []int64) (map[int64]*User, error)
}
