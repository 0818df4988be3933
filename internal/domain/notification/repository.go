package notification

import "context"

// Repository defines the interface for notification data access.
// Defined in the domain layer, implemented in the infrastructure layer.
type Repository interface {
	// ListByUserID returns the newest notifications sent to a user
	ListByUserID(ctx context.Context, userID int64, limit int) ([]*Notification, error)

	// GetActiveTokensByUserID returns the devices a push should reach
	GetActiveTokensByUserID(ctx context.Context, userID int64) ([]*DeviceToken, error)
}
