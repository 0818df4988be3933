package notification

import (
	"time"

	"walletadmin/internal/domain/activity"
)

// RouteTransactions is the push data route that opens the wallet app's
// transaction history.
const RouteTransactions = "transactions"

// DeviceToken represents a registered FCM device token
type DeviceToken struct {
	ID         string    `json:"id"`
	UserID     int64     `json:"userId"`
	Token      string    `json:"token"`
	DeviceType string    `json:"deviceType"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	LastUsed   time.Time `json:"lastUsed"`
}

// Notification is a message the backend sent to a user. Message is free text
// that may embed "- Bank:" style lines; see Extract.
type Notification struct {
	ID        int64      `json:"id"`
	ToUserID  int64      `json:"to_user_id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (n *Notification) Icon() activity.IconKey {
	return activity.IconForMessage(n.Message)
}

// StatusValue is empty: notifications carry no status and render gray.
func (n *Notification) StatusValue() string { return "" }

func (n *Notification) FilterType() string   { return "" }
func (n *Notification) FilterStatus() string { return "" }

func (n *Notification) SearchFields() []string {
	return []string{n.Title, n.Message}
}

// IsRead reports whether the user has opened the notification
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
