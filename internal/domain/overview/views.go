package overview

import (
	"time"

	"github.com/shopspring/decimal"

	"walletadmin/internal/domain/account"
	"walletadmin/internal/domain/activity"
	"walletadmin/internal/domain/notification"
	"walletadmin/internal/domain/transaction"
	"walletadmin/internal/domain/user"
)

// RecordView is one row of the requests or transactions page
type RecordView struct {
	ID        int64               `json:"id"`
	Kind      transaction.Kind    `json:"kind"`
	Type      string              `json:"type"`
	Status    string              `json:"status"`
	UserID    int64               `json:"user_id"`
	UserName  string              `json:"user_name"`
	UserEmail string              `json:"user_email,omitempty"`
	BankName  string              `json:"bank_name,omitempty"`
	Amount    string              `json:"amount"`
	Account   string              `json:"account"`
	Icon      activity.IconKey    `json:"icon"`
	Color     activity.ColorKey   `json:"color"`
	CreatedAt time.Time           `json:"created_at"`
	Record    *transaction.Record `json:"-"`
}

// UserRow is one row of the users page
type UserRow struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	Status         string            `json:"status"`
	Color          activity.ColorKey `json:"color"`
	PrimaryAccount string            `json:"primary_account"`
	TotalBalance   decimal.Decimal   `json:"total_balance"`
	Country        string            `json:"country,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// UserDetail is the single-user page
type UserDetail struct {
	User           *user.User           `json:"user"`
	Status         string               `json:"status"`
	Color          activity.ColorKey    `json:"color"`
	PrimaryAccount *account.BankAccount `json:"primary_account"`
	AccountLabel   string               `json:"primary_account_label"`
	TotalBalance   decimal.Decimal      `json:"total_balance"`
}

// ActivityItem is a notification with its recovered bank fields
type ActivityItem struct {
	ID        int64               `json:"id"`
	Title     string              `json:"title"`
	Message   string              `json:"message"`
	Icon      activity.IconKey    `json:"icon"`
	Color     activity.ColorKey   `json:"color"`
	Fields    notification.Fields `json:"fields"`
	Read      bool                `json:"read"`
	CreatedAt time.Time           `json:"created_at"`
}

// Backlog counts records still waiting for an admin decision
type Backlog struct {
	PendingRequests int `json:"pending_requests"`
	PendingHistory  int `json:"pending_history"`
}

func (b Backlog) Total() int {
	return b.PendingRequests + b.PendingHistory
}

func newRecordView(r *transaction.Record) RecordView {
	c := activity.Classify(r)
	v := RecordView{
		ID:        r.ID,
		Kind:      r.Kind,
		Type:      r.Type,
		Status:    r.Status,
		UserID:    r.UserID,
		UserName:  r.UserName(),
		Amount:    r.DisplayAmount(),
		Account:   r.DisplayAccount(),
		Icon:      c.IconKey,
		Color:     c.ColorKey,
		CreatedAt: r.CreatedAt,
		Record:    r,
	}
	if r.User != nil {
		v.UserEmail = r.User.Email
	}
	if r.BankAccount != nil {
		v.BankName = r.BankAccount.BankName
	}
	return v
}

func newUserRow(u *user.User) UserRow {
	primary, _ := account.ResolvePrimary(u.BankAccounts)
	status := u.StatusLabel()
	return UserRow{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Status:         status,
		Color:          activity.ColorForStatus(status),
		PrimaryAccount: primary.Label(),
		TotalBalance:   account.SumBalances(u.Portfolios),
		Country:        u.Country,
		CreatedAt:      u.CreatedAt,
	}
}

func newActivityItem(n *notification.Notification, patterns notification.PatternTable) ActivityItem {
	c := activity.Classify(n)
	return ActivityItem{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Icon:      c.IconKey,
		Color:     c.ColorKey,
		Fields:    notification.Extract(n.Message, patterns),
		Read:      n.IsRead(),
		CreatedAt: n.CreatedAt,
	}
}

// mapGroups converts grouped items without changing labels or order.
func mapGroups[T, V any](groups []activity.DateGroup[T], fn func(T) V) []activity.DateGroup[V] {
	out := make([]activity.DateGroup[V], len(groups))
	for i, g := range groups {
		items := make([]V, len(g.Items))
		for j, item := range g.Items {
			items[j] = fn(item)
		}
		out[i] = activity.DateGroup[V]{Label: g.Label, Items: items}
	}
	return out
}
