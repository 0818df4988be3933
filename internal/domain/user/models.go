package user

import (
	"errors"
	"time"

	"walletadmin/internal/domain/account"
	"walletadmin/internal/shared/flex"
)

// Status labels shown on the users page.
const (
	StatusActive     = "Active"
	StatusInactive   = "Inactive"
	StatusOnboarding = "Onboarding"

	// UnknownName is shown when a record references no user.
	UnknownName = "Unknown User"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsActive  flex.Bool `json:"is_active"`
	Status    string    `json:"status,omitempty"` // Optional lifecycle label, e.g. "Onboarding"
	Address   string    `json:"address,omitempty"`
	Country   string    `json:"country,omitempty"`
	UserType  string    `json:"user_type,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	BankAccounts []account.BankAccount `json:"bank_accounts,omitempty"`
	Portfolios   []account.Portfolio   `json:"portfolios,omitempty"`
}

// StatusLabel is the explicit status when the backend sends one, otherwise
// Active or Inactive from the is_active flag.
func (u *User) StatusLabel() string {
	if u.Status != "" {
		return u.Status
	}
	if u.IsActive {
		return StatusActive
	}
	return StatusInactive
}

// DisplayName falls back to UnknownName for a missing user.
func (u *User) DisplayName() string {
	if u == nil || u.Name == "" {
		return UnknownName
	}
	return u.Name
}

// FilterType has no meaning for users; the users page filters by status only.
func (u *User) FilterType() string { return "" }

func (u *User) FilterStatus() string { return u.StatusLabel() }

func (u *User) SearchFields() []string {
	return []string{u.Name, u.Email}
}

// ListParams narrows a user listing at the database level.
type ListParams struct {
	Limit  int
	Offset int
}
