package transaction

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"walletadmin/internal/domain/account"
	"walletadmin/internal/domain/activity"
	"walletadmin/internal/domain/user"
)

// Kind tells bank requests apart from settled transaction history.
type Kind string

const (
	KindRequest Kind = "request"
	KindHistory Kind = "history"
)

// Record statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusCodeSent = "code_sent"
)

// Record types
const (
	TypeDeposit    = activity.TypeDeposit
	TypeWithdrawal = "withdrawal"
)

var validStatuses = map[string]struct{}{
	StatusPending:  {},
	StatusApproved: {},
	StatusRejected: {},
	StatusCodeSent: {},
}

// Domain errors
var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrInvalidStatus       = errors.New("status must be one of approved, rejected, code_sent, pending")
	ErrInvalidKind         = errors.New("kind must be 'request' or 'history'")
	ErrSameStatus          = errors.New("record already has this status")
	ErrDuplicateTransition = errors.New("transition already submitted")
	ErrSubmitFailed        = errors.New("backend rejected or did not receive the transition")
)

// Record is a bank request or a transaction history entry. The Formatted*,
// CurrencySymbol and MaskedAccount fields are precomputed by the backend and
// may be empty on older rows.
type Record struct {
	ID              int64           `json:"id"`
	Kind            Kind            `json:"kind"`
	UserID          int64           `json:"user_id"`
	BankAccountID   *int64          `json:"bank_account_id,omitempty"`
	Type            string          `json:"type"`
	Status          string          `json:"status"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	FormattedAmount string          `json:"formatted_amount,omitempty"`
	CurrencySymbol  string          `json:"currency_symbol,omitempty"`
	MaskedAccount   string          `json:"masked_account,omitempty"`
	Description     string          `json:"description,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	User        *user.User           `json:"user,omitempty"`
	BankAccount *account.BankAccount `json:"bank_account,omitempty"`
}

func (r *Record) Icon() activity.IconKey { return activity.IconForType(r.Type) }
func (r *Record) StatusValue() string    { return r.Status }
func (r *Record) FilterType() string     { return r.Type }
func (r *Record) FilterStatus() string   { return r.Status }

// SearchFields covers the user's name and email and the bank name. Missing
// relations contribute nothing.
func (r *Record) SearchFields() []string {
	fields := make([]string, 0, 3)
	if r.User != nil {
		fields = append(fields, r.User.Name, r.User.Email)
	}
	if r.BankAccount != nil {
		fields = append(fields, r.BankAccount.BankName)
	}
	return fields
}

// UserName is the owner's name or "Unknown User".
func (r *Record) UserName() string {
	return r.User.DisplayName()
}

// DisplayAmount prefers the backend's formatted amount, then its currency
// symbol, and otherwise formats the amount from the ISO currency code.
func (r *Record) DisplayAmount() string {
	if r.FormattedAmount != "" {
		return r.FormattedAmount
	}
	if r.CurrencySymbol != "" {
		return r.CurrencySymbol + r.Amount.StringFixed(2)
	}
	return account.FormatAmount(r.Amount, r.Currency)
}

// DisplayAccount prefers the backend's masked account, then masks the linked
// bank account, and falls back to "N/A".
func (r *Record) DisplayAccount() string {
	if r.MaskedAccount != "" {
		return r.MaskedAccount
	}
	if r.BankAccount != nil {
		if masked := r.BankAccount.MaskedNumber(); masked != "" {
			return masked
		}
	}
	return account.NotAvailable
}

// IsValidStatus reports whether s is a status an admin may move a record to.
func IsValidStatus(s string) bool {
	_, ok := validStatuses[s]
	return ok
}

// IsValidKind reports whether k names a record table.
func IsValidKind(k Kind) bool {
	return k == KindRequest || k == KindHistory
}

// ListParams narrows a record listing at the database level. UserID 0 lists
// every user.
type ListParams struct {
	Kind   Kind
	UserID int64
	Limit  int
}
