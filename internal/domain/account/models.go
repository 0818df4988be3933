package account

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"walletadmin/internal/shared/flex"
)

var (
	// Display symbols for the currencies the wallet supports. Anything else is
	// shown with its ISO code.
	currencySymbols = map[string]string{
		"USD": "$",
		"EUR": "€",
		"GBP": "£",
		"JPY": "¥",
		"NGN": "₦",
		"CAD": "$",
		"AUD": "$",
		"CHF": "CHF ",
	}
)

const (
	// NotAvailable is shown when no bank account can be resolved for a user.
	NotAvailable = "N/A"

	maskPrefix  = "..."
	maskVisible = 4
)

// BankAccount is a user's payout/deposit bank account as stored by the wallet backend.
type BankAccount struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	BankName           string    `json:"bank_name"`
	AccountName        string    `json:"account_name"`
	AccountNumber      string    `json:"account_number"`
	Currency           string    `json:"currency"`
	SwiftCode          string    `json:"swift_code,omitempty"`
	IBAN               string    `json:"iban,omitempty"`
	BankAddress        string    `json:"bank_address,omitempty"`
	BeneficiaryAddress string    `json:"beneficiary_address,omitempty"`
	IsPrimary          flex.Bool `json:"is_primary"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Portfolio holds a balance owned by a user. Balance is null when the backend
// has not computed it yet.
type Portfolio struct {
	ID        int64               `json:"id"`
	UserID    int64               `json:"user_id"`
	Name      string              `json:"name,omitempty"`
	Balance   decimal.NullDecimal `json:"balance"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// MaskedNumber returns the account number with everything but the last digits hidden.
func (a *BankAccount) MaskedNumber() string {
	return MaskAccountNumber(a.AccountNumber)
}

// Label is the one-line description used in tables, e.g. "First Union ...4521".
func (a *BankAccount) Label() string {
	if a == nil {
		return NotAvailable
	}
	masked := a.MaskedNumber()
	switch {
	case a.BankName == "" && masked == "":
		return NotAvailable
	case masked == "":
		return a.BankName
	case a.BankName == "":
		return masked
	}
	return a.BankName + " " + masked
}

// MaskAccountNumber keeps the last four characters of an account number.
// Numbers of four characters or fewer are returned unchanged.
func MaskAccountNumber(number string) string {
	number = strings.TrimSpace(number)
	if number == "" {
		return ""
	}
	runes := []rune(number)
	if len(runes) <= maskVisible {
		return number
	}
	return maskPrefix + string(runes[len(runes)-maskVisible:])
}

// CurrencySymbol returns the display symbol for an ISO 4217 code.
func CurrencySymbol(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if s, ok := currencySymbols[code]; ok {
		return s
	}
	if code == "" {
		return ""
	}
	return code + " "
}

// FormatAmount renders an amount with its currency symbol and two decimals.
func FormatAmount(amount decimal.Decimal, currency string) string {
	return CurrencySymbol(currency) + amount.StringFixed(2)
}
