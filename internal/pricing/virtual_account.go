package pricing

import (
	"strings"
	"time"
)

// VirtualAccount is a simulated bank-transfer target shown to the customer
// after checkout. It is a presentation affordance only: no payment gateway,
// webhook, or settlement sits behind it, and payment is confirmed manually
// by a cashier.
type VirtualAccount struct {
	Bank          string    `json:"bank"`
	AccountNumber string    `json:"accountNumber"`
	AccountName   string    `json:"accountName"`
	Amount        int64     `json:"amount"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

const transferPrefix = "TRANSFER_"

// vaExpiry is how long a virtual account stays payable.
const vaExpiry = 24 * time.Hour

var bankAccounts = map[string]struct {
	number string
	name   string
}{
	"BCA":     {"8881203948571", "PT Motorshop Jaya Abadi"},
	"BNI":     {"9880456712309", "PT Motorshop Jaya Abadi"},
	"BRI":     {"2612098837465", "PT Motorshop Jaya Abadi"},
	"MANDIRI": {"8950091273648", "PT Motorshop Jaya Abadi"},
}

// IsBankTransfer reports whether a payment method tag names a bank-transfer
// option (TRANSFER_<BANK>).
func IsBankTransfer(paymentMethod string) bool {
	return strings.HasPrefix(strings.ToUpper(paymentMethod), transferPrefix)
}

// NewVirtualAccount synthesizes the transfer payload for a bank-transfer
// payment method. It returns nil for non-transfer methods and for bank codes
// we hold no account at.
func NewVirtualAccount(paymentMethod string, amount int64, now time.Time) *VirtualAccount {
	if !IsBankTransfer(paymentMethod) {
		return nil
	}
	bank := strings.TrimPrefix(strings.ToUpper(paymentMethod), transferPrefix)
	acct, ok := bankAccounts[bank]
	if !ok {
		return nil
	}
	return &VirtualAccount{
		Bank:          bank,
		AccountNumber: acct.number,
		AccountName:   acct.name,
		Amount:        amount,
		ExpiresAt:     now.Add(vaExpiry),
	}
}
