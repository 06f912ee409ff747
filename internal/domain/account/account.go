package account

import "time"

const (
	// TypeSavings is the account type assigned to every newly created account.
	TypeSavings = "Savings"

	// DefaultBranchAddress is the branch every new account is booked under.
	DefaultBranchAddress = "123 Main Street, New York"
)

type Account struct {
	AccountNumber int64     `json:"accountNumber"`
	CustomerID    int64     `json:"customerId"`
	AccountType   string    `json:"accountType"`
	BranchAddress string    `json:"branchAddress"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	UpdatedAt     time.Time `json:"updatedAt"`
	UpdatedBy     string    `json:"updatedBy"`
}

// CustomerDetails is the composite customer-plus-account view exchanged with
// the gateway. Identifiers and audit columns never pass through it.
type CustomerDetails struct {
	Name         string
	Email        string
	MobileNumber string
	Account      *AccountDetails
}

type AccountDetails struct {
	AccountNumber int64
	AccountType   string
	BranchAddress string
}
