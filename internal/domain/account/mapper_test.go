package account_test

import (
	"testing"
	"time"

	"accounts-service/internal/domain/account"
	"accounts-service/internal/domain/customer"

	"github.com/stretchr/testify/assert"
)

func TestMapToCustomerDetails(t *testing.T) {
	cust := &customer.Customer{
		CustomerID:   42,
		Name:         "Madan Reddy",
		Email:        "madan@example.com",
		MobileNumber: "4354437687",
		CreatedBy:    "ACCOUNTS_MS",
	}

	details := account.MapToCustomerDetails(cust, &account.CustomerDetails{})

	assert.Equal(t, cust.Name, details.Name)
	assert.Equal(t, cust.Email, details.Email)
	assert.Equal(t, cust.MobileNumber, details.MobileNumber)
	assert.Nil(t, details.Account)
}

func TestMapToCustomer(t *testing.T) {
	details := &account.CustomerDetails{
		Name:         "New Name",
		Email:        "new@example.com",
		MobileNumber: "1234567890",
	}
	existing := &customer.Customer{
		CustomerID: 42,
		Name:       "Old Name",
		CreatedAt:  time.Now(),
		CreatedBy:  "ACCOUNTS_MS",
	}

	mapped := account.MapToCustomer(details, existing)

	assert.Same(t, existing, mapped)
	assert.Equal(t, details.Name, mapped.Name)
	assert.Equal(t, details.Email, mapped.Email)
	assert.Equal(t, details.MobileNumber, mapped.MobileNumber)
	// Identifier and audit fields must survive the copy untouched.
	assert.Equal(t, int64(42), mapped.CustomerID)
	assert.Equal(t, "ACCOUNTS_MS", mapped.CreatedBy)
	assert.False(t, mapped.CreatedAt.IsZero())
}

func TestMapToAccountDetails(t *testing.T) {
	acc := &account.Account{
		AccountNumber: 1365766735,
		CustomerID:    42,
		AccountType:   account.TypeSavings,
		BranchAddress: account.DefaultBranchAddress,
	}

	details := account.MapToAccountDetails(acc, &account.AccountDetails{})

	assert.Equal(t, acc.AccountNumber, details.AccountNumber)
	assert.Equal(t, acc.AccountType, details.AccountType)
	assert.Equal(t, acc.BranchAddress, details.BranchAddress)
}

func TestMapToAccount(t *testing.T) {
	details := &account.AccountDetails{
		AccountNumber: 1365766735,
		AccountType:   "Current",
		BranchAddress: "456 Park Avenue, Chicago",
	}
	existing := &account.Account{
		AccountNumber: 1365766735,
		CustomerID:    42,
		AccountType:   account.TypeSavings,
		BranchAddress: account.DefaultBranchAddress,
	}

	mapped := account.MapToAccount(details, existing)

	assert.Same(t, existing, mapped)
	assert.Equal(t, "Current", mapped.AccountType)
	assert.Equal(t, "456 Park Avenue, Chicago", mapped.BranchAddress)
	assert.Equal(t, int64(42), mapped.CustomerID)
}
