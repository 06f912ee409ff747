package account

import "accounts-service/internal/domain/customer"

// Mapping between persisted records and the transfer view. These transforms
// are pure copies: no validation, no defaults, and they never touch
// identifiers or audit columns.

func MapToCustomerDetails(cust *customer.Customer, details *CustomerDetails) *CustomerDetails {
	details.Name = cust.Name
	details.Email = cust.Email
	details.MobileNumber = cust.MobileNumber
	return details
}

func MapToCustomer(details *CustomerDetails, cust *customer.Customer) *customer.Customer {
	cust.Name = details.Name
	cust.Email = details.Email
	cust.MobileNumber = details.MobileNumber
	return cust
}

func MapToAccountDetails(acc *Account, details *AccountDetails) *AccountDetails {
	details.AccountNumber = acc.AccountNumber
	details.AccountType = acc.AccountType
	details.BranchAddress = acc.BranchAddress
	return details
}

func MapToAccount(details *AccountDetails, acc *Account) *Account {
	acc.AccountNumber = details.AccountNumber
	acc.AccountType = details.AccountType
	acc.BranchAddress = details.BranchAddress
	return acc
}
