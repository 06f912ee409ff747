package dto_test

import (
	"testing"

	"accounts-service/internal/api/handler/dto"
	"accounts-service/internal/domain/account"

	"github.com/stretchr/testify/assert"
)

func validRequest() dto.CustomerRequest {
	return dto.CustomerRequest{
		Name:         "Madan Reddy",
		Email:        "madan@example.com",
		MobileNumber: "4354437687",
	}
}

func TestCustomerRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dto.CustomerRequest)
		wantErr string
	}{
		{
			name:   "valid request",
			mutate: func(r *dto.CustomerRequest) {},
		},
		{
			name:    "empty name",
			mutate:  func(r *dto.CustomerRequest) { r.Name = "   " },
			wantErr: "name cannot be empty",
		},
		{
			name:    "invalid email",
			mutate:  func(r *dto.CustomerRequest) { r.Email = "not-an-email" },
			wantErr: "email address is not valid",
		},
		{
			name:    "mobile number too short",
			mutate:  func(r *dto.CustomerRequest) { r.MobileNumber = "12345" },
			wantErr: "mobile number must be 10 digits",
		},
		{
			name:    "mobile number with letters",
			mutate:  func(r *dto.CustomerRequest) { r.MobileNumber = "43544376ab" },
			wantErr: "mobile number must be 10 digits",
		},
		{
			name: "valid request with account",
			mutate: func(r *dto.CustomerRequest) {
				r.Account = &dto.AccountPayload{
					AccountNumber: 1365766735,
					AccountType:   "Savings",
					BranchAddress: "123 Main Street, New York",
				}
			},
		},
		{
			name: "account with non-positive number",
			mutate: func(r *dto.CustomerRequest) {
				r.Account = &dto.AccountPayload{AccountNumber: 0, AccountType: "Savings", BranchAddress: "addr"}
			},
			wantErr: "accountNumber must be a positive number",
		},
		{
			name: "account with empty type",
			mutate: func(r *dto.CustomerRequest) {
				r.Account = &dto.AccountPayload{AccountNumber: 1365766735, AccountType: " ", BranchAddress: "addr"}
			},
			wantErr: "accountType cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMobileNumber(t *testing.T) {
	assert.NoError(t, dto.ValidateMobileNumber("4354437687"))
	assert.EqualError(t, dto.ValidateMobileNumber(""), "mobileNumber query parameter is required")
	assert.EqualError(t, dto.ValidateMobileNumber("123"), "mobile number must be 10 digits")
	assert.EqualError(t, dto.ValidateMobileNumber("43544376877"), "mobile number must be 10 digits")
}

func TestToCustomerDetails(t *testing.T) {
	req := validRequest()
	req.Account = &dto.AccountPayload{
		AccountNumber: 1365766735,
		AccountType:   "Current",
		BranchAddress: "456 Park Avenue, Chicago",
	}

	details := req.ToCustomerDetails()

	assert.Equal(t, req.Name, details.Name)
	assert.Equal(t, req.Email, details.Email)
	assert.Equal(t, req.MobileNumber, details.MobileNumber)
	assert.NotNil(t, details.Account)
	assert.Equal(t, int64(1365766735), details.Account.AccountNumber)
	assert.Equal(t, "Current", details.Account.AccountType)
}

func TestToCustomerDetailsWithoutAccount(t *testing.T) {
	req := validRequest()
	details := req.ToCustomerDetails()
	assert.Nil(t, details.Account)
}

func TestNewCustomerDetailsResponse(t *testing.T) {
	details := &account.CustomerDetails{
		Name:         "Madan Reddy",
		Email:        "madan@example.com",
		MobileNumber: "4354437687",
		Account: &account.AccountDetails{
			AccountNumber: 1365766735,
			AccountType:   account.TypeSavings,
			BranchAddress: account.DefaultBranchAddress,
		},
	}

	resp := dto.NewCustomerDetailsResponse(details)

	assert.Equal(t, details.Name, resp.Name)
	assert.Equal(t, details.MobileNumber, resp.MobileNumber)
	assert.NotNil(t, resp.Account)
	assert.Equal(t, details.Account.AccountNumber, resp.Account.AccountNumber)
}

func TestNewCustomerDetailsResponseNil(t *testing.T) {
	resp := dto.NewCustomerDetailsResponse(nil)
	assert.Equal(t, dto.CustomerDetailsResponse{}, resp)
}
