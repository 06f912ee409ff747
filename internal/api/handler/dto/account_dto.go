package dto

import (
	"fmt"
	"regexp"
	"strings"

	"accounts-service/internal/domain/account"
)

// API response codes and messages. The codes travel in the response body and
// mirror the HTTP status of the happy path; "417" marks a failed update/delete.
const (
	StatusCreated = "201"
	StatusOK      = "200"
	StatusFailed  = "417"

	MessageCreated      = "Account created successfully"
	MessageOK           = "Request processed successfully"
	MessageUpdateFailed = "Update operation failed. Please try again or contact Dev team"
	MessageDeleteFailed = "Delete operation failed. Please try again or contact Dev team"
)

var (
	mobileNumberPattern = regexp.MustCompile(`^[0-9]{10}$`)
	emailPattern        = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

type CustomerRequest struct {
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	MobileNumber string          `json:"mobileNumber"`
	Account      *AccountPayload `json:"account,omitempty"`
}

type AccountPayload struct {
	AccountNumber int64  `json:"accountNumber"`
	AccountType   string `json:"accountType"`
	BranchAddress string `json:"branchAddress"`
}

func (r *CustomerRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if !emailPattern.MatchString(r.Email) {
		return fmt.Errorf("email address is not valid")
	}
	if !mobileNumberPattern.MatchString(r.MobileNumber) {
		return fmt.Errorf("mobile number must be 10 digits")
	}
	if r.Account != nil {
		return r.Account.Validate()
	}
	return nil
}

func (p *AccountPayload) Validate() error {
	if p.AccountNumber <= 0 {
		return fmt.Errorf("accountNumber must be a positive number")
	}
	if strings.TrimSpace(p.AccountType) == "" {
		return fmt.Errorf("accountType cannot be empty")
	}
	if strings.TrimSpace(p.BranchAddress) == "" {
		return fmt.Errorf("branchAddress cannot be empty")
	}
	return nil
}

// ValidateMobileNumber checks the query-parameter form of a mobile number.
// An empty value is allowed here so the handler can report a clearer error.
func ValidateMobileNumber(mobileNumber string) error {
	if mobileNumber == "" {
		return fmt.Errorf("mobileNumber query parameter is required")
	}
	if !mobileNumberPattern.MatchString(mobileNumber) {
		return fmt.Errorf("mobile number must be 10 digits")
	}
	return nil
}

type CustomerDetailsResponse struct {
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	MobileNumber string          `json:"mobileNumber"`
	Account      *AccountPayload `json:"account,omitempty"`
}

type StatusResponse struct {
	StatusCode string `json:"statusCode"`
	StatusMsg  string `json:"statusMsg"`
}

type ErrorDetail struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type TokenRequest struct {
	Username string `json:"username"`
}

func (r *CustomerRequest) ToCustomerDetails() account.CustomerDetails {
	details := account.CustomerDetails{
		Name:         r.Name,
		Email:        r.Email,
		MobileNumber: r.MobileNumber,
	}
	if r.Account != nil {
		details.Account = &account.AccountDetails{
			AccountNumber: r.Account.AccountNumber,
			AccountType:   r.Account.AccountType,
			BranchAddress: r.Account.BranchAddress,
		}
	}
	return details
}

func NewCustomerDetailsResponse(details *account.CustomerDetails) CustomerDetailsResponse {
	if details == nil {
		return CustomerDetailsResponse{}
	}

	resp := CustomerDetailsResponse{
		Name:         details.Name,
		Email:        details.Email,
		MobileNumber: details.MobileNumber,
	}
	if details.Account != nil {
		resp.Account = &AccountPayload{
			AccountNumber: details.Account.AccountNumber,
			AccountType:   details.Account.AccountType,
			BranchAddress: details.Account.BranchAddress,
		}
	}
	return resp
}
