package customer

import "time"

type Customer struct {
	CustomerID   int64     `json:"customerId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	MobileNumber string    `json:"mobileNumber"`
	CreatedAt    time.Time `json:"createdAt"`
	CreatedBy    string    `json:"createdBy"`
	UpdatedAt    time.Time `json:"updatedAt"`
	UpdatedBy    string    `json:"updatedBy"`
}

func NewCustomer(name, email, mobileNumber string) *Customer {
	return &Customer{
		Name:         name,
		Email:        email,
		MobileNumber: mobileNumber,
	}
}
