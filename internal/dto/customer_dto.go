package dto

import "github.com/shopspring/decimal"

type CreateCustomerRequest struct {
	Name         string  `json:"name"          validate:"required,min=2,max=100"`
	MobileNumber string  `json:"mobile_number" validate:"required,min=10,max=15"`
	Email        *string `json:"email"         validate:"omitempty,email"`
	Address      *string `json:"address"`
}

type UpdateCustomerRequest struct {
	Name         *string `json:"name"          validate:"omitempty,min=2,max=100"`
	MobileNumber *string `json:"mobile_number" validate:"omitempty,min=10,max=15"`
	Email        *string `json:"email"         validate:"omitempty,email"`
	Address      *string `json:"address"`
}

type CustomerFilter struct {
	Search string `form:"search"` // matches name or mobile number
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=10" validate:"min=1,max=100"`
}

type CustomerResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	MobileNumber string  `json:"mobile_number"`
	Email        *string `json:"email"`
	Address      *string `json:"address"`
	CreatedAt    string  `json:"created_at"`
}

type CustomerListResponse struct {
	Data       []CustomerResponse `json:"data"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	TotalPages int                `json:"total_pages"`
}

// CustomerDetailResponse is the statement view: the customer's invoices plus
// running totals of billed, received and outstanding money.
type CustomerDetailResponse struct {
	Customer     CustomerResponse      `json:"customer"`
	Invoices     []InvoiceListItem     `json:"invoices"`
	TotalSales   decimal.Decimal       `json:"total_sales"`
	TotalPaid    decimal.Decimal       `json:"total_paid"`
	TotalPending decimal.Decimal       `json:"total_pending"`
}
