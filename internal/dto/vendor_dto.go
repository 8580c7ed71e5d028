package dto

import "github.com/shopspring/decimal"

type CreateVendorRequest struct {
	Name             string  `json:"name"          validate:"required,min=2,max=100"`
	MobileNumber     string  `json:"mobile_number" validate:"required,min=10,max=15"`
	GSTNumber        *string `json:"gst_number"    validate:"omitempty,max=15"`
	Address          *string `json:"address"`
	ProductsSupplied *string `json:"products_supplied"`
}

type UpdateVendorRequest struct {
	Name             *string `json:"name"          validate:"omitempty,min=2,max=100"`
	MobileNumber     *string `json:"mobile_number" validate:"omitempty,min=10,max=15"`
	GSTNumber        *string `json:"gst_number"    validate:"omitempty,max=15"`
	Address          *string `json:"address"`
	ProductsSupplied *string `json:"products_supplied"`
}

type VendorFilter struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=10" validate:"min=1,max=100"`
}

type VendorResponse struct {
	ID               uint    `json:"id"`
	Name             string  `json:"name"`
	MobileNumber     string  `json:"mobile_number"`
	GSTNumber        *string `json:"gst_number"`
	Address          *string `json:"address"`
	ProductsSupplied *string `json:"products_supplied"`
	CreatedAt        string  `json:"created_at"`
}

type VendorListResponse struct {
	Data       []VendorResponse `json:"data"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
}

type VendorDetailResponse struct {
	Vendor         VendorResponse     `json:"vendor"`
	Purchases      []PurchaseListItem `json:"purchases"`
	Products       []ProductResponse  `json:"products"`
	TotalPurchases decimal.Decimal    `json:"total_purchases"`
	TotalPaid      decimal.Decimal    `json:"total_paid"`
	TotalPending   decimal.Decimal    `json:"total_pending"`
}
