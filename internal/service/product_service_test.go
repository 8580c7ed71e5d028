package service

import (
	"context"
	"testing"

	"github.com/Sriraja07/BillSys/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildProductSvc() (ProductService, *stubProductRepo, *stubVendorRepo, *stubPriceHistoryRepo) {
	productRepo := newStubProductRepo()
	vendorRepo := newStubVendorRepo()
	historyRepo := &stubPriceHistoryRepo{}
	return NewProductService(productRepo, vendorRepo, historyRepo), productRepo, vendorRepo, historyRepo
}

func TestUpdateProduct_PriceChangeWritesHistory(t *testing.T) {
	svc, productRepo, _, historyRepo := buildProductSvc()
	p := productRepo.seed("Bulb", 10, 18) // cost 80, selling 100

	newSelling := decimal.NewFromInt(110)
	resp, err := svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{
		SellingPrice: &newSelling,
	})
	require.NoError(t, err)
	assert.Equal(t, "110", resp.SellingPrice.String())

	require.Len(t, historyRepo.rows, 1)
	h := historyRepo.rows[0]
	assert.Equal(t, "80", h.OldCost.String())
	assert.Equal(t, "80", h.NewCost.String())
	assert.Equal(t, "100", h.OldSelling.String())
	assert.Equal(t, "110", h.NewSelling.String())
}

func TestUpdateProduct_NonPriceChangeSkipsHistory(t *testing.T) {
	svc, productRepo, _, historyRepo := buildProductSvc()
	p := productRepo.seed("Bulb", 10, 18)

	name := "LED Bulb"
	_, err := svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Empty(t, historyRepo.rows)

	after, _ := productRepo.FindByID(context.Background(), p.ID)
	assert.Equal(t, "LED Bulb", after.Name)
}

func TestCreateProduct_UnknownVendor(t *testing.T) {
	svc, _, _, _ := buildProductSvc()
	missing := uint(7)
	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name: "Bulb", Category: "Electrical", Brand: "Philips",
		MRPPrice:     decimal.NewFromInt(120),
		CostPrice:    decimal.NewFromInt(80),
		SellingPrice: decimal.NewFromInt(100),
		GSTRate:      decimal.NewFromInt(18),
		VendorID:     &missing,
	})
	assert.ErrorContains(t, err, "vendor not found")
}
