package service

import (
	"context"
	"testing"

	"github.com/Sriraja07/BillSys/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateStock_Add(t *testing.T) {
	productRepo := newStubProductRepo()
	movementRepo := &stubMovementRepo{}
	svc := NewStockService(productRepo, movementRepo)
	p := productRepo.seed("Bulb", 10, 18)

	resp, err := svc.UpdateStock(context.Background(), p.ID, dto.StockUpdateRequest{
		Action: "add", Quantity: 5, Reason: "supplier return",
	})
	require.NoError(t, err)
	assert.Equal(t, 15, resp.StockQuantity)

	after, _ := productRepo.FindByID(context.Background(), p.ID)
	assert.Equal(t, 15, after.StockQuantity)

	require.Len(t, movementRepo.movements, 1)
	mov := movementRepo.movements[0]
	assert.Equal(t, "manual_add", mov.Type)
	assert.Equal(t, 5, mov.Quantity)
	assert.Equal(t, 10, mov.StockBefore)
	assert.Equal(t, 15, mov.StockAfter)
	assert.Equal(t, "supplier return", mov.Reason)
}

func TestUpdateStock_Remove(t *testing.T) {
	productRepo := newStubProductRepo()
	movementRepo := &stubMovementRepo{}
	svc := NewStockService(productRepo, movementRepo)
	p := productRepo.seed("Bulb", 10, 18)

	resp, err := svc.UpdateStock(context.Background(), p.ID, dto.StockUpdateRequest{
		Action: "remove", Quantity: 4, Reason: "damaged",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.StockQuantity)

	require.Len(t, movementRepo.movements, 1)
	assert.Equal(t, "manual_remove", movementRepo.movements[0].Type)
	assert.Equal(t, -4, movementRepo.movements[0].Quantity)
}

func TestUpdateStock_RemoveBeyondStock(t *testing.T) {
	productRepo := newStubProductRepo()
	movementRepo := &stubMovementRepo{}
	svc := NewStockService(productRepo, movementRepo)
	p := productRepo.seed("Bulb", 3, 18)

	_, err := svc.UpdateStock(context.Background(), p.ID, dto.StockUpdateRequest{
		Action: "remove", Quantity: 5,
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Empty(t, movementRepo.movements)

	after, _ := productRepo.FindByID(context.Background(), p.ID)
	assert.Equal(t, 3, after.StockQuantity)
}

func TestMovements_UnknownProduct(t *testing.T) {
	svc := NewStockService(newStubProductRepo(), &stubMovementRepo{})
	_, err := svc.Movements(context.Background(), 42)
	assert.ErrorContains(t, err, "product not found")
}
