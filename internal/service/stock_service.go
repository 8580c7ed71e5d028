package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sriraja07/BillSys/internal/dto"
	"github.com/Sriraja07/BillSys/internal/model"
	"github.com/Sriraja07/BillSys/internal/repository"

	"gorm.io/gorm"
)

// StockService handles manual stock adjustments from the stock page. Sale
// and purchase stock effects live in BillingService.
type StockService interface {
	UpdateStock(ctx context.Context, productID uint, req dto.StockUpdateRequest) (*dto.StockUpdateResponse, error)
	Movements(ctx context.Context, productID uint) ([]dto.StockMovementResponse, error)
}

type stockService struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

func NewStockService(productRepo repository.ProductRepository, movementRepo repository.StockMovementRepository) StockService {
	return &stockService{productRepo: productRepo, movementRepo: movementRepo}
}

func (s *stockService) UpdateStock(ctx context.Context, productID uint, req dto.StockUpdateRequest) (*dto.StockUpdateResponse, error) {
	p, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, errors.New("product not found")
	}

	delta := req.Quantity
	movType := "manual_add"
	if req.Action == "remove" {
		if p.StockQuantity < req.Quantity {
			return nil, fmt.Errorf("%w: have %d, removing %d", ErrInsufficientStock, p.StockQuantity, req.Quantity)
		}
		delta = -req.Quantity
		movType = "manual_remove"
	}

	txErr := runTx(ctx, s.productRepo.DB(), func(tx *gorm.DB) error {
		before, err := s.productRepo.FindByIDTx(tx, productID)
		if err != nil {
			return err
		}
		if delta < 0 && before.StockQuantity+delta < 0 {
			return fmt.Errorf("%w: have %d, removing %d", ErrInsufficientStock, before.StockQuantity, req.Quantity)
		}
		if err := s.productRepo.UpdateStockTx(tx, productID, delta); err != nil {
			return err
		}
		mov := &model.StockMovement{
			ProductID:   productID,
			Type:        movType,
			Quantity:    delta,
			StockBefore: before.StockQuantity,
			StockAfter:  before.StockQuantity + delta,
			Reason:      req.Reason,
		}
		return s.movementRepo.CreateTx(tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.StockUpdateResponse{
		ProductID:     productID,
		StockQuantity: p.StockQuantity + delta,
		Message:       fmt.Sprintf("stock updated for %s", p.Name),
	}, nil
}

func (s *stockService) Movements(ctx context.Context, productID uint) ([]dto.StockMovementResponse, error) {
	p, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, errors.New("product not found")
	}
	movements, err := s.movementRepo.ListByProduct(ctx, productID, 100)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		resp = append(resp, dto.StockMovementResponse{
			ID:          m.ID,
			ProductID:   m.ProductID,
			ProductName: p.Name,
			Type:        m.Type,
			Quantity:    m.Quantity,
			StockBefore: m.StockBefore,
			StockAfter:  m.StockAfter,
			Reason:      m.Reason,
			CreatedAt:   m.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return resp, nil
}
