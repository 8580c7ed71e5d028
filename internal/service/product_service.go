package service

import (
	"context"
	"errors"

	"github.com/Sriraja07/BillSys/internal/dto"
	"github.com/Sriraja07/BillSys/internal/model"
	"github.com/Sriraja07/BillSys/internal/repository"
)

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uint) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uint) error
	PriceHistory(ctx context.Context, id uint) ([]dto.PriceHistoryResponse, error)
}

type productService struct {
	repo        repository.ProductRepository
	vendorRepo  repository.VendorRepository
	historyRepo repository.PriceHistoryRepository
}

func NewProductService(
	repo repository.ProductRepository,
	vendorRepo repository.VendorRepository,
	historyRepo repository.PriceHistoryRepository,
) ProductService {
	return &productService{repo: repo, vendorRepo: vendorRepo, historyRepo: historyRepo}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if req.VendorID != nil {
		if _, err := s.vendorRepo.FindByID(ctx, *req.VendorID); err != nil {
			return nil, errors.New("vendor not found")
		}
	}
	p := &model.Product{
		Name:          req.Name,
		Category:      req.Category,
		Brand:         req.Brand,
		MRPPrice:      req.MRPPrice,
		CostPrice:     req.CostPrice,
		SellingPrice:  req.SellingPrice,
		GSTRate:       req.GSTRate,
		StockQuantity: req.StockQuantity,
		VendorID:      req.VendorID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) Get(ctx context.Context, id uint) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	normalizePage(&filter.Page, &filter.Limit)
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.DistinctCategories(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{
		Data:       items,
		Categories: categories,
		Total:      total,
		Page:       filter.Page,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// Update applies partial changes. A cost or selling price change writes a
// price history row before the product is saved.
func (s *productService) Update(ctx context.Context, id uint, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}

	priceChanged := (req.CostPrice != nil && !req.CostPrice.Equal(p.CostPrice)) ||
		(req.SellingPrice != nil && !req.SellingPrice.Equal(p.SellingPrice))
	if priceChanged {
		h := &model.PriceHistory{
			ProductID:  p.ID,
			OldCost:    p.CostPrice,
			NewCost:    p.CostPrice,
			OldSelling: p.SellingPrice,
			NewSelling: p.SellingPrice,
		}
		if req.CostPrice != nil {
			h.NewCost = *req.CostPrice
		}
		if req.SellingPrice != nil {
			h.NewSelling = *req.SellingPrice
		}
		if err := s.historyRepo.Create(ctx, h); err != nil {
			return nil, err
		}
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Brand != nil {
		p.Brand = *req.Brand
	}
	if req.MRPPrice != nil {
		p.MRPPrice = *req.MRPPrice
	}
	if req.CostPrice != nil {
		p.CostPrice = *req.CostPrice
	}
	if req.SellingPrice != nil {
		p.SellingPrice = *req.SellingPrice
	}
	if req.GSTRate != nil {
		p.GSTRate = *req.GSTRate
	}
	if req.StockQuantity != nil {
		p.StockQuantity = *req.StockQuantity
	}
	if req.VendorID != nil {
		if _, err := s.vendorRepo.FindByID(ctx, *req.VendorID); err != nil {
			return nil, errors.New("vendor not found")
		}
		p.VendorID = req.VendorID
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("product not found")
	}
	return s.repo.Delete(ctx, id)
}

func (s *productService) PriceHistory(ctx context.Context, id uint) ([]dto.PriceHistoryResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, errors.New("product not found")
	}
	history, err := s.historyRepo.ListByProduct(ctx, id, 50)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PriceHistoryResponse, 0, len(history))
	for _, h := range history {
		resp = append(resp, dto.PriceHistoryResponse{
			OldCost:    h.OldCost,
			NewCost:    h.NewCost,
			OldSelling: h.OldSelling,
			NewSelling: h.NewSelling,
			ChangedAt:  h.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return resp, nil
}

func productToResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Category:      p.Category,
		Brand:         p.Brand,
		MRPPrice:      p.MRPPrice,
		CostPrice:     p.CostPrice,
		SellingPrice:  p.SellingPrice,
		GSTRate:       p.GSTRate,
		StockQuantity: p.StockQuantity,
		VendorID:      p.VendorID,
	}
}
