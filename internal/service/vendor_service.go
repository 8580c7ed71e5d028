package service

import (
	"context"
	"errors"

	"github.com/Sriraja07/BillSys/internal/dto"
	"github.com/Sriraja07/BillSys/internal/model"
	"github.com/Sriraja07/BillSys/internal/repository"

	"github.com/shopspring/decimal"
)

type VendorService interface {
	Create(ctx context.Context, req dto.CreateVendorRequest) (*dto.VendorResponse, error)
	Get(ctx context.Context, id uint) (*dto.VendorDetailResponse, error)
	List(ctx context.Context, filter dto.VendorFilter) (*dto.VendorListResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateVendorRequest) (*dto.VendorResponse, error)
	Delete(ctx context.Context, id uint) error
}

type vendorService struct {
	repo         repository.VendorRepository
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
}

func NewVendorService(
	repo repository.VendorRepository,
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
) VendorService {
	return &vendorService{repo: repo, purchaseRepo: purchaseRepo, productRepo: productRepo}
}

func (s *vendorService) Create(ctx context.Context, req dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	v := &model.Vendor{
		Name:             req.Name,
		MobileNumber:     req.MobileNumber,
		GSTNumber:        req.GSTNumber,
		Address:          req.Address,
		ProductsSupplied: req.ProductsSupplied,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, errors.New("mobile number already registered")
	}
	resp := vendorToResponse(v)
	return &resp, nil
}

// Get returns the vendor statement: profile, purchase history, supplied
// products and the billed / paid / outstanding totals.
func (s *vendorService) Get(ctx context.Context, id uint) (*dto.VendorDetailResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("vendor not found")
	}
	purchases, err := s.purchaseRepo.ListByVendor(ctx, id)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.FindByVendorID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.VendorDetailResponse{Vendor: vendorToResponse(v)}
	for i := range purchases {
		p := &purchases[i]
		resp.TotalPurchases = resp.TotalPurchases.Add(p.FinalAmount)
		for _, pay := range p.Payments {
			resp.TotalPaid = resp.TotalPaid.Add(pay.Amount)
		}
		item := purchaseToListItem(p)
		item.VendorName = v.Name
		resp.Purchases = append(resp.Purchases, item)
	}
	resp.TotalPending = resp.TotalPurchases.Sub(resp.TotalPaid)
	if resp.TotalPending.IsNegative() {
		resp.TotalPending = decimal.Zero
	}
	for i := range products {
		resp.Products = append(resp.Products, productToResponse(&products[i]))
	}
	return resp, nil
}

func (s *vendorService) List(ctx context.Context, filter dto.VendorFilter) (*dto.VendorListResponse, error) {
	normalizePage(&filter.Page, &filter.Limit)
	vendors, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VendorResponse, 0, len(vendors))
	for i := range vendors {
		items = append(items, vendorToResponse(&vendors[i]))
	}
	return &dto.VendorListResponse{
		Data:       items,
		Total:      total,
		Page:       filter.Page,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *vendorService) Update(ctx context.Context, id uint, req dto.UpdateVendorRequest) (*dto.VendorResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("vendor not found")
	}
	if req.Name != nil {
		v.Name = *req.Name
	}
	if req.MobileNumber != nil {
		v.MobileNumber = *req.MobileNumber
	}
	if req.GSTNumber != nil {
		v.GSTNumber = req.GSTNumber
	}
	if req.Address != nil {
		v.Address = req.Address
	}
	if req.ProductsSupplied != nil {
		v.ProductsSupplied = req.ProductsSupplied
	}
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	resp := vendorToResponse(v)
	return &resp, nil
}

func (s *vendorService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("vendor not found")
	}
	return s.repo.Delete(ctx, id)
}

func vendorToResponse(v *model.Vendor) dto.VendorResponse {
	return dto.VendorResponse{
		ID:               v.ID,
		Name:             v.Name,
		MobileNumber:     v.MobileNumber,
		GSTNumber:        v.GSTNumber,
		Address:          v.Address,
		ProductsSupplied: v.ProductsSupplied,
		CreatedAt:        v.CreatedAt.Format("2006-01-02"),
	}
}
