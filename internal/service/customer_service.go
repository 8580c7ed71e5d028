package service

import (
	"context"
	"errors"

	"github.com/Sriraja07/BillSys/internal/dto"
	"github.com/Sriraja07/BillSys/internal/model"
	"github.com/Sriraja07/BillSys/internal/repository"

	"github.com/shopspring/decimal"
)

type CustomerService interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	Get(ctx context.Context, id uint) (*dto.CustomerDetailResponse, error)
	List(ctx context.Context, filter dto.CustomerFilter) (*dto.CustomerListResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	Delete(ctx context.Context, id uint) error
}

type customerService struct {
	repo        repository.CustomerRepository
	invoiceRepo repository.InvoiceRepository
}

func NewCustomerService(repo repository.CustomerRepository, invoiceRepo repository.InvoiceRepository) CustomerService {
	return &customerService{repo: repo, invoiceRepo: invoiceRepo}
}

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	c := &model.Customer{
		Name:         req.Name,
		MobileNumber: req.MobileNumber,
		Email:        req.Email,
		Address:      req.Address,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, errors.New("mobile number already registered")
	}
	resp := customerToResponse(c)
	return &resp, nil
}

// Get returns the customer statement: profile, invoice history and the
// billed / received / outstanding totals.
func (s *customerService) Get(ctx context.Context, id uint) (*dto.CustomerDetailResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("customer not found")
	}
	invoices, err := s.invoiceRepo.ListByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.CustomerDetailResponse{Customer: customerToResponse(c)}
	for i := range invoices {
		inv := &invoices[i]
		resp.TotalSales = resp.TotalSales.Add(inv.FinalAmount)
		for _, p := range inv.Payments {
			resp.TotalPaid = resp.TotalPaid.Add(p.Amount)
		}
		item := invoiceToListItem(inv)
		item.CustomerName = c.Name
		resp.Invoices = append(resp.Invoices, item)
	}
	resp.TotalPending = resp.TotalSales.Sub(resp.TotalPaid)
	if resp.TotalPending.IsNegative() {
		resp.TotalPending = decimal.Zero
	}
	return resp, nil
}

func (s *customerService) List(ctx context.Context, filter dto.CustomerFilter) (*dto.CustomerListResponse, error) {
	normalizePage(&filter.Page, &filter.Limit)
	customers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, customerToResponse(&customers[i]))
	}
	return &dto.CustomerListResponse{
		Data:       items,
		Total:      total,
		Page:       filter.Page,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *customerService) Update(ctx context.Context, id uint, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("customer not found")
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.MobileNumber != nil {
		c.MobileNumber = *req.MobileNumber
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Address != nil {
		c.Address = req.Address
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := customerToResponse(c)
	return &resp, nil
}

func (s *customerService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("customer not found")
	}
	return s.repo.Delete(ctx, id)
}

func customerToResponse(c *model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		MobileNumber: c.MobileNumber,
		Email:        c.Email,
		Address:      c.Address,
		CreatedAt:    c.CreatedAt.Format("2006-01-02"),
	}
}
