package service

import (
	"context"
	"errors"
	"time"

	"github.com/Sriraja07/BillSys/internal/dto"
	"github.com/Sriraja07/BillSys/internal/model"
	"github.com/Sriraja07/BillSys/internal/repository"
)

type ExpenseService interface {
	Create(ctx context.Context, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error)
	List(ctx context.Context, filter dto.ExpenseFilter) (*dto.ExpenseListResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error)
	Delete(ctx context.Context, id uint) error
}

type expenseService struct {
	repo repository.ExpenseRepository
}

func NewExpenseService(repo repository.ExpenseRepository) ExpenseService {
	return &expenseService{repo: repo}
}

func (s *expenseService) Create(ctx context.Context, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	date, err := time.Parse("2006-01-02", req.ExpenseDate)
	if err != nil {
		return nil, errors.New("expense_date must be YYYY-MM-DD")
	}
	e := &model.Expense{
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		ExpenseDate: date,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	resp := expenseToResponse(e)
	return &resp, nil
}

// List pages one month of expenses (the current month when unspecified) and
// attaches the month and fiscal-year rollups. The fiscal year runs
// April 1 – March 31.
func (s *expenseService) List(ctx context.Context, filter dto.ExpenseFilter) (*dto.ExpenseListResponse, error) {
	normalizePage(&filter.Page, &filter.Limit)

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if filter.Month != "" {
		t, err := time.Parse("2006-01", filter.Month)
		if err != nil {
			return nil, errors.New("month must be YYYY-MM")
		}
		monthStart = t
	}
	monthEnd := monthStart.AddDate(0, 1, 0)

	expenses, total, err := s.repo.List(ctx, filter, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	monthlyTotal, err := s.repo.SumRange(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	fyStart, fyEnd := fiscalYearBounds(monthStart)
	fyTotal, err := s.repo.SumRange(ctx, fyStart, fyEnd)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.DistinctCategories(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		items = append(items, expenseToResponse(&expenses[i]))
	}
	return &dto.ExpenseListResponse{
		Data:               items,
		Categories:         categories,
		MonthlyTotal:       monthlyTotal,
		FinancialYearTotal: fyTotal,
		FiscalYearStart:    fyStart.Format("2006-01-02"),
		FiscalYearEnd:      fyEnd.AddDate(0, 0, -1).Format("2006-01-02"),
		Total:              total,
		Page:               filter.Page,
		TotalPages:         totalPages(total, filter.Limit),
	}, nil
}

func (s *expenseService) Update(ctx context.Context, id uint, req dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("expense not found")
	}
	if req.Category != nil {
		e.Category = *req.Category
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Amount != nil {
		e.Amount = *req.Amount
	}
	if req.ExpenseDate != nil {
		date, err := time.Parse("2006-01-02", *req.ExpenseDate)
		if err != nil {
			return nil, errors.New("expense_date must be YYYY-MM-DD")
		}
		e.ExpenseDate = date
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	resp := expenseToResponse(e)
	return &resp, nil
}

func (s *expenseService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("expense not found")
	}
	return s.repo.Delete(ctx, id)
}

func expenseToResponse(e *model.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:          e.ID,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		ExpenseDate: e.ExpenseDate.Format("2006-01-02"),
	}
}
