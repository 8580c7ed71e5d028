package repository

import (
	"context"
	"time"

	"github.com/Sriraja07/BillSys/internal/dto"
	"github.com/Sriraja07/BillSys/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExpenseRepository interface {
	Create(ctx context.Context, e *model.Expense) error
	FindByID(ctx context.Context, id uint) (*model.Expense, error)
	List(ctx context.Context, filter dto.ExpenseFilter, monthStart, monthEnd time.Time) ([]model.Expense, int64, error)
	Update(ctx context.Context, e *model.Expense) error
	Delete(ctx context.Context, id uint) error
	SumRange(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	DistinctCategories(ctx context.Context) ([]string, error)
}

type expenseRepo struct{ db *gorm.DB }

func NewExpenseRepository(db *gorm.DB) ExpenseRepository { return &expenseRepo{db: db} }

func (r *expenseRepo) Create(ctx context.Context, e *model.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *expenseRepo) FindByID(ctx context.Context, id uint) (*model.Expense, error) {
	var e model.Expense
	err := r.db.WithContext(ctx).First(&e, id).Error
	return &e, err
}

func (r *expenseRepo) List(ctx context.Context, filter dto.ExpenseFilter, monthStart, monthEnd time.Time) ([]model.Expense, int64, error) {
	var expenses []model.Expense
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Expense{}).
		Where("expense_date >= ? AND expense_date < ?", monthStart, monthEnd)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("expense_date DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&expenses).Error
	return expenses, total, err
}

func (r *expenseRepo) Update(ctx context.Context, e *model.Expense) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *expenseRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Expense{}, id).Error
}

func (r *expenseRepo) SumRange(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Expense{}).
		Where("expense_date >= ? AND expense_date < ?", start, end).
		Select("SUM(amount)").Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}

func (r *expenseRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&model.Expense{}).
		Distinct("category").Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}
