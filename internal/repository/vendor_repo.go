package repository

import (
	"context"

	"github.com/Sriraja07/BillSys/internal/dto"
	"github.com/Sriraja07/BillSys/internal/model"

	"gorm.io/gorm"
)

type VendorRepository interface {
	Create(ctx context.Context, v *model.Vendor) error
	FindByID(ctx context.Context, id uint) (*model.Vendor, error)
	List(ctx context.Context, filter dto.VendorFilter) ([]model.Vendor, int64, error)
	Update(ctx context.Context, v *model.Vendor) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type vendorRepo struct{ db *gorm.DB }

func NewVendorRepository(db *gorm.DB) VendorRepository { return &vendorRepo{db: db} }

func (r *vendorRepo) Create(ctx context.Context, v *model.Vendor) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *vendorRepo) FindByID(ctx context.Context, id uint) (*model.Vendor, error) {
	var v model.Vendor
	err := r.db.WithContext(ctx).First(&v, id).Error
	return &v, err
}

func (r *vendorRepo) List(ctx context.Context, filter dto.VendorFilter) ([]model.Vendor, int64, error) {
	var vendors []model.Vendor
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Vendor{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("name ILIKE ? OR mobile_number LIKE ?", pattern, pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&vendors).Error
	return vendors, total, err
}

func (r *vendorRepo) Update(ctx context.Context, v *model.Vendor) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *vendorRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Vendor{}, id).Error
}

func (r *vendorRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Vendor{}).Count(&n).Error
	return n, err
}
