package repository

import (
	"context"

	"github.com/wahyusaputra/motorshop-backend/internal/model"
	"gorm.io/gorm"
)

// MotorFilter narrows the public catalog listing.
type MotorFilter struct {
	Brand    string
	MinPrice *int64
	MaxPrice *int64
	Search   string
}

type MotorRepository interface {
	Create(ctx context.Context, m *model.Motor) error
	FindByID(ctx context.Context, id string) (*model.Motor, error)
	Update(ctx context.Context, m *model.Motor) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter MotorFilter) ([]model.Motor, error)
	Brands(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
	DecrementStock(ctx context.Context, id string, qty int) (int64, error)
	IncrementStock(ctx context.Context, id string, qty int) error
}

type motorRepository struct {
	db *gorm.DB
}

func NewMotorRepository(db *gorm.DB) MotorRepository {
	return &motorRepository{db: db}
}

func (r *motorRepository) Create(ctx context.Context, m *model.Motor) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *motorRepository) FindByID(ctx context.Context, id string) (*model.Motor, error) {
	var m model.Motor
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *motorRepository) Update(ctx context.Context, m *model.Motor) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *motorRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Motor{}, "id = ?", id).Error
}

func (r *motorRepository) List(ctx context.Context, filter MotorFilter) ([]model.Motor, error) {
	q := r.db.WithContext(ctx).Model(&model.Motor{})
	if filter.Brand != "" {
		q = q.Where("brand = ?", filter.Brand)
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("name LIKE ? OR brand LIKE ? OR model LIKE ?", like, like, like)
	}
	var motors []model.Motor
	if err := q.Order("created_at DESC").Find(&motors).Error; err != nil {
		return nil, err
	}
	return motors, nil
}

func (r *motorRepository) Brands(ctx context.Context) ([]string, error) {
	var brands []string
	if err := r.db.WithContext(ctx).
		Model(&model.Motor{}).
		Distinct("brand").
		Order("brand").
		Pluck("brand", &brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *motorRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Motor{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// DecrementStock takes qty units off the shelf in one conditional update so
// two concurrent orders cannot both pass a separate stock check. The caller
// treats zero rows affected as insufficient stock.
func (r *motorRepository) DecrementStock(ctx context.Context, id string, qty int) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Motor{}).
		Where("id = ? AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *motorRepository) IncrementStock(ctx context.Context, id string, qty int) error {
	return r.db.WithContext(ctx).
		Model(&model.Motor{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", qty)).Error
}
