package repository

import (
	"context"

	"github.com/wahyusaputra/motorshop-backend/internal/model"
	"gorm.io/gorm"
)

type DeliveryRepository interface {
	Create(ctx context.Context, d *model.Delivery) error
	FindByID(ctx context.Context, id string) (*model.Delivery, error)
	FindByTransaction(ctx context.Context, transactionID string) (*model.Delivery, error)
	Update(ctx context.Context, d *model.Delivery) error
	ListByDriver(ctx context.Context, driverID string, status *model.DeliveryStatus) ([]model.Delivery, error)
	List(ctx context.Context, status *model.DeliveryStatus) ([]model.Delivery, error)
	CountActive(ctx context.Context) (int64, error)
}

type deliveryRepository struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) DeliveryRepository {
	return &deliveryRepository{db: db}
}

func (r *deliveryRepository) Create(ctx context.Context, d *model.Delivery) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *deliveryRepository) FindByID(ctx context.Context, id string) (*model.Delivery, error) {
	var d model.Delivery
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *deliveryRepository) FindByTransaction(ctx context.Context, transactionID string) (*model.Delivery, error) {
	var d model.Delivery
	if err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *deliveryRepository) Update(ctx context.Context, d *model.Delivery) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *deliveryRepository) ListByDriver(ctx context.Context, driverID string, status *model.DeliveryStatus) ([]model.Delivery, error) {
	q := r.db.WithContext(ctx).Where("driver_id = ?", driverID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var list []model.Delivery
	if err := q.
		Preload("Transaction").
		Preload("Transaction.Motor").
		Preload("Transaction.User").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *deliveryRepository) List(ctx context.Context, status *model.DeliveryStatus) ([]model.Delivery, error) {
	q := r.db.WithContext(ctx).Model(&model.Delivery{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var list []model.Delivery
	if err := q.
		Preload("Driver").
		Preload("Transaction").
		Preload("Transaction.Motor").
		Preload("Transaction.User").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *deliveryRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&model.Delivery{}).
		Where("status IN ?", model.ActiveDeliveryStatuses).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
