package repository

import (
	"context"

	"github.com/wahyusaputra/motorshop-backend/internal/model"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(ctx context.Context, t *model.Transaction) error
	FindByID(ctx context.Context, id string) (*model.Transaction, error)
	FindByIDWithDelivery(ctx context.Context, id string) (*model.Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]model.Transaction, error)
	List(ctx context.Context, status *model.OrderStatus) ([]model.Transaction, error)
	ListPending(ctx context.Context) ([]model.Transaction, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus, cashierID *string) error
	UpdateStatusFrom(ctx context.Context, id string, from, to model.OrderStatus, cashierID *string) (bool, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, t *model.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *transactionRepository) FindByID(ctx context.Context, id string) (*model.Transaction, error) {
	var t model.Transaction
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepository) FindByIDWithDelivery(ctx context.Context, id string) (*model.Transaction, error) {
	var t model.Transaction
	if err := r.db.WithContext(ctx).
		Preload("Delivery").
		First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID string) ([]model.Transaction, error) {
	var list []model.Transaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Motor").
		Preload("Delivery").
		Preload("Delivery.Driver").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *transactionRepository) List(ctx context.Context, status *model.OrderStatus) ([]model.Transaction, error) {
	q := r.db.WithContext(ctx).Model(&model.Transaction{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var list []model.Transaction
	if err := q.
		Preload("Motor").
		Preload("User").
		Preload("Cashier").
		Preload("Delivery").
		Preload("Delivery.Driver").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListPending returns unconfirmed orders oldest first, the order the cashier
// queue works through them.
func (r *transactionRepository) ListPending(ctx context.Context) ([]model.Transaction, error) {
	var list []model.Transaction
	if err := r.db.WithContext(ctx).
		Where("status = ?", model.OrderPending).
		Preload("Motor").
		Preload("User").
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, cashierID *string) error {
	updates := map[string]interface{}{"status": status}
	if cashierID != nil {
		updates["cashier_id"] = *cashierID
	}
	return r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// UpdateStatusFrom flips the status only while the row still holds the
// expected current status. Returns false when another writer got there first.
func (r *transactionRepository) UpdateStatusFrom(ctx context.Context, id string, from, to model.OrderStatus, cashierID *string) (bool, error) {
	updates := map[string]interface{}{"status": to}
	if cashierID != nil {
		updates["cashier_id"] = *cashierID
	}
	res := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
