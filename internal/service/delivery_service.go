package service

import (
	"context"
	"errors"
	"time"

	"github.com/wahyusaputra/motorshop-backend/internal/model"
	"github.com/wahyusaputra/motorshop-backend/internal/repository"
	"gorm.io/gorm"
)

var ErrForbidden = errors.New("forbidden")

type DeliveryService interface {
	ListMine(ctx context.Context, driverID string, status *model.DeliveryStatus) ([]model.Delivery, error)
	List(ctx context.Context, status *model.DeliveryStatus) ([]model.Delivery, error)
	ListDrivers(ctx context.Context) ([]model.User, error)
	UpdateStatus(ctx context.Context, deliveryID, driverID string, status model.DeliveryStatus, notes *string) (*model.Delivery, error)
	Complete(ctx context.Context, deliveryID, customerID string) error
}

type deliveryService struct {
	deliveries   repository.DeliveryRepository
	transactions repository.TransactionRepository
	users        repository.UserRepository
}

func NewDeliveryService(
	deliveries repository.DeliveryRepository,
	transactions repository.TransactionRepository,
	users repository.UserRepository,
) DeliveryService {
	return &deliveryService{deliveries: deliveries, transactions: transactions, users: users}
}

func (s *deliveryService) ListMine(ctx context.Context, driverID string, status *model.DeliveryStatus) ([]model.Delivery, error) {
	return s.deliveries.ListByDriver(ctx, driverID, status)
}

func (s *deliveryService) List(ctx context.Context, status *model.DeliveryStatus) ([]model.Delivery, error) {
	return s.deliveries.List(ctx, status)
}

func (s *deliveryService) ListDrivers(ctx context.Context) ([]model.User, error) {
	return s.users.ListByRoles(ctx, model.RoleDriver)
}

// UpdateStatus advances a delivery one step along its lifecycle. Only the
// assigned driver may do this, and stages cannot be skipped. Reaching
// DELIVERED stamps the timestamp and flips the parent order to DELIVERED.
func (s *deliveryService) UpdateStatus(ctx context.Context, deliveryID, driverID string, status model.DeliveryStatus, notes *string) (*model.Delivery, error) {
	d, err := s.deliveries.FindByID(ctx, deliveryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if d.DriverID != driverID {
		return nil, ErrForbidden
	}
	if !status.Valid() {
		return nil, errors.New("unknown delivery status")
	}
	if !d.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	d.Status = status
	if notes != nil {
		d.Notes = notes
	}
	if status == model.DeliveryDelivered {
		now := time.Now()
		d.DeliveredAt = &now
	}
	if err := s.deliveries.Update(ctx, d); err != nil {
		return nil, err
	}

	if status == model.DeliveryDelivered {
		if err := s.transactions.UpdateStatus(ctx, d.TransactionID, model.OrderDelivered, nil); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Complete is the customer's receipt confirmation: it requires the delivery
// to have arrived and moves the order to its terminal COMPLETED state.
// Repeat calls on an already completed order succeed without mutation.
func (s *deliveryService) Complete(ctx context.Context, deliveryID, customerID string) error {
	d, err := s.deliveries.FindByID(ctx, deliveryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	t, err := s.transactions.FindByID(ctx, d.TransactionID)
	if err != nil {
		return err
	}
	if t.UserID != customerID {
		return ErrForbidden
	}
	if d.Status != model.DeliveryDelivered {
		return errors.New("delivery has not arrived yet")
	}
	if t.Status == model.OrderCompleted {
		return nil
	}
	if !t.Status.CanTransitionTo(model.OrderCompleted) {
		return ErrInvalidTransition
	}
	return s.transactions.UpdateStatus(ctx, t.ID, model.OrderCompleted, nil)
}
