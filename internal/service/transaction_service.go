package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/wahyusaputra/motorshop-backend/internal/model"
	"github.com/wahyusaputra/motorshop-backend/internal/pricing"
	"github.com/wahyusaputra/motorshop-backend/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidTransition = errors.New("status transition not allowed")
	// ErrDeliveryExists signals an assignment against an order that already
	// has its delivery.
	ErrDeliveryExists = errors.New("transaction already has a delivery")
)

type CreateOrderInput struct {
	MotorID        string
	Quantity       int
	PaymentMethod  string
	ShippingAddr   string
	ShippingProv   string
	ShippingCity   string
	ShippingDist   string
	ShippingVill   string
	ShippingPostal string
	ShippingPhone  string
	Latitude       *float64
	Longitude      *float64
}

// CreateOrderResult carries the stored order plus the simulated bank-transfer
// payload for transfer payment methods.
type CreateOrderResult struct {
	Transaction    *model.Transaction
	VirtualAccount *pricing.VirtualAccount
}

type TransactionStats struct {
	TotalTransactions int64 `json:"totalTransactions"`
	PendingCount      int64 `json:"pendingCount"`
	CompletedCount    int64 `json:"completedCount"`
	TotalRevenue      int64 `json:"totalRevenue"`
}

// processTargets are the statuses a cashier may request through processOrder.
var processTargets = []model.OrderStatus{
	model.OrderPaid, model.OrderProcessing, model.OrderCancelled,
}

type TransactionService interface {
	Create(ctx context.Context, customerID string, in CreateOrderInput) (*CreateOrderResult, error)
	ListMine(ctx context.Context, customerID string) ([]model.Transaction, error)
	List(ctx context.Context, status *model.OrderStatus) ([]model.Transaction, error)
	ListPending(ctx context.Context) ([]model.Transaction, error)
	Process(ctx context.Context, orderID string, status model.OrderStatus, cashierID string) (*model.Transaction, error)
	AssignDelivery(ctx context.Context, orderID, driverID, address string) (*model.Delivery, error)
	Stats(ctx context.Context) (*TransactionStats, error)
}

type transactionService struct {
	transactions repository.TransactionRepository
	motors       repository.MotorRepository
	deliveries   repository.DeliveryRepository
	users        repository.UserRepository
	reports      repository.ReportRepository
}

func NewTransactionService(
	transactions repository.TransactionRepository,
	motors repository.MotorRepository,
	deliveries repository.DeliveryRepository,
	users repository.UserRepository,
	reports repository.ReportRepository,
) TransactionService {
	return &transactionService{
		transactions: transactions,
		motors:       motors,
		deliveries:   deliveries,
		users:        users,
		reports:      reports,
	}
}

func (s *transactionService) Create(ctx context.Context, customerID string, in CreateOrderInput) (*CreateOrderResult, error) {
	if in.MotorID == "" {
		return nil, errors.New("motor id is required")
	}
	if in.ShippingAddr == "" || in.ShippingProv == "" || in.ShippingCity == "" || in.ShippingPhone == "" {
		return nil, errors.New("shipping address, province, city and phone are required")
	}
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return nil, errors.New("quantity must be positive")
	}

	motor, err := s.motors.FindByID(ctx, in.MotorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if motor.Stock < qty {
		return nil, ErrInsufficientStock
	}

	method := strings.ToUpper(strings.TrimSpace(in.PaymentMethod))
	if method == "" {
		method = "CASH"
	}
	shipping := pricing.ShippingCost(in.ShippingCity, in.Latitude, in.Longitude)
	total := motor.Price*int64(qty) + shipping

	// Conditional decrement is the real stock check: under concurrent
	// orders the read above may be stale, zero rows affected means someone
	// else got there first.
	rows, err := s.motors.DecrementStock(ctx, motor.ID, qty)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrInsufficientStock
	}

	va := pricing.NewVirtualAccount(method, total, time.Now())

	t := &model.Transaction{
		UserID:         customerID,
		MotorID:        motor.ID,
		Quantity:       qty,
		TotalPrice:     total,
		Status:         model.OrderPending,
		PaymentMethod:  method,
		ShippingCost:   shipping,
		ShippingAddr:   in.ShippingAddr,
		ShippingProv:   in.ShippingProv,
		ShippingCity:   in.ShippingCity,
		ShippingDist:   in.ShippingDist,
		ShippingVill:   in.ShippingVill,
		ShippingPostal: in.ShippingPostal,
		ShippingPhone:  in.ShippingPhone,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
	}
	if va != nil {
		t.VirtualAccount = &va.AccountNumber
	}
	if err := s.transactions.Create(ctx, t); err != nil {
		// Put the units back so a failed insert doesn't leak stock.
		_ = s.motors.IncrementStock(ctx, motor.ID, qty)
		return nil, err
	}
	t.Motor = motor
	return &CreateOrderResult{Transaction: t, VirtualAccount: va}, nil
}

func (s *transactionService) ListMine(ctx context.Context, customerID string) ([]model.Transaction, error) {
	return s.transactions.ListByUser(ctx, customerID)
}

func (s *transactionService) List(ctx context.Context, status *model.OrderStatus) ([]model.Transaction, error) {
	return s.transactions.List(ctx, status)
}

func (s *transactionService) ListPending(ctx context.Context) ([]model.Transaction, error) {
	return s.transactions.ListPending(ctx)
}

func (s *transactionService) Process(ctx context.Context, orderID string, status model.OrderStatus, cashierID string) (*model.Transaction, error) {
	allowed := false
	for _, target := range processTargets {
		if status == target {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, errors.New("status must be PAID, PROCESSING or CANCELLED")
	}

	t, err := s.transactions.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !t.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	// Conditional write: the transition only fires while the row still holds
	// the status we read, so two cashiers racing on the same order cannot
	// both succeed.
	moved, err := s.transactions.UpdateStatusFrom(ctx, t.ID, t.Status, status, &cashierID)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, ErrInvalidTransition
	}

	// CANCELLED is only reachable from PENDING and the transition above fired
	// exactly once, so the restore cannot double-fire.
	if status == model.OrderCancelled {
		if err := s.motors.IncrementStock(ctx, t.MotorID, t.Quantity); err != nil {
			return nil, err
		}
	}

	t.Status = status
	t.CashierID = &cashierID
	return t, nil
}

func (s *transactionService) AssignDelivery(ctx context.Context, orderID, driverID, address string) (*model.Delivery, error) {
	if orderID == "" || driverID == "" || strings.TrimSpace(address) == "" {
		return nil, errors.New("transaction id, driver id and address are required")
	}

	t, err := s.transactions.FindByIDWithDelivery(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if t.Delivery != nil {
		return nil, ErrDeliveryExists
	}
	if !t.Status.CanTransitionTo(model.OrderDelivering) {
		return nil, ErrInvalidTransition
	}

	driver, err := s.users.FindByID(ctx, driverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("driver not found")
		}
		return nil, err
	}
	if driver.Role != model.RoleDriver {
		return nil, errors.New("user is not a driver")
	}

	d := &model.Delivery{
		TransactionID: t.ID,
		DriverID:      driver.ID,
		Address:       strings.TrimSpace(address),
		Status:        model.DeliveryPending,
	}
	if err := s.deliveries.Create(ctx, d); err != nil {
		return nil, err
	}
	if err := s.transactions.UpdateStatus(ctx, t.ID, model.OrderDelivering, nil); err != nil {
		return nil, err
	}
	d.Driver = driver
	return d, nil
}

func (s *transactionService) Stats(ctx context.Context) (*TransactionStats, error) {
	total, err := s.reports.CountTransactions(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.reports.CountTransactionsByStatus(ctx, model.OrderPending)
	if err != nil {
		return nil, err
	}
	completed, err := s.reports.CountTransactionsByStatus(ctx, model.OrderCompleted)
	if err != nil {
		return nil, err
	}
	revenue, _, err := s.reports.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	return &TransactionStats{
		TotalTransactions: total,
		PendingCount:      pending,
		CompletedCount:    completed,
		TotalRevenue:      revenue,
	}, nil
}
