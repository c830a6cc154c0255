package service

import (
	"context"
	"errors"
	"testing"

	"github.com/wahyusaputra/motorshop-backend/internal/model"
	"github.com/wahyusaputra/motorshop-backend/internal/pricing"
)

type testEnv struct {
	users        *fakeUserRepo
	motors       *fakeMotorRepo
	transactions *fakeTransactionRepo
	deliveries   *fakeDeliveryRepo
	reports      *fakeReportRepo
	svc          TransactionService
}

func newTestEnv() *testEnv {
	users := newFakeUserRepo()
	motors := newFakeMotorRepo()
	deliveries := newFakeDeliveryRepo()
	transactions := newFakeTransactionRepo(deliveries)
	reports := newFakeReportRepo(transactions)
	return &testEnv{
		users:        users,
		motors:       motors,
		transactions: transactions,
		deliveries:   deliveries,
		reports:      reports,
		svc:          NewTransactionService(transactions, motors, deliveries, users, reports),
	}
}

func (e *testEnv) addMotor(t *testing.T, stock int, price int64) *model.Motor {
	t.Helper()
	m := &model.Motor{Name: "Vario 160", Brand: "Honda", Model: "Vario", Year: 2024, Price: price, Stock: stock}
	if err := e.motors.Create(context.Background(), m); err != nil {
		t.Fatalf("create motor: %v", err)
	}
	return m
}

func (e *testEnv) addUser(t *testing.T, role model.Role) *model.User {
	t.Helper()
	u := &model.User{Email: string(role) + "@example.com", Name: string(role), Role: role}
	if err := e.users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func validOrderInput(motorID string) CreateOrderInput {
	return CreateOrderInput{
		MotorID:       motorID,
		Quantity:      2,
		PaymentMethod: "CASH",
		ShippingAddr:  "Jl. Merdeka 1",
		ShippingProv:  "Jawa Barat",
		ShippingCity:  "Bandung",
		ShippingPhone: "08123456789",
	}
}

func TestCreateOrder(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	customer := env.addUser(t, model.RoleCustomer)
	motor := env.addMotor(t, 5, 1_000_000)

	res, err := env.svc.Create(ctx, customer.ID, validOrderInput(motor.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.Transaction.Status != model.OrderPending {
		t.Errorf("status = %s, want PENDING", res.Transaction.Status)
	}
	if want := int64(2_000_000) + pricing.FlatShippingFee; res.Transaction.TotalPrice != want {
		t.Errorf("total = %d, want %d", res.Transaction.TotalPrice, want)
	}
	got, _ := env.motors.FindByID(ctx, motor.ID)
	if got.Stock != 3 {
		t.Errorf("stock = %d, want 3", got.Stock)
	}
	if res.VirtualAccount != nil {
		t.Error("cash order should not carry a virtual account")
	}
}

func TestCreateOrderFreeShippingInKuningan(t *testing.T) {
	env := newTestEnv()
	customer := env.addUser(t, model.RoleCustomer)
	motor := env.addMotor(t, 5, 1_000_000)

	in := validOrderInput(motor.ID)
	in.ShippingCity = "Kabupaten Kuningan"
	res, err := env.svc.Create(context.Background(), customer.ID, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.Transaction.ShippingCost != 0 {
		t.Errorf("shipping = %d, want 0", res.Transaction.ShippingCost)
	}
	if res.Transaction.TotalPrice != 2_000_000 {
		t.Errorf("total = %d, want 2000000", res.Transaction.TotalPrice)
	}
}

func TestCreateOrderBankTransferVirtualAccount(t *testing.T) {
	env := newTestEnv()
	customer := env.addUser(t, model.RoleCustomer)
	motor := env.addMotor(t, 5, 1_000_000)

	in := validOrderInput(motor.ID)
	in.PaymentMethod = "TRANSFER_BCA"
	res, err := env.svc.Create(context.Background(), customer.ID, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.VirtualAccount == nil {
		t.Fatal("expected virtual account payload")
	}
	if res.VirtualAccount.Amount != res.Transaction.TotalPrice {
		t.Errorf("va amount = %d, want %d", res.VirtualAccount.Amount, res.Transaction.TotalPrice)
	}
	if res.Transaction.VirtualAccount == nil || *res.Transaction.VirtualAccount != res.VirtualAccount.AccountNumber {
		t.Error("order should record the virtual account number")
	}
}

func TestCreateOrderValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	customer := env.addUser(t, model.RoleCustomer)
	motor := env.addMotor(t, 3, 1_000_000)

	tests := []struct {
		name   string
		mutate func(*CreateOrderInput)
		want   error
	}{
		{"unknown motor", func(in *CreateOrderInput) { in.MotorID = "nope" }, ErrNotFound},
		{"quantity over stock", func(in *CreateOrderInput) { in.Quantity = 4 }, ErrInsufficientStock},
		{"missing address", func(in *CreateOrderInput) { in.ShippingAddr = "" }, nil},
		{"missing province", func(in *CreateOrderInput) { in.ShippingProv = "" }, nil},
		{"missing city", func(in *CreateOrderInput) { in.ShippingCity = "" }, nil},
		{"missing phone", func(in *CreateOrderInput) { in.ShippingPhone = "" }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validOrderInput(motor.ID)
			tt.mutate(&in)
			_, err := env.svc.Create(ctx, customer.ID, in)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			// No failed attempt may leak stock.
			got, _ := env.motors.FindByID(ctx, motor.ID)
			if got.Stock != 3 {
				t.Fatalf("stock changed to %d on failed create", got.Stock)
			}
		})
	}
}

func TestCreateOrderQuantityDefaultsToOne(t *testing.T) {
	env := newTestEnv()
	customer := env.addUser(t, model.RoleCustomer)
	motor := env.addMotor(t, 5, 1_000_000)

	in := validOrderInput(motor.ID)
	in.Quantity = 0
	res, err := env.svc.Create(context.Background(), customer.ID, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.Transaction.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", res.Transaction.Quantity)
	}
	got, _ := env.motors.FindByID(context.Background(), motor.ID)
	if got.Stock != 4 {
		t.Errorf("stock = %d, want 4", got.Stock)
	}
}

func TestProcessOrder(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	customer := env.addUser(t, model.RoleCustomer)
	cashier := env.addUser(t, model.RoleCashier)
	motor := env.addMotor(t, 5, 1_000_000)

	res, err := env.svc.Create(ctx, customer.ID, validOrderInput(motor.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	orderID := res.Transaction.ID

	updated, err := env.svc.Process(ctx, orderID, model.OrderPaid, cashier.ID)
	if err != nil {
		t.Fatalf("Process to PAID: %v", err)
	}
	if updated.CashierID == nil || *updated.CashierID != cashier.ID {
		t.Error("cashier not recorded")
	}

	if _, err := env.svc.Process(ctx, orderID, model.OrderProcessing, cashier.ID); err != nil {
		t.Fatalf("Process to PROCESSING: %v", err)
	}

	// PAID orders cannot be cancelled anymore, nor jump backwards.
	if _, err := env.svc.Process(ctx, orderID, model.OrderCancelled, cashier.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("cancel from PROCESSING: err = %v, want ErrInvalidTransition", err)
	}
	if _, err := env.svc.Process(ctx, orderID, model.OrderPaid, cashier.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("back to PAID: err = %v, want ErrInvalidTransition", err)
	}

	if _, err := env.svc.Process(ctx, orderID, model.OrderDelivered, cashier.ID); err == nil {
		t.Fatal("DELIVERED is not a cashier target, expected error")
	}
	if _, err := env.svc.Process(ctx, "missing", model.OrderPaid, cashier.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown order: err = %v, want ErrNotFound", err)
	}
}

func TestCancelRestoresStockOnce(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	customer := env.addUser(t, model.RoleCustomer)
	cashier := env.addUser(t, model.RoleCashier)
	motor := env.addMotor(t, 5, 1_000_000)

	res, err := env.svc.Create(ctx, customer.ID, validOrderInput(motor.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := env.svc.Process(ctx, res.Transaction.ID, model.OrderCancelled, cashier.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	got, _ := env.motors.FindByID(ctx, motor.ID)
	if got.Stock != 5 {
		t.Fatalf("stock = %d after cancel, want 5", got.Stock)
	}

	// Re-cancelling a CANCELLED order is rejected and must not re-fire the
	// stock restore.
	if _, err := env.svc.Process(ctx, res.Transaction.ID, model.OrderCancelled, cashier.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second cancel: err = %v, want ErrInvalidTransition", err)
	}
	got, _ = env.motors.FindByID(ctx, motor.ID)
	if got.Stock != 5 {
		t.Fatalf("stock = %d after second cancel, want 5", got.Stock)
	}
}

// staleReadTransactionRepo serves reads with an outdated status, standing in
// for a second cashier who changed the row between our read and write.
type staleReadTransactionRepo struct {
	*fakeTransactionRepo
	stale model.OrderStatus
}

func (r *staleReadTransactionRepo) FindByID(ctx context.Context, id string) (*model.Transaction, error) {
	t, err := r.fakeTransactionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Status = r.stale
	return t, nil
}

func TestProcessOrderRejectsConcurrentStatusChange(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	customer := env.addUser(t, model.RoleCustomer)
	cashier := env.addUser(t, model.RoleCashier)
	motor := env.addMotor(t, 5, 1_000_000)

	res, err := env.svc.Create(ctx, customer.ID, validOrderInput(motor.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	// A second cashier confirmed payment after our read.
	if _, err := env.svc.Process(ctx, res.Transaction.ID, model.OrderPaid, cashier.ID); err != nil {
		t.Fatalf("confirm payment: %v", err)
	}

	stale := &staleReadTransactionRepo{fakeTransactionRepo: env.transactions, stale: model.OrderPending}
	svc := NewTransactionService(stale, env.motors, env.deliveries, env.users, env.reports)

	if _, err := svc.Process(ctx, res.Transaction.ID, model.OrderCancelled, cashier.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("stale cancel: err = %v, want ErrInvalidTransition", err)
	}

	stored, _ := env.transactions.FindByID(ctx, res.Transaction.ID)
	if stored.Status != model.OrderPaid {
		t.Errorf("status = %s, want %s", stored.Status, model.OrderPaid)
	}
	goods, _ := env.motors.FindByID(ctx, motor.ID)
	if goods.Stock != 3 {
		t.Errorf("stock = %d, want 3: refused cancel must not restore stock", goods.Stock)
	}
}

func TestAssignDelivery(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	customer := env.addUser(t, model.RoleCustomer)
	cashier := env.addUser(t, model.RoleCashier)
	driver := env.addUser(t, model.RoleDriver)
	motor := env.addMotor(t, 5, 1_000_000)

	res, err := env.svc.Create(ctx, customer.ID, validOrderInput(motor.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	orderID := res.Transaction.ID

	// An order still waiting for payment cannot be handed to a driver.
	if _, err := env.svc.AssignDelivery(ctx, orderID, driver.ID, "Jl. Merdeka 1"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("assign on PENDING: err = %v, want ErrInvalidTransition", err)
	}

	if _, err := env.svc.Process(ctx, orderID, model.OrderPaid, cashier.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := env.svc.Process(ctx, orderID, model.OrderProcessing, cashier.ID); err != nil {
		t.Fatal(err)
	}

	d, err := env.svc.AssignDelivery(ctx, orderID, driver.ID, "Jl. Merdeka 1")
	if err != nil {
		t.Fatalf("AssignDelivery: %v", err)
	}
	if d.Status != model.DeliveryPending {
		t.Errorf("delivery status = %s, want PENDING", d.Status)
	}
	order, _ := env.transactions.FindByID(ctx, orderID)
	if order.Status != model.OrderDelivering {
		t.Errorf("order status = %s, want DELIVERING", order.Status)
	}

	// One delivery per order.
	if _, err := env.svc.AssignDelivery(ctx, orderID, driver.ID, "Jl. Merdeka 1"); !errors.Is(err, ErrDeliveryExists) {
		t.Fatalf("second assign: err = %v, want ErrDeliveryExists", err)
	}

	// A customer account cannot be assigned as driver.
	res2, err := env.svc.Create(ctx, customer.ID, validOrderInput(motor.ID))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := env.svc.Process(ctx, res2.Transaction.ID, model.OrderPaid, cashier.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := env.svc.Process(ctx, res2.Transaction.ID, model.OrderProcessing, cashier.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := env.svc.AssignDelivery(ctx, res2.Transaction.ID, customer.ID, "Jl. Merdeka 1"); err == nil {
		t.Fatal("expected error assigning non-driver")
	}
}

func TestStats(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	customer := env.addUser(t, model.RoleCustomer)
	cashier := env.addUser(t, model.RoleCashier)
	motor := env.addMotor(t, 10, 1_000_000)

	// Two orders: one paid, one left pending. Only the paid one counts as
	// revenue.
	paid, err := env.svc.Create(ctx, customer.ID, validOrderInput(motor.ID))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := env.svc.Process(ctx, paid.Transaction.ID, model.OrderPaid, cashier.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := env.svc.Create(ctx, customer.ID, validOrderInput(motor.ID)); err != nil {
		t.Fatal(err)
	}

	stats, err := env.svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalTransactions != 2 {
		t.Errorf("total = %d, want 2", stats.TotalTransactions)
	}
	if stats.PendingCount != 1 {
		t.Errorf("pending = %d, want 1", stats.PendingCount)
	}
	if stats.TotalRevenue != paid.Transaction.TotalPrice {
		t.Errorf("revenue = %d, want %d", stats.TotalRevenue, paid.Transaction.TotalPrice)
	}
}
