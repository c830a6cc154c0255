package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/wahyusaputra/motorshop-backend/internal/model"
	"github.com/wahyusaputra/motorshop-backend/internal/repository"
	"gorm.io/gorm"
)

// In-memory repository fakes. They return copies so a test can tell whether
// a service actually persisted a change or only mutated its local struct.

type fakeUserRepo struct {
	users map[string]model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]model.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now()
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByGoogleID(_ context.Context, googleID string) (*model.User, error) {
	for _, u := range f.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			u := u
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) ListByRoles(_ context.Context, roles ...model.Role) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		for _, r := range roles {
			if u.Role == r {
				out = append(out, u)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserRepo) ListCustomers(ctx context.Context) ([]repository.CustomerRow, error) {
	users, _ := f.ListByRoles(ctx, model.RoleCustomer)
	rows := make([]repository.CustomerRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, repository.CustomerRow{User: u})
	}
	return rows, nil
}

func (f *fakeUserRepo) CountByRole(_ context.Context, role model.Role) (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeMotorRepo struct {
	motors map[string]model.Motor
}

func newFakeMotorRepo() *fakeMotorRepo {
	return &fakeMotorRepo{motors: map[string]model.Motor{}}
}

func (f *fakeMotorRepo) Create(_ context.Context, m *model.Motor) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	f.motors[m.ID] = *m
	return nil
}

func (f *fakeMotorRepo) FindByID(_ context.Context, id string) (*model.Motor, error) {
	m, ok := f.motors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

func (f *fakeMotorRepo) Update(_ context.Context, m *model.Motor) error {
	if _, ok := f.motors[m.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.motors[m.ID] = *m
	return nil
}

func (f *fakeMotorRepo) Delete(_ context.Context, id string) error {
	delete(f.motors, id)
	return nil
}

func (f *fakeMotorRepo) List(_ context.Context, _ repository.MotorFilter) ([]model.Motor, error) {
	var out []model.Motor
	for _, m := range f.motors {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMotorRepo) Brands(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, m := range f.motors {
		if !seen[m.Brand] {
			seen[m.Brand] = true
			out = append(out, m.Brand)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeMotorRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.motors)), nil
}

func (f *fakeMotorRepo) DecrementStock(_ context.Context, id string, qty int) (int64, error) {
	m, ok := f.motors[id]
	if !ok || m.Stock < qty {
		return 0, nil
	}
	m.Stock -= qty
	f.motors[id] = m
	return 1, nil
}

func (f *fakeMotorRepo) IncrementStock(_ context.Context, id string, qty int) error {
	m, ok := f.motors[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.Stock += qty
	f.motors[id] = m
	return nil
}

type fakeTransactionRepo struct {
	transactions map[string]model.Transaction
	deliveries   *fakeDeliveryRepo
}

func newFakeTransactionRepo(deliveries *fakeDeliveryRepo) *fakeTransactionRepo {
	return &fakeTransactionRepo{transactions: map[string]model.Transaction{}, deliveries: deliveries}
}

func (f *fakeTransactionRepo) Create(_ context.Context, t *model.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	f.transactions[t.ID] = *t
	return nil
}

func (f *fakeTransactionRepo) FindByID(_ context.Context, id string) (*model.Transaction, error) {
	t, ok := f.transactions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

func (f *fakeTransactionRepo) FindByIDWithDelivery(ctx context.Context, id string) (*model.Transaction, error) {
	t, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.deliveries != nil {
		if d, err := f.deliveries.FindByTransaction(ctx, id); err == nil {
			t.Delivery = d
		}
	}
	return t, nil
}

func (f *fakeTransactionRepo) ListByUser(_ context.Context, userID string) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, t := range f.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) List(_ context.Context, status *model.OrderStatus) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, t := range f.transactions {
		if status == nil || t.Status == *status {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) ListPending(ctx context.Context) ([]model.Transaction, error) {
	pending := model.OrderPending
	return f.List(ctx, &pending)
}

func (f *fakeTransactionRepo) UpdateStatus(_ context.Context, id string, status model.OrderStatus, cashierID *string) error {
	t, ok := f.transactions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.Status = status
	if cashierID != nil {
		t.CashierID = cashierID
	}
	f.transactions[id] = t
	return nil
}

func (f *fakeTransactionRepo) UpdateStatusFrom(_ context.Context, id string, from, to model.OrderStatus, cashierID *string) (bool, error) {
	t, ok := f.transactions[id]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if t.Status != from {
		return false, nil
	}
	t.Status = to
	if cashierID != nil {
		t.CashierID = cashierID
	}
	f.transactions[id] = t
	return true, nil
}

type fakeDeliveryRepo struct {
	deliveries map[string]model.Delivery
}

func newFakeDeliveryRepo() *fakeDeliveryRepo {
	return &fakeDeliveryRepo{deliveries: map[string]model.Delivery{}}
}

func (f *fakeDeliveryRepo) Create(_ context.Context, d *model.Delivery) error {
	for _, existing := range f.deliveries {
		if existing.TransactionID == d.TransactionID {
			return gorm.ErrDuplicatedKey
		}
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	f.deliveries[d.ID] = *d
	return nil
}

func (f *fakeDeliveryRepo) FindByID(_ context.Context, id string) (*model.Delivery, error) {
	d, ok := f.deliveries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &d, nil
}

func (f *fakeDeliveryRepo) FindByTransaction(_ context.Context, transactionID string) (*model.Delivery, error) {
	for _, d := range f.deliveries {
		if d.TransactionID == transactionID {
			d := d
			return &d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDeliveryRepo) Update(_ context.Context, d *model.Delivery) error {
	if _, ok := f.deliveries[d.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.deliveries[d.ID] = *d
	return nil
}

func (f *fakeDeliveryRepo) ListByDriver(_ context.Context, driverID string, status *model.DeliveryStatus) ([]model.Delivery, error) {
	var out []model.Delivery
	for _, d := range f.deliveries {
		if d.DriverID == driverID && (status == nil || d.Status == *status) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDeliveryRepo) List(_ context.Context, status *model.DeliveryStatus) ([]model.Delivery, error) {
	var out []model.Delivery
	for _, d := range f.deliveries {
		if status == nil || d.Status == *status {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDeliveryRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, d := range f.deliveries {
		for _, s := range model.ActiveDeliveryStatuses {
			if d.Status == s {
				n++
				break
			}
		}
	}
	return n, nil
}

// fakeReportRepo aggregates over the fake transaction store the way the SQL
// queries do, restricted to revenue-eligible statuses.
type fakeReportRepo struct {
	transactions *fakeTransactionRepo
}

func newFakeReportRepo(transactions *fakeTransactionRepo) *fakeReportRepo {
	return &fakeReportRepo{transactions: transactions}
}

func (f *fakeReportRepo) CountTransactions(_ context.Context) (int64, error) {
	return int64(len(f.transactions.transactions)), nil
}

func (f *fakeReportRepo) CountTransactionsByStatus(_ context.Context, status model.OrderStatus) (int64, error) {
	var n int64
	for _, t := range f.transactions.transactions {
		if t.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeReportRepo) TotalRevenue(_ context.Context) (int64, int64, error) {
	var sum, count int64
	for _, t := range f.transactions.transactions {
		if t.Status.RevenueEligible() {
			sum += t.TotalPrice
			count++
		}
	}
	return sum, count, nil
}

func (f *fakeReportRepo) RevenueBetween(_ context.Context, from, to time.Time) (int64, int64, error) {
	var sum, count int64
	for _, t := range f.transactions.transactions {
		if !t.Status.RevenueEligible() {
			continue
		}
		if t.CreatedAt.Before(from) || t.CreatedAt.After(to) {
			continue
		}
		sum += t.TotalPrice
		count++
	}
	return sum, count, nil
}

func (f *fakeReportRepo) GroupByStatus(_ context.Context) ([]repository.StatusBreakdown, error) {
	grouped := map[model.OrderStatus]*repository.StatusBreakdown{}
	for _, t := range f.transactions.transactions {
		row, ok := grouped[t.Status]
		if !ok {
			row = &repository.StatusBreakdown{Status: t.Status}
			grouped[t.Status] = row
		}
		row.Count++
		row.Revenue += t.TotalPrice
	}
	var out []repository.StatusBreakdown
	for _, row := range grouped {
		out = append(out, *row)
	}
	return out, nil
}

func (f *fakeReportRepo) TopMotors(_ context.Context, limit int) ([]repository.TopMotorRow, error) {
	grouped := map[string]*repository.TopMotorRow{}
	for _, t := range f.transactions.transactions {
		if !t.Status.RevenueEligible() {
			continue
		}
		row, ok := grouped[t.MotorID]
		if !ok {
			row = &repository.TopMotorRow{MotorID: t.MotorID}
			grouped[t.MotorID] = row
		}
		row.SoldCount++
		row.Revenue += t.TotalPrice
	}
	var out []repository.TopMotorRow
	for _, row := range grouped {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SoldCount > out[j].SoldCount })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
