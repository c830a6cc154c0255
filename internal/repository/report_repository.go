package repository

import (
	"context"
	"time"

	"github.com/wahyusaputra/motorshop-backend/internal/model"
	"gorm.io/gorm"
)

// StatusBreakdown is one row of the per-status sales grouping.
type StatusBreakdown struct {
	Status  model.OrderStatus `gorm:"column:status"`
	Count   int64             `gorm:"column:count"`
	Revenue int64             `gorm:"column:revenue"`
}

// TopMotorRow is one row of the best-seller grouping.
type TopMotorRow struct {
	MotorID   string `gorm:"column:motor_id"`
	SoldCount int64  `gorm:"column:sold_count"`
	Revenue   int64  `gorm:"column:revenue"`
}

// ReportRepository serves the read-side aggregations. Revenue queries are
// always restricted to the revenue-eligible statuses.
type ReportRepository interface {
	CountTransactions(ctx context.Context) (int64, error)
	CountTransactionsByStatus(ctx context.Context, status model.OrderStatus) (int64, error)
	TotalRevenue(ctx context.Context) (int64, int64, error)
	RevenueBetween(ctx context.Context, from, to time.Time) (int64, int64, error)
	GroupByStatus(ctx context.Context) ([]StatusBreakdown, error)
	TopMotors(ctx context.Context, limit int) ([]TopMotorRow, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) CountTransactions(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Transaction{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *reportRepository) CountTransactionsByStatus(ctx context.Context, status model.OrderStatus) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("status = ?", status).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *reportRepository) TotalRevenue(ctx context.Context) (int64, int64, error) {
	return r.sumRevenue(r.db.WithContext(ctx).Model(&model.Transaction{}))
}

func (r *reportRepository) RevenueBetween(ctx context.Context, from, to time.Time) (int64, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("created_at >= ? AND created_at <= ?", from, to)
	return r.sumRevenue(q)
}

func (r *reportRepository) sumRevenue(q *gorm.DB) (int64, int64, error) {
	var row struct {
		Revenue int64 `gorm:"column:revenue"`
		Count   int64 `gorm:"column:count"`
	}
	if err := q.
		Where("status IN ?", model.RevenueStatuses).
		Select("COALESCE(SUM(total_price), 0) AS revenue, COUNT(*) AS count").
		Scan(&row).Error; err != nil {
		return 0, 0, err
	}
	return row.Revenue, row.Count, nil
}

func (r *reportRepository) GroupByStatus(ctx context.Context) ([]StatusBreakdown, error) {
	var rows []StatusBreakdown
	if err := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(total_price), 0) AS revenue").
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportRepository) TopMotors(ctx context.Context, limit int) ([]TopMotorRow, error) {
	var rows []TopMotorRow
	if err := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Select("motor_id, COUNT(*) AS sold_count, COALESCE(SUM(total_price), 0) AS revenue").
		Where("status IN ?", model.RevenueStatuses).
		Group("motor_id").
		Order("sold_count DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
