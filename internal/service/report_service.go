package service

import (
	"context"
	"math"
	"time"

	"github.com/wahyusaputra/motorshop-backend/internal/model"
	"github.com/wahyusaputra/motorshop-backend/internal/repository"
)

// profitMargin is a business assumption, not derived from real cost data:
// reports estimate profit as 15% of revenue and cost as the remainder.
const profitMargin = 0.15

type DashboardStats struct {
	TotalCustomers      int64 `json:"totalCustomers"`
	TotalCashiers       int64 `json:"totalCashiers"`
	TotalDrivers        int64 `json:"totalDrivers"`
	TotalMotors         int64 `json:"totalMotors"`
	TotalTransactions   int64 `json:"totalTransactions"`
	PendingTransactions int64 `json:"pendingTransactions"`
	ActiveDeliveries    int64 `json:"activeDeliveries"`
	TotalRevenue        int64 `json:"totalRevenue"`
}

type MonthlySales struct {
	Month        string `json:"month"`
	Revenue      int64  `json:"revenue"`
	Transactions int64  `json:"transactions"`
}

type SalesByStatus struct {
	Status  model.OrderStatus `json:"status"`
	Count   int64             `json:"count"`
	Revenue int64             `json:"revenue"`
}

type TopSellingMotor struct {
	Motor        string `json:"motor"`
	Brand        string `json:"brand"`
	UnitPrice    int64  `json:"unitPrice"`
	SoldCount    int64  `json:"soldCount"`
	TotalRevenue int64  `json:"totalRevenue"`
}

type ReportSummary struct {
	TotalRevenue          int64   `json:"totalRevenue"`
	TotalTransactions     int64   `json:"totalTransactions"`
	EstimatedProfit       float64 `json:"estimatedProfit"`
	EstimatedCost         float64 `json:"estimatedCost"`
	ProfitMargin          float64 `json:"profitMargin"`
	ThisMonthRevenue      int64   `json:"thisMonthRevenue"`
	ThisMonthTransactions int64   `json:"thisMonthTransactions"`
	LastMonthRevenue      int64   `json:"lastMonthRevenue"`
	GrowthPercentage      float64 `json:"growthPercentage"`
}

type FinancialReport struct {
	Summary          ReportSummary     `json:"summary"`
	MonthlySales     []MonthlySales    `json:"monthlySales"`
	SalesByStatus    []SalesByStatus   `json:"salesByStatus"`
	TopSellingMotors []TopSellingMotor `json:"topSellingMotors"`
}

type ReportService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	Financial(ctx context.Context) (*FinancialReport, error)
}

type reportService struct {
	reports    repository.ReportRepository
	users      repository.UserRepository
	motors     repository.MotorRepository
	deliveries repository.DeliveryRepository
}

func NewReportService(
	reports repository.ReportRepository,
	users repository.UserRepository,
	motors repository.MotorRepository,
	deliveries repository.DeliveryRepository,
) ReportService {
	return &reportService{reports: reports, users: users, motors: motors, deliveries: deliveries}
}

func (s *reportService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error
	if stats.TotalCustomers, err = s.users.CountByRole(ctx, model.RoleCustomer); err != nil {
		return nil, err
	}
	if stats.TotalCashiers, err = s.users.CountByRole(ctx, model.RoleCashier); err != nil {
		return nil, err
	}
	if stats.TotalDrivers, err = s.users.CountByRole(ctx, model.RoleDriver); err != nil {
		return nil, err
	}
	if stats.TotalMotors, err = s.motors.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalTransactions, err = s.reports.CountTransactions(ctx); err != nil {
		return nil, err
	}
	if stats.PendingTransactions, err = s.reports.CountTransactionsByStatus(ctx, model.OrderPending); err != nil {
		return nil, err
	}
	if stats.ActiveDeliveries, err = s.deliveries.CountActive(ctx); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, _, err = s.reports.TotalRevenue(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *reportService) Financial(ctx context.Context) (*FinancialReport, error) {
	return s.financialAt(ctx, time.Now())
}

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

func (s *reportService) financialAt(ctx context.Context, now time.Time) (*FinancialReport, error) {
	year := now.Year()
	loc := now.Location()

	monthly := make([]MonthlySales, 0, 12)
	for m := time.January; m <= time.December; m++ {
		from, to := monthWindow(year, m, loc)
		revenue, count, err := s.reports.RevenueBetween(ctx, from, to)
		if err != nil {
			return nil, err
		}
		monthly = append(monthly, MonthlySales{
			Month:        monthNames[m-1],
			Revenue:      revenue,
			Transactions: count,
		})
	}

	byStatus, err := s.reports.GroupByStatus(ctx)
	if err != nil {
		return nil, err
	}
	salesByStatus := make([]SalesByStatus, 0, len(byStatus))
	for _, row := range byStatus {
		salesByStatus = append(salesByStatus, SalesByStatus{
			Status:  row.Status,
			Count:   row.Count,
			Revenue: row.Revenue,
		})
	}

	topRows, err := s.reports.TopMotors(ctx, 5)
	if err != nil {
		return nil, err
	}
	top := make([]TopSellingMotor, 0, len(topRows))
	for _, row := range topRows {
		entry := TopSellingMotor{
			Motor:        "Unknown",
			Brand:        "Unknown",
			SoldCount:    row.SoldCount,
			TotalRevenue: row.Revenue,
		}
		if motor, err := s.motors.FindByID(ctx, row.MotorID); err == nil {
			entry.Motor = motor.Name
			entry.Brand = motor.Brand
			entry.UnitPrice = motor.Price
		}
		top = append(top, entry)
	}

	totalRevenue, totalCount, err := s.reports.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}

	thisFrom, thisTo := monthWindow(year, now.Month(), loc)
	thisRevenue, thisCount, err := s.reports.RevenueBetween(ctx, thisFrom, thisTo)
	if err != nil {
		return nil, err
	}
	lastFrom, lastTo := previousMonthWindow(year, now.Month(), loc)
	lastRevenue, _, err := s.reports.RevenueBetween(ctx, lastFrom, lastTo)
	if err != nil {
		return nil, err
	}

	growth := 0.0
	if lastRevenue > 0 {
		growth = float64(thisRevenue-lastRevenue) / float64(lastRevenue) * 100
		growth = math.Round(growth*100) / 100
	}

	return &FinancialReport{
		Summary: ReportSummary{
			TotalRevenue:          totalRevenue,
			TotalTransactions:     totalCount,
			EstimatedProfit:       float64(totalRevenue) * profitMargin,
			EstimatedCost:         float64(totalRevenue) * (1 - profitMargin),
			ProfitMargin:          profitMargin * 100,
			ThisMonthRevenue:      thisRevenue,
			ThisMonthTransactions: thisCount,
			LastMonthRevenue:      lastRevenue,
			GrowthPercentage:      growth,
		},
		MonthlySales:     monthly,
		SalesByStatus:    salesByStatus,
		TopSellingMotors: top,
	}, nil
}

func monthWindow(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 1, 0).Add(-time.Second)
	return from, to
}

func previousMonthWindow(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, loc).AddDate(0, -1, 0)
	to := from.AddDate(0, 1, 0).Add(-time.Second)
	return from, to
}
