package services

import (
	"context"

	"boutique/internal/models"
	"boutique/internal/repositories"
)

// OverviewReport is the admin dashboard summary.
type OverviewReport struct {
	TotalOrders       int                        `json:"totalOrders"`
	TotalRevenueCents int64                      `json:"totalRevenueCents"`
	OrdersByStatus    map[models.OrderStatus]int `json:"ordersByStatus"`
	TotalProducts     int                        `json:"totalProducts"`
	TotalUsers        int                        `json:"totalUsers"`
	RecentOrders      []models.Order             `json:"recentOrders"`
}

// ReportService aggregates store-wide numbers for the admin panel.
type ReportService struct {
	store repositories.Store
}

// NewReportService creates a new ReportService.
func NewReportService(store repositories.Store) *ReportService {
	return &ReportService{store: store}
}

// Overview builds the dashboard summary. Cancelled orders are excluded from
// revenue but still counted by status.
func (s *ReportService) Overview(ctx context.Context) (*OverviewReport, error) {
	orders, err := s.store.Orders().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.store.Products().GetAll(ctx, repositories.ProductFilter{})
	if err != nil {
		return nil, err
	}
	users, err := s.store.Users().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &OverviewReport{
		TotalOrders:    len(orders),
		OrdersByStatus: make(map[models.OrderStatus]int),
		TotalProducts:  len(products),
		TotalUsers:     len(users),
	}
	for _, order := range orders {
		report.OrdersByStatus[order.Status]++
		if order.Status != models.OrderCancelled {
			report.TotalRevenueCents += order.TotalCents
		}
	}
	if len(orders) > 5 {
		report.RecentOrders = orders[:5]
	} else {
		report.RecentOrders = orders
	}
	return report, nil
}
