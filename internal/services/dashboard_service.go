package services

import (
	"context"
	"log"
	"time"

	"jewelmart/internal/caching"
	"jewelmart/internal/common"
	"jewelmart/internal/models"
	"jewelmart/internal/repositories"
)

const dashboardCacheTTL = 2 * time.Minute

// DashboardStats is the headline-numbers panel.
type DashboardStats struct {
	TotalCustomers   int     `json:"totalCustomers"`
	TotalInvoices    int     `json:"totalInvoices"`
	PendingDues      float64 `json:"pendingDues"`
	ActiveLoans      int     `json:"activeLoans"`
	LoansOutstanding float64 `json:"loansOutstanding"`
	BhishiAccounts   int     `json:"bhishiAccounts"`
}

// DashboardServiceInterface defines the interface for dashboard aggregates
type DashboardServiceInterface interface {
	GetStats(ctx context.Context) (*DashboardStats, error)
	GetMonthlySales(ctx context.Context) ([]repositories.MonthlySales, error)
	GetStockLevels(ctx context.Context) ([]repositories.StockLevel, error)
}

type dashboardService struct {
	customerRepo repositories.CustomerRepository
	invoiceRepo  repositories.InvoiceRepository
	loanRepo     repositories.GoldLoanRepository
	bhishiRepo   repositories.BhishiRepository
	itemRepo     repositories.ItemRepository
	cache        caching.CacheService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(customerRepo repositories.CustomerRepository, invoiceRepo repositories.InvoiceRepository, loanRepo repositories.GoldLoanRepository, bhishiRepo repositories.BhishiRepository, itemRepo repositories.ItemRepository, cache caching.CacheService) DashboardServiceInterface {
	return &dashboardService{
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		loanRepo:     loanRepo,
		bhishiRepo:   bhishiRepo,
		itemRepo:     itemRepo,
		cache:        cache,
	}
}

// GetStats aggregates the headline numbers. Results are cached briefly;
// the dashboard polls and none of these figures need to be live.
func (s *dashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetDashboard(ctx, "stats"); err == nil && cached != nil {
			return statsFromCache(cached), nil
		}
	}

	stats := &DashboardStats{}
	var err error

	if stats.TotalCustomers, err = s.customerRepo.Count(ctx); err != nil {
		return nil, common.SecureErrorMessage("count customers", err)
	}
	if stats.TotalInvoices, err = s.invoiceRepo.Count(ctx, nil); err != nil {
		return nil, common.SecureErrorMessage("count invoices", err)
	}
	if stats.PendingDues, err = s.invoiceRepo.SumPendingDues(ctx); err != nil {
		return nil, common.SecureErrorMessage("sum pending dues", err)
	}
	if stats.LoansOutstanding, err = s.loanRepo.SumActiveOutstanding(ctx); err != nil {
		return nil, common.SecureErrorMessage("sum loan outstanding", err)
	}

	active := models.LoanStatusActive
	loans, err := s.loanRepo.List(ctx, &repositories.LoanFilter{Status: &active})
	if err != nil {
		return nil, common.SecureErrorMessage("list active loans", err)
	}
	stats.ActiveLoans = len(loans)

	if stats.BhishiAccounts, err = s.bhishiRepo.Count(ctx, nil); err != nil {
		return nil, common.SecureErrorMessage("count bhishi accounts", err)
	}

	if s.cache != nil {
		if err := s.cache.SetDashboard(ctx, "stats", statsToCache(stats), dashboardCacheTTL); err != nil {
			log.Printf("Failed to cache dashboard stats: %v", err)
		}
	}
	return stats, nil
}

func (s *dashboardService) GetMonthlySales(ctx context.Context) ([]repositories.MonthlySales, error) {
	sales, err := s.invoiceRepo.SalesByMonth(ctx)
	if err != nil {
		return nil, common.SecureErrorMessage("aggregate monthly sales", err)
	}
	return sales, nil
}

func (s *dashboardService) GetStockLevels(ctx context.Context) ([]repositories.StockLevel, error) {
	levels, err := s.itemRepo.StockByType(ctx)
	if err != nil {
		return nil, common.SecureErrorMessage("aggregate stock levels", err)
	}
	return levels, nil
}

func statsToCache(stats *DashboardStats) map[string]interface{} {
	return map[string]interface{}{
		"totalCustomers":   stats.TotalCustomers,
		"totalInvoices":    stats.TotalInvoices,
		"pendingDues":      stats.PendingDues,
		"activeLoans":      stats.ActiveLoans,
		"loansOutstanding": stats.LoansOutstanding,
		"bhishiAccounts":   stats.BhishiAccounts,
	}
}

func statsFromCache(cached map[string]interface{}) *DashboardStats {
	stats := &DashboardStats{}
	if v, ok := cached["totalCustomers"].(float64); ok {
		stats.TotalCustomers = int(v)
	}
	if v, ok := cached["totalInvoices"].(float64); ok {
		stats.TotalInvoices = int(v)
	}
	if v, ok := cached["pendingDues"].(float64); ok {
		stats.PendingDues = v
	}
	if v, ok := cached["activeLoans"].(float64); ok {
		stats.ActiveLoans = int(v)
	}
	if v, ok := cached["loansOutstanding"].(float64); ok {
		stats.LoansOutstanding = v
	}
	if v, ok := cached["bhishiAccounts"].(float64); ok {
		stats.BhishiAccounts = int(v)
	}
	return stats
}
