package jobs

import (
	"context"
	"log"
	"time"

	"jewelmart/internal/models"
	"jewelmart/internal/repositories"
)

// PaymentAlertService flags active gold loans whose next payment falls
// due within the configured lookahead window.
type PaymentAlertService struct {
	loanRepo     repositories.GoldLoanRepository
	customerRepo repositories.CustomerRepository
	lookahead    time.Duration
}

type PaymentAlert struct {
	LoanNumber      string
	CustomerName    string
	CustomerMobile  string
	NextPaymentDue  time.Time
	RemainingAmount float64
}

func NewPaymentAlertService(loanRepo repositories.GoldLoanRepository, customerRepo repositories.CustomerRepository, lookaheadDays int) *PaymentAlertService {
	if lookaheadDays <= 0 {
		lookaheadDays = 3
	}
	return &PaymentAlertService{
		loanRepo:     loanRepo,
		customerRepo: customerRepo,
		lookahead:    time.Duration(lookaheadDays) * 24 * time.Hour,
	}
}

// CheckDuePayments collects active loans due within the lookahead window.
func (a *PaymentAlertService) CheckDuePayments(ctx context.Context) ([]PaymentAlert, error) {
	cutoff := time.Now().Add(a.lookahead)
	loans, err := a.loanRepo.ListDueBefore(ctx, cutoff)
	if err != nil {
		log.Printf("Failed to list loans due before %s: %v", cutoff.Format("02-Jan-2006"), err)
		return nil, err
	}

	var alerts []PaymentAlert
	for _, loan := range loans {
		alert := PaymentAlert{
			LoanNumber:      loan.LoanNumber,
			NextPaymentDue:  loan.NextPaymentDue,
			RemainingAmount: loan.RemainingAmount,
		}
		customer, err := a.customerRepo.GetByID(ctx, loan.CustomerID)
		if err != nil || customer == nil {
			if err != nil {
				log.Printf("Failed to get customer %s for loan %s: %v", loan.CustomerID.String(), loan.LoanNumber, err)
			}
			placeholder := models.DeletedCustomerPlaceholder()
			alert.CustomerName = placeholder.Name
			alert.CustomerMobile = placeholder.Mobile
		} else {
			alert.CustomerName = customer.Name
			alert.CustomerMobile = customer.Mobile
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

// LogDuePaymentAlerts writes the collected alerts to the log. SMS and
// WhatsApp delivery hang off this later; for now the log is the feed.
func (a *PaymentAlertService) LogDuePaymentAlerts(ctx context.Context, alerts []PaymentAlert) {
	if len(alerts) == 0 {
		log.Println("No loan payments due in the alert window")
		return
	}

	log.Printf("Loan payment alerts (%d due):", len(alerts))
	for _, alert := range alerts {
		log.Printf("- Loan %s: %s (%s) owes %.2f, due %s",
			alert.LoanNumber,
			alert.CustomerName,
			alert.CustomerMobile,
			alert.RemainingAmount,
			alert.NextPaymentDue.Format("02-Jan-2006"))
	}
}

// ScheduledDuePaymentCheck is the entrypoint wired into the scheduler.
func (a *PaymentAlertService) ScheduledDuePaymentCheck(ctx context.Context) error {
	log.Println("Starting scheduled loan payment check")

	alerts, err := a.CheckDuePayments(ctx)
	if err != nil {
		log.Printf("Scheduled loan payment check failed: %v", err)
		return err
	}
	a.LogDuePaymentAlerts(ctx, alerts)

	log.Println("Scheduled loan payment check completed")
	return nil
}
