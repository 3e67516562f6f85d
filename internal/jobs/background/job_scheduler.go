package background

import (
	"context"
	"log"
	"sync"
	"time"

	"jewelmart/internal/caching"
	"jewelmart/internal/jobs"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages the shop's background jobs.
type JobScheduler struct {
	scheduler gocron.Scheduler
	alertSvc  *jobs.PaymentAlertService
	cacheSvc  caching.CacheService
	interval  time.Duration
	jobJobs   map[string]gocron.Job
	mu        sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(alertSvc *jobs.PaymentAlertService, cacheSvc caching.CacheService, alertIntervalHours int) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	if alertIntervalHours <= 0 {
		alertIntervalHours = 24
	}

	js := &JobScheduler{
		scheduler: scheduler,
		alertSvc:  alertSvc,
		cacheSvc:  cacheSvc,
		interval:  time.Duration(alertIntervalHours) * time.Hour,
		jobJobs:   make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all background jobs
func (js *JobScheduler) registerJobs() {
	alertJob, err := js.scheduler.NewJob(
		gocron.DurationJob(js.interval),
		gocron.NewTask(js.alertSvc.ScheduledDuePaymentCheck, context.Background()),
		gocron.WithName("loan-payment-alerts"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create payment alerts job: %v", err)
	} else {
		js.jobJobs["payment-alerts"] = alertJob
	}

	dashboardJob, err := js.scheduler.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(js.refreshDashboardCache, context.Background()),
		gocron.WithName("dashboard-cache-refresh"),
	)
	if err != nil {
		log.Printf("Failed to create dashboard refresh job: %v", err)
	} else {
		js.jobJobs["dashboard-refresh"] = dashboardJob
	}

	log.Printf("Registered %d background jobs", len(js.jobJobs))
}

// refreshDashboardCache drops cached dashboard aggregates so the next
// request recomputes them from the database.
func (js *JobScheduler) refreshDashboardCache(ctx context.Context) error {
	if js.cacheSvc == nil {
		return nil
	}
	if err := js.cacheSvc.InvalidateDashboard(ctx); err != nil {
		log.Printf("Failed to invalidate dashboard cache: %v", err)
		return err
	}
	return nil
}

// AddJob adds a custom job to the scheduler
func (js *JobScheduler) AddJob(name string, interval time.Duration, taskFn interface{}, params ...interface{}) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskFn, params...),
		gocron.WithName(name),
	)
	if err != nil {
		return err
	}

	js.jobJobs[name] = job
	log.Printf("Added custom job: %s", name)
	return nil
}

// RemoveJob removes a job from the scheduler
func (js *JobScheduler) RemoveJob(name string) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	if job, exists := js.jobJobs[name]; exists {
		err := js.scheduler.RemoveJob(job.ID())
		delete(js.jobJobs, name)
		return err
	}
	return nil
}

// GetJobStatus returns information about scheduled jobs
func (js *JobScheduler) GetJobStatus() map[string]interface{} {
	js.mu.RLock()
	defer js.mu.RUnlock()

	status := make(map[string]interface{})
	status["total_jobs"] = len(js.jobJobs)
	names := make([]string, 0, len(js.jobJobs))
	for name := range js.jobJobs {
		names = append(names, name)
	}
	status["jobs"] = names
	return status
}
