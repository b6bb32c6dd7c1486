package jobs

import (
	"github.com/adarsh-sng/JustRentIt/internal/config"
	"github.com/adarsh-sng/JustRentIt/internal/logger"
	"github.com/adarsh-sng/JustRentIt/internal/repository"
	"github.com/adarsh-sng/JustRentIt/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	emailSvc  service.EmailService
	config    *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(orderRepo repository.OrderRepository, userRepo repository.UserRepository, emailSvc service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		emailSvc:  emailSvc,
		config:    cfg,
	}
}

// Config exposes the runner's configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
