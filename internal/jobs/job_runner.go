package jobs

import (
	"context"
	"time"

	"rentacar-backend/internal/config"
	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/repository"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	cars   repository.CarRepository
	state  repository.ContractStateRepository
	config *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(cars repository.CarRepository, state repository.ContractStateRepository, cfg *config.Config) *JobRunner {
	return &JobRunner{
		cars:   cars,
		state:  state,
		config: cfg,
	}
}

// Config exposes the configuration for the scheduler
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

// RunSolvencyAudit recomputes the custody invariant: the contract balance
// must cover every owner's unwithdrawn earnings. Accumulated commission is
// only an upper bound on admin payouts (it is never decremented), so it is
// reported but not part of the hard check.
func (jr *JobRunner) RunSolvencyAudit() {
	jr.runWithRecovery("solvency_audit", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cars, err := jr.cars.List(ctx)
		if err != nil {
			logger.Error("solvency audit: list cars", "error", err)
			return
		}

		owed := domain.NewAmount(0)
		for _, car := range cars {
			owed, err = owed.Add(car.AvailableToWithdraw)
			if err != nil {
				logger.Error("solvency audit: sum overflow", "error", err)
				return
			}
		}

		balance, err := jr.state.GetContractBalance(ctx)
		if err != nil {
			logger.Error("solvency audit: read contract balance", "error", err)
			return
		}
		accumulated, err := jr.state.GetAccumulatedCommission(ctx)
		if err != nil {
			logger.Error("solvency audit: read accumulated commission", "error", err)
			return
		}

		if balance.LessThan(owed) || balance.Sign() < 0 {
			logger.Error("solvency audit: custody underfunded",
				"contract_balance", balance.String(),
				"owed_to_owners", owed.String(),
				"accumulated_commission", accumulated.String(),
			)
			return
		}

		logger.Info("solvency audit: custody consistent",
			"contract_balance", balance.String(),
			"owed_to_owners", owed.String(),
			"accumulated_commission", accumulated.String(),
			"cars", len(cars),
		)
	})
}
