package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/toriai247/EarnHubPro-sub001/internal/usecase"
)

const sweepTimeout = 30 * time.Minute

// Scheduler runs the nightly reconciliation sweep over every wallet.
type Scheduler struct {
	cron             *cron.Cron
	reconciliationUC *usecase.ReconciliationUseCase
	logger           zerolog.Logger
}

// NewScheduler creates a Scheduler. The sweep schedule is a standard
// five-field cron expression, e.g. "0 3 * * *" for 03:00 daily.
func NewScheduler(reconciliationUC *usecase.ReconciliationUseCase, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:             cron.New(),
		reconciliationUC: reconciliationUC,
		logger:           logger,
	}
}

// Start registers the sweep at the given schedule and starts the cron
// loop. Returns an error for an invalid spec.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, s.runSweep)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info().Str("schedule", spec).Msg("reconciliation sweep scheduled")
	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	started := time.Now()
	reports, err := s.reconciliationUC.ReconcileAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("reconciliation sweep failed")
		return
	}

	drifted := 0
	for _, r := range reports {
		if !r.IsReconciled {
			drifted++
		}
	}

	s.logger.Info().
		Int("wallets", len(reports)).
		Int("drifted", drifted).
		Dur("took", time.Since(started)).
		Msg("reconciliation sweep finished")
}
