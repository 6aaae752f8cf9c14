// Package scheduler runs the pre-market setup broadcast on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/nifty-predictor/internal/notify"
	"github.com/Alias1177/nifty-predictor/internal/service"
	"github.com/Alias1177/nifty-predictor/models"
)

// SetupSource produces what the broadcast reports on
type SetupSource interface {
	MorningSetup(ctx context.Context) models.MultiTimeframeSetup
	NextDay(ctx context.Context, interval string) service.PredictionReport
	FIIDII() models.FIIDII
}

// Scheduler manages the broadcast cron job
type Scheduler struct {
	cron     *cron.Cron
	source   SetupSource
	notifier notify.Notifier
	loc      *time.Location
	timeout  time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// New creates a scheduler whose specs (with a seconds field) run in loc
func New(source SetupSource, notifier notify.Notifier, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		source:   source,
		notifier: notifier,
		loc:      loc,
		timeout:  2 * time.Minute,
		logger:   log.With().Str("component", "scheduler").Logger(),
		now:      time.Now,
	}
}

// Register adds the broadcast job under the cron expression
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.broadcastTask); err != nil {
		return fmt.Errorf("register broadcast task %q: %w", spec, err)
	}
	s.logger.Info().Str("spec", spec).Str("timezone", s.loc.String()).Msg("Broadcast task registered")
	return nil
}

// Start starts the cron scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Msg("Scheduler started")
}

// Stop waits for a running job to finish or ctx to expire
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn().Msg("Scheduler stop timed out")
	}
	s.logger.Info().Msg("Scheduler stopped")
}

// RunNow builds and sends the broadcast immediately
func (s *Scheduler) RunNow(ctx context.Context) error {
	setup := s.source.MorningSetup(ctx)
	report := s.source.NextDay(ctx, "1d")
	flows := s.source.FIIDII()

	text := notify.FormatMorningBroadcast(setup, report.NextDay, &flows, s.now().In(s.loc))
	if err := s.notifier.Notify(ctx, text); err != nil {
		return fmt.Errorf("sending broadcast: %w", err)
	}

	s.logger.Info().
		Str("suggestion", string(setup.Suggestion)).
		Int("confidence", setup.Confidence).
		Str("next_day", string(report.NextDay.Direction)).
		Msg("Broadcast sent")
	return nil
}

func (s *Scheduler) broadcastTask() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.RunNow(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Broadcast failed")
	}
}
