package maintenance

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/mentorloop/mentorloop/internal/services"
	"github.com/mentorloop/mentorloop/pkg/logger"
)

const (
	defaultAuditRetentionDays = 90
	defaultCompletionSpec     = "@every 5m"
	defaultAuditSpec          = "@daily"
)

// Sweeper coordinates background maintenance: flipping past scheduled sessions
// to completed and pruning old audit logs.
type Sweeper struct {
	sessions  *services.SessionService
	audit     *services.AuditService
	cron      *cron.Cron
	log       *zap.Logger
	retention int

	completionSchedule string
	auditSchedule      string
}

// Option customises the Sweeper.
type Option func(*Sweeper)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(s *Sweeper) {
		if c != nil {
			s.cron = c
		}
	}
}

// WithAuditRetentionDays adjusts how long audit logs are retained before cleanup.
func WithAuditRetentionDays(days int) Option {
	return func(s *Sweeper) {
		if days > 0 {
			s.retention = days
		}
	}
}

// WithCompletionSchedule overrides the cron specification for the session sweep.
func WithCompletionSchedule(spec string) Option {
	return func(s *Sweeper) {
		if spec != "" {
			s.completionSchedule = spec
		}
	}
}

// WithAuditSchedule overrides the cron specification for audit retention enforcement.
func WithAuditSchedule(spec string) Option {
	return func(s *Sweeper) {
		if spec != "" {
			s.auditSchedule = spec
		}
	}
}

// NewSweeper constructs a Sweeper with sensible defaults. A nil dependency
// results in the corresponding job being skipped.
func NewSweeper(sessions *services.SessionService, audit *services.AuditService, opts ...Option) *Sweeper {
	sweeper := &Sweeper{
		sessions:           sessions,
		audit:              audit,
		retention:          defaultAuditRetentionDays,
		completionSchedule: defaultCompletionSpec,
		auditSchedule:      defaultAuditSpec,
		log:                logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(sweeper)
	}

	if sweeper.cron == nil {
		sweeper.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return sweeper
}

// Start registers the jobs with the cron scheduler and launches it.
func (s *Sweeper) Start() error {
	if s.sessions != nil {
		if _, err := s.cron.AddFunc(s.completionSchedule, func() {
			if _, err := s.sessions.MarkCompletedIfPast(context.Background()); err != nil {
				s.log.Warn("session completion sweep failed", zap.Error(err))
			}
		}); err != nil {
			return err
		}
	}

	if s.audit != nil && s.retention > 0 {
		if _, err := s.cron.AddFunc(s.auditSchedule, func() {
			if _, err := s.audit.CleanupOlderThan(context.Background(), s.retention); err != nil {
				s.log.Warn("audit cleanup failed", zap.Error(err))
			}
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	return nil
}

// Stop halts the underlying scheduler, waiting for any running jobs to complete.
func (s *Sweeper) Stop() context.Context {
	if s.cron == nil {
		return context.Background()
	}
	return s.cron.Stop()
}

// RunOnce executes all configured jobs sequentially. Primarily used in tests
// and during graceful shutdown.
func (s *Sweeper) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var errs error

	if s.sessions != nil {
		if _, err := s.sessions.MarkCompletedIfPast(ctx); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	if s.audit != nil && s.retention > 0 {
		if _, err := s.audit.CleanupOlderThan(ctx, s.retention); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	return errs
}
