package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"barbershop/internal/metrics"
)

type BlockedSlotPurger interface {
	DeleteBefore(ctx context.Context, date string) (int64, error)
}

type SessionPurger interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Scheduler runs periodic housekeeping: past blocked slots and expired sessions are removed.
type Scheduler struct {
	cron     *cron.Cron
	blocks   BlockedSlotPurger
	sessions SessionPurger
	location *time.Location
	metrics  *metrics.Metrics
	logger   *zap.Logger
	now      func() time.Time
	timeout  time.Duration
}

func New(blocks BlockedSlotPurger, sessions SessionPurger, location *time.Location, m *metrics.Metrics, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(location)),
		blocks:   blocks,
		sessions: sessions,
		location: location,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
		timeout:  time.Minute,
	}
}

// Start registers the cleanup job on the given cron spec and starts the scheduler.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.RunCleanup(ctx); err != nil {
			s.logger.Error("ошибка выполнения задачи очистки", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("ошибка регистрации задачи очистки %q: %w", spec, err)
	}

	s.cron.Start()
	s.logger.Info("планировщик запущен", zap.String("spec", spec))

	return nil
}

// Stop waits for a running job to finish or for ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("планировщик остановлен до завершения задачи")
	}
}

// RunCleanup removes blocked slots dated before today and expired sessions.
// Both steps run even when the first one fails.
func (s *Scheduler) RunCleanup(ctx context.Context) error {
	now := s.now().In(s.location)
	today := now.Format("2006-01-02")

	var firstErr error

	removed, err := s.blocks.DeleteBefore(ctx, today)
	if err != nil {
		firstErr = fmt.Errorf("ошибка удаления прошедших блокировок: %w", err)
	} else {
		s.record(metrics.JobBlockedSlots, removed)
		s.logger.Info("удалены прошедшие блокировки", zap.String("before", today), zap.Int64("count", removed))
	}

	removed, err = s.sessions.DeleteExpired(ctx, now)
	if err != nil {
		if firstErr == nil {
			firstErr = fmt.Errorf("ошибка удаления истекших сессий: %w", err)
		}
	} else {
		s.record(metrics.JobExpiredSessions, removed)
		s.logger.Info("удалены истекшие сессии", zap.Int64("count", removed))
	}

	return firstErr
}

func (s *Scheduler) record(job string, removed int64) {
	if s.metrics == nil || removed <= 0 {
		return
	}
	s.metrics.HousekeepingRemoved.WithLabelValues(job).Add(float64(removed))
}
