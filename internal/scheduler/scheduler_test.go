package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"barbershop/internal/metrics"
)

type mockBlocks struct {
	mock.Mock
}

func (m *mockBlocks) DeleteBefore(ctx context.Context, date string) (int64, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(int64), args.Error(1)
}

type mockSessions struct {
	mock.Mock
}

func (m *mockSessions) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func newTestScheduler(t *testing.T, blocks *mockBlocks, sessions *mockSessions) (*Scheduler, *metrics.Metrics) {
	t.Helper()

	loc, err := time.LoadLocation("America/Bahia")
	require.NoError(t, err)

	m := metrics.NewMetrics("test", prometheus.NewRegistry())
	s := New(blocks, sessions, loc, m, zap.NewNop())
	// 02:30 UTC is still the previous day in Bahia (UTC-3).
	s.now = func() time.Time { return time.Date(2026, 3, 10, 2, 30, 0, 0, time.UTC) }

	return s, m
}

func TestRunCleanup(t *testing.T) {
	blocks := new(mockBlocks)
	sessions := new(mockSessions)
	s, m := newTestScheduler(t, blocks, sessions)
	ctx := context.Background()

	blocks.On("DeleteBefore", ctx, "2026-03-09").Return(int64(4), nil).Once()
	sessions.On("DeleteExpired", ctx, mock.AnythingOfType("time.Time")).Return(int64(2), nil).Once()

	require.NoError(t, s.RunCleanup(ctx))

	blocks.AssertExpectations(t)
	sessions.AssertExpectations(t)
	assert.Equal(t, 4.0, testutil.ToFloat64(m.HousekeepingRemoved.WithLabelValues(metrics.JobBlockedSlots)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.HousekeepingRemoved.WithLabelValues(metrics.JobExpiredSessions)))
}

func TestRunCleanup_ContinuesAfterFailure(t *testing.T) {
	blocks := new(mockBlocks)
	sessions := new(mockSessions)
	s, _ := newTestScheduler(t, blocks, sessions)
	ctx := context.Background()

	blocks.On("DeleteBefore", ctx, mock.Anything).Return(int64(0), errors.New("db down")).Once()
	sessions.On("DeleteExpired", ctx, mock.Anything).Return(int64(1), nil).Once()

	err := s.RunCleanup(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	sessions.AssertExpectations(t)
}

func TestStart_InvalidSpec(t *testing.T) {
	s, _ := newTestScheduler(t, new(mockBlocks), new(mockSessions))
	assert.Error(t, s.Start("not a cron spec"))
}

func TestStartStop(t *testing.T) {
	s, _ := newTestScheduler(t, new(mockBlocks), new(mockSessions))
	require.NoError(t, s.Start("15 3 * * *"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
