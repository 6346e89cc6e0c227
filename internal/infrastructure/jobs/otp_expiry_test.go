package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type challengeSweeperStub struct {
	removed int64
	err     error
	calls   int
}

func (s *challengeSweeperStub) DeleteExpired(_ context.Context) (int64, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	return s.removed, nil
}

func TestSweep_RemovesExpired(t *testing.T) {
	repo := &challengeSweeperStub{removed: 3}
	job := &OTPExpiryJob{repo: repo, interval: time.Millisecond, stop: make(chan struct{})}

	job.sweep(context.Background())
	require.Equal(t, 1, repo.calls)
}

func TestSweep_Error(t *testing.T) {
	repo := &challengeSweeperStub{err: errors.New("db down")}
	job := &OTPExpiryJob{repo: repo, interval: time.Millisecond, stop: make(chan struct{})}

	job.sweep(context.Background())
	require.Equal(t, 1, repo.calls)
}

func TestStartStop(t *testing.T) {
	repo := &challengeSweeperStub{}
	job := NewOTPExpiryJob(repo, time.Millisecond)

	done := make(chan struct{})
	go func() {
		job.Start(context.Background())
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	job.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not stop")
	}
	require.GreaterOrEqual(t, repo.calls, 1)
}

func TestNewOTPExpiryJob_DefaultInterval(t *testing.T) {
	job := NewOTPExpiryJob(&challengeSweeperStub{}, 0)
	require.Equal(t, 5*time.Minute, job.interval)
}
