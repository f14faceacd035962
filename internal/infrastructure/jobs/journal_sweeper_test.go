package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"swap24.backend/internal/domain/entities"
)

type journalSweeperRepoStub struct {
	stale       []*entities.JournalEntry
	listErr     error
	abandonErr  error
	abandonCall int
	lastIDs     []uuid.UUID
}

func (s *journalSweeperRepoStub) ListPendingOlderThan(_ context.Context, _ time.Duration, _ int) ([]*entities.JournalEntry, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.stale, nil
}

func (s *journalSweeperRepoStub) MarkAbandoned(_ context.Context, ids []uuid.UUID) error {
	s.abandonCall++
	s.lastIDs = ids
	return s.abandonErr
}

func TestSweep_NoItems(t *testing.T) {
	repo := &journalSweeperRepoStub{stale: []*entities.JournalEntry{}}
	job := &JournalSweeperJob{repo: repo, maxAge: time.Hour, interval: time.Millisecond, stop: make(chan struct{})}

	job.sweep(context.Background())
	require.Equal(t, 0, repo.abandonCall)
}

func TestSweep_Success(t *testing.T) {
	id1 := uuid.New()
	id2 := uuid.New()
	repo := &journalSweeperRepoStub{stale: []*entities.JournalEntry{{ID: id1}, {ID: id2}}}
	job := &JournalSweeperJob{repo: repo, maxAge: time.Hour, interval: time.Millisecond, stop: make(chan struct{})}

	job.sweep(context.Background())
	require.Equal(t, 1, repo.abandonCall)
	require.ElementsMatch(t, []uuid.UUID{id1, id2}, repo.lastIDs)
}

func TestSweep_ListError(t *testing.T) {
	repo := &journalSweeperRepoStub{listErr: errors.New("db down")}
	job := &JournalSweeperJob{repo: repo, maxAge: time.Hour, interval: time.Millisecond, stop: make(chan struct{})}

	job.sweep(context.Background())
	require.Equal(t, 0, repo.abandonCall)
}

func TestSweep_AbandonError(t *testing.T) {
	id := uuid.New()
	repo := &journalSweeperRepoStub{stale: []*entities.JournalEntry{{ID: id}}, abandonErr: errors.New("update failed")}
	job := &JournalSweeperJob{repo: repo, maxAge: time.Hour, interval: time.Millisecond, stop: make(chan struct{})}

	job.sweep(context.Background())
	require.Equal(t, 1, repo.abandonCall)
	require.Equal(t, []uuid.UUID{id}, repo.lastIDs)
}

func TestStartStop_StopsByContext(t *testing.T) {
	repo := &journalSweeperRepoStub{stale: []*entities.JournalEntry{}}
	job := &JournalSweeperJob{repo: repo, maxAge: time.Hour, interval: time.Millisecond, stop: make(chan struct{})}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on context cancel")
	}
}

func TestStartStop_StopsByStopChannel(t *testing.T) {
	repo := &journalSweeperRepoStub{stale: []*entities.JournalEntry{}}
	job := &JournalSweeperJob{repo: repo, maxAge: time.Hour, interval: time.Millisecond, stop: make(chan struct{})}

	done := make(chan struct{})
	go func() {
		job.Start(context.Background())
		close(done)
	}()
	job.Stop()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on Stop()")
	}
}
