package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/newsportal/internal/config"
	"github.com/newsportal/internal/models"
	"github.com/newsportal/internal/queue"
	"github.com/newsportal/internal/service"

	"github.com/hibiken/asynq"
)

type fakePruner struct {
	calls []int
	err   error
}

func (f *fakePruner) Prune(_ context.Context, retentionDays int) (*service.AdPruneReport, error) {
	f.calls = append(f.calls, retentionDays)
	if f.err != nil {
		return nil, f.err
	}
	return &service.AdPruneReport{Cutoff: models.Date("2026-01-01"), Impressions: 3, Clicks: 1}, nil
}

func TestHandleAdEventsPrune(t *testing.T) {
	pruner := &fakePruner{}
	consumer := &Consumer{Retention: pruner}
	task, err := queue.NewAdEventsPruneTask(queue.AdEventsPrunePayload{RetentionDays: 14, Source: "admin"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if err := consumer.handleAdEventsPrune(context.Background(), task); err != nil {
		t.Fatalf("handle prune failed: %v", err)
	}
	if len(pruner.calls) != 1 || pruner.calls[0] != 14 {
		t.Fatalf("unexpected prune calls %v", pruner.calls)
	}
}

func TestHandleAdEventsPruneSkipsRetryOnBadPayload(t *testing.T) {
	consumer := &Consumer{Retention: &fakePruner{}}
	err := consumer.handleAdEventsPrune(context.Background(), asynq.NewTask(queue.TaskAdEventsPrune, []byte("not json")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}

func TestHandleAdEventsPrunePropagatesStoreError(t *testing.T) {
	storeErr := errors.New("db down")
	consumer := &Consumer{Retention: &fakePruner{err: storeErr}}
	err := consumer.handleAdEventsPrune(context.Background(), asynq.NewTask(queue.TaskAdEventsPrune, nil))
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestHandleAdEventsPruneNilSafe(t *testing.T) {
	var consumer *Consumer
	if err := consumer.handleAdEventsPrune(context.Background(), nil); err != nil {
		t.Fatalf("nil consumer should be ignored, got %v", err)
	}
	empty := &Consumer{}
	if err := empty.handleAdEventsPrune(context.Background(), asynq.NewTask(queue.TaskAdEventsPrune, nil)); err != nil {
		t.Fatalf("consumer without service should skip, got %v", err)
	}
}

func TestNewServiceRequiresEnabledQueue(t *testing.T) {
	if _, err := NewService(&config.QueueConfig{Enabled: false}, "", &Consumer{}); err == nil {
		t.Fatalf("expected error for disabled queue")
	}
	if _, err := NewService(&config.QueueConfig{Enabled: true}, "", nil); err == nil {
		t.Fatalf("expected error for nil consumer")
	}
}
