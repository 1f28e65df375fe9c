package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/newsportal/internal/config"

	"github.com/hibiken/asynq"
)

func TestDisabledClientRejectsEnqueue(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("disabled client should report disabled")
	}
	if _, err := client.EnqueueAdEventsPrune(context.Background(), AdEventsPrunePayload{}); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close disabled client failed: %v", err)
	}
}

func TestPrunePayloadRoundTrip(t *testing.T) {
	task, err := NewAdEventsPruneTask(AdEventsPrunePayload{RetentionDays: 30, RequestedBy: 7, Source: "admin"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskAdEventsPrune {
		t.Fatalf("unexpected task type %s", task.Type())
	}
	payload, err := ParseAdEventsPrunePayload(task)
	if err != nil {
		t.Fatalf("parse payload failed: %v", err)
	}
	if payload.RetentionDays != 30 || payload.RequestedBy != 7 || payload.Source != "admin" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestParsePrunePayloadRejectsGarbage(t *testing.T) {
	if _, err := ParseAdEventsPrunePayload(asynq.NewTask(TaskAdEventsPrune, []byte("{"))); err == nil {
		t.Fatalf("expected decode error")
	}
	payload, err := ParseAdEventsPrunePayload(asynq.NewTask(TaskAdEventsPrune, nil))
	if err != nil || payload.RetentionDays != 0 {
		t.Fatalf("empty payload should decode to zero value, got %+v %v", payload, err)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{Host: " redis ", Port: 6380, DB: 2})
	if opt.Addr != "redis:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt %+v", opt)
	}
	if cfg.Concurrency != 10 {
		t.Fatalf("unexpected concurrency %d", cfg.Concurrency)
	}
	if cfg.Queues[DefaultQueue] == 0 || cfg.Queues[MaintenanceQueue] == 0 {
		t.Fatalf("default queues missing: %+v", cfg.Queues)
	}
}
