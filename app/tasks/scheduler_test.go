package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type mockPruner struct {
	calls atomic.Int32
	err   error
}

func (m *mockPruner) PruneHistory() (int, error) {
	m.calls.Add(1)
	return 1, m.err
}

func TestPruneSearchHistoryTask(t *testing.T) {
	pruner := &mockPruner{}
	task := NewPruneSearchHistoryTask(pruner)

	if task.GetType() != TaskTypePruneSearchHistory {
		t.Errorf("Unexpected task type %q", task.GetType())
	}
	if task.GetMaxRetries() != 0 {
		t.Errorf("Expected no retries, got %d", task.GetMaxRetries())
	}
	if task.GetID() == "" {
		t.Error("Expected a task id")
	}

	if err := task.Execute(context.Background()); err != nil {
		t.Fatal(err)
	}
	if pruner.calls.Load() != 1 {
		t.Errorf("Expected one prune call, got %d", pruner.calls.Load())
	}
}

func TestPruneSearchHistoryTaskErrors(t *testing.T) {
	pruner := &mockPruner{err: errors.New("disk full")}
	if err := NewPruneSearchHistoryTask(pruner).Execute(context.Background()); err == nil {
		t.Error("Expected the prune error to be returned")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewPruneSearchHistoryTask(&mockPruner{}).Execute(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestTaskDuration(t *testing.T) {
	task := NewTask(TaskTypePruneSearchHistory)
	if task.GetDuration() != 0 {
		t.Error("Expected zero duration before start")
	}

	task.Start()
	time.Sleep(time.Millisecond)
	if task.GetDuration() <= 0 {
		t.Error("Expected positive duration after start")
	}
}

func TestSchedulerRunsPruneOnStart(t *testing.T) {
	pruner := &mockPruner{}
	scheduler := NewScheduler(pruner, 1, time.Hour)

	scheduler.Start()

	deadline := time.Now().Add(2 * time.Second)
	for pruner.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	scheduler.Stop()

	if pruner.calls.Load() != 1 {
		t.Errorf("Expected one prune on start, got %d", pruner.calls.Load())
	}
}

func TestEnqueueQueueFull(t *testing.T) {
	scheduler := NewScheduler(&mockPruner{}, 1, time.Hour)
	defer scheduler.cancel()

	for i := 0; i < cap(scheduler.taskQueue); i++ {
		if err := scheduler.EnqueueTask(NewPruneSearchHistoryTask(&mockPruner{})); err != nil {
			t.Fatalf("Enqueue %d failed: %v", i, err)
		}
	}

	if err := scheduler.EnqueueTask(NewPruneSearchHistoryTask(&mockPruner{})); err == nil {
		t.Error("Expected enqueue to fail on a full queue")
	}
}
