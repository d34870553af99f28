package tasks

import (
	"context"
	"fmt"
	"log/slog"
)

// PruneSearchHistoryTask removes search queries older than a day.
type PruneSearchHistoryTask struct {
	Task
	history HistoryPruner
}

func NewPruneSearchHistoryTask(history HistoryPruner) *PruneSearchHistoryTask {
	return &PruneSearchHistoryTask{
		Task:    NewTask(TaskTypePruneSearchHistory),
		history: history,
	}
}

func (t *PruneSearchHistoryTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	removed, err := t.history.PruneHistory()
	if err != nil {
		return fmt.Errorf("failed to prune search history: %w", err)
	}

	slog.Debug("Task completed",
		"type", string(t.Type),
		"duration", t.GetDuration(),
		"removed", removed)

	return nil
}
