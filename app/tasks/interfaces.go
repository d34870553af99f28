package tasks

// TaskSchedulerInterface is what main needs to run background maintenance.
//
//	scheduler := NewScheduler(scripts, workerCount, interval)
//	scheduler.Start()
//	defer scheduler.Stop()
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// HistoryPruner drops expired search history entries.
type HistoryPruner interface {
	PruneHistory() (int, error)
}
