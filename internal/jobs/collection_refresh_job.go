package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Refresher is a collection that can refetch itself with its active parameters.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// CollectionRefreshJob periodically refetches a collection so that changes made
// upstream by other actors show up in the views.
type CollectionRefreshJob struct {
	name       string
	collection Refresher
	schedule   string
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewCollectionRefreshJob creates a refresh job for collection. schedule is a
// cron expression with a leading seconds field.
func NewCollectionRefreshJob(name string, collection Refresher, schedule string, logger *slog.Logger) *CollectionRefreshJob {
	return &CollectionRefreshJob{
		name:       name,
		collection: collection,
		schedule:   schedule,
		cron:       newCron(),
		logger:     logger.With("component", name+"_refresh_job"),
	}
}

func (j *CollectionRefreshJob) Name() string {
	return j.name + " refresh"
}

// Start schedules the refresh.
func (j *CollectionRefreshJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Collection refresh job started", "schedule", j.schedule)
	return nil
}

// Run refetches the collection once. Failures are logged; the collection keeps
// its previous contents.
func (j *CollectionRefreshJob) Run(ctx context.Context) {
	if err := j.collection.Refresh(ctx); err != nil {
		j.logger.ErrorContext(ctx, "Collection refresh failed", "error", err)
	}
}

// Stop stops the job and waits for a running refresh to finish.
func (j *CollectionRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Collection refresh job stopped")
}

func newCron() *cron.Cron {
	return cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
}
