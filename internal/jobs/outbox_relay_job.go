package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OutboxRelayJob publishes pending outbox messages on a schedule.
type OutboxRelayJob struct {
	handler   commands.RelayOutboxCommandHandler
	batchSize int
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxRelayJob creates a relay job publishing up to batchSize messages per run.
func NewOutboxRelayJob(
	handler commands.RelayOutboxCommandHandler,
	batchSize int,
	schedule string,
	logger *slog.Logger,
) *OutboxRelayJob {
	return &OutboxRelayJob{
		handler:   handler,
		batchSize: batchSize,
		schedule:  schedule,
		cron:      newCron(),
		logger:    logger.With("component", "outbox_relay_job"),
	}
}

func (j *OutboxRelayJob) Name() string {
	return "outbox relay"
}

// Start schedules the relay. An invalid batch size is reported here rather than
// on every run.
func (j *OutboxRelayJob) Start() error {
	if _, err := commands.NewRelayOutboxCommand(j.batchSize); err != nil {
		return err
	}

	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// Run relays one batch and returns the number of published messages.
func (j *OutboxRelayJob) Run(ctx context.Context) int {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job misconfigured", "error", err)
		return 0
	}

	sent, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay failed", "error", err)
		return sent
	}
	if sent > 0 {
		j.logger.DebugContext(ctx, "Outbox messages published", "count", sent)
	}
	return sent
}

// Stop stops the job and waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
