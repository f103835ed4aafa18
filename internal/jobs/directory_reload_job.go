package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultDirectoryReloadSchedule reloads the technician directory every hour.
const DefaultDirectoryReloadSchedule = "0 0 * * * *"

// Reloader re-reads a data source.
type Reloader interface {
	Reload() error
}

// DirectoryReloadJob reloads the technician directory on a schedule. It covers
// file changes that the file watcher missed, e.g. on network file systems.
type DirectoryReloadJob struct {
	directory Reloader
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewDirectoryReloadJob(directory Reloader, schedule string, logger *slog.Logger) *DirectoryReloadJob {
	if schedule == "" {
		schedule = DefaultDirectoryReloadSchedule
	}
	return &DirectoryReloadJob{
		directory: directory,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "directory_reload_job"),
	}
}

func (j *DirectoryReloadJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Directory reload job started", "schedule", j.schedule)
	return nil
}

func (j *DirectoryReloadJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Directory reload job stopped")
}

// Run reloads once. A failed reload keeps the loaded technicians.
func (j *DirectoryReloadJob) Run(ctx context.Context) {
	if err := j.directory.Reload(); err != nil {
		j.logger.WarnContext(ctx, "Technician directory reload failed", "error", err)
	}
}
