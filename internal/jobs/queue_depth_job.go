package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// DefaultQueueReportSchedule runs the queue report at the start of every minute.
const DefaultQueueReportSchedule = "0 * * * * *"

// QueueReader returns the ranked queue of a dealership.
// queries.GetDealershipQueueQueryHandler satisfies it.
type QueueReader interface {
	Handle(ctx context.Context, query queries.GetDealershipQueueQuery) ([]queries.OrderView, error)
}

// DealershipLister names the dealerships to report on.
type DealershipLister interface {
	Dealerships() []kernel.UUID
}

// StaticDealerships is a fixed DealershipLister.
type StaticDealerships []kernel.UUID

func (s StaticDealerships) Dealerships() []kernel.UUID { return s }

// QueueDepth summarizes the queue of one dealership.
type QueueDepth struct {
	DealershipID kernel.UUID
	Total        int
	ByPriority   map[order.PriorityClass]int
	OldestWait   time.Duration
}

// QueueDepthJob periodically logs how many orders wait in each dealership
// queue and for how long the head of the queue has been waiting. It only reads.
type QueueDepthJob struct {
	reader      QueueReader
	dealerships DealershipLister
	clock       kernel.Clock
	schedule    string
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewQueueDepthJob creates the queue report job. An empty schedule means
// DefaultQueueReportSchedule.
func NewQueueDepthJob(
	reader QueueReader,
	dealerships DealershipLister,
	clock kernel.Clock,
	schedule string,
	logger *slog.Logger,
) *QueueDepthJob {
	if schedule == "" {
		schedule = DefaultQueueReportSchedule
	}
	return &QueueDepthJob{
		reader:      reader,
		dealerships: dealerships,
		clock:       clock,
		schedule:    schedule,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "queue_depth_job"),
	}
}

// Start schedules the report. An invalid schedule is returned as an error.
func (j *QueueDepthJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Queue depth job started", "schedule", j.schedule)
	return nil
}

// Stop stops the queue depth job and waits for a running report to finish.
func (j *QueueDepthJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Queue depth job stopped")
}

// Run reports every dealership once. A dealership whose queue cannot be read
// is logged and skipped.
func (j *QueueDepthJob) Run(ctx context.Context) []QueueDepth {
	dealerships := j.dealerships.Dealerships()
	depths := make([]QueueDepth, 0, len(dealerships))
	for _, dealershipID := range dealerships {
		depth, err := j.measure(ctx, dealershipID)
		if err != nil {
			j.logger.ErrorContext(ctx, "Queue depth report failed",
				"dealership_id", dealershipID.String(), "error", err)
			continue
		}

		j.logger.InfoContext(ctx, "Queue depth",
			"dealership_id", dealershipID.String(),
			"total", depth.Total,
			"wait", depth.ByPriority[order.PriorityWait],
			"valet", depth.ByPriority[order.PriorityValet],
			"loaner", depth.ByPriority[order.PriorityLoaner],
			"oldest_wait", depth.OldestWait.String(),
		)
		depths = append(depths, depth)
	}
	return depths
}

func (j *QueueDepthJob) measure(ctx context.Context, dealershipID kernel.UUID) (QueueDepth, error) {
	query, err := queries.NewGetDealershipQueueQuery(dealershipID)
	if err != nil {
		return QueueDepth{}, err
	}
	queue, err := j.reader.Handle(ctx, query)
	if err != nil {
		return QueueDepth{}, err
	}

	depth := QueueDepth{
		DealershipID: dealershipID,
		Total:        len(queue),
		ByPriority:   make(map[order.PriorityClass]int, 3),
	}
	now := j.clock.Now()
	for _, view := range queue {
		depth.ByPriority[view.Priority]++
		if wait := now.Sub(view.CreatedAt); wait > depth.OldestWait {
			depth.OldestWait = wait
		}
	}
	return depth, nil
}
