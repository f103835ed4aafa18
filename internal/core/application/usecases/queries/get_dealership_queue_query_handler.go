package queries

import (
	"context"

	"dispatch/internal/core/domain/services"
)

// GetDealershipQueueQueryHandler ranks the pending orders of a dealership with
// the same QueueRanker the assignment engine uses, so the head of the returned
// queue is the order the next eligible technician would be given.
type GetDealershipQueueQueryHandler struct {
	reader OrderReader
	ranker services.QueueRanker
}

// NewGetDealershipQueueQueryHandler creates a handler for ranked queue queries.
func NewGetDealershipQueueQueryHandler(reader OrderReader, ranker services.QueueRanker) GetDealershipQueueQueryHandler {
	return GetDealershipQueueQueryHandler{reader: reader, ranker: ranker}
}

// Handle returns the ranked queue. An empty queue is an empty slice, not an error.
func (h GetDealershipQueueQueryHandler) Handle(
	ctx context.Context,
	query GetDealershipQueueQuery,
) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pending, err := h.reader.FetchPending(ctx, query.DealershipID())
	if err != nil {
		return nil, err
	}

	ranked := h.ranker.Rank(pending, query.DealershipID())
	queue := make([]OrderView, 0, len(ranked))
	for i, o := range ranked {
		view := NewOrderView(o)
		view.Position = i + 1
		queue = append(queue, view)
	}

	return queue, nil
}
