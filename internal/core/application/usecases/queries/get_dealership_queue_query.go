package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetDealershipQueueQueryIsNotConstructed = errors.New(
	"GetDealershipQueueQuery must be created via NewGetDealershipQueueQuery constructor",
)

// GetDealershipQueueQuery retrieves the pending orders of a dealership in the
// order technicians would receive them.
//
// Example:
//
//	query, _ := NewGetDealershipQueueQuery(dealershipID)
//	queue, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for _, view := range queue {
//	    fmt.Printf("#%d %s\n", view.Position, view.Description)
//	}
type GetDealershipQueueQuery struct {
	dealershipID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDealershipQueueQuery creates a queue query for dealershipID.
func NewGetDealershipQueueQuery(dealershipID kernel.UUID) (GetDealershipQueueQuery, error) {
	if err := dealershipID.Validate(); err != nil {
		return GetDealershipQueueQuery{}, errs.NewValueIsRequiredErrorWithCause("dealershipId", err)
	}
	return GetDealershipQueueQuery{dealershipID: dealershipID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDealershipQueueQuery) Validate() error {
	return q.guard.Validate(ErrGetDealershipQueueQueryIsNotConstructed)
}

func (q GetDealershipQueueQuery) DealershipID() kernel.UUID {
	return q.dealershipID
}
