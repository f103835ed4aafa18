// Package memory is an in-process implementation of the order store.
//
// It honours the same contract as the postgres adapter: a unit of work sees a
// private copy of the data, conditional updates compare status and version, and
// deleting an order removes its assignments. Transactions are serialized, so a
// unit of work holds the store from Begin until Commit or Rollback. Use it for
// tests and local development.
package memory

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// Store holds the committed state shared by every unit of work.
type Store struct {
	sem  chan struct{}
	data *state
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		sem:  make(chan struct{}, 1),
		data: newState(),
	}
}

func (s *Store) lock(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return errs.NewStoreUnavailableError(ctx.Err())
	}
}

func (s *Store) unlock() {
	<-s.sem
}

// withLock runs fn against the committed state outside of any unit of work.
func (s *Store) withLock(ctx context.Context, fn func(st *state) error) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()
	return fn(s.data)
}

type assignmentRecord struct {
	id           kernel.UUID
	orderID      kernel.UUID
	technicianID kernel.UUID
	assignedAt   time.Time
	status       assignment.Status
	completedAt  *time.Time
	abandonedAt  *time.Time
	seq          int
}

type state struct {
	orders      map[kernel.UUID]order.Snapshot
	assignments map[kernel.UUID]assignmentRecord
	nextSeq     int
}

func newState() *state {
	return &state{
		orders:      make(map[kernel.UUID]order.Snapshot),
		assignments: make(map[kernel.UUID]assignmentRecord),
	}
}

// clone copies the maps. Snapshots and records are values whose pointer fields
// are never written through, so sharing them is safe.
func (s *state) clone() *state {
	c := &state{
		orders:      make(map[kernel.UUID]order.Snapshot, len(s.orders)),
		assignments: make(map[kernel.UUID]assignmentRecord, len(s.assignments)),
		nextSeq:     s.nextSeq,
	}
	for id, snap := range s.orders {
		c.orders[id] = snap
	}
	for id, rec := range s.assignments {
		c.assignments[id] = rec
	}
	return c
}
