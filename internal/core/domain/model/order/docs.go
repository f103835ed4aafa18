// Package order contains the RepairOrder aggregate and its lifecycle state machine.
//
// All status changes are decided by Status.Next, a single table keyed by the current
// status and the requested Action. Aggregate methods (Claim, ForceAssign, Complete,
// PutOnHold, Resume, ReturnToQueue, CanDelete and the pending-only edits) consult it
// before mutating anything, so a rejected action leaves the order untouched.
package order
