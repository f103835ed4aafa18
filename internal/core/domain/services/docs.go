// Package services provides domain services that coordinate repair orders and
// technicians in ways that do not belong to a single aggregate.
//
// The package includes:
//   - QueueRanker: ordering of a dealership queue and manual reordering
//   - EligibilityPolicy: capacity and cooldown rules for self-service requests
//   - OrderDispatcher: selection and claim of the next order for a technician
//
// All services are pure: they work on aggregates already loaded by the caller and
// never touch storage.
package services
