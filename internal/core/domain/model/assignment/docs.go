// Package assignment holds the audit trail of who worked on a repair order.
//
// An Assignment is opened every time an order is given to a technician, by a
// self-service claim or a dispatcher reassignment. It is closed as completed when
// the work is finished, or as abandoned when the order goes back to the queue or
// moves to another technician. Records are never deleted except together with
// their order.
package assignment
