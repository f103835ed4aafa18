package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// PriorityClass is the dispatch bucket of an order. Lower values are served first.
type PriorityClass int

const (
	// PriorityWait is a customer waiting in the shop.
	PriorityWait PriorityClass = 1
	// PriorityValet is a car brought in by valet.
	PriorityValet PriorityClass = 2
	// PriorityLoaner is a customer who received a loaner car.
	PriorityLoaner PriorityClass = 3
)

var priorityNames = map[PriorityClass]string{
	PriorityWait:   "WAIT",
	PriorityValet:  "VALET",
	PriorityLoaner: "LOANER",
}

// NewPriorityClass validates value and converts it into a PriorityClass.
func NewPriorityClass(value int) (PriorityClass, error) {
	p := PriorityClass(value)
	if err := p.Validate(); err != nil {
		return 0, err
	}
	return p, nil
}

// Validate checks that p is one of WAIT, VALET, LOANER.
func (p PriorityClass) Validate() error {
	if _, ok := priorityNames[p]; !ok {
		return errs.NewValueIsOutOfRangeError("priorityClass", int(p), int(PriorityWait), int(PriorityLoaner))
	}
	return nil
}

func (p PriorityClass) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PriorityClass(%d)", int(p))
}
