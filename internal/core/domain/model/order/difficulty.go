package order

import "dispatch/internal/pkg/errs"

// DifficultyLevel rates the complexity of the work from 1 to 3. A technician may
// self-claim an order only when the difficulty does not exceed their skill level.
type DifficultyLevel int

const (
	// MinDifficulty is routine work any technician can take.
	MinDifficulty DifficultyLevel = 1
	// MaxDifficulty is work reserved for the most skilled technicians.
	MaxDifficulty DifficultyLevel = 3
	// DefaultDifficulty applies when an order is created without a difficulty.
	DefaultDifficulty = MinDifficulty
)

// NewDifficultyLevel validates value and converts it into a DifficultyLevel.
func NewDifficultyLevel(value int) (DifficultyLevel, error) {
	d := DifficultyLevel(value)
	if err := d.Validate(); err != nil {
		return 0, err
	}
	return d, nil
}

// Validate checks that d lies within [MinDifficulty, MaxDifficulty].
func (d DifficultyLevel) Validate() error {
	if d < MinDifficulty || d > MaxDifficulty {
		return errs.NewValueIsOutOfRangeError("difficultyLevel", int(d), int(MinDifficulty), int(MaxDifficulty))
	}
	return nil
}
