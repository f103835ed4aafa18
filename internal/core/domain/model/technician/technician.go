// Package technician describes the read-only view of a shop technician that the
// dispatcher needs: identity, dealership and skill.
package technician

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// SkillLevel is compared against order.DifficultyLevel.
type SkillLevel int

const (
	MinSkill SkillLevel = 1
	MaxSkill SkillLevel = 3
)

// ErrTechnicianIsNotConstructed is returned when using an improperly initialized Technician.
var ErrTechnicianIsNotConstructed = errors.New("Technician must be created via NewTechnician constructor")

// Technician is owned by the user directory and never modified here.
type Technician struct {
	id           kernel.UUID
	dealershipID kernel.UUID
	skill        SkillLevel
	guard        guard.ConstructorGuard
}

// NewTechnician validates and builds a Technician.
func NewTechnician(id, dealershipID kernel.UUID, skill SkillLevel) (*Technician, error) {
	var skillErr error
	if skill < MinSkill || skill > MaxSkill {
		skillErr = errs.NewValueIsOutOfRangeError("skillLevel", int(skill), int(MinSkill), int(MaxSkill))
	}

	var dealershipErr error
	if err := dealershipID.Validate(); err != nil {
		dealershipErr = errs.NewValueIsRequiredErrorWithCause("dealershipId", err)
	}

	if err := errors.Join(id.Validate(), dealershipErr, skillErr); err != nil {
		return nil, err
	}

	return &Technician{
		id:           id,
		dealershipID: dealershipID,
		skill:        skill,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (t *Technician) Validate() error {
	if t == nil {
		return ErrTechnicianIsNotConstructed
	}
	return t.guard.Validate(ErrTechnicianIsNotConstructed)
}

func (t *Technician) ID() kernel.UUID { return t.id }
func (t *Technician) DealershipID() kernel.UUID { return t.dealershipID }
func (t *Technician) Skill() SkillLevel { return t.skill }

// CanHandle reports whether an order of difficulty d is within this technician's skill.
func (t *Technician) CanHandle(d order.DifficultyLevel) bool {
	return int(d) <= int(t.skill)
}

// WorksAt reports whether the technician belongs to dealershipID.
func (t *Technician) WorksAt(dealershipID kernel.UUID) bool {
	return t.dealershipID.IsEqual(dealershipID)
}
