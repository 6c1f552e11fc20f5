// Package analysis implements the guided intake flow for businesses
// already in operation: a fixed outer sequence of macro steps whose
// financial section runs as seven ordered micro steps.
package analysis

import (
	"math"

	"leme-intake/internal/models"
)

// Step is an outer macro step of the flow.
type Step int

const (
	StepIdentification Step = iota + 1
	StepBasicInfo
	// StepEntryMethod used to let the user choose between manual entry
	// and statement upload. Only manual entry survived, so the step is
	// skipped unconditionally in both directions.
	StepEntryMethod
	StepFinancials
)

// MicroStep is one of the ordered financial questions inside
// StepFinancials. They always run start to finish, no inner skipping.
type MicroStep int

const (
	MicroRevenue MicroStep = iota + 1
	MicroCosts
	MicroCash
	MicroInventory
	MicroDebt
	MicroAssets
	MicroHeadcount
)

const microStepCount = 7

// Position locates the user in the flow. Micro is only meaningful when
// Step is StepFinancials; it is zero everywhere else.
type Position struct {
	Step  Step
	Micro MicroStep
}

// Start is the initial position of a fresh wizard.
func Start() Position {
	return Position{Step: StepIdentification}
}

// Next computes the following position. The draft is consulted so skip
// decisions always reflect the latest answers. The second return is
// false when pos is the terminal node, which callers treat as the
// submission trigger.
func Next(pos Position, _ *models.AnalysisDraft) (Position, bool) {
	switch pos.Step {
	case StepIdentification:
		return Position{Step: StepBasicInfo}, true
	case StepBasicInfo:
		// Straight into the first financial question, past the
		// deprecated entry-method step.
		return Position{Step: StepFinancials, Micro: MicroRevenue}, true
	case StepEntryMethod:
		return Position{Step: StepFinancials, Micro: MicroRevenue}, true
	case StepFinancials:
		if pos.Micro < MicroHeadcount {
			return Position{Step: StepFinancials, Micro: pos.Micro + 1}, true
		}
		return pos, false
	}
	return pos, false
}

// Previous computes the preceding position. Retreating from the first
// financial question lands on basic info, never on the deprecated
// entry-method step. The second return is false at the first node.
func Previous(pos Position, _ *models.AnalysisDraft) (Position, bool) {
	switch pos.Step {
	case StepIdentification:
		return pos, false
	case StepBasicInfo:
		return Position{Step: StepIdentification}, true
	case StepEntryMethod:
		return Position{Step: StepBasicInfo}, true
	case StepFinancials:
		if pos.Micro > MicroRevenue {
			return Position{Step: StepFinancials, Micro: pos.Micro - 1}, true
		}
		return Position{Step: StepBasicInfo}, true
	}
	return pos, false
}

// Progress maps a position to a display percentage. Identification is
// 0, basic info 10 and the financial micro steps spread evenly from
// there up to 90. 100 is reserved for a confirmed submission.
func Progress(pos Position) int {
	switch pos.Step {
	case StepIdentification:
		return 0
	case StepBasicInfo, StepEntryMethod:
		return 10
	case StepFinancials:
		return 10 + int(math.Round(float64(pos.Micro)*80.0/float64(microStepCount)))
	}
	return 0
}
