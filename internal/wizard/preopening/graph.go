// Package preopening implements the guided intake flow for businesses
// that have not opened yet: ten ordered questions with data-dependent
// skips driven by the business type and the employee toggle.
package preopening

import (
	"math"

	"leme-intake/internal/models"
)

// Step is one of the ten questions of the flow.
type Step int

const (
	StepBusinessType Step = iota + 1
	// StepInventory only applies to product businesses; service
	// businesses skip it in both directions.
	StepInventory
	StepSector
	StepLocation
	StepOpeningForecast
	StepCapital
	StepPayrollDraw
	StepEmployees
	StepRevenueForecast
	StepClients
)

const stepCount = 10

// Start is the initial step of a fresh wizard.
func Start() Step {
	return StepBusinessType
}

// SkipInventory reports whether the inventory step is omitted for the
// current answers. Evaluated fresh on every traversal, never cached,
// so changing the business type re-routes both directions immediately.
func SkipInventory(d *models.PreOpeningDraft) bool {
	return d.BusinessType == models.BusinessTypeService
}

// SkipEmployeeRange reports whether the employee-range sub-question is
// omitted. It lives inside StepEmployees, so it shapes validation and
// the payload rather than traversal.
func SkipEmployeeRange(d *models.PreOpeningDraft) bool {
	return d.HasEmployees != nil && !*d.HasEmployees
}

// Next computes the following step. The second return is false at the
// terminal node, which callers treat as the submission trigger.
func Next(step Step, d *models.PreOpeningDraft) (Step, bool) {
	next := step + 1
	if step == StepBusinessType && SkipInventory(d) {
		next = StepSector
	}
	if next > StepClients {
		return step, false
	}
	return next, true
}

// Previous computes the preceding step, honoring the inventory skip on
// the way back. The second return is false at the first step.
func Previous(step Step, d *models.PreOpeningDraft) (Step, bool) {
	prev := step - 1
	if step == StepSector && SkipInventory(d) {
		prev = StepBusinessType
	}
	if prev < StepBusinessType {
		return step, false
	}
	return prev, true
}

// Progress maps the step to a display percentage over the effective
// step count, with skipped steps removed. It is capped at 95; 100 is
// reserved for a confirmed submission.
func Progress(step Step, d *models.PreOpeningDraft) int {
	total := stepCount
	effective := int(step)
	if SkipInventory(d) {
		total--
		if step > StepInventory {
			effective--
		}
	}
	p := int(math.Round(float64(effective) / float64(total) * 100))
	if p > 95 {
		p = 95
	}
	return p
}
