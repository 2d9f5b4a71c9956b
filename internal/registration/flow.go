// Package registration implements the multi-step registration form: step
// progression, per-step validation and the guarded final submission.
package registration

// Flow tracks the current step of a form with a fixed number of steps.
//
// Steps are 1-based. Advance and Retreat clamp at the bounds instead of
// failing, so callers can drive the flow directly from user intents.
type Flow struct {
	step     int
	maxSteps func() int
}

// NewFlow starts a flow at step 1. maxSteps is queried on every call and
// values below 1 are treated as 1.
func NewFlow(maxSteps func() int) *Flow {
	return &Flow{step: 1, maxSteps: maxSteps}
}

// RestoreFlow rebuilds a flow positioned at step, clamped into range.
func RestoreFlow(maxSteps func() int, step int) *Flow {
	f := NewFlow(maxSteps)
	f.Restore(step)
	return f
}

// FixedSteps returns a maxSteps function for a constant step count.
func FixedSteps(n int) func() int {
	return func() int { return n }
}

// MaxSteps returns the number of steps, at least 1.
func (f *Flow) MaxSteps() int {
	if f.maxSteps == nil {
		return 1
	}
	if n := f.maxSteps(); n > 1 {
		return n
	}
	return 1
}

// Step returns the current step.
func (f *Flow) Step() int {
	if last := f.MaxSteps(); f.step > last {
		return last
	}
	if f.step < 1 {
		return 1
	}
	return f.step
}

// Advance moves to the next step and reports whether it moved.
func (f *Flow) Advance() bool {
	step := f.Step()
	if step >= f.MaxSteps() {
		f.step = step
		return false
	}
	f.step = step + 1
	return true
}

// Retreat moves to the previous step and reports whether it moved.
func (f *Flow) Retreat() bool {
	step := f.Step()
	if step <= 1 {
		f.step = 1
		return false
	}
	f.step = step - 1
	return true
}

// Restore positions the flow at step, clamped into [1, MaxSteps].
func (f *Flow) Restore(step int) {
	f.step = step
	f.step = f.Step()
}

func (f *Flow) IsFirstStep() bool { return f.Step() == 1 }

func (f *Flow) IsFinalStep() bool { return f.Step() == f.MaxSteps() }

// CanRetreat reports whether a "previous" control should be offered.
func (f *Flow) CanRetreat() bool { return !f.IsFirstStep() }

// CanSubmit reports whether the final submit control should be offered.
func (f *Flow) CanSubmit() bool { return f.IsFinalStep() }
