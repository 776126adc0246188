package core

import "time"

// FixedStep paces fire steps at a steady rate independent of the frame rate,
// so the viewer can redraw at 60 FPS while the fire advances a few times a
// second.
type FixedStep struct {
	tps         int
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
// The first ShouldStep call fires immediately.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. Non-positive rates fall back to 60. A
// controller that has not ticked yet still fires on the next ShouldStep.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.tps = tps
	f.step = time.Second / time.Duration(tps)
	if f.last.IsZero() {
		f.accumulator = f.step
	}
}

// TPS returns the current tick rate.
func (f *FixedStep) TPS() int { return f.tps }

// Rearm makes the next ShouldStep call fire immediately and forgets time
// spent paused.
func (f *FixedStep) Rearm() {
	f.accumulator = f.step
	f.last = time.Time{}
}

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := time.Now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		if f.accumulator > f.step {
			// Drop backlog instead of burning through it in a burst.
			f.accumulator = 0
		}
		return true
	}
	return false
}
