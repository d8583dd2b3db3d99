// Package scheduler converts real elapsed time into simulated ticks and
// drives the simulation's advanceable parts. The scheduler is an
// explicitly constructed object owned by whatever composes the
// simulation; nothing in the core depends on a global dispatcher.
package scheduler

// Target is anything the scheduler advances by simulated ticks.
type Target interface {
	Advance(ticks float64)
}

// TargetFunc adapts a plain function as a Target.
type TargetFunc func(ticks float64)

// Advance implements Target.
func (f TargetFunc) Advance(ticks float64) { f(ticks) }

// Scheduler owns the time scale and pause state of a simulation run.
type Scheduler struct {
	scale   float64
	paused  bool
	targets []Target
}

// New creates a scheduler with the given time scale. Negative scales are
// clamped to zero.
func New(scale float64) *Scheduler {
	s := &Scheduler{}
	s.SetScale(scale)
	return s
}

// Register adds a target to the advance order. Registration order is
// preserved.
func (s *Scheduler) Register(t Target) {
	if t == nil {
		return
	}
	s.targets = append(s.targets, t)
}

// SetScale sets the simulated-ticks-per-real-unit factor, clamped to be
// non-negative.
func (s *Scheduler) SetScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	s.scale = scale
}

// Scale returns the current time scale.
func (s *Scheduler) Scale() float64 { return s.scale }

// Pause stops time until Resume is called.
func (s *Scheduler) Pause() { s.paused = true }

// Resume restarts time.
func (s *Scheduler) Resume() { s.paused = false }

// Paused reports whether the scheduler is paused.
func (s *Scheduler) Paused() bool { return s.paused }

// Tick converts real elapsed time into simulated ticks and advances every
// registered target by them, in registration order. It returns the ticks
// delivered; paused schedulers and non-positive elapsed deliver zero and
// advance nothing.
func (s *Scheduler) Tick(elapsed float64) float64 {
	if s.paused || elapsed <= 0 || s.scale == 0 {
		return 0
	}
	ticks := elapsed * s.scale
	for _, t := range s.targets {
		t.Advance(ticks)
	}
	return ticks
}
