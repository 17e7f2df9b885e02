package ecs

import "github.com/rotisserie/eris"

// systemMetadata contains the metadata for a system.
type systemMetadata struct {
	name  string         // The name of the system
	runIf []RunCondition // Conditions checked before every run
	fn    System         // The system to run
}

// systemScheduler runs the systems of one hook sequentially, in registration order. Everything
// runs on the caller's goroutine, so systems and observers never need locks.
type systemScheduler struct {
	systems []systemMetadata
}

// newSystemScheduler creates a new system scheduler.
func newSystemScheduler() systemScheduler {
	return systemScheduler{systems: make([]systemMetadata, 0)}
}

// register registers a system with the scheduler.
func (s *systemScheduler) register(name string, fn System, runIf []RunCondition) {
	s.systems = append(s.systems, systemMetadata{name: name, runIf: runIf, fn: fn})
}

// run executes the systems whose run conditions hold. It stops at the first failing system.
func (s *systemScheduler) run(w *World) error {
	for i := range s.systems {
		system := &s.systems[i]
		if !shouldRun(w, system.runIf) {
			continue
		}
		if err := system.fn(w); err != nil {
			return eris.Wrapf(err, "system %s failed", system.name)
		}
	}
	return nil
}

func shouldRun(w *World, conds []RunCondition) bool {
	for _, cond := range conds {
		if !cond(w) {
			return false
		}
	}
	return true
}
