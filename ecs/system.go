package ecs

import "github.com/rotisserie/eris"

// System is a function that contains application logic.
type System func(w *World) error

// RunCondition decides, right before a system would run, whether it runs this tick.
type RunCondition func(w *World) bool

// initSystem represents a system that should be run once before the first tick.
type initSystem struct {
	name string // The name of the system
	fn   System // The system to run
}

// systemConfig holds all configurable options for system registration.
type systemConfig struct {
	// The hook that determines when the system should be executed.
	hook SystemHook
	// All conditions must hold for the system to run.
	runIf []RunCondition
}

// newSystemConfig creates a new system config with default values.
func newSystemConfig() systemConfig {
	return systemConfig{
		hook:  Update,
		runIf: make([]RunCondition, 0),
	}
}

// SystemOption is a function that configures a SystemConfig.
type SystemOption func(*systemConfig)

// SystemHook defines when a system should be executed in the update cycle.
type SystemHook uint8

const (
	// PreUpdate runs before the main update.
	PreUpdate SystemHook = 0
	// Update runs during the main update phase.
	Update SystemHook = 1
	// PostUpdate runs after the main update.
	PostUpdate SystemHook = 2
	// Last runs after every other hook, right before the tick's events are cleared.
	Last SystemHook = 3
	// Init runs once before the first tick.
	Init SystemHook = 4
)

const numTickHooks = 4

func (h SystemHook) String() string {
	switch h {
	case PreUpdate:
		return "PreUpdate"
	case Update:
		return "Update"
	case PostUpdate:
		return "PostUpdate"
	case Last:
		return "Last"
	case Init:
		return "Init"
	default:
		return "Unknown"
	}
}

// WithHook returns an option to set the system hook.
func WithHook(hook SystemHook) SystemOption {
	return func(cfg *systemConfig) { cfg.hook = hook }
}

// WithRunIf returns an option that skips the system on ticks where cond is false.
func WithRunIf(cond RunCondition) SystemOption {
	return func(cfg *systemConfig) { cfg.runIf = append(cfg.runIf, cond) }
}

// RegisterSystem registers a system under the given name.
func RegisterSystem(w *World, name string, system System, opts ...SystemOption) error {
	if name == "" {
		return eris.New("system name cannot be empty")
	}
	if system == nil {
		return eris.Errorf("system %s is nil", name)
	}

	cfg := newSystemConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.hook == Init {
		if w.initDone {
			return eris.Errorf("init system %s registered after the first tick", name)
		}
		w.initSystems = append(w.initSystems, initSystem{name: name, fn: system})
		return nil
	}
	if cfg.hook >= numTickHooks {
		return eris.Errorf("system %s has invalid hook %d", name, cfg.hook)
	}

	w.scheduler[cfg.hook].register(name, system, cfg.runIf)
	return nil
}
