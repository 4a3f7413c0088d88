package config

import "sync/atomic"

// Store holds the live SystemConfig behind an atomic pointer so the reload
// goroutine can swap in a fresh config while orchestrator runs read it.
// Readers take one Snapshot per operation and never see a half-written
// config.
type Store struct {
	current atomic.Pointer[SystemConfig]
}

// NewStore creates a Store seeded with cfg. A nil cfg seeds the defaults.
func NewStore(cfg *SystemConfig) *Store {
	if cfg == nil {
		cfg = DefaultSystemConfig()
	}
	s := &Store{}
	s.current.Store(cfg)
	return s
}

// Snapshot returns the current config. The returned struct must be treated
// as read-only; a reload replaces the pointer, never the struct.
func (s *Store) Snapshot() *SystemConfig {
	return s.current.Load()
}

// Replace publishes a new config. In-flight operations keep the snapshot
// they started with; only subsequent Snapshot calls see the new one.
func (s *Store) Replace(cfg *SystemConfig) {
	if cfg == nil {
		return
	}
	s.current.Store(cfg)
}
