package model

// Override event kinds, published on the override channel by the admin
// API and consumed by the engine.
const (
	OverrideKindPhase   = "phase"
	OverrideKindRamadan = "ramadan"
)

// OverrideEvent is a dev/test override change notification. For phase
// overrides Value is a phase tag or empty to clear; for Ramadan it is
// "on", "off" or "auto".
type OverrideEvent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}
