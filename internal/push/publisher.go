package push

import (
	"encoding/json"

	"github.com/minbar-signage/minbar/internal/engine"
)

// DisplayPublisher adapts the MQTT fan-out to the engine's Publisher
// contract.
type DisplayPublisher struct{}

type phaseChangeMessage struct {
	Type  string              `json:"type"`
	State engine.DisplayState `json:"state"`
}

// PublishPhaseChange broadcasts the new display state to all screens.
func (DisplayPublisher) PublishPhaseChange(state engine.DisplayState) error {
	message, err := json.Marshal(phaseChangeMessage{Type: "phase_change", State: state})
	if err != nil {
		return err
	}
	return Broadcast(message)
}
