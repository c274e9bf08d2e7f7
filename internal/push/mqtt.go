// Package push fans display state out to paired screens over MQTT.
// Each connected screen holds a client subscribed to its own topic;
// phase changes are broadcast so a TV updates the moment the adhan or
// congregation state flips rather than on its next poll.
package push

import (
	"fmt"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

var (
	screenClients = make(map[string]mqtt.Client)
	clientMutex   sync.RWMutex
	brokerURL     = "tcp://0.0.0.0:1883"
)

// SetBrokerURL configures the MQTT broker address before any client
// connects.
func SetBrokerURL(url string) {
	brokerURL = url
}

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Error().Err(err).Msg("MQTT connection lost")
}

// NewClient connects a named MQTT client to the broker.
func NewClient(clientName string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientName)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return client, nil
}

func displayTopic(deviceID string) string {
	return fmt.Sprintf("screens/%s/display", deviceID)
}

// RegisterScreen tracks a connected screen's client for later sends.
func RegisterScreen(deviceID string, client mqtt.Client) {
	clientMutex.Lock()
	screenClients[deviceID] = client
	clientMutex.Unlock()
}

// SendToScreen publishes a message on one screen's display topic.
func SendToScreen(deviceID string, message []byte) error {
	clientMutex.RLock()
	client, exists := screenClients[deviceID]
	clientMutex.RUnlock()
	if !exists {
		return fmt.Errorf("screen %s not connected", deviceID)
	}

	token := client.Publish(displayTopic(deviceID), 1, false, message)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to send to screen %s: %w", deviceID, token.Error())
	}
	return nil
}

// Broadcast publishes a message to every connected screen. Failures
// are collected so one dead screen does not hide the rest.
func Broadcast(message []byte) error {
	clientMutex.RLock()
	defer clientMutex.RUnlock()

	var failures []string
	for deviceID, client := range screenClients {
		token := client.Publish(displayTopic(deviceID), 1, false, message)
		token.Wait()
		if token.Error() != nil {
			failures = append(failures, fmt.Sprintf("screen %s: %v", deviceID, token.Error()))
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("failed to reach some screens: %v", failures)
	}
	return nil
}

// DisconnectScreen drops a screen's client.
func DisconnectScreen(deviceID string) {
	clientMutex.Lock()
	defer clientMutex.Unlock()

	if client, exists := screenClients[deviceID]; exists {
		client.Disconnect(250)
		delete(screenClients, deviceID)
		log.Info().Str("device_id", deviceID).Msg("screen disconnected from MQTT")
	}
}

// Cleanup disconnects every screen client on shutdown.
func Cleanup() {
	clientMutex.Lock()
	defer clientMutex.Unlock()

	for deviceID, client := range screenClients {
		client.Disconnect(250)
		log.Info().Str("device_id", deviceID).Msg("disconnected screen")
	}
	screenClients = make(map[string]mqtt.Client)
}
