package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

type mqttPublisher interface {
	Publish(topic string, qos byte, retained bool, payload []byte) error
}

// DisplayNotifier pushes booking events to venue displays over MQTT.
// Account messages are skipped since they carry personal links.
type DisplayNotifier struct {
	client      mqttPublisher
	topicPrefix string
}

func NewDisplayNotifier(client mqttPublisher, topicPrefix string) *DisplayNotifier {
	return &DisplayNotifier{client: client, topicPrefix: strings.TrimSuffix(topicPrefix, "/")}
}

type displayEvent struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data,omitempty"`
}

func (n *DisplayNotifier) Notify(ctx context.Context, msg Message) error {
	if !strings.HasPrefix(msg.Event, "booking.") {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(displayEvent{Event: msg.Event, Data: msg.Data})
	if err != nil {
		return err
	}

	topic := n.Topic(msg)
	if err := n.client.Publish(topic, 1, false, payload); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

// Topic is <prefix>/turfs/<turfId>/<event path>, or <prefix>/<event path>
// when the message names no turf.
func (n *DisplayNotifier) Topic(msg Message) string {
	path := strings.ReplaceAll(msg.Event, ".", "/")
	if turfID, ok := msg.Data["turfId"].(string); ok && turfID != "" {
		return fmt.Sprintf("%s/turfs/%s/%s", n.topicPrefix, turfID, path)
	}
	return n.topicPrefix + "/" + path
}
