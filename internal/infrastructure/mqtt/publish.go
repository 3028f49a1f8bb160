package mqtt

import (
	"encoding/json"
	"fmt"
	"time"
)

// ImportResult is the payload published for each processed file.
type ImportResult struct {
	File      string    `json:"file"`
	Outcome   string    `json:"outcome"` // "imported" or "failed"
	Points    int       `json:"points"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// PublishResult publishes one file outcome to the result topic.
//
// The message is retained so dashboards joining later still see the most
// recent import. Publishing is best-effort from the pipeline's point of
// view; a returned error is logged by the caller, never fails the file.
//
// Parameters:
//   - result: Outcome of one processed file; Timestamp is filled in when zero
//
// Returns:
//   - error: ErrNotConnected, or ErrPublishFailed wrapping the transport error
func (c *Client) PublishResult(result ImportResult) error {
	if result.Timestamp.IsZero() {
		result.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("%w: marshalling result: %w", ErrPublishFailed, err)
	}

	return c.publish(resultTopic, payload, byte(c.cfg.QoS), true)
}

// publish sends a message to the specified topic with ack timeout.
func (c *Client) publish(topic string, payload []byte, qos byte, retained bool) error {
	if qos > maxQoS {
		return ErrInvalidQoS
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}

	token := c.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return nil
}
