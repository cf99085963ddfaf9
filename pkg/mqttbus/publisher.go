package mqttbus

import (
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/LeonardoBeccarini/printer_monitor/pkg/log"
)

const defaultPublishTimeout = 500 * time.Millisecond

// Publisher publishes under a common topic prefix, e.g. "mqtt" turns
// "sensor" into "mqtt/sensor".
type Publisher struct {
	client  mqtt.Client
	prefix  string
	timeout time.Duration
	logger  log.Logger
}

func NewPublisher(client mqtt.Client, prefix string, logger log.Logger) *Publisher {
	return &Publisher{
		client:  client,
		prefix:  strings.Trim(strings.TrimSpace(prefix), "/"),
		timeout: defaultPublishTimeout,
		logger:  logger,
	}
}

// Topic returns the full topic for a suffix.
func (p *Publisher) Topic(suffix string) string {
	return JoinTopic(p.prefix, suffix)
}

// Publish is fire-and-forget at QoS 0. It waits at most the publish
// timeout so a stalled broker never holds the caller.
func (p *Publisher) Publish(topic, payload string) {
	if err := p.PublishMessage(topic, 0, false, []byte(payload)); err != nil {
		p.logger.Warnf("publish on %s: %v", p.Topic(topic), err)
	}
}

// PublishMessage publishes payload on the prefixed topic and reports the outcome.
func (p *Publisher) PublishMessage(topic string, qos byte, retained bool, payload []byte) error {
	full := p.Topic(topic)
	token := p.client.Publish(full, qos, retained, payload)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("publish on %s timed out after %s", full, p.timeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	p.logger.Debugf("published %d bytes to %s", len(payload), full)
	return nil
}

// JoinTopic joins a prefix and a suffix with a single separator.
func JoinTopic(prefix, suffix string) string {
	prefix = strings.Trim(prefix, "/")
	suffix = strings.Trim(suffix, "/")
	switch {
	case prefix == "":
		return suffix
	case suffix == "":
		return prefix
	}
	return prefix + "/" + suffix
}
