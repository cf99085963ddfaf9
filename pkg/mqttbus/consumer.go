package mqttbus

import (
	"context"
	"strings"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/LeonardoBeccarini/printer_monitor/pkg/log"
)

// Handler processes one message received on topic.
type Handler func(topic string, message mqtt.Message) error

// Consumer subscribes a single topic and hands messages to its handler.
type Consumer struct {
	client  mqtt.Client
	handler Handler
	topic   string
	logger  log.Logger
}

func NewConsumer(client mqtt.Client, topic string, handler Handler, logger log.Logger) *Consumer {
	return &Consumer{
		client:  client,
		topic:   topic,
		handler: handler,
		logger:  logger,
	}
}

// presence announcements must not be lost; sensor data is replaced every few seconds anyway.
func qosFor(topic string) byte {
	if strings.HasSuffix(strings.TrimSpace(topic), "/presence") {
		return 1
	}
	return 0
}

// ConsumeMessage subscribes to the topic and blocks until ctx is cancelled.
func (c *Consumer) ConsumeMessage(ctx context.Context) {
	token := c.client.Subscribe(
		c.topic,
		qosFor(c.topic),
		func(_ mqtt.Client, message mqtt.Message) {
			if c.handler == nil {
				c.logger.Warnf("no handler set for topic %s", c.topic)
				return
			}
			if err := c.handler(c.topic, message); err != nil {
				c.logger.Warnf("error handling message on %s: %v", message.Topic(), err)
			}
		},
	)
	if token.Wait() && token.Error() != nil {
		c.logger.Errorf("error subscribing to topic %s: %v", c.topic, token.Error())
		return
	}

	c.logger.Infof("subscribed to topic %s", c.topic)

	<-ctx.Done()

	if c.client.IsConnected() {
		c.client.Unsubscribe(c.topic).Wait()
	}
}
