package common

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"charlesfind/safaritracker/internal/config"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// AlertPublisher broadcasts an urgent alert to field devices
type AlertPublisher interface {
	Publish(ctx context.Context, item *UrgentAlertItem) error
}

// MQTTPublisher publishes alerts as JSON on a fixed topic
type MQTTPublisher struct {
	client mqtt.Client
	topic  string
	qos    byte
	logger *zap.Logger
}

var _ AlertPublisher = (*MQTTPublisher)(nil)

// NewMQTTPublisher connects to the broker. Paho reconnects on its own
// after the first successful connection.
func NewMQTTPublisher(cfg config.MQTTConfig, topic string, logger *zap.Logger) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			logger.Warn("MQTT connection lost", zap.Error(err))
		}).
		SetOnConnectHandler(func(_ mqtt.Client) {
			logger.Info("MQTT connected", zap.String("broker", cfg.Broker))
		})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect to %s timed out", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %w", cfg.Broker, err)
	}

	return newMQTTPublisher(client, topic, cfg.QoS, logger), nil
}

func newMQTTPublisher(client mqtt.Client, topic string, qos byte, logger *zap.Logger) *MQTTPublisher {
	return &MQTTPublisher{
		client: client,
		topic:  topic,
		qos:    qos,
		logger: logger,
	}
}

func (p *MQTTPublisher) Publish(ctx context.Context, item *UrgentAlertItem) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	token := p.client.Publish(p.topic, p.qos, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published urgent alert",
		zap.String("topic", p.topic),
		zap.String("sighting_id", item.SightingID),
	)
	return nil
}

// Close disconnects, letting in-flight publishes finish
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}

// LogPublisher stands in for MQTT when no broker is configured
type LogPublisher struct {
	logger *zap.Logger
}

var _ AlertPublisher = (*LogPublisher)(nil)

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, item *UrgentAlertItem) error {
	p.logger.Warn("Urgent sighting",
		zap.String("sighting_id", item.SightingID),
		zap.String("species", item.Species),
		zap.String("reporter", item.Reporter),
		zap.Time("observed_at", item.ObservedAt),
	)
	return nil
}
