// internal/publish/mqtt/client.go
package mqtt

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
)

// Client wraps the paho MQTT client behind publish.Transport. Connection
// lifecycle (connect, reconnect, keepalive) stays entirely inside paho;
// callers only publish.
type Client struct {
	cli     mqtt.Client
	qos     byte
	timeout time.Duration
}

type Config struct {
	Broker   string // host:port
	ClientID string
	Username string
	Password string
	QoS      byte
	Timeout  time.Duration
}

// New creates the client. No network activity happens until Connect.
func New(cfg Config, log zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	opts := mqtt.NewClientOptions().
		AddBroker("tcp://" + cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetOrderMatters(false)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	opts.OnConnect = func(mqtt.Client) {
		log.Info().Str("broker", cfg.Broker).Msg("connected to MQTT broker")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Error().Err(err).Str("broker", cfg.Broker).Msg("connection to MQTT broker lost")
	}
	opts.OnReconnecting = func(_ mqtt.Client, _ *mqtt.ClientOptions) {
		log.Info().Str("broker", cfg.Broker).Msg("reconnecting to MQTT broker")
	}

	return &Client{
		cli:     mqtt.NewClient(opts),
		qos:     cfg.QoS,
		timeout: cfg.Timeout,
	}
}

// Connect starts the connection attempt. With connect-retry enabled an
// unreachable broker is not fatal: paho keeps retrying in the background
// and this returns nil once the attempt is underway.
func (c *Client) Connect() error {
	token := c.cli.Connect()
	if !token.WaitTimeout(c.timeout) {
		return nil
	}
	return token.Error()
}

// Publish delivers one payload. It is called from the pipeline's worker
// goroutine, so waiting for the broker acknowledgement here is fine.
func (c *Client) Publish(topic string, payload []byte) error {
	token := c.cli.Publish(topic, c.qos, false, payload)
	if !token.WaitTimeout(c.timeout) {
		return fmt.Errorf("mqtt: no acknowledgement within %s", c.timeout)
	}
	return token.Error()
}

// Disconnect flushes in-flight messages and closes the connection.
func (c *Client) Disconnect() {
	c.cli.Disconnect(250)
}
