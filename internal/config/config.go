// internal/config/config.go
package config

import (
	"github.com/p-conrad/modbus-mqtt-adapter/internal/layout"
)

type Config struct {
	Device DeviceConfig  `yaml:"device"`
	MQTT   MQTTConfig    `yaml:"mqtt"`
	Poll   PollConfig    `yaml:"poll"`
	Log    LogConfig     `yaml:"log"`
	Layout layout.Layout `yaml:"layout"`
}

// ---- SOURCE DEVICE ----

type DeviceConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	UnitID      uint8  `yaml:"unit_id"`
	BaseAddress uint16 `yaml:"base_address"`
	Modules     int    `yaml:"modules"`
	TimeoutMs   int    `yaml:"timeout_ms"`

	// Name identifies the device in the published dataset and in the
	// MQTT client ID.
	Name string `yaml:"name"`
}

// ---- MESSAGE TRANSPORT ----

type MQTTConfig struct {
	Broker   string `yaml:"broker"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Topic    string `yaml:"topic"`

	// QoS is a pointer so that an explicit 0 survives defaulting.
	QoS *uint8 `yaml:"qos"`

	// QueueSize bounds the handoff queue between the acquisition loop
	// and the publish worker. On overflow the oldest message is dropped.
	QueueSize int `yaml:"queue_size"`

	// GraceMs bounds the flush of queued messages on shutdown.
	GraceMs int `yaml:"shutdown_grace_ms"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// ---- LOGGING ----

type LogConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}
