// internal/config/validate.go
package config

import (
	"fmt"
)

// Validate checks configuration correctness. It performs declarative
// validation only and MUST NOT mutate configuration. Any error here is
// fatal: the process refuses to start on an invalid configuration.
func Validate(cfg *Config) error {
	// ------------------------------------------------------------
	// SOURCE DEVICE
	// ------------------------------------------------------------

	if cfg.Device.Host == "" {
		return fmt.Errorf("device: host required")
	}
	if cfg.Device.Port < 1 || cfg.Device.Port > 65535 {
		return fmt.Errorf("device: port %d out of range", cfg.Device.Port)
	}
	if cfg.Device.Modules < 1 {
		return fmt.Errorf("device: modules must be >= 1, got %d", cfg.Device.Modules)
	}
	if cfg.Device.TimeoutMs <= 0 {
		return fmt.Errorf("device: timeout_ms must be > 0, got %d", cfg.Device.TimeoutMs)
	}
	if cfg.Device.Name == "" {
		return fmt.Errorf("device: name required")
	}

	// The full read must stay a single Modbus transaction.
	totalWords := cfg.Layout.WordsPerModule * cfg.Device.Modules
	if totalWords > 125 {
		return fmt.Errorf(
			"device: %d modules of %d words exceed the 125-register read limit",
			cfg.Device.Modules, cfg.Layout.WordsPerModule,
		)
	}
	if int(cfg.Device.BaseAddress)+totalWords > 65536 {
		return fmt.Errorf(
			"device: base_address %d plus %d words exceeds the register address space",
			cfg.Device.BaseAddress, totalWords,
		)
	}

	// ------------------------------------------------------------
	// MESSAGE TRANSPORT
	// ------------------------------------------------------------

	if cfg.MQTT.Broker == "" {
		return fmt.Errorf("mqtt: broker required")
	}
	if cfg.MQTT.Port < 1 || cfg.MQTT.Port > 65535 {
		return fmt.Errorf("mqtt: port %d out of range", cfg.MQTT.Port)
	}
	if cfg.MQTT.Topic == "" {
		return fmt.Errorf("mqtt: topic required")
	}
	if cfg.MQTT.QoS != nil && *cfg.MQTT.QoS > 2 {
		return fmt.Errorf("mqtt: qos must be 0, 1 or 2, got %d", *cfg.MQTT.QoS)
	}
	if cfg.MQTT.QueueSize < 1 {
		return fmt.Errorf("mqtt: queue_size must be >= 1, got %d", cfg.MQTT.QueueSize)
	}
	if cfg.MQTT.GraceMs < 0 {
		return fmt.Errorf("mqtt: shutdown_grace_ms must be >= 0, got %d", cfg.MQTT.GraceMs)
	}

	// ------------------------------------------------------------
	// POLL
	// ------------------------------------------------------------

	if cfg.Poll.IntervalMs <= 0 {
		return fmt.Errorf("poll: interval_ms must be > 0, got %d", cfg.Poll.IntervalMs)
	}

	// ------------------------------------------------------------
	// REGISTER LAYOUT
	// ------------------------------------------------------------

	if err := cfg.Layout.Validate(); err != nil {
		return err
	}

	return nil
}
