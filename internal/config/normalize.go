// internal/config/normalize.go
package config

// Normalize fills in defaults for everything the file or the flags left
// unset. It is allowed to mutate configuration and MUST be called before
// Validate(), so that validation sees the effective values.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// ---- source device ----
	if cfg.Device.Host == "" {
		cfg.Device.Host = "localhost"
	}
	if cfg.Device.Port == 0 {
		cfg.Device.Port = 502
	}
	if cfg.Device.Modules == 0 {
		cfg.Device.Modules = 1
	}
	if cfg.Device.TimeoutMs == 0 {
		cfg.Device.TimeoutMs = 2000
	}
	if cfg.Device.Name == "" {
		cfg.Device.Name = "plc"
	}

	// ---- message transport ----
	if cfg.MQTT.Broker == "" {
		cfg.MQTT.Broker = "localhost"
	}
	if cfg.MQTT.Port == 0 {
		cfg.MQTT.Port = 1883
	}
	if cfg.MQTT.Topic == "" {
		cfg.MQTT.Topic = "modbus-mqtt/" + cfg.Device.Name
	}
	if cfg.MQTT.QoS == nil {
		qos := uint8(2)
		cfg.MQTT.QoS = &qos
	}
	if cfg.MQTT.QueueSize == 0 {
		cfg.MQTT.QueueSize = 16
	}
	if cfg.MQTT.GraceMs == 0 {
		cfg.MQTT.GraceMs = 5000
	}

	// ---- poll ----
	if cfg.Poll.IntervalMs == 0 {
		cfg.Poll.IntervalMs = 5000
	}

	// ---- logging ----
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Dir == "" {
		cfg.Log.Dir = "logs"
	}

	// ---- layout ----
	// A field without an explicit count is a single value.
	for i := range cfg.Layout.Fields {
		if cfg.Layout.Fields[i].Count == 0 {
			cfg.Layout.Fields[i].Count = 1
		}
	}
}
