// cmd/adapter/main.go
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/p-conrad/modbus-mqtt-adapter/internal/config"
	"github.com/p-conrad/modbus-mqtt-adapter/internal/logging"
	"github.com/p-conrad/modbus-mqtt-adapter/internal/poller"
	"github.com/p-conrad/modbus-mqtt-adapter/internal/publish"
	pmqtt "github.com/p-conrad/modbus-mqtt-adapter/internal/publish/mqtt"
)

var flags struct {
	configPath string

	source     string
	sourcePort int
	target     string
	targetPort int
	username   string
	password   string
	modules    int
	baseAddr   uint16
	interval   float64
	device     string
	topic      string
	logLevel   string
	logDir     string
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adapter",
		Short: "Reads PLC data points over Modbus/TCP and republishes them to an MQTT broker",
		Args:  cobra.NoArgs,
		RunE:  run,

		SilenceUsage: true,
	}

	f := cmd.Flags()
	f.StringVarP(&flags.configPath, "config", "c", "", "path to the YAML configuration file (required)")
	f.StringVarP(&flags.source, "source", "s", "", "address of the PLC to connect to")
	f.IntVar(&flags.sourcePort, "source-port", 0, "port under which to connect to the PLC")
	f.StringVarP(&flags.target, "target", "t", "", "address of the target MQTT broker")
	f.IntVar(&flags.targetPort, "target-port", 0, "port under which to connect to the MQTT broker")
	f.StringVarP(&flags.username, "username", "U", "", "username for the MQTT broker")
	f.StringVarP(&flags.password, "password", "P", "", "password for the MQTT broker")
	f.IntVarP(&flags.modules, "modules", "n", 0, "number of modules to read from on the bus")
	f.Uint16VarP(&flags.baseAddr, "base-address", "b", 0, "starting address of the PLC input registers")
	f.Float64VarP(&flags.interval, "interval", "i", 0, "poll interval in seconds")
	f.StringVarP(&flags.device, "device", "d", "", "name of the PLC device the data is read from")
	f.StringVar(&flags.topic, "topic", "", "MQTT topic to publish to")
	f.StringVarP(&flags.logLevel, "log-level", "l", "", "log level (debug, info, warn, error)")
	f.StringVar(&flags.logDir, "log-dir", "", "directory for the rotating log file")

	cobra.CheckErr(cmd.MarkFlagRequired("config"))

	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}

	applyFlags(cmd, cfg)
	config.Normalize(cfg)

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	fmt.Println("=== Modbus MQTT Adapter ===")
	fmt.Printf("Data Source  : %s:%d\n", cfg.Device.Host, cfg.Device.Port)
	fmt.Printf("MQTT Broker  : %s:%d\n", cfg.MQTT.Broker, cfg.MQTT.Port)
	fmt.Printf("MQTT Topic   : %s\n", cfg.MQTT.Topic)
	fmt.Printf("# of Modules : %d\n", cfg.Device.Modules)
	fmt.Printf("Base Address : %d\n", cfg.Device.BaseAddress)
	fmt.Printf("Poll Interval: %gs\n", float64(cfg.Poll.IntervalMs)/1000)
	fmt.Println("")

	log, err := logging.Setup(cfg.Log.Level, cfg.Log.Dir)
	if err != nil {
		return err
	}
	log.Info().Str("device", cfg.Device.Name).Msg("interface started")

	// --------------------
	// Publish leg (MQTT transport + handoff pipeline)
	// --------------------

	transport := pmqtt.New(pmqtt.Config{
		Broker:   fmt.Sprintf("%s:%d", cfg.MQTT.Broker, cfg.MQTT.Port),
		ClientID: "MQTT-" + cfg.Device.Name,
		Username: cfg.MQTT.Username,
		Password: cfg.MQTT.Password,
		QoS:      *cfg.MQTT.QoS,
	}, log)

	if err := transport.Connect(); err != nil {
		// Not fatal: paho keeps retrying in the background.
		log.Error().Err(err).Msg("initial MQTT connection failed")
	}

	pipeline := publish.New(publish.Config{
		Topic:     cfg.MQTT.Topic,
		QueueSize: cfg.MQTT.QueueSize,
		Grace:     time.Duration(cfg.MQTT.GraceMs) * time.Millisecond,
	}, transport, log)

	// --------------------
	// Acquisition leg
	// --------------------

	p, closeClient, err := poller.Build(cfg, pipeline, log)
	if err != nil {
		return fmt.Errorf("poller build failed: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p.Run(ctx)

	// --------------------
	// Ordered shutdown: loop stopped, flush the queue, then disconnect
	// --------------------

	log.Info().Msg("shutdown signal received, flushing publish queue")
	pipeline.Close()
	transport.Disconnect()
	if err := closeClient(); err != nil {
		log.Warn().Err(err).Msg("modbus client close failed")
	}
	log.Info().Msg("shutdown complete")

	return nil
}

// applyFlags overrides file configuration with any flag the user set.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()

	if f.Changed("source") {
		cfg.Device.Host = flags.source
	}
	if f.Changed("source-port") {
		cfg.Device.Port = flags.sourcePort
	}
	if f.Changed("target") {
		cfg.MQTT.Broker = flags.target
	}
	if f.Changed("target-port") {
		cfg.MQTT.Port = flags.targetPort
	}
	if f.Changed("username") {
		cfg.MQTT.Username = flags.username
	}
	if f.Changed("password") {
		cfg.MQTT.Password = flags.password
	}
	if f.Changed("modules") {
		cfg.Device.Modules = flags.modules
	}
	if f.Changed("base-address") {
		cfg.Device.BaseAddress = flags.baseAddr
	}
	if f.Changed("interval") {
		cfg.Poll.IntervalMs = int(flags.interval * 1000)
	}
	if f.Changed("device") {
		cfg.Device.Name = flags.device
	}
	if f.Changed("topic") {
		cfg.MQTT.Topic = flags.topic
	}
	if f.Changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if f.Changed("log-dir") {
		cfg.Log.Dir = flags.logDir
	}
}
