package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/XANi/go-yamlcfg"
	"github.com/XANi/goneric"
	"github.com/XANi/shm2mqtt/config"
	"github.com/XANi/shm2mqtt/descriptor"
	"github.com/XANi/shm2mqtt/emit"
	"github.com/XANi/shm2mqtt/entity"
	"github.com/XANi/shm2mqtt/queue"
	"github.com/XANi/shm2mqtt/sensors"
	"github.com/XANi/shm2mqtt/web"
	"github.com/efigence/go-mon"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version string
var log *zap.SugaredLogger
var debug = false

func init() {
	consoleEncoderConfig := zap.NewDevelopmentEncoderConfig()
	// naive systemd detection. Drop timestamp if running under it
	if os.Getenv("JOURNAL_STREAM") != "" {
		consoleEncoderConfig.TimeKey = ""
	}
	consoleEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(consoleEncoderConfig)
	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})
	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return (lvl < zapcore.ErrorLevel) != (lvl == zapcore.DebugLevel && !debug)
	})
	core := zapcore.NewTee(
		zapcore.NewCore(consoleEncoder, os.Stderr, lowPriority),
		zapcore.NewCore(consoleEncoder, os.Stderr, highPriority),
	)
	logger := zap.New(core)
	if debug {
		logger = logger.WithOptions(
			zap.Development(),
			zap.AddCaller(),
			zap.AddStacktrace(highPriority),
		)
	} else {
		logger = logger.WithOptions(
			zap.AddCaller(),
		)
	}
	log = logger.Sugar()
}

func main() {
	defer log.Sync()
	// register internal stats
	mon.RegisterGcStats()
	app := &cli.Command{
		Name:        "shm2mqtt",
		Usage:       "SMA Home Manager 2 MQTT sensors",
		Description: "generate sensor entity descriptions from YAML and bridge SHM2 MQTT telemetry",
		Version:     version,
	}
	app.Flags = []cli.Flag{
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "enable debug logs"},
	}
	app.Before = func(ctx context.Context, c *cli.Command) (context.Context, error) {
		debug = c.Bool("debug")
		log.Debug("debug enabled")
		return ctx, nil
	}
	app.Commands = []*cli.Command{
		{
			Name:    "generate",
			Aliases: []string{"g"},
			Usage:   "convert YAML sensor descriptors into entity description source code",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Value: "input_data.yaml", Usage: "YAML descriptor list"},
				&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "output.txt", Usage: "output file"},
				&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: string(emit.FormatGo), Usage: "output format: go, hass"},
				&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: string(emit.ModeOverwrite), Usage: "overwrite or append to output"},
				&cli.StringFlag{Name: "package", Usage: "write complete Go file in that package (go format only)"},
				&cli.StringFlag{Name: "var", Value: "Sensors", Usage: "name of generated variable (with --package)"},
			},
			Action: generate,
		},
		{
			Name:  "run",
			Usage: "subscribe to SHM2 topics and serve sensor state",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "config", Aliases: []string{"c"},
					Usage: "config file. Will be created if it does not exist",
				},
				&cli.StringFlag{
					Name:  "mqtt-addr",
					Value: "tcp://127.0.0.1:1883",
					Usage: "mqtt broker address, user and password can be passed in URL",
					Sources: cli.NewValueSourceChain(
						cli.EnvVar("MQTT_ADDR"),
					),
				},
				&cli.StringFlag{
					Name:  "mqtt-root",
					Value: "shm",
					Usage: "MQTT root topic",
					Sources: cli.NewValueSourceChain(
						cli.EnvVar("MQTT_ROOT"),
					),
				},
				&cli.StringFlag{
					Name:  "serial",
					Usage: "SHM2 serial number",
					Sources: cli.NewValueSourceChain(
						cli.EnvVar("SHM2_SERIAL"),
					),
				},
				&cli.StringFlag{
					Name:  "client-id",
					Value: "shm2mqtt-" + goneric.Must(os.Hostname()),
					Usage: "MQTT client ID",
				},
				&cli.StringFlag{Name: "descriptors", Usage: "YAML descriptor list, built-in SHM2 list if empty"},
				&cli.StringSliceFlag{Name: "enable", Usage: "keys of sensors to enable"},
				&cli.BoolFlag{Name: "enable-all", Usage: "enable all sensors"},
				&cli.StringFlag{Name: "discovery-prefix", Usage: "publish Home Assistant MQTT discovery under that prefix"},
				&cli.StringFlag{
					Name:  "listen-addr",
					Usage: "Listen addr",
					Sources: cli.NewValueSourceChain(
						cli.EnvVar("LISTEN_ADDR"),
					),
				},
				&cli.StringFlag{
					Name:  "pprof-addr",
					Value: "",
					Usage: "address to run pprof on, disabled by default",
				},
			},
			Action: run,
		},
		{
			Name:  "default-config",
			Usage: "print example config",
			Action: func(ctx context.Context, c *cli.Command) error {
				var cfg config.Config
				fmt.Print(cfg.GetDefaultConfig())
				return nil
			},
		},
	}
	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, c *cli.Command) error {
	mode, err := emit.ParseMode(c.String("mode"))
	if err != nil {
		return err
	}
	e, err := emit.New(emit.Config{
		Format:  emit.Format(c.String("format")),
		Package: c.String("package"),
		Var:     c.String("var"),
		Logger:  log.Named("emit"),
	})
	if err != nil {
		return err
	}
	n, err := e.GenerateFile(c.String("input"), c.String("output"), mode)
	if err != nil {
		return err
	}
	log.Infof("wrote %d descriptors from %s to %s (%s)", n, c.String("input"), c.String("output"), mode)
	return nil
}

func run(ctx context.Context, c *cli.Command) error {
	cfg := config.Config{
		MQTTAddress:     c.String("mqtt-addr"),
		MQTTRootTopic:   c.String("mqtt-root"),
		Serial:          c.String("serial"),
		DescriptorFile:  c.String("descriptors"),
		EnabledSensors:  c.StringSlice("enable"),
		EnableAll:       c.Bool("enable-all"),
		DiscoveryPrefix: c.String("discovery-prefix"),
		ListenAddress:   c.String("listen-addr"),
		Debug:           debug,
		PProfAddress:    c.String("pprof-addr"),
	}
	if path := c.String("config"); path != "" {
		created, err := cfg.WriteDefault(path)
		if err != nil {
			return err
		}
		if created {
			log.Infof("created default config in %s", path)
		}
		if err := yamlcfg.LoadConfig([]string{path}, &cfg); err != nil {
			return fmt.Errorf("error loading config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	debug = cfg.Debug
	log.Infof("Starting %s version: %s", c.Root().Name, version)

	descs := sensors.SHM2
	if cfg.DescriptorFile != "" {
		raws, err := descriptor.LoadFile(cfg.DescriptorFile)
		if err != nil {
			return err
		}
		descs, err = descriptor.MapAll(raws)
		if err != nil {
			return err
		}
	}
	registry := entity.NewRegistry(cfg.MQTTRootTopic, cfg.Serial)
	for _, d := range descs {
		e, err := registry.Add(d)
		if err != nil {
			return err
		}
		log.Debugf("sensor %s on %s", e.EntityID, e.Topic)
		if cfg.EnableAll {
			if err := registry.SetEnabled(d.Key, true); err != nil {
				return err
			}
		}
	}
	for _, k := range cfg.EnabledSensors {
		if err := registry.SetEnabled(k, true); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(cfg.PProfAddress) > 0 {
		log.Infof("listening pprof on %s", cfg.PProfAddress)
		go func() {
			log.Errorf("failed to start debug listener: %s (ignoring)", http.ListenAndServe(cfg.PProfAddress, nil))
		}()
	}
	metrics := web.NewMetrics(registry)
	_, err := queue.New(ctx, &queue.Config{
		MQTTAddr:        cfg.MQTTAddress,
		ClientID:        c.String("client-id"),
		Registry:        registry,
		Sinks:           []entity.Sink{registry, metrics},
		DiscoveryPrefix: cfg.DiscoveryPrefix,
		Logger:          log.Named("mq"),
		Debug:           debug,
	})
	if err != nil {
		return fmt.Errorf("error starting queue listener: %w", err)
	}
	if len(cfg.ListenAddress) == 0 {
		<-ctx.Done()
		return nil
	}
	w, err := web.New(web.Config{
		Logger:     log.Named("web"),
		ListenAddr: cfg.ListenAddress,
		Registry:   registry,
		Metrics:    metrics,
		Debug:      debug,
	})
	if err != nil {
		return fmt.Errorf("error starting web listener: %w", err)
	}
	return w.Run(ctx)
}
