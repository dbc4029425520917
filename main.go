package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/aboutface/aboutface"
	"github.com/matt-g-everett/aboutface/api"
	"github.com/matt-g-everett/aboutface/settings"
	"github.com/matt-g-everett/aboutface/stream"
	"gopkg.in/yaml.v2"
)

// Config is the simulator configuration.
type Config struct {
	LogLevel     string        `yaml:"logLevel"`
	SettingsPath string        `yaml:"settingsPath"`
	Address      string        `yaml:"address"`
	FrameRate    float64       `yaml:"frameRate"`
	MoveMs       float64       `yaml:"moveMs"`
	Mqtt         stream.Config `yaml:"mqtt"`
	Scene        SceneConfig   `yaml:"scene"`
}

// SceneConfig describes the scene loaded at start-up.
type SceneConfig struct {
	ID       string        `yaml:"id"`
	Name     string        `yaml:"name"`
	GridSize float64       `yaml:"gridSize"`
	Enabled  *bool         `yaml:"enabled"`
	Tokens   []TokenConfig `yaml:"tokens"`
}

// TokenConfig describes one token placed on the start-up scene.
type TokenConfig struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	Disposition int     `yaml:"disposition"`
	Controlled  bool    `yaml:"controlled"`
}

func defaultConfig() Config {
	return Config{
		LogLevel:     "info",
		SettingsPath: "settings.toml",
		Address:      ":3000",
		FrameRate:    30,
		MoveMs:       400,
	}
}

func readConfig(configPath string) (Config, error) {
	c := defaultConfig()
	f, err := os.Open(configPath)
	if err != nil {
		return c, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(&c)
	return c, err
}

func parseLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unrecognized log level: %q", level)
	}
}

func connectMqtt(log *slog.Logger, conf stream.Config) (mqtt.Client, error) {
	clientID := conf.ClientID
	if clientID == "" {
		clientID = settings.ModuleID
	}
	options := mqtt.NewClientOptions().
		AddBroker(conf.URL).
		SetClientID(clientID).
		SetUsername(conf.Username).
		SetPassword(conf.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(func(mqtt.Client) {
			log.Info("mqtt connected", "broker", conf.URL)
		})
	client := mqtt.NewClient(options)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return client, nil
}

func main() {
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	flag.Parse()

	conf, err := readConfig(*configPath)
	if err != nil {
		panic(err)
	}
	level, err := parseLogLevel(conf.LogLevel)
	if err != nil {
		panic(err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	logger.Debug("config loaded", "config", fmt.Sprintf("%+v", conf))

	store := settings.NewStore(logger, conf.SettingsPath)
	if err = store.Load(); err != nil {
		panic(err)
	}

	a := newApp(logger, conf, store)
	module := aboutface.New(logger, store)
	if err = a.start(module); err != nil {
		panic(err)
	}
	defer a.stop()

	if conf.Mqtt.URL != "" {
		client, err := connectMqtt(logger, conf.Mqtt)
		if err != nil {
			panic(err)
		}
		defer client.Disconnect(250)
		a.streamer = stream.NewStreamer(logger, conf.Mqtt, client)
	}

	server := api.NewApi(logger, module, a.bindings, a, &a.mu)
	go func() {
		if err := server.Serve(conf.Address); err != nil {
			logger.Error("api stopped", "error", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	a.run(ctx)
	logger.Info("shutting down")
}
