package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"awsmcp/internal/audit"
	"awsmcp/internal/config"
	awsmcp "awsmcp/internal/mcp"
)

type Options struct {
	ConfigPath string
	Adapter    string
	Region     string
	Profile    string
	ReadOnly   bool
	LogLevel   string
	Version    string
	Stderr     io.Writer
	Transport  sdkmcp.Transport
}

// Run serves one adapter's catalog over MCP stdio until the context is
// cancelled or the transport closes. SIGHUP reloads the config file
// and swaps the published tool set in place.
func Run(ctx context.Context, opts Options) error {
	errOut := opts.Stderr
	if errOut == nil {
		errOut = os.Stderr
	}
	configPath := opts.ConfigPath
	if configPath == "" {
		if env := os.Getenv("AWSMCP_CONFIG"); env != "" {
			configPath = env
		}
	}
	overrides := buildOverrides(opts)

	cfg, err := config.Load(configPath, overrides)
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	log := newLogger(errOut, cfg.LogLevel)

	dispatcher, err := buildRuntime(ctx, cfg, errOut)
	if err != nil {
		return fmt.Errorf("init failed: %w", err)
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "awsmcp-" + cfg.Adapter, Version: opts.Version}, nil)
	toolNames, err := awsmcp.RegisterSDKTools(server, dispatcher)
	if err != nil {
		return fmt.Errorf("tool registration failed: %w", err)
	}
	log.WithFields(logrus.Fields{
		"adapter":   cfg.Adapter,
		"region":    cfg.Region,
		"read_only": cfg.ReadOnly,
		"tools":     len(toolNames),
	}).Info("adapter ready")

	reloadCh := make(chan os.Signal, 1)
	signal.Notify(reloadCh, syscall.SIGHUP)
	go func() {
		for range reloadCh {
			cfg, err := config.Load(configPath, overrides)
			if err != nil {
				log.WithError(err).Error("config reload failed")
				continue
			}
			dispatcher, err := buildRuntime(ctx, cfg, errOut)
			if err != nil {
				log.WithError(err).Error("reload init failed")
				continue
			}
			if len(toolNames) > 0 {
				server.RemoveTools(toolNames...)
			}
			toolNames, err = awsmcp.RegisterSDKTools(server, dispatcher)
			if err != nil {
				log.WithError(err).Error("tool registration failed")
				continue
			}
			log.WithField("tools", len(toolNames)).Info("adapter reloaded")
		}
	}()

	transport := opts.Transport
	if transport == nil {
		transport = &sdkmcp.StdioTransport{}
	}
	if err := server.Run(ctx, transport); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	log.Info("adapter stopped")
	return nil
}

// Catalog writes the selected adapter's tool list as JSON without
// starting a transport. Validation schemas are included so callers can
// inspect argument shapes offline.
func Catalog(ctx context.Context, opts Options, out io.Writer) error {
	configPath := opts.ConfigPath
	if configPath == "" {
		if env := os.Getenv("AWSMCP_CONFIG"); env != "" {
			configPath = env
		}
	}
	cfg, err := config.Load(configPath, buildOverrides(opts))
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	errOut := opts.Stderr
	if errOut == nil {
		errOut = io.Discard
	}
	dispatcher, err := buildRuntime(ctx, cfg, errOut)
	if err != nil {
		return fmt.Errorf("init failed: %w", err)
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(map[string]any{
		"adapter": cfg.Adapter,
		"tools":   dispatcher.Registry().List(),
	})
}

func buildOverrides(opts Options) config.Overrides {
	overrides := config.Overrides{}
	if opts.Adapter != "" {
		overrides.Adapter = &opts.Adapter
	}
	if opts.Region != "" {
		overrides.Region = &opts.Region
	}
	if opts.Profile != "" {
		overrides.Profile = &opts.Profile
	}
	if opts.ReadOnly {
		overrides.ReadOnly = &opts.ReadOnly
	}
	if opts.LogLevel != "" {
		overrides.LogLevel = &opts.LogLevel
	}
	return overrides
}

func buildRuntime(ctx context.Context, cfg config.Config, errOut io.Writer) (*awsmcp.Dispatcher, error) {
	factory, ok := awsmcp.AdapterFactoryFor(cfg.Adapter)
	if !ok {
		return nil, fmt.Errorf("unknown adapter: %s (registered: %v)", cfg.Adapter, awsmcp.RegisteredAdapters())
	}
	adapter := factory()
	if err := adapter.Init(ctx, &cfg); err != nil {
		return nil, err
	}
	reg := awsmcp.NewRegistry(&cfg)
	if err := adapter.Register(reg); err != nil {
		return nil, err
	}
	return awsmcp.NewDispatcher(reg, &cfg, audit.NewLogger(errOut)), nil
}

func newLogger(out io.Writer, level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: false})
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	return log
}
