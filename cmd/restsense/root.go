package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/restsense/config"
	"github.com/kbukum/restsense/logger"
)

const serviceName = "restsense"

// app is the state shared by the subcommands once flags and config are
// resolved.
type app struct {
	out    io.Writer
	errOut io.Writer

	configFile string
	envFile    string
	baseURL    string
	mediaType  string
	output     string
	timeout    time.Duration
	logLevel   string

	cfg *config.ServiceConfig
	log *logger.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   serviceName,
		Short: "Typed REST calls and semantically named HTTP results",
		Long: `restsense sends requests through the restsense HTTP client and prints
the decoded response, or serves a demo API rendering the named result types.

Configuration is read from restsense.yml or config.yml, then .env, then
RESTSENSE_* environment variables. Flags override all of them.`,
		SilenceUsage:      true,
		PersistentPreRunE: func(*cobra.Command, []string) error { return a.load() },
	}
	root.SetOut(out)
	root.SetErr(errOut)

	f := root.PersistentFlags()
	f.StringVar(&a.configFile, "config", "", "config file path")
	f.StringVar(&a.envFile, "env-file", "", ".env file path")
	f.StringVar(&a.baseURL, "base-url", "", "base URL requests are resolved against")
	f.StringVar(&a.mediaType, "media-type", "", "request body media type (default text/json)")
	f.StringVarP(&a.output, "output", "o", formatJSON, "output format: json, yaml or raw")
	f.DurationVar(&a.timeout, "timeout", 0, "request timeout (default 30s)")
	f.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newRequestCmd(a, "get"),
		newRequestCmd(a, "post"),
		newRequestCmd(a, "put"),
		newRequestCmd(a, "patch"),
		newRequestCmd(a, "delete"),
		newServeCmd(a),
		newVersionCmd(a),
	)
	return root
}

// load resolves the service config and applies flag overrides.
func (a *app) load() error {
	if err := checkFormat(a.output); err != nil {
		return err
	}

	cfg := &config.ServiceConfig{Name: serviceName}
	var opts []config.LoaderOption
	if a.configFile != "" {
		opts = append(opts, config.WithConfigFile(a.configFile))
	}
	if a.envFile != "" {
		opts = append(opts, config.WithEnvFile(a.envFile))
	}
	// Output owns stdout. Logs go to stderr and stay quiet by default.
	cfg.Logging.Level = "warn"

	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger.NewWithWriter(&cfg.Logging, a.errOut, cfg.Name)
	logger.Register(cfg.Client.Name, a.log.WithComponent("httpclient"))
	logger.Register("server", a.log.WithComponent("server"))
	return nil
}

// applyFlags re-applies flags so they win over file and environment values.
func (a *app) applyFlags(cfg *config.ServiceConfig) {
	if a.baseURL != "" {
		cfg.Client.BaseURL = a.baseURL
	}
	if a.mediaType != "" {
		cfg.Client.MediaType = a.mediaType
	}
	if a.timeout > 0 {
		cfg.Client.Timeout = a.timeout
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
}
