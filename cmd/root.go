// Package cmd implements the mac2switchport command line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"

	"mac2switchport/pkg/akips"
	"mac2switchport/pkg/config"
	"mac2switchport/pkg/filters"
	"mac2switchport/pkg/logger"

	"github.com/spf13/cobra"
)

// Version information injected at build time via ldflags.
// Build with: go build -ldflags "-X mac2switchport/cmd.Version=1.0.0 -X mac2switchport/cmd.Commit=<git-sha> -X mac2switchport/cmd.BuildTime=<timestamp>"
var (
	Version   = "dev"     // Version set at build time
	Commit    = "unknown" // Git commit SHA set at build time
	BuildTime = "unknown" // Build timestamp set at build time
)

// rootOptions holds the flag values of one invocation.
type rootOptions struct {
	cfgFile  string
	mac      string
	raw      bool
	debug    bool
	criteria filters.Criteria
	format   string
	logLevel string
	logFile  string
}

// newRootCmd builds the root command. Each call returns a fresh instance so
// test invocations do not share flag state.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "mac2switchport",
		Short: "Resolve MAC addresses to switch ports via the AKIPS Switch Port Mapper",
		Long: `mac2switchport queries the AKIPS Switch Port Mapper API for the switch,
port, VLAN, IP address, and vendor associated with a MAC address.

With --mac, a single address is resolved and printed as pretty JSON. With no
arguments at all, addresses are read from stdin: bare lines, JSON objects
{"mac": [...]}, or JSON arrays [{"mac": "..."}].

Requires AKIPS_URL and AKIPS_API_RO_PASSWORD in the environment or a .env
file. Set AKIPS_CERT to the server's CA chain to enable certificate
verification.`,
		Version: Version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.mac, "mac", "", "MAC address to query. Supports 11:22:33:44:55:66, 1122.3344.5566, 11-22-33-44-55-66")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Output raw results from the API")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Run and show debugging information")
	cmd.Flags().StringVar(&opts.criteria.Switch, "switch", "", "Filter results by switch name (case-insensitive substring)")
	cmd.Flags().StringVar(&opts.criteria.Port, "port", "", "Filter results by port name/number")
	cmd.Flags().StringVar(&opts.criteria.VLAN, "vlan", "", "Filter results by VLAN name or number")
	cmd.Flags().StringVar(&opts.format, "format", "json", "Output format: json, csv, table")
	cmd.Flags().StringVar(&opts.cfgFile, "config", "", "Config file (default is $HOME/.mac2switchport.yaml)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: DEBUG, INFO, WARNING, ERROR")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Log file path")
	cmd.SetVersionTemplate(fmt.Sprintf(
		"mac2switchport version {{.Version}}\n  Commit:     %s\n  Build Time: %s\n", Commit, BuildTime))

	return cmd
}

// Execute runs the root command once.
func Execute() error {
	return newRootCmd().Execute()
}

func run(cmd *cobra.Command, opts *rootOptions) error {
	// No flags at all means queries arrive on stdin.
	streaming := cmd.Flags().NFlag() == 0

	if !streaming && opts.mac == "" {
		return errors.New("--mac is required when any flag is given")
	}
	switch opts.format {
	case "json", "csv", "table":
	default:
		return fmt.Errorf("--format must be one of: json, csv, table (got %q)", opts.format)
	}

	// Past flag validation; later failures are not usage errors.
	cmd.SilenceUsage = true

	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.logFile != "" {
		cfg.LogFile = opts.logFile
	}

	level := logger.ParseLogLevel(cfg.LogLevel)
	if opts.debug {
		level = logger.LevelDebug
	}
	log := logger.New(cfg.LogFile, level)

	if cfg.CACert == "" {
		log.Warnf("AKIPS_CERT is not set, TLS certificate verification is disabled")
	}

	client, err := akips.NewClient(cfg.BaseURL, cfg.Password, cfg.CACert, cfg.Timeout)
	if err != nil {
		return err
	}
	log.Infof("using AKIPS server %s (timeout %s)", cfg.BaseURL, cfg.Timeout)

	ctx := context.Background()
	if streaming {
		return runStream(ctx, client, log, cmd.InOrStdin(), cmd.OutOrStdout())
	}
	return runLookup(ctx, client, log, cmd.OutOrStdout(), opts)
}
