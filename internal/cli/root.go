// Package cli owns the smcctl command surface.
//
// Ownership boundary:
// - subcommand wiring and flag parsing
// - hex payload parsing at the tool boundary
// - rendering of values, metadata, and errors
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/danmuck/smcctl/internal/config"
	"github.com/danmuck/smcctl/internal/iokit"
	"github.com/danmuck/smcctl/internal/logging"
	"github.com/danmuck/smcctl/internal/smc"
)

// RootOptions holds global flags and the engine factory shared by all
// commands. Tests swap OpenEngine for a simulated channel.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
	Raw        bool

	OpenEngine func() (*smc.Client, error)
}

// NewRootCommand builds the smcctl command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(openPlatformEngine)
}

func openPlatformEngine() (*smc.Client, error) {
	conn, err := iokit.Open()
	if err != nil {
		return nil, err
	}
	return smc.NewClient(conn), nil
}

func newRootCommand(open func() (*smc.Client, error)) *cobra.Command {
	opts := &RootOptions{OpenEngine: open}

	cmd := &cobra.Command{
		Use:           "smcctl",
		Short:         "Query and mutate SMC keys",
		Long:          "smcctl reads, writes, and enumerates the named registers of the system management controller.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a smcctl.toml config file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	cmd.PersistentFlags().BoolVar(&opts.Raw, "raw", false, "print raw bytes only, no decoded values")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewReadCommand(opts))
	cmd.AddCommand(NewWriteCommand(opts))
	cmd.AddCommand(NewInfoCommand(opts))
	cmd.AddCommand(NewCountCommand(opts))

	return cmd
}

func setup(opts *RootOptions) error {
	logging.ConfigureRuntime()

	if opts.ConfigPath != "" {
		cfg, err := config.Load(opts.ConfigPath)
		if err != nil {
			return err
		}
		logging.Reconfigure(loggerConfig(cfg))
		if cfg.Raw {
			opts.Raw = true
		}
	}
	if opts.Verbose {
		logging.SetLevel(zerolog.DebugLevel)
	}
	return nil
}

// loggerConfig maps the file settings onto a full logger config.
func loggerConfig(cfg config.Config) logging.Config {
	lc := logging.Config{
		Level:     zerolog.WarnLevel,
		Timestamp: cfg.LogTimestamp,
		NoColor:   cfg.NoColor,
	}
	if lvl, ok := logging.ParseLevel(cfg.LogLevel); ok {
		lc.Level = lvl
	}
	return lc
}

func (o *RootOptions) formatter(cmd *cobra.Command) *Formatter {
	return &Formatter{
		Out:    cmd.OutOrStdout(),
		ErrOut: cmd.ErrOrStderr(),
		Raw:    o.Raw,
	}
}
