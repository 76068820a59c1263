package cli

import (
	"github.com/spf13/cobra"

	"github.com/danmuck/smcctl/internal/smc/wire"
)

// NewInfoCommand creates the info command.
func NewInfoCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info KEY",
		Short: "Show a key's metadata without reading its value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(opts, cmd, args[0])
		},
	}
}

func runInfo(opts *RootOptions, cmd *cobra.Command, name string) error {
	key, err := wire.ParseKey(name)
	if err != nil {
		return err
	}
	c, err := opts.OpenEngine()
	if err != nil {
		return err
	}
	defer c.Close()

	info, err := c.GetKeyInfo(key)
	if err != nil {
		return err
	}
	opts.formatter(cmd).PrintInfo(key, info)
	return nil
}
