package cli

import (
	"github.com/spf13/cobra"

	"github.com/danmuck/smcctl/internal/smc/wire"
)

// NewReadCommand creates the read command.
func NewReadCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "read KEY",
		Short: "Read a single key and print its value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(opts, cmd, args[0])
		},
	}
}

func runRead(opts *RootOptions, cmd *cobra.Command, name string) error {
	key, err := wire.ParseKey(name)
	if err != nil {
		return err
	}
	c, err := opts.OpenEngine()
	if err != nil {
		return err
	}
	defer c.Close()

	kv, err := c.ReadKey(key)
	if err != nil {
		return err
	}
	opts.formatter(cmd).PrintValue(kv)
	return nil
}
