package cli

import (
	"github.com/spf13/cobra"
)

// NewCountCommand creates the count command.
func NewCountCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the total number of keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(opts, cmd)
		},
	}
}

func runCount(opts *RootOptions, cmd *cobra.Command) error {
	c, err := opts.OpenEngine()
	if err != nil {
		return err
	}
	defer c.Close()

	n, err := c.KeysCount()
	if err != nil {
		return err
	}
	opts.formatter(cmd).PrintCount(n)
	return nil
}
