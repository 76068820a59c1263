package cli

import (
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(opts *RootOptions) *cobra.Command {
	var skipErrors bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Enumerate all keys and print their values",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd, skipErrors)
		},
	}
	cmd.Flags().BoolVar(&skipErrors, "skip-errors", false, "drop unreadable keys instead of reporting them")
	return cmd
}

func runList(opts *RootOptions, cmd *cobra.Command, skipErrors bool) error {
	c, err := opts.OpenEngine()
	if err != nil {
		return err
	}
	defer c.Close()

	f := opts.formatter(cmd)

	if skipErrors {
		values, err := c.ListAll()
		if err != nil {
			return err
		}
		for i := range values {
			f.PrintValue(values[i])
		}
		return nil
	}

	it, err := c.Values()
	if err != nil {
		return err
	}
	for it.Next() {
		if se := it.StepErr(); se != nil {
			f.PrintStepError(se)
			continue
		}
		f.PrintValue(it.Value())
	}
	return nil
}
