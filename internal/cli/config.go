package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	var pathOnly bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration as TOML.

Values come from the config file (see --config) layered over the built-in
defaults. A missing default file is not an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if pathOnly {
				fmt.Fprintln(w, c.effectiveConfigPath())
				return nil
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			text, err := cfg.Encode()
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "# %s\n%s", c.effectiveConfigPath(), text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&pathOnly, "path", false, "print only the config file path")

	return cmd
}
