package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowboard/pkg/source"
)

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout <process> <rows-file>",
		Short: "Place a stored process's nodes on the layout grid",
		Long: `Place a stored process's nodes on the layout grid.

Nodes are placed in the order of the rows file (CSV, JSON or YAML), filling
the configured number of columns. Rows without a node get a new task node.
The process is created if it does not exist.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], args[1])
		},
	}
	return cmd
}

func (c *CLI) runLayout(ctx context.Context, processID, rowsPath string) error {
	rows, err := source.ReadFile(rowsPath)
	if err != nil {
		return fmt.Errorf("read rows %s: %w", rowsPath, err)
	}

	runner, _, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, err := runner.Layout(ctx, processID, rows)
	if err != nil {
		return err
	}
	prog.done("Laid out " + processID)

	printSuccess("Laid out %s", processID)
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.Saved)
	return nil
}
