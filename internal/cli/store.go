package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowboard/pkg/graph"
)

// storeCommand creates the store management command.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Save, load, list and delete stored processes",
		Long: `Manage processes in the configured store.

The backend (file, memory, redis, mongo or sqlite) is chosen by the [store]
section of the config file.`,
	}

	cmd.AddCommand(c.storeSaveCommand())
	cmd.AddCommand(c.storeLoadCommand())
	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storeDeleteCommand())

	return cmd
}

// storeSaveCommand creates the "store save" subcommand.
func (c *CLI) storeSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save <process> <chart.json>",
		Short: "Import a chart file and store it as a process",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStoreSave(cmd.Context(), args[0], args[1])
		},
	}
}

func (c *CLI) runStoreSave(ctx context.Context, processID, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	runner, cfg, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Put(ctx, processID, data)
	if err != nil {
		return err
	}
	printSuccess("Stored %s", processID)
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.Saved)
	printDetail("Backend: %s", cfg.Store.Backend)
	if res.Summary.Errors > 0 || res.Summary.Warnings > 0 {
		printNextStep("Review issues", appName+" validate --process "+processID)
	}
	return nil
}

// storeLoadCommand creates the "store load" subcommand.
func (c *CLI) storeLoadCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "load <process>",
		Short: "Print a stored process as a chart document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStoreLoad(cmd.Context(), cmd.OutOrStdout(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")

	return cmd
}

func (c *CLI) runStoreLoad(ctx context.Context, w io.Writer, processID, output string) error {
	runner, _, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Get(ctx, processID)
	if err != nil {
		return err
	}
	data, err := graph.MarshalDocument(res.Document)
	if err != nil {
		return fmt.Errorf("encode %s: %w", processID, err)
	}

	if output == "" {
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	if err := os.WriteFile(output, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Loaded %s", processID)
	printFile(output)
	return nil
}

// storeListCommand creates the "store list" subcommand.
func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored process ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, _, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			ids, err := runner.List(ctx)
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

// storeDeleteCommand creates the "store delete" subcommand.
func (c *CLI) storeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <process>",
		Short: "Delete a stored process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, _, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			if err := runner.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}
