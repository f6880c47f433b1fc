package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/pipeline"
	"github.com/matzehuels/flowboard/pkg/reconcile"
	"github.com/matzehuels/flowboard/pkg/source"
)

// syncCommand creates the sync command.
func (c *CLI) syncCommand() *cobra.Command {
	var (
		policy string
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "sync <process> <rows-file>",
		Short: "Reconcile a stored process with a rows file",
		Long: `Reconcile a stored process with an external table of process steps.

Rows are matched to nodes by reference: new references become nodes, changed
labels are updated, and nodes whose reference disappeared are deleted or kept
according to --policy. The process is created if it does not exist.

With --watch the command keeps running and re-syncs every time the rows file
changes, until interrupted.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := reconcile.OrphanPolicy(policy)
			switch p {
			case "", reconcile.OrphanDelete, reconcile.OrphanKeep:
			default:
				return errors.New(errors.ErrCodeInvalidInput, "unknown orphan policy %q (want delete or keep)", policy)
			}
			return c.runSync(cmd.Context(), args[0], args[1], p, watch)
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "", "orphan policy: delete or keep (default from config)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-sync whenever the rows file changes")
	_ = cmd.RegisterFlagCompletionFunc("policy", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(reconcile.OrphanDelete), string(reconcile.OrphanKeep)}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *CLI) runSync(ctx context.Context, processID, rowsPath string, policy reconcile.OrphanPolicy, watch bool) error {
	rows, err := source.ReadFile(rowsPath)
	if err != nil {
		return fmt.Errorf("read rows %s: %w", rowsPath, err)
	}

	runner, _, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	if err := c.syncOnce(ctx, runner, processID, rows, policy); err != nil {
		return err
	}
	if !watch {
		return nil
	}

	printInfo("Watching %s (Ctrl+C to stop)", rowsPath)
	return source.Watch(ctx, rowsPath, source.WatchOptions{Logger: c.Logger}, func(rows []source.Row, err error) {
		if err != nil {
			printError("%s: %s", rowsPath, errors.UserMessage(err))
			return
		}
		if err := c.syncOnce(ctx, runner, processID, rows, policy); err != nil {
			printError("sync %s: %s", processID, errors.UserMessage(err))
		}
	})
}

func (c *CLI) syncOnce(ctx context.Context, runner *pipeline.Runner, processID string, rows []source.Row, policy reconcile.OrphanPolicy) error {
	prog := newProgress(c.Logger)
	res, err := runner.Sync(ctx, processID, rows, policy)
	if err != nil {
		return err
	}
	prog.done("Synced " + processID)

	printSuccess("Synced %s: %s", processID, res.Report.String())
	printReport(*res.Report)
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.Saved)
	return nil
}
