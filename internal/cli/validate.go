package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowboard/pkg/graph"
	"github.com/matzehuels/flowboard/pkg/lint"
)

// errChartInvalid is returned when validation finds error-severity issues,
// so that scripts can rely on the exit status.
var errChartInvalid = stderrors.New("chart has validation errors")

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		processID string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "validate [chart.json]",
		Short: "Lint a chart file or a stored process",
		Long: `Lint a chart for structural problems.

Pass a persisted chart file, or --process to lint a stored process. Findings
are errors, warnings or infos; the command fails only when there are errors.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case processID != "" && len(args) > 0:
				return fmt.Errorf("pass either a file or --process, not both")
			case processID == "" && len(args) == 0:
				return fmt.Errorf("pass a chart file or --process")
			}

			var (
				label  string
				issues []lint.Issue
				err    error
			)
			if processID != "" {
				label = processID
				issues, err = c.validateProcess(cmd.Context(), processID)
			} else {
				label = args[0]
				issues, err = validateFile(args[0])
			}
			if err != nil {
				return err
			}
			return reportIssues(cmd.OutOrStdout(), label, issues, asJSON)
		},
	}

	cmd.Flags().StringVarP(&processID, "process", "p", "", "stored process id to validate")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print issues as JSON")

	return cmd
}

func validateFile(path string) ([]lint.Issue, error) {
	g, err := graph.ReadGraphFile(path)
	if err != nil {
		return nil, fmt.Errorf("load chart %s: %w", path, err)
	}
	return lint.Check(g), nil
}

func (c *CLI) validateProcess(ctx context.Context, processID string) ([]lint.Issue, error) {
	runner, _, err := c.newRunner(ctx)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	res, err := runner.Validate(ctx, processID)
	if err != nil {
		return nil, err
	}
	return res.Issues, nil
}

func reportIssues(w io.Writer, label string, issues []lint.Issue, asJSON bool) error {
	if asJSON {
		if issues == nil {
			issues = []lint.Issue{}
		}
		data, err := json.MarshalIndent(struct {
			Issues  []lint.Issue `json:"issues"`
			Summary lint.Summary `json:"summary"`
		}{issues, lint.Summarize(issues)}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Println(StyleTitle.Render(label))
		printIssues(issues)
	}
	if lint.HasErrors(issues) {
		return errChartInvalid
	}
	return nil
}
