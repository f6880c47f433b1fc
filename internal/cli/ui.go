package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/flowboard/pkg/lint"
	"github.com/matzehuels/flowboard/pkg/reconcile"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for error messages.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleSaved     = lipgloss.NewStyle().Foreground(colorGreen)
	styleUnchanged = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleCode    = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess   = "✓"
	iconError     = "✗"
	iconWarning   = "!"
	iconInfo      = "›"
	iconArrow     = "→"
	iconSaved     = "saved"
	iconUnchanged = "unchanged"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Chart Output
// =============================================================================

// printStats prints graph statistics on a single line.
func printStats(nodeCount, edgeCount int, saved bool) {
	status, statusStyle := iconUnchanged, styleUnchanged
	if saved {
		status, statusStyle = iconSaved, styleSaved
	}
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf("%d nodes · %d edges · ", nodeCount, edgeCount)) +
		statusStyle.Render(status))
}

// formatIssue renders one lint issue with its severity colour.
func formatIssue(i lint.Issue) string {
	var icon string
	switch i.Severity {
	case lint.SeverityError:
		icon = styleIconError.Render(iconError)
	case lint.SeverityWarning:
		icon = styleIconWarning.Render(iconWarning)
	default:
		icon = styleIconInfo.Render(iconInfo)
	}
	target := ""
	switch {
	case i.NodeID != "":
		target = StyleValue.Render("node "+i.NodeID) + " "
	case i.EdgeID != "":
		target = StyleValue.Render("edge "+i.EdgeID) + " "
	}
	return fmt.Sprintf("%s %s%s %s", icon, target, i.Message, styleCode.Render("("+i.Code+")"))
}

// printIssues prints each issue followed by the summary line.
func printIssues(issues []lint.Issue) {
	for _, i := range issues {
		fmt.Println(formatIssue(i))
	}
	s := lint.Summarize(issues)
	switch {
	case s.Errors > 0:
		printError("%s", StyleError.Render(s.String()))
	case s.Warnings > 0:
		printWarning("%s", s.String())
	default:
		printSuccess("%s", StyleSuccess.Render(s.String()))
	}
}

// printReport prints the non-empty buckets of a sync report.
func printReport(rep reconcile.Report) {
	buckets := []struct {
		name string
		refs []string
	}{
		{"created", rep.Created},
		{"updated", rep.Updated},
		{"removed", rep.Removed},
		{"orphaned", rep.Orphaned},
		{"duplicates", rep.Duplicates},
	}
	for _, b := range buckets {
		if len(b.refs) > 0 {
			printKeyValue(b.name, fmt.Sprint(b.refs))
		}
	}
}
