package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/phonolab/wordsnip/internal/batch"
)

var (
	iconIncluded = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Render("✓")
	iconExcluded = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Render("–")
	iconFailed   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A40000")).Render("✗")
)

// renderProgressView renders the main view while the batch is running
func renderProgressView(m Model) string {
	var b strings.Builder

	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")
	b.WriteString(renderRecentOutcomes(m))
	b.WriteString("\n")
	b.WriteString(renderOverallProgress(m))

	return b.String()
}

// renderHeader renders the application header
func renderHeader(m Model) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#005F87")).
		Render("Wordsnip ✂ - Utterance Slicer")

	subtitle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		Italic(true).
		Render(fmt.Sprintf("Processing %d recording(s)", m.Total))

	return title + "\n" + subtitle
}

// renderRecentOutcomes renders the rolling window of finished files
func renderRecentOutcomes(m Model) string {
	if len(m.Recent) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Render(" waiting for the first file...") + "\n"
	}

	var b strings.Builder
	for _, out := range m.Recent {
		b.WriteString(renderOutcomeEntry(out))
		b.WriteString("\n")
	}
	return b.String()
}

// renderOutcomeEntry renders one finished file
func renderOutcomeEntry(out batch.Outcome) string {
	switch out.Reason {
	case batch.ReasonIncluded:
		return fmt.Sprintf(" %s %s (%s)  RT %.3fs | Dur %.3fs",
			iconIncluded, out.RelPath, out.Word,
			out.Features.ReactionTime, out.Features.TotalDuration)

	case batch.ReasonOutsideWindow:
		return fmt.Sprintf(" %s %s (%s)  RT %.3fs | Dur %.3fs | %s",
			iconExcluded, out.RelPath, out.Word,
			out.Features.ReactionTime, out.Features.TotalDuration, out.Reason)

	default:
		return fmt.Sprintf(" %s %s  %s", iconFailed, out.RelPath, out.Reason)
	}
}

// renderProgressBar renders a progress bar
func renderProgressBar(progress float64, width int) string {
	filled := int(progress * float64(width))
	if filled > width {
		filled = width
	}
	empty := width - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	percentage := int(progress * 100)

	return fmt.Sprintf("%s %d%%", bar, percentage)
}

// renderOverallProgress renders the progress footer
func renderOverallProgress(m Model) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#888888")).
		Padding(0, 1).
		Width(60)

	progress := 0.0
	if m.Total > 0 {
		progress = float64(m.Completed) / float64(m.Total)
	}

	var content strings.Builder
	content.WriteString(renderProgressBar(progress, 40))
	content.WriteString("\n")
	content.WriteString(fmt.Sprintf("%d/%d done | %d accepted | elapsed %s",
		m.Completed, m.Total, m.Included(),
		time.Since(m.StartTime).Round(time.Second)))

	return box.Render(content.String())
}

// renderCompletionSummary renders the final summary
func renderCompletionSummary(m Model) string {
	var b strings.Builder

	if m.Err != nil {
		header := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A40000")).
			Render("Batch aborted")
		b.WriteString(header)
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("  %v\n", m.Err))
		return b.String()
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00AA00")).
		Render("✨ Batch complete")
	b.WriteString(header)
	b.WriteString("\n\n")

	// Stable ordering for the per-reason breakdown.
	reasons := make([]string, 0, len(m.Counts))
	for reason := range m.Counts {
		reasons = append(reasons, string(reason))
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		icon := iconExcluded
		if batch.Reason(reason) == batch.ReasonIncluded {
			icon = iconIncluded
		}
		b.WriteString(fmt.Sprintf(" %s %-28s %d\n", icon, reason, m.Counts[batch.Reason(reason)]))
	}

	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", 60))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%d of %d recordings accepted in %s\n",
		m.Included(), m.Total, time.Since(m.StartTime).Round(time.Second)))

	return b.String()
}
