// Package ui renders the launcher's console output: the startup header,
// the success and failure banners, and the styled status glyphs used by
// the CLI commands.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
)

// RenderPass styles a success marker.
func RenderPass(s string) string { return passStyle.Render(s) }

// RenderFail styles a failure marker.
func RenderFail(s string) string { return failStyle.Render(s) }

// RenderWarn styles a warning marker.
func RenderWarn(s string) string { return warnStyle.Render(s) }

// RenderAccent styles an informational highlight.
func RenderAccent(s string) string { return accentStyle.Render(s) }

const ruleWidth = 70

func rule() string {
	return strings.Repeat("=", ruleWidth)
}

func center(s string) string {
	pad := (ruleWidth - lipgloss.Width(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

// Header returns the startup banner printed before the precondition checks.
func Header(started time.Time) string {
	var b strings.Builder
	b.WriteString(rule() + "\n")
	b.WriteString(center(RenderAccent("DATABASE SYNC LAUNCHER")) + "\n")
	b.WriteString(fmt.Sprintf("Started at: %s\n", started.Format("2006-01-02 15:04:05")))
	b.WriteString(rule())
	return b.String()
}

// MissingFile returns the error message for an absent required file.
// name is the bare file name, not a full path.
func MissingFile(name string) string {
	return RenderFail(fmt.Sprintf("ERROR: %s not found!", name)) + "\n" +
		fmt.Sprintf("%s must be in the same folder as this launcher.", name)
}

// SuccessBanner returns the banner shown after a sync that exited cleanly.
func SuccessBanner() string {
	return rule() + "\n" +
		center(RenderPass("SYNC COMPLETED SUCCESSFULLY!")) + "\n" +
		rule()
}

// FailureBanner returns the banner shown after a failed sync. logPath is
// the log file the sync program writes; the launcher never opens it.
func FailureBanner(logPath string) string {
	return rule() + "\n" +
		center(RenderFail("SYNC FAILED!")) + "\n" +
		fmt.Sprintf("Check %s for details and try again.", logPath) + "\n" +
		rule()
}
