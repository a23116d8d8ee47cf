package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	commandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")).PaddingLeft(2)
)

func printSuccess(w io.Writer, msg string) {
	fmt.Fprintln(w, successStyle.Render("✔ "+msg))
}

func printWarning(w io.Writer, msg string) {
	fmt.Fprintln(w, warningStyle.Render("! "+msg))
}

func printNextSteps(w io.Writer, dir, packageManager string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, successStyle.Render("Next steps:"))
	for _, line := range []string{
		"cd " + dir,
		packageManager + " install",
		packageManager + " run dev",
	} {
		fmt.Fprintln(w, commandStyle.Render(line))
	}
	fmt.Fprintln(w)
}
