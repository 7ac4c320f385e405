package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/playcore/playcore/constant"
	"github.com/playcore/playcore/icon"
	"github.com/playcore/playcore/style"
	"github.com/charmbracelet/lipgloss"
)

// CheckDependencies exits when the mpv executable cannot be found.
func CheckDependencies(executable string) {
	if _, err := exec.LookPath(executable); err != nil {
		printMissingDependencyError(executable)
		os.Exit(1)
	}
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case constant.Darwin:
		installCmd = "brew install mpv"
	case constant.Linux:
		installCmd = "sudo apt install mpv"
	case constant.Windows:
		installCmd = "scoop install mpv"
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.ErrorColor).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.ErrorColor).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The engine executable '%s' was not found in your PATH.", dep))

	suggestion := fmt.Sprintf("\n\nUse another backend with %s", style.New().Foreground(style.AccentColor).Bold(true).Render("--backend null"))
	if installCmd != "" {
		suggestion += fmt.Sprintf(", or install mpv:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
