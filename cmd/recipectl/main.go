// Package main provides recipectl, a terminal client for the recipe catalog API.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Styles for output
var (
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#f07171",
		Dark:  "#f07178",
	})
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#828c99",
		Dark:  "#6c7680",
	})
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr, newFormEditor()).Execute(); err != nil {
		// Operation failures have already been shown as notifications.
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, failStyle.Render("Error: "+err.Error()))
		}
		os.Exit(1)
	}
}
