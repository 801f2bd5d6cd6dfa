package cli

import "github.com/charmbracelet/lipgloss"

// Scanner colour palette
// Shared red-scanner theme colours for consistent branding across CLI and TUI
var (
	// Core scanner colours (dim to bright)
	ScanDimRed    = lipgloss.Color("#960000") // Dim red
	ScanRed       = lipgloss.Color("#C80000") // Scanner red
	ScanBrightRed = lipgloss.Color("#FA1E1E") // Bright sweep red
	ScanCrimson   = lipgloss.Color("#DC143C") // Deep crimson

	// Accent colours
	ScanGray = lipgloss.Color("#8A8A8A") // Neutral gray for subtle text
)
