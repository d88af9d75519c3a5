// Package tui provides terminal user interface components for den.
//
// This package uses the Bubble Tea framework to create interactive terminal
// interfaces, primarily the sandbox picker behind a bare "den attach".
//
// # Sandbox Picker
//
// The picker displays known sandboxes and lets the user act on one:
//
//	result, err := tui.RunPicker(infos)
//	switch result.Action {
//	case tui.ActionAttach:
//	    // Attach to result.Sandbox (starting it first if stopped)
//	case tui.ActionStart:
//	    // Start the selected sandbox without attaching
//	case tui.ActionQuit:
//	    // Exit
//	}
//
// SimplePicker renders the same listing as plain text for non-interactive
// terminals.
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
