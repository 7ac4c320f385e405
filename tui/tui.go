// Package tui provides the interactive terminal frontend of a player.
package tui

import (
	"github.com/playcore/playcore/event"
	"github.com/playcore/playcore/player"
	tea "github.com/charmbracelet/bubbletea"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	Player *player.Player

	// Events carries the codes the player delivered to its callback.
	// The interface refreshes whenever one arrives.
	Events <-chan event.Code

	// Title is shown above the playlist.
	Title string
}

// Run blocks until the user quits. The player is left open.
func Run(options *Options) error {
	bubble := newBubble(options)
	bubble.newState(playlistState)

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
