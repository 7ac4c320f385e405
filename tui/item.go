package tui

import (
	"fmt"

	"github.com/playcore/playcore/icon"
	"github.com/playcore/playcore/mrl"
	"github.com/playcore/playcore/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const maxTitleWidth = 120

// listItem is one playlist entry as it was when the playlist was last fetched.
type listItem struct {
	mrl      *mrl.MRL
	kind     mrl.Kind
	location string
	position int
	current  bool
}

func (t *listItem) getMark() string {
	if !t.current {
		return ""
	}
	return lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor).Render(icon.Get(icon.Media))
}

func (t *listItem) Title() string {
	title := truncate.StringWithTail(t.location, maxTitleWidth, "…")
	if mark := t.getMark(); mark != "" {
		return fmt.Sprintf("%s %s", title, mark)
	}
	return title
}

func (t *listItem) Description() string {
	return fmt.Sprintf("#%d %s", t.position+1, t.kind)
}

func (t *listItem) FilterValue() string {
	return t.location
}
