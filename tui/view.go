package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/playcore/playcore/icon"
	"github.com/playcore/playcore/player"
	"github.com/playcore/playcore/playlist"
	"github.com/playcore/playcore/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
)

// statusHeight is the number of lines drawn under the playlist.
const statusHeight = 4

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
	statusPaddingStyle    = lipgloss.NewStyle().Padding(0, 2)
)

func (b *statefulBubble) View() string {
	switch b.state {
	case playlistState:
		return b.viewPlaylist()
	case infoState:
		return b.viewInfo()
	case errorState:
		return b.viewError()
	default:
		return "Unknown state"
	}
}

func (b *statefulBubble) viewPlaylist() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		listExtraPaddingStyle.Render(b.playlistC.View()),
		statusPaddingStyle.Render(b.viewStatus()),
	)
}

func (b *statefulBubble) stateIcon() string {
	switch b.status.State {
	case player.Running:
		return icon.Get(icon.Play)
	case player.Paused:
		return icon.Get(icon.Pause)
	default:
		return icon.Get(icon.Stop)
	}
}

func (b *statefulBubble) viewStatus() string {
	var position string
	if b.status.Len > 0 && b.status.Position >= 0 {
		position = fmt.Sprintf("%d/%d", b.status.Position+1, b.status.Len)
	} else {
		position = fmt.Sprintf("-/%d", b.status.Len)
	}

	loop := b.status.Loop.String()
	if b.status.Loop != playlist.LoopDisable {
		if b.status.LoopCount < 0 {
			loop += " ∞"
		} else {
			loop += fmt.Sprintf(" %d/%d", b.status.LoopCount-b.status.Remaining, b.status.LoopCount)
		}
	}

	volume := fmt.Sprintf("%s %d%%", icon.Get(icon.Volume), b.volume)
	if b.muted {
		volume = fmt.Sprintf("%s muted", icon.Get(icon.Mute))
	}

	flags := []string{
		fmt.Sprintf("%s %s", b.stateIcon(), b.status.State),
		position,
		volume,
		fmt.Sprintf("%s %s", icon.Get(icon.Loop), loop),
	}
	if b.status.Shuffle {
		flags = append(flags, icon.Get(icon.Shuffle)+" shuffle")
	}
	if b.status.Mode == player.Auto {
		flags = append(flags, style.Faint("auto"))
	}

	return strings.Join([]string{
		strings.Join(flags, style.Faint(" · ")),
		fmt.Sprintf("%s %s", b.progressC.ViewAs(float64(b.percent)/100), style.Faint(b.elapsed.Round(time.Second).String())),
	}, "\n")
}

func (b *statefulBubble) viewInfo() string {
	lines := []string{style.Title("Info"), ""}
	for _, line := range b.info {
		lines = append(lines, style.Truncate(b.width)(line))
	}
	lines = append(lines, "", b.viewStatus())
	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewError() string {
	errorMsg := wrap.String(style.Fg(style.ErrorColor)(fmt.Sprint(b.lastError)), b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
