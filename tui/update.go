package tui

import (
	"github.com/playcore/playcore/event"
	"github.com/playcore/playcore/style"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
)

func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(b.loadPlaylist(), b.loadStatus(), b.waitForEvent(), tick())
}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case error:
		b.busy = false
		b.raiseError(msg)
		return b, nil
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil
	case eventMsg:
		cmds := []tea.Cmd{b.loadStatus(), b.waitForEvent()}
		// Only these codes move the current item.
		if lo.Contains([]event.Code{event.PlaybackStart, event.PlaybackStop, event.PlaylistFinished}, event.Code(msg)) {
			cmds = append(cmds, b.loadPlaylist())
		}
		if event.Code(msg) == event.PlaylistFinished {
			cmds = append(cmds, b.playlistC.NewStatusMessage(style.Faint("playlist finished")))
		}
		return b, tea.Batch(cmds...)
	case closedMsg:
		return b, tea.Quit
	case tickMsg:
		return b, tea.Batch(b.loadStatus(), tick())
	case refreshMsg:
		if msg.playlist {
			return b, tea.Batch(b.loadStatus(), b.loadPlaylist())
		}
		return b, b.loadStatus()
	case statusMsg:
		b.status = msg.status
		b.volume = msg.volume
		b.muted = msg.muted
		b.elapsed = msg.elapsed
		b.percent = msg.percent
		return b, nil
	case playlistMsg:
		return b, b.setItems(msg)
	case infoMsg:
		b.info = msg
		b.busy = false
		b.newState(infoState)
		return b, nil
	case noticeMsg:
		b.busy = false
		return b, b.playlistC.NewStatusMessage(style.Fg(style.ErrorColor)(string(msg)))
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
		if b.busy {
			return b, nil
		}

		switch b.state {
		case playlistState:
			return b.updatePlaylist(msg)
		case infoState:
			return b.updateInfo(msg)
		case errorState:
			return b.updateError(msg)
		}
	}

	var cmd tea.Cmd
	b.playlistC, cmd = b.playlistC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) setItems(items []*listItem) tea.Cmd {
	listItems := make([]list.Item, len(items))
	current := -1
	for i, item := range items {
		listItems[i] = item
		if item.current {
			current = i
		}
	}

	cmd := b.playlistC.SetItems(listItems)
	if current >= 0 {
		b.playlistC.Select(current)
	}
	return cmd
}

func (b *statefulBubble) selectedItem() (*listItem, bool) {
	item, ok := b.playlistC.SelectedItem().(*listItem)
	return item, ok
}

func (b *statefulBubble) updatePlaylist(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case bubblesKey.Matches(msg, b.keymap.quit):
		return b, tea.Quit
	case bubblesKey.Matches(msg, b.keymap.confirm):
		if item, ok := b.selectedItem(); ok {
			return b, b.play(item)
		}
		return b, nil
	case bubblesKey.Matches(msg, b.keymap.playPause):
		return b, b.togglePause()
	case bubblesKey.Matches(msg, b.keymap.stop):
		return b, b.stop()
	case bubblesKey.Matches(msg, b.keymap.next):
		return b, b.step(true)
	case bubblesKey.Matches(msg, b.keymap.previous):
		return b, b.step(false)
	case bubblesKey.Matches(msg, b.keymap.seekForward):
		return b, b.seek(seekStep)
	case bubblesKey.Matches(msg, b.keymap.seekBackward):
		return b, b.seek(-seekStep)
	case bubblesKey.Matches(msg, b.keymap.volumeUp):
		return b, b.changeVolume(volumeStep)
	case bubblesKey.Matches(msg, b.keymap.volumeDown):
		return b, b.changeVolume(-volumeStep)
	case bubblesKey.Matches(msg, b.keymap.mute):
		return b, b.toggleMute()
	case bubblesKey.Matches(msg, b.keymap.loop):
		return b, b.cycleLoop()
	case bubblesKey.Matches(msg, b.keymap.shuffle):
		return b, b.toggleShuffle()
	case bubblesKey.Matches(msg, b.keymap.remove):
		if item, ok := b.selectedItem(); ok {
			return b, b.remove(item)
		}
		return b, nil
	case bubblesKey.Matches(msg, b.keymap.info):
		if item, ok := b.selectedItem(); ok {
			b.busy = true
			return b, b.loadInfo(item)
		}
		return b, nil
	}

	var cmd tea.Cmd
	b.playlistC, cmd = b.playlistC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateInfo(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case bubblesKey.Matches(msg, b.keymap.back):
		b.previousState()
	case bubblesKey.Matches(msg, b.keymap.playPause):
		return b, b.togglePause()
	case bubblesKey.Matches(msg, b.keymap.quit):
		return b, tea.Quit
	}
	return b, nil
}

func (b *statefulBubble) updateError(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case bubblesKey.Matches(msg, b.keymap.back):
		b.lastError = nil
		b.previousState()
		return b, tea.Batch(b.loadPlaylist(), b.loadStatus())
	case bubblesKey.Matches(msg, b.keymap.quit):
		return b, tea.Quit
	}
	return b, nil
}
