package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playcore/playcore/backend"
	"github.com/playcore/playcore/event"
	"github.com/playcore/playcore/mrl"
	"github.com/playcore/playcore/player"
	"github.com/playcore/playcore/playlist"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
)

const (
	seekStep    = 10
	volumeStep  = 5
	callTimeout = 5 * time.Second
)

type (
	eventMsg   event.Code
	tickMsg    time.Time
	refreshMsg struct{ playlist bool }
	closedMsg  struct{}

	playlistMsg []*listItem
	infoMsg     []string
	noticeMsg   string

	statusMsg struct {
		status  player.Status
		volume  int
		muted   bool
		elapsed time.Duration
		percent int
	}
)

func withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), callTimeout)
}

// waitForEvent blocks on the player's event channel.
func (b *statefulBubble) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		code, ok := <-b.events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(code)
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (b *statefulBubble) loadPlaylist() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()

		nodes, err := b.player.Playlist(ctx)
		if err != nil {
			return err
		}
		current, err := b.player.Current(ctx)
		if err != nil && !errors.Is(err, player.ErrNoCurrent) {
			return err
		}

		items := make([]*listItem, 0, len(nodes))
		for i, m := range nodes {
			res, err := b.player.MRLResource(ctx, m)
			if errors.Is(err, mrl.ErrFreed) {
				continue
			}
			if err != nil {
				return err
			}
			items = append(items, &listItem{
				mrl:      m,
				kind:     m.Kind(),
				location: res.String(),
				position: i,
				current:  m == current,
			})
		}
		return playlistMsg(items)
	}
}

func (b *statefulBubble) loadStatus() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()

		status, err := b.player.Status(ctx)
		if err != nil {
			return err
		}

		msg := statusMsg{status: status}
		// Backends without a mixer or position report ErrUnsupported, which leaves zeros.
		msg.volume, _ = b.player.Volume(ctx)
		msg.muted, _ = b.player.Mute(ctx)
		if status.State != player.Idle {
			msg.elapsed, _ = b.player.TimePosition(ctx)
			msg.percent, _ = b.player.PercentPosition(ctx)
		}
		return msg
	}
}

func (b *statefulBubble) loadInfo(item *listItem) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()

		lines := []string{
			fmt.Sprintf("Location: %s", item.location),
			fmt.Sprintf("Kind: %s", item.kind),
		}

		if props, err := b.player.MRLProperties(ctx, item.mrl); err == nil {
			lines = append(lines,
				fmt.Sprintf("Length: %s", props.Length.Round(time.Second)),
				fmt.Sprintf("Seekable: %t", props.Seekable),
			)
			if props.Size > 0 {
				lines = append(lines, fmt.Sprintf("Size: %d bytes", props.Size))
			}
			if a := props.Audio; a != nil {
				lines = append(lines, fmt.Sprintf("Audio: %s, %d Hz, %d channels", lo.Ternary(a.Codec != "", a.Codec, "unknown"), a.SampleRate, a.Channels))
			}
			if v := props.Video; v != nil {
				lines = append(lines, fmt.Sprintf("Video: %s, %dx%d", lo.Ternary(v.Codec != "", v.Codec, "unknown"), v.Width, v.Height))
			}
		} else if !errors.Is(err, backend.ErrUnsupported) {
			return err
		}

		if meta, err := b.player.MRLMetadata(ctx, item.mrl); err == nil {
			for _, field := range []struct{ name, value string }{
				{"Title", meta.Title},
				{"Artist", meta.Artist},
				{"Album", meta.Album},
				{"Genre", meta.Genre},
				{"Year", meta.Year},
				{"Track", meta.Track},
				{"Comment", meta.Comment},
			} {
				if field.value != "" {
					lines = append(lines, fmt.Sprintf("%s: %s", field.name, field.value))
				}
			}
		}

		if d, err := b.player.MRLDescribe(ctx, item.mrl); err == nil && len(d.Subtitles) > 0 {
			lines = append(lines, fmt.Sprintf("Subtitles: %d", len(d.Subtitles)))
		}

		return infoMsg(lines)
	}
}

// control runs f against the player. Failures become a status notice, not the error screen.
func (b *statefulBubble) control(f func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()

		if err := f(ctx); err != nil {
			if errors.Is(err, player.ErrClosed) {
				return err
			}
			return noticeMsg(err.Error())
		}
		return refreshMsg{}
	}
}

func (b *statefulBubble) play(item *listItem) tea.Cmd {
	return b.control(func(ctx context.Context) error {
		if err := b.player.SetCurrent(ctx, item.mrl); err != nil {
			return err
		}
		return b.player.Start(ctx)
	})
}

func (b *statefulBubble) togglePause() tea.Cmd {
	idle := b.status.State == player.Idle
	return b.control(func(ctx context.Context) error {
		if idle {
			return b.player.Start(ctx)
		}
		return b.player.Pause(ctx)
	})
}

func (b *statefulBubble) step(forward bool) tea.Cmd {
	return b.control(func(ctx context.Context) error {
		move := b.player.Previous
		if forward {
			move = b.player.Next
		}
		moved, err := move(ctx)
		if err != nil {
			return err
		}
		if !moved {
			return errors.New(lo.Ternary(forward, "already at the last item", "already at the first item"))
		}
		return nil
	})
}

func (b *statefulBubble) seek(seconds int) tea.Cmd {
	return b.control(func(ctx context.Context) error {
		return b.player.Seek(ctx, seconds, backend.SeekRelative)
	})
}

func (b *statefulBubble) changeVolume(delta int) tea.Cmd {
	volume := b.volume + delta
	return b.control(func(ctx context.Context) error {
		return b.player.SetVolume(ctx, volume)
	})
}

func (b *statefulBubble) toggleMute() tea.Cmd {
	muted := !b.muted
	return b.control(func(ctx context.Context) error {
		return b.player.SetMute(ctx, muted)
	})
}

// nextLoop cycles disable, element, playlist. Element and playlist repeat forever.
func nextLoop(l playlist.Loop) playlist.Loop {
	switch l {
	case playlist.LoopDisable:
		return playlist.LoopElement
	case playlist.LoopElement:
		return playlist.LoopPlaylist
	default:
		return playlist.LoopDisable
	}
}

func (b *statefulBubble) cycleLoop() tea.Cmd {
	l := nextLoop(b.status.Loop)
	return b.control(func(ctx context.Context) error {
		return b.player.SetLoop(ctx, l, lo.Ternary(l == playlist.LoopDisable, 0, -1))
	})
}

func (b *statefulBubble) toggleShuffle() tea.Cmd {
	on := !b.status.Shuffle
	return b.control(func(ctx context.Context) error {
		return b.player.SetShuffle(ctx, on)
	})
}

func (b *statefulBubble) remove(item *listItem) tea.Cmd {
	cmd := b.control(func(ctx context.Context) error {
		return b.player.FreeMRL(ctx, item.mrl)
	})
	return func() tea.Msg {
		msg := cmd()
		if _, ok := msg.(refreshMsg); ok {
			return refreshMsg{playlist: true}
		}
		return msg
	}
}

func (b *statefulBubble) stop() tea.Cmd {
	return b.control(b.player.Stop)
}
