package tui

import (
	"context"
	"testing"

	"github.com/playcore/playcore/backend/null"
	"github.com/playcore/playcore/event"
	"github.com/playcore/playcore/mrl"
	"github.com/playcore/playcore/player"
	"github.com/playcore/playcore/playlist"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestBubble(t *testing.T, locations ...string) (*statefulBubble, *player.Player) {
	p, err := player.New(null.Kind, player.Options{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = p.Close(context.Background()) })

	for _, location := range locations {
		m := lo.Must(mrl.Parse(location))
		if err := p.Append(context.Background(), m, player.AddQueue); err != nil {
			t.Fatal(err)
		}
	}

	b := newBubble(&Options{Player: p, Events: make(chan event.Code)})
	b.resize(80, 24)
	return b, p
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run feeds the messages produced by cmd back into the bubble until nothing follows.
// It stops after a notice, whose follow-up only clears the status line.
func run(b *statefulBubble, cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				run(b, c)
			}
			return
		}
		_, cmd = b.Update(msg)
		if _, ok := msg.(noticeMsg); ok {
			return
		}
	}
}

func TestNextLoop(t *testing.T) {
	Convey("Given the loop cycle", t, func() {
		Convey("It should go disable, element, playlist and back", func() {
			So(nextLoop(playlist.LoopDisable), ShouldEqual, playlist.LoopElement)
			So(nextLoop(playlist.LoopElement), ShouldEqual, playlist.LoopPlaylist)
			So(nextLoop(playlist.LoopPlaylist), ShouldEqual, playlist.LoopDisable)
		})
	})
}

func TestBubble(t *testing.T) {
	Convey("Given a bubble over a null player", t, func() {
		b, p := newTestBubble(t, "/music/a.ogg", "/music/b.ogg", "http://radio.example/stream")
		ctx := context.Background()

		Convey("Loading the playlist should list every item and select the current one", func() {
			run(b, b.loadPlaylist())
			So(b.playlistC.Items(), ShouldHaveLength, 3)

			item, ok := b.selectedItem()
			So(ok, ShouldBeTrue)
			So(item.current, ShouldBeTrue)
			So(item.location, ShouldEqual, "/music/a.ogg")
			So(item.Description(), ShouldContainSubstring, "#1")
		})

		Convey("Loading the status should copy the player state", func() {
			run(b, b.loadStatus())
			So(b.status.Len, ShouldEqual, 3)
			So(b.status.State, ShouldEqual, player.Idle)
		})

		Convey("Enter should play the selected item", func() {
			run(b, b.loadPlaylist())
			b.playlistC.Select(1)

			_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyEnter})
			run(b, cmd)

			state, err := p.State(ctx)
			So(err, ShouldBeNil)
			So(state, ShouldEqual, player.Running)
			So(b.status.State, ShouldEqual, player.Running)

			current, err := p.Current(ctx)
			So(err, ShouldBeNil)
			So(current.Resource().String(), ShouldEqual, "/music/b.ogg")
		})

		Convey("Cycling the loop should update the player", func() {
			run(b, b.loadStatus())

			_, cmd := b.Update(keyPress("l"))
			run(b, cmd)

			status, err := p.Status(ctx)
			So(err, ShouldBeNil)
			So(status.Loop, ShouldEqual, playlist.LoopElement)
			So(b.status.Loop, ShouldEqual, playlist.LoopElement)
		})

		Convey("Shuffle should toggle", func() {
			_, cmd := b.Update(keyPress("z"))
			run(b, cmd)
			So(b.status.Shuffle, ShouldBeTrue)
		})

		Convey("Failing controls should not leave the playlist screen", func() {
			_, cmd := b.Update(keyPress("."))
			msg := cmd()
			So(msg, ShouldHaveSameTypeAs, noticeMsg(""))

			b.Update(msg)
			So(b.state, ShouldEqual, playlistState)
		})

		Convey("Removing an item should shrink the playlist", func() {
			run(b, b.loadPlaylist())
			b.playlistC.Select(2)

			_, cmd := b.Update(keyPress("d"))
			run(b, cmd)

			So(b.playlistC.Items(), ShouldHaveLength, 2)
			nodes, err := p.Playlist(ctx)
			So(err, ShouldBeNil)
			So(nodes, ShouldHaveLength, 2)
		})

		Convey("Info should open and esc should go back", func() {
			run(b, b.loadPlaylist())

			_, cmd := b.Update(keyPress("i"))
			So(b.busy, ShouldBeTrue)
			run(b, cmd)

			So(b.state, ShouldEqual, infoState)
			So(b.info, ShouldContain, "Location: /music/a.ogg")
			So(b.View(), ShouldContainSubstring, "Info")

			b.Update(tea.KeyMsg{Type: tea.KeyEsc})
			So(b.state, ShouldEqual, playlistState)
		})

		Convey("A closed player should raise the error screen", func() {
			So(p.Close(ctx), ShouldBeNil)
			run(b, b.loadStatus())

			So(b.state, ShouldEqual, errorState)
			So(b.View(), ShouldContainSubstring, "Error")
		})
	})
}
