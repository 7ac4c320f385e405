package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/playcore/playcore/backend/null"
	"github.com/playcore/playcore/filesystem"
	"github.com/playcore/playcore/key"
	"github.com/playcore/playcore/mrl"
	"github.com/playcore/playcore/player"
	"github.com/playcore/playcore/session"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func newTestPlayer(t *testing.T) *player.Player {
	p, err := player.New(null.Kind, player.Options{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return p
}

func TestAppendLocations(t *testing.T) {
	Convey("Given a player and a subtitle on disk", t, func() {
		p := newTestPlayer(t)
		ctx := context.Background()
		lo.Must0(filesystem.API().WriteFile("/subs/a.srt", []byte("1\n"), 0644))

		Convey("Every location should be queued and the subtitle attached to the first", func() {
			err := appendLocations(ctx, p, []string{"/music/a.ogg", "http://radio.example/stream"}, []string{"/subs/a.srt"})
			So(err, ShouldBeNil)

			nodes, err := p.Playlist(ctx)
			So(err, ShouldBeNil)
			So(nodes, ShouldHaveLength, 2)

			d, err := p.MRLDescribe(ctx, nodes[0])
			So(err, ShouldBeNil)
			So(d.Subtitles, ShouldResemble, []string{"/subs/a.srt"})

			kind, err := p.MRLKind(ctx, nodes[1])
			So(err, ShouldBeNil)
			So(kind, ShouldEqual, mrl.HTTP)
		})

		Convey("A bad location should be reported with its text", func() {
			err := appendLocations(ctx, p, []string{"bogus://x"}, nil)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "bogus://x")
		})

		Convey("A missing subtitle should be refused", func() {
			err := appendLocations(ctx, p, []string{"/music/a.ogg"}, []string{"/subs/missing.srt"})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestInspect(t *testing.T) {
	Convey("Given a player", t, func() {
		p := newTestPlayer(t)
		ctx := context.Background()

		Convey("inspect should describe each location without queueing it", func() {
			outputs, err := inspect(ctx, p, []string{"/music/a.ogg"})
			So(err, ShouldBeNil)
			So(outputs, ShouldHaveLength, 1)
			So(outputs[0].Location, ShouldEqual, "/music/a.ogg")
			So(outputs[0].Descriptor.Kind, ShouldEqual, mrl.File)
			So(outputs[0].pretty(), ShouldContainSubstring, "/music/a.ogg")

			nodes, err := p.Playlist(ctx)
			So(err, ShouldBeNil)
			So(nodes, ShouldBeEmpty)
		})
	})
}

func TestSaveSession(t *testing.T) {
	Convey("Given a player with a playlist", t, func() {
		p := newTestPlayer(t)
		ctx := context.Background()
		So(appendLocations(ctx, p, []string{"/music/a.ogg", "/music/b.ogg"}, nil), ShouldBeNil)

		Convey("saveSession should store it", func() {
			So(saveSession(ctx, p), ShouldBeNil)

			s, err := session.Get()
			So(err, ShouldBeNil)
			So(s, ShouldNotBeNil)
			So(s.Items, ShouldHaveLength, 2)

			Convey("and an empty playlist should clear it", func() {
				So(p.RemoveAll(ctx), ShouldBeNil)
				So(saveSession(ctx, p), ShouldBeNil)

				s, err := session.Get()
				So(err, ShouldBeNil)
				So(s, ShouldBeNil)
			})
		})
	})
}

func TestCompletionBackends(t *testing.T) {
	Convey("Backend completion should offer the registered engines", t, func() {
		kinds, _ := completionBackends(nil, nil, "")
		So(kinds, ShouldContain, "null")
		So(kinds, ShouldContain, "mpv")
	})
}

func TestParseConfigValue(t *testing.T) {
	Convey("Given values typed on the command line", t, func() {
		Convey("Known values should be converted to the type of the default", func() {
			v, err := parseConfigValue(key.PlaylistLoop, []string{"playlist"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "playlist")

			v, err = parseConfigValue(key.PlaylistLoopCount, []string{"-1"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, -1)

			v, err = parseConfigValue(key.PlaylistShuffle, []string{"true"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, true)

			v, err = parseConfigValue(key.BackendNullLength, []string{"90s"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 90*time.Second)

			v, err = parseConfigValue(key.PlayerBackend, []string{"null"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "null")

			v, err = parseConfigValue(key.PlayerVerbosity, []string{"info"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "info")
		})

		Convey("Values the player would refuse should be rejected", func() {
			for _, c := range []struct {
				key string
				raw string
			}{
				{key.PlaylistLoop, "sometimes"},
				{key.PlayerVerbosity, "loud"},
				{key.PlayerBackend, "vlc"},
				{key.BackendNullLength, "0s"},
				{key.BackendNullLength, "-3s"},
				{key.BackendNullLength, "forever"},
				{key.PlaylistLoopCount, "twice"},
				{key.IconsVariant, "ascii"},
				{key.LogsLevel, "chatty"},
			} {
				_, err := parseConfigValue(c.key, []string{c.raw})
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, c.key)
			}
		})

		Convey("Unknown keys should suggest the closest one", func() {
			_, err := parseConfigValue("playlist.lop", []string{"playlist"})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, key.PlaylistLoop)
		})

		Convey("A missing value should be refused", func() {
			_, err := parseConfigValue(key.PlaylistLoop, nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestKeyArg(t *testing.T) {
	Convey("Given the set command", t, func() {
		cmd := configSetCmd
		// Cobra merges the persistent --key of config into Flags on execution.
		cmd.InheritedFlags()
		Reset(func() { _ = cmd.Flags().Set("key", "") })

		Convey("The first argument should be the key", func() {
			rest, name, err := keyArg(cmd, []string{key.PlaylistLoop, "element"})
			So(err, ShouldBeNil)
			So(name, ShouldEqual, key.PlaylistLoop)
			So(rest, ShouldResemble, []string{"element"})
		})

		Convey("The --key flag should leave every argument as a value", func() {
			So(cmd.Flags().Set("key", key.PlaylistLoop), ShouldBeNil)
			rest, name, err := keyArg(cmd, []string{"element"})
			So(err, ShouldBeNil)
			So(name, ShouldEqual, key.PlaylistLoop)
			So(rest, ShouldResemble, []string{"element"})
		})

		Convey("No key at all should fail", func() {
			_, _, err := keyArg(cmd, nil)
			So(err, ShouldNotBeNil)
		})
	})
}
