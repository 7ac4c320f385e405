package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/playcore/playcore/backend"
	"github.com/playcore/playcore/backend/mpv"
	"github.com/playcore/playcore/color"
	"github.com/playcore/playcore/event"
	"github.com/playcore/playcore/icon"
	"github.com/playcore/playcore/key"
	"github.com/playcore/playcore/log"
	"github.com/playcore/playcore/mrl"
	"github.com/playcore/playcore/player"
	"github.com/playcore/playcore/playlist"
	"github.com/playcore/playcore/session"
	"github.com/playcore/playcore/style"
	"github.com/playcore/playcore/tui"
	"github.com/playcore/playcore/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// eventBuffer bounds the events queued for the frontend. The callback drops the excess.
const eventBuffer = 64

func registerPlayFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("continue", "c", false, "Restore the playlist saved by the previous run")

	cmd.Flags().StringP("loop", "l", "", "Repeat policy: disable, element, playlist")
	lo.Must0(cmd.RegisterFlagCompletionFunc("loop", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"disable", "element", "playlist"}, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.PlaylistLoop, cmd.Flags().Lookup("loop")))

	cmd.Flags().Int("loop-count", 0, "Extra plays granted by the repeat policy, negative for forever")
	lo.Must0(viper.BindPFlag(key.PlaylistLoopCount, cmd.Flags().Lookup("loop-count")))

	cmd.Flags().BoolP("shuffle", "z", false, "Play in random order when looping the playlist")
	lo.Must0(viper.BindPFlag(key.PlaylistShuffle, cmd.Flags().Lookup("shuffle")))

	cmd.Flags().Bool("auto-advance", true, "Start the next item when one finishes")
	lo.Must0(viper.BindPFlag(key.PlayerAutoAdvance, cmd.Flags().Lookup("auto-advance")))

	cmd.Flags().Bool("tui", true, "Use the interactive interface when attached to a terminal")
	lo.Must0(viper.BindPFlag(key.TUIEnable, cmd.Flags().Lookup("tui")))

	cmd.Flags().BoolP("save-session", "S", true, "Save the playlist on exit")
	lo.Must0(viper.BindPFlag(key.SessionSaveOnExit, cmd.Flags().Lookup("save-session")))

	cmd.Flags().String("audio-output", "", "Audio driver passed to the engine")
	lo.Must0(viper.BindPFlag(key.PlayerAudioOutput, cmd.Flags().Lookup("audio-output")))

	cmd.Flags().String("video-output", "", "Video driver passed to the engine")
	lo.Must0(viper.BindPFlag(key.PlayerVideoOutput, cmd.Flags().Lookup("video-output")))

	cmd.Flags().StringSlice("subtitle", []string{}, "Subtitle file attached to the first location")
}

func completionBackends(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Map(backend.Kinds(), func(k backend.Kind, _ int) string {
		return string(k)
	}), cobra.ShellCompDirectiveNoFileComp
}

// newPlayer creates a player from the configuration. cb may be nil.
func newPlayer(cb player.Callback) (*player.Player, error) {
	kind := backend.Kind(viper.GetString(key.PlayerBackend))
	if kind == mpv.Kind {
		CheckDependencies(viper.GetString(key.BackendMPVExecutable))
	}

	verbosity, err := log.ParseVerbosity(viper.GetString(key.PlayerVerbosity))
	if err != nil {
		return nil, err
	}

	return player.New(kind, player.Options{
		AudioOutput: viper.GetString(key.PlayerAudioOutput),
		VideoOutput: viper.GetString(key.PlayerVideoOutput),
		Display:     os.Getenv("DISPLAY"),
		Verbosity:   verbosity,
		Mode:        lo.Ternary(viper.GetBool(key.PlayerAutoAdvance), player.Auto, player.Single),
	}, cb)
}

func runPlay(cmd *cobra.Command, args []string) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events := make(chan event.Code, eventBuffer)
	p, err := newPlayer(func(_ context.Context, code event.Code) {
		select {
		case events <- code:
		default:
			log.Warnf("event %s dropped", code)
		}
	})
	if err != nil {
		return err
	}
	defer func() {
		// The signal context may be done already.
		background := context.Background()
		if viper.GetBool(key.SessionSaveOnExit) {
			if saveErr := saveSession(background, p); saveErr != nil {
				log.Warnf("save session: %v", saveErr)
			}
		}
		err = errors.Join(err, p.Close(background))
		close(events)
	}()

	restored := false
	if lo.Must(cmd.Flags().GetBool("continue")) {
		s, err := session.Get()
		if err != nil {
			return err
		}
		if s == nil {
			return errors.New("no saved session")
		}
		if err := s.Restore(ctx, p); err != nil {
			return fmt.Errorf("restore session: %w", err)
		}
		restored = true
	}

	if err := appendLocations(ctx, p, args, lo.Must(cmd.Flags().GetStringSlice("subtitle"))); err != nil {
		return err
	}

	if !restored || cmd.Flags().Changed("loop") || cmd.Flags().Changed("loop-count") {
		loop, err := playlist.ParseLoop(viper.GetString(key.PlaylistLoop))
		if err != nil {
			return err
		}
		if err := p.SetLoop(ctx, loop, viper.GetInt(key.PlaylistLoopCount)); err != nil {
			return err
		}
	}
	if !restored || cmd.Flags().Changed("shuffle") {
		if err := p.SetShuffle(ctx, viper.GetBool(key.PlaylistShuffle)); err != nil {
			return err
		}
	}

	if err := p.Start(ctx); err != nil {
		return err
	}

	if viper.GetBool(key.TUIEnable) && term.IsTerminal(int(os.Stdout.Fd())) {
		return tui.Run(&tui.Options{
			Player: p,
			Events: events,
			Title:  fmt.Sprintf("%s %s", icon.Get(icon.Media), p.Backend()),
		})
	}

	status, err := p.Status(ctx)
	if err != nil {
		return err
	}
	cmd.Printf("%s %s queued\n", icon.Get(icon.Media), util.Quantify(status.Len, "item", "items"))

	return followEvents(ctx, cmd, p, events)
}

func appendLocations(ctx context.Context, p *player.Player, locations, subtitles []string) error {
	for i, location := range locations {
		m, err := mrl.Parse(location)
		if err != nil {
			return fmt.Errorf("%s: %w", location, err)
		}

		if i == 0 {
			for _, sub := range subtitles {
				if err := p.MRLAddSubtitle(ctx, m, sub); err != nil {
					return err
				}
			}
		}

		if err := p.Append(ctx, m, player.AddQueue); err != nil {
			return fmt.Errorf("%s: %w", location, err)
		}
	}
	return nil
}

func saveSession(ctx context.Context, p *player.Player) error {
	s, err := session.Capture(ctx, p)
	if err != nil {
		return err
	}
	if len(s.Items) == 0 {
		return session.Clear()
	}
	return session.Save(s)
}

// followEvents prints what the player reports until the playlist is done or the context ends.
func followEvents(ctx context.Context, cmd *cobra.Command, p *player.Player, events <-chan event.Code) error {
	mode, err := p.Mode(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case code := <-events:
			printEvent(ctx, cmd, p, code)

			switch {
			case code == event.PlaylistFinished:
				return nil
			case code == event.PlaybackFinished && mode == player.Single:
				return nil
			}
		}
	}
}

func printEvent(ctx context.Context, cmd *cobra.Command, p *player.Player, code event.Code) {
	var symbol string
	switch code {
	case event.PlaybackStart:
		symbol = icon.Get(icon.Play)
	case event.PlaybackPause:
		symbol = icon.Get(icon.Pause)
	case event.PlaybackUnpause:
		symbol = icon.Get(icon.Play)
	case event.PlaybackStop, event.PlaybackFinished:
		symbol = icon.Get(icon.Stop)
	case event.PlaylistFinished:
		symbol = icon.Get(icon.Success)
	default:
		symbol = icon.Get(icon.Info)
	}

	line := fmt.Sprintf("%s %s", symbol, style.Fg(color.Purple)(code.String()))
	if code == event.PlaybackStart {
		if res, err := p.MRLResource(ctx, nil); err == nil {
			line += " " + style.Fg(color.Yellow)(res.String())
		}
	}
	cmd.Println(line)
}
