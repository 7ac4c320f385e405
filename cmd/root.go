// Package cmd implements the command-line interface for playcore.
package cmd

import (
	"fmt"
	"os"
	"strings"

	_ "github.com/playcore/playcore/backend/mpv"
	_ "github.com/playcore/playcore/backend/null"
	"github.com/playcore/playcore/color"
	"github.com/playcore/playcore/constant"
	"github.com/playcore/playcore/icon"
	"github.com/playcore/playcore/key"
	"github.com/playcore/playcore/log"
	"github.com/playcore/playcore/style"
	"github.com/playcore/playcore/util"
	"github.com/playcore/playcore/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("backend", "b", "", "Engine used to play media")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("backend", completionBackends))
	lo.Must0(viper.BindPFlag(key.PlayerBackend, rootCmd.PersistentFlags().Lookup("backend")))

	rootCmd.PersistentFlags().String("verbosity", "", "Threshold of the engine messages: none, verbose, info, warning, error, critical")
	lo.Must0(viper.BindPFlag(key.PlayerVerbosity, rootCmd.PersistentFlags().Lookup("verbosity")))

	registerPlayFlags(rootCmd)
	rootCmd.SetOut(os.Stdout)

	// Leftovers of previous runs.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

var rootCmd = &cobra.Command{
	Use:   constant.App + " [location...]",
	Short: "A media player engine with a playlist and a terminal frontend",
	Long: constant.Logo + "\n" +
		style.New().Italic(true).Foreground(color.HiPurple).Render("    - Play files, discs, tuners and streams through a pluggable engine"),
	Example: `  playcore ~/music/track.ogg http://radio.example/stream
  playcore --continue
  playcore -b null --loop playlist cdda://1-3@/dev/sr0`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		if len(args) == 0 && !lo.Must(cmd.Flags().GetBool("continue")) {
			handleErr(cmd.Help())
			return
		}

		handleErr(runPlay(cmd, args))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
