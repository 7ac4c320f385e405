package cmd

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/playcore/playcore/backend"
	"github.com/playcore/playcore/color"
	"github.com/playcore/playcore/key"
	"github.com/playcore/playcore/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type backendInfo struct {
	Kind         backend.Kind `json:"kind"`
	Default      bool         `json:"default"`
	Capabilities []string     `json:"capabilities"`
}

func init() {
	rootCmd.AddCommand(backendsCmd)
	backendsCmd.Flags().BoolP("capabilities", "C", false, "List the operations each backend implements")
	backendsCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON array")
	backendsCmd.SetOut(os.Stdout)
}

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List the available playback engines",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		infos := lo.Map(backend.Kinds(), func(kind backend.Kind, _ int) backendInfo {
			factory := lo.Must(backend.Lookup(kind))
			// Binding only inspects the engine; nothing is started.
			ops := backend.Bind(string(kind), factory(), nil)
			return backendInfo{
				Kind:         kind,
				Default:      string(kind) == viper.GetString(key.PlayerBackend),
				Capabilities: ops.Capabilities(),
			}
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(infos))
			return
		}

		withCaps := lo.Must(cmd.Flags().GetBool("capabilities"))
		for _, info := range infos {
			name := style.New().Bold(true).Foreground(color.Purple).Render(string(info.Kind))
			if info.Default {
				name += " " + style.Faint("(default)")
			}
			cmd.Println(name)

			if withCaps {
				cmd.Println("  " + style.Fg(color.Yellow)(strings.Join(info.Capabilities, " ")))
			}
		}
	},
}
