package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/playcore/playcore/backend"
	"github.com/playcore/playcore/color"
	"github.com/playcore/playcore/config"
	"github.com/playcore/playcore/constant"
	"github.com/playcore/playcore/filesystem"
	"github.com/playcore/playcore/icon"
	"github.com/playcore/playcore/key"
	"github.com/playcore/playcore/log"
	"github.com/playcore/playcore/playlist"
	"github.com/playcore/playcore/style"
	"github.com/playcore/playcore/where"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configChecks reject values that would only fail once the player starts.
var configChecks = map[string]func(v any) error{
	key.PlayerBackend: func(v any) error {
		_, err := backend.Lookup(backend.Kind(v.(string)))
		return err
	},
	key.PlayerVerbosity: func(v any) error {
		_, err := log.ParseVerbosity(v.(string))
		return err
	},
	key.PlaylistLoop: func(v any) error {
		_, err := playlist.ParseLoop(v.(string))
		return err
	},
	key.BackendNullLength: func(v any) error {
		if v.(time.Duration) <= 0 {
			return fmt.Errorf("length must be positive, got %s", v)
		}
		return nil
	},
	key.IconsVariant: func(v any) error {
		if !lo.Contains(icon.AvailableVariants(), v.(string)) {
			return fmt.Errorf("unknown icons variant %q", v)
		}
		return nil
	},
	key.LogsLevel: func(v any) error {
		_, err := logrus.ParseLevel(v.(string))
		return err
	},
}

func errUnknownKey(key string) error {
	closest := lo.MinBy(lo.Keys(config.Default), func(a string, b string) bool {
		return levenshtein.Distance(key, a) < levenshtein.Distance(key, b)
	})
	return fmt.Errorf(
		"unknown key %s, did you mean %s?",
		style.Fg(color.Red)(key),
		style.Fg(color.Yellow)(closest),
	)
}

// parseConfigValue converts raw to the type of the key's default and checks it.
func parseConfigValue(name string, raw []string) (any, error) {
	field, ok := config.Default[name]
	if !ok {
		return nil, errUnknownKey(name)
	}
	if len(raw) == 0 {
		return nil, errors.New("value is required")
	}

	var (
		v   any
		err error
	)
	switch field.Value.(type) {
	case string:
		v = raw[0]
	case int:
		v, err = strconv.Atoi(raw[0])
	case bool:
		v, err = strconv.ParseBool(raw[0])
	case time.Duration:
		v, err = time.ParseDuration(raw[0])
	case []string:
		v = raw
	default:
		return nil, fmt.Errorf("%s can not be set from the command line", name)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid value for %s: %w", name, err)
	}

	if check, ok := configChecks[name]; ok {
		if err := check(v); err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", name, err)
		}
	}
	return v, nil
}

// writeConfig saves viper's settings, creating the file on first use.
func writeConfig() error {
	err := viper.WriteConfig()
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return viper.SafeWriteConfig()
	}
	return err
}

func configPath() string {
	return filepath.Join(where.Config(), constant.App+".toml")
}

func completionConfigKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	keys := lo.Keys(config.Default)
	sort.Strings(keys)
	return keys, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.PersistentFlags().StringP("key", "k", "", "Configuration key, instead of the first argument")
	_ = configCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
	configCmd.SetOut(os.Stdout)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change the player defaults",
}

// keyArg picks the key from the arguments or the --key flag.
func keyArg(cmd *cobra.Command, args []string) ([]string, string, error) {
	if flag := lo.Must(cmd.Flags().GetString("key")); flag != "" {
		return args, flag, nil
	}
	if len(args) == 0 {
		return nil, "", errors.New("key is required as an argument or --key flag")
	}
	return args[1:], args[0], nil
}

func init() {
	configCmd.AddCommand(configInfoCmd)
	configInfoCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON array")
}

var configInfoCmd = &cobra.Command{
	Use:               "info [key...]",
	Short:             "Describe configuration keys, all of them by default",
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		if flag := lo.Must(cmd.Flags().GetString("key")); flag != "" {
			args = append(args, flag)
		}

		fields := lo.Values(config.Default)
		if len(args) > 0 {
			fields = lo.Map(args, func(name string, _ int) config.Field {
				field, ok := config.Default[name]
				if !ok {
					handleErr(errUnknownKey(name))
				}
				return field
			})
		}
		sort.Slice(fields, func(i, j int) bool {
			return fields[i].Key < fields[j].Key
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(fields))
			return
		}

		for i := range fields {
			cmd.Print(fields[i].Pretty())
			if i < len(fields)-1 {
				cmd.Println()
				cmd.Println()
			}
		}
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

var configSetCmd = &cobra.Command{
	Use:               "set [key] value...",
	Short:             "Validate and store a configuration value",
	Example:           "  playcore config set playlist.loop playlist\n  playcore config set -k backend.null.length 90s",
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		raw, name, err := keyArg(cmd, args)
		handleErr(err)

		v, err := parseConfigValue(name, raw)
		handleErr(err)

		viper.Set(name, v)
		handleErr(writeConfig())
		cmd.Printf(
			"%s %s = %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(name),
			style.Fg(color.Yellow)(fmt.Sprint(v)),
		)
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
}

var configGetCmd = &cobra.Command{
	Use:               "get [key]",
	Short:             "Print the effective value of a configuration key",
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		_, name, err := keyArg(cmd, args)
		handleErr(err)

		if _, ok := config.Default[name]; !ok {
			handleErr(errUnknownKey(name))
		}
		cmd.Println(viper.Get(name))
	},
}

func init() {
	configCmd.AddCommand(configWriteCmd)
	configWriteCmd.Flags().BoolP("force", "f", false, "Replace the existing file")
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the effective configuration to " + constant.App + ".toml",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path := configPath()
		if lo.Must(cmd.Flags().GetBool("force")) {
			if err := filesystem.API().Remove(path); err != nil && !os.IsNotExist(err) {
				handleErr(err)
			}
		}

		handleErr(viper.SafeWriteConfig())
		cmd.Printf("%s wrote %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), path)
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)
	configResetCmd.Flags().BoolP("all", "a", false, "Reset every key")
}

var configResetCmd = &cobra.Command{
	Use:               "reset [key]",
	Short:             "Restore the default of a key, or of every key with --all",
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("all")) {
			for name, field := range config.Default {
				viper.Set(name, field.Value)
			}
			handleErr(writeConfig())
			cmd.Printf("%s every key reset\n", style.Fg(color.Green)(icon.Get(icon.Success)))
			return
		}

		_, name, err := keyArg(cmd, args)
		handleErr(err)

		field, ok := config.Default[name]
		if !ok {
			handleErr(errUnknownKey(name))
		}
		viper.Set(name, field.Value)
		handleErr(writeConfig())
		cmd.Printf(
			"%s %s reset to %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(name),
			style.Fg(color.Yellow)(fmt.Sprint(field.Value)),
		)
	},
}
