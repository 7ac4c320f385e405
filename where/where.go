// Package where resolves the directories and files playcore reads and writes.
package where

import (
	"os"
	"path/filepath"

	"github.com/playcore/playcore/constant"
	"github.com/playcore/playcore/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "PLAYCORE_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config returns the configuration directory, creating it when needed.
// It follows os.UserConfigDir unless PLAYCORE_CONFIG_PATH is set.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.App))
}

func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Session is the file the last playlist is saved to.
func Session() string {
	return filepath.Join(Cache(), "session.json")
}

// Temp holds IPC sockets and other short-lived files.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.App))
}
