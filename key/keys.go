// Package key lists the configuration keys.
package key

// Player construction.
const (
	PlayerBackend     = "player.backend"
	PlayerAudioOutput = "player.audio_output"
	PlayerVideoOutput = "player.video_output"
	PlayerVerbosity   = "player.verbosity"
	PlayerAutoAdvance = "player.auto_advance"
)

// Playlist policy applied at start.
const (
	PlaylistLoop      = "playlist.loop"
	PlaylistLoopCount = "playlist.loop_count"
	PlaylistShuffle   = "playlist.shuffle"
)

// Engine adapters.
const (
	BackendNullLength    = "backend.null.length"
	BackendMPVExecutable = "backend.mpv.executable"
)

const (
	SessionSaveOnExit = "session.save_on_exit"
)

const (
	TUIEnable = "tui.enable"
)

const (
	IconsVariant = "icons.variant"
)

// Logging. Nothing is written unless LogsWrite is set.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

const (
	CliColored = "cli.colored"
)
