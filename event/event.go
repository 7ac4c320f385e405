// Package event defines the codes delivered to playcore frontends and the dispatcher worker
// that delivers them.
package event

// Code identifies a player event.
type Code int

const (
	Unknown Code = iota
	PlaybackStart
	PlaybackStop
	PlaybackFinished
	PlaylistFinished
	PlaybackPause
	PlaybackUnpause
)

var codeNames = map[Code]string{
	Unknown:          "unknown",
	PlaybackStart:    "playback-start",
	PlaybackStop:     "playback-stop",
	PlaybackFinished: "playback-finished",
	PlaylistFinished: "playlist-finished",
	PlaybackPause:    "playback-pause",
	PlaybackUnpause:  "playback-unpause",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return codeNames[Unknown]
}

// Codes returns every known event code in declaration order.
func Codes() []Code {
	return []Code{Unknown, PlaybackStart, PlaybackStop, PlaybackFinished, PlaylistFinished, PlaybackPause, PlaybackUnpause}
}
