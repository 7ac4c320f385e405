package tui

type state int

const (
	playlistState state = iota
	infoState
	errorState
)
