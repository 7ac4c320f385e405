package playlist

import (
	"fmt"
	"strings"
)

// Loop is the repeat policy applied by Advance.
type Loop int

const (
	LoopDisable Loop = iota
	LoopElement
	LoopPlaylist
)

var loopNames = [...]string{
	LoopDisable:  "disable",
	LoopElement:  "element",
	LoopPlaylist: "playlist",
}

func (l Loop) String() string {
	if l < 0 || int(l) >= len(loopNames) {
		return fmt.Sprintf("loop(%d)", int(l))
	}
	return loopNames[l]
}

// ParseLoop accepts the names printed by String. "off" and "none" mean LoopDisable.
func ParseLoop(s string) (Loop, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "disable", "off", "none", "":
		return LoopDisable, nil
	case "element":
		return LoopElement, nil
	case "playlist":
		return LoopPlaylist, nil
	default:
		return LoopDisable, fmt.Errorf("unknown loop mode %q", s)
	}
}
