package backend

import (
	"fmt"
	"time"
)

// Whence says how Seek interprets its value.
type Whence int

const (
	SeekRelative Whence = iota // seconds from the current position
	SeekAbsolute               // seconds from the start
	SeekPercent                // percent of the length
)

func (w Whence) String() string {
	switch w {
	case SeekRelative:
		return "relative"
	case SeekAbsolute:
		return "absolute"
	case SeekPercent:
		return "percent"
	default:
		return fmt.Sprintf("whence(%d)", int(w))
	}
}

// Aspect is a picture setting.
type Aspect int

const (
	AspectBrightness Aspect = iota
	AspectContrast
	AspectGamma
	AspectHue
	AspectSaturation
)

func (a Aspect) String() string {
	switch a {
	case AspectBrightness:
		return "brightness"
	case AspectContrast:
		return "contrast"
	case AspectGamma:
		return "gamma"
	case AspectHue:
		return "hue"
	case AspectSaturation:
		return "saturation"
	default:
		return fmt.Sprintf("aspect(%d)", int(a))
	}
}

type Alignment int

const (
	AlignTop Alignment = iota
	AlignCenter
	AlignBottom
)

// Nav is a DVD menu command.
type Nav int

const (
	NavUp Nav = iota
	NavDown
	NavLeft
	NavRight
	NavMenu
	NavSelect
	NavPrevMenu
	NavMouseClick
)

// VDRKey is a remote control key sent to a Video Disk Recorder.
type VDRKey int

const (
	VDRUp VDRKey = iota
	VDRDown
	VDRLeft
	VDRRight
	VDROk
	VDRBack
	VDRMenu
	VDRRed
	VDRGreen
	VDRYellow
	VDRBlue
	VDR0
	VDR1
	VDR2
	VDR3
	VDR4
	VDR5
	VDR6
	VDR7
	VDR8
	VDR9
	VDRPlay
	VDRPause
	VDRStop
	VDRRecord
	VDRFastForward
	VDRFastRewind
	VDRNext
	VDRPrevious
	VDRPower
	VDRChannelUp
	VDRChannelDown
	VDRInfo
	VDRAudio
	VDRSubtitles
)

type ImageFormat int

const (
	ImageJPEG ImageFormat = iota
	ImagePNG
	ImagePPM
)

func (f ImageFormat) Ext() string {
	switch f {
	case ImagePNG:
		return ".png"
	case ImagePPM:
		return ".ppm"
	default:
		return ".jpg"
	}
}

// Snapshot asks for one frame of an MRL written to Path.
type Snapshot struct {
	Position time.Duration
	Format   ImageFormat
	Path     string
}
