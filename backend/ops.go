package backend

import (
	"fmt"
	"slices"
	"time"

	"github.com/playcore/playcore/log"
	"github.com/playcore/playcore/mrl"
)

// Capability names reported by Ops.Capabilities.
const (
	CapVerbosity  = "verbosity"
	CapResource   = "resource"
	CapProperties = "properties"
	CapMetadata   = "metadata"
	CapSnapshot   = "snapshot"
	CapStart      = "start"
	CapStop       = "stop"
	CapPause      = "pause"
	CapSeek       = "seek"
	CapChapter    = "chapter"
	CapPosition   = "position"
	CapSpeed      = "speed"
	CapVolume     = "volume"
	CapMute       = "mute"
	CapAudioDelay = "audio-delay"
	CapAudioTrack = "audio-track"
	CapAspect     = "aspect"
	CapSubtitles  = "subtitles"
	CapDVD        = "dvd"
	CapTV         = "tv"
	CapRadio      = "radio"
	CapVDR        = "vdr"
)

// Ops is the bound operation table of one backend. Every slot is non-nil.
type Ops struct {
	name    string
	backend Backend
	caps    []string
	log     *log.Logger

	SetVerbosity       func(v log.Verbosity)
	CanPlay            func(kind mrl.Kind) bool
	RetrieveProperties func(m *mrl.MRL, p *mrl.Properties) error
	RetrieveMetadata   func(m *mrl.MRL, md *mrl.Metadata) error
	Snapshot           func(m *mrl.MRL, req Snapshot) error

	Start           func(m *mrl.MRL) error
	Stop            func() error
	Pause           func() error
	Seek            func(value int, whence Whence) error
	SeekChapter     func(value int, absolute bool) error
	TimePosition    func() (time.Duration, error)
	PercentPosition func() (int, error)
	SetSpeed        func(speed float64) error

	Volume        func() (int, error)
	SetVolume     func(v int) error
	Mute          func() (bool, error)
	SetMute       func(on bool) error
	SetAudioDelay func(d time.Duration, absolute bool) error
	AudioSelect   func(id int) error
	AudioPrevious func() error
	AudioNext     func() error

	SetAspect func(a Aspect, value int, absolute bool) error
	Aspect    func(a Aspect) (int, error)

	SetSubtitleDelay      func(d time.Duration, absolute bool) error
	SetSubtitleAlignment  func(a Alignment) error
	SetSubtitlePosition   func(pos int) error
	SetSubtitleVisibility func(visible bool) error
	SetSubtitleScale      func(value int, absolute bool) error
	SubtitleSelect        func(id int) error
	SubtitlePrevious      func() error
	SubtitleNext          func() error

	DVDNav           func(cmd Nav) error
	DVDAngleSelect   func(angle int) error
	DVDAnglePrevious func() error
	DVDAngleNext     func() error
	DVDTitleSelect   func(title int) error
	DVDTitlePrevious func() error
	DVDTitleNext     func() error

	TVChannelSelect      func(channel string) error
	TVChannelPrevious    func() error
	TVChannelNext        func() error
	RadioChannelSelect   func(channel string) error
	RadioChannelPrevious func() error
	RadioChannelNext     func() error

	VDR func(cmd VDRKey) error
}

// Name returns the name the backend was bound under.
func (o *Ops) Name() string { return o.name }

func (o *Ops) Init(h Host) error { return o.backend.Init(h) }
func (o *Ops) Uninit()           { o.backend.Uninit() }

// Capabilities lists what the backend implements, sorted.
func (o *Ops) Capabilities() []string {
	return slices.Clone(o.caps)
}

func (o *Ops) Supports(capability string) bool {
	_, found := slices.BinarySearch(o.caps, capability)
	return found
}

func (o *Ops) unsupported(op string) error {
	o.log.Warnf("%s: %s is not supported", o.name, op)
	return fmt.Errorf("%w: %s", ErrUnsupported, op)
}

func (o *Ops) has(capability string) {
	o.caps = append(o.caps, capability)
}

// Bind builds the operation table of b. The capability checks happen here, once.
func Bind(name string, b Backend, l *log.Logger) *Ops {
	if l == nil {
		l = log.New(nil, log.VerbosityWarning)
	}
	o := &Ops{name: name, backend: b, log: l.With("backend", name)}

	o.bindGeneral(b)
	o.bindPlayback(b)
	o.bindAudio(b)
	o.bindVideo(b)
	o.bindSubtitles(b)
	o.bindRemote(b)

	slices.Sort(o.caps)
	return o
}

func (o *Ops) bindGeneral(b Backend) {
	if x, ok := b.(VerbositySetter); ok {
		o.has(CapVerbosity)
		o.SetVerbosity = x.SetVerbosity
	} else {
		// Verbosity is advisory; no warning for it.
		o.SetVerbosity = func(log.Verbosity) {}
	}

	if x, ok := b.(ResourceChecker); ok {
		o.has(CapResource)
		o.CanPlay = x.CanPlay
	} else {
		o.CanPlay = func(mrl.Kind) bool {
			_ = o.unsupported("resource check")
			return true
		}
	}

	if x, ok := b.(PropertiesRetriever); ok {
		o.has(CapProperties)
		o.RetrieveProperties = x.RetrieveProperties
	} else {
		o.RetrieveProperties = func(*mrl.MRL, *mrl.Properties) error { return o.unsupported("properties") }
	}

	if x, ok := b.(MetadataRetriever); ok {
		o.has(CapMetadata)
		o.RetrieveMetadata = x.RetrieveMetadata
	} else {
		o.RetrieveMetadata = func(*mrl.MRL, *mrl.Metadata) error { return o.unsupported("metadata") }
	}

	if x, ok := b.(Snapshotter); ok {
		o.has(CapSnapshot)
		o.Snapshot = x.Snapshot
	} else {
		o.Snapshot = func(*mrl.MRL, Snapshot) error { return o.unsupported("snapshot") }
	}
}

func (o *Ops) bindPlayback(b Backend) {
	if x, ok := b.(Starter); ok {
		o.has(CapStart)
		o.Start = x.Start
	} else {
		o.Start = func(*mrl.MRL) error { return o.unsupported("start") }
	}

	if x, ok := b.(Stopper); ok {
		o.has(CapStop)
		o.Stop = x.Stop
	} else {
		o.Stop = func() error { return o.unsupported("stop") }
	}

	if x, ok := b.(Pauser); ok {
		o.has(CapPause)
		o.Pause = x.Pause
	} else {
		o.Pause = func() error { return o.unsupported("pause") }
	}

	if x, ok := b.(Seeker); ok {
		o.has(CapSeek)
		o.Seek = x.Seek
	} else {
		o.Seek = func(int, Whence) error { return o.unsupported("seek") }
	}

	if x, ok := b.(ChapterSeeker); ok {
		o.has(CapChapter)
		o.SeekChapter = x.SeekChapter
	} else {
		o.SeekChapter = func(int, bool) error { return o.unsupported("chapter seek") }
	}

	if x, ok := b.(Positioner); ok {
		o.has(CapPosition)
		o.TimePosition = x.TimePosition
		o.PercentPosition = x.PercentPosition
	} else {
		o.TimePosition = func() (time.Duration, error) { return 0, o.unsupported("time position") }
		o.PercentPosition = func() (int, error) { return 0, o.unsupported("percent position") }
	}

	if x, ok := b.(SpeedSetter); ok {
		o.has(CapSpeed)
		o.SetSpeed = x.SetSpeed
	} else {
		o.SetSpeed = func(float64) error { return o.unsupported("speed") }
	}
}

func (o *Ops) bindAudio(b Backend) {
	if x, ok := b.(VolumeController); ok {
		o.has(CapVolume)
		o.Volume = x.Volume
		o.SetVolume = x.SetVolume
	} else {
		o.Volume = func() (int, error) { return 0, o.unsupported("volume") }
		o.SetVolume = func(int) error { return o.unsupported("set volume") }
	}

	if x, ok := b.(MuteController); ok {
		o.has(CapMute)
		o.Mute = x.Mute
		o.SetMute = x.SetMute
	} else {
		o.Mute = func() (bool, error) { return false, o.unsupported("mute") }
		o.SetMute = func(bool) error { return o.unsupported("set mute") }
	}

	if x, ok := b.(AudioDelayer); ok {
		o.has(CapAudioDelay)
		o.SetAudioDelay = x.SetAudioDelay
	} else {
		o.SetAudioDelay = func(time.Duration, bool) error { return o.unsupported("audio delay") }
	}

	if x, ok := b.(AudioSelector); ok {
		o.has(CapAudioTrack)
		o.AudioSelect = x.AudioSelect
		o.AudioPrevious = x.AudioPrevious
		o.AudioNext = x.AudioNext
	} else {
		o.AudioSelect = func(int) error { return o.unsupported("audio select") }
		o.AudioPrevious = func() error { return o.unsupported("audio previous") }
		o.AudioNext = func() error { return o.unsupported("audio next") }
	}
}

func (o *Ops) bindVideo(b Backend) {
	if x, ok := b.(AspectController); ok {
		o.has(CapAspect)
		o.SetAspect = x.SetAspect
		o.Aspect = x.Aspect
	} else {
		o.SetAspect = func(Aspect, int, bool) error { return o.unsupported("set aspect") }
		o.Aspect = func(Aspect) (int, error) { return 0, o.unsupported("aspect") }
	}
}

func (o *Ops) bindSubtitles(b Backend) {
	if x, ok := b.(SubtitleController); ok {
		o.has(CapSubtitles)
		o.SetSubtitleDelay = x.SetSubtitleDelay
		o.SetSubtitleAlignment = x.SetSubtitleAlignment
		o.SetSubtitlePosition = x.SetSubtitlePosition
		o.SetSubtitleVisibility = x.SetSubtitleVisibility
		o.SetSubtitleScale = x.SetSubtitleScale
		o.SubtitleSelect = x.SubtitleSelect
		o.SubtitlePrevious = x.SubtitlePrevious
		o.SubtitleNext = x.SubtitleNext
		return
	}

	o.SetSubtitleDelay = func(time.Duration, bool) error { return o.unsupported("subtitle delay") }
	o.SetSubtitleAlignment = func(Alignment) error { return o.unsupported("subtitle alignment") }
	o.SetSubtitlePosition = func(int) error { return o.unsupported("subtitle position") }
	o.SetSubtitleVisibility = func(bool) error { return o.unsupported("subtitle visibility") }
	o.SetSubtitleScale = func(int, bool) error { return o.unsupported("subtitle scale") }
	o.SubtitleSelect = func(int) error { return o.unsupported("subtitle select") }
	o.SubtitlePrevious = func() error { return o.unsupported("subtitle previous") }
	o.SubtitleNext = func() error { return o.unsupported("subtitle next") }
}

func (o *Ops) bindRemote(b Backend) {
	if x, ok := b.(DVDNavigator); ok {
		o.has(CapDVD)
		o.DVDNav = x.DVDNav
		o.DVDAngleSelect = x.DVDAngleSelect
		o.DVDAnglePrevious = x.DVDAnglePrevious
		o.DVDAngleNext = x.DVDAngleNext
		o.DVDTitleSelect = x.DVDTitleSelect
		o.DVDTitlePrevious = x.DVDTitlePrevious
		o.DVDTitleNext = x.DVDTitleNext
	} else {
		o.DVDNav = func(Nav) error { return o.unsupported("dvd navigation") }
		o.DVDAngleSelect = func(int) error { return o.unsupported("dvd angle select") }
		o.DVDAnglePrevious = func() error { return o.unsupported("dvd angle previous") }
		o.DVDAngleNext = func() error { return o.unsupported("dvd angle next") }
		o.DVDTitleSelect = func(int) error { return o.unsupported("dvd title select") }
		o.DVDTitlePrevious = func() error { return o.unsupported("dvd title previous") }
		o.DVDTitleNext = func() error { return o.unsupported("dvd title next") }
	}

	if x, ok := b.(TVTuner); ok {
		o.has(CapTV)
		o.TVChannelSelect = x.TVChannelSelect
		o.TVChannelPrevious = x.TVChannelPrevious
		o.TVChannelNext = x.TVChannelNext
	} else {
		o.TVChannelSelect = func(string) error { return o.unsupported("tv channel select") }
		o.TVChannelPrevious = func() error { return o.unsupported("tv channel previous") }
		o.TVChannelNext = func() error { return o.unsupported("tv channel next") }
	}

	if x, ok := b.(RadioTuner); ok {
		o.has(CapRadio)
		o.RadioChannelSelect = x.RadioChannelSelect
		o.RadioChannelPrevious = x.RadioChannelPrevious
		o.RadioChannelNext = x.RadioChannelNext
	} else {
		o.RadioChannelSelect = func(string) error { return o.unsupported("radio channel select") }
		o.RadioChannelPrevious = func() error { return o.unsupported("radio channel previous") }
		o.RadioChannelNext = func() error { return o.unsupported("radio channel next") }
	}

	if x, ok := b.(VDRController); ok {
		o.has(CapVDR)
		o.VDR = x.VDR
	} else {
		o.VDR = func(VDRKey) error { return o.unsupported("vdr") }
	}
}
