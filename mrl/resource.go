package mrl

import (
	"fmt"
	"strings"
)

// Resource is the kind-specific argument block of an MRL. The set of implementations is closed.
type Resource interface {
	fmt.Stringer
	family() family
	clone() Resource
}

// Local is a file on a local or mounted filesystem.
type Local struct {
	Location string `json:"location"`
}

// CD addresses an audio compact disc.
type CD struct {
	Device     string `json:"device,omitempty"`
	Speed      int    `json:"speed,omitempty"`
	TrackStart int    `json:"track_start,omitempty"`
	TrackEnd   int    `json:"track_end,omitempty"`
}

// VideoDisc addresses a DVD or VCD.
type VideoDisc struct {
	Device       string `json:"device,omitempty"`
	TitleStart   int    `json:"title_start,omitempty"`
	TitleEnd     int    `json:"title_end,omitempty"`
	Angle        int    `json:"angle,omitempty"`
	AudioLang    string `json:"audio_lang,omitempty"`
	SubtitleLang string `json:"subtitle_lang,omitempty"`
}

// Tuner addresses an analog or digital TV or radio channel.
type Tuner struct {
	Channel      string `json:"channel"`
	Input        int    `json:"input,omitempty"`
	Device       string `json:"device,omitempty"`
	Driver       string `json:"driver,omitempty"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	FPS          int    `json:"fps,omitempty"`
	OutputFormat string `json:"output_format,omitempty"`
	Norm         string `json:"norm,omitempty"`
}

// Recorder addresses a Video Disk Recorder, local or over the network.
type Recorder struct {
	Device string `json:"device,omitempty"`
	Driver string `json:"driver,omitempty"`
}

// Network is any stream reached through a URL.
type Network struct {
	URL       string `json:"url"`
	Username  string `json:"username,omitempty"`
	Password  string `json:"password,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

func (*Local) family() family     { return familyLocal }
func (*CD) family() family        { return familyCD }
func (*VideoDisc) family() family { return familyVideoDisc }
func (*Tuner) family() family     { return familyTuner }
func (*Recorder) family() family  { return familyVDR }
func (*Network) family() family   { return familyNetwork }

func (r *Local) clone() Resource     { c := *r; return &c }
func (r *CD) clone() Resource        { c := *r; return &c }
func (r *VideoDisc) clone() Resource { c := *r; return &c }
func (r *Tuner) clone() Resource     { c := *r; return &c }
func (r *Recorder) clone() Resource  { c := *r; return &c }
func (r *Network) clone() Resource   { c := *r; return &c }

func (r *Local) String() string { return r.Location }

func (r *CD) String() string {
	s := r.Device
	if r.TrackStart > 0 {
		s += fmt.Sprintf(" track %d", r.TrackStart)
		if r.TrackEnd > r.TrackStart {
			s += fmt.Sprintf("-%d", r.TrackEnd)
		}
	}
	return strings.TrimSpace(s)
}

func (r *VideoDisc) String() string {
	s := r.Device
	if r.TitleStart > 0 {
		s += fmt.Sprintf(" title %d", r.TitleStart)
		if r.TitleEnd > r.TitleStart {
			s += fmt.Sprintf("-%d", r.TitleEnd)
		}
	}
	return strings.TrimSpace(s)
}

func (r *Tuner) String() string {
	if r.Device == "" {
		return r.Channel
	}
	return r.Device + " " + r.Channel
}

func (r *Recorder) String() string { return r.Device }

// String never prints the password.
func (r *Network) String() string {
	if r.Username == "" {
		return r.URL
	}
	return r.Username + "@" + r.URL
}

// newResource returns an empty argument block of the family k belongs to.
func newResource(k Kind) Resource {
	switch k.family() {
	case familyLocal:
		return &Local{}
	case familyCD:
		return &CD{}
	case familyVideoDisc:
		return &VideoDisc{}
	case familyTuner:
		return &Tuner{}
	case familyVDR:
		return &Recorder{}
	default:
		return &Network{}
	}
}
