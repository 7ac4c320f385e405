package mrl

import "time"

// Properties describe the stream behind an MRL.
type Properties struct {
	Size     int64            `json:"size"`
	Seekable bool             `json:"seekable"`
	Length   time.Duration    `json:"length"`
	Audio    *AudioProperties `json:"audio,omitempty"`
	Video    *VideoProperties `json:"video,omitempty"`
}

type AudioProperties struct {
	Codec      string `json:"codec,omitempty"`
	Bitrate    int    `json:"bitrate,omitempty"`
	Bits       int    `json:"bits,omitempty"`
	Channels   int    `json:"channels,omitempty"`
	SampleRate int    `json:"sample_rate,omitempty"`
}

type VideoProperties struct {
	Codec         string        `json:"codec,omitempty"`
	Bitrate       int           `json:"bitrate,omitempty"`
	Width         int           `json:"width,omitempty"`
	Height        int           `json:"height,omitempty"`
	Aspect        float64       `json:"aspect,omitempty"`
	Channels      int           `json:"channels,omitempty"`
	Streams       int           `json:"streams,omitempty"`
	FrameDuration time.Duration `json:"frame_duration,omitempty"`
}

// Clone returns a deep copy.
func (p *Properties) Clone() *Properties {
	if p == nil {
		return nil
	}
	c := *p
	if p.Audio != nil {
		a := *p.Audio
		c.Audio = &a
	}
	if p.Video != nil {
		v := *p.Video
		c.Video = &v
	}
	return &c
}

// Metadata holds the descriptive tags of an MRL.
type Metadata struct {
	Title   string `json:"title,omitempty"`
	Artist  string `json:"artist,omitempty"`
	Genre   string `json:"genre,omitempty"`
	Album   string `json:"album,omitempty"`
	Year    string `json:"year,omitempty"`
	Track   string `json:"track,omitempty"`
	Comment string `json:"comment,omitempty"`

	// CD or DVD is set for optical media when the backend knows it.
	CD  *CDMetadata  `json:"cd,omitempty"`
	DVD *DVDMetadata `json:"dvd,omitempty"`
}

type CDMetadata struct {
	DiscID uint32    `json:"disc_id"`
	Tracks []CDTrack `json:"tracks,omitempty"`
}

type CDTrack struct {
	Name   string        `json:"name,omitempty"`
	Length time.Duration `json:"length"`
}

type DVDMetadata struct {
	VolumeID string     `json:"volume_id,omitempty"`
	Titles   []DVDTitle `json:"titles,omitempty"`
}

type DVDTitle struct {
	Chapters int           `json:"chapters"`
	Angles   int           `json:"angles"`
	Length   time.Duration `json:"length"`
}

// Clone returns a deep copy.
func (m *Metadata) Clone() *Metadata {
	if m == nil {
		return nil
	}
	c := *m
	if m.CD != nil {
		cd := *m.CD
		cd.Tracks = append([]CDTrack(nil), m.CD.Tracks...)
		c.CD = &cd
	}
	if m.DVD != nil {
		dvd := *m.DVD
		dvd.Titles = append([]DVDTitle(nil), m.DVD.Titles...)
		c.DVD = &dvd
	}
	return &c
}

// CDTrack returns track n (1-based) when CD metadata is known.
func (m *Metadata) CDTrack(n int) (CDTrack, bool) {
	if m == nil || m.CD == nil || n < 1 || n > len(m.CD.Tracks) {
		return CDTrack{}, false
	}
	return m.CD.Tracks[n-1], true
}

// DVDTitle returns title n (1-based) when DVD metadata is known.
func (m *Metadata) DVDTitle(n int) (DVDTitle, bool) {
	if m == nil || m.DVD == nil || n < 1 || n > len(m.DVD.Titles) {
		return DVDTitle{}, false
	}
	return m.DVD.Titles[n-1], true
}
