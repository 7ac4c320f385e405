package mrl

import (
	"fmt"
	"strings"
)

// Kind is the type of resource an MRL points to.
type Kind int

const (
	File Kind = iota
	CDDA
	CDDB
	DVD
	DVDNav
	VCD
	Radio
	TV
	DVB
	VDR
	NetVDR
	FTP
	HTTP
	MMS
	RTP
	RTSP
	SMB
	TCP
	UDP
	UNSV
)

var kindNames = [...]string{
	File:   "file",
	CDDA:   "cdda",
	CDDB:   "cddb",
	DVD:    "dvd",
	DVDNav: "dvdnav",
	VCD:    "vcd",
	Radio:  "radio",
	TV:     "tv",
	DVB:    "dvb",
	VDR:    "vdr",
	NetVDR: "netvdr",
	FTP:    "ftp",
	HTTP:   "http",
	MMS:    "mms",
	RTP:    "rtp",
	RTSP:   "rtsp",
	SMB:    "smb",
	TCP:    "tcp",
	UDP:    "udp",
	UNSV:   "unsv",
}

// Kinds returns every resource kind.
func Kinds() []Kind {
	kinds := make([]Kind, len(kindNames))
	for i := range kindNames {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < len(kindNames)
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind is the inverse of String. "https" is accepted as HTTP.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(s)
	if s == "https" {
		return HTTP, nil
	}
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText lets kinds appear by name in JSON.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// family groups the kinds sharing one argument variant.
type family int

const (
	familyLocal family = iota
	familyCD
	familyVideoDisc
	familyTuner
	familyVDR
	familyNetwork
)

func (k Kind) family() family {
	switch k {
	case File:
		return familyLocal
	case CDDA, CDDB:
		return familyCD
	case DVD, DVDNav, VCD:
		return familyVideoDisc
	case Radio, TV, DVB:
		return familyTuner
	case VDR, NetVDR:
		return familyVDR
	default:
		return familyNetwork
	}
}
