package mrl

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Parse builds an MRL from a location string such as
//
//	/music/song.ogg
//	dvd://2-4@/dev/dvd
//	cdda://3
//	tv://5@/dev/video0
//	https://user@example.org/stream.ogg
//
// A location without a scheme is a local file.
func Parse(location string) (*MRL, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: empty location", ErrResourceMismatch)
	}

	scheme, rest, ok := strings.Cut(location, "://")
	if !ok {
		return New(File, &Local{Location: location})
	}

	kind, err := ParseKind(scheme)
	if err != nil {
		return nil, err
	}

	var res Resource
	switch kind.family() {
	case familyLocal:
		res = &Local{Location: rest}
	case familyCD:
		start, end, device, err := parseRange(rest)
		if err != nil {
			return nil, err
		}
		res = &CD{Device: device, TrackStart: start, TrackEnd: end}
	case familyVideoDisc:
		start, end, device, err := parseRange(rest)
		if err != nil {
			return nil, err
		}
		res = &VideoDisc{Device: device, TitleStart: start, TitleEnd: end}
	case familyTuner:
		channel, device, _ := strings.Cut(rest, "@")
		res = &Tuner{Channel: channel, Device: device}
	case familyVDR:
		res = &Recorder{Device: rest}
	default:
		res, err = parseNetwork(location)
		if err != nil {
			return nil, err
		}
	}

	return New(kind, res)
}

// parseRange reads "N[-M][@device]". An empty range means the whole medium.
func parseRange(s string) (start, end int, device string, err error) {
	s, device, _ = strings.Cut(s, "@")
	if s == "" {
		return 0, 0, device, nil
	}

	from, to, hasEnd := strings.Cut(s, "-")
	if start, err = strconv.Atoi(from); err != nil || start < 0 {
		return 0, 0, "", fmt.Errorf("%w: bad start %q", ErrResourceMismatch, from)
	}
	if !hasEnd {
		return start, 0, device, nil
	}
	if end, err = strconv.Atoi(to); err != nil || end < start {
		return 0, 0, "", fmt.Errorf("%w: bad end %q", ErrResourceMismatch, to)
	}
	return start, end, device, nil
}

func parseNetwork(location string) (*Network, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResourceMismatch, err)
	}

	res := &Network{}
	if u.User != nil {
		res.Username = u.User.Username()
		res.Password, _ = u.User.Password()
		u.User = nil
	}
	res.URL = u.String()
	return res, nil
}
