package mpv

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/playcore/playcore/mrl"
)

const identifyTimeout = 15 * time.Second

// identifyPrefix marks the lines of a probe run that carry a property.
const identifyPrefix = "playcore:"

var identifyFields = []string{
	"duration", "seekable", "file-size",
	"audio-codec-name", "audio-bitrate", "audio-params/samplerate", "audio-params/channel-count",
	"video-codec", "video-bitrate", "video-params/w", "video-params/h", "video-params/aspect",
	"container-fps",
	"metadata/by-key/title", "metadata/by-key/artist", "metadata/by-key/album",
	"metadata/by-key/genre", "metadata/by-key/date", "metadata/by-key/track",
	"metadata/by-key/comment",
}

// identify probes item with a short-lived mpv that decodes a single frame to null outputs.
func (m *MPV) identify(item *mrl.MRL) (map[string]string, error) {
	t, err := target(item)
	if err != nil {
		return nil, err
	}

	var msg strings.Builder
	for _, f := range identifyFields {
		fmt.Fprintf(&msg, "%s%s=${=%s:}\n", identifyPrefix, f, f)
	}

	ctx, cancel := context.WithTimeout(context.Background(), identifyTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, m.executable,
		"--no-config",
		"--vo=null",
		"--ao=null",
		"--frames=1",
		"--msg-level=all=no",
		"--term-playing-msg="+msg.String(),
		t,
	)
	cmd.SysProcAttr = detached()

	out, err := cmd.Output()
	if err != nil && len(out) == 0 {
		return nil, fmt.Errorf("probe %s: %w", item, err)
	}
	return parseIdentify(string(out)), nil
}

func parseIdentify(out string) map[string]string {
	fields := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line, ok := strings.CutPrefix(strings.TrimSpace(scanner.Text()), identifyPrefix)
		if !ok {
			continue
		}
		if k, v, ok := strings.Cut(line, "="); ok && v != "" {
			fields[k] = v
		}
	}
	return fields
}

func (m *MPV) RetrieveProperties(item *mrl.MRL, p *mrl.Properties) error {
	f, err := m.identify(item)
	if err != nil {
		return err
	}
	fillProperties(f, p)
	return nil
}

func fillProperties(f map[string]string, p *mrl.Properties) {
	p.Size = atoi64(f["file-size"])
	p.Seekable = f["seekable"] == "yes"
	p.Length = seconds(f["duration"])

	if codec := f["audio-codec-name"]; codec != "" {
		p.Audio = &mrl.AudioProperties{
			Codec:      codec,
			Bitrate:    atoi(f["audio-bitrate"]),
			Channels:   atoi(f["audio-params/channel-count"]),
			SampleRate: atoi(f["audio-params/samplerate"]),
		}
	}

	if codec := f["video-codec"]; codec != "" {
		v := &mrl.VideoProperties{
			Codec:   codec,
			Bitrate: atoi(f["video-bitrate"]),
			Width:   atoi(f["video-params/w"]),
			Height:  atoi(f["video-params/h"]),
			Streams: 1,
		}
		v.Aspect, _ = strconv.ParseFloat(f["video-params/aspect"], 64)
		if fps, _ := strconv.ParseFloat(f["container-fps"], 64); fps > 0 {
			v.FrameDuration = time.Duration(float64(time.Second) / fps)
		}
		p.Video = v
	}
}

func (m *MPV) RetrieveMetadata(item *mrl.MRL, md *mrl.Metadata) error {
	f, err := m.identify(item)
	if err != nil {
		return err
	}
	fillMetadata(f, md)
	return nil
}

func fillMetadata(f map[string]string, md *mrl.Metadata) {
	md.Title = f["metadata/by-key/title"]
	md.Artist = f["metadata/by-key/artist"]
	md.Album = f["metadata/by-key/album"]
	md.Genre = f["metadata/by-key/genre"]
	md.Year = f["metadata/by-key/date"]
	md.Track = f["metadata/by-key/track"]
	md.Comment = f["metadata/by-key/comment"]
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atoi64(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

func seconds(s string) time.Duration {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return time.Duration(f * float64(time.Second))
}
