// Package mpv drives an mpv process through its JSON IPC socket.
//
// One mpv process is started idle per player and kept for the player's lifetime; MRLs are
// loaded into it with loadfile.
package mpv

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/playcore/playcore/backend"
	"github.com/playcore/playcore/constant"
	"github.com/playcore/playcore/key"
	"github.com/playcore/playcore/log"
	"github.com/playcore/playcore/mrl"
	"github.com/playcore/playcore/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const Kind backend.Kind = "mpv"

func init() {
	backend.Register(Kind, func() backend.Backend {
		return New(viper.GetString(key.BackendMPVExecutable))
	})
}

const (
	socketAttempts = 10
	socketDelay    = 300 * time.Millisecond
	quitTimeout    = 3 * time.Second
)

var ErrUnsupportedPlatform = errors.New("mpv: IPC over unix sockets is not available on " + constant.Windows)

type MPV struct {
	executable string

	socket string
	cmd    *exec.Cmd
	exited chan struct{}
	events *listener
	ipcMu  sync.Mutex
}

// New returns an adapter that will run executable ("mpv" when empty).
func New(executable string) *MPV {
	if executable == "" {
		executable = "mpv"
	}
	return &MPV{executable: executable}
}

func (m *MPV) Init(h backend.Host) error {
	if runtime.GOOS == constant.Windows {
		return ErrUnsupportedPlatform
	}

	path, err := exec.LookPath(m.executable)
	if err != nil {
		return fmt.Errorf("find mpv: %w", err)
	}

	m.socket = filepath.Join(where.Temp(), "mpv-"+uuid.NewString()+".sock")
	m.cmd = exec.Command(path, arguments(m.socket, h.Options())...)
	m.cmd.SysProcAttr = detached()
	m.cmd.Stdin, m.cmd.Stdout, m.cmd.Stderr = nil, nil, nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		_ = kill(m.cmd)
		return err
	}

	if m.events, err = listen(m.socket, h.Notify); err != nil {
		_ = kill(m.cmd)
		return err
	}
	return nil
}

func arguments(socket string, opts backend.Options) []string {
	args := []string{
		"--idle=yes",
		"--no-terminal",
		"--really-quiet",
		"--input-ipc-server=" + socket,
	}
	if opts.AudioOutput != "" {
		args = append(args, "--ao="+opts.AudioOutput)
	}
	if opts.VideoOutput != "" {
		args = append(args, "--vo="+opts.VideoOutput)
	}
	if opts.Display != "" {
		args = append(args, "--screen="+opts.Display)
	}
	return args
}

func (m *MPV) waitForSocket() error {
	for i := 0; i < socketAttempts; i++ {
		time.Sleep(socketDelay)

		select {
		case <-m.exited:
			return errors.New("mpv exited before its socket was ready")
		default:
		}

		if conn, err := net.Dial("unix", m.socket); err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socket, socketAttempts)
}

func (m *MPV) Uninit() {
	if m.cmd == nil {
		return
	}
	if m.events != nil {
		m.events.close()
	}

	_, _ = m.command("quit")
	select {
	case <-m.exited:
	case <-time.After(quitTimeout):
		log.Warnf("mpv did not quit in %s, killing it", quitTimeout)
		_ = kill(m.cmd)
	}

	_ = os.Remove(m.socket)
	m.cmd = nil
}

func (m *MPV) SetVerbosity(v log.Verbosity) {
	level := map[log.Verbosity]string{
		log.VerbosityNone:     "no",
		log.VerbosityVerbose:  "v",
		log.VerbosityInfo:     "info",
		log.VerbosityWarning:  "warn",
		log.VerbosityError:    "error",
		log.VerbosityCritical: "fatal",
	}[v]
	if err := m.set("msg-level", "all="+lo.Ternary(level == "", "warn", level)); err != nil {
		log.Debugf("mpv msg-level: %v", err)
	}
}

var playable = []mrl.Kind{
	mrl.File, mrl.CDDA, mrl.DVD, mrl.DVDNav, mrl.DVB,
	mrl.FTP, mrl.HTTP, mrl.MMS, mrl.RTP, mrl.RTSP, mrl.SMB, mrl.TCP, mrl.UDP,
}

func (m *MPV) CanPlay(kind mrl.Kind) bool {
	return lo.Contains(playable, kind)
}

// target renders m the way mpv expects it on its command line.
func target(m *mrl.MRL) (string, error) {
	switch res := m.Resource().(type) {
	case *mrl.Local:
		return sanitizePath(res.Location)
	case *mrl.CD:
		return "cdda://" + res.Device, nil
	case *mrl.VideoDisc:
		s := "dvd://"
		if res.TitleStart > 0 {
			s += strconv.Itoa(res.TitleStart)
		}
		if res.Device != "" {
			s += "/" + res.Device
		}
		return s, nil
	case *mrl.Tuner:
		return "dvb://" + res.Channel, nil
	case *mrl.Network:
		u, err := url.Parse(res.URL)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		if res.Username != "" {
			u.User = url.UserPassword(res.Username, res.Password)
		}
		return u.String(), nil
	default:
		return "", fmt.Errorf("%w: %s", backend.ErrUnsupported, m.Kind())
	}
}

// sanitizePath refuses anything mpv could mistake for an option.
func sanitizePath(p string) (string, error) {
	p = strings.TrimSpace(p)
	switch {
	case p == "":
		return "", errors.New("empty path")
	case strings.ContainsAny(p, "\x00\n\r"):
		return "", errors.New("control characters in path")
	case strings.HasPrefix(p, "-"):
		return "", fmt.Errorf("path %q looks like an option", p)
	}
	return filepath.Clean(p), nil
}

func (m *MPV) Start(item *mrl.MRL) error {
	t, err := target(item)
	if err != nil {
		return err
	}

	// Both are file-local options; they must be in place before loadfile.
	subs := item.Subtitles()
	if subs == nil {
		subs = []string{}
	}
	if err := m.set("sub-files", subs); err != nil {
		log.Debugf("mpv sub-files: %v", err)
	}
	if res, ok := item.Resource().(*mrl.Network); ok {
		_ = m.set("user-agent", lo.Ternary(res.UserAgent == "", constant.UserAgent, res.UserAgent))
	}

	_, err = m.command("loadfile", t, "replace")
	return err
}

func (m *MPV) Stop() error {
	_, err := m.command("stop")
	return err
}

func (m *MPV) Pause() error {
	_, err := m.command("cycle", "pause")
	return err
}

func (m *MPV) Seek(value int, whence backend.Whence) error {
	mode := map[backend.Whence]string{
		backend.SeekRelative: "relative",
		backend.SeekAbsolute: "absolute",
		backend.SeekPercent:  "absolute-percent",
	}[whence]
	_, err := m.command("seek", value, mode)
	return err
}

func (m *MPV) SeekChapter(value int, absolute bool) error {
	if absolute {
		return m.set("chapter", value)
	}
	return m.add("chapter", value)
}

func (m *MPV) TimePosition() (time.Duration, error) {
	pos, err := m.getFloat("time-pos")
	if errors.Is(err, errPropertyUnavailable) {
		return 0, backend.ErrNotRunning
	}
	return time.Duration(pos * float64(time.Second)), err
}

func (m *MPV) PercentPosition() (int, error) {
	pct, err := m.getFloat("percent-pos")
	if errors.Is(err, errPropertyUnavailable) {
		return 0, backend.ErrNotRunning
	}
	return int(pct), err
}

func (m *MPV) SetSpeed(speed float64) error {
	return m.set("speed", speed)
}

func (m *MPV) Volume() (int, error) {
	v, err := m.getFloat("volume")
	return int(v), err
}

func (m *MPV) SetVolume(v int) error {
	return m.set("volume", v)
}

func (m *MPV) Mute() (bool, error) {
	return m.getBool("mute")
}

func (m *MPV) SetMute(on bool) error {
	return m.set("mute", on)
}

func (m *MPV) SetAudioDelay(d time.Duration, absolute bool) error {
	if absolute {
		return m.set("audio-delay", d.Seconds())
	}
	return m.add("audio-delay", d.Seconds())
}

func (m *MPV) AudioSelect(id int) error {
	return m.set("aid", id)
}

func (m *MPV) AudioPrevious() error {
	_, err := m.command("cycle", "audio", "down")
	return err
}

func (m *MPV) AudioNext() error {
	_, err := m.command("cycle", "audio")
	return err
}

func (m *MPV) SetAspect(a backend.Aspect, value int, absolute bool) error {
	if absolute {
		return m.set(a.String(), value)
	}
	return m.add(a.String(), value)
}

func (m *MPV) Aspect(a backend.Aspect) (int, error) {
	v, err := m.getFloat(a.String())
	return int(v), err
}

func (m *MPV) SetSubtitleDelay(d time.Duration, absolute bool) error {
	if absolute {
		return m.set("sub-delay", d.Seconds())
	}
	return m.add("sub-delay", d.Seconds())
}

func (m *MPV) SetSubtitleAlignment(a backend.Alignment) error {
	return m.set("sub-align-y", map[backend.Alignment]string{
		backend.AlignTop:    "top",
		backend.AlignCenter: "center",
		backend.AlignBottom: "bottom",
	}[a])
}

func (m *MPV) SetSubtitlePosition(pos int) error {
	return m.set("sub-pos", pos)
}

func (m *MPV) SetSubtitleVisibility(visible bool) error {
	return m.set("sub-visibility", visible)
}

// SetSubtitleScale takes a percentage.
func (m *MPV) SetSubtitleScale(value int, absolute bool) error {
	scale := float64(value) / 100
	if absolute {
		return m.set("sub-scale", scale)
	}
	return m.add("sub-scale", scale)
}

func (m *MPV) SubtitleSelect(id int) error {
	return m.set("sid", id)
}

func (m *MPV) SubtitlePrevious() error {
	_, err := m.command("cycle", "sub", "down")
	return err
}

func (m *MPV) SubtitleNext() error {
	_, err := m.command("cycle", "sub")
	return err
}
