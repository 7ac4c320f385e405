package mpv

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

type request struct {
	Command []any `json:"command"`
}

type response struct {
	Data  any    `json:"data"`
	Error string `json:"error"`
}

const (
	ipcAttempts   = 3
	ipcRetryDelay = 100 * time.Millisecond
	ipcDeadline   = time.Second
	ipcBufSize    = 4096
)

var (
	// errRejected wraps every error reply from mpv.
	errRejected            = errors.New("mpv")
	errPropertyUnavailable = fmt.Errorf("%w: property unavailable", errRejected)
)

// command sends one IPC request, retrying transient connection failures.
func (m *MPV) command(args ...any) (any, error) {
	m.ipcMu.Lock()
	defer m.ipcMu.Unlock()

	var lastErr error
	for attempt := 0; attempt < ipcAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(ipcRetryDelay)
		}

		data, err := roundTrip(m.socket, args)
		if err == nil {
			return data, nil
		}
		// mpv answered; retrying will not change its mind.
		if errors.Is(err, errRejected) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("ipc %v failed after %d attempts: %w", args[0], ipcAttempts, lastErr)
}

func roundTrip(socket string, args []any) (any, error) {
	conn, err := net.Dial("unix", socket)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	payload, err := json.Marshal(request{Command: args})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	if _, err = conn.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(ipcDeadline)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	buf := make([]byte, ipcBufSize)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	return decode(buf[:n])
}

// decode picks the reply out of whatever mpv wrote; events may be interleaved with it.
func decode(raw []byte) (any, error) {
	for _, line := range strings.Split(string(raw), "\n") {
		var resp response
		if err := json.Unmarshal([]byte(line), &resp); err != nil || resp.Error == "" {
			continue
		}

		switch resp.Error {
		case "success":
			return resp.Data, nil
		case "property unavailable":
			return nil, errPropertyUnavailable
		default:
			return nil, fmt.Errorf("%w: %s", errRejected, resp.Error)
		}
	}
	return nil, errors.New("mpv: no reply")
}

func (m *MPV) set(property string, value any) error {
	_, err := m.command("set_property", property, value)
	return err
}

func (m *MPV) add(property string, value any) error {
	_, err := m.command("add", property, value)
	return err
}

func (m *MPV) getFloat(property string) (float64, error) {
	data, err := m.command("get_property", property)
	if err != nil {
		return 0, err
	}
	v, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected number, got %T", property, data)
	}
	return v, nil
}

func (m *MPV) getBool(property string) (bool, error) {
	data, err := m.command("get_property", property)
	if err != nil {
		return false, err
	}
	v, ok := data.(bool)
	if !ok {
		return false, fmt.Errorf("property %s: expected bool, got %T", property, data)
	}
	return v, nil
}
