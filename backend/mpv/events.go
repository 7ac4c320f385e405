package mpv

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/playcore/playcore/event"
	"github.com/playcore/playcore/log"
)

// listener holds a dedicated IPC connection and turns mpv's asynchronous events into player
// notifications.
type listener struct {
	conn   net.Conn
	notify func(event.Code)
	wg     sync.WaitGroup
}

type mpvEvent struct {
	Event  string `json:"event"`
	Reason string `json:"reason"`
}

func listen(socket string, notify func(event.Code)) (*listener, error) {
	conn, err := net.Dial("unix", socket)
	if err != nil {
		return nil, fmt.Errorf("event connection: %w", err)
	}

	l := &listener{conn: conn, notify: notify}
	l.wg.Add(1)
	go l.read()
	return l, nil
}

// close ends the read loop and waits for it.
func (l *listener) close() {
	_ = l.conn.Close()
	l.wg.Wait()
}

func (l *listener) read() {
	defer l.wg.Done()

	scanner := bufio.NewScanner(l.conn)
	for scanner.Scan() {
		var e mpvEvent
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil || e.Event == "" {
			continue
		}
		if code, ok := translate(e); ok {
			l.notify(code)
		}
	}
	log.Debugf("mpv event loop ended: %v", scanner.Err())
}

// translate maps the mpv events a frontend cares about. Pause and stop are reported by the
// player itself when it issues them, so only a natural end of file is forwarded.
func translate(e mpvEvent) (event.Code, bool) {
	if e.Event == "end-file" && e.Reason == "eof" {
		return event.PlaybackFinished, true
	}
	return event.Unknown, false
}
