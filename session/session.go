// Package session saves the playlist of a player when playcore exits and puts it back on the
// next run.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/metafates/gache"
	"github.com/playcore/playcore/filesystem"
	"github.com/playcore/playcore/log"
	"github.com/playcore/playcore/mrl"
	"github.com/playcore/playcore/player"
	"github.com/playcore/playcore/playlist"
	"github.com/playcore/playcore/where"
)

var cacher = gache.New[*Session](
	&gache.Options{
		Path:       where.Session(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Session is the saved form of a playlist and its policy.
type Session struct {
	Items     []mrl.Descriptor `json:"items"`
	Current   int              `json:"current"`
	Loop      string           `json:"loop"`
	LoopCount int              `json:"loop_count"`
	Shuffle   bool             `json:"shuffle"`
	SavedAt   time.Time        `json:"saved_at"`
}

// Get returns the saved session, or nil when there is none.
func Get() (*Session, error) {
	saved, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || saved == nil || len(saved.Items) == 0 {
		return nil, nil
	}
	return saved, nil
}

func Save(s *Session) error {
	return cacher.Set(s)
}

func Clear() error {
	return cacher.Set(nil)
}

// Capture reads the playlist of p. MRLs freed while it runs are left out.
func Capture(ctx context.Context, p *player.Player) (*Session, error) {
	nodes, err := p.Playlist(ctx)
	if err != nil {
		return nil, err
	}
	status, err := p.Status(ctx)
	if err != nil {
		return nil, err
	}

	s := &Session{
		Current:   max(status.Position, 0),
		Loop:      status.Loop.String(),
		LoopCount: status.LoopCount,
		Shuffle:   status.Shuffle,
		SavedAt:   time.Now(),
	}
	for _, m := range nodes {
		d, err := p.MRLDescribe(ctx, m)
		if errors.Is(err, mrl.ErrFreed) {
			continue
		}
		if err != nil {
			return nil, err
		}
		s.Items = append(s.Items, d)
	}
	if s.Current >= len(s.Items) {
		s.Current = 0
	}
	return s, nil
}

// Restore appends the saved MRLs to the playlist of p and applies the saved policy.
// Entries that no longer decode are skipped.
func (s *Session) Restore(ctx context.Context, p *player.Player) error {
	var restored []*mrl.MRL
	for i, d := range s.Items {
		m, err := d.MRL()
		if err != nil {
			log.Warnf("session: skipping item %d: %v", i, err)
			continue
		}
		if err := p.Append(ctx, m, player.AddQueue); err != nil {
			return fmt.Errorf("restore item %d: %w", i, err)
		}
		restored = append(restored, m)
	}

	if s.Current < len(restored) {
		if err := p.SetCurrent(ctx, restored[s.Current]); err != nil {
			return err
		}
	}

	loop, err := playlist.ParseLoop(s.Loop)
	if err != nil {
		log.Warnf("session: %v", err)
	}
	if err := p.SetLoop(ctx, loop, s.LoopCount); err != nil {
		return err
	}
	return p.SetShuffle(ctx, s.Shuffle)
}
