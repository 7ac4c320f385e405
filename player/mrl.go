package player

import (
	"context"
	"fmt"
	"strings"

	"github.com/playcore/playcore/backend"
	"github.com/playcore/playcore/filesystem"
	"github.com/playcore/playcore/mrl"
)

type mrlNew struct {
	kind mrl.Kind
	res  mrl.Resource
}

// mrlRef names an MRL; a nil m stands for the current one.
type mrlRef struct {
	m *mrl.MRL
}

type mrlIndex struct {
	m *mrl.MRL
	n int
}

type mrlSubtitle struct {
	m    *mrl.MRL
	path string
}

type mrlSnapshot struct {
	m   *mrl.MRL
	req backend.Snapshot
}

func (p *Player) target(m *mrl.MRL) (*mrl.MRL, error) {
	if m == nil {
		m = p.playlist.Current()
	}
	switch {
	case m == nil:
		return nil, ErrNoCurrent
	case m.Freed():
		return nil, mrl.ErrFreed
	}
	return m, nil
}

// NewMRL creates an MRL the backend can play. It belongs to nobody until it is added to the
// playlist, and must be released with FreeMRL otherwise.
func (p *Player) NewMRL(ctx context.Context, kind mrl.Kind, res mrl.Resource) (*mrl.MRL, error) {
	return get[*mrl.MRL](ctx, p, cmdMRLNew, mrlNew{kind: kind, res: res})
}

func (p *Player) doMRLNew(in mrlNew) (*mrl.MRL, error) {
	if !p.ops.CanPlay(in.kind) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedResource, in.kind)
	}
	return mrl.New(in.kind, in.res)
}

// FreeMRL releases m, unlinking it from the playlist when it is part of it.
func (p *Player) FreeMRL(ctx context.Context, m *mrl.MRL) error {
	return p.call(ctx, cmdMRLFree, mrlRef{m: m}, nil)
}

func (p *Player) doMRLFree(in mrlRef) error {
	if in.m == nil {
		return nil
	}
	if p.playlist.Contains(in.m) {
		if in.m == p.playlist.Current() {
			if err := p.halt(); err != nil {
				p.log.Warnf("stop before free: %v", err)
			}
		}
		return p.playlist.Remove(in.m)
	}
	in.m.Free()
	return nil
}

// MRLProperties returns the stream properties of m, retrieving them from the backend on
// first use. A nil m means the current MRL.
func (p *Player) MRLProperties(ctx context.Context, m *mrl.MRL) (*mrl.Properties, error) {
	return get[*mrl.Properties](ctx, p, cmdMRLProperties, mrlRef{m: m})
}

func (p *Player) doMRLProperties(in mrlRef) (*mrl.Properties, error) {
	m, err := p.target(in.m)
	if err != nil {
		return nil, err
	}
	return m.EnsureProperties(p.ops.RetrieveProperties)
}

// MRLAudioProperties is nil when m has no audio stream.
func (p *Player) MRLAudioProperties(ctx context.Context, m *mrl.MRL) (*mrl.AudioProperties, error) {
	return get[*mrl.AudioProperties](ctx, p, cmdMRLAudioProperties, mrlRef{m: m})
}

func (p *Player) doMRLAudioProperties(in mrlRef) (*mrl.AudioProperties, error) {
	props, err := p.doMRLProperties(in)
	if err != nil || props == nil {
		return nil, err
	}
	return props.Audio, nil
}

// MRLVideoProperties is nil when m has no video stream.
func (p *Player) MRLVideoProperties(ctx context.Context, m *mrl.MRL) (*mrl.VideoProperties, error) {
	return get[*mrl.VideoProperties](ctx, p, cmdMRLVideoProperties, mrlRef{m: m})
}

func (p *Player) doMRLVideoProperties(in mrlRef) (*mrl.VideoProperties, error) {
	props, err := p.doMRLProperties(in)
	if err != nil || props == nil {
		return nil, err
	}
	return props.Video, nil
}

func (p *Player) MRLMetadata(ctx context.Context, m *mrl.MRL) (*mrl.Metadata, error) {
	return get[*mrl.Metadata](ctx, p, cmdMRLMetadata, mrlRef{m: m})
}

func (p *Player) doMRLMetadata(in mrlRef) (*mrl.Metadata, error) {
	m, err := p.target(in.m)
	if err != nil {
		return nil, err
	}
	return m.EnsureMetadata(p.ops.RetrieveMetadata)
}

// MRLCDTrack returns track n (1-based) of an audio CD.
func (p *Player) MRLCDTrack(ctx context.Context, m *mrl.MRL, n int) (mrl.CDTrack, error) {
	return get[mrl.CDTrack](ctx, p, cmdMRLCDTrack, mrlIndex{m: m, n: n})
}

func (p *Player) doMRLCDTrack(in mrlIndex) (mrl.CDTrack, error) {
	md, err := p.doMRLMetadata(mrlRef{m: in.m})
	if err != nil {
		return mrl.CDTrack{}, err
	}
	track, ok := md.CDTrack(in.n)
	if !ok {
		return mrl.CDTrack{}, fmt.Errorf("%w: no cd track %d", ErrBadArgument, in.n)
	}
	return track, nil
}

// MRLDVDTitle returns title n (1-based) of a DVD.
func (p *Player) MRLDVDTitle(ctx context.Context, m *mrl.MRL, n int) (mrl.DVDTitle, error) {
	return get[mrl.DVDTitle](ctx, p, cmdMRLDVDTitle, mrlIndex{m: m, n: n})
}

func (p *Player) doMRLDVDTitle(in mrlIndex) (mrl.DVDTitle, error) {
	md, err := p.doMRLMetadata(mrlRef{m: in.m})
	if err != nil {
		return mrl.DVDTitle{}, err
	}
	title, ok := md.DVDTitle(in.n)
	if !ok {
		return mrl.DVDTitle{}, fmt.Errorf("%w: no dvd title %d", ErrBadArgument, in.n)
	}
	return title, nil
}

func (p *Player) MRLKind(ctx context.Context, m *mrl.MRL) (mrl.Kind, error) {
	return get[mrl.Kind](ctx, p, cmdMRLKind, mrlRef{m: m})
}

func (p *Player) doMRLKind(in mrlRef) (mrl.Kind, error) {
	m, err := p.target(in.m)
	if err != nil {
		return 0, err
	}
	return m.Kind(), nil
}

// MRLResource returns a copy of the resource m was created with.
func (p *Player) MRLResource(ctx context.Context, m *mrl.MRL) (mrl.Resource, error) {
	return get[mrl.Resource](ctx, p, cmdMRLResource, mrlRef{m: m})
}

func (p *Player) doMRLResource(in mrlRef) (mrl.Resource, error) {
	m, err := p.target(in.m)
	if err != nil {
		return nil, err
	}
	return m.Resource(), nil
}

// MRLAddSubtitle attaches a subtitle file to m. Local paths must exist.
func (p *Player) MRLAddSubtitle(ctx context.Context, m *mrl.MRL, path string) error {
	return p.call(ctx, cmdMRLAddSubtitle, mrlSubtitle{m: m, path: path}, nil)
}

func (p *Player) doMRLAddSubtitle(in mrlSubtitle) error {
	m, err := p.target(in.m)
	if err != nil {
		return err
	}
	if in.path == "" {
		return fmt.Errorf("%w: empty subtitle path", ErrBadArgument)
	}
	if !strings.Contains(in.path, "://") {
		exists, err := filesystem.API().Exists(in.path)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: subtitle %s not found", ErrBadArgument, in.path)
		}
	}
	m.AddSubtitle(in.path)
	return nil
}

func (p *Player) MRLSnapshot(ctx context.Context, m *mrl.MRL, req backend.Snapshot) error {
	return p.call(ctx, cmdMRLSnapshot, mrlSnapshot{m: m, req: req}, nil)
}

func (p *Player) doMRLSnapshot(in mrlSnapshot) error {
	m, err := p.target(in.m)
	if err != nil {
		return err
	}
	return p.ops.Snapshot(m, in.req)
}

// MRLDescribe returns the serialisable form of m.
func (p *Player) MRLDescribe(ctx context.Context, m *mrl.MRL) (mrl.Descriptor, error) {
	return get[mrl.Descriptor](ctx, p, cmdMRLDescribe, mrlRef{m: m})
}

func (p *Player) doMRLDescribe(in mrlRef) (mrl.Descriptor, error) {
	m, err := p.target(in.m)
	if err != nil {
		return mrl.Descriptor{}, err
	}
	return m.Describe()
}
