package player

import (
	"context"
	"time"

	"github.com/playcore/playcore/backend"
)

type scaleArgs struct {
	value    int
	absolute bool
}

func (p *Player) SetSubtitleDelay(ctx context.Context, d time.Duration, absolute bool) error {
	return p.call(ctx, cmdSetSubtitleDelay, delayArgs{d: d, absolute: absolute}, nil)
}

func (p *Player) doSetSubtitleDelay(in delayArgs) error {
	return p.ops.SetSubtitleDelay(in.d, in.absolute)
}

func (p *Player) SetSubtitleAlignment(ctx context.Context, a backend.Alignment) error {
	return p.call(ctx, cmdSetSubtitleAlignment, a, nil)
}

func (p *Player) doSetSubtitleAlignment(a backend.Alignment) error {
	return p.ops.SetSubtitleAlignment(a)
}

func (p *Player) SetSubtitlePosition(ctx context.Context, pos int) error {
	return p.call(ctx, cmdSetSubtitlePosition, pos, nil)
}

func (p *Player) doSetSubtitlePosition(pos int) error {
	return p.ops.SetSubtitlePosition(pos)
}

func (p *Player) SetSubtitleVisibility(ctx context.Context, visible bool) error {
	return p.call(ctx, cmdSetSubtitleVisibility, visible, nil)
}

func (p *Player) doSetSubtitleVisibility(visible bool) error {
	return p.ops.SetSubtitleVisibility(visible)
}

// SetSubtitleScale takes a percentage.
func (p *Player) SetSubtitleScale(ctx context.Context, value int, absolute bool) error {
	return p.call(ctx, cmdSetSubtitleScale, scaleArgs{value: value, absolute: absolute}, nil)
}

func (p *Player) doSetSubtitleScale(in scaleArgs) error {
	return p.ops.SetSubtitleScale(in.value, in.absolute)
}

func (p *Player) SubtitleSelect(ctx context.Context, id int) error {
	return p.call(ctx, cmdSubtitleSelect, id, nil)
}

func (p *Player) doSubtitleSelect(id int) error {
	return p.ops.SubtitleSelect(id)
}

func (p *Player) SubtitlePrevious(ctx context.Context) error {
	return p.call(ctx, cmdSubtitlePrevious, nil, nil)
}

func (p *Player) doSubtitlePrevious() error {
	return p.ops.SubtitlePrevious()
}

func (p *Player) SubtitleNext(ctx context.Context) error {
	return p.call(ctx, cmdSubtitleNext, nil, nil)
}

func (p *Player) doSubtitleNext() error {
	return p.ops.SubtitleNext()
}
