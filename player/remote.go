package player

import (
	"context"

	"github.com/playcore/playcore/backend"
)

// DVD navigation.

func (p *Player) DVDNav(ctx context.Context, cmd backend.Nav) error {
	return p.call(ctx, cmdDVDNav, cmd, nil)
}

func (p *Player) doDVDNav(cmd backend.Nav) error {
	return p.ops.DVDNav(cmd)
}

func (p *Player) DVDAngleSelect(ctx context.Context, angle int) error {
	return p.call(ctx, cmdDVDAngleSelect, angle, nil)
}

func (p *Player) doDVDAngleSelect(angle int) error {
	return p.ops.DVDAngleSelect(angle)
}

func (p *Player) DVDAnglePrevious(ctx context.Context) error {
	return p.call(ctx, cmdDVDAnglePrevious, nil, nil)
}

func (p *Player) doDVDAnglePrevious() error {
	return p.ops.DVDAnglePrevious()
}

func (p *Player) DVDAngleNext(ctx context.Context) error {
	return p.call(ctx, cmdDVDAngleNext, nil, nil)
}

func (p *Player) doDVDAngleNext() error {
	return p.ops.DVDAngleNext()
}

func (p *Player) DVDTitleSelect(ctx context.Context, title int) error {
	return p.call(ctx, cmdDVDTitleSelect, title, nil)
}

func (p *Player) doDVDTitleSelect(title int) error {
	return p.ops.DVDTitleSelect(title)
}

func (p *Player) DVDTitlePrevious(ctx context.Context) error {
	return p.call(ctx, cmdDVDTitlePrevious, nil, nil)
}

func (p *Player) doDVDTitlePrevious() error {
	return p.ops.DVDTitlePrevious()
}

func (p *Player) DVDTitleNext(ctx context.Context) error {
	return p.call(ctx, cmdDVDTitleNext, nil, nil)
}

func (p *Player) doDVDTitleNext() error {
	return p.ops.DVDTitleNext()
}

// Tuners.

func (p *Player) TVChannelSelect(ctx context.Context, channel string) error {
	return p.call(ctx, cmdTVChannelSelect, channel, nil)
}

func (p *Player) doTVChannelSelect(channel string) error {
	return p.ops.TVChannelSelect(channel)
}

func (p *Player) TVChannelPrevious(ctx context.Context) error {
	return p.call(ctx, cmdTVChannelPrevious, nil, nil)
}

func (p *Player) doTVChannelPrevious() error {
	return p.ops.TVChannelPrevious()
}

func (p *Player) TVChannelNext(ctx context.Context) error {
	return p.call(ctx, cmdTVChannelNext, nil, nil)
}

func (p *Player) doTVChannelNext() error {
	return p.ops.TVChannelNext()
}

func (p *Player) RadioChannelSelect(ctx context.Context, channel string) error {
	return p.call(ctx, cmdRadioChannelSelect, channel, nil)
}

func (p *Player) doRadioChannelSelect(channel string) error {
	return p.ops.RadioChannelSelect(channel)
}

func (p *Player) RadioChannelPrevious(ctx context.Context) error {
	return p.call(ctx, cmdRadioChannelPrevious, nil, nil)
}

func (p *Player) doRadioChannelPrevious() error {
	return p.ops.RadioChannelPrevious()
}

func (p *Player) RadioChannelNext(ctx context.Context) error {
	return p.call(ctx, cmdRadioChannelNext, nil, nil)
}

func (p *Player) doRadioChannelNext() error {
	return p.ops.RadioChannelNext()
}

// VDR sends a remote-control key to a VDR backend.
func (p *Player) VDR(ctx context.Context, key backend.VDRKey) error {
	return p.call(ctx, cmdVDR, key, nil)
}

func (p *Player) doVDR(key backend.VDRKey) error {
	return p.ops.VDR(key)
}
