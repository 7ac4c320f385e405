package player

import (
	"context"
	"time"

	"github.com/playcore/playcore/backend"
	"github.com/samber/lo"
)

type delayArgs struct {
	d        time.Duration
	absolute bool
}

type aspectArgs struct {
	aspect   backend.Aspect
	value    int
	absolute bool
}

// Volume returns the volume in percent.
func (p *Player) Volume(ctx context.Context) (int, error) {
	return get[int](ctx, p, cmdVolume, nil)
}

func (p *Player) doVolume() (int, error) {
	return p.ops.Volume()
}

// SetVolume clamps v to 0..100.
func (p *Player) SetVolume(ctx context.Context, v int) error {
	return p.call(ctx, cmdSetVolume, v, nil)
}

func (p *Player) doSetVolume(v int) error {
	return p.ops.SetVolume(lo.Clamp(v, 0, 100))
}

func (p *Player) Mute(ctx context.Context) (bool, error) {
	return get[bool](ctx, p, cmdMute, nil)
}

func (p *Player) doMute() (bool, error) {
	return p.ops.Mute()
}

func (p *Player) SetMute(ctx context.Context, on bool) error {
	return p.call(ctx, cmdSetMute, on, nil)
}

func (p *Player) doSetMute(on bool) error {
	return p.ops.SetMute(on)
}

// SetAudioDelay sets the audio delay to d, or shifts it by d when absolute is false.
func (p *Player) SetAudioDelay(ctx context.Context, d time.Duration, absolute bool) error {
	return p.call(ctx, cmdSetAudioDelay, delayArgs{d: d, absolute: absolute}, nil)
}

func (p *Player) doSetAudioDelay(in delayArgs) error {
	return p.ops.SetAudioDelay(in.d, in.absolute)
}

func (p *Player) AudioSelect(ctx context.Context, id int) error {
	return p.call(ctx, cmdAudioSelect, id, nil)
}

func (p *Player) doAudioSelect(id int) error {
	return p.ops.AudioSelect(id)
}

func (p *Player) AudioPrevious(ctx context.Context) error {
	return p.call(ctx, cmdAudioPrevious, nil, nil)
}

func (p *Player) doAudioPrevious() error {
	return p.ops.AudioPrevious()
}

func (p *Player) AudioNext(ctx context.Context) error {
	return p.call(ctx, cmdAudioNext, nil, nil)
}

func (p *Player) doAudioNext() error {
	return p.ops.AudioNext()
}

// SetAspect adjusts a picture setting such as brightness or hue.
func (p *Player) SetAspect(ctx context.Context, a backend.Aspect, value int, absolute bool) error {
	return p.call(ctx, cmdSetAspect, aspectArgs{aspect: a, value: value, absolute: absolute}, nil)
}

func (p *Player) doSetAspect(in aspectArgs) error {
	return p.ops.SetAspect(in.aspect, in.value, in.absolute)
}

func (p *Player) Aspect(ctx context.Context, a backend.Aspect) (int, error) {
	return get[int](ctx, p, cmdAspect, a)
}

func (p *Player) doAspect(a backend.Aspect) (int, error) {
	return p.ops.Aspect(a)
}
