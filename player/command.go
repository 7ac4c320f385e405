package player

import (
	"fmt"

	"github.com/playcore/playcore/supervisor"
)

const (
	cmdInit supervisor.Command = iota
	cmdUninit
	cmdNextPlay
	cmdSetVerbosity

	cmdMRLNew
	cmdMRLFree
	cmdMRLProperties
	cmdMRLAudioProperties
	cmdMRLVideoProperties
	cmdMRLMetadata
	cmdMRLCDTrack
	cmdMRLDVDTitle
	cmdMRLKind
	cmdMRLResource
	cmdMRLAddSubtitle
	cmdMRLSnapshot
	cmdMRLDescribe

	cmdCurrent
	cmdSetCurrent
	cmdAppend
	cmdRemoveCurrent
	cmdRemoveAll
	cmdPrevious
	cmdNext
	cmdContinue
	cmdPlaylist
	cmdSetLoop
	cmdStatus
	cmdSetShuffle
	cmdSetShuffleSeed
	cmdSetMode
	cmdMode

	cmdStart
	cmdStop
	cmdPause
	cmdSeek
	cmdSeekChapter
	cmdSetSpeed
	cmdState
	cmdTimePosition
	cmdPercentPosition

	cmdVolume
	cmdSetVolume
	cmdMute
	cmdSetMute
	cmdSetAudioDelay
	cmdAudioSelect
	cmdAudioPrevious
	cmdAudioNext

	cmdSetAspect
	cmdAspect

	cmdSetSubtitleDelay
	cmdSetSubtitleAlignment
	cmdSetSubtitlePosition
	cmdSetSubtitleVisibility
	cmdSetSubtitleScale
	cmdSubtitleSelect
	cmdSubtitlePrevious
	cmdSubtitleNext

	cmdDVDNav
	cmdDVDAngleSelect
	cmdDVDAnglePrevious
	cmdDVDAngleNext
	cmdDVDTitleSelect
	cmdDVDTitlePrevious
	cmdDVDTitleNext

	cmdTVChannelSelect
	cmdTVChannelPrevious
	cmdTVChannelNext
	cmdRadioChannelSelect
	cmdRadioChannelPrevious
	cmdRadioChannelNext
	cmdVDR
)

var names = map[supervisor.Command]string{
	cmdInit:         "init",
	cmdUninit:       "uninit",
	cmdNextPlay:     "next play",
	cmdSetVerbosity: "set verbosity",

	cmdMRLNew:             "mrl new",
	cmdMRLFree:            "mrl free",
	cmdMRLProperties:      "mrl properties",
	cmdMRLAudioProperties: "mrl audio properties",
	cmdMRLVideoProperties: "mrl video properties",
	cmdMRLMetadata:        "mrl metadata",
	cmdMRLCDTrack:         "mrl cd track",
	cmdMRLDVDTitle:        "mrl dvd title",
	cmdMRLKind:            "mrl kind",
	cmdMRLResource:        "mrl resource",
	cmdMRLAddSubtitle:     "mrl add subtitle",
	cmdMRLSnapshot:        "mrl snapshot",
	cmdMRLDescribe:        "mrl describe",

	cmdCurrent:        "current",
	cmdSetCurrent:     "set current",
	cmdAppend:         "append",
	cmdRemoveCurrent:  "remove current",
	cmdRemoveAll:      "remove all",
	cmdPrevious:       "previous",
	cmdNext:           "next",
	cmdContinue:       "continue",
	cmdPlaylist:       "playlist",
	cmdSetLoop:        "set loop",
	cmdStatus:         "status",
	cmdSetShuffle:     "set shuffle",
	cmdSetShuffleSeed: "set shuffle seed",
	cmdSetMode:        "set mode",
	cmdMode:           "mode",

	cmdStart:           "start",
	cmdStop:            "stop",
	cmdPause:           "pause",
	cmdSeek:            "seek",
	cmdSeekChapter:     "seek chapter",
	cmdSetSpeed:        "set speed",
	cmdState:           "state",
	cmdTimePosition:    "time position",
	cmdPercentPosition: "percent position",

	cmdVolume:        "volume",
	cmdSetVolume:     "set volume",
	cmdMute:          "mute",
	cmdSetMute:       "set mute",
	cmdSetAudioDelay: "set audio delay",
	cmdAudioSelect:   "audio select",
	cmdAudioPrevious: "audio previous",
	cmdAudioNext:     "audio next",

	cmdSetAspect: "set aspect",
	cmdAspect:    "aspect",

	cmdSetSubtitleDelay:      "set subtitle delay",
	cmdSetSubtitleAlignment:  "set subtitle alignment",
	cmdSetSubtitlePosition:   "set subtitle position",
	cmdSetSubtitleVisibility: "set subtitle visibility",
	cmdSetSubtitleScale:      "set subtitle scale",
	cmdSubtitleSelect:        "subtitle select",
	cmdSubtitlePrevious:      "subtitle previous",
	cmdSubtitleNext:          "subtitle next",

	cmdDVDNav:           "dvd nav",
	cmdDVDAngleSelect:   "dvd angle select",
	cmdDVDAnglePrevious: "dvd angle previous",
	cmdDVDAngleNext:     "dvd angle next",
	cmdDVDTitleSelect:   "dvd title select",
	cmdDVDTitlePrevious: "dvd title previous",
	cmdDVDTitleNext:     "dvd title next",

	cmdTVChannelSelect:      "tv channel select",
	cmdTVChannelPrevious:    "tv channel previous",
	cmdTVChannelNext:        "tv channel next",
	cmdRadioChannelSelect:   "radio channel select",
	cmdRadioChannelPrevious: "radio channel previous",
	cmdRadioChannelNext:     "radio channel next",
	cmdVDR:                  "vdr",
}

type handler = supervisor.Handler[*Player]

// handlers builds the dispatch table of one player.
func handlers() map[supervisor.Command]handler {
	return map[supervisor.Command]handler{
		cmdInit:         action((*Player).doInit),
		cmdUninit:       action((*Player).doUninit),
		cmdNextPlay:     input((*Player).doNextPlay),
		cmdSetVerbosity: input((*Player).doSetVerbosity),

		cmdMRLNew:             query((*Player).doMRLNew),
		cmdMRLFree:            input((*Player).doMRLFree),
		cmdMRLProperties:      query((*Player).doMRLProperties),
		cmdMRLAudioProperties: query((*Player).doMRLAudioProperties),
		cmdMRLVideoProperties: query((*Player).doMRLVideoProperties),
		cmdMRLMetadata:        query((*Player).doMRLMetadata),
		cmdMRLCDTrack:         query((*Player).doMRLCDTrack),
		cmdMRLDVDTitle:        query((*Player).doMRLDVDTitle),
		cmdMRLKind:            query((*Player).doMRLKind),
		cmdMRLResource:        query((*Player).doMRLResource),
		cmdMRLAddSubtitle:     input((*Player).doMRLAddSubtitle),
		cmdMRLSnapshot:        input((*Player).doMRLSnapshot),
		cmdMRLDescribe:        query((*Player).doMRLDescribe),

		cmdCurrent:        output((*Player).doCurrent),
		cmdSetCurrent:     input((*Player).doSetCurrent),
		cmdAppend:         input((*Player).doAppend),
		cmdRemoveCurrent:  action((*Player).doRemoveCurrent),
		cmdRemoveAll:      action((*Player).doRemoveAll),
		cmdPrevious:       output((*Player).doPrevious),
		cmdNext:           output((*Player).doNext),
		cmdContinue:       output((*Player).doContinue),
		cmdPlaylist:       output((*Player).doPlaylist),
		cmdSetLoop:        input((*Player).doSetLoop),
		cmdStatus:         output((*Player).doStatus),
		cmdSetShuffle:     input((*Player).doSetShuffle),
		cmdSetShuffleSeed: input((*Player).doSetShuffleSeed),
		cmdSetMode:        input((*Player).doSetMode),
		cmdMode:           output((*Player).doMode),

		cmdStart:           action((*Player).doStart),
		cmdStop:            action((*Player).doStop),
		cmdPause:           action((*Player).doPause),
		cmdSeek:            input((*Player).doSeek),
		cmdSeekChapter:     input((*Player).doSeekChapter),
		cmdSetSpeed:        input((*Player).doSetSpeed),
		cmdState:           output((*Player).doState),
		cmdTimePosition:    output((*Player).doTimePosition),
		cmdPercentPosition: output((*Player).doPercentPosition),

		cmdVolume:        output((*Player).doVolume),
		cmdSetVolume:     input((*Player).doSetVolume),
		cmdMute:          output((*Player).doMute),
		cmdSetMute:       input((*Player).doSetMute),
		cmdSetAudioDelay: input((*Player).doSetAudioDelay),
		cmdAudioSelect:   input((*Player).doAudioSelect),
		cmdAudioPrevious: action((*Player).doAudioPrevious),
		cmdAudioNext:     action((*Player).doAudioNext),

		cmdSetAspect: input((*Player).doSetAspect),
		cmdAspect:    query((*Player).doAspect),

		cmdSetSubtitleDelay:      input((*Player).doSetSubtitleDelay),
		cmdSetSubtitleAlignment:  input((*Player).doSetSubtitleAlignment),
		cmdSetSubtitlePosition:   input((*Player).doSetSubtitlePosition),
		cmdSetSubtitleVisibility: input((*Player).doSetSubtitleVisibility),
		cmdSetSubtitleScale:      input((*Player).doSetSubtitleScale),
		cmdSubtitleSelect:        input((*Player).doSubtitleSelect),
		cmdSubtitlePrevious:      action((*Player).doSubtitlePrevious),
		cmdSubtitleNext:          action((*Player).doSubtitleNext),

		cmdDVDNav:           input((*Player).doDVDNav),
		cmdDVDAngleSelect:   input((*Player).doDVDAngleSelect),
		cmdDVDAnglePrevious: action((*Player).doDVDAnglePrevious),
		cmdDVDAngleNext:     action((*Player).doDVDAngleNext),
		cmdDVDTitleSelect:   input((*Player).doDVDTitleSelect),
		cmdDVDTitlePrevious: action((*Player).doDVDTitlePrevious),
		cmdDVDTitleNext:     action((*Player).doDVDTitleNext),

		cmdTVChannelSelect:      input((*Player).doTVChannelSelect),
		cmdTVChannelPrevious:    action((*Player).doTVChannelPrevious),
		cmdTVChannelNext:        action((*Player).doTVChannelNext),
		cmdRadioChannelSelect:   input((*Player).doRadioChannelSelect),
		cmdRadioChannelPrevious: action((*Player).doRadioChannelPrevious),
		cmdRadioChannelNext:     action((*Player).doRadioChannelNext),
		cmdVDR:                  input((*Player).doVDR),
	}
}

func action(f func(p *Player) error) handler {
	return func(p *Player, _, _ any) error {
		return f(p)
	}
}

func input[I any](f func(p *Player, in I) error) handler {
	return func(p *Player, in, _ any) error {
		v, ok := in.(I)
		if !ok {
			return fmt.Errorf("%w: %T", ErrBadArgument, in)
		}
		return f(p, v)
	}
}

// output stores the result in out when the caller waits for it.
func output[O any](f func(p *Player) (O, error)) handler {
	return func(p *Player, _, out any) error {
		v, err := f(p)
		if dst, ok := out.(*O); ok && dst != nil {
			*dst = v
		}
		return err
	}
}

func query[I, O any](f func(p *Player, in I) (O, error)) handler {
	return func(p *Player, in, out any) error {
		arg, ok := in.(I)
		if !ok {
			return fmt.Errorf("%w: %T", ErrBadArgument, in)
		}
		v, err := f(p, arg)
		if dst, ok := out.(*O); ok && dst != nil {
			*dst = v
		}
		return err
	}
}
