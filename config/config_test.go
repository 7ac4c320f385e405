package config

import (
	"testing"
	"time"

	"github.com/playcore/playcore/filesystem"
	"github.com/playcore/playcore/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.IsSet(name), ShouldBeTrue)
			}
			So(viper.GetString(key.PlayerBackend), ShouldEqual, "mpv")
			So(viper.GetDuration(key.BackendNullLength), ShouldEqual, 3*time.Second)
		})

		Convey("Environment variables should override defaults", func() {
			t.Setenv("PLAYCORE_PLAYLIST_SHUFFLE", "true")
			_ = Setup()
			So(viper.GetBool(key.PlaylistShuffle), ShouldBeTrue)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("backend.mpv.executable")
			So(result, ShouldEqual, "backend_mpv_executable")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given the player backend field", t, func() {
		f := Default[key.PlayerBackend]

		Convey("Its environment variable should carry the prefix", func() {
			So(f.Env(), ShouldEqual, "PLAYCORE_PLAYER_BACKEND")
		})

		Convey("Its JSON form should describe it", func() {
			raw, err := f.MarshalJSON()
			So(err, ShouldBeNil)
			So(string(raw), ShouldContainSubstring, `"key":"player.backend"`)
			So(string(raw), ShouldContainSubstring, `"type":"string"`)
		})

		Convey("Durations should be named as such", func() {
			d := Default[key.BackendNullLength]
			So(d.typeName(), ShouldEqual, "duration")
		})
	})

	Convey("Every key should be registered once", t, func() {
		So(len(Default), ShouldEqual, len(EnvExposed))
	})
}
