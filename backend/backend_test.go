package backend

import (
	"errors"
	"testing"

	"github.com/playcore/playcore/mrl"
	. "github.com/smartystreets/goconvey/convey"
)

type partial struct {
	started []*mrl.MRL
	volume  int
}

func (*partial) Init(Host) error { return nil }
func (*partial) Uninit()         {}

func (p *partial) Start(m *mrl.MRL) error {
	p.started = append(p.started, m)
	return nil
}

func (p *partial) Volume() (int, error) { return p.volume, nil }
func (p *partial) SetVolume(v int) error {
	p.volume = v
	return nil
}

func (*partial) CanPlay(kind mrl.Kind) bool { return kind == mrl.File }

func TestBind(t *testing.T) {
	Convey("Given a backend with a few capabilities", t, func() {
		b := &partial{}
		ops := Bind("partial", b, nil)

		Convey("It should report them", func() {
			So(ops.Name(), ShouldEqual, "partial")
			So(ops.Capabilities(), ShouldResemble, []string{CapResource, CapStart, CapVolume})
			So(ops.Supports(CapStart), ShouldBeTrue)
			So(ops.Supports(CapSeek), ShouldBeFalse)
		})

		Convey("Present slots should reach the backend", func() {
			m, _ := mrl.New(mrl.File, &mrl.Local{Location: "a"})
			So(ops.Start(m), ShouldBeNil)
			So(b.started, ShouldHaveLength, 1)

			So(ops.SetVolume(40), ShouldBeNil)
			v, err := ops.Volume()
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 40)

			So(ops.CanPlay(mrl.File), ShouldBeTrue)
			So(ops.CanPlay(mrl.DVD), ShouldBeFalse)
		})

		Convey("Missing slots should fail softly", func() {
			So(errors.Is(ops.Stop(), ErrUnsupported), ShouldBeTrue)
			So(errors.Is(ops.Seek(10, SeekAbsolute), ErrUnsupported), ShouldBeTrue)
			_, err := ops.TimePosition()
			So(errors.Is(err, ErrUnsupported), ShouldBeTrue)
			So(errors.Is(ops.SubtitleNext(), ErrUnsupported), ShouldBeTrue)
			So(errors.Is(ops.VDR(VDRMenu), ErrUnsupported), ShouldBeTrue)
			So(func() { ops.SetVerbosity(0) }, ShouldNotPanic)
		})
	})

	Convey("A backend without a resource check should accept every kind", t, func() {
		ops := Bind("bare", struct{ Backend }{}, nil)
		So(ops.Capabilities(), ShouldBeEmpty)
		So(ops.CanPlay(mrl.RTSP), ShouldBeTrue)
	})
}

func TestRegistry(t *testing.T) {
	Convey("When registering a backend", t, func() {
		kind := Kind("registry-test")
		Register(kind, func() Backend { return &partial{} })

		Convey("It should be found", func() {
			f, err := Lookup(kind)
			So(err, ShouldBeNil)
			So(f(), ShouldHaveSameTypeAs, &partial{})
			So(Kinds(), ShouldContain, kind)
		})

		Convey("Registering it twice should panic", func() {
			So(func() { Register(kind, func() Backend { return nil }) }, ShouldPanic)
		})

		Reset(func() {
			factoriesMu.Lock()
			delete(factories, kind)
			factoriesMu.Unlock()
		})
	})

	Convey("An unknown kind should fail", t, func() {
		_, err := Lookup("nope")
		So(errors.Is(err, ErrUnknownKind), ShouldBeTrue)
	})
}
