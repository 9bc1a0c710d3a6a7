package toolkittest

import (
	"runtime"

	"github.com/CoverConnect/egonet/pkg/logging"
	"github.com/CoverConnect/egonet/pkg/toolkit"
)

const (
	HeadlessWidth  = 640
	HeadlessHeight = 480
)

// HeadlessBackend stands in for the native platform libraries.
type HeadlessBackend struct{}

func (HeadlessBackend) Name() string { return "headless-" + runtime.GOOS }
func (HeadlessBackend) Load() error  { return nil }

type headlessGraphics struct{}

func (headlessGraphics) Width() int         { return HeadlessWidth }
func (headlessGraphics) Height() int        { return HeadlessHeight }
func (headlessGraphics) DeltaTime() float32 { return 1.0 / 60 }

type headlessApp struct{}

func (headlessApp) Type() toolkit.AppType { return toolkit.Headless }

func (headlessApp) Log(tag, message string) {
	logger := logging.Component("toolkit")
	logger.Debug().Str("tag", tag).Msg(message)
}

func (headlessApp) Exit() {}

type headlessGL struct{}

func (headlessGL) Viewport(x, y, width, height int) {}
func (headlessGL) ClearColor(r, g, b, a float32)    {}
func (headlessGL) Clear(mask uint32)                {}

type headlessInput struct{}

func (headlessInput) X() int                { return 0 }
func (headlessInput) Y() int                { return 0 }
func (headlessInput) IsKeyPressed(int) bool { return false }
