// Package toolkit holds the process wide context every widget draws
// through: graphics, application, GL, input, files and the active skin.
package toolkit

import (
	"errors"
	"sync"

	"github.com/spf13/afero"

	"github.com/CoverConnect/egonet/pkg/toolkit/skin"
)

var (
	ErrNotInitialized = errors.New("toolkit context is not installed")
	ErrMissingSlot    = errors.New("toolkit slot is not set")
)

type Graphics interface {
	Width() int
	Height() int
	DeltaTime() float32
}

type AppType int

const (
	Desktop AppType = iota
	Headless
)

type Application interface {
	Type() AppType
	Log(tag, message string)
	Exit()
}

// Clear mask bits accepted by GL.Clear.
const (
	ColorBufferBit   uint32 = 0x00004000
	DepthBufferBit   uint32 = 0x00000100
	StencilBufferBit uint32 = 0x00000400
)

type GL interface {
	Viewport(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
}

type Input interface {
	X() int
	Y() int
	IsKeyPressed(key int) bool
}

// Context is one complete set of toolkit globals.
type Context struct {
	Graphics Graphics
	App      Application
	GL       GL
	Input    Input
	Files    afero.Fs
	Skin     *skin.Skin
}

var (
	lock    sync.RWMutex
	current *Context
)

// Current returns the installed context, or nil.
func Current() *Context {
	lock.RLock()
	defer lock.RUnlock()
	return current
}

// Require returns the installed context or ErrNotInitialized.
func Require() (*Context, error) {
	if ctx := Current(); ctx != nil {
		return ctx, nil
	}
	return nil, ErrNotInitialized
}

// Install makes ctx current and returns a function restoring the previous
// context.
func Install(ctx *Context) (restore func()) {
	lock.Lock()
	previous := current
	current = ctx
	lock.Unlock()
	return func() {
		lock.Lock()
		current = previous
		lock.Unlock()
	}
}
