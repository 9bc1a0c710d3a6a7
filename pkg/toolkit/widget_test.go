package toolkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CoverConnect/egonet/pkg/toolkit"
	"github.com/CoverConnect/egonet/pkg/toolkit/skin"
	"github.com/CoverConnect/egonet/pkg/toolkit/toolkittest"
)

func TestNewWidgetWithoutContext(t *testing.T) {
	restore := toolkit.Install(nil)
	defer restore()

	_, err := toolkit.NewWidget("label", skin.DefaultStyle)
	assert.ErrorIs(t, err, toolkit.ErrNotInitialized)
}

func TestNewWidgetUnknownStyle(t *testing.T) {
	toolkittest.New(t)
	_, err := toolkit.NewWidget("label", "fancy")
	assert.ErrorIs(t, err, skin.ErrUnknownStyle)
}

func TestDrawClampsAndClears(t *testing.T) {
	env := toolkittest.New(t)
	env.Graphics.On("Width").Return(100)
	env.Graphics.On("Height").Return(50)

	w, err := toolkit.NewWidget("text-button", skin.DefaultStyle)
	require.NoError(t, err)
	w.SetBounds(80, 10, 40, 60)

	bg, err := env.Context.Skin.Color(w.Style.Background)
	require.NoError(t, err)
	env.GL.On("Viewport", 80, 10, 20, 40).Once()
	env.GL.On("ClearColor", bg.R, bg.G, bg.B, bg.A).Once()
	env.GL.On("Clear", toolkit.ColorBufferBit).Once()

	require.NoError(t, w.Draw())
}

func TestDrawWithoutBackgroundOnlySetsViewport(t *testing.T) {
	env := toolkittest.New(t)
	env.Graphics.On("Width").Return(100)
	env.Graphics.On("Height").Return(100)
	env.GL.On("Viewport", 0, 0, 30, 10).Once()

	w, err := toolkit.NewWidget("label", skin.DefaultStyle)
	require.NoError(t, err)
	w.SetBounds(0, 0, 30, 10)
	require.NoError(t, w.Draw())
	env.GL.AssertNotCalled(t, "Clear", toolkit.ColorBufferBit)
}

func TestDrawOffscreenIsNoop(t *testing.T) {
	env := toolkittest.New(t)
	env.Graphics.On("Width").Return(100)
	env.Graphics.On("Height").Return(100)

	w, err := toolkit.NewWidget("window", skin.DefaultStyle)
	require.NoError(t, err)
	w.SetBounds(200, 0, 10, 10)
	require.NoError(t, w.Draw())
}

func TestDrawWithIncompleteContext(t *testing.T) {
	env := toolkittest.New(t)
	w, err := toolkit.NewWidget("text-button", skin.DefaultStyle)
	require.NoError(t, err)
	w.SetBounds(0, 0, 10, 10)

	tests := []struct {
		name string
		ctx  toolkit.Context
	}{
		{"no graphics", toolkit.Context{GL: env.GL, Skin: env.Context.Skin}},
		{"no gl", toolkit.Context{Graphics: env.Graphics, Skin: env.Context.Skin}},
		{"no skin", toolkit.Context{Graphics: env.Graphics, GL: env.GL}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := tt.ctx
			restore := toolkit.Install(&ctx)
			defer restore()
			assert.ErrorIs(t, w.Draw(), toolkit.ErrMissingSlot)
		})
	}
}

func TestNewWidgetWithoutSkin(t *testing.T) {
	restore := toolkit.Install(&toolkit.Context{})
	defer restore()
	_, err := toolkit.NewWidget("label", skin.DefaultStyle)
	assert.ErrorIs(t, err, toolkit.ErrMissingSlot)
}
