package toolkit

import (
	"fmt"

	"github.com/CoverConnect/egonet/pkg/toolkit/skin"
)

// Widget is a rectangle drawn with a style from the current skin.
type Widget struct {
	Kind      string
	StyleName string
	Style     skin.Style
	X, Y      int
	Width     int
	Height    int
}

// NewWidget resolves the named style for kind from the current skin.
func NewWidget(kind, styleName string) (*Widget, error) {
	ctx, err := Require()
	if err != nil {
		return nil, err
	}
	if ctx.Skin == nil {
		return nil, fmt.Errorf("widget %s: skin: %w", kind, ErrMissingSlot)
	}
	style, err := ctx.Skin.Style(kind, styleName)
	if err != nil {
		return nil, fmt.Errorf("widget %s: %w", kind, err)
	}
	return &Widget{Kind: kind, StyleName: styleName, Style: style}, nil
}

// SetBounds places the widget. Width and height are clamped to the screen
// at draw time.
func (w *Widget) SetBounds(x, y, width, height int) {
	w.X, w.Y, w.Width, w.Height = x, y, width, height
}

// Draw fills the widget's visible area with its background color. Widgets
// without a background only set the viewport.
func (w *Widget) Draw() error {
	ctx, err := Require()
	if err != nil {
		return err
	}
	switch {
	case ctx.Graphics == nil:
		return fmt.Errorf("draw %s: graphics: %w", w.Kind, ErrMissingSlot)
	case ctx.GL == nil:
		return fmt.Errorf("draw %s: gl: %w", w.Kind, ErrMissingSlot)
	case ctx.Skin == nil && w.Style.Background != "":
		return fmt.Errorf("draw %s: skin: %w", w.Kind, ErrMissingSlot)
	}
	width := min(w.Width, ctx.Graphics.Width()-w.X)
	height := min(w.Height, ctx.Graphics.Height()-w.Y)
	if width <= 0 || height <= 0 {
		return nil
	}
	ctx.GL.Viewport(w.X, w.Y, width, height)
	if w.Style.Background == "" {
		return nil
	}
	bg, err := ctx.Skin.Color(w.Style.Background)
	if err != nil {
		return fmt.Errorf("widget %s: %w", w.Kind, err)
	}
	ctx.GL.ClearColor(bg.R, bg.G, bg.B, bg.A)
	ctx.GL.Clear(ColorBufferBit)
	return nil
}
