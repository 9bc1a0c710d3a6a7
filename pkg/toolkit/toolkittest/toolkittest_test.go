package toolkittest

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CoverConnect/egonet/pkg/toolkit"
	"github.com/CoverConnect/egonet/pkg/toolkit/skin"
)

func TestBootstrapIsIdempotent(t *testing.T) {
	require.NoError(t, Bootstrap())
	first := toolkit.Current()
	require.NotNil(t, first)

	require.NoError(t, Bootstrap())
	assert.Same(t, first, toolkit.Current())

	assert.Equal(t, HeadlessBackend{}.Name(), toolkit.LoadedBackend().Name())
	assert.Equal(t, toolkit.Headless, first.App.Type())
	assert.Equal(t, HeadlessWidth, first.Graphics.Width())
	assert.IsType(t, &afero.OsFs{}, first.Files)
	for _, widget := range skin.StandardWidgets {
		_, err := first.Skin.Style(widget, skin.DefaultStyle)
		assert.NoError(t, err, widget)
	}
}

func TestNewRestoresPreviousContext(t *testing.T) {
	require.NoError(t, Bootstrap())
	global := toolkit.Current()

	t.Run("scoped", func(t *testing.T) {
		env := New(t)
		assert.Same(t, env.Context, toolkit.Current())
		assert.IsType(t, &afero.MemMapFs{}, env.Files)

		env.Graphics.On("Width").Return(800).Once()
		assert.Equal(t, 800, toolkit.Current().Graphics.Width())
	})

	assert.Same(t, global, toolkit.Current())
}
