// Package toolkittest prepares toolkit globals for tests that run without a
// display.
package toolkittest

import (
	"sync"
	"testing"

	"github.com/spf13/afero"

	"github.com/CoverConnect/egonet/pkg/toolkit"
	"github.com/CoverConnect/egonet/pkg/toolkit/skin"
)

var (
	bootstrapOnce sync.Once
	bootstrapErr  error
)

// Bootstrap installs a headless toolkit context for the rest of the
// process: the headless backend, no-op graphics, app, GL and input, the
// real file system and the default skin. Only the first call does any work;
// later calls return its result without touching the installed context.
func Bootstrap() error {
	bootstrapOnce.Do(func() {
		bootstrapErr = bootstrap()
	})
	return bootstrapErr
}

func bootstrap() error {
	if err := toolkit.LoadBackend(HeadlessBackend{}); err != nil {
		return err
	}
	s, err := skin.Default()
	if err != nil {
		return err
	}
	toolkit.Install(&toolkit.Context{
		Graphics: headlessGraphics{},
		App:      headlessApp{},
		GL:       headlessGL{},
		Input:    headlessInput{},
		Files:    afero.NewOsFs(),
		Skin:     s,
	})
	return nil
}

// Env is a toolkit context owned by a single test.
type Env struct {
	Context  *toolkit.Context
	Graphics *MockGraphics
	App      *MockApplication
	GL       *MockGL
	Input    *MockInput
	Files    afero.Fs
}

// New installs a context of mocks, an in-memory file system and the
// default skin for the duration of t. The previous context is restored and
// mock expectations asserted when t finishes. Tests using New must not run
// in parallel with other toolkit tests.
func New(t testing.TB) *Env {
	t.Helper()
	if err := toolkit.LoadBackend(HeadlessBackend{}); err != nil {
		t.Fatalf("load backend: %v", err)
	}
	s, err := skin.Default()
	if err != nil {
		t.Fatalf("load default skin: %v", err)
	}
	env := &Env{
		Graphics: &MockGraphics{},
		App:      &MockApplication{},
		GL:       &MockGL{},
		Input:    &MockInput{},
		Files:    afero.NewMemMapFs(),
	}
	env.Context = &toolkit.Context{
		Graphics: env.Graphics,
		App:      env.App,
		GL:       env.GL,
		Input:    env.Input,
		Files:    env.Files,
		Skin:     s,
	}
	restore := toolkit.Install(env.Context)
	t.Cleanup(func() {
		restore()
		env.Graphics.AssertExpectations(t)
		env.App.AssertExpectations(t)
		env.GL.AssertExpectations(t)
		env.Input.AssertExpectations(t)
	})
	return env
}
