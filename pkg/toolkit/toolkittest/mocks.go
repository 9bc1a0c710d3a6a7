package toolkittest

import (
	"github.com/stretchr/testify/mock"

	"github.com/CoverConnect/egonet/pkg/toolkit"
)

type MockGraphics struct{ mock.Mock }

func (m *MockGraphics) Width() int         { return m.Called().Int(0) }
func (m *MockGraphics) Height() int        { return m.Called().Int(0) }
func (m *MockGraphics) DeltaTime() float32 { return m.Called().Get(0).(float32) }

type MockApplication struct{ mock.Mock }

func (m *MockApplication) Type() toolkit.AppType   { return m.Called().Get(0).(toolkit.AppType) }
func (m *MockApplication) Log(tag, message string) { m.Called(tag, message) }
func (m *MockApplication) Exit()                   { m.Called() }

type MockGL struct{ mock.Mock }

func (m *MockGL) Viewport(x, y, width, height int) { m.Called(x, y, width, height) }
func (m *MockGL) ClearColor(r, g, b, a float32)    { m.Called(r, g, b, a) }
func (m *MockGL) Clear(mask uint32)                { m.Called(mask) }

type MockInput struct{ mock.Mock }

func (m *MockInput) X() int                    { return m.Called().Int(0) }
func (m *MockInput) Y() int                    { return m.Called().Int(0) }
func (m *MockInput) IsKeyPressed(key int) bool { return m.Called(key).Bool(0) }

var (
	_ toolkit.Graphics    = (*MockGraphics)(nil)
	_ toolkit.Application = (*MockApplication)(nil)
	_ toolkit.GL          = (*MockGL)(nil)
	_ toolkit.Input       = (*MockInput)(nil)
)
