package reagent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoTool(name string) *ToolFunc {
	return NewToolFunc(name, "echoes its input",
		func(_ context.Context, input string) (string, error) {
			return input, nil
		})
}

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register(echoTool("a")))
	require.NoError(t, registry.Register(echoTool("b")))
	assert.Equal(t, 2, registry.Len())
}

func TestRegistry_Register_Duplicate(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(echoTool("a")))

	err := registry.Register(echoTool("a"))
	require.ErrorIs(t, err, ErrDuplicateTool)
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_MustRegister_PanicsOnDuplicate(t *testing.T) {
	registry := NewRegistry().MustRegister(echoTool("a"))

	assert.Panics(t, func() {
		registry.MustRegister(echoTool("a"))
	})
}

func TestRegistry_Lookup(t *testing.T) {
	registry := NewRegistry().MustRegister(echoTool("a"))

	tool, err := registry.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, "a", tool.Name())

	_, err = registry.Lookup("missing")
	require.ErrorIs(t, err, ErrUnknownTool)
}

func TestRegistry_Lookup_CaseSensitive(t *testing.T) {
	registry := NewRegistry().MustRegister(echoTool("Calculator"))

	_, err := registry.Lookup("calculator")
	require.ErrorIs(t, err, ErrUnknownTool)
}

func TestRegistry_PreservesRegistrationOrder(t *testing.T) {
	registry := NewRegistry().
		MustRegister(echoTool("zeta")).
		MustRegister(echoTool("alpha")).
		MustRegister(echoTool("mid"))

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, registry.Names())

	tools := registry.Tools()
	require.Len(t, tools, 3)
	assert.Equal(t, "zeta", tools[0].Name())
	assert.Equal(t, "alpha", tools[1].Name())
	assert.Equal(t, "mid", tools[2].Name())
}
