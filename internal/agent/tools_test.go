package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTool struct {
	name   string
	inputs []string
	result string
	err    error
}

func (t *stubTool) Name() string        { return t.name }
func (t *stubTool) Description() string { return "stub" }
func (t *stubTool) InputSchema() any {
	return map[string]any{"type": "object", "properties": map[string]any{}}
}
func (t *stubTool) Execute(ctx context.Context, input string) (string, error) {
	t.inputs = append(t.inputs, input)
	return t.result, t.err
}

func TestRegistryInvokeDispatchesByName(t *testing.T) {
	reg := NewRegistry()
	tool := &stubTool{name: "ping", result: "pong"}
	reg.Register(tool)

	out, err := reg.Invoke(context.Background(), "ping", `{"target":"192.0.2.1"}`)
	require.NoError(t, err)
	assert.Equal(t, "pong", out)
	assert.Equal(t, []string{`{"target":"192.0.2.1"}`}, tool.inputs)
}

func TestRegistryInvokeRejectsUnknownTool(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&stubTool{name: "ping"})

	_, err := reg.Invoke(context.Background(), "reboot", "{}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tool")
}

func TestRegistryAllPreservesRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"get_version", "get_route_table", "ping"} {
		reg.Register(&stubTool{name: name})
	}

	var names []string
	for _, tool := range reg.All() {
		names = append(names, tool.Name())
	}
	assert.Equal(t, []string{"get_version", "get_route_table", "ping"}, names)
}

func TestRegistryRegisterReplacesByName(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&stubTool{name: "ping", result: "old"})
	reg.Register(&stubTool{name: "ping", result: "new"})

	out, err := reg.Invoke(context.Background(), "ping", "{}")
	require.NoError(t, err)
	assert.Equal(t, "new", out)
	assert.Len(t, reg.All(), 1)
}
