package mcpserver

import (
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"no path", errors.New("invalid detail"), "invalid detail"},
		{"home path", errors.New("open /home/dev/api.yaml: no such file"), "open <path>: no such file"},
		{"tmp path", errors.New("read /tmp/x/spec.json failed"), "read <path> failed"},
		{"relative path kept", errors.New("open testdata/api.yaml"), "open testdata/api.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeError(tt.err))
		})
	}
}

func TestErrResult(t *testing.T) {
	result := errResult(errors.New("failed to parse /root/specs/a.yaml"))

	assert.True(t, result.IsError)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "failed to parse <path>", text.Text)
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "1 change", formatCount(1, "change"))
	assert.Equal(t, "0 changes", formatCount(0, "change"))
	assert.Equal(t, "3 renamed schemas", formatCount(3, "renamed schema"))
}
