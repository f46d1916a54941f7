package file

import (
	"os"
	"path/filepath"
	"testing"

	"proxytray/internal/codec"
	"proxytray/internal/factory"
	"proxytray/internal/publishers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_WritesPayload(t *testing.T) {
	c, err := factory.FromString("vless://11111111-1111-1111-1111-111111111111@h.example:443#v")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sub.txt")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	plugin, err := publishers.Get("file")
	require.NoError(t, err)
	require.NoError(t, plugin.Publish([]factory.Configuration{c}, map[string]interface{}{"path": path, "base64": true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	decoded, err := codec.DecodeBase64(string(data))
	require.NoError(t, err)

	want, err := c.ToURI("v")
	require.NoError(t, err)
	assert.Equal(t, want, decoded)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPublish_RequiresPath(t *testing.T) {
	err := (&Publisher{}).Publish(nil, map[string]interface{}{})
	assert.ErrorContains(t, err, "requires path")
}
