package publishers

import (
	"strings"
	"testing"

	"proxytray/internal/codec"
	"proxytray/internal/factory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeAll(t *testing.T, inputs ...string) []factory.Configuration {
	t.Helper()
	var out []factory.Configuration
	for _, in := range inputs {
		c, err := factory.FromString(in)
		require.NoError(t, err)
		require.NotEqual(t, factory.FamilyNone, c.Family(), in)
		out = append(out, c)
	}
	return out
}

func TestGenerateSubscriptionPayload(t *testing.T) {
	cfgs := decodeAll(t,
		"vless://11111111-1111-1111-1111-111111111111@h.example:443?type=ws&path=%2Fws#first",
		"vless://11111111-1111-1111-1111-111111111111@h.example:443?type=ws&path=%2Fws#duplicate",
		"hysteria2://auth@srv.example:443?insecure=1",
		`{"server":"h1.example:36712","protocol":"udp","up_mbps":10}`,
	)

	payload, err := GenerateSubscriptionPayload(cfgs, map[string]interface{}{"prefix": "EU "})
	require.NoError(t, err)

	lines := strings.Split(payload, "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "vless://"))
	assert.True(t, strings.HasSuffix(lines[0], "#EU%20first"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "hysteria2://"))

	back, err := factory.FromString(lines[1])
	require.NoError(t, err)
	assert.Equal(t, "EU hysteria2 srv.example:443", back.ItemRemark())
}

func TestGenerateSubscriptionPayload_Base64(t *testing.T) {
	cfgs := decodeAll(t, "trojan://pw@t.example:443#t")

	plain, err := GenerateSubscriptionPayload(cfgs, nil)
	require.NoError(t, err)

	encoded, err := GenerateSubscriptionPayload(cfgs, map[string]interface{}{"base64": true})
	require.NoError(t, err)

	decoded, err := codec.DecodeBase64(encoded)
	require.NoError(t, err)
	assert.Equal(t, plain, decoded)
}

func TestRegistry(t *testing.T) {
	_, err := Get("nope")
	assert.ErrorContains(t, err, "publisher plugin 'nope' not found")
}
