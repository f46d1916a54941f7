package factory

import (
	"testing"

	"proxytray/internal/codec"
	"proxytray/internal/document"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hy2Seed = "hysteria2://auth@srv:443?sni=s&insecure=1&obfs=salamander&obfs-password=op#r"

func TestHysteria2FromURI_Obfs(t *testing.T) {
	cfg := NewHysteria2()
	remark, err := cfg.FromURI(hy2Seed)
	require.NoError(t, err)

	doc := cfg.Document()
	assert.Equal(t, "r", remark)
	assert.Equal(t, "srv:443", doc.GetString("server"))
	assert.Equal(t, "auth", doc.GetString("auth"))
	assert.Equal(t, "s", doc.GetString("tls.sni"))
	assert.True(t, doc.Get("tls.insecure").Bool())
	assert.Equal(t, "salamander", doc.GetString("obfs.type"))
	assert.Equal(t, "op", doc.GetString("obfs.salamander.password"))

	assert.Equal(t, "127.0.0.1:10808", cfg.SocksProxyEndpoint())
	assert.Equal(t, "127.0.0.1:10809", cfg.HTTPProxyEndpoint())
	assert.Equal(t, "hysteria2", cfg.ItemProtocol())
	assert.Equal(t, "srv", cfg.ItemAddress())
	assert.Equal(t, "443", cfg.ItemPort())
	assert.Equal(t, "udp", cfg.ItemTransport())
	assert.Equal(t, "tls", cfg.ItemTLS())
}

func TestHysteria2FromURI_Insecure(t *testing.T) {
	tests := map[string]bool{
		"insecure=1":     true,
		"insecure=0":     false,
		"insecure=true":  false,
		"insecure=":      false,
		"sni=only.local": false,
	}
	for query, want := range tests {
		cfg := NewHysteria2()
		_, err := cfg.FromURI("hy2://a@h.com:443?" + query)
		require.NoError(t, err, query)
		assert.Equal(t, want, cfg.Document().Get("tls.insecure").Bool(), query)
		assert.True(t, cfg.Document().Has("tls.insecure"), query)

		uri, err := cfg.ToURI("")
		require.NoError(t, err)
		if want {
			assert.Contains(t, uri, "insecure=1")
		} else {
			assert.Contains(t, uri, "insecure=0")
		}
	}
}

func TestHysteria2FromURI_ObfsNeedsBothKeys(t *testing.T) {
	cfg := NewHysteria2()
	_, err := cfg.FromURI("hysteria2://a@h.com:443?obfs=salamander")
	require.NoError(t, err)
	assert.False(t, cfg.Document().Has("obfs"))
}

func TestHysteria2FromURI_ObfsEmptyPassword(t *testing.T) {
	cfg := NewHysteria2()
	_, err := cfg.FromURI("hysteria2://a@h.com:443?obfs=salamander&obfs-password=")
	require.NoError(t, err)
	assert.False(t, cfg.Document().Has("obfs"))

	uri, err := cfg.ToURI("")
	require.NoError(t, err)
	assert.NotContains(t, uri, "obfs")
}

func TestHysteria2_ObfsTypeWithPathSyntax(t *testing.T) {
	for _, obfsType := range []string{":x", "a.b", "x:y"} {
		cfg := NewHysteria2()
		_, err := cfg.FromURI("hysteria2://a@h.com:443?obfs=" + codec.Quote(obfsType) + "&obfs-password=pw")
		require.NoError(t, err, obfsType)

		doc := cfg.Document()
		assert.Equal(t, obfsType, doc.GetString("obfs.type"), obfsType)
		assert.Equal(t, "pw", doc.GetString(document.Key("obfs", obfsType, "password")), obfsType)

		uri, err := cfg.ToURI("n")
		require.NoError(t, err)
		back := NewHysteria2()
		_, err = back.FromURI(uri)
		require.NoError(t, err, uri)
		assert.True(t, doc.Equal(back.Document()), uri)
	}
}

func TestHysteria2ToURI_RoundTrip(t *testing.T) {
	cfg := NewHysteria2()
	remark, err := cfg.FromURI(hy2Seed)
	require.NoError(t, err)

	uri, err := cfg.ToURI(remark)
	require.NoError(t, err)
	assert.Equal(t, hy2Seed, uri)

	withPin := "hysteria2://p%40ss@[2001:db8::1]:8443?sni=x.com&insecure=0&pinSHA256=AB%3ACD#my%20node"
	cfg = NewHysteria2()
	remark, err = cfg.FromURI(withPin)
	require.NoError(t, err)
	assert.Equal(t, "my node", remark)
	assert.Equal(t, "p@ss", cfg.Document().GetString("auth"))
	assert.Equal(t, "AB:CD", cfg.Document().GetString("tls.pinSHA256"))
	assert.Equal(t, "2001:db8::1", cfg.ItemAddress())

	uri, err = cfg.ToURI(remark)
	require.NoError(t, err)
	assert.Equal(t, withPin, uri)
}

func TestHysteria2FromURI_Failures(t *testing.T) {
	cfg := NewHysteria2()
	_, err := cfg.FromURI(hy2Seed)
	require.NoError(t, err)
	before := cfg.ToJSONString()

	_, err = cfg.FromURI("hysteria2://auth@")
	assert.ErrorIs(t, err, ErrMalformedURI)
	_, err = cfg.FromURI("vless://id@h:1")
	assert.ErrorIs(t, err, ErrUnrecognizedScheme)
	assert.Equal(t, before, cfg.ToJSONString())
}

func TestHysteriaEndpoints(t *testing.T) {
	cfg := NewHysteria2()
	_, err := cfg.FromURI(hy2Seed)
	require.NoError(t, err)

	require.True(t, cfg.SetSocksProxyEndpoint("0.0.0.0:1080"))
	require.True(t, cfg.SetHTTPProxyEndpoint("[::1]:8080"))
	assert.Equal(t, "0.0.0.0:1080", cfg.SocksProxyEndpoint())
	assert.Equal(t, "[::1]:8080", cfg.HTTPProxyEndpoint())
	assert.Equal(t, "0.0.0.0:1080", cfg.Document().GetString("socks5.listen"))

	assert.False(t, cfg.SetSocksProxyEndpoint("nope"))
	assert.Equal(t, "0.0.0.0:1080", cfg.SocksProxyEndpoint())
}

func TestHysteria1(t *testing.T) {
	doc, err := document.Parse([]byte(`{"server":"h1.example:36712","protocol":"faketcp","up_mbps":10,"down_mbps":50,"socks5":{"listen":"127.0.0.1:1080"}}`))
	require.NoError(t, err)
	cfg := NewHysteria1FromDocument(doc)

	assert.Equal(t, FamilyHysteria1, cfg.Family())
	assert.Equal(t, "hysteria1", cfg.ItemProtocol())
	assert.Equal(t, "h1.example", cfg.ItemAddress())
	assert.Equal(t, "36712", cfg.ItemPort())
	assert.Equal(t, "faketcp", cfg.ItemTransport())
	assert.Equal(t, "127.0.0.1:1080", cfg.SocksProxyEndpoint())
	assert.Equal(t, "", cfg.HTTPProxyEndpoint())

	_, err = cfg.ToURI("x")
	assert.ErrorIs(t, err, ErrUnsupportedProtocol)
	_, err = cfg.FromURI("hysteria://h:1?auth=x")
	assert.ErrorIs(t, err, ErrUnsupportedProtocol)
	assert.True(t, cfg.Document().Equal(doc))
}

func TestHysteria_PortRangeServer(t *testing.T) {
	cfg := NewHysteria2FromDocument(document.Of(
		document.F("server", "h.example:20000-30000"),
		document.F("transport", document.Of(document.F("type", "udp"))),
	))
	assert.Equal(t, "h.example", cfg.ItemAddress())
	assert.Equal(t, "20000-30000", cfg.ItemPort())
}
