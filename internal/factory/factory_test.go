package factory

import (
	"testing"

	"proxytray/internal/codec"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromString_Links(t *testing.T) {
	tests := []struct {
		in     string
		family Family
		proto  string
	}{
		{vmessSeed, FamilyXray, "vmess"},
		{vlessSeed, FamilyXray, "vless"},
		{ssSeed, FamilyXray, "shadowsocks"},
		{trojanSeed, FamilyXray, "trojan"},
		{"  " + vlessSeed + "\n", FamilyXray, "vless"},
		{"VLESS://id@h.com:443", FamilyXray, "vless"},
		{hy2Seed, FamilyHysteria2, "hysteria2"},
		{"hy2://a@h.com:443", FamilyHysteria2, "hysteria2"},
	}
	for _, tt := range tests {
		cfg, err := FromString(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.family, cfg.Family(), tt.in)
		assert.Equal(t, tt.proto, cfg.ItemProtocol(), tt.in)
	}
}

func TestFromString_Errors(t *testing.T) {
	_, err := FromString("wireguard://key@h:51820")
	assert.ErrorIs(t, err, ErrUnrecognizedScheme)

	_, err = FromString("hysteria://h.com:443?auth=x")
	assert.ErrorIs(t, err, ErrUnsupportedProtocol)
}

func TestFromString_FallsBackToBase(t *testing.T) {
	for _, in := range []string{"", "hello", "[1,2]", "vless://no-user-here", "ss://@", `{"foo":"bar"}`} {
		cfg, err := FromString(in)
		require.NoError(t, err, in)
		assert.Equal(t, FamilyNone, cfg.Family(), in)
		assert.Equal(t, "{}", cfg.ToJSONString(), in)
	}
}

func TestDecode_ReportsWhy(t *testing.T) {
	_, err := Decode("vless://id@host:port#x")
	assert.ErrorIs(t, err, ErrMalformedURI)
	assert.ErrorIs(t, err, codec.ErrInvalidAuthority)

	_, err = Decode("hy2://auth@host:port")
	assert.ErrorIs(t, err, codec.ErrInvalidAuthority)

	_, err = Decode("trojan://pw@h.example:99999")
	assert.ErrorIs(t, err, ErrMalformedURI)
	assert.NotErrorIs(t, err, codec.ErrInvalidAuthority)

	_, err = Decode("wireguard://key@h:51820")
	assert.ErrorIs(t, err, ErrUnrecognizedScheme)

	cfg, err := Decode("hello")
	require.NoError(t, err)
	assert.Equal(t, FamilyNone, cfg.Family())

	cfg, err = FromString("vless://id@host:port#x")
	require.NoError(t, err)
	assert.Equal(t, FamilyNone, cfg.Family())
}

func TestFromString_RawRemark(t *testing.T) {
	cfg, err := FromString("trojan://pw@h.example:443?security=tls#🇺🇸 US Node")
	require.NoError(t, err)
	assert.Equal(t, "🇺🇸 US Node", cfg.ItemRemark())

	uri, err := cfg.ToURI(cfg.ItemRemark())
	require.NoError(t, err)
	back, err := FromString(uri)
	require.NoError(t, err)
	assert.Equal(t, "🇺🇸 US Node", back.ItemRemark())
	assert.True(t, cfg.Document().Equal(back.Document()))
}

func TestFromString_JSON(t *testing.T) {
	cfg, err := FromString(`{"server":"h.com:443","auth":"x","tls":{"sni":"h.com"},"note":"see https://example.com"}`)
	require.NoError(t, err)
	assert.Equal(t, FamilyHysteria2, cfg.Family())

	xray, err := FromString(`{"outbounds":[{"tag":"proxy","protocol":"trojan","settings":{"servers":[{"address":"t.com","port":443,"password":"p"}]}}]}`)
	require.NoError(t, err)
	require.Equal(t, FamilyXray, xray.Family())
	assert.Equal(t, "t.com", xray.ItemAddress())
	assert.Equal(t, "", xray.SocksProxyEndpoint())
}

func TestFromDocument(t *testing.T) {
	tests := []struct {
		json string
		want Family
	}{
		{`{"inbounds":[]}`, FamilyXray},
		{`{"outbounds":[],"server":"x:1"}`, FamilyXray},
		{`{"server":"x:1","up_mbps":10}`, FamilyHysteria1},
		{`{"server":"x:1","obfs":"xplus"}`, FamilyHysteria1},
		{`{"server":"x:1","auth_str":"a"}`, FamilyHysteria1},
		{`{"server":"x:1","obfs":{"type":"salamander"}}`, FamilyHysteria2},
		{`{"server":"x:1","bandwidth":{"up":"10 mbps"}}`, FamilyHysteria2},
		{`{"server":"x:1","lazy":true}`, FamilyHysteria2},
		{`{"server":"x:1"}`, FamilyNone},
		{`{"up_mbps":10}`, FamilyNone},
		{`{}`, FamilyNone},
	}
	for _, tt := range tests {
		doc, err := codec.DecodeJSON(tt.json)
		require.NoError(t, err)
		assert.Equal(t, tt.want, FromDocument(doc).Family(), tt.json)
	}
}

func TestPackUnpack(t *testing.T) {
	for _, in := range []string{vmessSeed, hy2Seed} {
		cfg, err := FromString(in)
		require.NoError(t, err)

		restored, err := Unpack(cfg.Family(), Pack(cfg))
		require.NoError(t, err)
		assert.Equal(t, cfg.Family(), restored.Family())
		assert.Equal(t, cfg.ToJSONString(), restored.ToJSONString())
	}

	_, err := Unpack(FamilyXray, "%%%")
	assert.ErrorIs(t, err, codec.ErrInvalidBase64)
	_, err = Unpack(FamilyXray, codec.EncodeBase64("[]"))
	assert.ErrorIs(t, err, codec.ErrMalformedJSON)
}

func TestFingerprint(t *testing.T) {
	a, err := FromString(vlessSeed)
	require.NoError(t, err)
	b, err := FromString("vless://11111111-1111-1111-1111-111111111111@HOST.example:443?encryption=none&type=tcp&security=reality&fp=chrome&sni=y.com&pbk=KEY&sid=01#other")
	require.NoError(t, err)
	require.True(t, b.SetSocksProxyEndpoint("0.0.0.0:1"))
	assert.Equal(t, Fingerprint(a), Fingerprint(b))

	c, err := FromString("vless://11111111-1111-1111-1111-111111111111@host.example:443?encryption=none&type=tcp&security=reality&fp=chrome&sni=y.com&pbk=OTHER&sid=01#n")
	require.NoError(t, err)
	assert.NotEqual(t, Fingerprint(a), Fingerprint(c))

	h1, err := FromString(hy2Seed)
	require.NoError(t, err)
	h2, err := FromString(hy2Seed)
	require.NoError(t, err)
	require.True(t, h2.SetHTTPProxyEndpoint("127.0.0.1:1"))
	assert.Equal(t, Fingerprint(h1), Fingerprint(h2))
	assert.Len(t, Fingerprint(h1), 64)
}

func TestValidUserID(t *testing.T) {
	assert.True(t, ValidUserID("11111111-1111-1111-1111-111111111111"))
	assert.True(t, ValidUserID("short-id"))
	assert.False(t, ValidUserID(""))
	assert.False(t, ValidUserID("this-is-definitely-longer-than-thirty-bytes"))
}

func TestFamilyString(t *testing.T) {
	for _, f := range []Family{FamilyXray, FamilyHysteria1, FamilyHysteria2} {
		assert.Equal(t, f, ParseFamily(f.String()))
	}
	assert.Equal(t, FamilyNone, ParseFamily("clash"))
}

func FuzzFromString(f *testing.F) {
	for _, s := range []string{
		"", vmessSeed, vlessSeed, ssSeed, trojanSeed, hy2Seed,
		"vmess://", "ss://@:", "vless://@[::1", "hy2://@?#", `{"outbounds":[1]}`,
	} {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, s string) {
		cfg, err := FromString(s)
		if err != nil {
			return
		}
		if cfg == nil {
			t.Fatalf("nil configuration on nil error")
		}
		// Views are total.
		_ = cfg.ItemAddress() + cfg.ItemPort() + cfg.ItemTransport() + cfg.ItemTLS()

		x, ok := cfg.(*XrayConfig)
		if !ok || schemeOf(s) == "" {
			return
		}
		proxies := 0
		for _, ob := range x.Document().Array("outbounds") {
			if ob.Get("tag").String() == "proxy" {
				proxies++
			}
		}
		if proxies != 1 {
			t.Fatalf("decoded link has %d proxy outbounds", proxies)
		}
	})
}
