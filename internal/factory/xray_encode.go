package factory

import (
	"fmt"

	"proxytray/internal/codec"
	"proxytray/internal/document"
)

// ToURI emits the share link of the proxy outbound in the dialect of its protocol.
func (c *XrayConfig) ToURI(remark string) (string, error) {
	switch protocol := c.ProxyProtocol(); protocol {
	case "vmess":
		return c.vmessURI(remark)
	case "vless":
		return c.vlessURI(remark), nil
	case "shadowsocks":
		return c.shadowsocksURI(remark), nil
	case "trojan":
		return c.trojanURI(remark), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedProtocol, protocol)
	}
}

// transportKwargs returns the VLESS-dialect transport and TLS parameters, transport first.
func (c *XrayConfig) transportKwargs() (network, tls kwargs) {
	network = kwargsFromNetworkObject(c.ProxyStreamSettingsNetwork(), c.ProxyStreamSettingsNetworkObject())
	tls = kwargsFromTLSObject(c.ProxyStreamSettingsTLS(), c.ProxyStreamSettingsTLSObject())
	return network, tls
}

func (c *XrayConfig) vmessURI(remark string) (string, error) {
	server := c.ProxyServerObject()
	user := c.ProxyUserObject()
	network := c.ProxyStreamSettingsNetwork()
	netKw, tlsKw := c.transportKwargs()

	payload := document.Of(
		document.F("v", "2"),
		document.F("ps", remark),
		document.F("add", server.GetString("address")),
		document.F("port", server.Get("port").Int()),
		document.F("id", user.GetString("id")),
		document.F("aid", user.Get("alterId").Int()),
		document.F("scy", user.GetString("security")),
		document.F("net", network),
		document.F("tls", c.ProxyStreamSettingsTLS()),
	)
	for _, kv := range append(kwargsToVMess(network, netKw), tlsKw...) {
		_ = payload.Set(document.Key(kv.key), kv.value)
	}
	text, err := codec.EncodeJSON(payload)
	if err != nil {
		return "", err
	}
	return "vmess://" + codec.EncodeBase64(text), nil
}

func (c *XrayConfig) vlessURI(remark string) string {
	server := c.ProxyServerObject()
	user := c.ProxyUserObject()
	netKw, tlsKw := c.transportKwargs()

	var q codec.Query
	q.Add("encryption", valueOr(user.GetString("encryption"), "none"))
	q.Add("type", c.ProxyStreamSettingsNetwork())
	q.Add("security", valueOr(c.ProxyStreamSettingsTLS(), "none"))
	q.AddNonEmpty("flow", user.GetString("flow"))
	addKwargs(&q, netKw, tlsKw)

	return "vless://" + codec.Quote(user.GetString("id")) + "@" + serverAuthority(server) +
		"?" + q.Encode() + fragment(remark)
}

func (c *XrayConfig) shadowsocksURI(remark string) string {
	server := c.ProxyServerObject()
	return "ss://" + codec.Quote(server.GetString("method")) + ":" + codec.Quote(server.GetString("password")) +
		"@" + serverAuthority(server) + fragment(remark)
}

func (c *XrayConfig) trojanURI(remark string) string {
	server := c.ProxyServerObject()
	netKw, tlsKw := c.transportKwargs()

	var q codec.Query
	q.Add("type", c.ProxyStreamSettingsNetwork())
	q.Add("security", valueOr(c.ProxyStreamSettingsTLS(), "none"))
	addKwargs(&q, netKw, tlsKw)

	return "trojan://" + codec.Quote(server.GetString("password")) + "@" + serverAuthority(server) +
		"?" + q.Encode() + fragment(remark)
}

func addKwargs(q *codec.Query, groups ...kwargs) {
	for _, g := range groups {
		for _, kv := range g {
			q.AddNonEmpty(kv.key, kv.value)
		}
	}
}

func serverAuthority(server document.Document) string {
	return codec.JoinAuthority(server.GetString("address"), server.GetString("port"))
}

func fragment(remark string) string {
	if remark == "" {
		return ""
	}
	return "#" + codec.Quote(remark)
}
