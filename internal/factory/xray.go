package factory

import (
	"strconv"
	"strings"

	"proxytray/internal/document"
)

// XrayConfig is an Xray-core configuration document. Views are computed from the
// document on every call; nothing is cached.
type XrayConfig struct {
	Base
}

func NewXray() *XrayConfig {
	return &XrayConfig{}
}

// NewXrayFromDocument wraps an existing engine document without validating it.
func NewXrayFromDocument(doc document.Document) *XrayConfig {
	return &XrayConfig{Base: Base{doc: doc}}
}

func (c *XrayConfig) Family() Family { return FamilyXray }

// proxyOutboundIndex is the position of the first outbound tagged "proxy", or -1.
func (c *XrayConfig) proxyOutboundIndex() int {
	for i, ob := range c.doc.Array("outbounds") {
		if ob.Get("tag").String() == "proxy" {
			return i
		}
	}
	return -1
}

func (c *XrayConfig) proxyOutboundPath() string {
	i := c.proxyOutboundIndex()
	if i < 0 {
		return ""
	}
	return "outbounds." + strconv.Itoa(i)
}

func (c *XrayConfig) ProxyOutboundObject() document.Document {
	p := c.proxyOutboundPath()
	if p == "" {
		return document.Empty()
	}
	return c.doc.Object(p)
}

// ProxyProtocol is the lowercased protocol of the proxy outbound.
func (c *XrayConfig) ProxyProtocol() string {
	return strings.ToLower(c.ProxyOutboundObject().GetString("protocol"))
}

func serverPath(protocol string) string {
	switch protocol {
	case "vmess", "vless":
		return "settings.vnext.0"
	case "shadowsocks", "trojan":
		return "settings.servers.0"
	}
	return ""
}

func (c *XrayConfig) ProxyServerObject() document.Document {
	p := serverPath(c.ProxyProtocol())
	if p == "" {
		return document.Empty()
	}
	return c.ProxyOutboundObject().Object(p)
}

// ProxyUserObject is users[0] of the server; only VMess and VLESS carry users.
func (c *XrayConfig) ProxyUserObject() document.Document {
	switch c.ProxyProtocol() {
	case "vmess", "vless":
		return c.ProxyServerObject().Object("users.0")
	}
	return document.Empty()
}

func (c *XrayConfig) ProxyStreamSettingsObject() document.Document {
	return c.ProxyOutboundObject().Object("streamSettings")
}

func (c *XrayConfig) ProxyStreamSettingsNetwork() string {
	return c.ProxyStreamSettingsObject().GetString("network")
}

func (c *XrayConfig) ProxyStreamSettingsNetworkObject() document.Document {
	key := networkSettingsKey(c.ProxyStreamSettingsNetwork())
	if key == "" {
		return document.Empty()
	}
	return c.ProxyStreamSettingsObject().Object(key)
}

// SetProxyStreamSettingsNetworkObject replaces the settings object of the current
// network. It reports false when there is no proxy outbound or the network is unknown.
func (c *XrayConfig) SetProxyStreamSettingsNetworkObject(obj document.Document) bool {
	p := c.proxyOutboundPath()
	key := networkSettingsKey(c.ProxyStreamSettingsNetwork())
	if p == "" || key == "" {
		return false
	}
	return c.doc.Set(p+".streamSettings."+key, obj) == nil
}

func (c *XrayConfig) ProxyStreamSettingsTLS() string {
	return c.ProxyStreamSettingsObject().GetString("security")
}

func (c *XrayConfig) ProxyStreamSettingsTLSObject() document.Document {
	key := tlsSettingsKey(c.ProxyStreamSettingsTLS())
	if key == "" {
		return document.Empty()
	}
	return c.ProxyStreamSettingsObject().Object(key)
}

func (c *XrayConfig) SetProxyStreamSettingsTLSObject(obj document.Document) bool {
	p := c.proxyOutboundPath()
	key := tlsSettingsKey(c.ProxyStreamSettingsTLS())
	if p == "" || key == "" {
		return false
	}
	return c.doc.Set(p+".streamSettings."+key, obj) == nil
}

func (c *XrayConfig) LogAccessPath() string { return c.doc.GetString("log.access") }
func (c *XrayConfig) LogErrorPath() string  { return c.doc.GetString("log.error") }

func (c *XrayConfig) SetLogAccessPath(path string) {
	_ = c.doc.Set("log.access", path)
}

func (c *XrayConfig) SetLogErrorPath(path string) {
	_ = c.doc.Set("log.error", path)
}

func (c *XrayConfig) ItemProtocol() string {
	return c.ProxyProtocol()
}

func (c *XrayConfig) ItemAddress() string {
	return c.ProxyServerObject().GetString("address")
}

func (c *XrayConfig) ItemPort() string {
	return c.ProxyServerObject().GetString("port")
}

func (c *XrayConfig) ItemTransport() string {
	return c.ProxyStreamSettingsNetwork()
}

func (c *XrayConfig) ItemTLS() string {
	return c.ProxyStreamSettingsTLS()
}
