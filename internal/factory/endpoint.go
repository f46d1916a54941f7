package factory

import (
	"strconv"

	"proxytray/internal/codec"
	"proxytray/internal/document"
)

// parseEndpoint validates a local listener "host:port".
func parseEndpoint(ep string) (string, int, bool) {
	host, portText, err := codec.SplitAuthority(ep)
	if err != nil {
		return "", 0, false
	}
	port, ok := parsePort(portText)
	if !ok {
		return "", 0, false
	}
	return host, port, true
}

func (c *XrayConfig) inboundIndex(protocol string) int {
	for i, in := range c.doc.Array("inbounds") {
		if in.Get("protocol").String() == protocol {
			return i
		}
	}
	return -1
}

func (c *XrayConfig) inboundEndpoint(protocol string) string {
	i := c.inboundIndex(protocol)
	if i < 0 {
		return ""
	}
	in := c.doc.Object("inbounds." + strconv.Itoa(i))
	listen, port := in.GetString("listen"), in.GetString("port")
	if listen == "" && port == "" {
		return ""
	}
	return codec.JoinAuthority(listen, port)
}

// setInboundEndpoint rewrites listen/port of the first inbound of protocol, or
// appends a complete inbound when there is none. The document is only replaced
// once every write has succeeded.
func (c *XrayConfig) setInboundEndpoint(protocol, ep string) bool {
	host, port, ok := parseEndpoint(ep)
	if !ok {
		return false
	}
	doc := c.doc.Clone()
	if i := c.inboundIndex(protocol); i >= 0 {
		p := "inbounds." + strconv.Itoa(i)
		if doc.Set(p+".listen", host) != nil || doc.Set(p+".port", port) != nil {
			return false
		}
	} else {
		var in document.Document
		if protocol == "socks" {
			in = socksInbound(host, port)
		} else {
			in = httpInbound(host, port)
		}
		if doc.Append("inbounds", in) != nil {
			return false
		}
	}
	c.doc = doc
	return true
}

func (c *XrayConfig) HTTPProxyEndpoint() string  { return c.inboundEndpoint("http") }
func (c *XrayConfig) SocksProxyEndpoint() string { return c.inboundEndpoint("socks") }

func (c *XrayConfig) SetHTTPProxyEndpoint(ep string) bool {
	return c.setInboundEndpoint("http", ep)
}

func (c *XrayConfig) SetSocksProxyEndpoint(ep string) bool {
	return c.setInboundEndpoint("socks", ep)
}
