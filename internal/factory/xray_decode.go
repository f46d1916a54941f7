package factory

import (
	"fmt"
	"strconv"
	"strings"

	"proxytray/internal/codec"
	"proxytray/internal/document"
	"proxytray/internal/logger"

	"github.com/tidwall/gjson"
)

// FromURI decodes a vmess, vless, ss or trojan share link. On success the whole
// document is replaced by the skeleton around the decoded outbound and the remark is
// recorded in the extras; on failure the configuration is left as it was.
func (c *XrayConfig) FromURI(uri string) (string, error) {
	link, ok := splitShareLink(uri)
	if !ok {
		return "", fmt.Errorf("%w: missing scheme", ErrUnrecognizedScheme)
	}

	var (
		proxy  document.Document
		remark string
		err    error
	)
	switch link.scheme {
	case "vmess":
		proxy, remark, err = decodeVMess(link)
	case "vless":
		proxy, remark, err = decodeStandard(link, "vless")
	case "trojan":
		proxy, remark, err = decodeStandard(link, "trojan")
	case "ss":
		proxy, remark, err = decodeShadowsocks(link)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnrecognizedScheme, link.scheme)
	}
	if err != nil {
		return "", err
	}

	c.doc = xraySkeleton(proxy)
	c.extras.Remark = remark
	return remark, nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedURI, fmt.Sprintf(format, args...))
}

// decodeVMess tries the base64 JSON dialect first and falls back to the
// VLESS-style dialect some producers use for vmess links.
func decodeVMess(link shareLink) (document.Document, string, error) {
	text, err := codec.DecodeBase64(link.body)
	if err != nil {
		logger.Log.Debugf("vmess link is not base64, trying vless-style dialect: %v", err)
		return decodeStandard(link, "vmess")
	}
	payload, err := codec.DecodeJSON(text)
	if err != nil {
		logger.Log.Debugf("vmess payload is not json, trying vless-style dialect: %v", err)
		return decodeStandard(link, "vmess")
	}

	address := payload.GetString("add")
	if address == "" {
		return document.Empty(), "", malformed("vmess: empty address")
	}
	port, ok := parsePort(payload.GetString("port"))
	if !ok {
		return document.Empty(), "", malformed("vmess: invalid port %q", payload.GetString("port"))
	}

	user := document.Of(document.F("id", payload.GetString("id")))
	if payload.Has("aid") {
		_ = user.Set("alterId", lenientInt(payload.Get("aid")))
	}
	_ = user.Set("security", valueOr(payload.GetString("scy"), "auto"))

	network := valueOr(payload.GetString("net"), "tcp")
	security := valueOr(payload.GetString("tls"), "none")
	kw := vmessToKwargs(network, payload)

	settings := document.Of(document.F("vnext", []document.Document{
		document.Of(
			document.F("address", address),
			document.F("port", port),
			document.F("users", []document.Document{user}),
		),
	}))
	proxy := proxyOutbound("vmess", settings, network, security,
		networkObjectFromKwargs(network, kw), tlsObjectFromKwargs(security, kw))
	return proxy, payload.GetString("ps"), nil
}

// decodeStandard handles scheme://user@host:port?query#fragment links (VLESS,
// Trojan and VLESS-style VMess).
func decodeStandard(link shareLink, protocol string) (document.Document, string, error) {
	if !link.hasUser || link.userinfo == "" {
		return document.Empty(), "", malformed("%s: missing user", protocol)
	}
	user := codec.Unquote(link.userinfo)
	host, portText, err := codec.SplitAuthority(link.hostport)
	if err != nil {
		return document.Empty(), "", fmt.Errorf("%w: %w", ErrMalformedURI, err)
	}
	port, ok := parsePort(portText)
	if !ok {
		return document.Empty(), "", malformed("%s: invalid port %q", protocol, portText)
	}

	kw := codec.ParseQuery(link.query)
	network := valueOr(kw["type"], "tcp")
	defaultSecurity := "none"
	if protocol == "trojan" {
		defaultSecurity = "tls"
	}
	security := valueOr(kw["security"], defaultSecurity)

	var settings document.Document
	switch protocol {
	case "vless":
		u := document.Of(
			document.F("id", user),
			document.F("encryption", valueOr(kw["encryption"], "none")),
		)
		if flow := kw["flow"]; flow != "" {
			_ = u.Set("flow", flow)
		}
		settings = vnextSettings(host, port, u)
	case "vmess":
		u := document.Of(
			document.F("id", user),
			document.F("alterId", 0),
			document.F("security", valueOr(kw["encryption"], "auto")),
		)
		settings = vnextSettings(host, port, u)
	case "trojan":
		settings = document.Of(document.F("servers", []document.Document{
			document.Of(
				document.F("address", host),
				document.F("port", port),
				document.F("password", user),
			),
		}))
	}

	proxy := proxyOutbound(protocol, settings, network, security,
		networkObjectFromKwargs(network, kw), tlsObjectFromKwargs(security, kw))
	return proxy, codec.Unquote(link.fragment), nil
}

func vnextSettings(host string, port int, user document.Document) document.Document {
	return document.Of(document.F("vnext", []document.Document{
		document.Of(
			document.F("address", host),
			document.F("port", port),
			document.F("users", []document.Document{user}),
		),
	}))
}

// decodeShadowsocks tries, in order: the whole body in base64, SIP002 (base64
// userinfo), and plain text userinfo.
func decodeShadowsocks(link shareLink) (document.Document, string, error) {
	var (
		userinfo, hostport string
		found              bool
	)
	if text, err := codec.DecodeBase64(link.body); err == nil {
		if i := strings.LastIndex(text, "@"); i >= 0 {
			userinfo, hostport, found = text[:i], text[i+1:], true
		}
	} else {
		logger.Log.Debugf("ss body is not base64: %v", err)
	}
	if !found && link.hasUser {
		if text, err := codec.DecodeBase64(codec.Unquote(link.userinfo)); err == nil && strings.Contains(text, ":") {
			userinfo, hostport, found = text, link.hostport, true
		} else {
			logger.Log.Debugf("ss userinfo is not base64, trying plain dialect")
		}
	}
	if !found && link.hasUser {
		userinfo, hostport, found = codec.Unquote(link.userinfo), link.hostport, true
	}
	if !found {
		return document.Empty(), "", malformed("ss: no userinfo")
	}

	method, password, ok := strings.Cut(userinfo, ":")
	if !ok || method == "" {
		return document.Empty(), "", malformed("ss: userinfo is not method:password")
	}
	host, portText, err := codec.SplitAuthority(strings.TrimSuffix(hostport, "/"))
	if err != nil {
		return document.Empty(), "", fmt.Errorf("%w: %w", ErrMalformedURI, err)
	}
	port, ok := parsePort(portText)
	if !ok {
		return document.Empty(), "", malformed("ss: invalid port %q", portText)
	}

	settings := document.Of(document.F("servers", []document.Document{
		document.Of(
			document.F("address", host),
			document.F("port", port),
			document.F("method", method),
			document.F("password", password),
		),
	}))
	proxy := proxyOutbound("shadowsocks", settings, "tcp", "none", document.Empty(), document.Empty())
	return proxy, codec.Unquote(link.fragment), nil
}

// lenientInt accepts JSON numbers and numeric strings; anything else is 0.
func lenientInt(r gjson.Result) int {
	switch r.Type {
	case gjson.Number:
		return int(r.Int())
	case gjson.String:
		n, err := strconv.Atoi(strings.TrimSpace(r.String()))
		if err == nil {
			return n
		}
	}
	return 0
}
