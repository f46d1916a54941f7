package factory

import (
	"errors"
	"fmt"

	"proxytray/internal/codec"
	"proxytray/internal/document"
	"proxytray/internal/logger"

	"github.com/tidwall/gjson"
)

var hysteria1Keys = []string{
	"protocol", "up_mbps", "down_mbps", "auth_str", "alpn", "server_name",
	"insecure", "recv_window", "fast_open", "lazy_start",
}

var hysteria2Keys = []string{
	"tls", "transport", "quic", "bandwidth", "tcpForwarding", "udpForwarding",
	"tcpTProxy", "udpTProxy", "fastOpen", "lazy",
}

// FromString classifies s as a share link or a JSON document and decodes it.
// Links whose structure cannot be decoded, and text that is neither a known link
// nor a JSON object, yield an empty *Base. Links with an unknown scheme fail with
// ErrUnrecognizedScheme and hysteria:// links with ErrUnsupportedProtocol.
func FromString(s string) (Configuration, error) {
	cfg, err := Decode(s)
	if errors.Is(err, ErrMalformedURI) {
		logger.Log.Debugf("could not decode %s link: %v", schemeOf(s), err)
		return NewBase(), nil
	}
	return cfg, err
}

// Decode is FromString for callers that need to know why a link was rejected:
// structural failures surface as ErrMalformedURI, wrapping
// codec.ErrInvalidAuthority when the host or port could not be parsed.
func Decode(s string) (Configuration, error) {
	var cfg Configuration
	switch schemeOf(s) {
	case "vmess", "vless", "ss", "trojan":
		cfg = NewXray()
	case "hysteria2", "hy2":
		cfg = NewHysteria2()
	case "hysteria":
		cfg = NewHysteria1()
	case "":
		return fromJSON(s), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnrecognizedScheme, schemeOf(s))
	}

	if _, err := cfg.FromURI(s); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromJSON(s string) Configuration {
	doc, err := codec.DecodeJSON(s)
	if err != nil {
		logger.Log.Debugf("input is neither a share link nor json: %v", err)
		return NewBase()
	}
	return FromDocument(doc)
}

// FromDocument picks the family from the keys present in doc. The document is
// used as-is; nothing is validated.
func FromDocument(doc document.Document) Configuration {
	if doc.Has("inbounds") || doc.Has("outbounds") {
		return NewXrayFromDocument(doc)
	}
	if !doc.Has("server") {
		return NewBase()
	}
	obfs := doc.Get("obfs")
	if hasAny(doc, hysteria1Keys) || obfs.Type == gjson.String {
		return NewHysteria1FromDocument(doc)
	}
	if hasAny(doc, hysteria2Keys) || obfs.IsObject() {
		return NewHysteria2FromDocument(doc)
	}
	return NewBase()
}

func hasAny(doc document.Document, keys []string) bool {
	for _, k := range keys {
		if doc.Has(document.Key(k)) {
			return true
		}
	}
	return false
}
