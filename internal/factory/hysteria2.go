package factory

import (
	"fmt"

	"proxytray/internal/codec"
	"proxytray/internal/document"
)

// Hysteria2Config is a Hysteria 2 client document.
type Hysteria2Config struct {
	hysteriaBase
}

func NewHysteria2() *Hysteria2Config {
	return &Hysteria2Config{}
}

func NewHysteria2FromDocument(doc document.Document) *Hysteria2Config {
	h := &Hysteria2Config{}
	h.doc = doc
	return h
}

func (h *Hysteria2Config) Family() Family { return FamilyHysteria2 }

// FromURI decodes hysteria2:// and hy2:// links.
func (h *Hysteria2Config) FromURI(uri string) (string, error) {
	link, ok := splitShareLink(uri)
	if !ok {
		return "", fmt.Errorf("%w: missing scheme", ErrUnrecognizedScheme)
	}
	if link.scheme != "hysteria2" && link.scheme != "hy2" {
		return "", fmt.Errorf("%w: %s", ErrUnrecognizedScheme, link.scheme)
	}
	if link.hostport == "" {
		return "", malformed("hysteria2: empty server")
	}
	if _, _, err := codec.SplitAuthority(link.hostport); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedURI, err)
	}

	kw := codec.ParseQuery(link.query)
	tls := document.Empty()
	if sni := kw["sni"]; sni != "" {
		_ = tls.Set("sni", sni)
	}
	_ = tls.Set("insecure", kw["insecure"] == "1")
	if pin := kw["pinSHA256"]; pin != "" {
		_ = tls.Set("pinSHA256", pin)
	}

	doc := document.Of(
		document.F("server", link.hostport),
		document.F("auth", codec.Unquote(link.userinfo)),
		document.F("tls", tls),
	)
	obfsType, obfsPassword := kw["obfs"], kw["obfs-password"]
	if obfsType != "" && obfsPassword != "" {
		_ = doc.Set("obfs", document.Of(
			document.F("type", obfsType),
			document.F(obfsType, document.Of(document.F("password", obfsPassword))),
		))
	}
	_ = doc.Set("socks5", document.Of(document.F("listen", codec.JoinAuthority(defaultListen, "10808"))))
	_ = doc.Set("http", document.Of(document.F("listen", codec.JoinAuthority(defaultListen, "10809"))))

	remark := codec.Unquote(link.fragment)
	h.doc = doc
	h.extras.Remark = remark
	return remark, nil
}

func (h *Hysteria2Config) ToURI(remark string) (string, error) {
	server := h.doc.GetString("server")
	if server == "" {
		return "", fmt.Errorf("%w: hysteria2 document has no server", ErrUnsupportedProtocol)
	}

	var q codec.Query
	q.AddNonEmpty("sni", h.doc.GetString("tls.sni"))
	if h.doc.Get("tls.insecure").Bool() {
		q.Add("insecure", "1")
	} else {
		q.Add("insecure", "0")
	}
	q.AddNonEmpty("pinSHA256", h.doc.GetString("tls.pinSHA256"))
	if obfsType := h.doc.GetString("obfs.type"); obfsType != "" {
		q.Add("obfs", obfsType)
		q.AddNonEmpty("obfs-password", h.doc.GetString(document.Key("obfs", obfsType, "password")))
	}

	uri := "hysteria2://"
	if auth := h.doc.GetString("auth"); auth != "" {
		uri += codec.Quote(auth) + "@"
	}
	return uri + server + "?" + q.Encode() + fragment(remark), nil
}

func (h *Hysteria2Config) ItemProtocol() string {
	if h.doc.IsEmpty() {
		return ""
	}
	return "hysteria2"
}

func (h *Hysteria2Config) ItemTransport() string {
	if h.doc.IsEmpty() {
		return ""
	}
	return valueOr(h.doc.GetString("transport.type"), "udp")
}
