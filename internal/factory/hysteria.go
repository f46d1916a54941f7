package factory

import (
	"strings"

	"proxytray/internal/codec"
	"proxytray/internal/document"
)

// hysteriaBase holds what Hysteria1 and Hysteria2 client documents share: a
// top-level "server" and scalar local listeners.
type hysteriaBase struct {
	Base
}

func (h *hysteriaBase) SocksProxyEndpoint() string { return h.doc.GetString("socks5.listen") }
func (h *hysteriaBase) HTTPProxyEndpoint() string  { return h.doc.GetString("http.listen") }

func (h *hysteriaBase) SetSocksProxyEndpoint(ep string) bool {
	return h.setListen("socks5.listen", ep)
}

func (h *hysteriaBase) SetHTTPProxyEndpoint(ep string) bool {
	return h.setListen("http.listen", ep)
}

func (h *hysteriaBase) setListen(path, ep string) bool {
	if _, _, ok := parseEndpoint(ep); !ok {
		return false
	}
	return h.doc.Set(path, ep) == nil
}

// serverHostPort splits "server". Port ranges such as "h:1000-2000" are not valid
// URL ports, so a last-colon split is used when authority parsing fails.
func (h *hysteriaBase) serverHostPort() (string, string) {
	server := h.doc.GetString("server")
	if server == "" {
		return "", ""
	}
	if host, port, err := codec.SplitAuthority(server); err == nil {
		return host, port
	}
	if i := strings.LastIndex(server, ":"); i >= 0 {
		return strings.Trim(server[:i], "[]"), server[i+1:]
	}
	return server, ""
}

func (h *hysteriaBase) ItemAddress() string {
	host, _ := h.serverHostPort()
	return host
}

func (h *hysteriaBase) ItemPort() string {
	_, port := h.serverHostPort()
	return port
}

func (h *hysteriaBase) ItemTLS() string {
	if h.doc.GetString("server") == "" {
		return ""
	}
	return "tls"
}

// withoutListeners is the document minus its local listeners, which differ per
// machine and must not affect identity.
func (h *hysteriaBase) withoutListeners() document.Document {
	doc := h.doc.Clone()
	_ = doc.Delete("socks5")
	_ = doc.Delete("http")
	return doc
}
