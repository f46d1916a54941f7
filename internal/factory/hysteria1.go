package factory

import (
	"proxytray/internal/document"
)

// Hysteria1Config is a Hysteria (v1) client document. It can be loaded from JSON
// but has no share-link dialect.
type Hysteria1Config struct {
	hysteriaBase
}

func NewHysteria1() *Hysteria1Config {
	return &Hysteria1Config{}
}

func NewHysteria1FromDocument(doc document.Document) *Hysteria1Config {
	h := &Hysteria1Config{}
	h.doc = doc
	return h
}

func (h *Hysteria1Config) Family() Family { return FamilyHysteria1 }

func (h *Hysteria1Config) FromURI(string) (string, error) { return "", ErrUnsupportedProtocol }
func (h *Hysteria1Config) ToURI(string) (string, error)   { return "", ErrUnsupportedProtocol }

func (h *Hysteria1Config) ItemProtocol() string {
	if h.doc.IsEmpty() {
		return ""
	}
	return "hysteria1"
}

func (h *Hysteria1Config) ItemTransport() string {
	if h.doc.IsEmpty() {
		return ""
	}
	return valueOr(h.doc.GetString("protocol"), "udp")
}
