// Package factory translates proxy endpoints between share links, engine JSON
// documents and the typed configuration model the rest of the application edits.
package factory

import (
	"proxytray/internal/document"
)

// Configuration is one proxy endpoint as consumed by a core engine.
//
// All Item* views and endpoint getters are total: structural absence yields "".
// Configurations are not safe for concurrent mutation.
type Configuration interface {
	Family() Family
	Document() document.Document
	Extras() *Extras

	// FromURI replaces the document with the one decoded from uri and returns the
	// remark. On error the configuration is unchanged.
	FromURI(uri string) (string, error)
	// ToURI emits the canonical share link for the document, with remark as its fragment.
	ToURI(remark string) (string, error)
	ToJSONString() string

	HTTPProxyEndpoint() string
	SetHTTPProxyEndpoint(ep string) bool
	SocksProxyEndpoint() string
	SetSocksProxyEndpoint(ep string) bool

	ItemRemark() string
	ItemProtocol() string
	ItemAddress() string
	ItemPort() string
	ItemTransport() string
	ItemTLS() string
}

// Base is the configuration of an input no family recognized. Every view is empty.
type Base struct {
	doc    document.Document
	extras Extras
}

func NewBase() *Base {
	return &Base{}
}

func (b *Base) Family() Family                    { return FamilyNone }
func (b *Base) Document() document.Document       { return b.doc }
func (b *Base) Extras() *Extras                   { return &b.extras }
func (b *Base) FromURI(string) (string, error)    { return "", ErrUnrecognizedScheme }
func (b *Base) ToURI(string) (string, error)      { return "", ErrUnsupportedProtocol }
func (b *Base) ToJSONString() string              { return b.doc.String() }
func (b *Base) HTTPProxyEndpoint() string         { return "" }
func (b *Base) SetHTTPProxyEndpoint(string) bool  { return false }
func (b *Base) SocksProxyEndpoint() string        { return "" }
func (b *Base) SetSocksProxyEndpoint(string) bool { return false }
func (b *Base) ItemRemark() string                { return b.extras.Remark }
func (b *Base) ItemProtocol() string              { return "" }
func (b *Base) ItemAddress() string               { return "" }
func (b *Base) ItemPort() string                  { return "" }
func (b *Base) ItemTransport() string             { return "" }
func (b *Base) ItemTLS() string                   { return "" }
