package factory

import (
	"fmt"

	"proxytray/internal/codec"
	"proxytray/internal/document"
)

// Pack wraps the engine JSON of cfg in base64 for opaque key/value storage.
func Pack(cfg Configuration) string {
	return codec.EncodeBase64(cfg.ToJSONString())
}

// Unpack restores a configuration stored with Pack. A known family skips key
// based detection, so documents edited by hand still load as what they were saved as.
func Unpack(family Family, packed string) (Configuration, error) {
	text, err := codec.DecodeBase64(packed)
	if err != nil {
		return nil, err
	}
	doc, err := codec.DecodeJSON(text)
	if err != nil {
		return nil, err
	}
	return withFamily(family, doc)
}

func withFamily(family Family, doc document.Document) (Configuration, error) {
	switch family {
	case FamilyXray:
		return NewXrayFromDocument(doc), nil
	case FamilyHysteria1:
		return NewHysteria1FromDocument(doc), nil
	case FamilyHysteria2:
		return NewHysteria2FromDocument(doc), nil
	case FamilyNone:
		return FromDocument(doc), nil
	}
	return nil, fmt.Errorf("unknown configuration family %d", family)
}
