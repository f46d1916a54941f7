package factory

import "strings"

// Family selects which engine consumes a configuration and therefore which
// document paths are meaningful.
type Family int

const (
	FamilyNone Family = iota
	FamilyXray
	FamilyHysteria1
	FamilyHysteria2
)

func (f Family) String() string {
	switch f {
	case FamilyXray:
		return "Xray-core"
	case FamilyHysteria1:
		return "Hysteria1"
	case FamilyHysteria2:
		return "Hysteria2"
	}
	return ""
}

func ParseFamily(s string) Family {
	switch strings.ToLower(s) {
	case "xray-core", "xray":
		return FamilyXray
	case "hysteria1", "hysteria":
		return FamilyHysteria1
	case "hysteria2":
		return FamilyHysteria2
	}
	return FamilyNone
}
