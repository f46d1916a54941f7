package factory

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// Fingerprint identifies the remote endpoint of cfg. Local listeners, log paths
// and extras do not take part, so re-importing a link with a new remark is a duplicate.
func Fingerprint(cfg Configuration) string {
	parts := []string{cfg.Family().String()}

	switch c := cfg.(type) {
	case *XrayConfig:
		parts = append(parts,
			c.ProxyProtocol(),
			strings.ToLower(c.ItemAddress()),
			c.ItemPort(),
			c.ProxyUserObject().String(),
			c.ProxyServerObject().GetString("password"),
			c.ProxyServerObject().GetString("method"),
			valueOr(c.ProxyStreamSettingsNetwork(), "tcp"),
			valueOr(c.ProxyStreamSettingsTLS(), "none"),
			c.ProxyStreamSettingsNetworkObject().String(),
			c.ProxyStreamSettingsTLSObject().String(),
		)
	case *Hysteria1Config:
		parts = append(parts, c.withoutListeners().String())
	case *Hysteria2Config:
		parts = append(parts, c.withoutListeners().String())
	default:
		parts = append(parts, cfg.ToJSONString())
	}

	signature := strings.Join(parts, "|")
	hash := sha256.Sum256([]byte(signature))
	return hex.EncodeToString(hash[:])
}

// ValidUserID reports whether id is usable as a VMess/VLESS user id: a UUID, or a
// 1-30 byte string the engine maps to a UUID.
func ValidUserID(id string) bool {
	if _, err := uuid.Parse(id); err == nil {
		return true
	}
	return len(id) > 0 && len(id) <= 30
}
