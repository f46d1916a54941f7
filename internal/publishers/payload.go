package publishers

import (
	"errors"
	"fmt"
	"strings"

	"proxytray/internal/codec"
	"proxytray/internal/factory"
	"proxytray/internal/logger"
)

// GenerateSubscriptionPayload encodes cfgs as a newline separated share-link list.
//
// Recognised params:
//
//	base64  bool    encode the whole list as a subscription body
//	prefix  string  prepended to every remark
//
// Configurations with the same fingerprint are emitted once. Families without a
// share-link form are skipped.
func GenerateSubscriptionPayload(cfgs []factory.Configuration, params map[string]interface{}) (string, error) {
	prefix, _ := params["prefix"].(string)

	seen := make(map[string]bool)
	var lines []string
	for _, c := range cfgs {
		hash := factory.Fingerprint(c)
		if seen[hash] {
			continue
		}
		seen[hash] = true

		uri, err := c.ToURI(prefix + remarkOf(c))
		if errors.Is(err, factory.ErrUnsupportedProtocol) {
			logger.Log.Debugf("Publisher dropped %s config: no share-link form", c.Family())
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to encode %s: %w", remarkOf(c), err)
		}
		lines = append(lines, uri)
	}

	finalText := strings.Join(lines, "\n")

	useBase64, _ := params["base64"].(bool)
	if useBase64 {
		return codec.EncodeBase64(finalText), nil
	}
	return finalText, nil
}

// remarkOf falls back to the endpoint when a configuration carries no remark.
func remarkOf(c factory.Configuration) string {
	if r := c.ItemRemark(); r != "" {
		return r
	}
	if c.ItemAddress() == "" {
		return ""
	}
	return fmt.Sprintf("%s %s:%s", c.ItemProtocol(), c.ItemAddress(), c.ItemPort())
}
