package file

import (
	"fmt"
	"os"
	"path/filepath"

	"proxytray/internal/factory"
	"proxytray/internal/logger"
	"proxytray/internal/publishers"
)

// Publisher writes the subscription payload to params["path"]. The file is
// replaced atomically so readers never see a partial list.
type Publisher struct{}

func (p *Publisher) Publish(cfgs []factory.Configuration, params map[string]interface{}) error {
	path, _ := params["path"].(string)
	if path == "" {
		return fmt.Errorf("file publisher requires path")
	}

	payload, err := publishers.GenerateSubscriptionPayload(cfgs, params)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".proxytray-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(payload + "\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write payload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	logger.Log.Debugf("File publisher wrote %d bytes to %s", len(payload)+1, path)
	return nil
}

func init() {
	publishers.Register("file", func() publishers.Publisher { return &Publisher{} })
}
