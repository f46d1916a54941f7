package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/servers.db
inbounds:
  socks: 0.0.0.0:1080
log:
  error: /var/log/xray/error.log
subscription:
  timeout: 5s
  proxy: socks5://127.0.0.1:9050
export:
  base64: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/servers.db", cfg.Database.Path)
	assert.Equal(t, "0.0.0.0:1080", cfg.Inbounds.Socks)
	assert.Equal(t, "127.0.0.1:10809", cfg.Inbounds.HTTP)
	assert.Equal(t, "", cfg.Log.Access)
	assert.Equal(t, "/var/log/xray/error.log", cfg.Log.Error)
	assert.Equal(t, 5*time.Second, cfg.Subscription.Timeout)
	assert.Equal(t, "socks5://127.0.0.1:9050", cfg.Subscription.Proxy)
	assert.Equal(t, "proxytray", cfg.Subscription.UserAgent)
	assert.True(t, cfg.Export.Base64)
}

func TestLoad_EmptyValuesFallBack(t *testing.T) {
	cfg, err := Load(writeConfig(t, "database:\n  path: \"\"\nsubscription:\n  timeout: 0s\n"))
	require.NoError(t, err)
	assert.Equal(t, "proxytray.db", cfg.Database.Path)
	assert.Equal(t, 30*time.Second, cfg.Subscription.Timeout)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "database: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse config yaml")
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "proxytray.db", cfg.Database.Path)
	assert.Equal(t, "127.0.0.1:10808", cfg.Inbounds.Socks)
}

func TestFilterPublishers(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
publishers:
  - name: local
    type: file
    families: [xray]
    params:
      path: sub.txt
      base64: true
  - name: gh
    type: github
`))
	require.NoError(t, err)
	require.Len(t, cfg.Publishers, 2)
	assert.Equal(t, []string{"xray"}, cfg.Publishers[0].Families)
	assert.Equal(t, true, cfg.Publishers[0].Params["base64"])

	cfg.FilterPublishers(nil)
	assert.Len(t, cfg.Publishers, 2)

	cfg.FilterPublishers([]string{"gh"})
	require.Len(t, cfg.Publishers, 1)
	assert.Equal(t, "github", cfg.Publishers[0].Type)
}
