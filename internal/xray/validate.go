package xray

import (
	"encoding/json"
	"fmt"
	"os"

	"proxytray/internal/factory"
	"proxytray/internal/logger"

	"github.com/xtls/xray-core/core"
	"github.com/xtls/xray-core/infra/conf"

	// Import distro to register all protocols/transports
	_ "github.com/xtls/xray-core/main/distro/all"
)

// Report summarizes a configuration the engine accepted.
type Report struct {
	Inbounds  int
	Outbounds int
}

// Validate loads the engine JSON of cfg with Xray's own config loader and builds it.
// With deep set, an engine instance is also created (but never started) and closed.
func Validate(cfg *factory.XrayConfig, deep bool) (report Report, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Errorf("CRITICAL: Xray Core Panic recovered: %v", r)
			err = fmt.Errorf("xray core panic: %v", r)
		}
	}()

	var xc conf.Config
	if err := json.Unmarshal([]byte(cfg.ToJSONString()), &xc); err != nil {
		return Report{}, fmt.Errorf("engine rejected json: %w", err)
	}

	var pb *core.Config
	func() {
		restore := muteLogs()
		defer restore()
		pb, err = xc.Build()
	}()
	if err != nil {
		return Report{}, fmt.Errorf("engine rejected configuration: %w", err)
	}

	report = Report{Inbounds: len(pb.Inbound), Outbounds: len(pb.Outbound)}
	if !deep {
		return report, nil
	}

	instance, err := core.New(pb)
	if err != nil {
		return report, fmt.Errorf("engine failed to initialize: %w", err)
	}
	if err := instance.Close(); err != nil {
		logger.Log.Debugf("closing engine instance: %v", err)
	}
	return report, nil
}

// muteLogs silences the engine's direct writes to stdout/stderr while it loads.
func muteLogs() func() {
	origStdout := os.Stdout
	origStderr := os.Stderr

	devNull, _ := os.Open(os.DevNull)
	if devNull != nil {
		os.Stdout = devNull
		os.Stderr = devNull
	}

	return func() {
		os.Stdout = origStdout
		os.Stderr = origStderr
		if devNull != nil {
			devNull.Close()
		}
	}
}
