package main

import (
	"context"
	"os"
	"strings"

	"proxytray/internal/config"
	"proxytray/internal/db"
	"proxytray/internal/factory"
	"proxytray/internal/links"
	"proxytray/internal/logger"
	"proxytray/internal/metrics"
	"proxytray/internal/subscription"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var importFiles []string
var importURLs []string

var importCmd = &cobra.Command{
	Use:   "import [links...]",
	Short: "Decode share links and store them",
	Long: `Collects share links from the arguments, from text files (--file) and from
subscription URLs (--url), decodes them into engine configurations, applies the
local listeners and log paths from config.yaml and stores them. Links that are
already stored are skipped.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, database := openStore()
		defer db.Close(database)

		sources := map[string][]string{}
		if len(args) > 0 {
			sources["args"] = links.Extract(strings.Join(args, "\n"))
		}
		for _, path := range importFiles {
			data, err := os.ReadFile(path)
			if err != nil {
				logger.Log.Errorf("Error reading %s: %v", path, err)
				continue
			}
			sources[path] = links.DecodeSubscription(string(data))
		}

		fetcher := &subscription.Fetcher{
			Timeout:   cfg.Subscription.Timeout,
			ProxyURL:  cfg.Subscription.Proxy,
			UserAgent: cfg.Subscription.UserAgent,
		}
		for _, u := range importURLs {
			logger.Log.Infof("🏃 Fetching subscription: %s", u)
			found, err := fetcher.Fetch(context.Background(), u)
			if err != nil {
				logger.Log.Errorf("Error fetching subscription: %v", err)
				continue
			}
			sources[u] = found
		}

		if len(sources) == 0 {
			logger.Log.Warn("Nothing to import. Pass links, --file or --url.")
			return
		}

		stats := metrics.New()
		defer stats.PrintReport(os.Stderr)

		for source, rawLinks := range sources {
			cfgs := decodeLinks(cfg, rawLinks, stats)
			inserted, err := db.SaveConfigurations(database, cfgs, source)
			if err != nil {
				logger.Log.Errorf("Error saving %s: %v", source, err)
				continue
			}
			logger.Log.Infof("✅ %s: %d links, %d decoded, %d new.", source, len(rawLinks), len(cfgs), inserted)
		}
	},
}

// decodeLinks decodes rawLinks and applies the configured listeners and log paths.
// Links that cannot be decoded are logged, counted in stats and dropped.
func decodeLinks(cfg *config.Config, rawLinks []string, stats *metrics.Collector) []factory.Configuration {
	bar := progressbar.NewOptions(len(rawLinks),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan]Decoding...[reset]"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	defer bar.Finish()

	var out []factory.Configuration
	for _, raw := range rawLinks {
		bar.Add(1)

		c, err := factory.Decode(raw)
		if err != nil {
			logger.Log.Debugf("Skipping link: %v", err)
			stats.RecordFailure(err)
			continue
		}
		if c.Family() == factory.FamilyNone {
			logger.Log.Debugf("Skipping undecodable link: %.40s", raw)
			stats.RecordFailure(nil)
			continue
		}
		stats.RecordSuccess(c.ItemProtocol())
		applyLocalSettings(cfg, c)
		out = append(out, c)
	}
	return out
}

func applyLocalSettings(cfg *config.Config, c factory.Configuration) {
	if cfg.Inbounds.Socks != "" && !c.SetSocksProxyEndpoint(cfg.Inbounds.Socks) {
		logger.Log.Warnf("Invalid socks listener in config: %q", cfg.Inbounds.Socks)
	}
	if cfg.Inbounds.HTTP != "" && !c.SetHTTPProxyEndpoint(cfg.Inbounds.HTTP) {
		logger.Log.Warnf("Invalid http listener in config: %q", cfg.Inbounds.HTTP)
	}

	x, ok := c.(*factory.XrayConfig)
	if !ok {
		return
	}
	if cfg.Log.Access != "" {
		x.SetLogAccessPath(cfg.Log.Access)
	}
	if cfg.Log.Error != "" {
		x.SetLogErrorPath(cfg.Log.Error)
	}
	if id := x.ProxyUserObject().GetString("id"); x.ProxyUserObject().Has("id") && !factory.ValidUserID(id) {
		logger.Log.Warnf("⚠️  %s: user id %q is neither a UUID nor a 1-30 byte string", c.ItemRemark(), id)
	}
}

func init() {
	importCmd.Flags().StringArrayVarP(&importFiles, "file", "f", nil, "Read links from a text or base64 subscription file")
	importCmd.Flags().StringArrayVarP(&importURLs, "url", "u", nil, "Fetch links from a subscription URL")
	rootCmd.AddCommand(importCmd)
}
