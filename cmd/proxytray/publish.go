package main

import (
	"strconv"

	"proxytray/internal/config"
	"proxytray/internal/db"
	"proxytray/internal/factory"
	"proxytray/internal/logger"
	"proxytray/internal/publishers"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var publishParams map[string]string

var publishCmd = &cobra.Command{
	Use:   "publish [publisher_names...]",
	Short: "Publish stored configurations as subscriptions",
	Long: `Run all publishers from config.yaml or only the named ones. Each publisher
receives the stored configurations of its families (all of them when none are
listed). Use --param to override publisher params.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, database := openStore()
		defer db.Close(database)

		cfg.FilterPublishers(args)
		if len(cfg.Publishers) == 0 {
			logger.Log.Warnf("No publishers matched. Available types: %v", publishers.Names())
			return
		}

		for _, pubCfg := range cfg.Publishers {
			logger.Log.Infof("📨 Running Publisher: %s (%s)...", pubCfg.Name, pubCfg.Type)

			plugin, err := publishers.Get(pubCfg.Type)
			if err != nil {
				logger.Log.Warnf("Plugin not found: %v", err)
				continue
			}

			cfgs, err := loadFamilies(database, pubCfg.Families)
			if err != nil {
				logger.Log.Errorf("Error reading servers: %v", err)
				continue
			}

			if err := plugin.Publish(cfgs, publisherParams(cfg, pubCfg)); err != nil {
				logger.Log.Errorf("Publish failed: %v", err)
			} else {
				logger.Log.Infof("✅ Published %d configurations.", len(cfgs))
			}
		}
	},
}

// publisherParams merges the configured params, the subscription transport
// settings and the --param overrides. Numeric and boolean overrides are typed.
func publisherParams(cfg *config.Config, pubCfg config.PublisherConfig) map[string]interface{} {
	params := make(map[string]interface{}, len(pubCfg.Params)+len(publishParams)+2)
	for k, v := range pubCfg.Params {
		params[k] = v
	}
	if cfg.Subscription.Proxy != "" {
		params["_proxy_url"] = cfg.Subscription.Proxy
	}
	params["_timeout"] = cfg.Subscription.Timeout
	for k, v := range publishParams {
		switch v {
		case "true", "false":
			params[k] = v == "true"
			continue
		}
		if intVal, err := strconv.Atoi(v); err == nil {
			params[k] = intVal
		} else {
			params[k] = v
		}
	}
	return params
}

func loadFamilies(database *gorm.DB, families []string) ([]factory.Configuration, error) {
	servers, err := db.FindByFamilies(database, families)
	if err != nil {
		return nil, err
	}
	cfgs := make([]factory.Configuration, 0, len(servers))
	for _, s := range servers {
		c, err := db.Restore(s)
		if err != nil {
			logger.Log.Warnf("Skipping: %v", err)
			continue
		}
		cfgs = append(cfgs, c)
	}
	return cfgs, nil
}

func init() {
	publishCmd.Flags().StringToStringVarP(&publishParams, "param", "p", nil, "Override publisher params (e.g. -p path=sub.txt)")
	rootCmd.AddCommand(publishCmd)
}
