package main

import (
	"proxytray/internal/db"
	"proxytray/internal/factory"
	"proxytray/internal/logger"
	"proxytray/internal/xray"

	"github.com/spf13/cobra"
)

var checkDeep bool

var checkCmd = &cobra.Command{
	Use:   "check [ids...]",
	Short: "Validate stored Xray configurations with the Xray engine loader",
	Run: func(cmd *cobra.Command, args []string) {
		_, database := openStore()
		defer db.Close(database)

		servers, err := db.Find(database, parseIDs(args))
		if err != nil {
			logger.Log.Fatalf("Error reading servers: %v", err)
		}

		failed := 0
		for _, s := range servers {
			c, err := db.Restore(s)
			if err != nil {
				logger.Log.Warnf("Skipping: %v", err)
				continue
			}
			x, ok := c.(*factory.XrayConfig)
			if !ok {
				logger.Log.Debugf("Skipping %d: %s is not checked", s.ID, c.Family())
				continue
			}
			report, err := xray.Validate(x, checkDeep)
			if err != nil {
				failed++
				logger.Log.Errorf("❌ %d %s: %v", s.ID, c.ItemRemark(), err)
				continue
			}
			logger.Log.Infof("✅ %d %s: %d inbounds, %d outbounds", s.ID, c.ItemRemark(), report.Inbounds, report.Outbounds)
		}
		if failed > 0 {
			logger.Log.Fatalf("%d configuration(s) rejected by the engine", failed)
		}
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkDeep, "deep", false, "Also instantiate the engine (without starting it)")
	rootCmd.AddCommand(checkCmd)
}
