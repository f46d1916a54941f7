package main

import (
	"fmt"
	"os"
	"strconv"

	"proxytray/internal/config"
	"proxytray/internal/db"
	"proxytray/internal/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var cfgFile string
var verbose bool
var logFile string

var rootCmd = &cobra.Command{
	Use:   "proxytray",
	Short: "Import, convert and export proxy share links and engine configurations",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := logger.Init(verbose, logFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// openStore loads the config and opens the migrated database. Failures are fatal.
func openStore() (*config.Config, *gorm.DB) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		logger.Log.Fatalf("Error loading config: %v", err)
	}

	database, err := db.Connect(cfg.Database.Path)
	if err != nil {
		logger.Log.Fatalf("Error connecting to DB: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		logger.Log.Fatalf("Error migrating DB: %v", err)
	}
	return cfg, database
}

func parseIDs(args []string) []uint {
	ids := make([]uint, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseUint(a, 10, 64)
		if err != nil {
			logger.Log.Fatalf("Invalid id %q: %v", a, err)
		}
		ids = append(ids, uint(id))
	}
	return ids
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append logs to file instead of stderr")
}
