package main

import (
	"proxytray/internal/db"
	"proxytray/internal/logger"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <ids...>",
	Short: "Delete stored configurations",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, database := openStore()
		defer db.Close(database)

		n, err := db.Remove(database, parseIDs(args))
		if err != nil {
			logger.Log.Fatalf("Error removing servers: %v", err)
		}
		logger.Log.Infof("🗑️  Removed %d server(s).", n)
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
