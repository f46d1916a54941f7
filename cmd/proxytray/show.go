package main

import (
	"fmt"

	"proxytray/internal/db"
	"proxytray/internal/logger"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
)

var showCompact bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the engine JSON of a stored configuration",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, database := openStore()
		defer db.Close(database)

		servers, err := db.Find(database, parseIDs(args))
		if err != nil || len(servers) == 0 {
			logger.Log.Fatalf("Server %s not found", args[0])
		}
		c, err := db.Restore(servers[0])
		if err != nil {
			logger.Log.Fatalf("Error restoring server: %v", err)
		}

		if showCompact {
			fmt.Println(c.ToJSONString())
			return
		}
		fmt.Print(string(pretty.Pretty([]byte(c.ToJSONString()))))
	},
}

func init() {
	showCmd.Flags().BoolVar(&showCompact, "compact", false, "Print compact JSON")
	rootCmd.AddCommand(showCmd)
}
