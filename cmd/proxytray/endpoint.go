package main

import (
	"fmt"

	"proxytray/internal/db"
	"proxytray/internal/logger"

	"github.com/spf13/cobra"
)

var endpointSocks string
var endpointHTTP string

var endpointCmd = &cobra.Command{
	Use:   "endpoint <id>",
	Short: "Show or change the local listeners of a stored configuration",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, database := openStore()
		defer db.Close(database)

		servers, err := db.Find(database, parseIDs(args))
		if err != nil || len(servers) == 0 {
			logger.Log.Fatalf("Server %s not found", args[0])
		}
		server := servers[0]
		c, err := db.Restore(server)
		if err != nil {
			logger.Log.Fatalf("Error restoring server: %v", err)
		}

		changed := false
		if endpointSocks != "" {
			if !c.SetSocksProxyEndpoint(endpointSocks) {
				logger.Log.Fatalf("Invalid socks endpoint %q", endpointSocks)
			}
			changed = true
		}
		if endpointHTTP != "" {
			if !c.SetHTTPProxyEndpoint(endpointHTTP) {
				logger.Log.Fatalf("Invalid http endpoint %q", endpointHTTP)
			}
			changed = true
		}
		if changed {
			if err := db.Update(database, &server, c); err != nil {
				logger.Log.Fatalf("Error saving server: %v", err)
			}
			logger.Log.Infof("✅ Server %d updated.", server.ID)
		}

		fmt.Printf("socks\t%s\nhttp\t%s\n", c.SocksProxyEndpoint(), c.HTTPProxyEndpoint())
	},
}

func init() {
	endpointCmd.Flags().StringVar(&endpointSocks, "socks", "", "Set the local SOCKS listener (host:port)")
	endpointCmd.Flags().StringVar(&endpointHTTP, "http", "", "Set the local HTTP listener (host:port)")
	rootCmd.AddCommand(endpointCmd)
}
