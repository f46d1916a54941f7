package main

import (
	"errors"
	"fmt"
	"strings"

	"proxytray/internal/codec"
	"proxytray/internal/db"
	"proxytray/internal/factory"
	"proxytray/internal/logger"

	"github.com/spf13/cobra"
)

var exportBase64 bool

var exportCmd = &cobra.Command{
	Use:   "export [ids...]",
	Short: "Print stored configurations as share links",
	Long: `Encodes every stored configuration (or only the given ids) back into its
canonical share link, using the stored remark. With --base64 (or export.base64 in
config.yaml) the list is printed as a base64 subscription body.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, database := openStore()
		defer db.Close(database)

		servers, err := db.Find(database, parseIDs(args))
		if err != nil {
			logger.Log.Fatalf("Error reading servers: %v", err)
		}

		var lines []string
		for _, s := range servers {
			c, err := db.Restore(s)
			if err != nil {
				logger.Log.Warnf("Skipping: %v", err)
				continue
			}
			uri, err := c.ToURI(c.ItemRemark())
			if errors.Is(err, factory.ErrUnsupportedProtocol) {
				logger.Log.Warnf("Skipping %d (%s): no share-link form", s.ID, c.Family())
				continue
			}
			if err != nil {
				logger.Log.Warnf("Skipping %d: %v", s.ID, err)
				continue
			}
			lines = append(lines, uri)
		}

		finalText := strings.Join(lines, "\n")
		if exportBase64 || cfg.Export.Base64 {
			finalText = codec.EncodeBase64(finalText)
		}
		fmt.Println(finalText)
	},
}

func init() {
	exportCmd.Flags().BoolVar(&exportBase64, "base64", false, "Print a base64 subscription body")
	rootCmd.AddCommand(exportCmd)
}
