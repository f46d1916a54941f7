package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"proxytray/internal/db"
	"proxytray/internal/logger"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored configurations",
	Run: func(cmd *cobra.Command, args []string) {
		_, database := openStore()
		defer db.Close(database)

		servers, err := db.Find(database, nil)
		if err != nil {
			logger.Log.Fatalf("Error reading servers: %v", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tREMARK\tPROTOCOL\tADDRESS\tPORT\tTRANSPORT\tTLS\tDELAY\tSPEED")
		for _, s := range servers {
			c, err := db.Restore(s)
			if err != nil {
				logger.Log.Warnf("Skipping: %v", err)
				continue
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				s.ID, c.ItemRemark(), c.ItemProtocol(), c.ItemAddress(), c.ItemPort(),
				c.ItemTransport(), c.ItemTLS(), c.Extras().Delay, c.Extras().Speed)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
