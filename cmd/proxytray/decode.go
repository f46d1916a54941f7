package main

import (
	"fmt"

	"proxytray/internal/factory"
	"proxytray/internal/logger"

	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <link|json>",
	Short: "Decode a share link or engine JSON without storing it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := factory.FromString(args[0])
		if err != nil {
			logger.Log.Fatalf("Error decoding: %v", err)
		}
		if c.Family() == factory.FamilyNone {
			logger.Log.Fatalf("Input is not a recognizable share link or configuration")
		}

		fmt.Printf("# %s %s %s\n", c.Family(), c.ItemProtocol(), c.ItemRemark())
		fmt.Println(c.Document().Pretty())
		if uri, err := c.ToURI(c.ItemRemark()); err == nil {
			fmt.Println(uri)
		}
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}
