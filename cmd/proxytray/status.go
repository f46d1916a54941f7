package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"proxytray/internal/db"
	"proxytray/internal/model"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database statistics",
	Long:  `Displays a dashboard of the current database state, including configuration counts per engine family, protocol and source, and file sizes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, database := openStore()
		defer db.Close(database)

		var total int64
		database.Model(&model.Server{}).Count(&total)

		dbSize := getFileSize(cfg.Database.Path)
		walSize := getFileSize(cfg.Database.Path + "-wal")

		groupBy := func(column string) []groupStat {
			var stats []groupStat
			database.Model(&model.Server{}).
				Select(column + " as name, count(*) as count").
				Group(column).
				Order("count desc, name").
				Scan(&stats)
			return stats
		}
		families := groupBy("family")
		protocols := groupBy("protocol")
		sources := groupBy("source")

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

		fmt.Println("\n📊 \033[1mPROXYTRAY STATUS DASHBOARD\033[0m")
		fmt.Println("────────────────────────────────────────")

		fmt.Fprintln(w, "\033[1;36m[ SYSTEM ]\033[0m\t")
		fmt.Fprintf(w, "  Database Path:\t%s\n", cfg.Database.Path)
		fmt.Fprintf(w, "  DB Size:\t%s\n", formatBytes(dbSize))
		if walSize > 0 {
			fmt.Fprintf(w, "  WAL Size:\t%s (pending checkpoint)\n", formatBytes(walSize))
		}
		fmt.Fprintf(w, "  Total Configurations:\t%d\n", total)
		fmt.Fprintf(w, "  Local Listeners:\tsocks %s, http %s\n", cfg.Inbounds.Socks, cfg.Inbounds.HTTP)
		fmt.Fprintln(w, "\t")

		printGroup(w, "ENGINES", families)
		printGroup(w, "PROTOCOLS", protocols)
		printGroup(w, "SOURCES", sources)

		w.Flush()
		fmt.Println("")
	},
}

type groupStat struct {
	Name  string
	Count int
}

func printGroup(w *tabwriter.Writer, title string, stats []groupStat) {
	fmt.Fprintf(w, "\033[1;36m[ %s ]\033[0m\t\n", title)
	if len(stats) == 0 {
		fmt.Fprintln(w, "  (empty)")
	}
	for _, s := range stats {
		name := s.Name
		if name == "" {
			name = "(none)"
		}
		fmt.Fprintf(w, "  %s:\t%d\n", name, s.Count)
	}
	fmt.Fprintln(w, "\t")
}

func getFileSize(path string) int64 {
	fi, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return fi.Size()
}

func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
