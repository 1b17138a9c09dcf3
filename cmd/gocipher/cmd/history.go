package cmd

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gocipher/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent searches from the history database",
	Long: `History prints the most recent searches recorded in the MySQL history
table. Recording must be enabled with history.enabled in the config file.

Example:
  gocipher history --config gocipher.yaml --limit 10`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of searches to list")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if !cfg.History.Enabled {
		return fmt.Errorf("search history is disabled; set history.enabled in %s", GetConfigFile())
	}

	ctx := commandContext(cmd)
	store, err := history.Open(ctx, &cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Recent(ctx, historyLimit)
	if err != nil {
		return err
	}

	printHistory(cmd.OutOrStdout(), records)
	return nil
}

func printHistory(w io.Writer, records []history.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No searches recorded")
		return
	}

	widths := []int{19, 9, 11, 12, 12, 8}
	fmt.Fprintln(w, header(widths, "STARTED", "FAMILY", "STATUS", "KEYS", "BEST KEY", "SCORE", "PLAINTEXT"))
	for _, r := range records {
		key, score := "-", "-"
		if r.BestKey != "" {
			key = r.BestKey
			score = strconv.FormatFloat(r.BestScore, 'f', 2, 64)
		}
		fmt.Fprintln(w, row(widths,
			r.StartedAt.Local().Format(time.DateTime),
			r.Family,
			r.Status,
			strconv.FormatUint(r.KeysTried, 10),
			key,
			score,
			preview(r.BestText),
		))
	}
}
