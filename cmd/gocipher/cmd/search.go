package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/gocipher/internal/config"
	"github.com/dbsmedya/gocipher/internal/history"
	"github.com/dbsmedya/gocipher/internal/logger"
	"github.com/dbsmedya/gocipher/internal/search"
)

var (
	searchText       string
	searchFile       string
	searchForce      bool
	progressInterval time.Duration
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for the key of a ciphertext",
	Long: `Search decrypts the ciphertext under every candidate key of the selected
cipher family and prints the best-scoring plaintexts.

Key spaces:
  - columnar: every permutation of every key length up to --max-key-length
  - periodic: every permutation of --period (or each period with --all-periods)
  - vigenere/beaufort: shifts derived from the most frequent letters per column

The search refuses to start when the key space exceeds search.max_keys
unless --force is given. Ctrl-C stops a running search.

Example:
  gocipher search --family columnar --max-key-length 5 --text hothrdegeeitdatfe
  gocipher search -f vigenere -p 5 --file ciphertext.txt`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchText, "text", "t", "", "Ciphertext (default: read --file or stdin)")
	searchCmd.Flags().StringVar(&searchFile, "file", "", "Read ciphertext from file")
	searchCmd.Flags().BoolVar(&searchForce, "force", false, "Run even when the key space exceeds search.max_keys")
	searchCmd.Flags().DurationVar(&progressInterval, "progress-interval", 2*time.Second,
		"Interval between progress log lines (0 disables)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	text, err := readInput(cmd, searchText, searchFile)
	if err != nil {
		return err
	}

	searchCfg := search.NewConfiguration(cfg, log)
	registry := prometheus.NewRegistry()
	orch := search.New(searchCfg, log, search.NewMetrics(registry))

	total := orch.TotalKeys(text)
	if err := checkKeyBudget(total, cfg.Search.MaxKeys, searchForce); err != nil {
		return err
	}

	ctx, stop := setupSignalHandler(commandContext(cmd), func(sig os.Signal) {
		log.Warnw("Received signal, stopping search", "signal", sig.String())
	})
	defer stop()

	result, err := waitWithProgress(orch, orch.Start(ctx, text), total, progressInterval, log)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	printResult(cmd.OutOrStdout(), result)

	if cfg.History.Enabled {
		if err := recordHistory(ctx, &cfg.History, result, len([]rune(text))); err != nil {
			log.Warnw("Failed to record search history", "run", result.RunID, "error", err)
		}
	}

	if cfg.Metrics.Textfile != "" {
		if err := prometheus.WriteToTextfile(cfg.Metrics.Textfile, registry); err != nil {
			return fmt.Errorf("failed to write metrics textfile: %w", err)
		}
		log.Debugw("Wrote metrics textfile", "path", cfg.Metrics.Textfile)
	}

	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// checkKeyBudget refuses key spaces above limit unless forced. A zero limit
// disables the check.
func checkKeyBudget(total, limit uint64, force bool) error {
	if limit == 0 || total <= limit || force {
		return nil
	}
	return fmt.Errorf("search would try %d keys, above the limit of %d; "+
		"lower --max-key-length or --period, raise search.max_keys, or pass --force", total, limit)
}

// waitWithProgress waits for the search outcome and logs progress at every
// interval tick.
func waitWithProgress(orch *search.Orchestrator, ch <-chan search.Outcome, total uint64, interval time.Duration, log *logger.Logger) (*search.Result, error) {
	if interval <= 0 {
		return search.Await(ch)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case out, ok := <-ch:
			if !ok {
				return nil, search.ErrNoOutcome
			}
			return out.Result, out.Err
		case <-ticker.C:
			tried := orch.Progress()
			log.Infow("Search progress",
				"keys_tried", tried,
				"total_keys", total,
				"percent", percent(tried, total),
			)
		}
	}
}

func percent(done, total uint64) string {
	if total == 0 {
		return "0.0"
	}
	return strconv.FormatFloat(float64(done)/float64(total)*100, 'f', 1, 64)
}

func printResult(w io.Writer, result *search.Result) {
	fmt.Fprintf(w, "Run:        %s\n", result.RunID)
	fmt.Fprintf(w, "Family:     %s\n", result.Family)
	fmt.Fprintf(w, "Keys tried: %d in %s\n", result.KeysTried, result.Duration.Round(time.Microsecond))

	if result.Status == search.StatusNoSolution {
		fmt.Fprintln(w, warnStyle.Sprint("No solution found"))
		return
	}
	fmt.Fprintf(w, "Status:     %s\n\n", result.Status)

	widths := []int{3, 10, 24}
	fmt.Fprintln(w, header(widths, "#", "SCORE", "KEY", "PLAINTEXT"))
	for i, c := range result.Candidates {
		line := row(widths,
			strconv.Itoa(i+1),
			strconv.FormatFloat(c.Score, 'f', 2, 64),
			formatKey(result.Family, c.Key),
			preview(c.Text),
		)
		if i == 0 {
			line = bestStyle.Sprint(line)
		}
		fmt.Fprintln(w, line)
	}
}

func recordHistory(ctx context.Context, cfg *config.HistoryConfig, result *search.Result, textLength int) error {
	store, err := history.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}
	return store.Record(ctx, history.FromResult(result, textLength))
}
