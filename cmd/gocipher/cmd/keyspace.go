package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gocipher/internal/cipher"
	"github.com/dbsmedya/gocipher/internal/search"
)

var (
	keyspaceText string
	keyspaceFile string
)

var keyspaceCmd = &cobra.Command{
	Use:   "keyspace",
	Short: "Show the key space a search would cover",
	Long: `Keyspace prints, for every key length or period the search would try,
how many keys it covers on the given ciphertext, without trying any of them.

Example:
  gocipher keyspace -f columnar --max-key-length 9 --text hothrdegeeitdatfe
  gocipher keyspace -f vigenere -p 5 --all-periods --max-key-length 8 --file ct.txt`,
	RunE: runKeyspace,
}

func init() {
	keyspaceCmd.Flags().StringVarP(&keyspaceText, "text", "t", "", "Ciphertext (default: read --file or stdin)")
	keyspaceCmd.Flags().StringVar(&keyspaceFile, "file", "", "Read ciphertext from file")
	rootCmd.AddCommand(keyspaceCmd)
}

func runKeyspace(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	text, err := readInput(cmd, keyspaceText, keyspaceFile)
	if err != nil {
		return err
	}

	orch := search.New(search.NewConfiguration(cfg, log), log, nil)
	printKeyspace(cmd.OutOrStdout(), orch.Configuration(), orch.Plan(text), orch.TotalKeys(text), cfg.Search.MaxKeys)
	return nil
}

func printKeyspace(w io.Writer, sc search.Configuration, segments []search.Segment, total, limit uint64) {
	label := "PERIOD"
	if sc.Family == cipher.Columnar {
		label = "LENGTH"
	}

	fmt.Fprintf(w, "Family: %s\n\n", sc.Family)

	widths := []int{6}
	fmt.Fprintln(w, header(widths, label, "KEYS"))
	for _, s := range segments {
		keys := strconv.FormatUint(s.Keys, 10)
		if s.Skipped {
			keys = warnStyle.Sprint("skipped")
		}
		fmt.Fprintln(w, row(widths, strconv.Itoa(s.Value), keys))
	}

	fmt.Fprintf(w, "\nTotal keys: %d\n", total)
	switch {
	case limit == 0:
		fmt.Fprintln(w, "Key limit:  none")
	case total > limit:
		fmt.Fprintln(w, warnStyle.Sprintf("Key limit:  %d (exceeded, search needs --force)", limit))
	default:
		fmt.Fprintf(w, "Key limit:  %d\n", limit)
	}
}
