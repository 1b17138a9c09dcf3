package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gocipher/internal/scorer"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Show the scoring tables",
	Long: `Tables prints the n-gram and word tables the scorer matches against,
with the weight of every entry, followed by the English letter frequencies.

Example:
  gocipher tables --profile spaced`,
	RunE: runTables,
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}

func runTables(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	s, err := scorer.ParseProfile(cfg.Scoring.Profile, cfg.Scoring.SpaceBonus, cfg.Scoring.SymbolPenalty)
	if err != nil {
		return err
	}

	printTables(cmd.OutOrStdout(), s)
	return nil
}

func printTables(w io.Writer, s *scorer.Scorer) {
	for _, t := range s.Tables() {
		fmt.Fprintln(w, headerStyle.Sprintf("%s (%d entries)", t.Name, t.Weights.Len()))
		for el := t.Weights.Front(); el != nil; el = el.Next() {
			fmt.Fprintf(w, "  %-8s %6.3f\n", el.Key, el.Value)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, headerStyle.Sprint("letter frequency (%)"))
	for r := 'a'; r <= 'z'; r++ {
		fmt.Fprintf(w, "  %c %6.3f\n", r, scorer.LetterFrequency(int(r-'a')))
	}

	if opts := s.Options(); opts.SpaceBonus != 0 || opts.SymbolPenalty != 0 {
		fmt.Fprintf(w, "\nspace bonus %.2f, symbol penalty %.2f\n", opts.SpaceBonus, opts.SymbolPenalty)
	}
}
