package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gocipher/internal/ioc"
)

var (
	periodText string
	periodFile string
	maxPeriod  int
	periodShow int
)

var periodCmd = &cobra.Command{
	Use:   "period",
	Short: "Estimate the period of a polyalphabetic ciphertext",
	Long: `Period computes the Index of Coincidence of the ciphertext for every
period from 1 to --max-period and lists the periods whose average column IC
is closest to English (0.066).

Example:
  gocipher period --file ciphertext.txt --max-period 12
  echo txiofelqprdx... | gocipher period --show 3`,
	RunE: runPeriod,
}

func init() {
	periodCmd.Flags().StringVarP(&periodText, "text", "t", "", "Ciphertext (default: read --file or stdin)")
	periodCmd.Flags().StringVar(&periodFile, "file", "", "Read ciphertext from file")
	periodCmd.Flags().IntVar(&maxPeriod, "max-period", 0, "Largest period to test (default: period.max_period)")
	periodCmd.Flags().IntVar(&periodShow, "show", 5, "Number of ranked periods to print (0 = all)")
	rootCmd.AddCommand(periodCmd)
}

func runPeriod(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	text, err := readInput(cmd, periodText, periodFile)
	if err != nil {
		return err
	}

	limit := cfg.Period.MaxPeriod
	if maxPeriod > 0 {
		limit = maxPeriod
	}

	report := ioc.Estimate(text, limit)
	log.Debugw("Estimated period", "letters", report.Letters, "max_period", report.MaxPeriod)

	printPeriodReport(cmd.OutOrStdout(), report, periodShow)
	return nil
}

func printPeriodReport(w io.Writer, report *ioc.PeriodReport, show int) {
	fmt.Fprintf(w, "Letters analysed: %d\n", report.Letters)
	fmt.Fprintf(w, "Periods tested:   1..%d\n", report.MaxPeriod)

	if report.Letters == 0 {
		fmt.Fprintln(w, warnStyle.Sprint("No letters to analyse"))
		return
	}

	ranked := report.Ranked()
	if show > 0 && show < len(ranked) {
		ranked = ranked[:show]
	}

	fmt.Fprintln(w)
	widths := []int{6, 10}
	fmt.Fprintln(w, header(widths, "PERIOD", "AVG IC", "DISTANCE"))
	for i, e := range ranked {
		line := row(widths,
			strconv.Itoa(e.Period),
			strconv.FormatFloat(e.Average, 'f', 4, 64),
			strconv.FormatFloat(e.Distance, 'f', 4, 64),
		)
		if i == 0 {
			line = bestStyle.Sprint(line)
		}
		fmt.Fprintln(w, line)
	}
}
