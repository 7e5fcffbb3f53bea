package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/statement-converter/internal/domain/journal"
)

var searchLimit int

var journalCmd = &cobra.Command{
	Use:   "journal <files...> <output>",
	Short: "Import and process journal files",
	Long: `Imports one or more journal files, removes duplicates, keeps the latest
category per payee, merges similar payees and saves the result.

Files that cannot be read or lack a Date or Category column are reported and
skipped. The output format follows the output suffix; without one the
configured journal format is used.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runJournal,
}

var journalSearchCmd = &cobra.Command{
	Use:   "search <journal> <query>",
	Short: "Find journal payees matching a query",
	Args:  cobra.ExactArgs(2),
	RunE:  runJournalSearch,
}

func init() {
	journalSearchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results (0 for all)")
	journalCmd.AddCommand(journalSearchCmd)
}

func runJournal(cmd *cobra.Command, args []string) error {
	inputs, output := args[:len(args)-1], args[len(args)-1]
	out := cmd.OutOrStdout()

	result, err := deps.ImportService.BuildJournal(cmd.Context(), inputs, output)
	if result != nil {
		printImportResult(out, result.Import)
	}
	if err != nil {
		return err
	}

	printSuccess(out, "Saved %d journal entries to %s", result.Entries, boldColor.Sprint(result.OutputPath))
	return nil
}

func runJournalSearch(cmd *cobra.Command, args []string) error {
	hits, err := deps.ImportService.SearchJournal(cmd.Context(), args[0], args[1], searchLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(hits) == 0 {
		printWarning(out, "No payees match %q", args[1])
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, boldColor.Sprint("Payee\tCategory\tDate\tSimilarity"))
	for _, h := range hits {
		date := ""
		if !h.Entry.Date.IsZero() {
			date = h.Entry.Date.Format(journal.DateLayout)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\n", h.Entry.Payee, h.Entry.Category, date, h.Ratio)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to print results: %w", err)
	}
	return nil
}
