package cmd

import (
	"github.com/spf13/cobra"

	importservice "github.com/FACorreiaa/statement-converter/internal/domain/import/service"
	"github.com/FACorreiaa/statement-converter/internal/domain/transaction"
)

var (
	processOutput  string
	processJournal string
	processColumns []string
	processCharset string
)

var processCmd = &cobra.Command{
	Use:   "process <rows.csv>",
	Short: "Convert the extracted rows of a statement into a transaction table",
	Long: `Reads the rows a PDF table extractor produced for a statement (one CSV record
per printed line), merges multi-line transactions, extracts the transaction
fields and writes the result. With a journal, categories of similar payees are
copied onto the transactions.

The output format follows the output file suffix.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&processOutput, "output-file-path", "o", "", "output file (default <input>.transactions.<format>)")
	processCmd.Flags().StringVarP(&processJournal, "journal-filepath", "j", "", "journal used to categorize payees")
	processCmd.Flags().StringSliceVarP(&processColumns, "columns", "c", nil, "output columns, by key or header (default all)")
	processCmd.Flags().StringVar(&processCharset, "charset", "", "encoding of the rows file (default from STATEMENT_INPUT_CHARSET)")
}

func runProcess(cmd *cobra.Command, args []string) error {
	fields, err := transaction.ParseFields(processColumns)
	if err != nil {
		return err
	}

	charset := processCharset
	if charset == "" {
		charset = deps.Config.Input.Charset
	}

	result, err := deps.ImportService.Process(cmd.Context(), importservice.ProcessInput{
		RowsPath:    args[0],
		OutputPath:  processOutput,
		JournalPath: processJournal,
		Fields:      fields,
		Charset:     charset,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.JournalEntries > 0 {
		printSuccess(out, "Categorized %d of %d transactions from %d journal entries",
			result.Categorized, result.Records, result.JournalEntries)
	}
	printSuccess(out, "Wrote %d transactions to %s", result.Records, boldColor.Sprint(result.OutputPath))
	return nil
}
