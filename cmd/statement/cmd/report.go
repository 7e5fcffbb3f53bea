package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	importservice "github.com/FACorreiaa/statement-converter/internal/domain/import/service"
)

var (
	successColor = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	boldColor    = color.New(color.Bold)
)

func printSuccess(w io.Writer, format string, args ...interface{}) {
	successColor.Fprintf(w, format+"\n", args...)
}

func printWarning(w io.Writer, format string, args ...interface{}) {
	warningColor.Fprintf(w, format+"\n", args...)
}

func printError(w io.Writer, format string, args ...interface{}) {
	errorColor.Fprintf(w, format+"\n", args...)
}

// printImportResult reports every journal file, then the batch summary
func printImportResult(w io.Writer, result *importservice.ImportResult) {
	if result == nil {
		return
	}

	loaded := 0
	for _, f := range result.Files {
		if f.Err != nil {
			printWarning(w, "Failed to process %s: %v", boldColor.Sprint(f.Path), f.Err)
			continue
		}
		loaded++
		fmt.Fprintf(w, "Processed %s.\n", boldColor.Sprintf("%d/%d", loaded, result.FilesTotal))
	}

	switch {
	case result.FilesLoaded == 0:
		printError(w, "No files were processed")
	case result.FilesFailed == 0:
		printSuccess(w, "All files were processed successfully")
	default:
		fmt.Fprintf(w, "Processed %s files. %s\n",
			boldColor.Sprint(result.FilesLoaded),
			warningColor.Sprintf("Failed to process %d files.", result.FilesFailed))
	}
}
