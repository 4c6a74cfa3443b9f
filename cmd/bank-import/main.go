// Package main provides the entry point for the bank-import CLI application.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"kopilka/bank-import/internal/categorizer"
	"kopilka/bank-import/internal/config"
	"kopilka/bank-import/internal/detect"
	"kopilka/bank-import/internal/importer"
	"kopilka/bank-import/internal/logging"
	"kopilka/bank-import/internal/models"
	"kopilka/bank-import/internal/pdftext"
	"kopilka/bank-import/internal/source"
	"kopilka/bank-import/internal/store"
)

var (
	cfg    *config.Config
	logger logging.Logger

	outputFile string
)

var rootCmd = &cobra.Command{
	Use:   "bank-import",
	Short: "Import Russian bank statements (CSV and PDF) into a unified transaction format.",
	Long: `bank-import detects the bank format of a statement export, parses it into
normalized transactions with inferred categories, and writes them to the
application's canonical CSV format.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		var err error
		cfg, err = config.InitializeConfig()
		if err != nil {
			return err
		}
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

		if cfg.Categories.RulesFile != "" {
			rules, err := categorizer.LoadRules(cfg.Categories.RulesFile)
			if err != nil {
				return fmt.Errorf("failed to load category rules: %w", err)
			}
			categorizer.SetUserRules(rules)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to bank-import!")
		fmt.Println("Use --help to see available commands")
	},
}

var importCmd = &cobra.Command{
	Use:   "import <statement-file>",
	Short: "Import a bank statement into the transaction store",
	Args:  cobra.ExactArgs(1),
	RunE:  importFunc,
}

var convertCmd = &cobra.Command{
	Use:   "convert <statement-file>",
	Short: "Convert a bank statement to the canonical CSV format",
	Args:  cobra.ExactArgs(1),
	RunE:  convertFunc,
}

var detectCmd = &cobra.Command{
	Use:   "detect <statement-file>",
	Short: "Report which bank parser claims a statement file",
	Args:  cobra.ExactArgs(1),
	RunE:  detectFunc,
}

func importFunc(cmd *cobra.Command, args []string) error {
	repo := store.NewMemoryRepository()
	imp := importer.New(repo, pdftext.NewPDFExtractor(), logger, cfg.ImporterOptions())

	events := imp.Import(cmd.Context(), source.FileHandle{Path: args[0]})
	for event := range events {
		switch e := event.(type) {
		case models.Progress:
			fmt.Printf("  %d/%d rows\n", e.Current, e.Total)
		case models.Success:
			fmt.Printf("Imported %d transactions (%d skipped), net amount %s\n",
				e.Imported, e.Skipped, e.TotalAmount.StringFixed(2))
		case models.Failure:
			return fmt.Errorf("import failed: %s", e.Message)
		}
	}

	if outputFile == "" {
		return nil
	}
	transactions, err := repo.LoadTransactions()
	if err != nil {
		return err
	}
	return store.ExportCSV(transactions, outputFile, logger)
}

func convertFunc(cmd *cobra.Command, args []string) error {
	if outputFile == "" {
		return fmt.Errorf("convert requires --output")
	}
	return importFunc(cmd, args)
}

func detectFunc(cmd *cobra.Command, args []string) error {
	h := source.FileHandle{Path: args[0]}
	raw, err := source.ReadAll(h)
	if err != nil {
		return err
	}

	detector := detect.New(logger)
	if detect.IsPDF(raw) {
		text, err := pdftext.NewPDFExtractor().ExtractText(raw)
		if err != nil {
			return fmt.Errorf("failed to extract PDF text: %w", err)
		}
		fmt.Printf("%s (PDF)\n", detector.DetectPDF(h.Name(), text).Name())
		return nil
	}

	lines, err := source.ReadLines(h, detect.PreviewLines)
	if err != nil {
		return err
	}
	fmt.Printf("%s (CSV)\n", detector.DetectCSV(lines).Name())
	return nil
}

func main() {
	importCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write imported transactions to a CSV file")
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output CSV file")
	rootCmd.AddCommand(importCmd, convertCmd, detectCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
