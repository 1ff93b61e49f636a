package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/spendsense-dev/spendsense/internal/categorize"
	"github.com/spendsense-dev/spendsense/internal/config"
	"github.com/spendsense-dev/spendsense/internal/csvparse"
	"github.com/spendsense-dev/spendsense/internal/importer"
	"github.com/spendsense-dev/spendsense/internal/importlog"
	"github.com/spendsense-dev/spendsense/internal/logging"
	"github.com/spendsense-dev/spendsense/internal/storage/sqlite"
)

func newImportCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import [file.csv]",
		Short: "Import a bank CSV export",
		Long: `Parse a bank CSV export, flag duplicates against stored history,
suggest categories, and persist the new transactions.

Without an argument, lists the CSV files waiting in the import directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.FileName)
			if err != nil {
				return fmt.Errorf("loading config (run 'spendsense init' first): %w", err)
			}

			if len(args) == 0 {
				return listImportFiles(cfg.Import.Directory)
			}
			return runImport(cfg, args[0], dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "preview only, persist nothing")

	return cmd
}

func listImportFiles(dir string) error {
	files, err := importer.Scan(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Printf("No CSV files in %s/\n", dir)
		return nil
	}
	for _, f := range files {
		fmt.Printf("%s (%d bytes)\n", f.Name, f.Size)
	}
	return nil
}

func runImport(cfg *config.Config, file string, dryRun bool) error {
	log := logging.New()
	ctx := logging.WithContext(context.Background(), log)

	content, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", file, err)
	}

	store, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	svc := newImportService(cfg, store, log)

	preview, err := svc.Preview(ctx, cfg.User.ID, string(content))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", file, err)
	}

	fmt.Printf("%s: %d transactions (%d new, %d duplicates, %d categorized)\n",
		filepath.Base(file), preview.Summary.Total, preview.Summary.New,
		preview.Summary.Duplicates, preview.Summary.Categorized)
	for _, msg := range preview.RowErrors {
		fmt.Printf("  skipped %s\n", msg)
	}

	if dryRun {
		return nil
	}

	result, err := svc.Import(ctx, cfg.User.ID, preview.Rows)
	if err != nil {
		return fmt.Errorf("importing %s: %w", file, err)
	}

	fmt.Printf("Imported %d transactions\n", result.Imported)
	for _, msg := range result.Errors {
		fmt.Printf("  %s\n", msg)
	}

	entry := importlog.Entry{
		Timestamp:   time.Now(),
		User:        cfg.User.ID,
		File:        filepath.Base(file),
		Total:       preview.Summary.Total,
		Duplicates:  preview.Summary.Duplicates,
		Imported:    result.Imported,
		Categorized: preview.Summary.Categorized,
		Errors:      len(preview.RowErrors) + len(result.Errors),
	}
	if err := importlog.Append(cfg.Import.LogFile, []importlog.Entry{entry}); err != nil {
		return fmt.Errorf("writing import log: %w", err)
	}

	// Move files that came from the import directory out of the way.
	if filepath.Dir(file) == filepath.Clean(cfg.Import.Directory) {
		if err := importer.MarkProcessed(cfg.Import.Directory, filepath.Base(file)); err != nil {
			return err
		}
	}

	return nil
}

// newImportService wires the parser, engine, and store with the config's
// keyword and dictionary extensions applied.
func newImportService(cfg *config.Config, store *sqlite.Store, log zerolog.Logger) *importer.Service {
	parser := csvparse.NewParser(log)
	parser.Keywords = parser.Keywords.Extend(cfg.Keywords.Income, cfg.Keywords.Expense)
	parser.DefaultCurrency = cfg.Defaults.Currency
	parser.DefaultAccount = cfg.Defaults.Account

	merchants := categorize.MerchantDictionary().Extend(dictEntries(cfg.Dictionaries.Merchants))
	keywords := categorize.KeywordDictionary().Extend(dictEntries(cfg.Dictionaries.Keywords))
	engine := categorize.NewEngine(store, merchants, keywords)

	return importer.NewService(store, parser, engine)
}

func dictEntries(entries []config.DictionaryEntry) []categorize.Entry {
	out := make([]categorize.Entry, len(entries))
	for i, e := range entries {
		out[i] = categorize.Entry{Pattern: e.Pattern, Category: e.Category}
	}
	return out
}
