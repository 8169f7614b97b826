package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jewelscan/internal/ingest"
	"jewelscan/internal/scanner"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Parse the scanner strings in an xlsx or csv spreadsheet",
		Long: `Read the first sheet of an xlsx workbook, or a csv file, and parse
the first non-empty cell of every row.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open spreadsheet: %w", err)
			}
			defer func() { _ = f.Close() }()

			info, err := f.Stat()
			if err != nil {
				return fmt.Errorf("stat spreadsheet: %w", err)
			}
			if info.Size() > a.cfg.Scanner.MaxUploadBytes() {
				return fmt.Errorf("%s is %d bytes, over the %d MB limit", path, info.Size(), a.cfg.Scanner.MaxUploadMB)
			}

			raws, err := ingest.Extract(filepath.Base(path), f)
			if err != nil {
				return fmt.Errorf("import %s: %w", path, err)
			}
			if len(raws) > a.cfg.Scanner.MaxBatchSize {
				return fmt.Errorf("%d rows exceed the batch limit of %d", len(raws), a.cfg.Scanner.MaxBatchSize)
			}

			items, err := scanner.ParseAllConcurrent(cmd.Context(), raws, a.cfg.Scanner.Workers)
			if err != nil {
				return err
			}
			report := newParseReport(filepath.Base(path), items)
			a.log.Debug("spreadsheet parsed", zap.String("file", path), zap.Int("rows", len(items)))

			if err := writeReport(cmd.OutOrStdout(), a.output, report); err != nil {
				return err
			}
			return strictCheck(a.strict, report.Summary)
		},
	}
}
