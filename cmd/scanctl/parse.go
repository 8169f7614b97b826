package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jewelscan/internal/scanner"
)

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [raw...]",
		Short: "Parse scanner strings",
		Long: `Parse scanner strings given as arguments. With no arguments, every
line of stdin is parsed, blank lines included.`,
		Example: `  scanctl parse 12.500*2.500*10.0001ABC123
  cat scans.txt | scanctl parse -o csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			raws := args
			if len(raws) == 0 {
				lines, err := readLines(cmd.InOrStdin())
				if err != nil {
					return err
				}
				raws = lines
			}
			if len(raws) == 0 {
				return fmt.Errorf("no scanner strings given")
			}
			if len(raws) > a.cfg.Scanner.MaxBatchSize {
				return fmt.Errorf("%d scanner strings exceed the batch limit of %d", len(raws), a.cfg.Scanner.MaxBatchSize)
			}

			items, err := scanner.ParseAllConcurrent(cmd.Context(), raws, a.cfg.Scanner.Workers)
			if err != nil {
				return err
			}
			report := newParseReport("", items)
			a.log.Debug("parsed", zap.Int("total", report.Summary.Total), zap.Int("valid", report.Summary.Valid))

			if err := writeReport(cmd.OutOrStdout(), a.output, report); err != nil {
				return err
			}
			return strictCheck(a.strict, report.Summary)
		},
	}
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return lines, nil
}
