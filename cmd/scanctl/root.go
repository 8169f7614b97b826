package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jewelscan/internal/config"
	"jewelscan/internal/logger"
)

// app carries what every subcommand needs. Tests fill cfg and log directly.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	output string
	strict bool
	owned  bool
}

func (a *app) init() error {
	if a.cfg == nil {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		a.cfg = cfg
	}
	if a.log == nil {
		l, err := logger.New(a.cfg.Log)
		if err != nil {
			return err
		}
		a.log = l
		a.owned = true
	}
	return nil
}

func (a *app) close() {
	if a.owned && a.log != nil {
		logger.Sync(a.log)
		a.owned = false
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "scanctl",
		Short: "Decode jewellery scanner strings",
		Long: `scanctl decodes scanner strings of the form <weights><pieces><CODE>
into an item code, gross/stone/net weights and a piece count.

Available subcommands:
  parse  - Parse scanner strings given as arguments or on stdin
  import - Parse the first column of an xlsx or csv spreadsheet
  token  - Mint an operator token for the ledger API`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch a.output {
			case outputJSON, outputYAML, outputCSV:
			default:
				return fmt.Errorf("unknown output format %q (json, yaml or csv)", a.output)
			}
			return a.init()
		},
	}

	root.PersistentFlags().StringVarP(&a.output, "output", "o", outputJSON, "Output format: json, yaml or csv")
	root.PersistentFlags().BoolVar(&a.strict, "strict", false, "Exit non-zero when any item is not VALID")

	root.AddCommand(newParseCmd(a), newImportCmd(a), newTokenCmd(a))
	return root
}
