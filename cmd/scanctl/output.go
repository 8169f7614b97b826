package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"jewelscan/internal/csvexport"
	"jewelscan/internal/domain"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
	outputCSV  = "csv"
)

// parseReport is the document printed by parse and import.
type parseReport struct {
	Source  string               `json:"source,omitempty" yaml:"source,omitempty"`
	Items   []domain.ParsedItem  `json:"items" yaml:"-"`
	Rows    []yamlItem           `json:"-" yaml:"items"`
	Summary domain.StatusSummary `json:"summary" yaml:"summary"`
}

// yamlItem renders weights as fixed decimals; yaml.v3 would otherwise print the raw
// thousandths count.
type yamlItem struct {
	Code        string `yaml:"code"`
	GrossWeight string `yaml:"grossWeight,omitempty"`
	StoneWeight string `yaml:"stoneWeight,omitempty"`
	NetWeight   string `yaml:"netWeight,omitempty"`
	Pieces      *int   `yaml:"pieces,omitempty"`
	Status      string `yaml:"status"`
	Error       string `yaml:"error,omitempty"`
}

func newParseReport(source string, items []domain.ParsedItem) parseReport {
	return parseReport{Source: source, Items: items, Summary: domain.Summarize(items)}
}

func writeReport(w io.Writer, format string, report parseReport) error {
	switch format {
	case outputCSV:
		cw := csvexport.NewWriter(w)
		if err := cw.WriteScanHeader(); err != nil {
			return err
		}
		if err := cw.WriteParsedItems(report.Items); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	case outputYAML:
		report.Rows = make([]yamlItem, len(report.Items))
		for i := range report.Items {
			report.Rows[i] = toYAMLItem(&report.Items[i])
		}
		return writeYAML(w, report)
	default:
		return writeJSON(w, report)
	}
}

func toYAMLItem(p *domain.ParsedItem) yamlItem {
	return yamlItem{
		Code:        p.Code,
		GrossWeight: fixed(p.GrossWeight),
		StoneWeight: fixed(p.StoneWeight),
		NetWeight:   fixed(p.NetWeight),
		Pieces:      p.Pieces,
		Status:      string(p.Status),
		Error:       p.Error,
	}
}

func fixed(w *domain.Weight) string {
	if w == nil {
		return ""
	}
	return w.Fixed()
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// strictCheck fails when strict mode is on and the batch holds non-VALID items.
func strictCheck(strict bool, s domain.StatusSummary) error {
	if !strict || s.Valid == s.Total {
		return nil
	}
	return fmt.Errorf("%d of %d items not valid (%d mistake, %d invalid)", s.Total-s.Valid, s.Total, s.Mistake, s.Invalid)
}
