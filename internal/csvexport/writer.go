package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"jewelscan/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// scanColumns is the header row for parse results.
var scanColumns = []string{
	"Code",
	"Gross Weight",
	"Stone Weight",
	"Net Weight",
	"Pieces",
	"Status",
	"Error",
}

// ledgerColumns is the header row for confirmed ledger items.
var ledgerColumns = []string{
	"ID",
	"Code",
	"Gross Weight",
	"Stone Weight",
	"Net Weight",
	"Pieces",
	"Item Type",
	"Sold",
	"Created By",
	"Created At",
}

// Writer wraps csv.Writer for exporting scan results and ledger items as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteScanHeader writes the parse result header row.
func (w *Writer) WriteScanHeader() error {
	return w.csv.Write(scanColumns)
}

// WriteLedgerHeader writes the ledger item header row.
func (w *Writer) WriteLedgerHeader() error {
	return w.csv.Write(ledgerColumns)
}

// WriteParsedItems converts parse results to CSV rows and writes them.
func (w *Writer) WriteParsedItems(items []domain.ParsedItem) error {
	for i := range items {
		if err := w.csv.Write(parsedItemToRow(&items[i])); err != nil {
			return err
		}
	}
	return nil
}

// WriteLedgerItems converts ledger items to CSV rows and writes them.
func (w *Writer) WriteLedgerItems(items []domain.JewelleryItem) error {
	for i := range items {
		if err := w.csv.Write(ledgerItemToRow(&items[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// parsedItemToRow leaves weight and piece cells empty when the parser did not set them.
func parsedItemToRow(item *domain.ParsedItem) []string {
	return []string{
		item.Code,
		formatWeight(item.GrossWeight),
		formatWeight(item.StoneWeight),
		formatWeight(item.NetWeight),
		formatPieces(item.Pieces),
		string(item.Status),
		item.Error,
	}
}

func ledgerItemToRow(item *domain.JewelleryItem) []string {
	return []string{
		item.ID.String(),
		item.Code,
		item.GrossWeight.Fixed(),
		item.StoneWeight.Fixed(),
		item.NetWeight.Fixed(),
		strconv.Itoa(item.Pieces),
		string(item.ItemType),
		formatBool(item.IsSold),
		item.CreatedBy,
		item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func formatWeight(w *domain.Weight) string {
	if w == nil {
		return ""
	}
	return w.Fixed()
}

func formatPieces(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.csv
func BuildFilename(name string) string {
	sanitized := SanitizeFilename(name)
	if sanitized == "" {
		sanitized = "export"
	}
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.csv", sanitized, date)
}
