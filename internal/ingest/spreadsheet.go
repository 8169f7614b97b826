// Package ingest extracts candidate scanner strings from uploaded spreadsheets.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"jewelscan/internal/domain"
)

// FileTypeFor resolves the spreadsheet format from a file name.
func FileTypeFor(filename string) (domain.FileType, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	ft, ok := domain.AllowedExtensions[ext]
	if !ok {
		return "", domain.ErrUnsupportedFileType
	}
	return ft, nil
}

// Extract reads every row of the first sheet and returns, in row order, the first
// non-empty cell of each row. Rows without any such cell are skipped.
func Extract(filename string, r io.Reader) ([]string, error) {
	ft, err := FileTypeFor(filename)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	switch ft {
	case domain.FileTypeXLSX:
		rows, err = readXLSX(r)
	case domain.FileTypeCSV:
		rows, err = readCSV(r)
	}
	if err != nil {
		return nil, err
	}

	strs := ScannerStrings(rows)
	if len(strs) == 0 {
		return nil, domain.ErrNoScannerData
	}
	return strs, nil
}

// ScannerStrings picks the first non-empty trimmed cell from each row.
func ScannerStrings(rows [][]string) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		for _, cell := range row {
			if v := strings.TrimSpace(cell); v != "" {
				out = append(out, v)
				break
			}
		}
	}
	return out
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, domain.ErrNoScannerData
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(stripBOM(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// stripBOM drops a leading UTF-8 byte order mark, as written by Excel and by csvexport.
func stripBOM(r io.Reader) io.Reader {
	buf := make([]byte, 3)
	n, err := io.ReadFull(r, buf)
	if err != nil {
		return io.MultiReader(bytes.NewReader(buf[:n]), r)
	}
	if buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF {
		return r
	}
	return io.MultiReader(bytes.NewReader(buf), r)
}
