// Package xlsx reads the administrative registry from the first sheet of an
// Excel workbook and hands it to the pipeline as string-keyed rows.
package xlsx

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/xuri/excelize/v2"
)

// Source implements pipeline.RegistrySource over an .xlsx file on disk.
type Source struct {
	path   string
	logger *slog.Logger
}

func NewSource(path string, logger *slog.Logger) *Source {
	return &Source{path: path, logger: logger}
}

// Fingerprint identifies the current file content by path, size, and mtime.
func (s *Source) Fingerprint(_ context.Context) (string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return "", fmt.Errorf("stat xlsx source: %w", err)
	}
	return fmt.Sprintf("%s|%d|%d", s.path, info.Size(), info.ModTime().UnixNano()), nil
}

// Load reads the first sheet. The first row is the header; every following
// row becomes a column→value map. Rows shorter than the header simply omit
// the trailing columns, matching how spreadsheets store sparse tails.
func (s *Source) Load(_ context.Context) ([]string, []map[string]string, error) {
	workbook, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, nil, fmt.Errorf("open xlsx source: %w", err)
	}
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	if sheet == "" {
		return nil, nil, fmt.Errorf("xlsx source %s has no sheets", s.path)
	}

	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read xlsx sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	columns := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(row) {
				record[col] = row[i]
			}
		}
		records = append(records, record)
	}

	s.logger.Debug("xlsx source loaded", "path", s.path, "sheet", sheet, "rows", len(records))
	return columns, records, nil
}
