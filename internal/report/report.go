// Package report renders month reports for people and spreadsheets.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"expenses/internal/core"
	"expenses/internal/summary"
)

// Format selects an export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts csv or xlsx, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q: must be csv or xlsx", s)
	}
}

// FileName is the default export file name for a month.
func FileName(m core.MonthKey, f Format) string {
	return fmt.Sprintf("ledger_%s.%s", m, f)
}

// Write encodes r to w in format f.
func Write(w io.Writer, f Format, r core.MonthReport) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, r)
	case FormatXLSX:
		return WriteXLSX(w, r)
	default:
		return fmt.Errorf("unknown export format %q", string(f))
	}
}

// WriteFile exports r to path, creating parent directories. An empty path
// means FileName inside dir. It returns the path written.
func WriteFile(dir, path string, f Format, r core.MonthReport) (string, error) {
	if path == "" {
		path = filepath.Join(dir, FileName(r.Month, f))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}

	if err := Write(file, f, r); err != nil {
		file.Close()
		return "", fmt.Errorf("write %s export: %w", f, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}
	return path, nil
}

func formatPercent(d decimal.Decimal) string {
	return d.StringFixed(summary.PercentPlaces) + "%"
}
