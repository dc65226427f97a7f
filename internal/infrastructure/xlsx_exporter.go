package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"wbreports/internal/domain"
	"wbreports/pkg/logger"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

var _ domain.RowExporter = (*XLSXExporter)(nil)

// implements RowExporter interface
type XLSXExporter struct {
	logger *logger.Logger
}

func NewXLSXExporter(logger *logger.Logger) *XLSXExporter {
	return &XLSXExporter{logger: logger}
}

// Export writes rows to path. The workbook is written to a temporary file in
// the same directory and renamed into place, so a failed run leaves no file.
func (e *XLSXExporter) Export(ctx context.Context, path string, rows []domain.Record) error {
	start := time.Now()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err = e.Write(tmp, rows); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move report into place: %w", err)
	}

	e.logger.WithContext(ctx).WithFields(map[string]any{
		"path":     path,
		"rows":     len(rows),
		"duration": time.Since(start),
	}).Info("Report written")

	return nil
}

// Write encodes rows as a single-sheet workbook. Columns are the union of row
// keys in first-seen order; rows missing a key get an empty cell.
func (e *XLSXExporter) Write(w io.Writer, rows []domain.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	columns, position := collectColumns(rows)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("failed to open sheet: %w", err)
	}

	if len(columns) > 0 {
		header := make([]any, len(columns))
		for i, name := range columns {
			header[i] = name
		}
		if err := sw.SetRow("A1", header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, row := range rows {
		values := make([]any, len(columns))
		for _, field := range row.Fields() {
			values[position[field.Key]] = cellValue(field.Value)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func collectColumns(rows []domain.Record) ([]string, map[string]int) {
	var columns []string
	position := make(map[string]int)
	for _, row := range rows {
		for _, key := range row.Keys() {
			if _, ok := position[key]; !ok {
				position[key] = len(columns)
				columns = append(columns, key)
			}
		}
	}
	return columns, position
}

// cellValue converts a decoded JSON value into something excelize can store
func cellValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case string, bool, int, int64, float64:
		return val
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}
