// Package importer loads word records from user-supplied spreadsheet files
// (xlsx or CSV) and funnels them through record resolution, so imported
// rows deduplicate and merge exactly like fetched words.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vocabguru/backend/internal/domain"
	"github.com/vocabguru/backend/internal/normalizer"
	"github.com/xuri/excelize/v2"
)

type resolver interface {
	ResolveRecord(ctx context.Context, raw normalizer.RawWord) (*domain.Word, bool, error)
}

// Importer parses spreadsheet files into raw records and resolves them.
type Importer struct {
	log      *slog.Logger
	resolver resolver
}

// New creates an Importer.
func New(logger *slog.Logger, r resolver) *Importer {
	return &Importer{
		log:      logger.With("component", "importer"),
		resolver: r,
	}
}

// Report summarizes one import run. A row failure is recorded and skipped;
// it never aborts the remaining rows.
type Report struct {
	Processed int
	Created   int
	Merged    int
	Failed    int
	Errors    []string
}

// ImportFile imports a .csv or .xlsx file chosen by extension.
func (i *Importer) ImportFile(ctx context.Context, path string) (*Report, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()
		return i.ImportCSV(ctx, f)
	case ".xlsx":
		return i.ImportXLSX(ctx, path)
	default:
		return nil, fmt.Errorf("%w: unsupported import format %q", domain.ErrValidation, ext)
	}
}

// ImportCSV imports rows from CSV data. The first row must be a header.
func (i *Importer) ImportCSV(ctx context.Context, r io.Reader) (*Report, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, row)
	}
	return i.importRows(ctx, rows)
}

// ImportXLSX imports rows from the first sheet of an xlsx workbook. The
// first row must be a header.
func (i *Importer) ImportXLSX(ctx context.Context, path string) (*Report, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", domain.ErrValidation)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return i.importRows(ctx, rows)
}

func (i *Importer) importRows(ctx context.Context, rows [][]string) (*Report, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: import file is empty", domain.ErrValidation)
	}

	cols, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	report := &Report{Errors: []string{}}
	for rowNum, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("import interrupted: %w", err)
		}
		if isBlankRow(row) {
			continue
		}

		report.Processed++

		raw := rawFromRow(cols, row)
		word, created, err := i.resolver.ResolveRecord(ctx, raw)
		if err != nil {
			report.Failed++
			// Header is row 1; data starts at row 2.
			report.Errors = append(report.Errors, fmt.Sprintf("row %d: %v", rowNum+2, err))
			continue
		}
		if created {
			report.Created++
		} else {
			report.Merged++
		}
		i.log.DebugContext(ctx, "row imported",
			slog.String("word", word.Word), slog.Bool("created", created))
	}

	i.log.InfoContext(ctx, "import finished",
		slog.Int("processed", report.Processed),
		slog.Int("created", report.Created),
		slog.Int("merged", report.Merged),
		slog.Int("failed", report.Failed),
	)
	return report, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
