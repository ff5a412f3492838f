// Package spreadsheet parses the two registration workbook layouts into
// normalized sensor registration records.
package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Workbook is a set of named sheets, each a grid of cell values.
type Workbook interface {
	SheetNames() []string
	Rows(sheet string) ([][]any, error)
}

func hasSheet(wb Workbook, name string) bool {
	return slices.Contains(wb.SheetNames(), name)
}

// Grid is an in-memory workbook.
type Grid map[string][][]any

func (g Grid) SheetNames() []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (g Grid) Rows(sheet string) ([][]any, error) {
	rows, ok := g[sheet]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}
	return rows, nil
}

// LoadCSVDir reads every .csv file in dir as a sheet named after the file.
func LoadCSVDir(dir string) (Grid, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	g := Grid{}
	for _, p := range paths {
		rows, err := readCSV(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		g[strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))] = rows
	}
	return g, nil
}

func readCSV(path string) ([][]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return toCells(records), nil
}

func toCells(records [][]string) [][]any {
	out := make([][]any, len(records))
	for i, rec := range records {
		row := make([]any, len(rec))
		for j, v := range rec {
			row[j] = v
		}
		out[i] = row
	}
	return out
}
