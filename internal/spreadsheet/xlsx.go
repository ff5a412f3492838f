package spreadsheet

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// XLSX adapts an excelize workbook to Workbook. Cells formatted as dates
// are returned as time.Time, every other cell as its displayed text.
type XLSX struct {
	f *excelize.File
	// dateStyles caches whether a style index formats a date.
	dateStyles map[int]bool
}

func OpenXLSX(path string) (*XLSX, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return newXLSX(f), nil
}

func ReadXLSX(r io.Reader) (*XLSX, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	return newXLSX(f), nil
}

func newXLSX(f *excelize.File) *XLSX {
	return &XLSX{f: f, dateStyles: map[int]bool{}}
}

func (x *XLSX) SheetNames() []string {
	return x.f.GetSheetList()
}

func (x *XLSX) Rows(sheet string) ([][]any, error) {
	if !hasSheet(x, sheet) {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}
	rows, err := x.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("rows of %q: %w", sheet, err)
	}

	cells := toCells(rows)
	for r, row := range rows {
		for c, text := range row {
			if text == "" {
				continue
			}
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			t, ok, err := x.date(sheet, name)
			if err != nil {
				return nil, fmt.Errorf("cell %s of %q: %w", name, sheet, err)
			}
			if ok {
				cells[r][c] = t
			}
		}
	}
	return cells, nil
}

// date returns the value of a date formatted numeric cell. Text typed into
// a date formatted cell is not a date.
func (x *XLSX) date(sheet, cell string) (time.Time, bool, error) {
	idx, err := x.f.GetCellStyle(sheet, cell)
	if err != nil || idx == 0 {
		return time.Time{}, false, err
	}
	isDate, ok := x.dateStyles[idx]
	if !ok {
		style, err := x.f.GetStyle(idx)
		if err != nil {
			return time.Time{}, false, err
		}
		isDate = isDateFormat(style)
		x.dateStyles[idx] = isDate
	}
	if !isDate {
		return time.Time{}, false, nil
	}

	raw, err := x.f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return time.Time{}, false, err
	}
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return time.Time{}, false, nil
	}
	t, err := excelize.ExcelDateToTime(serial, x.date1904())
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

func (x *XLSX) date1904() bool {
	props, err := x.f.GetWorkbookProps()
	return err == nil && props.Date1904 != nil && *props.Date1904
}

// builtinDateFormats are the predefined number format ids that render a
// date.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 36: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

var formatLiterals = regexp.MustCompile(`"[^"]*"|\[[^\]]*\]|\\.`)

func isDateFormat(style *excelize.Style) bool {
	if style.CustomNumFmt != nil {
		code := strings.ToLower(formatLiterals.ReplaceAllString(*style.CustomNumFmt, ""))
		return strings.ContainsAny(code, "dy") || strings.Contains(code, "mmm")
	}
	return builtinDateFormats[style.NumFmt]
}

func (x *XLSX) Close() error {
	return x.f.Close()
}
