// Package importer reads batches of calendar configurations from CSV and
// Excel spreadsheets, and reads generated DXF drawings back for checking.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/seasoncut/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Jobs     []model.Job
	Errors   []string
	Warnings []string
}

// ColumnMapping maps job fields to their column indices, -1 when absent.
type ColumnMapping struct {
	Name      int
	Size      int
	Material  int
	Thickness int
	Rows      int
	Cols      int
	Guide     int
	Holes     int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":      {"name", "label", "job", "title", "calendar"},
	"size":      {"size", "inches", "diagonal", "size (in)"},
	"material":  {"material", "wood", "species"},
	"thickness": {"thickness", "thick", "t", "stock", "thickness (mm)"},
	"rows":      {"rows", "row", "grid rows"},
	"cols":      {"cols", "columns", "col", "grid cols", "grid columns"},
	"guide":     {"guide", "assembly guide", "include guide"},
	"holes":     {"holes", "mounting holes", "mounting"},
}

// positionalMapping is used when the first row is not a header.
var positionalMapping = ColumnMapping{Name: 0, Size: 1, Material: 2, Thickness: 3, Rows: 4, Cols: 5, Guide: 6, Holes: 7}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	best := ','
	bestScore := 0

	for _, delim := range []rune{',', ';', '\t', '|'} {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}
		if weighted := score*10 + firstCols; weighted > bestScore {
			bestScore = weighted
			best = delim
		}
	}
	return best
}

// DetectColumns examines a header row and returns a ColumnMapping. It
// reports false and the positional mapping when no header was recognised.
func DetectColumns(row []string) (ColumnMapping, bool) {
	m := ColumnMapping{Name: -1, Size: -1, Material: -1, Thickness: -1, Rows: -1, Cols: -1, Guide: -1, Holes: -1}
	fields := map[string]*int{
		"name": &m.Name, "size": &m.Size, "material": &m.Material, "thickness": &m.Thickness,
		"rows": &m.Rows, "cols": &m.Cols, "guide": &m.Guide, "holes": &m.Holes,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if *fields[role] == -1 {
						*fields[role] = i
					}
				}
			}
		}
	}

	if !isHeader {
		return positionalMapping, false
	}
	return m, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseBool accepts the spellings spreadsheets commonly use for flags.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "yes", "y", "true", "1", "x", "on":
		return true, true
	case "no", "n", "false", "0", "off", "-":
		return false, true
	}
	return false, false
}

// parseSize accepts "20", "20in", "20\"" and "20 inch".
func parseSize(s string) model.Size {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, suffix := range []string{"inches", "inch", "in", "\""} {
		s = strings.TrimSuffix(s, suffix)
	}
	return model.Size(strings.TrimSpace(s))
}

// parseRow builds a job from one row. Missing optional cells fall back to
// the defaults; errors name the row.
func parseRow(row []string, m ColumnMapping, rowLabel string, defaults model.LaserCutOptions, jobCount int) (model.Job, []string, []string) {
	var errs, warns []string
	opts := defaults

	name := getCell(row, m.Name)
	if name == "" {
		name = fmt.Sprintf("Calendar %d", jobCount+1)
	}

	if v := getCell(row, m.Size); v != "" {
		opts.Size = parseSize(v)
	}
	if v := getCell(row, m.Material); v != "" {
		opts.Material = model.Material(strings.ToLower(v))
	}
	if v := getCell(row, m.Thickness); v != "" {
		t, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.ToLower(v), "mm")), 64)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: Invalid thickness '%s'", rowLabel, v))
		}
		opts.Thickness = t
	}
	for _, f := range []struct {
		idx   int
		label string
		dst   *int
	}{
		{m.Rows, "rows", &opts.TileGridSize.Rows},
		{m.Cols, "cols", &opts.TileGridSize.Cols},
	} {
		v := getCell(row, f.idx)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, f.label, v))
			continue
		}
		*f.dst = n
	}
	for _, f := range []struct {
		idx   int
		label string
		dst   *bool
	}{
		{m.Guide, "guide", &opts.IncludeAssemblyGuide},
		{m.Holes, "holes", &opts.IncludeMountingHoles},
	} {
		v := getCell(row, f.idx)
		if v == "" {
			continue
		}
		b, ok := parseBool(v)
		if !ok {
			warns = append(warns, fmt.Sprintf("%s: Unknown %s value '%s', keeping default", rowLabel, f.label, v))
			continue
		}
		*f.dst = b
	}

	if len(errs) > 0 {
		return model.Job{}, errs, warns
	}
	if err := model.ValidateOptions(opts); err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			errs = append(errs, fmt.Sprintf("%s: %s", rowLabel, line))
		}
		return model.Job{}, errs, warns
	}
	return model.NewJob(name, opts), nil, warns
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports jobs from a CSV file. It automatically detects the
// delimiter and maps columns by header names. Cells left empty take their
// value from defaults.
func ImportCSV(path string, defaults model.LaserCutOptions) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	result = ImportCSVFromReader(bytes.NewReader(data), delimiter, defaults)
	result.Warnings = append(warnings, result.Warnings...)
	return result
}

// ImportCSVFromReader imports jobs from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, defaults model.LaserCutOptions) ImportResult {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	if len(records) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}
	return importFromRows(records, "Line", defaults)
}

// ImportExcel imports jobs from the first sheet of an Excel (.xlsx) file.
func ImportExcel(path string, defaults model.LaserCutOptions) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", defaults)
}

// ImportFile dispatches on the file extension.
func ImportFile(path string, defaults model.LaserCutOptions) ImportResult {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
		return ImportExcel(path, defaults)
	}
	return ImportCSV(path, defaults)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, defaults model.LaserCutOptions) ImportResult {
	result := ImportResult{}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	} else if len(rows[0]) >= 2 {
		if parseSize(rows[0][1]).Inches() == 0 {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		job, errs, warns := parseRow(row, mapping, rowLabel, defaults, len(result.Jobs))
		result.Warnings = append(result.Warnings, warns...)
		if len(errs) > 0 {
			result.Errors = append(result.Errors, errs...)
			continue
		}
		result.Jobs = append(result.Jobs, job)
	}

	if len(result.Jobs) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}
	return result
}
