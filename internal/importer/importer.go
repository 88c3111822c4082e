// Package importer loads rectangle sets from the solver's native text
// format and from CSV, Excel and DXF files. The text format is strict and
// fail-fast with line-numbered diagnostics; the spreadsheet formats are
// tolerant, accumulating per-row errors and warnings so a partially bad
// file can still be inspected.
package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/RectSelect/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of a tolerant import operation.
type ImportResult struct {
	Rects    []model.Rect
	Errors   []string
	Warnings []string
}

// ParseProblem reads the strict line-oriented format: the first non-empty
// line holds the rectangle count n (positive), and each of the next n
// non-empty lines holds four integers "xl yb xr yt". Content after the nth
// record is ignored. Any malformed record aborts the parse with the
// offending line number.
func ParseProblem(r io.Reader) ([]model.Rect, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	lineNum := 0
	n := -1
	var rects []model.Rect

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if n < 0 {
			v, err := strconv.Atoi(line)
			if err != nil || v <= 0 {
				return nil, fmt.Errorf("line %d: first line must be a positive integer n", lineNum)
			}
			n = v
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, fmt.Errorf("line %d: must have 4 numbers (xl yb xr yt)", lineNum)
		}
		var vals [4]int64
		for i, f := range fields {
			v, err := strconv.ParseInt(f, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid number %q", lineNum, f)
			}
			vals[i] = v
		}

		rect := model.NewRect(len(rects), vals[0], vals[1], vals[2], vals[3])
		if !rect.Valid() {
			return nil, fmt.Errorf("line %d: rectangle %d must satisfy xl<xr and yb<yt", lineNum, rect.Index)
		}
		rects = append(rects, rect)
		if len(rects) == n {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errors.New("first line must be a positive integer n")
	}
	if len(rects) != n {
		return nil, fmt.Errorf("expected %d rectangles, found %d", n, len(rects))
	}
	return rects, nil
}

// ImportFile loads rectangles from path, choosing the loader by extension.
// Unknown extensions are treated as the native text format.
func ImportFile(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ImportCSV(path)
	case ".xlsx", ".xlsm", ".xls":
		return ImportExcel(path)
	case ".dxf":
		return ImportDXF(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
		}
		defer f.Close()
		rects, err := ParseProblem(f)
		if err != nil {
			return ImportResult{Errors: []string{err.Error()}}
		}
		return ImportResult{Rects: rects}
	}
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	XL int
	YB int
	XR int
	YT int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"xl": {"xl", "x1", "left", "xmin", "x min", "x left"},
	"yb": {"yb", "y1", "bottom", "ymin", "y min", "y bottom"},
	"xr": {"xr", "x2", "right", "xmax", "x max", "x right"},
	"yt": {"yt", "y2", "top", "ymax", "y max", "y top"},
}

// DetectCSVDelimiter reads the file content and determines the most likely
// CSV delimiter. It tries comma, semicolon, tab, and pipe. The delimiter
// that produces the most consistent column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

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

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each
// column role. Returns the mapping and true if a header was detected, or
// the default positional mapping (xl yb xr yt) and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{XL: -1, YB: -1, XR: -1, YT: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "xl":
					if mapping.XL == -1 {
						mapping.XL = i
					}
				case "yb":
					if mapping.YB == -1 {
						mapping.YB = i
					}
				case "xr":
					if mapping.XR == -1 {
						mapping.XR = i
					}
				case "yt":
					if mapping.YT == -1 {
						mapping.YT = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{XL: 0, YB: 1, XR: 2, YT: 3}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a rectangle from a row using the given column mapping.
// Returns the rectangle and an error message ("" on success).
func parseRow(row []string, mapping ColumnMapping, rowLabel string, index int) (model.Rect, string) {
	var vals [4]int64
	names := [4]string{"xl", "yb", "xr", "yt"}
	cols := [4]int{mapping.XL, mapping.YB, mapping.XR, mapping.YT}

	for i := range vals {
		cell := getCell(row, cols[i])
		if cell == "" {
			return model.Rect{}, fmt.Sprintf("%s: Missing %s value", rowLabel, names[i])
		}
		v, err := strconv.ParseInt(cell, 10, 64)
		if err != nil {
			return model.Rect{}, fmt.Sprintf("%s: Invalid %s '%s' (integer required)", rowLabel, names[i], cell)
		}
		vals[i] = v
	}

	rect := model.NewRect(index, vals[0], vals[1], vals[2], vals[3])
	if !rect.Valid() {
		return model.Rect{}, fmt.Sprintf("%s: Corners must satisfy xl<xr and yb<yt", rowLabel)
	}
	return rect, ""
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

// ImportCSV imports rectangles from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
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
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports rectangles from a CSV reader with a specific
// delimiter. Useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports rectangles from an Excel (.xlsx, .xls) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
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

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for CSV and Excel data.
// It detects headers, maps columns, and parses each row into rectangles.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.XL == -1 {
			missing = append(missing, "xl")
		}
		if mapping.YB == -1 {
			missing = append(missing, "yb")
		}
		if mapping.XR == -1 {
			missing = append(missing, "xr")
		}
		if mapping.YT == -1 {
			missing = append(missing, "yt")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 4 {
		// No recognized header: if the first row is not numeric it is
		// probably an unknown header, skip it but keep positional mapping.
		if _, err := strconv.ParseInt(strings.TrimSpace(rows[0][0]), 10, 64); err != nil {
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
		rect, errMsg := parseRow(row, mapping, rowLabel, len(result.Rects))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Rects = append(result.Rects, rect)
	}

	return result
}
