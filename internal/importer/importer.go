// Package importer provides CSV and Excel import functionality for box
// lists. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/loadwise/trailerpack/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Boxes    []model.Box
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	SKU      int
	Length   int
	Width    int
	Height   int
	Quantity int
	Rotation int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"sku":      {"sku", "id", "label", "name", "box", "item", "article", "ref", "reference"},
	"length":   {"length", "len", "l", "x"},
	"width":    {"width", "w", "y"},
	"height":   {"height", "h", "z", "depth"},
	"quantity": {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
	"rotation": {"rotation", "rotation_allowed", "rotate", "rotatable", "rot"},
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

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping. It
// performs case-insensitive matching against known aliases for each column
// role. Returns the mapping and true if a header was detected, or a default
// positional mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		SKU:      -1,
		Length:   -1,
		Width:    -1,
		Height:   -1,
		Quantity: -1,
		Rotation: -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					switch role {
					case "sku":
						if mapping.SKU == -1 {
							mapping.SKU = i
						}
					case "length":
						if mapping.Length == -1 {
							mapping.Length = i
						}
					case "width":
						if mapping.Width == -1 {
							mapping.Width = i
						}
					case "height":
						if mapping.Height == -1 {
							mapping.Height = i
						}
					case "quantity":
						if mapping.Quantity == -1 {
							mapping.Quantity = i
						}
					case "rotation":
						if mapping.Rotation == -1 {
							mapping.Rotation = i
						}
					}
				}
			}
		}
	}

	if !isHeader {
		// Positional fallback: SKU, Length, Width, Height, Quantity, Rotation
		return ColumnMapping{
			SKU:      0,
			Length:   1,
			Width:    2,
			Height:   3,
			Quantity: 4,
			Rotation: 5,
		}, false
	}

	return mapping, true
}

// parseRotation converts a rotation flag string to a boolean. It returns
// the value and whether the string was recognized.
func parseRotation(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true, true
	case "false", "no", "n", "0":
		return false, true
	case "", "-":
		return true, true
	default:
		return true, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a Box from a row using the given column mapping.
// Returns the box, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, boxCount int) (model.Box, string, string) {
	sku := getCell(row, mapping.SKU)
	if sku == "" {
		sku = fmt.Sprintf("BOX-%d", boxCount+1)
	}

	length, errMsg := parseDimension(row, mapping.Length, rowLabel, "length")
	if errMsg != "" {
		return model.Box{}, errMsg, ""
	}
	width, errMsg := parseDimension(row, mapping.Width, rowLabel, "width")
	if errMsg != "" {
		return model.Box{}, errMsg, ""
	}
	height, errMsg := parseDimension(row, mapping.Height, rowLabel, "height")
	if errMsg != "" {
		return model.Box{}, errMsg, ""
	}

	qtyStr := getCell(row, mapping.Quantity)
	if qtyStr == "" {
		return model.Box{}, fmt.Sprintf("%s: Missing quantity value", rowLabel), ""
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return model.Box{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
	}

	if length <= 0 || width <= 0 || height <= 0 || qty <= 0 {
		return model.Box{}, fmt.Sprintf("%s: Dimensions and quantity must be positive", rowLabel), ""
	}

	box := model.Box{
		SKU:             sku,
		Length:          length,
		Width:           width,
		Height:          height,
		Quantity:        qty,
		RotationAllowed: true,
	}

	var warning string
	rotStr := getCell(row, mapping.Rotation)
	if rotStr != "" {
		rot, ok := parseRotation(rotStr)
		if ok {
			box.RotationAllowed = rot
		} else {
			warning = fmt.Sprintf("%s: Unknown rotation flag '%s', defaulting to allowed", rowLabel, rotStr)
		}
	}

	return box, "", warning
}

// parseDimension parses one positive float cell, returning an error message
// on missing or invalid values.
func parseDimension(row []string, idx int, rowLabel, name string) (float64, string) {
	str := getCell(row, idx)
	if str == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, name)
	}
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, str)
	}
	return v, ""
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

// importFromRows converts raw rows into boxes, collecting per-row errors
// and warnings instead of aborting.
func importFromRows(rows [][]string, rowWord string, warnings []string) ImportResult {
	result := ImportResult{Warnings: warnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	dataRows := rows
	if hasHeader {
		dataRows = rows[1:]
	} else {
		result.Warnings = append(result.Warnings, "No header row detected, using positional columns")
	}

	for i, row := range dataRows {
		if isEmptyRow(row) {
			continue
		}
		rowNum := i + 1
		if hasHeader {
			rowNum++
		}
		rowLabel := fmt.Sprintf("%s %d", rowWord, rowNum)

		box, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Boxes))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Boxes = append(result.Boxes, box)
	}

	if len(result.Boxes) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No box rows found")
	}

	return result
}

// ImportCSV imports boxes from a CSV file. It automatically detects the
// delimiter and maps columns by header names. Supports comma, semicolon,
// tab, and pipe delimiters.
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
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
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

	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports boxes from a CSV reader with a specific
// delimiter. This is useful for testing or when the delimiter is already
// known.
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

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports boxes from an Excel (.xlsx) file. Reads the first
// sheet and auto-detects column mapping from headers.
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
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read sheet %q: %v", sheets[0], err))
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// ImportFile imports boxes from a file, dispatching on its extension.
func ImportFile(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return ImportExcel(path)
	default:
		return ImportCSV(path)
	}
}
