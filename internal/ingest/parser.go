package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// RawRow is one data row keyed by header column name.
// Line is the 1-based position of the row below the header, counting
// blank and empty lines the way a spreadsheet does.
type RawRow struct {
	Line   int
	Fields map[string]string
}

// Get returns the value under column, "" when the row has no such column.
func (r RawRow) Get(column string) string {
	return r.Fields[column]
}

// Parser turns uploaded CSV bytes into header-keyed rows.
type Parser struct {
	// MaxRows caps the number of data rows; 0 means no cap.
	MaxRows int
}

// Parse decodes data and returns its rows in file order.
// The first record is the header. Rows shorter than the header get empty
// values for the missing columns and extra trailing values are dropped.
// Rows whose values are all blank are skipped. Any malformed record fails
// the whole parse; no partial result is returned.
func (p *Parser) Parse(data []byte) ([]RawRow, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, &Error{Kind: ErrStructuralParse, Err: err}
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, &Error{Kind: ErrStructuralParse, Err: ErrMissingHeader}
	}
	if err != nil {
		return nil, &Error{Kind: ErrStructuralParse, Err: err}
	}
	columns, err := normalizeHeader(header)
	if err != nil {
		return nil, err
	}
	headerLine, _ := r.FieldPos(0)

	var rows []RawRow
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			perr := &Error{Kind: ErrStructuralParse, Err: err}
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) && csvErr.StartLine > headerLine {
				perr.Row = csvErr.StartLine - headerLine
			}
			return nil, perr
		}
		// numbered by file line so empty lines count like in a spreadsheet
		startLine, _ := r.FieldPos(0)
		line := startLine - headerLine

		if isBlank(record) {
			continue
		}
		if p.MaxRows > 0 && len(rows) >= p.MaxRows {
			return nil, &Error{Kind: ErrStructuralParse, Row: line, Err: fmt.Errorf("%w: limit is %d", ErrTooManyRows, p.MaxRows)}
		}

		fields := make(map[string]string, len(columns))
		for i, col := range columns {
			if col == "" {
				continue
			}
			if i < len(record) {
				fields[col] = record[i]
			} else {
				fields[col] = ""
			}
		}
		rows = append(rows, RawRow{Line: line, Fields: fields})
	}

	return rows, nil
}

// decodeText strips a UTF-8 BOM and converts EUC-KR input, which is what
// Korean Excel writes by default, to UTF-8.
func decodeText(data []byte) ([]byte, error) {
	if utf8.Valid(data) {
		return bytes.TrimPrefix(data, utf8BOM), nil
	}
	decoded, err := korean.EUCKR.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode EUC-KR input: %w", err)
	}
	// the decoder substitutes U+FFFD for bytes that are not EUC-KR either
	if bytes.ContainsRune(decoded, utf8.RuneError) {
		return nil, fmt.Errorf("%w: input is neither UTF-8 nor EUC-KR", ErrInvalidEncoding)
	}
	return decoded, nil
}

func normalizeHeader(header []string) ([]string, error) {
	columns := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	nonEmpty := 0
	for i, h := range header {
		col := strings.TrimSpace(h)
		columns[i] = col
		if col == "" {
			continue
		}
		if seen[col] {
			return nil, &Error{Kind: ErrStructuralParse, Field: col, Err: ErrDuplicateHeader}
		}
		seen[col] = true
		nonEmpty++
	}
	if nonEmpty == 0 {
		return nil, &Error{Kind: ErrStructuralParse, Err: ErrMissingHeader}
	}
	return columns, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
