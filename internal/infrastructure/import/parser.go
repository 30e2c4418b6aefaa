package csvimport

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Parser reads a CSV file with a header row and yields records whose
// fields are addressed by column name. The parser strips a UTF-8 BOM
// and rejects files that are not valid UTF-8.
type Parser struct {
	reader    *csv.Reader
	headers   []string
	headerMap map[string]int
	row       int // last row read, 1-based, header is row 1
}

// Record is one data row keyed by normalized header name
type Record struct {
	Row    int
	fields map[string]string
}

// Get returns the trimmed value of a column, empty when absent
func (r Record) Get(column string) string {
	return r.fields[column]
}

// NewParser creates a Parser and reads the header row.
// Column names are lower-cased and trimmed.
func NewParser(r io.Reader) (*Parser, error) {
	buf := bufio.NewReader(r)

	// Strip UTF-8 BOM when present
	if peek, err := buf.Peek(3); err == nil &&
		len(peek) == 3 && peek[0] == 0xEF && peek[1] == 0xBB && peek[2] == 0xBF {
		_, _ = buf.Discard(3)
	}

	cr := csv.NewReader(buf)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	headers, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	p := &Parser{
		reader:    cr,
		headers:   make([]string, len(headers)),
		headerMap: make(map[string]int, len(headers)),
		row:       1,
	}
	for i, h := range headers {
		name := strings.ToLower(strings.TrimSpace(h))
		if !utf8.ValidString(name) {
			return nil, ErrInvalidEncoding
		}
		p.headers[i] = name
		p.headerMap[name] = i
	}
	return p, nil
}

// RequireColumns verifies that every named column is present
func (p *Parser) RequireColumns(columns ...string) error {
	var missing []string
	for _, c := range columns {
		if _, ok := p.headerMap[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required column(s): %s", strings.Join(missing, ", "))
	}
	return nil
}

// HasColumn reports whether the header contains the column
func (p *Parser) HasColumn(column string) bool {
	_, ok := p.headerMap[column]
	return ok
}

// Next reads the next data row. It returns io.EOF when the file is
// exhausted. Rows that cannot be parsed as CSV return a RowError.
func (p *Parser) Next() (Record, error) {
	fields, err := p.reader.Read()
	if err == io.EOF {
		return Record{}, io.EOF
	}
	p.row++
	if err != nil {
		return Record{}, RowError{
			Row:     p.row,
			Code:    ErrCodeMalformedRow,
			Message: err.Error(),
		}
	}

	rec := Record{Row: p.row, fields: make(map[string]string, len(p.headers))}
	for name, idx := range p.headerMap {
		if idx < len(fields) {
			value := strings.TrimSpace(fields[idx])
			if !utf8.ValidString(value) {
				return Record{}, RowError{
					Row:     p.row,
					Column:  name,
					Code:    ErrCodeInvalidEncoding,
					Message: "value is not valid UTF-8",
				}
			}
			rec.fields[name] = value
		}
	}
	return rec, nil
}
