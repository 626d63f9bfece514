// Package transcript reads transcript collections: CSV files with one row
// per utterance, keyed by an identifier column (usually the audio path).
package transcript

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Item is one utterance: its identifier and transcript text.
type Item struct {
	ID   string
	Text string
}

// Columns names the identifier and text columns of a transcript file.
type Columns struct {
	ID   string
	Text string
}

// DefaultColumns are the column names used by submission and split files.
var DefaultColumns = Columns{ID: "path", Text: "sentence"}

const utf8BOM = "\xef\xbb\xbf"

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("transcript: missing column")

// ReadCSV reads the transcript file at path.
func ReadCSV(path string, cols Columns) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("transcript: open %q: %w", path, err)
	}
	defer f.Close()

	items, err := Parse(f, cols)
	if err != nil {
		return nil, fmt.Errorf("transcript: read %q: %w", path, err)
	}
	return items, nil
}

// Parse decodes comma-separated transcripts from r. The first record is the
// header. Rows keep their file order.
func Parse(r io.Reader, cols Columns) ([]Item, error) {
	if cols.ID == "" {
		cols.ID = DefaultColumns.ID
	}
	if cols.Text == "" {
		cols.Text = DefaultColumns.Text
	}

	br := bufio.NewReader(r)
	if bom, err := br.Peek(len(utf8BOM)); err == nil && string(bom) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file has no %q column", ErrMissingColumn, cols.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	idCol, textCol := -1, -1
	for i, cell := range header {
		name := strings.TrimSpace(cell)
		switch {
		case name == cols.ID && idCol < 0:
			idCol = i
		case name == cols.Text && textCol < 0:
			textCol = i
		}
	}
	if idCol < 0 {
		return nil, fmt.Errorf("%w %q", ErrMissingColumn, cols.ID)
	}
	if textCol < 0 {
		return nil, fmt.Errorf("%w %q", ErrMissingColumn, cols.Text)
	}

	var items []Item
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if idCol >= len(record) || textCol >= len(record) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected at least %d fields, got %d", line, max(idCol, textCol)+1, len(record))
		}
		items = append(items, Item{ID: record[idCol], Text: record[textCol]})
	}
	return items, nil
}
