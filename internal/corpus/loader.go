package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Required source-table columns. Header matching is case-insensitive so
// exports from other tools ("LastAmendedDate" vs "lastamendeddate") load
// without a rename pass.
const (
	colID       = "reg_id"
	colText     = "full_text"
	colWords    = "wordcount"
	colAmended  = "lastamendeddate"
	colRepealed = "repealed"
)

// Load reads a corpus table from r. Every row must carry the required
// columns; a missing or malformed field aborts the load with a FormatError
// naming the offending document. Dates are kept raw here — Clean parses and
// canonicalizes them.
func Load(r io.Reader) ([]Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read corpus header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colID, colText, colWords, colAmended, colRepealed} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("corpus table missing column %q", required)
		}
	}

	var docs []Document
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read corpus row: %w", err)
		}

		id := strings.TrimSpace(record[idx[colID]])
		if id == "" {
			return nil, &FormatError{ID: fmt.Sprintf("row %d", len(docs)+2), Field: colID, Reason: "empty"}
		}

		wc, err := parseWordCount(record[idx[colWords]])
		if err != nil {
			return nil, &FormatError{ID: id, Field: colWords, Reason: err.Error()}
		}

		repealed, err := parseRepealed(record[idx[colRepealed]])
		if err != nil {
			return nil, &FormatError{ID: id, Field: colRepealed, Reason: err.Error()}
		}

		docs = append(docs, Document{
			ID:        id,
			Text:      record[idx[colText]],
			WordCount: wc,
			RawDate:   strings.TrimSpace(record[idx[colAmended]]),
			Repealed:  repealed,
		})
	}

	return docs, nil
}

// LoadFile reads a corpus table from a CSV file on disk.
func LoadFile(path string) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// parseWordCount accepts integer or float renderings ("1204", "1204.0")
// since upstream exports are inconsistent about numeric columns.
func parseWordCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty")
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative word count %d", n)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if f < 0 {
		return 0, fmt.Errorf("negative word count %v", f)
	}
	return int(f), nil
}

func parseRepealed(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1":
		return true, nil
	case "no", "n", "false", "0", "":
		return false, nil
	}
	return false, fmt.Errorf("unrecognized repealed value %q", s)
}
