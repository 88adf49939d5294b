package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/regtext/lexindex/internal/lexicon"
	"github.com/regtext/lexindex/internal/scorer"
)

func sampleResult() scorer.Result {
	raw := make(map[string]int)
	per100 := make(map[string]float64)
	for _, name := range lexicon.Names {
		raw[name] = 0
		per100[name] = 0
	}
	raw["prescriptions"] = 1
	per100["prescriptions"] = 10
	raw["permissions"] = 1
	per100["permissions"] = 10

	return scorer.Result{
		ID:             "reg-001",
		WordCount:      10,
		LastAmended:    time.Date(2018, 1, 5, 0, 0, 0, 0, time.UTC),
		Raw:            raw,
		Per100:         per100,
		Prescriptivity: 1.0,
		AgeDays:        273,
	}
}

func TestWriteSummary_HeaderShape(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, []scorer.Result{sampleResult()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d records", len(records))
	}

	header := records[0]
	// 3 metadata columns + raw/per100 per lexicon + 2 composites.
	wantCols := 3 + 2*len(lexicon.Names) + 2
	if len(header) != wantCols {
		t.Fatalf("expected %d columns, got %d: %v", wantCols, len(header), header)
	}
	if header[0] != "reg_id" {
		t.Errorf("expected first column reg_id, got %q", header[0])
	}
	for _, col := range header {
		if col == "full_text" {
			t.Error("full_text must not appear in the summary table")
		}
	}
}

func TestWriteSummary_RowValues(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, []scorer.Result{sampleResult()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}
	header, row := records[0], records[1]
	byCol := make(map[string]string, len(header))
	for i, col := range header {
		byCol[col] = row[i]
	}

	checks := map[string]string{
		"reg_id":               "reg-001",
		"wordcount":            "10",
		"last_amended_date":    "2018-01-05",
		"prescriptions_raw":    "1",
		"prescriptions_per100": "10",
		"permissions_raw":      "1",
		"permissions_per100":   "10",
		"prescriptivity_score": "1",
		"age_days":             "273",
		"exceptions_raw":       "0",
	}
	for col, want := range checks {
		if got, ok := byCol[col]; !ok {
			t.Errorf("missing column %q", col)
		} else if got != want {
			t.Errorf("column %q: expected %q, got %q", col, want, got)
		}
	}
}

func TestWriteMatrix_RowsAndColumns(t *testing.T) {
	lex := lexicon.Lexicon{Name: "permissions", Phrases: []string{"may", "can"}}
	res := sampleResult()
	res.PerPhrase = map[string][]int{"permissions": {2, 0}}

	var buf bytes.Buffer
	if err := WriteMatrix(&buf, lex, []scorer.Result{res}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "reg_id,may,can" {
		t.Errorf("unexpected matrix header: %q", lines[0])
	}
	if lines[1] != "reg-001,2,0" {
		t.Errorf("unexpected matrix row: %q", lines[1])
	}
}

func TestWriteMatrix_MissingCountsIsError(t *testing.T) {
	lex := lexicon.Lexicon{Name: "permissions", Phrases: []string{"may"}}
	res := sampleResult() // PerPhrase not populated
	var buf bytes.Buffer
	if err := WriteMatrix(&buf, lex, []scorer.Result{res}); err == nil {
		t.Fatal("expected error when per-phrase counts were not kept")
	}
}
