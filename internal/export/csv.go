package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/regtext/lexindex/internal/lexicon"
	"github.com/regtext/lexindex/internal/scorer"
)

// Header returns the summary column order: document metadata (full text
// deliberately dropped), raw count and per-100-word index for each lexicon
// in canonical order, then the two composite columns.
func Header() []string {
	cols := []string{"reg_id", "wordcount", "last_amended_date"}
	for _, name := range lexicon.Names {
		cols = append(cols, name+"_raw", name+"_per100")
	}
	cols = append(cols, "prescriptivity_score", "age_days")
	return cols
}

// WriteSummary emits the flat result table, one row per document. Pure
// serialization: every value was computed upstream.
func WriteSummary(w io.Writer, results []scorer.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, res := range results {
		row := []string{
			res.ID,
			strconv.Itoa(res.WordCount),
			res.LastAmended.Format("2006-01-02"),
		}
		for _, name := range lexicon.Names {
			row = append(row,
				strconv.Itoa(res.Raw[name]),
				formatFloat(res.Per100[name]),
			)
		}
		row = append(row,
			formatFloat(res.Prescriptivity),
			strconv.Itoa(res.AgeDays),
		)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", res.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSummaryFile writes the summary table to path, creating parent
// directories as needed.
func WriteSummaryFile(path string, results []scorer.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary: %w", err)
	}
	if err := WriteSummary(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
