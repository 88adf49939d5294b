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

// WriteMatrix emits the per-phrase audit matrix for one lexicon: a row per
// document, a column per phrase. This is a pass-through diagnostic for
// inspecting which phrases drive a raw count; the summary table does not
// depend on it.
func WriteMatrix(w io.Writer, lex lexicon.Lexicon, results []scorer.Result) error {
	cw := csv.NewWriter(w)

	header := append([]string{"reg_id"}, lex.Phrases...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write matrix header: %w", err)
	}

	for _, res := range results {
		counts, ok := res.PerPhrase[lex.Name]
		if !ok {
			return fmt.Errorf("no per-phrase counts for %s (matrix not kept during scoring?)", res.ID)
		}
		row := make([]string, 0, len(counts)+1)
		row = append(row, res.ID)
		for _, n := range counts {
			row = append(row, strconv.Itoa(n))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write matrix row %s: %w", res.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteMatrices writes one matrix CSV per lexicon into dir, named
// matrix_<lexicon>.csv.
func WriteMatrices(dir string, lexicons []lexicon.Lexicon, results []scorer.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create matrix dir: %w", err)
	}
	for _, lex := range lexicons {
		path := filepath.Join(dir, "matrix_"+lex.Name+".csv")
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := WriteMatrix(f, lex, results); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
