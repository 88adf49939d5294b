package lexicon

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Lexicon is a named list of phrases scored against document text.
// Phrases are stored lowercased; matching downstream is case-insensitive
// because the corpus text is case-folded at load.
type Lexicon struct {
	Name    string
	Phrases []string
}

// Names lists the seven lexicons in their canonical order. Output columns
// follow this order, so it is fixed rather than map-iteration dependent.
var Names = []string{
	"prescriptions",
	"permissions",
	"exceptions",
	"discretions",
	"jargon",
	"crossrefs",
	"outdated",
}

// LoadError indicates a word-list file that is missing or malformed.
type LoadError struct {
	Name string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("lexicon %q (%s): %v", e.Name, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Read parses a word-list from r. The expected shape is a CSV with a
// "words" column, one phrase per row; multi-word phrases are fine. Extra
// columns are ignored.
func Read(name string, r io.Reader) (Lexicon, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return Lexicon{}, fmt.Errorf("read header: %w", err)
	}
	wordsIdx := -1
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), "words") {
			wordsIdx = i
			break
		}
	}
	if wordsIdx < 0 {
		return Lexicon{}, fmt.Errorf("no %q column in header %v", "words", header)
	}

	lex := Lexicon{Name: name}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Lexicon{}, fmt.Errorf("read row: %w", err)
		}
		phrase := strings.ToLower(strings.TrimSpace(record[wordsIdx]))
		if phrase != "" {
			lex.Phrases = append(lex.Phrases, phrase)
		}
	}
	if len(lex.Phrases) == 0 {
		return Lexicon{}, fmt.Errorf("no phrases")
	}
	return lex, nil
}

// LoadFile reads a word-list CSV from disk.
func LoadFile(name, path string) (Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return Lexicon{}, &LoadError{Name: name, Path: path, Err: err}
	}
	defer f.Close()

	lex, err := Read(name, f)
	if err != nil {
		return Lexicon{}, &LoadError{Name: name, Path: path, Err: err}
	}
	return lex, nil
}

// LoadSet builds the full seven-lexicon set. Each canonical name uses the
// configured file when a path is given, and the built-in default list
// otherwise. An unknown name in paths is an error so a typoed config key
// does not silently fall back to defaults.
func LoadSet(paths map[string]string) ([]Lexicon, error) {
	known := make(map[string]bool, len(Names))
	for _, name := range Names {
		known[name] = true
	}
	for name := range paths {
		if !known[name] {
			return nil, fmt.Errorf("unknown lexicon %q", name)
		}
	}

	set := make([]Lexicon, 0, len(Names))
	for _, name := range Names {
		if path, ok := paths[name]; ok && path != "" {
			lex, err := LoadFile(name, path)
			if err != nil {
				return nil, err
			}
			set = append(set, lex)
			continue
		}
		set = append(set, Default(name))
	}
	return set, nil
}
