package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Meta carries the corpus fields that cannot be derived from a document
// file itself. Entries come from an optional manifest CSV keyed by reg_id.
type Meta struct {
	LastAmended string
	Repealed    bool
}

// Options controls corpus building.
type Options struct {
	// Manifest overrides per-document metadata. Documents without an entry
	// fall back to the file's modification time and repealed=no.
	Manifest map[string]Meta

	// PDFFallback enables the pdftotext fallback for PDFs the Go library
	// cannot read.
	PDFFallback bool
}

// LoadManifest reads a metadata manifest: CSV with columns reg_id,
// last_amended, repealed.
func LoadManifest(path string) (map[string]Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read manifest header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"reg_id", "last_amended", "repealed"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("manifest missing column %q", required)
		}
	}

	manifest := make(map[string]Meta)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read manifest row: %w", err)
		}
		id := strings.TrimSpace(record[idx["reg_id"]])
		if id == "" {
			continue
		}
		repealed := strings.EqualFold(strings.TrimSpace(record[idx["repealed"]]), "yes")
		manifest[id] = Meta{
			LastAmended: strings.TrimSpace(record[idx["last_amended"]]),
			Repealed:    repealed,
		}
	}
	return manifest, nil
}

// BuildCorpus walks dir, extracts text from every supported file, and
// writes a corpus table to w in the shape the loader expects. Word counts
// are computed from the extracted text. Returns the number of documents
// written. Unsupported files are skipped; an extraction failure aborts the
// build, matching the pipeline's fail-fast policy.
func BuildCorpus(dir string, w io.Writer, opts Options, log *slog.Logger) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"reg_id", "full_text", "wordcount", "LastAmendedDate", "repealed"}); err != nil {
		return 0, fmt.Errorf("write corpus header: %w", err)
	}

	count := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsSupportedExtension(path) {
			return nil
		}

		ex, err := ForFile(path)
		if err != nil {
			return err
		}
		if pdf, ok := ex.(*PDFExtractor); ok {
			pdf.FallbackPdftotext = opts.PDFFallback
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		text, err := ex.Extract(f, filepath.Base(path))
		f.Close()
		if err != nil {
			return fmt.Errorf("extract %s: %w", path, err)
		}

		id := slugify(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		meta, ok := opts.Manifest[id]
		if !ok {
			info, err := d.Info()
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}
			meta = Meta{LastAmended: info.ModTime().Format("2006-01-02")}
		}

		repealed := "no"
		if meta.Repealed {
			repealed = "yes"
		}
		row := []string{
			id,
			text,
			strconv.Itoa(len(strings.Fields(text))),
			meta.LastAmended,
			repealed,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write corpus row %s: %w", id, err)
		}
		count++
		if log != nil {
			log.Info("ingested document", "doc_id", id, "file", path, "words", row[2])
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	cw.Flush()
	return count, cw.Error()
}

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9-]`)
	slugDashes  = regexp.MustCompile(`-+`)
)

// slugify converts a filename stem into a stable document identifier.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugInvalid.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 50 {
		s = s[:50]
	}
	return s
}
