package api

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"

	"github.com/go-chi/chi/v5"
)

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// handleRun serves the run summary JSON written by the pipeline.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(s.cfg.ResultsDir, "summary.csv.run.json")
	data, err := os.ReadFile(path)
	if err != nil {
		jsonError(w, "no run summary found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// handleResults serves the result table as JSON rows keyed by column name.
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(s.cfg.ResultsDir, "summary.csv")
	f, err := os.Open(path)
	if err != nil {
		jsonError(w, "no results found", http.StatusNotFound)
		return
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		jsonError(w, "results table unreadable", http.StatusInternalServerError)
		return
	}

	rows := []map[string]string{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			jsonError(w, "results table unreadable", http.StatusInternalServerError)
			return
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"count":   len(rows),
		"results": rows,
	})
}

var lexiconNameRe = regexp.MustCompile(`^[a-z]+$`)

// handleMatrix serves a per-phrase audit matrix CSV as-is.
func (s *Server) handleMatrix(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "lexicon")
	if !lexiconNameRe.MatchString(name) {
		jsonError(w, "invalid lexicon name", http.StatusBadRequest)
		return
	}

	path := filepath.Join(s.cfg.ResultsDir, "matrices", "matrix_"+name+".csv")
	f, err := os.Open(path)
	if err != nil {
		jsonError(w, "no matrix found (was the run executed with matrices enabled?)", http.StatusNotFound)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "text/csv")
	io.Copy(w, f)
}
