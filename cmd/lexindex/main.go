package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/regtext/lexindex/internal/config"
	"github.com/regtext/lexindex/internal/ingest"
	"github.com/regtext/lexindex/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Flags override environment configuration.
	corpusPath := flag.String("corpus", cfg.CorpusPath, "path to the corpus CSV")
	outputPath := flag.String("out", cfg.OutputPath, "path for the summary CSV")
	referenceDate := flag.String("reference", cfg.ReferenceDate.Format("2006-01-02"), "as-of date for age calculation (YYYY-MM-DD)")
	minWords := flag.Int("min-words", cfg.MinWords, "minimum word count filter threshold")
	noFilter := flag.Bool("no-filter", !cfg.FilterShort, "disable the minimum word count filter")
	langCheck := flag.Bool("lang-check", cfg.LangCheck, "warn on documents that do not look like English")
	keepMatrix := flag.Bool("matrix", cfg.KeepMatrix, "write per-phrase audit matrices")
	matchWords := flag.Bool("match-words", cfg.MatchWords, "count phrases at word boundaries instead of as substrings")
	concurrency := flag.Int("concurrency", cfg.Concurrency, "documents scored at once")
	buildDir := flag.String("build-corpus", "", "build the corpus CSV from raw documents in this directory, then exit")
	manifestPath := flag.String("manifest", "", "metadata manifest for -build-corpus (reg_id, last_amended, repealed)")
	flag.Parse()

	cfg.CorpusPath = *corpusPath
	cfg.OutputPath = *outputPath
	cfg.SummaryPath = cfg.OutputPath + ".run.json"
	cfg.MinWords = *minWords
	cfg.FilterShort = !*noFilter
	cfg.LangCheck = *langCheck
	cfg.KeepMatrix = *keepMatrix
	cfg.MatchWords = *matchWords
	cfg.Concurrency = *concurrency

	ref, err := time.Parse("2006-01-02", *referenceDate)
	if err != nil {
		log.Error("invalid reference date", "value", *referenceDate, "error", err)
		os.Exit(1)
	}
	cfg.ReferenceDate = ref

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if *buildDir != "" {
		buildCorpus(*buildDir, *manifestPath, cfg.CorpusPath, log)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("interrupted, aborting run")
		cancel()
	}()

	p := pipeline.New(cfg, log)
	run, err := p.Execute(ctx)
	if err != nil {
		log.Error("run failed", "run_id", run.ID, "error", err)
		os.Exit(1)
	}
	log.Info("run complete", "run_id", run.ID, "output", cfg.OutputPath)
}

func buildCorpus(dir, manifestPath, outPath string, log *slog.Logger) {
	opts := ingest.Options{PDFFallback: true}
	if manifestPath != "" {
		manifest, err := ingest.LoadManifest(manifestPath)
		if err != nil {
			log.Error("manifest load failed", "error", err)
			os.Exit(1)
		}
		opts.Manifest = manifest
	}

	f, err := os.Create(outPath)
	if err != nil {
		log.Error("corpus create failed", "path", outPath, "error", err)
		os.Exit(1)
	}
	n, err := ingest.BuildCorpus(dir, f, opts, log)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		log.Error("corpus build failed", "error", err)
		os.Exit(1)
	}
	log.Info("corpus built", "documents", n, "path", outPath)
}
