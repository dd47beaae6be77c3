package main

import (
	"log"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/seanblong/transcriptsearch/internal/config"
	"github.com/seanblong/transcriptsearch/internal/corpus"
	"github.com/spf13/pflag"
)

func main() {
	fs := pflag.NewFlagSet("transcriptsearch-corpuscheck", pflag.ExitOnError)
	strict := fs.Bool("strict", false, "Exit non-zero on issues as well as on unreadable files")

	cfg, err := config.Load("", fs, os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	fs.Usage = cfg.Usage

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()

	c := corpus.New(cfg.CorpusDir, cfg.Extension, true)
	files, err := c.List()
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot list corpus")
	}

	var failed, withIssues, segments int
	for _, f := range files {
		rep := c.Check(f)
		segments += rep.Segments

		ev := logger.Info()
		switch {
		case rep.Err != nil:
			failed++
			ev = logger.Error().Err(rep.Err)
		case len(rep.Issues) > 0:
			withIssues++
			ev = logger.Warn().Strs("issues", rep.Issues)
		}
		date := ""
		if f.Meta.Date != nil {
			date = *f.Meta.Date
		}
		ev.Str("file", f.Meta.Name).
			Str("title", f.Meta.Title).
			Str("source_id", f.Meta.SourceID).
			Str("date", date).
			Int("segments", rep.Segments).
			Msg("checked")
	}

	logger.Info().
		Str("corpus_dir", cfg.CorpusDir).
		Int("files", len(files)).
		Int("segments", segments).
		Int("unreadable", failed).
		Int("with_issues", withIssues).
		Msg("corpus check finished")

	if failed > 0 || (*strict && withIssues > 0) {
		os.Exit(1)
	}
}
