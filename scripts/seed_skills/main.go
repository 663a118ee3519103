package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"alfredoptarigan/profile-screener/internal/extractor"
	"alfredoptarigan/profile-screener/internal/logger"
)

func main() {
	out := flag.StringP("out", "o", "./data/skills.csv", "vocabulary file to write (.csv, .yaml or .yml)")
	force := flag.Bool("force", false, "overwrite an existing file")
	flag.Parse()

	logger.Init(logger.Config{Level: "info", Format: "pretty"})
	log.Info().Str("path", *out).Msg("🚀 Seeding skills vocabulary...")

	if _, err := os.Stat(*out); err == nil && !*force {
		log.Fatal().Str("path", *out).Msg("❌ File already exists, pass --force to overwrite")
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to create output directory")
	}

	if err := writeVocabulary(*out, extractor.DefaultSkills); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to write vocabulary")
	}

	// Read back through the loader the server uses.
	skills, err := extractor.LoadVocabulary(*out)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Written vocabulary could not be loaded")
	}
	log.Info().Int("skills", len(skills)).Msg("✅ Skills vocabulary written")
}

func writeVocabulary(path string, skills []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(f)
		enc.SetIndent(2)
		if err := enc.Encode(map[string][]string{"skills": skills}); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		w := csv.NewWriter(f)
		if _, err := fmt.Fprintln(f, "# one skill per line, first column only"); err != nil {
			return err
		}
		for _, skill := range skills {
			if err := w.Write([]string{skill}); err != nil {
				return fmt.Errorf("failed to write csv: %w", err)
			}
		}
		w.Flush()
		return w.Error()
	}
}
