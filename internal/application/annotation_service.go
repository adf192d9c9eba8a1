package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/bnema/dna-analyser-cli/internal/ports"
	"github.com/rs/zerolog/log"
)

// AnnotationService fetches and reads NCBI feature tables. It needs no
// session.
type AnnotationService struct {
	source ports.AnnotationSource
	parser ports.AnnotationParser
}

func NewAnnotationService(source ports.AnnotationSource, parser ports.AnnotationParser) (*AnnotationService, error) {
	if source == nil {
		return nil, errors.New("annotation service needs a source")
	}
	if parser == nil {
		return nil, errors.New("annotation service needs a parser")
	}
	return &AnnotationService{source: source, parser: parser}, nil
}

// Download stores the feature table of ncbiID as dir/<name>.txt, naming the
// file after the id when name is empty.
func (s *AnnotationService) Download(ctx context.Context, ncbiID, dir, name string) (string, error) {
	ncbiID = strings.TrimSpace(ncbiID)
	if name == "" {
		name = ncbiID
	}
	if dir == "" {
		dir = "."
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", &domain.ValidationError{Op: "annotation download", Err: fmt.Errorf("%s is not a directory", dir)}
	}

	table, err := s.source.FeatureTable(ctx, ncbiID)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, domain.NormalizeName(name)+".txt")
	if err := os.WriteFile(path, []byte(table), 0o644); err != nil {
		return "", fmt.Errorf("write feature table: %w", err)
	}
	log.Info().Str("ncbi_id", ncbiID).Str("path", path).Msg("feature table saved")
	return path, nil
}

// Fetch downloads and parses a feature table without keeping it.
func (s *AnnotationService) Fetch(ctx context.Context, ncbiID string) ([]domain.Feature, error) {
	table, err := s.source.FeatureTable(ctx, ncbiID)
	if err != nil {
		return nil, err
	}
	features, err := s.parser.ParseFeatureTable(strings.NewReader(table))
	if err != nil {
		return nil, fmt.Errorf("parse feature table %s: %w", ncbiID, err)
	}
	return features, nil
}

func (s *AnnotationService) Load(path string) ([]domain.Feature, error) {
	return s.parser.ParseFile(path)
}
