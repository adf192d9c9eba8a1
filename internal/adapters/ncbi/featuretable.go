package ncbi

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bnema/dna-analyser-cli/internal/domain"
)

const maxLineBytes = 1 << 20

// FeatureTableParser reads the five-column NCBI feature table format. Only
// interval lines are kept; qualifier lines are skipped.
type FeatureTableParser struct{}

func (FeatureTableParser) ParseFile(path string) ([]domain.Feature, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feature table: %w", err)
	}
	defer func() { _ = file.Close() }()

	features, err := FeatureTableParser{}.ParseFeatureTable(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return features, nil
}

// ParseFeatureTable returns one feature per interval line. A line with a
// start, a stop and a key opens a feature; a following line with only start
// and stop adds another interval to the same key. Partial markers (< and >)
// are dropped.
func (FeatureTableParser) ParseFeatureTable(r io.Reader) ([]domain.Feature, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		features []domain.Feature
		current  string
		lineNo   int
	)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, ">") {
			continue
		}

		fields := strings.Split(line, "\t")
		switch len(fields) {
		case 3:
			current = strings.TrimSpace(fields[2])
		case 2:
			if current == "" {
				return nil, fmt.Errorf("line %d: interval before any feature key", lineNo)
			}
		default:
			continue
		}

		start, err := parseLocation(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: start: %w", lineNo, err)
		}
		stop, err := parseLocation(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: stop: %w", lineNo, err)
		}
		features = append(features, domain.NewFeature(start, stop, current))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read feature table: %w", err)
	}
	return features, nil
}

func parseLocation(field string) (int64, error) {
	return strconv.ParseInt(strings.Trim(strings.TrimSpace(field), "<>"), 10, 64)
}
