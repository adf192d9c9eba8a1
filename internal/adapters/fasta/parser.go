// Package fasta reads multi-FASTA files into name/nucleotide pairs.
package fasta

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bnema/dna-analyser-cli/internal/domain"
)

const maxLineBytes = 16 << 20

var ErrNoRecords = errors.New("no fasta records found")

type Parser struct{}

func (Parser) ParseFile(path string) ([]domain.FastaRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fasta file: %w", err)
	}
	defer func() { _ = file.Close() }()

	records, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

// Parse returns one record per '>' header, joining the sequence lines that
// follow it. Blank lines are skipped.
func Parse(r io.Reader) ([]domain.FastaRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		records []domain.FastaRecord
		current *domain.FastaRecord
		data    strings.Builder
		lineNo  int
	)
	flush := func() {
		if current == nil {
			return
		}
		current.Nucleotides = data.String()
		records = append(records, *current)
		data.Reset()
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			flush()
			current = &domain.FastaRecord{Name: strings.TrimSpace(line[1:])}
			continue
		}
		if current == nil {
			return nil, fmt.Errorf("line %d: sequence data before the first header", lineNo)
		}
		data.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read fasta: %w", err)
	}
	flush()

	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}
