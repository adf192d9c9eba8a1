package fasta

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMultiFasta(t *testing.T) {
	input := ">chr1 homo sapiens\nATTC\nGGGA\n\n>chr2\nTTTT\n>empty\n"

	records, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []domain.FastaRecord{
		{Name: "chr1 homo sapiens", Nucleotides: "ATTCGGGA"},
		{Name: "chr2", Nucleotides: "TTTT"},
		{Name: "empty", Nucleotides: ""},
	}, records)
}

func TestParseRejectsDataBeforeHeader(t *testing.T) {
	_, err := Parse(strings.NewReader("ATTC\n>chr1\nGG\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader("\n\n"))
	require.ErrorIs(t, err, ErrNoRecords)
}

func TestParserParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seqs.fasta")
	require.NoError(t, os.WriteFile(path, []byte(">a\r\nAT\r\n>b\r\nGC\r\n"), 0o600))

	records, err := Parser{}.ParseFile(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "AT", records[0].Nucleotides)
	assert.Equal(t, "b", records[1].Name)

	_, err = Parser{}.ParseFile(filepath.Join(t.TempDir(), "missing.fasta"))
	require.Error(t, err)
}
