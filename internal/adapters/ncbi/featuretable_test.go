package ncbi

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFeatureTable = ">Feature ref|NC_001133.9|\n" +
	"<1\t>801\tgene\n" +
	"\t\t\tlocus_tag\tYAL069W\n" +
	"1807\t2169\tCDS\n" +
	"2480\t2707\n" +
	"\t\t\tproduct\thypothetical protein\n" +
	"\t\t\tpseudo\n" +
	"\n" +
	"3000\t2900\ttRNA\r\n"

func TestParseFeatureTable(t *testing.T) {
	features, err := FeatureTableParser{}.ParseFeatureTable(strings.NewReader(testFeatureTable))
	require.NoError(t, err)

	assert.Equal(t, []domain.Feature{
		{Start: 1, End: 801, Name: "gene"},
		{Start: 1807, End: 2169, Name: "CDS"},
		{Start: 2480, End: 2707, Name: "CDS"},
		{Start: 2900, End: 3000, Name: "tRNA"},
	}, features)
}

func TestParseFeatureTableErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "interval without key", input: ">Feature x\n10\t20\n", wantErr: "line 2: interval before any feature key"},
		{name: "bad start", input: "x\t20\tgene\n", wantErr: "line 1: start"},
		{name: "bad stop", input: "10\t2o\tgene\n", wantErr: "line 1: stop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FeatureTableParser{}.ParseFeatureTable(strings.NewReader(tt.input))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestParseFeatureTableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nc_001133.txt")
	require.NoError(t, os.WriteFile(path, []byte(testFeatureTable), 0o644))

	features, err := FeatureTableParser{}.ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, features, 4)

	_, err = FeatureTableParser{}.ParseFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "open feature table")
}
