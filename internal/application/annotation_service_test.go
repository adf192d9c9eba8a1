package application

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/dna-analyser-cli/internal/adapters/ncbi"
	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const featureTable = ">Feature ref|NC_1|\n12\t1\tgene\n\t\t\tgene\tgrpE\n100\t<180\tCDS\n"

type staticSource struct {
	table string
	err   error
	ids   []string
}

func (s *staticSource) FeatureTable(_ context.Context, ncbiID string) (string, error) {
	s.ids = append(s.ids, ncbiID)
	return s.table, s.err
}

func newTestAnnotations(t *testing.T, source *staticSource) *AnnotationService {
	t.Helper()
	service, err := NewAnnotationService(source, ncbi.FeatureTableParser{})
	require.NoError(t, err)
	return service
}

func TestAnnotationDownloadNamesFileAfterID(t *testing.T) {
	source := &staticSource{table: featureTable}
	service := newTestAnnotations(t, source)
	dir := t.TempDir()

	path, err := service.Download(context.Background(), " NC_1 ", dir, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "NC_1.txt"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, featureTable, string(data))
	assert.Equal(t, []string{"NC_1"}, source.ids)
}

func TestAnnotationDownloadRejectsMissingDirectory(t *testing.T) {
	source := &staticSource{table: featureTable}
	service := newTestAnnotations(t, source)

	_, err := service.Download(context.Background(), "NC_1", filepath.Join(t.TempDir(), "missing"), "genome")

	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Empty(t, source.ids)
}

func TestAnnotationDownloadKeepsSourceError(t *testing.T) {
	failure := &ncbi.DownloadError{ID: "NC_1", Status: 500}
	service := newTestAnnotations(t, &staticSource{err: failure})
	dir := t.TempDir()

	_, err := service.Download(context.Background(), "NC_1", dir, "genome")
	require.ErrorIs(t, err, failure)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAnnotationFetchAndLoadParseFeatures(t *testing.T) {
	service := newTestAnnotations(t, &staticSource{table: featureTable})
	want := []domain.Feature{
		{Start: 1, End: 12, Name: "gene"},
		{Start: 100, End: 180, Name: "CDS"},
	}

	fetched, err := service.Fetch(context.Background(), "NC_1")
	require.NoError(t, err)
	assert.Equal(t, want, fetched)

	path := filepath.Join(t.TempDir(), "NC_1.txt")
	require.NoError(t, os.WriteFile(path, []byte(featureTable), 0o600))
	loaded, err := service.Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, loaded)
}

func TestAnnotationLoadReportsBrokenTable(t *testing.T) {
	service := newTestAnnotations(t, &staticSource{})
	path := filepath.Join(t.TempDir(), "broken.txt")
	require.NoError(t, os.WriteFile(path, []byte(">Feature x\n1\t2\n"), 0o600))

	_, err := service.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.txt")

	_, err = service.Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

func TestNewAnnotationServiceRequiresDependencies(t *testing.T) {
	_, err := NewAnnotationService(nil, ncbi.FeatureTableParser{})
	require.Error(t, err)
	_, err = NewAnnotationService(&staticSource{}, nil)
	require.Error(t, err)
}
