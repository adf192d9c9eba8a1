package records

import (
	"strings"
	"testing"

	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequenceTable() domain.Table {
	length := int64(1200)
	return domain.TableOf(
		domain.Sequence{ID: "s-1", Name: "chr1", Type: domain.NucleicDNA, Length: &length, Tags: domain.Tags{"human"}}.Row(),
		domain.Sequence{ID: "s-2", Name: "chr2", Type: domain.NucleicDNA, Tags: domain.Tags{"mouse", "x"}}.Row(),
	)
}

func TestRenderTableListsEveryRow(t *testing.T) {
	output, err := Render("Sequences", sequenceTable(), RenderOptions{Columns: []string{"id", "name", "length", "tags"}})
	require.NoError(t, err)

	assert.Contains(t, output, "Sequences (2)")
	assert.Contains(t, output, "s-1")
	assert.Contains(t, output, "chr2")
	assert.Contains(t, output, "1200")
	assert.Contains(t, output, "mouse, x")
	assert.NotContains(t, output, "fasta_comment")
}

func TestRenderSingleRecordAsKeyValues(t *testing.T) {
	table := domain.TableOf(domain.P53{Sequence: "GGACATGCCCGGGCATGTCC", Position: 0, Predictor: "p53predictor"}.Row())

	output, err := Render("", table, RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, output, "GGACATGCCCGGGCATGTCC")
	for _, line := range strings.Split(output, "\n") {
		assert.Contains(t, line, ":")
	}
}

func TestRenderEmptyTable(t *testing.T) {
	output, err := Render("G4Hunter results", domain.Table{}, RenderOptions{})
	require.NoError(t, err)

	assert.Contains(t, output, "G4Hunter results (0)")
	assert.Contains(t, output, "No records.")
}

func TestProjectKeepsRequestedOrder(t *testing.T) {
	projected := project(sequenceTable(), []string{"name", "missing", "id"})

	assert.Equal(t, []string{"name", "id"}, projected.Columns)
	assert.Equal(t, []string{"chr1", "s-1"}, projected.Rows[0])
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("A", 50)

	assert.Equal(t, strings.Repeat("A", 37)+"...", truncate(long, 0))
	assert.Equal(t, long, truncate(long, -1))
	assert.Equal(t, "AB", truncate("ABCD", 2))
	assert.Equal(t, "short", truncate("short", 10))
}
