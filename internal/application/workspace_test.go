package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/dna-analyser-cli/internal/adapters/dnaapi"
	"github.com/bnema/dna-analyser-cli/internal/adapters/fasta"
	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sequenceBatchPath = "/api/batch/cz.mendelu.dnaAnalyser.sequence.Sequence/"
	g4hunterBatchPath = "/api/batch/cz.mendelu.dnaAnalyser.analyse.g4hunter.G4Hunter/"
)

// fakeServer answers the endpoints a workspace drives. Every job reports
// RUNNING once before its final status.
type fakeServer struct {
	mu        sync.Mutex
	nextID    int
	sequences map[string]string
	polls     map[string]int
	failJobs  map[string]bool
	analysis  map[string]any

	resultLoads int
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		sequences: map[string]string{},
		polls:     map[string]int{},
		failJobs:  map[string]bool{},
		analysis:  map[string]any{},
	}
}

func (f *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/sequence/import/text":
		var body struct {
			Name string   `json:"name"`
			Data string   `json:"data"`
			Tags []string `json:"tags"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if strings.Contains(body.Data, "X") {
			writeEnvelope(w, http.StatusBadRequest, "message", "invalid nucleotide")
			return
		}
		f.nextID++
		id := fmt.Sprintf("s-%d", f.nextID)
		f.sequences[id] = body.Name
		writeEnvelope(w, http.StatusCreated, "payload", map[string]any{"id": id, "name": body.Name, "type": "DNA", "tags": body.Tags})
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/sequence/"):
		id := strings.TrimPrefix(r.URL.Path, "/api/sequence/")
		writeEnvelope(w, http.StatusOK, "payload", map[string]any{"id": id, "name": f.sequences[id], "type": "DNA", "length": 12, "tags": []string{"seqtag"}})
	case r.Method == http.MethodPost && r.URL.Path == "/api/analyse/g4hunter":
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.nextID++
		id := fmt.Sprintf("a-%d", f.nextID)
		f.analysis[id] = body
		writeEnvelope(w, http.StatusCreated, "payload", map[string]any{"id": id, "title": "chr1", "sequenceId": body["sequence"]})
	case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/quadruplex.csv"):
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, "position,score\n1,1.5\n")
	case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/quadruplex"):
		f.resultLoads++
		writeEnvelope(w, http.StatusOK, "items", []map[string]any{
			{"position": 90, "length": 20, "score": 1.5},
			{"position": 480, "length": 30, "score": -2.4},
		})
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/analyse/g4hunter/"):
		id := strings.TrimPrefix(r.URL.Path, "/api/analyse/g4hunter/")
		writeEnvelope(w, http.StatusOK, "payload", map[string]any{"id": id, "title": "chr1", "resultCount": 3, "finished": "2026-03-01T10:00:05Z"})
	case r.Method == http.MethodGet && (strings.HasPrefix(r.URL.Path, sequenceBatchPath) || strings.HasPrefix(r.URL.Path, g4hunterBatchPath)):
		id := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		f.polls[id]++
		status := "RUNNING"
		if f.polls[id] > 1 {
			status = "FINISH"
			if f.failJobs[id] {
				status = "FAILED"
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"name": id, "status": status, "exception": "boom"})
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeServer) pollCount(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.polls[id]
}

func (f *fakeServer) analysisBody(id string) (map[string]any, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	body, _ := f.analysis[id].(map[string]any)
	return body, len(f.analysis)
}

func writeEnvelope(w http.ResponseWriter, status int, key string, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{key: value})
}

func newTestWorkspace(t *testing.T, fake *fakeServer) *Workspace {
	t.Helper()

	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	client := &dnaapi.Client{
		Session: domain.Session{Server: server.URL, Account: domain.HostAccount, Token: "tok", UserID: "u-7"},
		Retry:   dnaapi.RetryPolicy{Attempts: 2, Delay: time.Millisecond, MaxDelay: time.Millisecond},
	}
	workspace, err := NewWorkspace(WorkspaceDeps{
		Session:   client.Session,
		Sequences: dnaapi.NewSequenceAdapter(client),
		G4Hunter:  dnaapi.NewG4HunterAdapter(client),
		Poller:    NewPoller(dnaapi.NewBatchAdapter(client), nil, nil, time.Millisecond),
		Parser:    fasta.Parser{},
	})
	require.NoError(t, err)
	return workspace
}

func TestWorkspaceUploadTextPollsAndReloads(t *testing.T) {
	fake := newFakeServer()
	workspace := newTestWorkspace(t, fake)

	seq, err := workspace.UploadText(context.Background(), domain.TextSequenceRequest{
		Name: "chr1",
		Data: "ATGCGGGTTAGG",
		Type: domain.NucleicDNA,
	})
	require.NoError(t, err)

	assert.Equal(t, "s-1", seq.ID)
	require.NotNil(t, seq.Length)
	assert.Equal(t, int64(12), *seq.Length)
	assert.Equal(t, 2, fake.pollCount("s-1"))
}

func TestWorkspaceAnalyseG4HunterInheritsSequenceTags(t *testing.T) {
	fake := newFakeServer()
	workspace := newTestWorkspace(t, fake)
	seq := domain.Sequence{ID: "s-9", Name: "chr 1", Tags: domain.Tags{"human", "x"}}

	result, err := workspace.AnalyseG4Hunter(context.Background(), seq, domain.DefaultG4HunterParams())
	require.NoError(t, err)

	require.NotNil(t, result.ResultCount)
	assert.Equal(t, int64(3), *result.ResultCount)
	assert.Equal(t, "2026-03-01T10:00:05Z", result.Finished)

	body, _ := fake.analysisBody(result.ID)
	assert.Equal(t, "s-9", body["sequence"])
	assert.Equal(t, []any{"human", "x"}, body["tags"])
	assert.Equal(t, 1.2, body["threshold"])
}

func TestWorkspaceAnalyseRejectsInvalidParamsWithoutNetwork(t *testing.T) {
	fake := newFakeServer()
	workspace := newTestWorkspace(t, fake)

	params := domain.DefaultG4HunterParams()
	params.WindowSize = 5
	_, err := workspace.AnalyseG4Hunter(context.Background(), domain.Sequence{ID: "s-1", Name: "chr1"}, params)

	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	_, created := fake.analysisBody("")
	assert.Zero(t, created)
}

func TestWorkspaceAnalyseReportsFailedBatch(t *testing.T) {
	fake := newFakeServer()
	fake.failJobs["a-1"] = true
	workspace := newTestWorkspace(t, fake)

	_, err := workspace.AnalyseG4Hunter(context.Background(), domain.Sequence{ID: "s-1", Name: "chr1"}, domain.DefaultG4HunterParams())

	var failed *domain.BatchFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, "a-1", failed.Handle.ID)
	assert.Equal(t, "u-7", failed.Handle.Owner)
	assert.Equal(t, domain.KindG4Hunter, failed.Handle.Kind)
}

func TestWorkspaceUploadMultiFASTAKeepsGoingAfterFailure(t *testing.T) {
	fake := newFakeServer()
	workspace := newTestWorkspace(t, fake)

	path := filepath.Join(t.TempDir(), "genes.fasta")
	content := ">gene one\nATGC\nGGTA\n>broken\nAXXG\n>gene-two\nTTAA\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	uploaded, err := workspace.UploadMultiFASTA(context.Background(), path, domain.TextSequenceRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload broken")

	require.Len(t, uploaded, 2)
	assert.Equal(t, "gene_one", uploaded[0].Name)
	assert.Equal(t, "gene-two", uploaded[1].Name)
}

func TestWorkspaceAnalyseManyCollectsErrors(t *testing.T) {
	workspace := newTestWorkspace(t, newFakeServer())
	workspace.parallel = 2

	var inFlight, peak atomic.Int32
	sequences := []domain.Sequence{{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}}
	err := workspace.AnalyseMany(context.Background(), sequences, func(ctx context.Context, seq domain.Sequence) error {
		current := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			old := peak.Load()
			if current <= old || peak.CompareAndSwap(old, current) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		if seq.Name == "b" || seq.Name == "d" {
			return errors.New("rejected")
		}
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "b: rejected")
	assert.Contains(t, err.Error(), "d: rejected")
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestWorkspaceExportCSVWritesNormalizedFile(t *testing.T) {
	workspace := newTestWorkspace(t, newFakeServer())
	dir := t.TempDir()

	path, err := workspace.ExportCSV(context.Background(), workspace.G4Hunter(), domain.Analysis{ID: "a-3", Title: "my chr/1"}, dir, domain.ExportOptions{Aggregate: true})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "my_chr1_a-3_result.csv"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "position,score\n1,1.5\n", string(data))
}

func TestNewWorkspaceRequiresCoreDependencies(t *testing.T) {
	_, err := NewWorkspace(WorkspaceDeps{})
	require.Error(t, err)
}

func TestWorkspaceIntersectG4HunterCountsHitsAroundFeatures(t *testing.T) {
	fake := newFakeServer()
	workspace := newTestWorkspace(t, fake)
	count := int64(2)
	features := []domain.Feature{
		domain.NewFeature(200, 400, "gene"),
		domain.NewFeature(10, 50, "CDS"),
	}

	got, err := workspace.IntersectG4Hunter(context.Background(), domain.G4Hunter{Analysis: domain.Analysis{ID: "a-5"}, ResultCount: &count}, features, 100)
	require.NoError(t, err)

	require.Len(t, got.Rows, 2)
	cds, ok := got.Row("CDS")
	require.True(t, ok)
	// middle 100 lies in [50, 150] after the CDS
	assert.Equal(t, 1, cds.Count(2, domain.RegionAfter))
	gene, ok := got.Row("gene")
	require.True(t, ok)
	assert.Equal(t, 1, gene.Count(2, domain.RegionBefore))
	assert.Equal(t, 1, gene.Count(5, domain.RegionAfter))
	assert.Equal(t, 1, fake.resultLoads)
}

func TestWorkspaceIntersectG4HunterSkipsEmptyResult(t *testing.T) {
	fake := newFakeServer()
	workspace := newTestWorkspace(t, fake)
	zero := int64(0)

	got, err := workspace.IntersectG4Hunter(context.Background(), domain.G4Hunter{Analysis: domain.Analysis{ID: "a-5"}, ResultCount: &zero}, []domain.Feature{domain.NewFeature(1, 10, "gene")}, 100)
	require.NoError(t, err)

	require.Len(t, got.Rows, 1)
	assert.Zero(t, got.Rows[0].Count(0, domain.RegionIn))
	assert.Zero(t, fake.resultLoads)
}

func TestWorkspaceIntersectG4HunterRejectsAreaWithoutNetwork(t *testing.T) {
	fake := newFakeServer()
	workspace := newTestWorkspace(t, fake)

	for _, area := range []int64{0, -1, domain.MaxIntersectionArea + 1} {
		_, err := workspace.IntersectG4Hunter(context.Background(), domain.G4Hunter{Analysis: domain.Analysis{ID: "a-5"}}, nil, area)
		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation, "area %d", area)
	}
	assert.Zero(t, fake.resultLoads)
}
