package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// apiStub is a minimal DNA analyser server. Jobs finish on their second
// status query.
type apiStub struct {
	t      *testing.T
	mu     sync.Mutex
	logins []string
	polls  map[string]int
	token  string
}

func newAPIStub(t *testing.T) (*apiStub, string) {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  7,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("stub"))
	require.NoError(t, err)

	stub := &apiStub{t: t, polls: map[string]int{}, token: token}
	server := httptest.NewServer(stub)
	t.Cleanup(server.Close)
	return stub, server.URL
}

func (s *apiStub) loginCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.logins...)
}

func (s *apiStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.URL.Path == "/api/jwt" {
		body, _ := io.ReadAll(r.Body)
		s.logins = append(s.logins, r.Method+" "+string(body))
		if r.Method == http.MethodPut && !strings.Contains(string(body), `"password":"pw"`) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, s.token)
		return
	}

	if r.URL.Path == "/efetch" {
		if r.URL.Query().Get("id") != "NC_TEST" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = io.WriteString(w, stubFeatureTable)
		return
	}

	if r.Header.Get("Authorization") != s.token {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	sequence := map[string]any{"id": "s-1", "name": "chr1", "type": "DNA", "length": 12, "tags": []string{"human"}, "nucleicCounts": map[string]int{"A": 3, "C": 3, "G": 3, "T": 3}}
	g4hunter := map[string]any{"id": "a-1", "title": "chr1", "sequenceId": "s-1", "threshold": 1.2, "windowSize": 25, "resultCount": 2, "tags": []string{"human"}}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/sequence":
		writeStubJSON(w, http.StatusOK, map[string]any{"items": []any{sequence}})
	case r.Method == http.MethodPost && r.URL.Path == "/api/sequence/import/text":
		writeStubJSON(w, http.StatusCreated, map[string]any{"payload": sequence})
	case r.Method == http.MethodGet && r.URL.Path == "/api/sequence/s-1":
		writeStubJSON(w, http.StatusOK, map[string]any{"payload": sequence})
	case r.Method == http.MethodPost && r.URL.Path == "/api/analyse/g4hunter":
		writeStubJSON(w, http.StatusCreated, map[string]any{"payload": g4hunter})
	case r.Method == http.MethodGet && r.URL.Path == "/api/analyse/g4hunter/a-1":
		writeStubJSON(w, http.StatusOK, map[string]any{"payload": g4hunter})
	case r.Method == http.MethodGet && r.URL.Path == "/api/analyse/g4hunter/a-1/quadruplex":
		writeStubJSON(w, http.StatusOK, map[string]any{"items": []any{
			map[string]any{"position": 90, "length": 20, "score": 1.5},
			map[string]any{"position": 1000, "length": 20, "score": 2.5},
		}})
	case r.Method == http.MethodDelete && r.URL.Path == "/api/analyse/g4hunter/a-1":
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusForbidden)
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/batch/"):
		s.polls[r.URL.Path]++
		status := "RUNNING"
		if s.polls[r.URL.Path] > 1 {
			status = "FINISH"
		}
		writeStubJSON(w, http.StatusOK, map[string]any{"status": status, "finished": "2026-03-01T10:00:05Z"})
	default:
		http.NotFound(w, r)
	}
}

const stubFeatureTable = ">Feature ref|NC_TEST|\n1\t50\tgene\n\t\t\tgene\tabc\n200\t400\tCDS\n"

func writeStubJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func executeCLI(t *testing.T, home, server string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("DNAA_SERVER", server)
	t.Setenv("DNAA_POLL_INTERVAL", "1ms")
	t.Setenv("DNAA_RETRY_DELAY", "1ms")
	t.Setenv("DNAA_RETRY_MAX_DELAY", "1ms")
	t.Setenv("DNAA_RETRY_ATTEMPTS", "2")
	t.Setenv("DNAA_NCBI_URL", server+"/efetch")
	t.Setenv("DNAA_NCBI_DELAY", "1ms")
	t.Setenv("DNAA_NCBI_ATTEMPTS", "2")
	t.Chdir(t.TempDir())

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestLoginAsHostStoresSession(t *testing.T) {
	stub, server := newAPIStub(t)
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, server, "login")
	require.NoError(t, err)
	assert.Contains(t, stdout, "as host (user 7)")
	assert.Equal(t, []string{"POST "}, stub.loginCalls())

	data, err := os.ReadFile(filepath.Join(home, ".config", "dnaa", "session.toml"))
	require.NoError(t, err)
	assert.Regexp(t, `user_id = ['"]7['"]`, string(data))

	stdout, _, err = executeCLI(t, home, server, "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "account: host")
	assert.Contains(t, stdout, "user:    7")
}

func TestLoginRejectsInvalidAccountWithoutRequest(t *testing.T) {
	stub, server := newAPIStub(t)

	_, _, err := executeCLI(t, t.TempDir(), server, "login", "--account", "not-an-email", "--password", "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
	assert.Empty(t, stub.loginCalls())
}

func TestLoginReadsPasswordFromEnvironment(t *testing.T) {
	stub, server := newAPIStub(t)
	t.Setenv("DNAA_PASSWORD", "pw")

	_, _, err := executeCLI(t, t.TempDir(), server, "login", "--account", "ada@example.com")
	require.NoError(t, err)

	calls := stub.loginCalls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0], "PUT ")
	assert.Contains(t, calls[0], `"login":"ada@example.com"`)
}

func TestLoginSavedPasswordIsReused(t *testing.T) {
	stub, server := newAPIStub(t)
	home := t.TempDir()

	_, _, err := executeCLI(t, home, server, "login", "--account", "ada@example.com", "--password", "pw", "--save-password")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, server, "login", "--account", "ada@example.com")
	require.NoError(t, err)
	assert.Len(t, stub.loginCalls(), 2)
}

func TestLoginWrongPasswordReturnsAuthError(t *testing.T) {
	_, server := newAPIStub(t)

	_, _, err := executeCLI(t, t.TempDir(), server, "login", "--account", "ada@example.com", "--password", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestCommandsRequireLogin(t *testing.T) {
	_, server := newAPIStub(t)

	_, _, err := executeCLI(t, t.TempDir(), server, "sequence", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authenticated")
	assert.Contains(t, err.Error(), "dnaa login")
}

func TestSequenceListJSONOutput(t *testing.T) {
	_, server := newAPIStub(t)
	home := t.TempDir()
	_, _, err := executeCLI(t, home, server, "login")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, server, "sequence", "list", "--json")
	require.NoError(t, err)

	var rows []map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "s-1", rows[0]["id"])
	assert.Equal(t, "6", rows[0]["gc_count"])
	assert.Equal(t, "human", rows[0]["tags"])
}

func TestSequenceGetMissing(t *testing.T) {
	_, server := newAPIStub(t)
	home := t.TempDir()
	_, _, err := executeCLI(t, home, server, "login")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, server, "sequence", "get", "s-9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sequence s-9 does not exist")
}

func TestSequenceUploadTextWaitsForBatch(t *testing.T) {
	stub, server := newAPIStub(t)
	home := t.TempDir()
	_, _, err := executeCLI(t, home, server, "login")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, server, "sequence", "upload", "text", "ATGCATGCATGC", "--name", "chr1", "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"id": "s-1"`)

	stub.mu.Lock()
	defer stub.mu.Unlock()
	assert.Equal(t, 2, stub.polls["/api/batch/cz.mendelu.dnaAnalyser.sequence.Sequence/s-1"])
}

func TestAnalyseG4HunterCreateRendersTable(t *testing.T) {
	_, server := newAPIStub(t)
	home := t.TempDir()
	_, _, err := executeCLI(t, home, server, "login")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, server, "analyse", "g4hunter", "create", "s-1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "G4Hunter analyses")
	assert.Contains(t, stdout, "a-1")
}

func TestAnalyseG4HunterCreateValidatesLocally(t *testing.T) {
	_, server := newAPIStub(t)
	home := t.TempDir()
	_, _, err := executeCLI(t, home, server, "login")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, server, "analyse", "g4hunter", "create", "s-1", "--window", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "g4hunter parameters")
}

func TestDeleteReportsRefusedIDs(t *testing.T) {
	_, server := newAPIStub(t)
	home := t.TempDir()
	_, _, err := executeCLI(t, home, server, "login")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, server, "analyse", "g4hunter", "delete", "a-1", "a-2")
	require.Error(t, err)
	assert.Contains(t, stdout, "Deleted g4hunter analysis a-1")
	assert.Contains(t, err.Error(), "a-2")
}

func TestToolP53RejectsWrongLength(t *testing.T) {
	_, server := newAPIStub(t)
	home := t.TempDir()
	_, _, err := executeCLI(t, home, server, "login")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, server, "tool", "p53", "ACGT")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "p53 parameters")
}

func TestLogoutRemovesSession(t *testing.T) {
	_, server := newAPIStub(t)
	home := t.TempDir()
	_, _, err := executeCLI(t, home, server, "login")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, server, "logout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged out")

	_, _, err = executeCLI(t, home, server, "whoami")
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	_, server := newAPIStub(t)

	stdout, _, err := executeCLI(t, t.TempDir(), server, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestUnknownCommand(t *testing.T) {
	_, server := newAPIStub(t)

	_, _, err := executeCLI(t, t.TempDir(), server, "pool")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command \"pool\"")
}

func TestAnnotationDownloadAndParseWithoutLogin(t *testing.T) {
	stub, server := newAPIStub(t)
	home := t.TempDir()
	dir := t.TempDir()

	stdout, _, err := executeCLI(t, home, server, "annotation", "download", "NC_TEST", "--dir", dir, "--name", "test genome")
	require.NoError(t, err)
	path := filepath.Join(dir, "test_genome.txt")
	assert.Equal(t, path, strings.TrimSpace(stdout))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, stubFeatureTable, string(data))

	stdout, _, err = executeCLI(t, home, server, "annotation", "parse", path, "--json")
	require.NoError(t, err)
	var features []map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &features))
	require.Len(t, features, 2)
	assert.Equal(t, map[string]string{"start": "200", "end": "400", "length": "201", "feature": "CDS"}, features[1])
	assert.Empty(t, stub.loginCalls())
}

func TestAnnotationDownloadFailsForNonFeatureResponse(t *testing.T) {
	_, server := newAPIStub(t)

	_, _, err := executeCLI(t, t.TempDir(), server, "annotation", "download", "NC_OTHER", "--dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NC_OTHER")
}

func TestG4HunterIntersectCountsHitsAroundFeatures(t *testing.T) {
	_, server := newAPIStub(t)
	home := t.TempDir()
	_, _, err := executeCLI(t, home, server, "login")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, server, "analyse", "g4hunter", "intersect", "a-1", "--ncbi", "NC_TEST", "--json")
	require.NoError(t, err)

	var rows []map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "gene", rows[0]["FEATURE"])
	assert.Equal(t, "1", rows[0]["1.4-1.6 AFTER"])
	assert.Equal(t, "CDS", rows[1]["FEATURE"])
	assert.Equal(t, "1", rows[1]["1.4-1.6 BEFORE"])
	assert.Equal(t, "0", rows[1]["2.0-inf AFTER"])
}

func TestG4HunterIntersectWritesCSVFromSavedAnnotation(t *testing.T) {
	_, server := newAPIStub(t)
	home := t.TempDir()
	dir := t.TempDir()
	annotation := filepath.Join(dir, "genome.txt")
	require.NoError(t, os.WriteFile(annotation, []byte(stubFeatureTable), 0o600))
	out := filepath.Join(dir, "counts.csv")
	_, _, err := executeCLI(t, home, server, "login")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, server, "analyse", "g4hunter", "intersect", "a-1", "--annotation", annotation, "--area", "1000", "--out", out)
	require.NoError(t, err)
	assert.Equal(t, out, strings.TrimSpace(stdout))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "FEATURE,0-1.2 BEFORE,0-1.2 IN,0-1.2 AFTER,"))
	// with a 1000 nt window the 2.5 hit at 1010 follows both features
	assert.True(t, strings.HasSuffix(lines[1], ",0,0,1"), lines[1])
	assert.True(t, strings.HasSuffix(lines[2], ",0,0,1"), lines[2])
}

func TestG4HunterIntersectRejectsFlagsWithoutNetwork(t *testing.T) {
	stub, server := newAPIStub(t)
	home := t.TempDir()

	for _, args := range [][]string{
		{"analyse", "g4hunter", "intersect", "a-1"},
		{"analyse", "g4hunter", "intersect", "a-1", "--ncbi", "NC_TEST", "--annotation", "x.txt"},
		{"analyse", "g4hunter", "intersect", "a-1", "--ncbi", "NC_TEST", "--area", "0"},
	} {
		_, _, err := executeCLI(t, home, server, args...)
		require.Error(t, err, strings.Join(args, " "))
	}
	assert.Empty(t, stub.loginCalls())
}
