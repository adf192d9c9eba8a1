package e2e

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	server := newServer(t)
	require.NoError(t, writeConfigFixture(home, server.URL))

	stdout, stderr, err := runDNAA(t, binaryPath, home, "login")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "as host (user 42)")

	stdout, stderr, err = runDNAA(t, binaryPath, home, "sequence", "list", "--json")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, `"name": "chr1"`)
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "42",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("e2e"))
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/jwt", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, token)
	})
	mux.HandleFunc("GET /api/sequence", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"items":[{"id":"s-1","name":"chr1","type":"DNA","length":4}]}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "dnaa-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/dnaa")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build dnaa binary: %s", string(output))
	return binaryPath
}

func runDNAA(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = home
	cmd.Env = append(os.Environ(), "HOME="+home, "DNAA_SERVER=", "DNAA_PASSWORD=")

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeConfigFixture(home, server string) error {
	configDir := filepath.Join(home, ".config", "dnaa")
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return err
	}

	config := `server = "` + server + `"
parallel = 2

[poll]
interval = "10ms"

[log]
level = "error"
`

	return os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(config), 0o644)
}
