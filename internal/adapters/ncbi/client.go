// Package ncbi downloads and parses NCBI feature tables used to annotate
// G4Hunter results.
package ncbi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	DefaultEFetchURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"
	DefaultAttempts  = 5
	DefaultDelay     = time.Second

	maxFeatureTableBytes = 256 << 20
)

// DownloadError is a response that is not a feature table.
type DownloadError struct {
	ID     string
	Status int
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download feature table %s: status %d is not a feature table", e.ID, e.Status)
}

// Client fetches feature tables from E-utilities. Every failure is retried
// after a fixed delay; the service is anonymous so no session is involved.
type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Attempts       uint
	Delay          time.Duration
}

func (c Client) FeatureTable(ctx context.Context, ncbiID string) (string, error) {
	ncbiID = strings.TrimSpace(ncbiID)
	if ncbiID == "" {
		return "", &domain.ValidationError{Op: "annotation download", Err: errors.New("ncbi id is required")}
	}

	endpoint, err := c.endpoint(ncbiID)
	if err != nil {
		return "", err
	}

	attempts := c.Attempts
	if attempts == 0 {
		attempts = DefaultAttempts
	}

	var table string
	err = retry.Do(
		func() error {
			var fetchErr error
			table, fetchErr = c.fetch(ctx, ncbiID, endpoint)
			return fetchErr
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(c.Delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Err(err).Str("ncbi_id", ncbiID).Uint("attempt", n+1).Uint("max_attempts", attempts).Msg("feature table download failed, retrying")
		}),
	)
	if err != nil {
		return "", err
	}
	return table, nil
}

func (c Client) endpoint(ncbiID string) (string, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultEFetchURL
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid efetch url %q", base)
	}

	query := parsed.Query()
	query.Set("db", "nuccore")
	query.Set("retmode", "text")
	query.Set("rettype", "ft")
	query.Set("id", ncbiID)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func (c Client) fetch(ctx context.Context, ncbiID, endpoint string) (string, error) {
	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create feature table request: %w", err)
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("download feature table %s: %w", ncbiID, ctxErr)
		}
		return "", fmt.Errorf("download feature table %s: %w", ncbiID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeatureTableBytes))
	if err != nil {
		return "", fmt.Errorf("read feature table %s: %w", ncbiID, err)
	}

	text := string(body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode > http.StatusMultipleChoices || !strings.HasPrefix(text, ">") {
		return "", &DownloadError{ID: ncbiID, Status: resp.StatusCode}
	}
	return text, nil
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || c.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.RequestTimeout)
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}
