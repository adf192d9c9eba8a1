package dnaapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/bnema/dna-analyser-cli/internal/ports"
	"github.com/tidwall/gjson"
)

const (
	ServerProduction  = "https://bioinformatics.ibp.cz:443"
	ServerDevelopment = "https://bioinformatika.pef.mendelu.cz:80"
	ServerLocalhost   = "http://localhost:80"
)

const (
	mimeJSON = "application/json"
	mimeText = "text/plain"
	mimeAny  = "*/*"

	maxResponseBytes = 64 << 20
)

// Request describes one call shape. Expect is the only status accepted as
// success; PayloadKey names the envelope field holding the data. AllowEmpty
// accepts a present but empty array or object under PayloadKey.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Body        []byte
	ContentType string
	Accept      string
	Expect      int
	PayloadKey  string
	Anonymous   bool
	AllowEmpty  bool
}

type Payload struct {
	Status int
	Body   []byte
	// Data is the envelope field for JSON calls, or the whole document when
	// the request named no key.
	Data gjson.Result
}

func (p Payload) Text() string {
	return string(p.Body)
}

// Client is the transport bound to one session. It never retries; callers
// wrap it with Retry where the endpoint is safe to repeat.
type Client struct {
	Session        domain.Session
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Retry          RetryPolicy
	Clock          ports.Clock
}

// Call performs req and classifies the response.
func (c *Client) Call(ctx context.Context, req Request) (Payload, error) {
	status, body, err := c.Do(ctx, req)
	if err != nil {
		return Payload{}, err
	}
	if status != req.Expect {
		return Payload{}, &domain.ConnectionFailure{Method: req.Method, Path: req.Path, Status: status, Err: serverMessage(body)}
	}
	return classify(req, status, body)
}

// Do sends req and returns the raw status and body without judging the
// status code. Only a missing response is an error.
func (c *Client) Do(ctx context.Context, req Request) (int, []byte, error) {
	if !req.Anonymous {
		if err := c.Session.Check(c.now()); err != nil {
			return 0, nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
		}
	}

	endpoint, err := buildAPIURL(c.Session.Server, req.Path, req.Query)
	if err != nil {
		return 0, nil, err
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(requestCtx, req.Method, endpoint, body)
	if err != nil {
		return 0, nil, fmt.Errorf("create %s %s request: %w", req.Method, req.Path, err)
	}
	accept := req.Accept
	if accept == "" {
		accept = mimeJSON
	}
	httpReq.Header.Set("Accept", accept)
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}
	if !req.Anonymous {
		httpReq.Header.Set("Authorization", c.Session.Token)
	}

	resp, err := c.httpClient().Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, ctxErr)
		}
		return 0, nil, &domain.ConnectionFailure{Method: req.Method, Path: req.Path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, &domain.ConnectionFailure{Method: req.Method, Path: req.Path, Err: fmt.Errorf("read body: %w", err)}
	}
	return resp.StatusCode, data, nil
}

func classify(req Request, status int, body []byte) (Payload, error) {
	empty := &domain.EmptyPayloadError{Method: req.Method, Path: req.Path, Status: status, Key: req.PayloadKey}
	if len(bytes.TrimSpace(body)) == 0 {
		return Payload{}, empty
	}

	payload := Payload{Status: status, Body: body}
	if !strings.HasPrefix(req.Accept, mimeJSON) && req.Accept != "" {
		return payload, nil
	}
	if !gjson.ValidBytes(body) {
		return Payload{}, fmt.Errorf("%s %s: response is not valid json", req.Method, req.Path)
	}

	data := gjson.ParseBytes(body)
	if req.PayloadKey != "" {
		data = gjson.GetBytes(body, req.PayloadKey)
	}
	if isEmpty(data) && !(req.AllowEmpty && (data.IsArray() || data.IsObject())) {
		return Payload{}, empty
	}
	payload.Data = data
	return payload, nil
}

func isEmpty(r gjson.Result) bool {
	switch {
	case !r.Exists(), r.Type == gjson.Null:
		return true
	case r.Type == gjson.String:
		return r.Str == ""
	case r.IsArray():
		return len(r.Array()) == 0
	case r.IsObject():
		return len(r.Map()) == 0
	default:
		return false
	}
}

// serverMessage extracts the error text the server puts in failed responses.
func serverMessage(body []byte) error {
	if !gjson.ValidBytes(body) {
		return nil
	}
	for _, key := range []string{"message", "error", "exception"} {
		if msg := gjson.GetBytes(body, key); msg.Type == gjson.String && msg.Str != "" {
			return errors.New(msg.Str)
		}
	}
	return nil
}

func (c *Client) now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock.Now()
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func buildAPIURL(server string, path string, query url.Values) (string, error) {
	if server == "" {
		return "", errors.New("server url is required")
	}
	if path == "" {
		return "", errors.New("api path is required")
	}

	parsed, err := url.Parse(server)
	if err != nil {
		return "", fmt.Errorf("parse server url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("server url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("server url host is required")
	}

	endpoint := parsed.JoinPath("api", path)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}
	return endpoint.String(), nil
}
