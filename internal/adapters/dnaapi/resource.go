package dnaapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/tidwall/gjson"
)

func listQuery() url.Values {
	query := url.Values{}
	query.Set("order", "ASC")
	query.Set("requestForAll", "true")
	query.Set("pageSize", "ALL")
	return query
}

// resource holds the calls every server collection shares: listing, load by
// id, deletion and the result/export/heatmap reads of analyses.
type resource[R any] struct {
	client *Client
	kind   string
	base   string
	// detail is appended to base/{id} for load by id; empty for plain paths.
	detail string
	decode func(gjson.Result) (R, error)
}

func (r resource[R]) LoadAll(ctx context.Context, tags domain.Tags) ([]R, error) {
	query := listQuery()
	for _, tag := range tags {
		query.Add("tags", tag)
	}

	payload, err := r.client.Call(ctx, Request{
		Method:     http.MethodGet,
		Path:       r.base,
		Query:      query,
		Accept:     mimeJSON,
		Expect:     http.StatusOK,
		PayloadKey: "items",
		AllowEmpty: true,
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.kind, err)
	}
	records, err := decodeList(payload.Data, r.decode)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.kind, err)
	}
	return records, nil
}

func (r resource[R]) LoadByID(ctx context.Context, id string) (R, error) {
	var zero R
	if id == "" {
		return zero, &domain.ValidationError{Op: "load " + r.kind, Err: fmt.Errorf("id is required")}
	}

	payload, err := r.client.Call(ctx, Request{
		Method:     http.MethodGet,
		Path:       path.Join(r.base, id, r.detail),
		Accept:     mimeJSON,
		Expect:     http.StatusOK,
		PayloadKey: "payload",
	})
	if err != nil {
		return zero, fmt.Errorf("load %s %s: %w", r.kind, id, err)
	}
	record, err := r.decode(payload.Data)
	if err != nil {
		return zero, fmt.Errorf("load %s %s: %w", r.kind, id, err)
	}
	return record, nil
}

// Delete reports true only when the server answered 204.
func (r resource[R]) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, &domain.ValidationError{Op: "delete " + r.kind, Err: fmt.Errorf("id is required")}
	}

	var status int
	err := r.client.Retry.Do(ctx, "delete "+r.kind, func() error {
		var err error
		status, _, err = r.client.Do(ctx, Request{
			Method: http.MethodDelete,
			Path:   path.Join(r.base, id),
			Accept: mimeAny,
		})
		return err
	})
	if err != nil {
		return false, fmt.Errorf("delete %s %s: %w", r.kind, id, err)
	}
	return status == http.StatusNoContent, nil
}

// create posts body and decodes the created record. The call is retried.
func (r resource[R]) create(ctx context.Context, body any, expect int, payloadKey string) (R, error) {
	var zero R
	data, err := json.Marshal(body)
	if err != nil {
		return zero, fmt.Errorf("encode %s request: %w", r.kind, err)
	}
	return r.submit(ctx, Request{
		Method:      http.MethodPost,
		Path:        r.base,
		Body:        data,
		ContentType: mimeJSON,
		Accept:      mimeJSON,
		Expect:      expect,
		PayloadKey:  payloadKey,
	})
}

func (r resource[R]) submit(ctx context.Context, req Request) (R, error) {
	var record R
	err := r.client.Retry.Do(ctx, "create "+r.kind, func() error {
		payload, err := r.client.Call(ctx, req)
		if err != nil {
			return err
		}
		data := payload.Data
		if data.IsArray() {
			data = data.Get("0")
		}
		record, err = r.decode(data)
		return err
	})
	if err != nil {
		return record, fmt.Errorf("create %s: %w", r.kind, err)
	}
	return record, nil
}

func (r resource[R]) loadResult(ctx context.Context, id, suffix, payloadKey string) (domain.Table, error) {
	payload, err := r.client.Call(ctx, Request{
		Method:     http.MethodGet,
		Path:       path.Join(r.base, id, suffix),
		Query:      listQuery(),
		Accept:     mimeJSON,
		Expect:     http.StatusOK,
		PayloadKey: payloadKey,
	})
	if err != nil {
		return domain.Table{}, fmt.Errorf("load %s %s results: %w", r.kind, id, err)
	}
	return decodeTable(payload.Data), nil
}

func (r resource[R]) exportCSV(ctx context.Context, id, file string, query url.Values) (string, error) {
	var csv string
	err := r.client.Retry.Do(ctx, "export "+r.kind, func() error {
		payload, err := r.client.Call(ctx, Request{
			Method: http.MethodGet,
			Path:   path.Join(r.base, id, file),
			Query:  query,
			Accept: mimeText,
			Expect: http.StatusOK,
		})
		if err != nil {
			return err
		}
		csv = payload.Text()
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("export %s %s: %w", r.kind, id, err)
	}
	return csv, nil
}

func (r resource[R]) loadHeatmap(ctx context.Context, id string, segments int, renames map[string]string) (domain.Table, error) {
	if err := domain.ValidateSegments(segments); err != nil {
		return domain.Table{}, err
	}

	payload, err := r.client.Call(ctx, Request{
		Method:     http.MethodGet,
		Path:       path.Join(r.base, id, "heatmap"),
		Query:      url.Values{"segments": {strconv.Itoa(segments)}},
		Accept:     mimeJSON,
		Expect:     http.StatusOK,
		PayloadKey: "data",
	})
	if err != nil {
		return domain.Table{}, fmt.Errorf("load %s %s heatmap: %w", r.kind, id, err)
	}
	return decodeTable(payload.Data).Rename(renames), nil
}
