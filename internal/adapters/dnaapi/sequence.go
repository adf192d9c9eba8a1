package dnaapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/bnema/dna-analyser-cli/internal/domain"
)

type SequenceAdapter struct {
	resource[domain.Sequence]
}

func NewSequenceAdapter(client *Client) SequenceAdapter {
	return SequenceAdapter{resource[domain.Sequence]{
		client: client,
		kind:   "sequence",
		base:   "sequence",
		decode: decodeSequence,
	}}
}

type textSequenceBody struct {
	Circular bool     `json:"circular"`
	Data     string   `json:"data"`
	Format   string   `json:"format"`
	Name     string   `json:"name"`
	Tags     []string `json:"tags"`
	Type     string   `json:"type"`
}

type fileSequenceBody struct {
	Circular bool     `json:"circular"`
	Format   string   `json:"format"`
	Name     string   `json:"name"`
	Tags     []string `json:"tags"`
	Type     string   `json:"type"`
}

type ncbiEntry struct {
	Circular bool     `json:"circular"`
	Name     string   `json:"name"`
	NCBIID   string   `json:"ncbiId"`
	Tags     []string `json:"tags"`
	Type     string   `json:"type"`
}

type ncbiSequenceBody struct {
	Circular bool        `json:"circular"`
	NCBIs    []ncbiEntry `json:"ncbis"`
	Tags     []string    `json:"tags"`
	Type     string      `json:"type"`
}

func (a SequenceAdapter) CreateText(ctx context.Context, req domain.TextSequenceRequest) (domain.Sequence, error) {
	if err := req.Validate(); err != nil {
		return domain.Sequence{}, err
	}
	return a.createAt(ctx, "import/text", textSequenceBody{
		Circular: req.Circular,
		Data:     req.Data,
		Format:   string(domain.FormatPlain),
		Name:     req.Name,
		Tags:     req.Tags.OrEmpty(),
		Type:     string(req.Type),
	}, "payload")
}

func (a SequenceAdapter) CreateNCBI(ctx context.Context, req domain.NCBISequenceRequest) (domain.Sequence, error) {
	if err := req.Validate(); err != nil {
		return domain.Sequence{}, err
	}
	tags := req.Tags.OrEmpty()
	return a.createAt(ctx, "import/ncbi", ncbiSequenceBody{
		Circular: req.Circular,
		NCBIs: []ncbiEntry{{
			Circular: req.Circular,
			Name:     req.Name,
			NCBIID:   req.NCBIID,
			Tags:     tags,
			Type:     string(domain.NucleicDNA),
		}},
		Tags: tags,
		Type: string(domain.NucleicDNA),
	}, "items")
}

// CreateFile uploads a FASTA or plain text file as a multipart form with a
// "json" metadata part and a "file" part.
func (a SequenceAdapter) CreateFile(ctx context.Context, req domain.FileSequenceRequest) (domain.Sequence, error) {
	if err := req.Validate(); err != nil {
		return domain.Sequence{}, err
	}

	meta, err := json.Marshal(fileSequenceBody{
		Circular: req.Circular,
		Format:   string(req.Format),
		Name:     req.Name,
		Tags:     req.Tags.OrEmpty(),
		Type:     string(req.Type),
	})
	if err != nil {
		return domain.Sequence{}, fmt.Errorf("encode sequence file metadata: %w", err)
	}
	contents, err := os.ReadFile(req.Path)
	if err != nil {
		return domain.Sequence{}, fmt.Errorf("read sequence file: %w", err)
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("json", string(meta)); err != nil {
		return domain.Sequence{}, fmt.Errorf("write sequence form: %w", err)
	}
	part, err := form.CreateFormFile("file", filepath.Base(req.Path))
	if err != nil {
		return domain.Sequence{}, fmt.Errorf("write sequence form: %w", err)
	}
	if _, err := part.Write(contents); err != nil {
		return domain.Sequence{}, fmt.Errorf("write sequence form: %w", err)
	}
	if err := form.Close(); err != nil {
		return domain.Sequence{}, fmt.Errorf("write sequence form: %w", err)
	}

	return a.submit(ctx, Request{
		Method:      http.MethodPost,
		Path:        "sequence/import/file",
		Body:        body.Bytes(),
		ContentType: form.FormDataContentType(),
		Accept:      mimeJSON,
		Expect:      http.StatusCreated,
		PayloadKey:  "payload",
	})
}

func (a SequenceAdapter) createAt(ctx context.Context, endpoint string, body any, payloadKey string) (domain.Sequence, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return domain.Sequence{}, fmt.Errorf("encode sequence request: %w", err)
	}
	return a.submit(ctx, Request{
		Method:      http.MethodPost,
		Path:        path.Join(a.base, endpoint),
		Body:        data,
		ContentType: mimeJSON,
		Accept:      mimeJSON,
		Expect:      http.StatusCreated,
		PayloadKey:  payloadKey,
	})
}

// LoadData returns a raw nucleotide slice. Slices are not retried.
func (a SequenceAdapter) LoadData(ctx context.Context, seq domain.Sequence, slice domain.SequenceSlice) (string, error) {
	if err := slice.Validate(seq); err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("len", strconv.FormatInt(slice.Length, 10))
	query.Set("pos", strconv.FormatInt(slice.Position, 10))
	payload, err := a.client.Call(ctx, Request{
		Method: http.MethodGet,
		Path:   path.Join(a.base, seq.ID, "data"),
		Query:  query,
		Accept: mimeText,
		Expect: http.StatusOK,
	})
	if err != nil {
		return "", fmt.Errorf("load sequence %s data: %w", seq.ID, err)
	}
	return payload.Text(), nil
}

// RecountNucleic asks the server to recount the nucleotides of a sequence.
func (a SequenceAdapter) RecountNucleic(ctx context.Context, id string) (bool, error) {
	var status int
	err := a.client.Retry.Do(ctx, "recount nucleic", func() error {
		var err error
		status, _, err = a.client.Do(ctx, Request{
			Method: http.MethodPatch,
			Path:   path.Join(a.base, id, "nucleic-counts"),
			Accept: mimeAny,
		})
		return err
	})
	if err != nil {
		return false, fmt.Errorf("recount sequence %s: %w", id, err)
	}
	return status == http.StatusOK, nil
}
