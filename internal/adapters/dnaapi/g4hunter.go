package dnaapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bnema/dna-analyser-cli/internal/domain"
)

var g4hunterHeatmapColumns = map[string]string{
	"count":    "PQS_count",
	"coverage": "PQS_coverage",
}

type G4HunterAdapter struct {
	resource[domain.G4Hunter]
}

func NewG4HunterAdapter(client *Client) G4HunterAdapter {
	return G4HunterAdapter{resource[domain.G4Hunter]{
		client: client,
		kind:   "g4hunter analysis",
		base:   "analyse/g4hunter",
		decode: decodeG4Hunter,
	}}
}

type g4hunterBody struct {
	Sequence   string   `json:"sequence"`
	Tags       []string `json:"tags"`
	Threshold  float64  `json:"threshold"`
	WindowSize int64    `json:"windowSize"`
}

func (a G4HunterAdapter) Create(ctx context.Context, params domain.G4HunterParams) (domain.G4Hunter, error) {
	if err := params.Validate(); err != nil {
		return domain.G4Hunter{}, err
	}
	return a.create(ctx, g4hunterBody{
		Sequence:   params.SequenceID,
		Tags:       params.Tags.OrEmpty(),
		Threshold:  params.Threshold,
		WindowSize: params.WindowSize,
	}, http.StatusCreated, "payload")
}

func (a G4HunterAdapter) LoadResult(ctx context.Context, id string) (domain.Table, error) {
	return a.loadResult(ctx, id, "quadruplex", "items")
}

func (a G4HunterAdapter) ExportCSV(ctx context.Context, id string, opts domain.ExportOptions) (string, error) {
	return a.exportCSV(ctx, id, "quadruplex.csv", url.Values{"aggregate": {strconv.FormatBool(opts.Aggregate)}})
}

func (a G4HunterAdapter) LoadHeatmap(ctx context.Context, id string, segments int) (domain.Table, error) {
	return a.loadHeatmap(ctx, id, segments, g4hunterHeatmapColumns)
}
