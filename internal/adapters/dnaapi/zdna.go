package dnaapi

import (
	"context"
	"net/http"

	"github.com/bnema/dna-analyser-cli/internal/domain"
)

var zdnaHeatmapColumns = map[string]string{
	"count":    "Z-DNA_count",
	"coverage": "Z-DNA_coverage",
}

type ZDnaAdapter struct {
	resource[domain.ZDna]
}

func NewZDnaAdapter(client *Client) ZDnaAdapter {
	return ZDnaAdapter{resource[domain.ZDna]{
		client: client,
		kind:   "zdna analysis",
		base:   "analyse/zdna",
		detail: "analysis",
		decode: decodeZDna,
	}}
}

type zdnaBody struct {
	Sequence        string   `json:"sequence"`
	Tags            []string `json:"tags"`
	MinSequenceSize int64    `json:"minSequenceSize"`
	SelectedModel   []string `json:"selectedModel"`
	ScoreGC         float64  `json:"score_gc"`
	ScoreGTAC       float64  `json:"score_gtac"`
	ScoreAT         float64  `json:"score_at"`
	ScoreOth        float64  `json:"score_oth"`
	Threshold       float64  `json:"threshold"`
}

func (a ZDnaAdapter) Create(ctx context.Context, params domain.ZDnaParams) (domain.ZDna, error) {
	if err := params.Validate(); err != nil {
		return domain.ZDna{}, err
	}
	return a.create(ctx, zdnaBody{
		Sequence:        params.SequenceID,
		Tags:            params.Tags.OrEmpty(),
		MinSequenceSize: params.MinSequenceSize,
		SelectedModel:   params.Models,
		ScoreGC:         params.GCScore,
		ScoreGTAC:       params.GTACScore,
		ScoreAT:         params.ATScore,
		ScoreOth:        params.OthScore,
		Threshold:       params.MinScorePercentage,
	}, http.StatusOK, "payload")
}

func (a ZDnaAdapter) LoadResult(ctx context.Context, id string) (domain.Table, error) {
	return a.loadResult(ctx, id, "zdnas", "items")
}

func (a ZDnaAdapter) ExportCSV(ctx context.Context, id string, _ domain.ExportOptions) (string, error) {
	return a.exportCSV(ctx, id, "zdna.csv", nil)
}

func (a ZDnaAdapter) LoadHeatmap(ctx context.Context, id string, segments int) (domain.Table, error) {
	return a.loadHeatmap(ctx, id, segments, zdnaHeatmapColumns)
}
