package dnaapi

import (
	"context"
	"net/http"

	"github.com/bnema/dna-analyser-cli/internal/domain"
)

type RLooprAdapter struct {
	resource[domain.RLoopr]
}

func NewRLooprAdapter(client *Client) RLooprAdapter {
	return RLooprAdapter{resource[domain.RLoopr]{
		client: client,
		kind:   "rloopr analysis",
		base:   "analyse/rloopr",
		detail: "analysis",
		decode: decodeRLoopr,
	}}
}

type rlooprBody struct {
	Sequence string   `json:"sequence"`
	Tags     []string `json:"tags"`
	RIZModel []int    `json:"rizModel"`
}

func (a RLooprAdapter) Create(ctx context.Context, params domain.RLooprParams) (domain.RLoopr, error) {
	if err := params.Validate(); err != nil {
		return domain.RLoopr{}, err
	}
	models := params.Models
	if models == nil {
		models = []int{}
	}
	return a.create(ctx, rlooprBody{
		Sequence: params.SequenceID,
		Tags:     params.Tags.OrEmpty(),
		RIZModel: models,
	}, http.StatusOK, "payload")
}

func (a RLooprAdapter) LoadResult(ctx context.Context, id string) (domain.Table, error) {
	return a.loadResult(ctx, id, "rloops", "payload")
}

// ExportCSV ignores opts; the R-loop export has no options.
func (a RLooprAdapter) ExportCSV(ctx context.Context, id string, _ domain.ExportOptions) (string, error) {
	return a.exportCSV(ctx, id, "rloopr.csv", nil)
}
