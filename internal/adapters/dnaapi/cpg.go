package dnaapi

import (
	"context"
	"net/http"

	"github.com/bnema/dna-analyser-cli/internal/domain"
)

type CpGAdapter struct {
	resource[domain.CpG]
}

func NewCpGAdapter(client *Client) CpGAdapter {
	return CpGAdapter{resource[domain.CpG]{
		client: client,
		kind:   "cpg analysis",
		base:   "analyse/cpg",
		detail: "analysis",
		decode: decodeCpG,
	}}
}

type cpgBody struct {
	Sequence                 string   `json:"sequence"`
	Tags                     []string `json:"tags"`
	MinWindowSize            int64    `json:"minWindowSize"`
	MinGCPercentage          float64  `json:"minGcPercentage"`
	MinObservedToExpectedCpG float64  `json:"minObservedToExpectedCpG"`
	MinIslandMergeGap        int64    `json:"minIslandMergeGap"`
	FirstNucleotide          string   `json:"firstNucleotide"`
	SecondNucleotide         string   `json:"secondNucleotide"`
}

func (a CpGAdapter) Create(ctx context.Context, params domain.CpGParams) (domain.CpG, error) {
	if err := params.Validate(); err != nil {
		return domain.CpG{}, err
	}
	return a.create(ctx, cpgBody{
		Sequence:                 params.SequenceID,
		Tags:                     params.Tags.OrEmpty(),
		MinWindowSize:            params.MinWindowSize,
		MinGCPercentage:          params.MinGCPercentage,
		MinObservedToExpectedCpG: params.MinObsExpCpG,
		MinIslandMergeGap:        params.MinIslandMergeGap,
		FirstNucleotide:          "C",
		SecondNucleotide:         params.SecondNucleotide,
	}, http.StatusOK, "payload")
}

func (a CpGAdapter) LoadResult(ctx context.Context, id string) (domain.Table, error) {
	return a.loadResult(ctx, id, "cpg", "items")
}

func (a CpGAdapter) ExportCSV(ctx context.Context, id string, _ domain.ExportOptions) (string, error) {
	return a.exportCSV(ctx, id, "cpg.csv", nil)
}
