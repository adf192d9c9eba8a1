package dnaapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/bnema/dna-analyser-cli/internal/domain"
)

// G4KillerAdapter and P53Adapter call synchronous tools: the result comes
// back in the creation response and nothing is polled.
type G4KillerAdapter struct {
	tool resource[domain.G4Killer]
}

func NewG4KillerAdapter(client *Client) G4KillerAdapter {
	return G4KillerAdapter{tool: resource[domain.G4Killer]{
		client: client,
		kind:   "g4killer",
		base:   "analyse/g4killer",
		decode: decodeG4Killer,
	}}
}

type g4killerBody struct {
	Sequence        string  `json:"sequence"`
	Threshold       float64 `json:"threshold"`
	OnComplementary string  `json:"onComplementary"`
}

func (a G4KillerAdapter) Run(ctx context.Context, params domain.G4KillerParams) (domain.G4Killer, error) {
	if err := params.Validate(); err != nil {
		return domain.G4Killer{}, err
	}
	return a.tool.create(ctx, g4killerBody{
		Sequence:        params.Sequence,
		Threshold:       params.Threshold,
		OnComplementary: strconv.FormatBool(params.Complementary),
	}, http.StatusCreated, "")
}

type P53Adapter struct {
	tool resource[domain.P53]
}

func NewP53Adapter(client *Client) P53Adapter {
	return P53Adapter{tool: resource[domain.P53]{
		client: client,
		kind:   "p53 prediction",
		base:   "analyse/p53predictor/tool",
		decode: decodeP53,
	}}
}

type p53Body struct {
	Sequence string `json:"sequence"`
}

func (a P53Adapter) Run(ctx context.Context, params domain.P53Params) (domain.P53, error) {
	if err := params.Validate(); err != nil {
		return domain.P53{}, err
	}
	return a.tool.create(ctx, p53Body{Sequence: params.Sequence}, http.StatusOK, "payload")
}
