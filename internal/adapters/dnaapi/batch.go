package dnaapi

import (
	"context"
	"fmt"
	"net/http"
	"path"

	"github.com/bnema/dna-analyser-cli/internal/domain"
)

var batchEndpoints = map[domain.ResourceKind]string{
	domain.KindSequence: "batch/cz.mendelu.dnaAnalyser.sequence.Sequence",
	domain.KindG4Hunter: "batch/cz.mendelu.dnaAnalyser.analyse.g4hunter.G4Hunter",
	domain.KindRLoopr:   "batch/cz.mendelu.dnaAnalyser.analyse.rloopr.Rloop",
	domain.KindZDna:     "batch/cz.mendelu.dnaAnalyser.analyse.zdna.ZDna",
	domain.KindCpG:      "batch/cz.mendelu.dnaAnalyser.analyse.cpg.CpG",
}

type BatchAdapter struct {
	client *Client
}

func NewBatchAdapter(client *Client) BatchAdapter {
	return BatchAdapter{client: client}
}

func (a BatchAdapter) BatchStatus(ctx context.Context, kind domain.ResourceKind, id string) (domain.Batch, error) {
	base, ok := batchEndpoints[kind]
	if !ok {
		return domain.Batch{}, fmt.Errorf("no batch endpoint for resource kind %q", kind)
	}
	if id == "" {
		return domain.Batch{}, &domain.ValidationError{Op: "batch status", Err: fmt.Errorf("%s id is required", kind.Label())}
	}

	var batch domain.Batch
	err := a.client.Retry.Do(ctx, "batch status", func() error {
		payload, err := a.client.Call(ctx, Request{
			Method: http.MethodGet,
			Path:   path.Join(base, id),
			Accept: mimeJSON,
			Expect: http.StatusOK,
		})
		if err != nil {
			return err
		}
		batch, err = decodeBatch(payload.Data)
		return err
	})
	if err != nil {
		return domain.Batch{}, fmt.Errorf("query %s %s batch: %w", kind.Label(), id, err)
	}
	return batch, nil
}
