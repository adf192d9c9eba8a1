package ports

import (
	"context"

	"github.com/bnema/dna-analyser-cli/internal/domain"
)

// ProgressReporter receives the life cycle of one polled job. Start means
// the server acknowledged the creation.
type ProgressReporter interface {
	Start(name string, kind domain.ResourceKind)
	Update(name string, status domain.BatchStatus)
	Finish(name string)
	Fail(name string, err error)
}

type BatchStatusQuerier interface {
	BatchStatus(ctx context.Context, kind domain.ResourceKind, id string) (domain.Batch, error)
}
