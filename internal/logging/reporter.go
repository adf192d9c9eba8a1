package logging

import (
	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/rs/zerolog/log"
)

// Reporter logs job progress instead of drawing it.
type Reporter struct{}

func (Reporter) Start(name string, kind domain.ResourceKind) {
	log.Info().Str("job", name).Str("kind", kind.Label()).Int("progress", 50).Msg("job accepted")
}

func (Reporter) Update(name string, status domain.BatchStatus) {
	log.Debug().Str("job", name).Str("status", string(status)).Msg("job pending")
}

func (Reporter) Finish(name string) {
	log.Info().Str("job", name).Int("progress", 100).Msg("job finished")
}

func (Reporter) Fail(name string, err error) {
	log.Error().Err(err).Str("job", name).Msg("job failed")
}
