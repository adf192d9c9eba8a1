package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/bnema/dna-analyser-cli/internal/ports"
	"github.com/rs/zerolog/log"
)

const DefaultPollInterval = 500 * time.Millisecond

// Job is a server job that has not been submitted yet. Submit is called
// exactly once.
type Job struct {
	Name   string
	Kind   domain.ResourceKind
	Submit func(ctx context.Context) (domain.JobHandle, error)
}

// Poller drives a submitted job to a terminal batch status. It has no
// deadline of its own; cancel ctx to stop waiting.
type Poller struct {
	batches  ports.BatchStatusQuerier
	progress ports.ProgressReporter
	clock    ports.Clock
	interval time.Duration
}

func NewPoller(batches ports.BatchStatusQuerier, progress ports.ProgressReporter, clock ports.Clock, interval time.Duration) *Poller {
	if progress == nil {
		progress = silentReporter{}
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{batches: batches, progress: progress, clock: clock, interval: interval}
}

func (p *Poller) Run(ctx context.Context, job Job) (domain.JobHandle, error) {
	if job.Submit == nil {
		return domain.JobHandle{}, errors.New("job has no submit function")
	}

	handle, err := job.Submit(ctx)
	if err != nil {
		return domain.JobHandle{}, fmt.Errorf("submit %s: %w", job.Name, err)
	}
	if handle.Kind == "" {
		handle.Kind = job.Kind
	}
	return p.Wait(ctx, job.Name, handle)
}

// Wait polls the batch status of an already submitted job.
func (p *Poller) Wait(ctx context.Context, name string, handle domain.JobHandle) (domain.JobHandle, error) {
	if handle.ID == "" {
		return handle, errors.New("job handle has no id")
	}

	p.progress.Start(name, handle.Kind)
	logger := log.With().Str("job", name).Str("kind", string(handle.Kind)).Str("id", handle.ID).Logger()

	var last domain.BatchStatus
	for {
		batch, err := p.batches.BatchStatus(ctx, handle.Kind, handle.ID)
		if err != nil {
			p.progress.Fail(name, err)
			return handle, fmt.Errorf("poll %s: %w", name, err)
		}
		if batch.Status != last {
			logger.Debug().Str("status", string(batch.Status)).Float64("progress", batch.Progress).Msg("batch status changed")
			last = batch.Status
		}

		switch batch.Status {
		case domain.BatchFinish:
			finished, ok := domain.ParseTimestamp(batch.Finished)
			if !ok {
				finished = p.clock.Now()
			}
			handle.Finished = &finished
			p.progress.Finish(name)
			logger.Info().Msg("job finished")
			return handle, nil
		case domain.BatchFailed:
			failure := &domain.BatchFailedError{Handle: handle, Batch: batch}
			p.progress.Fail(name, failure)
			logger.Error().Str("exception", batch.Exception).Msg("job failed")
			return handle, failure
		case domain.BatchCreated, domain.BatchWaiting, domain.BatchRunning:
			p.progress.Update(name, batch.Status)
		default:
			err := fmt.Errorf("poll %s: unknown batch status %q", name, batch.Status)
			p.progress.Fail(name, err)
			return handle, err
		}

		timer := time.NewTimer(p.interval)
		select {
		case <-ctx.Done():
			if !timer.Stop() {
				<-timer.C
			}
			p.progress.Fail(name, ctx.Err())
			return handle, ctx.Err()
		case <-timer.C:
		}
	}
}

type silentReporter struct{}

func (silentReporter) Start(string, domain.ResourceKind) {}
func (silentReporter) Update(string, domain.BatchStatus) {}
func (silentReporter) Finish(string)                     {}
func (silentReporter) Fail(string, error)                {}
