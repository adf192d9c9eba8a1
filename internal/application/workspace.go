package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/bnema/dna-analyser-cli/internal/ports"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const DefaultParallel = 4

type WorkspaceDeps struct {
	Session   domain.Session
	Sequences ports.SequenceStore
	G4Hunter  ports.G4HunterTool
	RLoopr    ports.RLooprTool
	ZDna      ports.ZDnaTool
	CpG       ports.CpGTool
	G4Killer  ports.G4KillerTool
	P53       ports.P53Tool
	Poller    *Poller
	Parser    ports.SequenceParser
	// Parallel bounds AnalyseMany; zero means DefaultParallel.
	Parallel int
}

// Workspace is everything one logged-in user can do against the server.
// Job-producing calls return only after the server finished the job.
type Workspace struct {
	session   domain.Session
	sequences ports.SequenceStore
	g4hunter  ports.G4HunterTool
	rloopr    ports.RLooprTool
	zdna      ports.ZDnaTool
	cpg       ports.CpGTool
	g4killer  ports.G4KillerTool
	p53       ports.P53Tool
	poller    *Poller
	parser    ports.SequenceParser
	parallel  int
}

func NewWorkspace(deps WorkspaceDeps) (*Workspace, error) {
	if deps.Sequences == nil {
		return nil, errors.New("workspace needs a sequence store")
	}
	if deps.Poller == nil {
		return nil, errors.New("workspace needs a poller")
	}
	if deps.Parallel <= 0 {
		deps.Parallel = DefaultParallel
	}

	return &Workspace{
		session:   deps.Session,
		sequences: deps.Sequences,
		g4hunter:  deps.G4Hunter,
		rloopr:    deps.RLoopr,
		zdna:      deps.ZDna,
		cpg:       deps.CpG,
		g4killer:  deps.G4Killer,
		p53:       deps.P53,
		poller:    deps.Poller,
		parser:    deps.Parser,
		parallel:  deps.Parallel,
	}, nil
}

func (w *Workspace) Session() domain.Session {
	return w.session
}

func (w *Workspace) Sequences() ports.SequenceStore { return w.sequences }
func (w *Workspace) G4Hunter() ports.G4HunterTool   { return w.g4hunter }
func (w *Workspace) RLoopr() ports.RLooprTool       { return w.rloopr }
func (w *Workspace) ZDna() ports.ZDnaTool           { return w.zdna }
func (w *Workspace) CpG() ports.CpGTool             { return w.cpg }

// runAndReload submits create through the poller and loads the finished
// record again, since the creation response predates the job result.
func runAndReload[R any](ctx context.Context, w *Workspace, name string, kind domain.ResourceKind, create func(context.Context) (R, error), handleOf func(R) domain.JobHandle, loader ports.Loader[R]) (R, error) {
	var zero R
	handle, err := w.poller.Run(ctx, Job{
		Name: name,
		Kind: kind,
		Submit: func(ctx context.Context) (domain.JobHandle, error) {
			record, err := create(ctx)
			if err != nil {
				return domain.JobHandle{}, err
			}
			handle := handleOf(record)
			handle.Owner = w.session.UserID
			return handle, nil
		},
	})
	if err != nil {
		return zero, err
	}

	record, err := loader.LoadByID(ctx, handle.ID)
	if err != nil {
		return zero, fmt.Errorf("reload %s %s: %w", kind.Label(), handle.ID, err)
	}
	return record, nil
}

func sequenceHandle(s domain.Sequence) domain.JobHandle { return s.Handle() }

func (w *Workspace) UploadText(ctx context.Context, req domain.TextSequenceRequest) (domain.Sequence, error) {
	return runAndReload(ctx, w, req.Name, domain.KindSequence, func(ctx context.Context) (domain.Sequence, error) {
		return w.sequences.CreateText(ctx, req)
	}, sequenceHandle, w.sequences)
}

func (w *Workspace) UploadFile(ctx context.Context, req domain.FileSequenceRequest) (domain.Sequence, error) {
	return runAndReload(ctx, w, req.Name, domain.KindSequence, func(ctx context.Context) (domain.Sequence, error) {
		return w.sequences.CreateFile(ctx, req)
	}, sequenceHandle, w.sequences)
}

func (w *Workspace) UploadNCBI(ctx context.Context, req domain.NCBISequenceRequest) (domain.Sequence, error) {
	return runAndReload(ctx, w, req.Name, domain.KindSequence, func(ctx context.Context) (domain.Sequence, error) {
		return w.sequences.CreateNCBI(ctx, req)
	}, sequenceHandle, w.sequences)
}

// UploadMultiFASTA uploads every record of a FASTA file one after another.
// template supplies type, circularity and tags; the name and nucleotides
// come from each record. Sequences uploaded before a failure are returned
// alongside the joined errors.
func (w *Workspace) UploadMultiFASTA(ctx context.Context, path string, template domain.TextSequenceRequest) ([]domain.Sequence, error) {
	if w.parser == nil {
		return nil, errors.New("workspace has no fasta parser")
	}
	records, err := w.parser.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if template.Type == "" {
		template.Type = domain.NucleicDNA
	}
	if template.Tags == nil {
		template.Tags = domain.Tags{}
	}

	var (
		uploaded []domain.Sequence
		errs     []error
	)
	for _, record := range records {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		req := template
		req.Name = domain.NormalizeName(record.Name)
		req.Data = record.Nucleotides

		seq, err := w.UploadText(ctx, req)
		if err != nil {
			log.Warn().Err(err).Str("record", record.Name).Msg("fasta record upload failed")
			errs = append(errs, fmt.Errorf("upload %s: %w", record.Name, err))
			continue
		}
		uploaded = append(uploaded, seq)
	}
	return uploaded, errors.Join(errs...)
}

func analysisName(seq domain.Sequence) string {
	return domain.NormalizeName(seq.Name)
}

func inheritTags(tags domain.Tags, seq domain.Sequence) domain.Tags {
	if tags == nil {
		return seq.Tags
	}
	return tags
}

func (w *Workspace) AnalyseG4Hunter(ctx context.Context, seq domain.Sequence, params domain.G4HunterParams) (domain.G4Hunter, error) {
	if w.g4hunter == nil {
		return domain.G4Hunter{}, errors.New("workspace has no g4hunter tool")
	}
	params.SequenceID = seq.ID
	params.Tags = inheritTags(params.Tags, seq)
	if err := params.Validate(); err != nil {
		return domain.G4Hunter{}, err
	}
	return runAndReload(ctx, w, analysisName(seq), domain.KindG4Hunter, func(ctx context.Context) (domain.G4Hunter, error) {
		return w.g4hunter.Create(ctx, params)
	}, domain.G4Hunter.Handle, w.g4hunter)
}

func (w *Workspace) AnalyseRLoopr(ctx context.Context, seq domain.Sequence, params domain.RLooprParams) (domain.RLoopr, error) {
	if w.rloopr == nil {
		return domain.RLoopr{}, errors.New("workspace has no rloopr tool")
	}
	params.SequenceID = seq.ID
	params.Tags = inheritTags(params.Tags, seq)
	if err := params.Validate(); err != nil {
		return domain.RLoopr{}, err
	}
	return runAndReload(ctx, w, analysisName(seq), domain.KindRLoopr, func(ctx context.Context) (domain.RLoopr, error) {
		return w.rloopr.Create(ctx, params)
	}, domain.RLoopr.Handle, w.rloopr)
}

func (w *Workspace) AnalyseZDna(ctx context.Context, seq domain.Sequence, params domain.ZDnaParams) (domain.ZDna, error) {
	if w.zdna == nil {
		return domain.ZDna{}, errors.New("workspace has no zdna tool")
	}
	params.SequenceID = seq.ID
	params.Tags = inheritTags(params.Tags, seq)
	if err := params.Validate(); err != nil {
		return domain.ZDna{}, err
	}
	return runAndReload(ctx, w, analysisName(seq), domain.KindZDna, func(ctx context.Context) (domain.ZDna, error) {
		return w.zdna.Create(ctx, params)
	}, domain.ZDna.Handle, w.zdna)
}

func (w *Workspace) AnalyseCpG(ctx context.Context, seq domain.Sequence, params domain.CpGParams) (domain.CpG, error) {
	if w.cpg == nil {
		return domain.CpG{}, errors.New("workspace has no cpg tool")
	}
	params.SequenceID = seq.ID
	params.Tags = inheritTags(params.Tags, seq)
	if err := params.Validate(); err != nil {
		return domain.CpG{}, err
	}
	return runAndReload(ctx, w, analysisName(seq), domain.KindCpG, func(ctx context.Context) (domain.CpG, error) {
		return w.cpg.Create(ctx, params)
	}, domain.CpG.Handle, w.cpg)
}

// AnalyseMany runs fn for every sequence with at most Parallel in flight.
// A failing sequence does not stop the others; all failures are joined.
func (w *Workspace) AnalyseMany(ctx context.Context, sequences []domain.Sequence, fn func(context.Context, domain.Sequence) error) error {
	var (
		group errgroup.Group
		mu    sync.Mutex
		errs  []error
	)
	group.SetLimit(w.parallel)

	for _, seq := range sequences {
		group.Go(func() error {
			if err := fn(ctx, seq); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", seq.Name, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = group.Wait()
	return errors.Join(errs...)
}

// ExportCSV writes the server CSV export of analysis into dir and returns
// the written path.
func (w *Workspace) ExportCSV(ctx context.Context, exporter ports.CSVExporter, analysis domain.Analysis, dir string, opts domain.ExportOptions) (string, error) {
	csv, err := exporter.ExportCSV(ctx, analysis.ID, opts)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s_result.csv", domain.NormalizeName(analysis.Title), analysis.ID))
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// SequenceData loads the sequence first so the slice can be checked
// against its length.
func (w *Workspace) SequenceData(ctx context.Context, id string, slice domain.SequenceSlice) (string, error) {
	seq, err := w.sequences.LoadByID(ctx, id)
	if err != nil {
		return "", err
	}
	return w.sequences.LoadData(ctx, seq, slice)
}

func (w *Workspace) RunG4Killer(ctx context.Context, params domain.G4KillerParams) (domain.G4Killer, error) {
	if w.g4killer == nil {
		return domain.G4Killer{}, errors.New("workspace has no g4killer tool")
	}
	return w.g4killer.Run(ctx, params)
}

func (w *Workspace) RunP53(ctx context.Context, params domain.P53Params) (domain.P53, error) {
	if w.p53 == nil {
		return domain.P53{}, errors.New("workspace has no p53 tool")
	}
	return w.p53.Run(ctx, params)
}

// IntersectG4Hunter counts the hits of a finished G4Hunter analysis around
// annotated features. An analysis without hits yields zero counts without
// fetching its result.
func (w *Workspace) IntersectG4Hunter(ctx context.Context, analysis domain.G4Hunter, features []domain.Feature, area int64) (domain.Intersection, error) {
	if err := domain.ValidateIntersectionArea(area); err != nil {
		return domain.Intersection{}, err
	}
	if w.g4hunter == nil {
		return domain.Intersection{}, errors.New("workspace has no g4hunter tool")
	}

	var hits []domain.Quadruplex
	if analysis.ResultCount == nil || *analysis.ResultCount > 0 {
		result, err := w.g4hunter.LoadResult(ctx, analysis.ID)
		if err != nil {
			return domain.Intersection{}, err
		}
		hits, err = domain.QuadruplexesFromTable(result)
		if err != nil {
			return domain.Intersection{}, fmt.Errorf("g4hunter %s: %w", analysis.ID, err)
		}
	}

	log.Debug().Str("analysis", analysis.ID).Int("hits", len(hits)).Int("features", len(features)).Msg("intersecting g4hunter result")
	return domain.Intersect(features, hits, area)
}
