package ports

import (
	"context"
	"io"

	"github.com/bnema/dna-analyser-cli/internal/domain"
)

type Lister[R any] interface {
	LoadAll(ctx context.Context, tags domain.Tags) ([]R, error)
}

type Loader[R any] interface {
	LoadByID(ctx context.Context, id string) (R, error)
}

type Deleter interface {
	Delete(ctx context.Context, id string) (bool, error)
}

type ResultLoader interface {
	LoadResult(ctx context.Context, id string) (domain.Table, error)
}

type CSVExporter interface {
	ExportCSV(ctx context.Context, id string, opts domain.ExportOptions) (string, error)
}

type HeatmapLoader interface {
	LoadHeatmap(ctx context.Context, id string, segments int) (domain.Table, error)
}

type SequenceStore interface {
	Lister[domain.Sequence]
	Loader[domain.Sequence]
	Deleter
	CreateText(ctx context.Context, req domain.TextSequenceRequest) (domain.Sequence, error)
	CreateFile(ctx context.Context, req domain.FileSequenceRequest) (domain.Sequence, error)
	CreateNCBI(ctx context.Context, req domain.NCBISequenceRequest) (domain.Sequence, error)
	LoadData(ctx context.Context, seq domain.Sequence, slice domain.SequenceSlice) (string, error)
	RecountNucleic(ctx context.Context, id string) (bool, error)
}

// AnalysisTool is the read side every analysis adapter offers.
type AnalysisTool[R any] interface {
	Lister[R]
	Loader[R]
	Deleter
	ResultLoader
	CSVExporter
}

type G4HunterTool interface {
	AnalysisTool[domain.G4Hunter]
	HeatmapLoader
	Create(ctx context.Context, params domain.G4HunterParams) (domain.G4Hunter, error)
}

type RLooprTool interface {
	AnalysisTool[domain.RLoopr]
	Create(ctx context.Context, params domain.RLooprParams) (domain.RLoopr, error)
}

type ZDnaTool interface {
	AnalysisTool[domain.ZDna]
	HeatmapLoader
	Create(ctx context.Context, params domain.ZDnaParams) (domain.ZDna, error)
}

type CpGTool interface {
	AnalysisTool[domain.CpG]
	Create(ctx context.Context, params domain.CpGParams) (domain.CpG, error)
}

type G4KillerTool interface {
	Run(ctx context.Context, params domain.G4KillerParams) (domain.G4Killer, error)
}

type P53Tool interface {
	Run(ctx context.Context, params domain.P53Params) (domain.P53, error)
}

type SequenceParser interface {
	ParseFile(path string) ([]domain.FastaRecord, error)
}

// AnnotationSource fetches the raw NCBI feature table of a record.
type AnnotationSource interface {
	FeatureTable(ctx context.Context, ncbiID string) (string, error)
}

type AnnotationParser interface {
	ParseFeatureTable(r io.Reader) ([]domain.Feature, error)
	ParseFile(path string) ([]domain.Feature, error)
}

// PlotSink draws a table; no implementation ships with the CLI.
type PlotSink interface {
	Plot(table domain.Table, xLabel, yLabel string) error
}
