package domain

import (
	"errors"
	"fmt"
)

type TextSequenceRequest struct {
	Name     string      `validate:"required"`
	Data     string      `validate:"required"`
	Type     NucleicType `validate:"oneof=DNA RNA"`
	Circular bool
	Tags     Tags
}

func (r TextSequenceRequest) Validate() error {
	return validateStruct("text sequence", r)
}

type FileSequenceRequest struct {
	Name     string         `validate:"required"`
	Path     string         `validate:"required"`
	Format   SequenceFormat `validate:"oneof=FASTA PLAIN"`
	Type     NucleicType    `validate:"oneof=DNA RNA"`
	Circular bool
	Tags     Tags
}

func (r FileSequenceRequest) Validate() error {
	return validateStruct("file sequence", r)
}

type NCBISequenceRequest struct {
	Name     string `validate:"required"`
	NCBIID   string `validate:"required"`
	Circular bool
	Tags     Tags
}

func (r NCBISequenceRequest) Validate() error {
	return validateStruct("ncbi sequence", r)
}

// SequenceSlice addresses at most 1000 nucleotides of a stored sequence.
type SequenceSlice struct {
	Position int64 `validate:"gte=0"`
	Length   int64 `validate:"gt=0,lte=1000"`
}

// Validate also checks the slice against the stored sequence length when
// the server has reported one.
func (s SequenceSlice) Validate(seq Sequence) error {
	if err := validateStruct("sequence slice", s); err != nil {
		return err
	}
	if seq.Length != nil && s.Position+s.Length > *seq.Length {
		return &ValidationError{
			Op:  "sequence slice",
			Err: fmt.Errorf("position %d + length %d exceeds sequence length %d", s.Position, s.Length, *seq.Length),
		}
	}
	return nil
}

type G4HunterParams struct {
	SequenceID string  `validate:"required"`
	Threshold  float64 `validate:"gte=0.1,lte=4"`
	WindowSize int64   `validate:"gte=10,lte=100"`
	Tags       Tags
}

func DefaultG4HunterParams() G4HunterParams {
	return G4HunterParams{Threshold: 1.2, WindowSize: 25}
}

func (p G4HunterParams) Validate() error {
	return validateStruct("g4hunter parameters", p)
}

// RLooprParams selects the R-loop initiation zone models: 0 for 2G
// clusters, 1 for 3G clusters. No model runs the default detection.
type RLooprParams struct {
	SequenceID string `validate:"required"`
	Models     []int  `validate:"dive,oneof=0 1"`
	Tags       Tags
}

// RIZModels builds the model list from the cluster switches.
func RIZModels(cluster2G, cluster3G bool) []int {
	models := []int{}
	if cluster2G {
		models = append(models, 0)
	}
	if cluster3G {
		models = append(models, 1)
	}
	return models
}

func (p RLooprParams) Validate() error {
	return validateStruct("rloopr parameters", p)
}

type ZDnaParams struct {
	SequenceID         string   `validate:"required"`
	Models             []string `validate:"min=1"`
	MinSequenceSize    int64    `validate:"gte=6"`
	GCScore            float64  `validate:"gte=0.1"`
	GTACScore          float64  `validate:"gte=0"`
	ATScore            float64  `validate:"gte=0"`
	OthScore           float64
	MinScorePercentage float64 `validate:"gte=12"`
	Tags               Tags
}

func DefaultZDnaParams() ZDnaParams {
	return ZDnaModelParams("model1")
}

// ZDnaModelParams returns the scoring defaults of a Z-DNA model; unknown
// models fall back to model1.
func ZDnaModelParams(model string) ZDnaParams {
	if model == "model2" {
		return ZDnaParams{
			Models:             []string{"model2"},
			MinSequenceSize:    10,
			GCScore:            2,
			GTACScore:          1,
			ATScore:            0.5,
			MinScorePercentage: 50,
		}
	}
	return ZDnaParams{
		Models:             []string{"model1"},
		MinSequenceSize:    10,
		GCScore:            25,
		GTACScore:          3,
		MinScorePercentage: 12,
	}
}

func (p ZDnaParams) Validate() error {
	return validateStruct("zdna parameters", p)
}

type CpGParams struct {
	SequenceID        string  `validate:"required"`
	MinWindowSize     int64   `validate:"gte=10,lte=10000"`
	MinGCPercentage   float64 `validate:"gte=0,lte=1"`
	MinObsExpCpG      float64 `validate:"gte=0,lte=1"`
	MinIslandMergeGap int64   `validate:"gte=10,lte=10000"`
	SecondNucleotide  string  `validate:"oneof=G A T C"`
	Tags              Tags
}

func DefaultCpGParams() CpGParams {
	return CpGParams{
		MinWindowSize:     200,
		MinGCPercentage:   0.5,
		MinObsExpCpG:      0.6,
		MinIslandMergeGap: 100,
		SecondNucleotide:  "G",
	}
}

func (p CpGParams) Validate() error {
	return validateStruct("cpg parameters", p)
}

type G4KillerParams struct {
	Sequence      string  `validate:"required,max=200"`
	Threshold     float64 `validate:"gte=0,lte=4"`
	Complementary bool
}

func (p G4KillerParams) Validate() error {
	return validateStruct("g4killer parameters", p)
}

type P53Params struct {
	Sequence string `validate:"len=20"`
}

func (p P53Params) Validate() error {
	return validateStruct("p53 parameters", p)
}

type ExportOptions struct {
	// Aggregate merges overlapping G4Hunter windows; other tools ignore it.
	Aggregate bool
}

// ValidateSegments checks a heatmap segment count.
func ValidateSegments(segments int) error {
	if segments <= 0 {
		return &ValidationError{Op: "heatmap", Err: errors.New("segments must be positive")}
	}
	return nil
}
