package dnaapi

import (
	"fmt"

	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/tidwall/gjson"
)

func requireFields(r gjson.Result, kind string, fields ...string) error {
	if !r.IsObject() {
		return fmt.Errorf("decode %s: expected object, got %s", kind, r.Type)
	}
	for _, field := range fields {
		v := r.Get(field)
		if !v.Exists() || v.Type == gjson.Null || (v.Type == gjson.String && v.Str == "") {
			return fmt.Errorf("decode %s: missing required field %q", kind, field)
		}
	}
	return nil
}

func decodeList[R any](r gjson.Result, decode func(gjson.Result) (R, error)) ([]R, error) {
	items := r.Array()
	records := make([]R, 0, len(items))
	for _, item := range items {
		record, err := decode(item)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func decodeTags(r gjson.Result) domain.Tags {
	tags := domain.Tags{}
	for _, v := range r.Array() {
		tags = append(tags, v.String())
	}
	return tags
}

func optionalInt(r gjson.Result) *int64 {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	v := r.Int()
	return &v
}

func optionalFloat(r gjson.Result) *float64 {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	v := r.Float()
	return &v
}

// cell renders one JSON value as table text: scalars as their value,
// objects and arrays compacted.
func cell(v gjson.Result) string {
	switch {
	case !v.Exists(), v.Type == gjson.Null:
		return ""
	case v.IsObject(), v.IsArray():
		return v.Get("@ugly").Raw
	default:
		return v.String()
	}
}

func decodeTable(r gjson.Result) domain.Table {
	items := []gjson.Result{r}
	if r.IsArray() {
		items = r.Array()
	}

	rows := make([]domain.Row, 0, len(items))
	for _, item := range items {
		var row domain.Row
		item.ForEach(func(key, value gjson.Result) bool {
			row.Add(key.String(), cell(value))
			return true
		})
		rows = append(rows, row)
	}
	return domain.TableOf(rows...)
}

func decodeSequence(r gjson.Result) (domain.Sequence, error) {
	if err := requireFields(r, "sequence", "id", "name", "type"); err != nil {
		return domain.Sequence{}, err
	}

	seq := domain.Sequence{
		ID:           r.Get("id").String(),
		Name:         r.Get("name").String(),
		Created:      r.Get("created").String(),
		Type:         domain.NucleicType(r.Get("type").String()),
		Circular:     r.Get("circular").Bool(),
		Length:       optionalInt(r.Get("length")),
		NCBI:         r.Get("ncbi").String(),
		Tags:         decodeTags(r.Get("tags")),
		FastaComment: r.Get("fastaComment").String(),
	}
	if counts := r.Get("nucleicCounts"); counts.IsObject() {
		seq.NucleicCounts = map[string]int64{}
		counts.ForEach(func(key, value gjson.Result) bool {
			seq.NucleicCounts[key.String()] = value.Int()
			return true
		})
		seq.NucleicCountsRaw = cell(counts)
	}
	return seq, nil
}

func decodeAnalysis(r gjson.Result, kind string) (domain.Analysis, error) {
	if err := requireFields(r, kind, "id", "title"); err != nil {
		return domain.Analysis{}, err
	}
	return domain.Analysis{
		ID:         r.Get("id").String(),
		Title:      r.Get("title").String(),
		Tags:       decodeTags(r.Get("tags")),
		Created:    r.Get("created").String(),
		Finished:   r.Get("finished").String(),
		SequenceID: r.Get("sequenceId").String(),
	}, nil
}

func decodeG4Hunter(r gjson.Result) (domain.G4Hunter, error) {
	base, err := decodeAnalysis(r, "g4hunter analysis")
	if err != nil {
		return domain.G4Hunter{}, err
	}
	return domain.G4Hunter{
		Analysis:    base,
		ResultCount: optionalInt(r.Get("resultCount")),
		Threshold:   r.Get("threshold").Float(),
		WindowSize:  r.Get("windowSize").Int(),
		Frequency:   optionalFloat(r.Get("frequency")),
	}, nil
}

func decodeRLoopr(r gjson.Result) (domain.RLoopr, error) {
	base, err := decodeAnalysis(r, "rloopr analysis")
	if err != nil {
		return domain.RLoopr{}, err
	}
	return domain.RLoopr{
		Analysis:    base,
		ResultCount: optionalInt(r.Get("resultCount")),
		Model:       cell(r.Get("model")),
	}, nil
}

func decodeZDna(r gjson.Result) (domain.ZDna, error) {
	base, err := decodeAnalysis(r, "zdna analysis")
	if err != nil {
		return domain.ZDna{}, err
	}
	return domain.ZDna{
		Analysis:           base,
		ResultCount:        optionalInt(r.Get("resultCount")),
		Model:              cell(r.Get("selectedModel")),
		MinSequenceSize:    r.Get("minSequenceSize").Int(),
		GCScore:            r.Get("score_gc").Float(),
		GTACScore:          r.Get("score_gtac").Float(),
		ATScore:            r.Get("score_at").Float(),
		OthScore:           r.Get("score_oth").Float(),
		MinScorePercentage: r.Get("threshold").Float(),
	}, nil
}

func decodeCpG(r gjson.Result) (domain.CpG, error) {
	base, err := decodeAnalysis(r, "cpg analysis")
	if err != nil {
		return domain.CpG{}, err
	}
	return domain.CpG{
		Analysis:          base,
		ResultCount:       optionalInt(r.Get("resultCount")),
		MinWindowSize:     r.Get("minWindowSize").Int(),
		MinGCPercentage:   r.Get("minGcPercentage").Float(),
		MinObsExpCpG:      r.Get("minObservedToExpectedCpG").Float(),
		MinIslandMergeGap: r.Get("minIslandMergeGap").Int(),
		SecondNucleotide:  r.Get("secondNucleotide").String(),
	}, nil
}

func decodeG4Killer(r gjson.Result) (domain.G4Killer, error) {
	if err := requireFields(r, "g4killer result", "originSequence"); err != nil {
		return domain.G4Killer{}, err
	}

	var mutations []string
	if seqs := r.Get("mutationSequences"); seqs.IsArray() {
		for _, s := range seqs.Array() {
			mutations = append(mutations, s.String())
		}
	} else if seqs.Exists() && seqs.Type != gjson.Null {
		mutations = []string{seqs.String()}
	}

	return domain.G4Killer{
		OriginSequence:    r.Get("originSequence").String(),
		OriginScore:       r.Get("originScore").Float(),
		TargetThreshold:   r.Get("targetThreshold").Float(),
		MutationSequences: mutations,
		MutationScore:     r.Get("mutationScore").Float(),
		ChangeCount:       r.Get("changeCount").Int(),
		MutationVariants:  cell(r.Get("mutationVariants")),
		OnComplementary:   r.Get("onComplementary").Bool(),
	}, nil
}

func decodeP53(r gjson.Result) (domain.P53, error) {
	if err := requireFields(r, "p53 result", "sequence"); err != nil {
		return domain.P53{}, err
	}
	return domain.P53{
		Sequence:   r.Get("sequence").String(),
		Position:   r.Get("position").Int(),
		Length:     r.Get("length").Int(),
		Difference: r.Get("difference").Float(),
		Predictor:  cell(r.Get("predictor")),
		Affinity:   r.Get("affinity").Float(),
	}, nil
}

func decodeBatch(r gjson.Result) (domain.Batch, error) {
	if err := requireFields(r, "batch", "status"); err != nil {
		return domain.Batch{}, err
	}
	return domain.Batch{
		Name:      r.Get("name").String(),
		Status:    domain.BatchStatus(r.Get("status").String()),
		Progress:  r.Get("progress").Float(),
		CPUTime:   r.Get("cpuTime").Float(),
		Created:   r.Get("created").String(),
		Started:   r.Get("started").String(),
		Finished:  r.Get("finished").String(),
		Exception: cell(r.Get("exception")),
	}, nil
}
