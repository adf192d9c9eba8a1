package domain

import "strconv"

// Analysis holds the fields every analysis record shares.
type Analysis struct {
	ID         string
	Title      string
	Tags       Tags
	Created    string
	Finished   string
	SequenceID string
}

func (a Analysis) handle(kind ResourceKind) JobHandle {
	created, _ := ParseTimestamp(a.Created)
	return JobHandle{ID: a.ID, Kind: kind, Created: created, Finished: finishedAt(a.Finished)}
}

func (a Analysis) row() Row {
	var row Row
	row.Add("id", a.ID)
	row.Add("title", a.Title)
	row.Add("created", a.Created)
	row.Add("finished", a.Finished)
	row.Add("tags", a.Tags.String())
	row.Add("sequence_id", a.SequenceID)
	return row
}

type G4Hunter struct {
	Analysis
	ResultCount *int64
	Threshold   float64
	WindowSize  int64
	Frequency   *float64
}

func (g G4Hunter) Handle() JobHandle { return g.Analysis.handle(KindG4Hunter) }

func (g G4Hunter) Row() Row {
	row := g.Analysis.row()
	row.Add("result_count", formatOptionalInt(g.ResultCount))
	row.Add("window_size", strconv.FormatInt(g.WindowSize, 10))
	row.Add("threshold", formatFloat(g.Threshold))
	row.Add("frequency", formatOptionalFloat(g.Frequency))
	return row
}

type RLoopr struct {
	Analysis
	ResultCount *int64
	// Model is the server's rendering of the R-loop forming models used.
	Model string
}

func (r RLoopr) Handle() JobHandle { return r.Analysis.handle(KindRLoopr) }

func (r RLoopr) Row() Row {
	row := r.Analysis.row()
	row.Add("result_count", formatOptionalInt(r.ResultCount))
	row.Add("model", r.Model)
	return row
}

type ZDna struct {
	Analysis
	ResultCount        *int64
	Model              string
	MinSequenceSize    int64
	GCScore            float64
	GTACScore          float64
	ATScore            float64
	OthScore           float64
	MinScorePercentage float64
}

func (z ZDna) Handle() JobHandle { return z.Analysis.handle(KindZDna) }

func (z ZDna) Row() Row {
	row := z.Analysis.row()
	row.Add("result_count", formatOptionalInt(z.ResultCount))
	row.Add("model", z.Model)
	row.Add("min_sequence_size", strconv.FormatInt(z.MinSequenceSize, 10))
	row.Add("gc_score", formatFloat(z.GCScore))
	row.Add("gtac_score", formatFloat(z.GTACScore))
	row.Add("at_score", formatFloat(z.ATScore))
	row.Add("oth_score", formatFloat(z.OthScore))
	row.Add("min_score_percentage", formatFloat(z.MinScorePercentage))
	return row
}

type CpG struct {
	Analysis
	ResultCount       *int64
	MinWindowSize     int64
	MinGCPercentage   float64
	MinObsExpCpG      float64
	MinIslandMergeGap int64
	SecondNucleotide  string
}

func (c CpG) Handle() JobHandle { return c.Analysis.handle(KindCpG) }

func (c CpG) Row() Row {
	row := c.Analysis.row()
	row.Add("result_count", formatOptionalInt(c.ResultCount))
	row.Add("min_window_size", strconv.FormatInt(c.MinWindowSize, 10))
	row.Add("min_gc_percentage", formatFloat(c.MinGCPercentage))
	row.Add("min_obs_exp_cpg", formatFloat(c.MinObsExpCpG))
	row.Add("min_island_merge_gap", strconv.FormatInt(c.MinIslandMergeGap, 10))
	row.Add("second_nucleotide", c.SecondNucleotide)
	return row
}
