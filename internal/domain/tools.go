package domain

import (
	"strconv"
	"strings"
)

// G4Killer is the synchronous mutation proposal for a G-quadruplex sequence.
type G4Killer struct {
	OriginSequence    string
	OriginScore       float64
	TargetThreshold   float64
	MutationSequences []string
	MutationScore     float64
	ChangeCount       int64
	MutationVariants  string
	OnComplementary   bool
}

func (g G4Killer) Row() Row {
	var row Row
	row.Add("origin_sequence", g.OriginSequence)
	row.Add("origin_score", formatFloat(g.OriginScore))
	row.Add("target_threshold", formatFloat(g.TargetThreshold))
	row.Add("mutation_sequences", strings.Join(g.MutationSequences, ", "))
	row.Add("mutation_score", formatFloat(g.MutationScore))
	row.Add("change_count", strconv.FormatInt(g.ChangeCount, 10))
	row.Add("mutation_variants", g.MutationVariants)
	row.Add("on_complementary", strconv.FormatBool(g.OnComplementary))
	return row
}

// P53 is the binding prediction for one 20 nucleotide site.
type P53 struct {
	Sequence   string
	Position   int64
	Length     int64
	Difference float64
	Predictor  string
	Affinity   float64
}

func (p P53) Row() Row {
	var row Row
	row.Add("sequence", p.Sequence)
	row.Add("position", strconv.FormatInt(p.Position, 10))
	row.Add("length", strconv.FormatInt(p.Length, 10))
	row.Add("difference", formatFloat(p.Difference))
	row.Add("predictor", p.Predictor)
	row.Add("affinity", formatFloat(p.Affinity))
	return row
}

// FastaRecord is one entry of a multi-FASTA file.
type FastaRecord struct {
	Name        string
	Nucleotides string
}
