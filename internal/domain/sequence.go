package domain

import (
	"strconv"
	"time"
)

type NucleicType string

const (
	NucleicDNA NucleicType = "DNA"
	NucleicRNA NucleicType = "RNA"
)

type SequenceFormat string

const (
	FormatFASTA SequenceFormat = "FASTA"
	FormatPlain SequenceFormat = "PLAIN"
)

type Sequence struct {
	ID           string
	Name         string
	Created      string
	Type         NucleicType
	Circular     bool
	Length       *int64
	NCBI         string
	Tags         Tags
	FastaComment string
	// NucleicCounts is nil until the server has counted the nucleotides.
	NucleicCounts    map[string]int64
	NucleicCountsRaw string
}

// GCCount is C + G from the nucleotide counts.
func (s Sequence) GCCount() (int64, bool) {
	if s.NucleicCounts == nil {
		return 0, false
	}
	return s.NucleicCounts["C"] + s.NucleicCounts["G"], true
}

func (s Sequence) Handle() JobHandle {
	created, _ := ParseTimestamp(s.Created)
	return JobHandle{ID: s.ID, Kind: KindSequence, Created: created}
}

func (s Sequence) Row() Row {
	var row Row
	row.Add("id", s.ID)
	row.Add("name", s.Name)
	row.Add("created", s.Created)
	row.Add("type", string(s.Type))
	row.Add("circular", strconv.FormatBool(s.Circular))
	row.Add("length", formatOptionalInt(s.Length))
	row.Add("ncbi", s.NCBI)
	row.Add("tags", s.Tags.String())
	row.Add("fasta_comment", s.FastaComment)
	gc := ""
	if count, ok := s.GCCount(); ok {
		gc = strconv.FormatInt(count, 10)
	}
	row.Add("gc_count", gc)
	row.Add("nucleic_count", s.NucleicCountsRaw)
	return row
}

func formatOptionalInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func formatOptionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func finishedAt(raw string) *time.Time {
	t, ok := ParseTimestamp(raw)
	if !ok {
		return nil
	}
	return &t
}
