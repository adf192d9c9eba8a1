package domain

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
)

const (
	DefaultIntersectionArea int64 = 100
	MaxIntersectionArea     int64 = 1000
)

// Feature is one interval of an NCBI feature table. Start and End are
// 1-based and inclusive, with Start <= End whatever the strand.
type Feature struct {
	Start int64
	End   int64
	Name  string
}

func NewFeature(start, end int64, name string) Feature {
	if start > end {
		start, end = end, start
	}
	return Feature{Start: start, End: end, Name: name}
}

func (f Feature) Length() int64 {
	return f.End - f.Start + 1
}

func (f Feature) Row() Row {
	var row Row
	row.Add("start", strconv.FormatInt(f.Start, 10))
	row.Add("end", strconv.FormatInt(f.End, 10))
	row.Add("length", strconv.FormatInt(f.Length(), 10))
	row.Add("feature", f.Name)
	return row
}

// Quadruplex is one G4Hunter hit.
type Quadruplex struct {
	Position int64
	Length   int64
	Score    float64
}

func (q Quadruplex) Middle() int64 {
	return q.Position + q.Length/2
}

// QuadruplexesFromTable reads the position, length and score columns of a
// G4Hunter result table.
func QuadruplexesFromTable(t Table) ([]Quadruplex, error) {
	if t.Len() == 0 {
		return nil, nil
	}
	positions, okPos := t.Column("position")
	lengths, okLen := t.Column("length")
	scores, okScore := t.Column("score")
	if !okPos || !okLen || !okScore {
		return nil, errors.New("g4hunter result needs position, length and score columns")
	}

	hits := make([]Quadruplex, 0, len(positions))
	for i := range positions {
		position, err := strconv.ParseInt(positions[i], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("g4hunter result row %d: position: %w", i+1, err)
		}
		length, err := strconv.ParseInt(lengths[i], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("g4hunter result row %d: length: %w", i+1, err)
		}
		score, err := strconv.ParseFloat(scores[i], 64)
		if err != nil {
			return nil, fmt.Errorf("g4hunter result row %d: score: %w", i+1, err)
		}
		hits = append(hits, Quadruplex{Position: position, Length: length, Score: score})
	}
	return hits, nil
}

type Region int

const (
	RegionBefore Region = iota
	RegionIn
	RegionAfter
)

var regionLabels = [...]string{"BEFORE", "IN", "AFTER"}

func (r Region) String() string {
	return regionLabels[r]
}

const scoreBucketCount = 6

// ScoreBuckets are the upper bounds of the score classes; the last class is
// open ended.
var ScoreBuckets = [scoreBucketCount]float64{1.2, 1.4, 1.6, 1.8, 2.0, math.Inf(1)}

var scoreBucketLabels = [scoreBucketCount]string{"0-1.2", "1.2-1.4", "1.4-1.6", "1.6-1.8", "1.8-2.0", "2.0-inf"}

// ScoreBucket classifies a hit by the magnitude of its score, so C-rich hits
// with negative scores land next to their G-rich counterparts.
func ScoreBucket(score float64) int {
	magnitude := math.Abs(score)
	for i, upper := range ScoreBuckets {
		if magnitude <= upper {
			return i
		}
	}
	return scoreBucketCount - 1
}

type IntersectionRow struct {
	Feature string
	Counts  [scoreBucketCount][3]int
}

func (r IntersectionRow) Count(bucket int, region Region) int {
	return r.Counts[bucket][region]
}

// Intersection counts G4Hunter hits around annotated features, one row per
// feature name in order of first appearance.
type Intersection struct {
	Area int64
	Rows []IntersectionRow
}

func (in Intersection) Row(feature string) (IntersectionRow, bool) {
	for _, row := range in.Rows {
		if row.Feature == feature {
			return row, true
		}
	}
	return IntersectionRow{}, false
}

func IntersectionColumns() []string {
	columns := []string{"FEATURE"}
	for _, bucket := range scoreBucketLabels {
		for _, region := range regionLabels {
			columns = append(columns, bucket+" "+region)
		}
	}
	return columns
}

func (in Intersection) Table() Table {
	table := Table{Columns: IntersectionColumns()}
	for _, row := range in.Rows {
		values := []string{row.Feature}
		for _, counts := range row.Counts {
			for _, count := range counts {
				values = append(values, strconv.Itoa(count))
			}
		}
		table.Rows = append(table.Rows, values)
	}
	return table
}

func ValidateIntersectionArea(area int64) error {
	if area <= 0 || area > MaxIntersectionArea {
		return &ValidationError{Op: "intersection", Err: fmt.Errorf("area %d must be in (0, %d]", area, MaxIntersectionArea)}
	}
	return nil
}

// Intersect places every hit's middle nucleotide in the area flanking each
// feature: BEFORE is [start-area, start), IN is [start, end] and AFTER is
// (end, end+area]. A hit near several features counts for each of them.
func Intersect(features []Feature, hits []Quadruplex, area int64) (Intersection, error) {
	if err := ValidateIntersectionArea(area); err != nil {
		return Intersection{}, err
	}

	sorted := slices.Clone(features)
	slices.SortStableFunc(sorted, func(a, b Feature) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		default:
			return 0
		}
	})

	middles := make([]int64, len(hits))
	buckets := make([]int, len(hits))
	order := make([]int, len(hits))
	for i, hit := range hits {
		order[i] = i
		middles[i] = hit.Middle()
		buckets[i] = ScoreBucket(hit.Score)
	}
	sort.SliceStable(order, func(a, b int) bool { return middles[order[a]] < middles[order[b]] })

	result := Intersection{Area: area}
	index := map[string]int{}
	for _, feature := range sorted {
		rowIdx, ok := index[feature.Name]
		if !ok {
			rowIdx = len(result.Rows)
			index[feature.Name] = rowIdx
			result.Rows = append(result.Rows, IntersectionRow{Feature: feature.Name})
		}
		row := &result.Rows[rowIdx]

		before := max(feature.Start-area, 0)
		after := feature.End + area
		first := sort.Search(len(order), func(i int) bool { return middles[order[i]] >= before })
		for _, hit := range order[first:] {
			middle := middles[hit]
			if middle > after {
				break
			}
			switch {
			case middle < feature.Start:
				row.Counts[buckets[hit]][RegionBefore]++
			case middle <= feature.End:
				row.Counts[buckets[hit]][RegionIn]++
			default:
				row.Counts[buckets[hit]][RegionAfter]++
			}
		}
	}
	return result, nil
}
