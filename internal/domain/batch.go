package domain

import "time"

type ResourceKind string

const (
	KindSequence ResourceKind = "SEQUENCE"
	KindG4Hunter ResourceKind = "G4HUNTER"
	KindRLoopr   ResourceKind = "RLOOPR"
	KindZDna     ResourceKind = "ZDNA"
	KindCpG      ResourceKind = "CPG"
)

func (k ResourceKind) Label() string {
	switch k {
	case KindSequence:
		return "sequence"
	case KindG4Hunter:
		return "G4Hunter analysis"
	case KindRLoopr:
		return "R-loop analysis"
	case KindZDna:
		return "Z-DNA analysis"
	case KindCpG:
		return "CpG island analysis"
	default:
		return string(k)
	}
}

type BatchStatus string

const (
	BatchCreated BatchStatus = "CREATED"
	BatchWaiting BatchStatus = "WAITING"
	BatchRunning BatchStatus = "RUNNING"
	BatchFinish  BatchStatus = "FINISH"
	BatchFailed  BatchStatus = "FAILED"
)

func (s BatchStatus) Terminal() bool {
	return s == BatchFinish || s == BatchFailed
}

func (s BatchStatus) Known() bool {
	switch s {
	case BatchCreated, BatchWaiting, BatchRunning, BatchFinish, BatchFailed:
		return true
	default:
		return false
	}
}

// Batch is the server-side job record behind a resource. Timestamps are kept
// as sent by the server.
type Batch struct {
	Name      string
	Status    BatchStatus
	Progress  float64
	CPUTime   float64
	Created   string
	Started   string
	Finished  string
	Exception string
}

// JobHandle identifies a submitted job for polling.
type JobHandle struct {
	ID       string
	Owner    string
	Kind     ResourceKind
	Created  time.Time
	Finished *time.Time
}

func (h JobHandle) Terminal() bool {
	return h.Finished != nil
}
