package dnaapi

import "github.com/bnema/dna-analyser-cli/internal/ports"

var (
	_ ports.Authenticator      = Authenticator{}
	_ ports.BatchStatusQuerier = BatchAdapter{}
	_ ports.SequenceStore      = SequenceAdapter{}
	_ ports.G4HunterTool       = G4HunterAdapter{}
	_ ports.RLooprTool         = RLooprAdapter{}
	_ ports.ZDnaTool           = ZDnaAdapter{}
	_ ports.CpGTool            = CpGAdapter{}
	_ ports.G4KillerTool       = G4KillerAdapter{}
	_ ports.P53Tool            = P53Adapter{}
)
