package rollover

//go:generate go run github.com/abice/go-enum -f=$GOFILE --marshal --names

import (
	"fmt"

	"github.com/odskit/ksk-helper/model"
)

// Phase is the rollover phase derived from key states and the parent DS ENUM(
// NoActiveKey // no usable KSK at all
// AwaitingPublish // new KSK published, DS not confirmed
// AwaitingDsSeen // ready KSK waits for the ds-seen confirmation
// RolloverInProgress // old and new KSK overlap
// StableSynced // active KSK matches the parent DS
// Inconsistent // key state and parent DS contradict each other
// )
type Phase int

// Stage refines a Phase ENUM(
// none
// manual
// confirm
// tail
// new
// confirm-new
// stale-retired
// active-without-ds
// stranded-retired
// conflicting-keys
// )
type Stage int

// Gate is the precondition of an instruction ENUM(
// none // no precondition
// after-new-key // only after the new key's DS is live
// after-propagation // only after the parent change has propagated
// )
type Gate int

// InstructionID names an operator action
type InstructionID string

const (
	// InstructionSubmit submit the key for DS publication
	InstructionSubmit InstructionID = "ds-submit"
	// InstructionExport export the DS record from the enforcer
	InstructionExport InstructionID = "ds-export"
	// InstructionUpload upload the DS record to the registrar
	InstructionUpload InstructionID = "ds-upload"
	// InstructionSeen confirm the DS is visible at the parent
	InstructionSeen InstructionID = "ds-seen"
	// InstructionRemove remove the DS record from the registrar
	InstructionRemove InstructionID = "ds-remove"
	// InstructionGone confirm the DS is gone from the parent
	InstructionGone InstructionID = "ds-gone"
	// InstructionInvestigate manual investigation required
	InstructionInvestigate InstructionID = "investigate"
)

// Instruction is one operator action with the data needed to render it
type Instruction struct {
	ID        InstructionID    `json:"id" yaml:"id"`
	KeyTag    uint16           `json:"keyTag" yaml:"keyTag"`
	Algorithm model.Algorithm  `json:"algorithm" yaml:"algorithm"`
	DS        []model.DSRecord `json:"ds,omitempty" yaml:"ds,omitempty"`
	Gate      Gate             `json:"gate" yaml:"gate"`
}

func (i Instruction) String() string {
	s := fmt.Sprintf("%s %d", i.ID, i.KeyTag)
	if i.Gate != GateNone {
		s += " (" + i.Gate.String() + ")"
	}

	return s
}

// Evaluation is the outcome of the decision table
type Evaluation struct {
	Zone         string        `json:"zone" yaml:"zone"`
	Phase        Phase         `json:"phase" yaml:"phase"`
	Stage        Stage         `json:"stage" yaml:"stage"`
	Instructions []Instruction `json:"instructions" yaml:"instructions"`
	// UnknownDS are tags at the parent that match no key of the enforcer
	UnknownDS []uint16 `json:"unknownDS,omitempty" yaml:"unknownDS,omitempty"`
}

// IsHealthy returns true if no operator action is needed
func (e Evaluation) IsHealthy() bool {
	return e.Phase == PhaseStableSynced && len(e.UnknownDS) == 0
}

// InstructionIDs returns the identifiers of the instructions in order
func (e Evaluation) InstructionIDs() []InstructionID {
	ids := make([]InstructionID, len(e.Instructions))
	for i, in := range e.Instructions {
		ids[i] = in.ID
	}

	return ids
}
