package rollover

import (
	"github.com/odskit/ksk-helper/model"
)

// Evaluate classifies the rollover state of keys against the DS records seen at the parent.
// The table is evaluated top to bottom and the first matching row wins. A nil or unanswered
// observation counts as an empty DS RRset. Several keys sharing the publish, ready or active
// state are never resolved to one of them.
func Evaluate(keys *model.ZoneKeySet, ds *model.DsObservation) Evaluation {
	e := &evaluation{keys: keys, ds: ds}

	e.res.Zone = keys.Zone()
	e.res.UnknownDS = unknownTags(keys, ds)

	active, hasActive := keys.ActiveKey()
	publish, hasPublish := keys.PublishKey()
	ready, hasReady := keys.ReadyKey()
	retired := keys.RetiredKeys()

	conflicts := keys.ConflictingStates()

	switch {
	case len(conflicts) > 0:
		e.classify(PhaseInconsistent, StageConflictingKeys)

		for _, state := range conflicts {
			for _, k := range keys.KeysIn(state) {
				e.add(InstructionInvestigate, k, GateNone, nil)
			}
		}
	case hasActive:
		e.withActive(active, retired)
	case hasPublish:
		e.withPublish(publish)
	case hasReady:
		e.withReady(ready, retired)
	case len(retired) > 0:
		e.classify(PhaseInconsistent, StageStrandedRetired)
		e.add(InstructionInvestigate, retired[0], GateNone, nil)
	default:
		e.classify(PhaseNoActiveKey, StageNone)
	}

	if e.res.Instructions == nil {
		e.res.Instructions = []Instruction{}
	}

	return e.res
}

type evaluation struct {
	keys *model.ZoneKeySet
	ds   *model.DsObservation
	res  Evaluation
}

func (e *evaluation) withActive(active model.Key, retired []model.Key) {
	activeInDS := e.inDS(active)

	if len(retired) == 0 {
		if activeInDS {
			e.classify(PhaseStableSynced, StageNone)

			return
		}

		e.classify(PhaseInconsistent, StageActiveWithoutDs)
		e.upload(active)
		e.add(InstructionInvestigate, active, GateNone, nil)

		return
	}

	if !activeInDS {
		e.upload(active)
	}

	if old, ok := e.lowestRetiredInDS(retired); ok {
		e.classify(PhaseRolloverInProgress, StageTail)
		e.retire(old, !activeInDS)

		return
	}

	e.classify(PhaseStableSynced, StageStaleRetired)

	for _, k := range retired {
		e.add(InstructionGone, k, GateAfterPropagation, nil)
	}
}

func (e *evaluation) withPublish(publish model.Key) {
	if e.inDS(publish) {
		e.classify(PhaseAwaitingPublish, StageConfirm)
		e.add(InstructionSeen, publish, GateNone, nil)

		return
	}

	e.classify(PhaseAwaitingPublish, StageManual)
	e.add(InstructionSubmit, publish, GateNone, nil)
	e.upload(publish)
	e.add(InstructionSeen, publish, GateNone, nil)
}

func (e *evaluation) withReady(ready model.Key, retired []model.Key) {
	readyInDS := e.inDS(ready)

	switch {
	case len(retired) == 0 && readyInDS:
		e.classify(PhaseAwaitingDsSeen, StageConfirm)
		e.add(InstructionSeen, ready, GateNone, nil)

		return
	case len(retired) == 0:
		e.classify(PhaseAwaitingDsSeen, StageNone)
		e.add(InstructionSeen, ready, GateNone, nil)

		return
	case readyInDS:
		e.classify(PhaseRolloverInProgress, StageConfirmNew)
		e.add(InstructionSeen, ready, GateNone, nil)
	default:
		e.classify(PhaseRolloverInProgress, StageNew)
		e.add(InstructionSubmit, ready, GateNone, nil)
		e.upload(ready)
	}

	if old, ok := e.lowestRetiredInDS(retired); ok {
		e.retire(old, true)
	}
}

// upload adds the export and registrar upload of k's DS
func (e *evaluation) upload(k model.Key) {
	ds := e.keys.ExportedDS(k.Tag)

	e.add(InstructionExport, k, GateNone, ds)
	e.add(InstructionUpload, k, GateNone, ds)
}

// retire adds the removal of old's DS. afterNewKey holds the removal until the new key's DS is live.
func (e *evaluation) retire(old model.Key, afterNewKey bool) {
	gate := GateNone
	if afterNewKey {
		gate = GateAfterNewKey
	}

	var seen []model.DSRecord
	if r, ok := e.ds.Records[old.Tag]; ok {
		seen = []model.DSRecord{r}
	}

	e.add(InstructionRemove, old, gate, seen)
	e.add(InstructionGone, old, GateNone, nil)
}

func (e *evaluation) classify(phase Phase, stage Stage) {
	e.res.Phase = phase
	e.res.Stage = stage
}

func (e *evaluation) add(id InstructionID, k model.Key, gate Gate, ds []model.DSRecord) {
	e.res.Instructions = append(e.res.Instructions, Instruction{
		ID:        id,
		KeyTag:    k.Tag,
		Algorithm: k.Algorithm,
		DS:        ds,
		Gate:      gate,
	})
}

func (e *evaluation) inDS(k model.Key) bool {
	return !e.ds.IsNoAnswer() && e.ds.HasTag(k.Tag)
}

// lowestRetiredInDS picks the retired key with the lowest tag that is still in the DS RRset
func (e *evaluation) lowestRetiredInDS(retired []model.Key) (model.Key, bool) {
	for _, k := range retired {
		if e.inDS(k) {
			return k, true
		}
	}

	return model.Key{}, false
}

func unknownTags(keys *model.ZoneKeySet, ds *model.DsObservation) []uint16 {
	if ds.IsNoAnswer() {
		return nil
	}

	var res []uint16

	for _, tag := range ds.Tags() {
		if _, ok := keys.Key(tag); !ok {
			res = append(res, tag)
		}
	}

	return res
}
