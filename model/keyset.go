package model

import (
	"sort"
)

// ZoneKeySet holds the KSKs the enforcer knows for one zone, indexed by key tag
type ZoneKeySet struct {
	zone     string
	keys     map[uint16]Key
	exported map[uint16][]DSRecord
}

// KeySetOption adds exported DS material while building a ZoneKeySet
type KeySetOption func(*ZoneKeySet)

// WithExportedDS attaches the DS records the enforcer exported for a key.
// The matching key takes the digest type of the first record.
func WithExportedDS(records ...DSRecord) KeySetOption {
	return func(s *ZoneKeySet) {
		for _, r := range records {
			s.exported[r.KeyTag] = append(s.exported[r.KeyTag], r)
		}
	}
}

// NewZoneKeySet validates keys and indexes them by tag. Tags must be unique. Several keys may
// share the publish, ready or active state, see ConflictingStates.
func NewZoneKeySet(zone string, keys []Key, opts ...KeySetOption) (*ZoneKeySet, error) {
	s := &ZoneKeySet{
		zone:     zone,
		keys:     make(map[uint16]Key, len(keys)),
		exported: make(map[uint16][]DSRecord),
	}

	for _, opt := range opts {
		opt(s)
	}

	for _, k := range keys {
		if k.Type != KeyTypeKSK {
			return nil, NewValidationError("zone %s: key %d is a %s, only KSKs are tracked", zone, k.Tag, k.Type)
		}

		if _, dup := s.keys[k.Tag]; dup {
			return nil, NewValidationError("zone %s: duplicate key tag %d", zone, k.Tag)
		}

		if ds, ok := s.exported[k.Tag]; ok && len(ds) > 0 {
			if _, has := k.DSDigestType(); !has {
				k = k.withDSDigestType(ds[0].DigestType)
			}
		}

		s.keys[k.Tag] = k
	}

	return s, nil
}

// Zone returns the zone name
func (s *ZoneKeySet) Zone() string {
	return s.zone
}

// Len returns the number of keys
func (s *ZoneKeySet) Len() int {
	return len(s.keys)
}

// Key returns the key with tag
func (s *ZoneKeySet) Key(tag uint16) (Key, bool) {
	k, ok := s.keys[tag]

	return k, ok
}

// Keys returns all keys ordered by tag
func (s *ZoneKeySet) Keys() []Key {
	return s.filter(func(Key) bool { return true })
}

// ActiveKey returns the key in active state, the one with the lowest tag if there are several
func (s *ZoneKeySet) ActiveKey() (Key, bool) {
	return s.single(KeyStateActive)
}

// PublishKey returns the key in publish state, the one with the lowest tag if there are several
func (s *ZoneKeySet) PublishKey() (Key, bool) {
	return s.single(KeyStatePublish)
}

// ReadyKey returns the key in ready state, the one with the lowest tag if there are several
func (s *ZoneKeySet) ReadyKey() (Key, bool) {
	return s.single(KeyStateReady)
}

// RetiredKeys returns the keys in retire state ordered by tag
func (s *ZoneKeySet) RetiredKeys() []Key {
	return s.KeysIn(KeyStateRetire)
}

// KeysIn returns the keys in state ordered by tag
func (s *ZoneKeySet) KeysIn(state KeyState) []Key {
	return s.filter(func(k Key) bool { return k.State == state })
}

// ConflictingStates returns the states among publish, ready and active that hold more than one
// key, in lifecycle order. An algorithm rollover has two active KSKs for a while.
func (s *ZoneKeySet) ConflictingStates() []KeyState {
	var res []KeyState

	for _, state := range []KeyState{KeyStatePublish, KeyStateReady, KeyStateActive} {
		if len(s.KeysIn(state)) > 1 {
			res = append(res, state)
		}
	}

	return res
}

// ExportedDS returns the DS records the enforcer exported for tag
func (s *ZoneKeySet) ExportedDS(tag uint16) []DSRecord {
	records := s.exported[tag]
	if len(records) == 0 {
		return nil
	}

	res := make([]DSRecord, len(records))
	copy(res, records)

	return res
}

func (s *ZoneKeySet) single(state KeyState) (Key, bool) {
	matches := s.KeysIn(state)
	if len(matches) == 0 {
		return Key{}, false
	}

	return matches[0], true
}

func (s *ZoneKeySet) filter(pred func(Key) bool) []Key {
	res := make([]Key, 0, len(s.keys))

	for _, k := range s.keys {
		if pred(k) {
			res = append(res, k)
		}
	}

	sort.Slice(res, func(i, j int) bool { return res[i].Tag < res[j].Tag })

	return res
}
